package normalize

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ybensalah/mawarith/internal/model"
	"github.com/ybensalah/mawarith/internal/shares"
)

func raw(id string, cat model.HeirCategory, num, den int64) shares.RawShare {
	return shares.RawShare{
		ID:       model.PersonID(id),
		Name:     id,
		Category: cat,
		Frac:     big.NewRat(num, den),
		Kind:     model.ShareFixed,
	}
}

func entryFrac(t *testing.T, res *Result, id string) *big.Rat {
	t.Helper()
	for _, e := range res.Entries {
		if e.PersonID == model.PersonID(id) {
			return e.Fraction.Rat()
		}
	}
	t.Fatalf("no entry for %s", id)
	return nil
}

func assertFrac(t *testing.T, got *big.Rat, num, den int64) {
	t.Helper()
	want := big.NewRat(num, den)
	assert.Zero(t, got.Cmp(want), "got %s, want %s", got.RatString(), want.RatString())
}

func TestApply_ExactSumUntouched(t *testing.T) {
	res, err := NewNormalizer().Apply([]shares.RawShare{
		raw("h", model.CategoryHusband, 1, 2),
		raw("s", model.CategorySisterFull, 1, 2),
	})
	require.NoError(t, err)

	assert.False(t, res.AwlApplied)
	assert.False(t, res.RaddApplied)
	assertFrac(t, entryFrac(t, res, "h"), 1, 2)
	assertFrac(t, entryFrac(t, res, "s"), 1, 2)
}

func TestApply_AwlScalesProportionally(t *testing.T) {
	// The classical 7/6 case: husband 1/2 with two sisters at 1/3 each
	res, err := NewNormalizer().Apply([]shares.RawShare{
		raw("h", model.CategoryHusband, 1, 2),
		raw("s1", model.CategorySisterFull, 1, 3),
		raw("s2", model.CategorySisterFull, 1, 3),
	})
	require.NoError(t, err)

	assert.True(t, res.AwlApplied)
	assert.False(t, res.RaddApplied)
	assertFrac(t, entryFrac(t, res, "h"), 3, 7)
	assertFrac(t, entryFrac(t, res, "s1"), 2, 7)
	assertFrac(t, entryFrac(t, res, "s2"), 2, 7)
}

func TestApply_RaddSkipsSpouse(t *testing.T) {
	// Husband 1/4 and daughter 1/2: the surplus quarter returns to the
	// daughter alone, the husband keeps his quarter
	res, err := NewNormalizer().Apply([]shares.RawShare{
		raw("h", model.CategoryHusband, 1, 4),
		raw("d", model.CategoryDaughter, 1, 2),
	})
	require.NoError(t, err)

	assert.True(t, res.RaddApplied)
	assertFrac(t, entryFrac(t, res, "h"), 1, 4)
	assertFrac(t, entryFrac(t, res, "d"), 3, 4)
}

func TestApply_RaddProportionalAcrossPool(t *testing.T) {
	// Mother 1/6 and daughter 1/2: surplus 1/3 splits 1:3 between them
	res, err := NewNormalizer().Apply([]shares.RawShare{
		raw("m", model.CategoryMother, 1, 6),
		raw("d", model.CategoryDaughter, 1, 2),
	})
	require.NoError(t, err)

	assert.True(t, res.RaddApplied)
	assertFrac(t, entryFrac(t, res, "m"), 1, 4)
	assertFrac(t, entryFrac(t, res, "d"), 3, 4)
}

func TestApply_RaddFallsToLoneSpouse(t *testing.T) {
	res, err := NewNormalizer().Apply([]shares.RawShare{
		raw("w", model.CategoryWife, 1, 4),
	})
	require.NoError(t, err)

	assert.True(t, res.RaddApplied)
	assertFrac(t, entryFrac(t, res, "w"), 1, 1)
}

func TestApply_EntriesAlwaysSumToOne(t *testing.T) {
	cases := [][]shares.RawShare{
		{raw("h", model.CategoryHusband, 1, 2), raw("m", model.CategoryMother, 1, 3), raw("s", model.CategorySisterMaternal, 1, 3)},
		{raw("d", model.CategoryDaughter, 1, 2)},
		{raw("g", model.CategoryGrandmother, 1, 6), raw("b", model.CategoryBrotherMaternal, 1, 6)},
	}

	one := big.NewRat(1, 1)
	for _, rs := range cases {
		res, err := NewNormalizer().Apply(rs)
		require.NoError(t, err)

		sum := new(big.Rat)
		for _, e := range res.Entries {
			sum.Add(sum, e.Fraction.Rat())
		}
		assert.Zero(t, sum.Cmp(one), "entries sum to %s", sum.RatString())
	}
}

func TestApply_EmptyInput(t *testing.T) {
	_, err := NewNormalizer().Apply(nil)
	assert.True(t, errors.Is(err, model.ErrNoEligibleHeir), "got %v", err)
}
