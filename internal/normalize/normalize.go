package normalize

import (
	"fmt"
	"math/big"

	"github.com/ybensalah/mawarith/internal/model"
	"github.com/ybensalah/mawarith/internal/shares"
)

// Normalizer corrects a raw share list so the fractions sum to exactly one.
// Over-subscription is resolved by awl, reducing every share in proportion;
// under-subscription by radd, returning the surplus to the fixed-share heirs
// other than the spouse. A spouse never takes radd unless nobody else
// inherits at all.
type Normalizer struct{}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Result is the corrected division before rendering
type Result struct {
	Entries     []model.ShareEntry
	AwlApplied  bool
	RaddApplied bool
}

// Apply normalizes the raw shares. The returned entries sum to exactly one;
// anything else is an internal defect and is surfaced as an error rather
// than silently rounded.
func (n *Normalizer) Apply(raw []shares.RawShare) (*Result, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("normalize: %w", model.ErrNoEligibleHeir)
	}

	fracs := make([]*big.Rat, len(raw))
	sum := new(big.Rat)
	for i, s := range raw {
		fracs[i] = new(big.Rat).Set(s.Frac)
		sum.Add(sum, fracs[i])
	}

	one := big.NewRat(1, 1)
	res := &Result{}

	switch sum.Cmp(one) {
	case 0:
		// Already exact
	case 1:
		// Awl: every share shrinks by the same factor
		res.AwlApplied = true
		inv := new(big.Rat).Inv(sum)
		for _, f := range fracs {
			f.Mul(f, inv)
		}
	case -1:
		res.RaddApplied = true
		n.radd(raw, fracs, new(big.Rat).Sub(one, sum))
	}

	total := new(big.Rat)
	for _, f := range fracs {
		total.Add(total, f)
	}
	if total.Cmp(one) != 0 {
		return nil, fmt.Errorf("normalize: shares sum to %s, not 1", total.RatString())
	}

	res.Entries = make([]model.ShareEntry, len(raw))
	for i, s := range raw {
		res.Entries[i] = model.ShareEntry{
			PersonID: s.ID,
			Name:     s.Name,
			Category: s.Category,
			Fraction: model.FractionFromRat(fracs[i]),
			Kind:     s.Kind,
		}
	}
	return res, nil
}

// radd distributes the surplus across the non-spouse fixed shares in
// proportion to their size. When the spouse is the only heir, the surplus
// falls to the spouse instead of escheating.
func (n *Normalizer) radd(raw []shares.RawShare, fracs []*big.Rat, surplus *big.Rat) {
	pool := make([]int, 0, len(raw))
	poolSum := new(big.Rat)
	for i, s := range raw {
		if s.Category.Spouse() {
			continue
		}
		pool = append(pool, i)
		poolSum.Add(poolSum, fracs[i])
	}
	if len(pool) == 0 {
		for i := range raw {
			pool = append(pool, i)
			poolSum.Add(poolSum, fracs[i])
		}
	}

	// Each pool share grows by surplus * (share / poolSum)
	factor := new(big.Rat).Quo(surplus, poolSum)
	for _, i := range pool {
		extra := new(big.Rat).Mul(fracs[i], factor)
		fracs[i].Add(fracs[i], extra)
	}
}
