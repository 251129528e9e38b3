package model

import (
	"encoding/json"
	"math/big"
	"testing"
)

func TestFraction_String(t *testing.T) {
	cases := []struct {
		num, den int64
		want     string
	}{
		{1, 2, "1/2"},
		{2, 3, "2/3"},
		{4, 8, "1/2"}, // reduced
		{1, 1, "1"},
		{0, 1, "0"},
		{7, 6, "7/6"},
	}

	for _, c := range cases {
		got := NewFraction(c.num, c.den).String()
		if got != c.want {
			t.Errorf("NewFraction(%d, %d).String() = %q, want %q", c.num, c.den, got, c.want)
		}
	}
}

func TestParseFraction(t *testing.T) {
	f, err := ParseFraction("3/7")
	if err != nil {
		t.Fatalf("ParseFraction failed: %v", err)
	}
	if !f.Equal(NewFraction(3, 7)) {
		t.Errorf("expected 3/7, got %s", f.String())
	}

	whole, err := ParseFraction("1")
	if err != nil {
		t.Fatalf("ParseFraction failed: %v", err)
	}
	if !whole.Equal(NewFraction(1, 1)) {
		t.Errorf("expected 1, got %s", whole.String())
	}

	if _, err := ParseFraction("not-a-fraction"); err == nil {
		t.Error("expected error for malformed input")
	}
}

func TestFraction_Zero(t *testing.T) {
	var unset Fraction
	if !unset.Zero() {
		t.Error("zero-value fraction should be zero")
	}
	if NewFraction(1, 6).Zero() {
		t.Error("1/6 should not be zero")
	}
}

func TestFraction_RatIsCopy(t *testing.T) {
	f := NewFraction(1, 2)
	r := f.Rat()
	r.SetInt64(99)

	if f.String() != "1/2" {
		t.Errorf("mutating the returned rat changed the fraction: %s", f.String())
	}
}

func TestFractionFromRat_Copies(t *testing.T) {
	r := big.NewRat(1, 3)
	f := FractionFromRat(r)
	r.SetInt64(5)

	if f.String() != "1/3" {
		t.Errorf("FractionFromRat did not copy: %s", f.String())
	}
}

func TestFraction_JSONRoundTrip(t *testing.T) {
	entry := ShareEntry{
		PersonID: "p1",
		Name:     "Fatima",
		Category: CategoryDaughter,
		Fraction: NewFraction(1, 2),
		Kind:     ShareFixed,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back ShareEntry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !back.Fraction.Equal(entry.Fraction) {
		t.Errorf("round trip changed fraction: %s != %s", back.Fraction.String(), entry.Fraction.String())
	}
}
