package model

import (
	"fmt"
	"math/big"
)

// Fraction is an exact rational share of the estate. All engine arithmetic
// uses exact rationals so the sum-to-one invariant is checkable with
// equality, never approximately. Serialized as "numerator/denominator".
type Fraction struct {
	rat *big.Rat
}

// NewFraction returns the fraction num/den
func NewFraction(num, den int64) Fraction {
	return Fraction{rat: big.NewRat(num, den)}
}

// FractionFromRat wraps an existing rational. The value is copied.
func FractionFromRat(r *big.Rat) Fraction {
	return Fraction{rat: new(big.Rat).Set(r)}
}

// ParseFraction parses "n/d" or "n" into a fraction
func ParseFraction(s string) (Fraction, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Fraction{}, fmt.Errorf("parse fraction %q", s)
	}
	return Fraction{rat: r}, nil
}

// Zero reports whether the fraction is exactly zero
func (f Fraction) Zero() bool {
	return f.rat == nil || f.rat.Sign() == 0
}

// Rat returns a copy of the underlying rational
func (f Fraction) Rat() *big.Rat {
	if f.rat == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(f.rat)
}

// Equal reports exact equality
func (f Fraction) Equal(other Fraction) bool {
	return f.Rat().Cmp(other.Rat()) == 0
}

// String renders the reduced fraction, "1" for the whole estate
func (f Fraction) String() string {
	r := f.Rat()
	if r.IsInt() {
		return r.Num().String()
	}
	return r.RatString()
}

// MarshalJSON encodes the fraction as a "n/d" string
func (f Fraction) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", f.String())), nil
}

// UnmarshalJSON decodes a "n/d" string
func (f *Fraction) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseFraction(s)
	if err != nil {
		return err
	}
	f.rat = parsed.rat
	return nil
}

// MarshalYAML encodes the fraction as a "n/d" string
func (f Fraction) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

// UnmarshalYAML decodes a "n/d" string
func (f *Fraction) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseFraction(s)
	if err != nil {
		return err
	}
	f.rat = parsed.rat
	return nil
}
