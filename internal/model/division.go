package model

// ShareKind distinguishes how an entry's fraction was derived
type ShareKind string

const (
	// ShareFixed is a doctrinally fixed (fardh) fraction
	ShareFixed ShareKind = "fixed"
	// ShareResidual is a share of whatever remains after fixed shares
	ShareResidual ShareKind = "residual"
)

// ShareEntry assigns one person an exact fraction of the estate. A person
// may appear twice when doctrine grants both a fixed share and a residue
// (e.g. the father with only female descendants).
type ShareEntry struct {
	PersonID PersonID     `json:"person_id" yaml:"person_id"`
	Name     string       `json:"name,omitempty" yaml:"name,omitempty"`
	Category HeirCategory `json:"category" yaml:"category"`
	Fraction Fraction     `json:"fraction" yaml:"fraction"`
	Kind     ShareKind    `json:"kind" yaml:"kind"`
}

// Exclusion records one pruning decision for the audit trail
type Exclusion struct {
	Excluded  HeirCategory `json:"excluded" yaml:"excluded"`
	By        HeirCategory `json:"by" yaml:"by"`
	Condition string       `json:"condition" yaml:"condition"`
}

// EstateDivision is the final outcome of one computation: an ordered
// sequence of entries summing to exactly one whole estate, plus metadata
// about the corrections applied. Constructed once, never mutated.
type EstateDivision struct {
	Entries []ShareEntry `json:"entries" yaml:"entries"`

	// AwlApplied is set when fixed shares exceeded the estate and were
	// proportionally reduced
	AwlApplied bool `json:"awl_applied" yaml:"awl_applied"`
	// RaddApplied is set when a shortfall was redistributed among the
	// fixed-share heirs
	RaddApplied bool `json:"radd_applied" yaml:"radd_applied"`

	// Exclusions is the audit trail of pruning decisions
	Exclusions []Exclusion `json:"exclusions,omitempty" yaml:"exclusions,omitempty"`

	// Doctrine names the rule table the engine ran with
	Doctrine string `json:"doctrine" yaml:"doctrine"`
}

// Total returns the exact sum of all entry fractions
func (d *EstateDivision) Total() Fraction {
	sum := NewFraction(0, 1).Rat()
	for _, e := range d.Entries {
		sum.Add(sum, e.Fraction.Rat())
	}
	return FractionFromRat(sum)
}

// ShareOf returns the combined fraction assigned to a person
func (d *EstateDivision) ShareOf(id PersonID) Fraction {
	sum := NewFraction(0, 1).Rat()
	for _, e := range d.Entries {
		if e.PersonID == id {
			sum.Add(sum, e.Fraction.Rat())
		}
	}
	return FractionFromRat(sum)
}
