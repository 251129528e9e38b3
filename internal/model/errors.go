package model

import "errors"

// Error taxonomy. All engine failures wrap one of these sentinels so
// callers can branch with errors.Is.
var (
	// ErrInvalidRelationship is returned at tree-edit time for structural
	// violations: parent/child cycles, a duplicate parent, inconsistent
	// relationship kinds, or an unreachable person. Recoverable: the
	// caller corrects the input and retries.
	ErrInvalidRelationship = errors.New("invalid relationship")

	// ErrUnclassifiablePerson is returned when a declared relative matches
	// no known relation pattern. Input-validation backstop, never a
	// silent drop.
	ErrUnclassifiablePerson = errors.New("unclassifiable person")

	// ErrNoEligibleHeir is returned when every declared relative is
	// excluded or ineligible and no fallback exists.
	ErrNoEligibleHeir = errors.New("no eligible heir")

	// ErrUnknownPerson is returned for operations referencing an id not
	// present in the tree.
	ErrUnknownPerson = errors.New("unknown person")
)
