package model

import "github.com/google/uuid"

// PersonID uniquely identifies a person within a family tree
type PersonID string

// NewPersonID generates a fresh person identifier
func NewPersonID() PersonID {
	return PersonID(uuid.New().String())
}

// Sex of a person
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Valid reports whether the sex value is one of the known constants
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Person represents one member of a family tree.
// Relationship edges live in the tree, not on the person.
type Person struct {
	ID    PersonID `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	Sex   Sex      `json:"sex" yaml:"sex"`
	Alive bool     `json:"alive" yaml:"alive"`
}

// RelationshipKind is the type of a declared edge between two people
type RelationshipKind string

const (
	// RelParent declares the first person as a parent of the second
	RelParent RelationshipKind = "parent"
	// RelSpouse declares a marriage between the two people
	RelSpouse RelationshipKind = "spouse"
	// Declared sibling edges carry their subtype explicitly, for trees
	// where the shared parents are not modeled as persons
	RelSiblingFull     RelationshipKind = "sibling_full"
	RelSiblingPaternal RelationshipKind = "sibling_paternal"
	RelSiblingMaternal RelationshipKind = "sibling_maternal"
)

// Valid reports whether the kind is one of the known constants
func (k RelationshipKind) Valid() bool {
	switch k {
	case RelParent, RelSpouse, RelSiblingFull, RelSiblingPaternal, RelSiblingMaternal:
		return true
	}
	return false
}

// SiblingKind distinguishes full, paternal and maternal siblings
type SiblingKind string

const (
	SiblingFull     SiblingKind = "full"
	SiblingPaternal SiblingKind = "paternal"
	SiblingMaternal SiblingKind = "maternal"
)
