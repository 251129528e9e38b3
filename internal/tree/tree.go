package tree

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/ybensalah/mawarith/internal/model"
)

// FamilyTree owns a set of persons and their typed relationship edges,
// centered on one deceased person. Each instance is self-contained: there is
// no global registry, so independent trees can be built and recomputed
// concurrently without cross-contamination. A single tree instance is not
// safe for concurrent edits; callers must serialize them.
type FamilyTree struct {
	persons  map[model.PersonID]*model.Person
	order    []model.PersonID

	father   map[model.PersonID]model.PersonID
	mother   map[model.PersonID]model.PersonID
	children map[model.PersonID][]model.PersonID
	spouses  map[model.PersonID][]model.PersonID
	declared map[model.PersonID]map[model.PersonID]model.SiblingKind

	deceased model.PersonID
}

// New creates an empty family tree
func New() *FamilyTree {
	return &FamilyTree{
		persons:  make(map[model.PersonID]*model.Person),
		father:   make(map[model.PersonID]model.PersonID),
		mother:   make(map[model.PersonID]model.PersonID),
		children: make(map[model.PersonID][]model.PersonID),
		spouses:  make(map[model.PersonID][]model.PersonID),
		declared: make(map[model.PersonID]map[model.PersonID]model.SiblingKind),
	}
}

// AddPerson adds a person with a generated id and returns the id
func (t *FamilyTree) AddPerson(name string, sex model.Sex, alive bool) (model.PersonID, error) {
	return t.AddPersonWithID(model.NewPersonID(), name, sex, alive)
}

// AddPersonWithID adds a person with a caller-supplied id (snapshot loading)
func (t *FamilyTree) AddPersonWithID(id model.PersonID, name string, sex model.Sex, alive bool) (model.PersonID, error) {
	if !sex.Valid() {
		return "", fmt.Errorf("person %q: invalid sex %q", name, sex)
	}
	if _, exists := t.persons[id]; exists {
		return "", fmt.Errorf("person id %s already in tree", id)
	}
	t.persons[id] = &model.Person{ID: id, Name: name, Sex: sex, Alive: alive}
	t.order = append(t.order, id)
	return id, nil
}

// SetDeceased marks the person as the deceased focal point of the tree.
// The flag can be set once per tree.
func (t *FamilyTree) SetDeceased(id model.PersonID) error {
	p, ok := t.persons[id]
	if !ok {
		return fmt.Errorf("set deceased: %w: %s", model.ErrUnknownPerson, id)
	}
	if t.deceased != "" && t.deceased != id {
		return fmt.Errorf("set deceased: %w: deceased already set", model.ErrInvalidRelationship)
	}
	t.deceased = id
	p.Alive = false
	return nil
}

// AddRelationship declares a typed edge between two persons. For RelParent,
// a is a parent of b. Fails with ErrInvalidRelationship on a parent/child
// cycle, a second parent of the same sex, or a kind inconsistent with an
// existing edge between the pair.
func (t *FamilyTree) AddRelationship(a, b model.PersonID, kind model.RelationshipKind) error {
	pa, ok := t.persons[a]
	if !ok {
		return fmt.Errorf("add relationship: %w: %s", model.ErrUnknownPerson, a)
	}
	pb, ok := t.persons[b]
	if !ok {
		return fmt.Errorf("add relationship: %w: %s", model.ErrUnknownPerson, b)
	}
	if a == b {
		return fmt.Errorf("add relationship: %w: self edge", model.ErrInvalidRelationship)
	}
	if !kind.Valid() {
		return fmt.Errorf("add relationship: %w: unknown kind %q", model.ErrInvalidRelationship, kind)
	}

	switch kind {
	case model.RelParent:
		return t.addParent(pa, pb)
	case model.RelSpouse:
		return t.addSpouse(pa, pb)
	default:
		return t.addDeclaredSibling(pa, pb, siblingKindOf(kind))
	}
}

func siblingKindOf(kind model.RelationshipKind) model.SiblingKind {
	switch kind {
	case model.RelSiblingFull:
		return model.SiblingFull
	case model.RelSiblingPaternal:
		return model.SiblingPaternal
	default:
		return model.SiblingMaternal
	}
}

func (t *FamilyTree) addParent(parent, child *model.Person) error {
	if t.spouseOrDeclaredSibling(parent.ID, child.ID) {
		return fmt.Errorf("add parent: %w: pair already related otherwise", model.ErrInvalidRelationship)
	}
	// A parent edge from a descendant closes a cycle
	if t.IsAncestorOf(child.ID, parent.ID) {
		return fmt.Errorf("add parent: %w: parent/child cycle", model.ErrInvalidRelationship)
	}
	slot := t.father
	if parent.Sex == model.SexFemale {
		slot = t.mother
	}
	if existing, ok := slot[child.ID]; ok {
		if existing == parent.ID {
			return nil
		}
		return fmt.Errorf("add parent: %w: %s already has a %s parent", model.ErrInvalidRelationship, child.Name, parent.Sex)
	}
	slot[child.ID] = parent.ID
	t.children[parent.ID] = append(t.children[parent.ID], child.ID)
	return nil
}

func (t *FamilyTree) addSpouse(a, b *model.Person) error {
	if a.Sex == b.Sex {
		return fmt.Errorf("add spouse: %w: same sex", model.ErrInvalidRelationship)
	}
	if t.parentOrSibling(a.ID, b.ID) {
		return fmt.Errorf("add spouse: %w: pair already related otherwise", model.ErrInvalidRelationship)
	}
	for _, s := range t.spouses[a.ID] {
		if s == b.ID {
			return nil
		}
	}
	wife, husband := a, b
	if a.Sex == model.SexMale {
		wife, husband = b, a
	}
	if len(t.spouses[wife.ID]) >= 1 {
		return fmt.Errorf("add spouse: %w: %s already has a husband", model.ErrInvalidRelationship, wife.Name)
	}
	if len(t.spouses[husband.ID]) >= 4 {
		return fmt.Errorf("add spouse: %w: %s already has four wives", model.ErrInvalidRelationship, husband.Name)
	}
	t.spouses[a.ID] = append(t.spouses[a.ID], b.ID)
	t.spouses[b.ID] = append(t.spouses[b.ID], a.ID)
	return nil
}

func (t *FamilyTree) addDeclaredSibling(a, b *model.Person, kind model.SiblingKind) error {
	if t.parentOrSpouse(a.ID, b.ID) {
		return fmt.Errorf("add sibling: %w: pair already related otherwise", model.ErrInvalidRelationship)
	}
	// When both parent pairs are modeled the declared subtype must agree
	// with the computed one
	if computed, ok := t.computedSiblingKind(a.ID, b.ID); ok && computed != kind {
		return fmt.Errorf("add sibling: %w: declared %s but parents imply %s", model.ErrInvalidRelationship, kind, computed)
	}
	if t.declared[a.ID] == nil {
		t.declared[a.ID] = make(map[model.PersonID]model.SiblingKind)
	}
	if t.declared[b.ID] == nil {
		t.declared[b.ID] = make(map[model.PersonID]model.SiblingKind)
	}
	t.declared[a.ID][b.ID] = kind
	t.declared[b.ID][a.ID] = kind
	return nil
}

func (t *FamilyTree) parentOrSibling(a, b model.PersonID) bool {
	if t.father[a] == b || t.mother[a] == b || t.father[b] == a || t.mother[b] == a {
		return true
	}
	_, declared := t.declared[a][b]
	return declared
}

func (t *FamilyTree) parentOrSpouse(a, b model.PersonID) bool {
	if t.father[a] == b || t.mother[a] == b || t.father[b] == a || t.mother[b] == a {
		return true
	}
	for _, s := range t.spouses[a] {
		if s == b {
			return true
		}
	}
	return false
}

func (t *FamilyTree) spouseOrDeclaredSibling(a, b model.PersonID) bool {
	for _, s := range t.spouses[a] {
		if s == b {
			return true
		}
	}
	_, declared := t.declared[a][b]
	return declared
}

// Person returns the person with the given id
func (t *FamilyTree) Person(id model.PersonID) (*model.Person, bool) {
	p, ok := t.persons[id]
	return p, ok
}

// Persons returns all persons in insertion order
func (t *FamilyTree) Persons() []*model.Person {
	out := make([]*model.Person, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.persons[id])
	}
	return out
}

// Deceased returns the deceased person, if set
func (t *FamilyTree) Deceased() (*model.Person, bool) {
	if t.deceased == "" {
		return nil, false
	}
	return t.persons[t.deceased], true
}

// FatherOf returns the father of the person, if modeled
func (t *FamilyTree) FatherOf(id model.PersonID) (model.PersonID, bool) {
	f, ok := t.father[id]
	return f, ok
}

// MotherOf returns the mother of the person, if modeled
func (t *FamilyTree) MotherOf(id model.PersonID) (model.PersonID, bool) {
	m, ok := t.mother[id]
	return m, ok
}

// ChildrenOf returns the direct children of the person in insertion order
func (t *FamilyTree) ChildrenOf(id model.PersonID) []model.PersonID {
	return append([]model.PersonID(nil), t.children[id]...)
}

// SpousesOf returns the spouses of the person
func (t *FamilyTree) SpousesOf(id model.PersonID) []model.PersonID {
	return append([]model.PersonID(nil), t.spouses[id]...)
}

// SiblingsOf returns every sibling of the person with its subtype, merging
// siblings computed from shared parents with declared sibling edges.
func (t *FamilyTree) SiblingsOf(id model.PersonID) map[model.PersonID]model.SiblingKind {
	out := make(map[model.PersonID]model.SiblingKind)
	seen := map[model.PersonID]bool{id: true}
	if f, ok := t.father[id]; ok {
		for _, c := range t.children[f] {
			if !seen[c] {
				seen[c] = true
				out[c] = model.SiblingPaternal
			}
		}
	}
	if m, ok := t.mother[id]; ok {
		for _, c := range t.children[m] {
			if seen[c] {
				if out[c] == model.SiblingPaternal {
					out[c] = model.SiblingFull
				}
				continue
			}
			seen[c] = true
			out[c] = model.SiblingMaternal
		}
	}
	for sib, kind := range t.declared[id] {
		if _, ok := out[sib]; !ok {
			out[sib] = kind
		}
	}
	return out
}

// computedSiblingKind derives the subtype from modeled parents. The second
// return is false unless both persons have at least one shared parent slot
// modeled.
func (t *FamilyTree) computedSiblingKind(a, b model.PersonID) (model.SiblingKind, bool) {
	fa, hasFA := t.father[a]
	fb, hasFB := t.father[b]
	ma, hasMA := t.mother[a]
	mb, hasMB := t.mother[b]
	sharedFather := hasFA && hasFB && fa == fb
	sharedMother := hasMA && hasMB && ma == mb
	switch {
	case sharedFather && sharedMother:
		return model.SiblingFull, true
	case sharedFather:
		return model.SiblingPaternal, true
	case sharedMother:
		return model.SiblingMaternal, true
	}
	return "", false
}

// IsAncestorOf reports whether a is an ancestor of b through parent edges
func (t *FamilyTree) IsAncestorOf(a, b model.PersonID) bool {
	stack := []model.PersonID{b}
	seen := make(map[model.PersonID]bool)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if f, ok := t.father[cur]; ok {
			if f == a {
				return true
			}
			stack = append(stack, f)
		}
		if m, ok := t.mother[cur]; ok {
			if m == a {
				return true
			}
			stack = append(stack, m)
		}
	}
	return false
}

// IsDescendantOf reports whether a descends from b through parent edges
func (t *FamilyTree) IsDescendantOf(a, b model.PersonID) bool {
	return t.IsAncestorOf(b, a)
}

// Validate checks the whole-tree invariants: a deceased person is set and
// every other person is reachable from the deceased through relationship
// edges. Unreachable persons are irrelevant to the computation and rejected
// as invalid input.
func (t *FamilyTree) Validate() error {
	if t.deceased == "" {
		return fmt.Errorf("validate: %w: no deceased set", model.ErrInvalidRelationship)
	}
	reach := t.reachable()
	for _, id := range t.order {
		if !reach[id] {
			return fmt.Errorf("validate: %w: person %q not reachable from deceased", model.ErrInvalidRelationship, t.persons[id].Name)
		}
	}
	return nil
}

// reachable returns the set of persons connected to the deceased through
// any edge kind, in either direction
func (t *FamilyTree) reachable() map[model.PersonID]bool {
	seen := make(map[model.PersonID]bool)
	stack := []model.PersonID{t.deceased}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		var next []model.PersonID
		if f, ok := t.father[cur]; ok {
			next = append(next, f)
		}
		if m, ok := t.mother[cur]; ok {
			next = append(next, m)
		}
		next = append(next, t.children[cur]...)
		next = append(next, t.spouses[cur]...)
		for sib := range t.declared[cur] {
			next = append(next, sib)
		}
		for _, n := range next {
			if !seen[n] {
				stack = append(stack, n)
			}
		}
	}
	return seen
}

// Fingerprint returns a stable SHA-256 digest of the tree's structure:
// persons, typed edges and the deceased marker. Two trees with the same
// structure share a fingerprint, which keys the division cache.
func (t *FamilyTree) Fingerprint() string {
	var lines []string
	for id, p := range t.persons {
		lines = append(lines, fmt.Sprintf("p|%s|%s|%s|%t", id, p.Name, p.Sex, p.Alive))
	}
	for child, f := range t.father {
		lines = append(lines, fmt.Sprintf("e|%s|%s|parent", f, child))
	}
	for child, m := range t.mother {
		lines = append(lines, fmt.Sprintf("e|%s|%s|parent", m, child))
	}
	for a, partners := range t.spouses {
		for _, b := range partners {
			if a < b {
				lines = append(lines, fmt.Sprintf("e|%s|%s|spouse", a, b))
			}
		}
	}
	for a, sibs := range t.declared {
		for b, kind := range sibs {
			if a < b {
				lines = append(lines, fmt.Sprintf("e|%s|%s|sibling_%s", a, b, kind))
			}
		}
	}
	lines = append(lines, fmt.Sprintf("d|%s", t.deceased))
	sort.Strings(lines)

	hash := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(hash[:])
}
