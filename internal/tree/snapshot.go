package tree

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ybensalah/mawarith/internal/model"
)

// Snapshot is the YAML file form of a family tree. It carries everything
// needed to reconstruct the relationship graph exactly: ids, sexes, alive
// flags, typed edges and the deceased marker.
type Snapshot struct {
	Deceased      model.PersonID `yaml:"deceased"`
	Persons       []model.Person `yaml:"persons"`
	Relationships []SnapshotEdge `yaml:"relationships"`
}

// SnapshotEdge is one typed edge in a snapshot. For kind "parent", From is
// the parent and To the child.
type SnapshotEdge struct {
	From model.PersonID         `yaml:"from"`
	To   model.PersonID         `yaml:"to"`
	Kind model.RelationshipKind `yaml:"kind"`
}

// Snapshot returns a deterministic snapshot of the tree
func (t *FamilyTree) Snapshot() *Snapshot {
	snap := &Snapshot{Deceased: t.deceased}
	for _, id := range t.order {
		snap.Persons = append(snap.Persons, *t.persons[id])
	}

	var edges []SnapshotEdge
	for child, f := range t.father {
		edges = append(edges, SnapshotEdge{From: f, To: child, Kind: model.RelParent})
	}
	for child, m := range t.mother {
		edges = append(edges, SnapshotEdge{From: m, To: child, Kind: model.RelParent})
	}
	for a, partners := range t.spouses {
		for _, b := range partners {
			if a < b {
				edges = append(edges, SnapshotEdge{From: a, To: b, Kind: model.RelSpouse})
			}
		}
	}
	for a, sibs := range t.declared {
		for b, kind := range sibs {
			if a < b {
				edges = append(edges, SnapshotEdge{From: a, To: b, Kind: relKindOf(kind)})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Kind < edges[j].Kind
	})
	snap.Relationships = edges
	return snap
}

func relKindOf(kind model.SiblingKind) model.RelationshipKind {
	switch kind {
	case model.SiblingFull:
		return model.RelSiblingFull
	case model.SiblingPaternal:
		return model.RelSiblingPaternal
	default:
		return model.RelSiblingMaternal
	}
}

// FromSnapshot rebuilds a family tree from a snapshot, replaying every edge
// through the validating API so structural violations in the file surface
// as InvalidRelationship.
func FromSnapshot(snap *Snapshot) (*FamilyTree, error) {
	t := New()
	for _, p := range snap.Persons {
		if p.ID == "" {
			return nil, fmt.Errorf("snapshot: person %q has no id", p.Name)
		}
		alive := p.Alive
		if p.ID == snap.Deceased {
			alive = false
		}
		if _, err := t.AddPersonWithID(p.ID, p.Name, p.Sex, alive); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
	}
	for _, e := range snap.Relationships {
		if err := t.AddRelationship(e.From, e.To, e.Kind); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
	}
	if snap.Deceased != "" {
		if err := t.SetDeceased(snap.Deceased); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
	}
	return t, nil
}

// Save writes the tree as a YAML snapshot file
func (t *FamilyTree) Save(path string) error {
	data, err := yaml.Marshal(t.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads a YAML snapshot file and rebuilds the tree
func Load(path string) (*FamilyTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return FromSnapshot(&snap)
}
