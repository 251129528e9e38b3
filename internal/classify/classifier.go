package classify

import (
	"fmt"

	"github.com/ybensalah/mawarith/internal/model"
	"github.com/ybensalah/mawarith/internal/tree"
)

// Assignment is the classification of one person: the category and the
// length of the relationship path that produced it.
type Assignment struct {
	Category model.HeirCategory
	Depth    int
}

// Classifier walks a family tree outward from the deceased and assigns
// every alive, reachable person exactly one heir category. A person
// satisfying multiple relation paths keeps the strongest one: named
// categories beat distant kindred beat ineligible, then the nearer path
// wins, then the fixed category order breaks ties. The weaker relation is
// discarded here and never carried into exclusion.
type Classifier struct{}

// NewClassifier creates a new classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// strength buckets categories for assignment comparison: any named category
// beats distant kindred, which beats ineligible, regardless of path length.
// A blood nephew who also married into the family is still a nephew.
func strength(cat model.HeirCategory) int {
	switch cat {
	case model.CategoryIneligible:
		return 2
	case model.CategoryDistantKindred:
		return 1
	default:
		return 0
	}
}

// better reports whether (cat, depth) is a stronger assignment than cur:
// by strength bucket, then shorter path, then the fixed category order.
func better(cat model.HeirCategory, depth int, cur Assignment) bool {
	if s, c := strength(cat), strength(cur.Category); s != c {
		return s < c
	}
	if depth != cur.Depth {
		return depth < cur.Depth
	}
	return cat.Precedence() < cur.Category.Precedence()
}

type item struct {
	id    model.PersonID
	cat   model.HeirCategory
	depth int
}

// Classify returns the category for every alive person other than the
// deceased. It fails with UnclassifiablePerson if a reachable relative
// matches no pattern in the transition table.
func (c *Classifier) Classify(t *tree.FamilyTree) (map[model.PersonID]Assignment, error) {
	deceased, ok := t.Deceased()
	if !ok {
		return nil, fmt.Errorf("classify: %w: no deceased set", model.ErrInvalidRelationship)
	}

	best := make(map[model.PersonID]Assignment)
	visited := make(map[model.PersonID]map[model.HeirCategory]bool)
	var queue []item

	enqueue := func(id model.PersonID, cat model.HeirCategory, depth int) {
		if id == deceased.ID {
			return
		}
		if visited[id] == nil {
			visited[id] = make(map[model.HeirCategory]bool)
		}
		if visited[id][cat] {
			return
		}
		visited[id][cat] = true
		queue = append(queue, item{id: id, cat: cat, depth: depth})

		cur, assigned := best[id]
		if !assigned || better(cat, depth, cur) {
			best[id] = Assignment{Category: cat, Depth: depth}
		}
	}

	c.seed(t, deceased, enqueue)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		c.expand(t, deceased, cur, enqueue)
	}

	// Every reachable person must have been assigned; anything missed is
	// input the table does not recognize, surfaced rather than dropped.
	out := make(map[model.PersonID]Assignment)
	for _, p := range t.Persons() {
		if p.ID == deceased.ID {
			continue
		}
		a, assigned := best[p.ID]
		if !assigned {
			return nil, fmt.Errorf("classify: %w: %s", model.ErrUnclassifiablePerson, p.Name)
		}
		if p.Alive {
			out[p.ID] = a
		}
	}
	return out, nil
}

// seed enqueues the deceased's direct relations: spouses, children,
// parents, and siblings with their subtype.
func (c *Classifier) seed(t *tree.FamilyTree, deceased *model.Person, enqueue func(model.PersonID, model.HeirCategory, int)) {
	for _, sid := range t.SpousesOf(deceased.ID) {
		s, _ := t.Person(sid)
		if s.Sex == model.SexMale {
			enqueue(sid, model.CategoryHusband, 1)
		} else {
			enqueue(sid, model.CategoryWife, 1)
		}
	}
	for _, cid := range t.ChildrenOf(deceased.ID) {
		child, _ := t.Person(cid)
		if child.Sex == model.SexMale {
			enqueue(cid, model.CategorySon, 1)
		} else {
			enqueue(cid, model.CategoryDaughter, 1)
		}
	}
	if fid, ok := t.FatherOf(deceased.ID); ok {
		enqueue(fid, model.CategoryFather, 1)
	}
	if mid, ok := t.MotherOf(deceased.ID); ok {
		enqueue(mid, model.CategoryMother, 1)
	}
	for sid, kind := range t.SiblingsOf(deceased.ID) {
		sib, _ := t.Person(sid)
		enqueue(sid, siblingCategory(kind, sib.Sex), 2)
	}
}

// expand walks one hop from the item and enqueues the resulting categories.
// Sibling and uncle subtypes need parent comparison, so those hops bypass
// the transition table.
func (c *Classifier) expand(t *tree.FamilyTree, deceased *model.Person, cur item, enqueue func(model.PersonID, model.HeirCategory, int)) {
	next := cur.depth + 1

	apply := func(id model.PersonID, s step) {
		cat, ok := transition(cur.cat, s)
		if !ok {
			return
		}
		enqueue(id, cat, next)
	}

	// Children of the deceased's parents are siblings, already seeded
	// with their subtype; the table would misread them as generic hops.
	if cur.cat == model.CategoryFather || cur.cat == model.CategoryMother {
		sibs := t.SiblingsOf(deceased.ID)
		for _, cid := range t.ChildrenOf(cur.id) {
			if cid == deceased.ID {
				continue
			}
			child, _ := t.Person(cid)
			kind, isSib := sibs[cid]
			if !isSib {
				// Not a sibling of the deceased through any modeled
				// parent pair; no inheritance relation
				enqueue(cid, model.CategoryIneligible, next)
				continue
			}
			enqueue(cid, siblingCategory(kind, child.Sex), next)
		}
	} else if cur.cat == model.CategoryGrandfather && cur.depth == 2 {
		// Sons of the immediate paternal grandfather are uncles; the
		// subtype depends on whether they share the father's mother
		c.expandUncles(t, deceased, cur, enqueue)
	} else {
		for _, cid := range t.ChildrenOf(cur.id) {
			if cid == deceased.ID {
				continue
			}
			child, _ := t.Person(cid)
			apply(cid, childStep(child.Sex))
		}
	}

	if fid, ok := t.FatherOf(cur.id); ok {
		apply(fid, stepFather)
	}
	if mid, ok := t.MotherOf(cur.id); ok {
		apply(mid, stepMother)
	}
	for _, sid := range t.SpousesOf(cur.id) {
		apply(sid, stepSpouse)
	}
}

func (c *Classifier) expandUncles(t *tree.FamilyTree, deceased *model.Person, cur item, enqueue func(model.PersonID, model.HeirCategory, int)) {
	next := cur.depth + 1
	fatherID, hasFather := t.FatherOf(deceased.ID)
	fatherMother, hasFM := model.PersonID(""), false
	if hasFather {
		fatherMother, hasFM = t.MotherOf(fatherID)
	}

	for _, cid := range t.ChildrenOf(cur.id) {
		if hasFather && cid == fatherID {
			continue
		}
		child, _ := t.Person(cid)
		if child.Sex == model.SexFemale {
			// Paternal aunts
			enqueue(cid, model.CategoryDistantKindred, next)
			continue
		}
		childMother, hasCM := t.MotherOf(cid)
		if hasFM && hasCM && childMother == fatherMother {
			enqueue(cid, model.CategoryUncleFull, next)
		} else {
			enqueue(cid, model.CategoryUnclePaternal, next)
		}
	}
}
