package display

import (
	"fmt"
	"strings"

	"github.com/ybensalah/mawarith/internal/model"
	"github.com/ybensalah/mawarith/internal/tree"
)

// Renderer produces human-readable text for divisions and trees in the
// catalog's language
type Renderer struct {
	catalog *Catalog
}

// NewRenderer creates a renderer for the given BCP 47 language string
func NewRenderer(lang string) *Renderer {
	return &Renderer{catalog: CatalogFor(lang)}
}

// Catalog exposes the active catalog
func (r *Renderer) Catalog() *Catalog {
	return r.catalog
}

// RenderDivision formats a division as text: one line per share, then the
// exclusion audit and any correction applied
func (r *Renderer) RenderDivision(d *model.EstateDivision) string {
	c := r.catalog
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s: %s)\n", c.Term("division"), c.Term("doctrine"), d.Doctrine)
	b.WriteString(strings.Repeat("=", 40) + "\n")

	for _, e := range d.Entries {
		fmt.Fprintf(&b, "%-20s %-24s %-10s %s\n",
			e.Name, c.Label(e.Category), c.Term(string(e.Kind)), e.Fraction.String())
	}

	fmt.Fprintf(&b, "%s: %s\n", c.Term("total"), d.Total().String())

	if d.AwlApplied {
		fmt.Fprintf(&b, "* %s\n", c.Term("awl"))
	}
	if d.RaddApplied {
		fmt.Fprintf(&b, "* %s\n", c.Term("radd"))
	}

	if len(d.Exclusions) > 0 {
		fmt.Fprintf(&b, "\n%s:\n", c.Term("excluded"))
		for _, x := range d.Exclusions {
			fmt.Fprintf(&b, "- %s %s %s (%s)\n",
				c.Label(x.Excluded), c.Term("excluded_by"), c.Label(x.By), x.Condition)
		}
	}

	return b.String()
}

// RenderTree formats a family tree as text: the deceased first, then every
// person with their recorded relations
func (r *Renderer) RenderTree(t *tree.FamilyTree) string {
	c := r.catalog
	var b strings.Builder

	if deceased, ok := t.Deceased(); ok {
		fmt.Fprintf(&b, "%s: %s\n", c.Term("deceased"), deceased.Name)
	}

	for _, p := range t.Persons() {
		status := c.Term("alive")
		if !p.Alive {
			status = c.Term("dead")
		}
		fmt.Fprintf(&b, "%s (%s, %s)\n", p.Name, p.Sex, status)

		if fid, ok := t.FatherOf(p.ID); ok {
			if f, ok := t.Person(fid); ok {
				fmt.Fprintf(&b, "  %s: %s\n", c.Label(model.CategoryFather), f.Name)
			}
		}
		if mid, ok := t.MotherOf(p.ID); ok {
			if m, ok := t.Person(mid); ok {
				fmt.Fprintf(&b, "  %s: %s\n", c.Label(model.CategoryMother), m.Name)
			}
		}
		for _, sid := range t.SpousesOf(p.ID) {
			if s, ok := t.Person(sid); ok {
				cat := model.CategoryWife
				if s.Sex == model.SexMale {
					cat = model.CategoryHusband
				}
				fmt.Fprintf(&b, "  %s: %s\n", c.Label(cat), s.Name)
			}
		}
	}

	return b.String()
}
