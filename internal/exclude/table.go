package exclude

import (
	"github.com/ybensalah/mawarith/internal/model"
)

// Counts is the number of alive, not-yet-excluded persons per category
type Counts map[model.HeirCategory]int

// Condition is a named precondition on a rule. The name is carried into
// the audit trail so every pruning decision is explainable.
type Condition struct {
	Name  string
	Holds func(c Counts) bool
}

var condAlways = Condition{
	Name:  "always",
	Holds: func(Counts) bool { return true },
}

// Two or more daughters absorb the 2/3 descendant share; a granddaughter
// is blocked unless a grandson turns her into his residuary partner.
var condTwoDaughtersNoGrandson = Condition{
	Name: "two or more daughters and no grandson",
	Holds: func(c Counts) bool {
		return c[model.CategoryDaughter] >= 2 && c[model.CategoryGrandson] == 0
	},
}

// With a female descendant present, a full sister takes the rank of a full
// brother in the residuary order and blocks everyone below that rank.
var condFemaleDescendant = Condition{
	Name: "daughter or granddaughter present",
	Holds: func(c Counts) bool {
		return c[model.CategoryDaughter]+c[model.CategoryGranddaughter] >= 1
	},
}

// Two full sisters absorb the 2/3 sister share; a paternal sister is
// blocked unless a paternal brother makes her residuary.
var condTwoFullSistersNoPaternalBrother = Condition{
	Name: "two or more full sisters and no paternal brother",
	Holds: func(c Counts) bool {
		return c[model.CategorySisterFull] >= 2 && c[model.CategoryBrotherPaternal] == 0
	},
}

// Rule is one row of the exclusion table: the presence of Excluder removes
// every category in Excludes, when the precondition holds.
type Rule struct {
	Excluder model.HeirCategory
	Excludes []model.HeirCategory
	When     Condition
}

var allSiblings = []model.HeirCategory{
	model.CategoryBrotherFull, model.CategorySisterFull,
	model.CategoryBrotherPaternal, model.CategorySisterPaternal,
	model.CategoryBrotherMaternal, model.CategorySisterMaternal,
}

var maternalSiblings = []model.HeirCategory{
	model.CategoryBrotherMaternal, model.CategorySisterMaternal,
}

var collaterals = []model.HeirCategory{
	model.CategoryNephewFull, model.CategoryNephewPaternal,
	model.CategoryUncleFull, model.CategoryUnclePaternal,
	model.CategoryCousinFull, model.CategoryCousinPaternal,
}

func cats(groups ...[]model.HeirCategory) []model.HeirCategory {
	var out []model.HeirCategory
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Table returns the authoritative exclusion (hajb) rules, ordered from the
// nearest excluder to the farthest. The rules are the standard Sunni table;
// the grandfather fully excludes siblings, as in the Hanafi school.
func Table() []Rule {
	rules := []Rule{
		{
			Excluder: model.CategorySon,
			Excludes: cats(
				[]model.HeirCategory{model.CategoryGrandson, model.CategoryGranddaughter},
				allSiblings, collaterals,
			),
			When: condAlways,
		},
		{
			Excluder: model.CategoryDaughter,
			Excludes: []model.HeirCategory{model.CategoryGranddaughter},
			When:     condTwoDaughtersNoGrandson,
		},
		{
			Excluder: model.CategoryDaughter,
			Excludes: maternalSiblings,
			When:     condAlways,
		},
		{
			Excluder: model.CategoryGrandson,
			Excludes: cats(allSiblings, collaterals),
			When:     condAlways,
		},
		{
			Excluder: model.CategoryGranddaughter,
			Excludes: maternalSiblings,
			When:     condAlways,
		},
		{
			Excluder: model.CategoryFather,
			Excludes: cats(
				[]model.HeirCategory{model.CategoryGrandfather},
				allSiblings, collaterals,
			),
			When: condAlways,
		},
		{
			Excluder: model.CategoryMother,
			Excludes: []model.HeirCategory{model.CategoryGrandmother},
			When:     condAlways,
		},
		{
			Excluder: model.CategoryGrandfather,
			Excludes: cats(allSiblings, collaterals),
			When:     condAlways,
		},
		{
			Excluder: model.CategoryBrotherFull,
			Excludes: cats(
				[]model.HeirCategory{model.CategoryBrotherPaternal, model.CategorySisterPaternal},
				collaterals,
			),
			When: condAlways,
		},
		{
			Excluder: model.CategorySisterFull,
			Excludes: cats(
				[]model.HeirCategory{model.CategoryBrotherPaternal, model.CategorySisterPaternal},
				collaterals,
			),
			When: condFemaleDescendant,
		},
		{
			Excluder: model.CategorySisterFull,
			Excludes: []model.HeirCategory{model.CategorySisterPaternal},
			When:     condTwoFullSistersNoPaternalBrother,
		},
		{
			Excluder: model.CategoryBrotherPaternal,
			Excludes: collaterals,
			When:     condAlways,
		},
		{
			Excluder: model.CategorySisterPaternal,
			Excludes: collaterals,
			When:     condFemaleDescendant,
		},
		{
			Excluder: model.CategoryNephewFull,
			Excludes: []model.HeirCategory{
				model.CategoryNephewPaternal,
				model.CategoryUncleFull, model.CategoryUnclePaternal,
				model.CategoryCousinFull, model.CategoryCousinPaternal,
			},
			When: condAlways,
		},
		{
			Excluder: model.CategoryNephewPaternal,
			Excludes: []model.HeirCategory{
				model.CategoryUncleFull, model.CategoryUnclePaternal,
				model.CategoryCousinFull, model.CategoryCousinPaternal,
			},
			When: condAlways,
		},
		{
			Excluder: model.CategoryUncleFull,
			Excludes: []model.HeirCategory{
				model.CategoryUnclePaternal,
				model.CategoryCousinFull, model.CategoryCousinPaternal,
			},
			When: condAlways,
		},
		{
			Excluder: model.CategoryUnclePaternal,
			Excludes: []model.HeirCategory{model.CategoryCousinFull, model.CategoryCousinPaternal},
			When:     condAlways,
		},
		{
			Excluder: model.CategoryCousinFull,
			Excludes: []model.HeirCategory{model.CategoryCousinPaternal},
			When:     condAlways,
		},
	}

	// Any named heir displaces the distant kindred fallback entirely
	condNamed := Condition{Name: "any named heir present", Holds: func(Counts) bool { return true }}
	for _, cat := range NamedCategories() {
		rules = append(rules, Rule{
			Excluder: cat,
			Excludes: []model.HeirCategory{model.CategoryDistantKindred},
			When:     condNamed,
		})
	}
	return rules
}

// NamedCategories lists every category that inherits in its own right, in
// precedence order.
func NamedCategories() []model.HeirCategory {
	out := []model.HeirCategory{
		model.CategoryHusband, model.CategoryWife,
		model.CategorySon, model.CategoryDaughter,
		model.CategoryGrandson, model.CategoryGranddaughter,
		model.CategoryFather, model.CategoryMother,
		model.CategoryGrandfather, model.CategoryGrandmother,
	}
	out = append(out, allSiblings...)
	out = append(out, collaterals...)
	return out
}
