package classify

import (
	"github.com/ybensalah/mawarith/internal/model"
)

// step is one hop along a relationship edge during the lineage walk
type step int

const (
	stepFather step = iota
	stepMother
	stepSon
	stepDaughter
	stepSpouse
)

// childStep returns the step for a child of the given sex
func childStep(sex model.Sex) step {
	if sex == model.SexMale {
		return stepSon
	}
	return stepDaughter
}

// transition maps (current category, step) to the category of the person
// one hop further from the deceased. The table is total over the closed
// category set: every chain ends in a named category, distant kindred, or
// ineligible. Sibling and uncle subtypes are resolved by the walker from
// parent comparison before this table applies, so they enter as seeded
// categories rather than steps.
func transition(cur model.HeirCategory, s step) (model.HeirCategory, bool) {
	// Spouse edges anywhere below the deceased lead to in-laws
	if s == stepSpouse {
		return model.CategoryIneligible, true
	}

	switch cur {
	case model.CategorySon, model.CategoryGrandson:
		// The male descendant line: a son's son is a grandson at any
		// depth, and his daughter keeps the fixed granddaughter share
		switch s {
		case stepSon:
			return model.CategoryGrandson, true
		case stepDaughter:
			return model.CategoryGranddaughter, true
		}
		return model.CategoryIneligible, true

	case model.CategoryDaughter, model.CategoryGranddaughter:
		// A daughter's descendants fall outside the named categories
		switch s {
		case stepSon, stepDaughter:
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryFather, model.CategoryGrandfather:
		switch s {
		case stepFather:
			return model.CategoryGrandfather, true
		case stepMother:
			return model.CategoryGrandmother, true
		case stepSon, stepDaughter:
			// Children of the father are siblings and sons of the
			// immediate grandfather are uncles; the walker resolves
			// both by parent comparison before this table applies.
			// Anything left (children of remoter grandfathers) is
			// distant kindred.
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryMother:
		switch s {
		case stepFather:
			// Maternal grandfather
			return model.CategoryDistantKindred, true
		case stepMother:
			return model.CategoryGrandmother, true
		}
		return model.CategoryIneligible, true

	case model.CategoryGrandmother:
		switch s {
		case stepFather:
			return model.CategoryDistantKindred, true
		case stepMother:
			return model.CategoryGrandmother, true
		case stepSon, stepDaughter:
			// A grandmother's children reached only through her are
			// maternal relatives of a parent
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryBrotherFull:
		switch s {
		case stepSon:
			return model.CategoryNephewFull, true
		case stepDaughter:
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryBrotherPaternal:
		switch s {
		case stepSon:
			return model.CategoryNephewPaternal, true
		case stepDaughter:
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryBrotherMaternal,
		model.CategorySisterFull, model.CategorySisterPaternal, model.CategorySisterMaternal:
		// Maternal brothers' and all sisters' children are distant kindred
		switch s {
		case stepSon, stepDaughter:
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryNephewFull:
		switch s {
		case stepSon:
			return model.CategoryNephewFull, true
		case stepDaughter:
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryNephewPaternal:
		switch s {
		case stepSon:
			return model.CategoryNephewPaternal, true
		case stepDaughter:
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryUncleFull:
		switch s {
		case stepSon:
			return model.CategoryCousinFull, true
		case stepDaughter:
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryUnclePaternal:
		switch s {
		case stepSon:
			return model.CategoryCousinPaternal, true
		case stepDaughter:
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryCousinFull:
		switch s {
		case stepSon:
			return model.CategoryCousinFull, true
		case stepDaughter:
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryCousinPaternal:
		switch s {
		case stepSon:
			return model.CategoryCousinPaternal, true
		case stepDaughter:
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true

	case model.CategoryHusband, model.CategoryWife:
		// Spouses are terminal: their relatives are in-laws
		return model.CategoryIneligible, true

	case model.CategoryDistantKindred, model.CategoryIneligible:
		if cur == model.CategoryDistantKindred && s != stepSpouse {
			return model.CategoryDistantKindred, true
		}
		return model.CategoryIneligible, true
	}

	return "", false
}

// siblingCategory maps a sibling subtype and sex to the heir category
func siblingCategory(kind model.SiblingKind, sex model.Sex) model.HeirCategory {
	switch kind {
	case model.SiblingFull:
		if sex == model.SexMale {
			return model.CategoryBrotherFull
		}
		return model.CategorySisterFull
	case model.SiblingPaternal:
		if sex == model.SexMale {
			return model.CategoryBrotherPaternal
		}
		return model.CategorySisterPaternal
	default:
		if sex == model.SexMale {
			return model.CategoryBrotherMaternal
		}
		return model.CategorySisterMaternal
	}
}
