package model

// HeirCategory is the canonical relation-to-deceased class assigned by the
// classifier. The set is closed: every alive relative maps to exactly one
// category, with the nearer relation winning when several paths exist.
type HeirCategory string

const (
	// Spouses
	CategoryHusband HeirCategory = "husband"
	CategoryWife    HeirCategory = "wife"

	// Descendants. Grandson/granddaughter mean "child of a son" at any
	// depth through the male line; a daughter's children are distant kindred.
	CategorySon           HeirCategory = "son"
	CategoryDaughter      HeirCategory = "daughter"
	CategoryGrandson      HeirCategory = "grandson"
	CategoryGranddaughter HeirCategory = "granddaughter"

	// Ancestors. Grandfather means the paternal line only; a mother's
	// father is distant kindred. Grandmother covers both lines.
	CategoryFather      HeirCategory = "father"
	CategoryMother      HeirCategory = "mother"
	CategoryGrandfather HeirCategory = "grandfather"
	CategoryGrandmother HeirCategory = "grandmother"

	// Siblings by subtype
	CategoryBrotherFull     HeirCategory = "brother_full"
	CategorySisterFull      HeirCategory = "sister_full"
	CategoryBrotherPaternal HeirCategory = "brother_paternal"
	CategorySisterPaternal  HeirCategory = "sister_paternal"
	CategoryBrotherMaternal HeirCategory = "brother_maternal"
	CategorySisterMaternal  HeirCategory = "sister_maternal"

	// Agnatic collaterals
	CategoryNephewFull     HeirCategory = "nephew_full"
	CategoryNephewPaternal HeirCategory = "nephew_paternal"
	CategoryUncleFull      HeirCategory = "uncle_full"
	CategoryUnclePaternal  HeirCategory = "uncle_paternal"
	CategoryCousinFull     HeirCategory = "cousin_full"
	CategoryCousinPaternal HeirCategory = "cousin_paternal"

	// CategoryDistantKindred covers blood relatives outside the named
	// categories (dhawu al-arham): maternal grandfather, aunts, sisters'
	// children, daughters' children, and so on.
	CategoryDistantKindred HeirCategory = "distant_kindred"

	// CategoryIneligible marks people related by marriage only
	// (e.g. a son's wife); they never inherit.
	CategoryIneligible HeirCategory = "ineligible"
)

// precedence orders categories from nearest/strongest to farthest, per the
// classifier's fixed order: direct descendants > parents > spouse > siblings
// > grandparents > collaterals > distant kindred.
var precedence = map[HeirCategory]int{
	CategorySon:             0,
	CategoryDaughter:        1,
	CategoryGrandson:        2,
	CategoryGranddaughter:   3,
	CategoryFather:          4,
	CategoryMother:          5,
	CategoryHusband:         6,
	CategoryWife:            7,
	CategoryBrotherFull:     8,
	CategorySisterFull:      9,
	CategoryBrotherPaternal: 10,
	CategorySisterPaternal:  11,
	CategoryBrotherMaternal: 12,
	CategorySisterMaternal:  13,
	CategoryGrandfather:     14,
	CategoryGrandmother:     15,
	CategoryNephewFull:      16,
	CategoryNephewPaternal:  17,
	CategoryUncleFull:       18,
	CategoryUnclePaternal:   19,
	CategoryCousinFull:      20,
	CategoryCousinPaternal:  21,
	CategoryDistantKindred:  22,
	CategoryIneligible:      23,
}

// Precedence returns the rank of the category in the fixed classification
// order; lower is nearer/stronger.
func (c HeirCategory) Precedence() int {
	if p, ok := precedence[c]; ok {
		return p
	}
	return len(precedence)
}

// Descendant reports whether the category is an inheriting descendant.
// Daughters' children are distant kindred and do not count.
func (c HeirCategory) Descendant() bool {
	switch c {
	case CategorySon, CategoryDaughter, CategoryGrandson, CategoryGranddaughter:
		return true
	}
	return false
}

// Sibling reports whether the category is one of the six sibling subtypes
func (c HeirCategory) Sibling() bool {
	switch c {
	case CategoryBrotherFull, CategorySisterFull,
		CategoryBrotherPaternal, CategorySisterPaternal,
		CategoryBrotherMaternal, CategorySisterMaternal:
		return true
	}
	return false
}

// Spouse reports whether the category is husband or wife
func (c HeirCategory) Spouse() bool {
	return c == CategoryHusband || c == CategoryWife
}

// ResiduaryOrder lists the agnatic residuary classes from nearest to
// farthest. The nearest class present takes the whole residue. Paired female
// categories (daughter with son, and so on) join their class at 2:1 and are
// not listed separately.
var ResiduaryOrder = []HeirCategory{
	CategorySon,
	CategoryGrandson,
	CategoryFather,
	CategoryGrandfather,
	CategoryBrotherFull,
	CategoryBrotherPaternal,
	CategoryNephewFull,
	CategoryNephewPaternal,
	CategoryUncleFull,
	CategoryUnclePaternal,
	CategoryCousinFull,
	CategoryCousinPaternal,
}
