package display

import (
	"golang.org/x/text/language"

	"github.com/ybensalah/mawarith/internal/model"
)

// Catalog maps heir categories and division terms to labels in one
// language. Catalogs are immutable; render through a Renderer.
type Catalog struct {
	tag    language.Tag
	labels map[model.HeirCategory]string
	terms  map[string]string
}

// Tag returns the catalog language
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Label returns the localized name of a category, falling back to the raw
// category string for anything unmapped
func (c *Catalog) Label(cat model.HeirCategory) string {
	if l, ok := c.labels[cat]; ok {
		return l
	}
	return string(cat)
}

// Term returns a localized division term (awl, radd, fixed, residual, ...)
func (c *Catalog) Term(key string) string {
	if t, ok := c.terms[key]; ok {
		return t
	}
	return key
}

var supported = language.NewMatcher([]language.Tag{
	language.English, // first tag is the fallback
	language.Arabic,
})

// CatalogFor picks the catalog best matching a BCP 47 language string.
// Unrecognized input falls back to English.
func CatalogFor(lang string) *Catalog {
	tag, _ := language.MatchStrings(supported, lang)
	base, _ := tag.Base()
	if base.String() == "ar" {
		return arabic
	}
	return english
}

var english = &Catalog{
	tag: language.English,
	labels: map[model.HeirCategory]string{
		model.CategoryHusband:         "husband",
		model.CategoryWife:            "wife",
		model.CategorySon:             "son",
		model.CategoryDaughter:        "daughter",
		model.CategoryGrandson:        "grandson (son's son)",
		model.CategoryGranddaughter:   "granddaughter (son's daughter)",
		model.CategoryFather:          "father",
		model.CategoryMother:          "mother",
		model.CategoryGrandfather:     "paternal grandfather",
		model.CategoryGrandmother:     "grandmother",
		model.CategoryBrotherFull:     "full brother",
		model.CategorySisterFull:      "full sister",
		model.CategoryBrotherPaternal: "paternal half-brother",
		model.CategorySisterPaternal:  "paternal half-sister",
		model.CategoryBrotherMaternal: "maternal half-brother",
		model.CategorySisterMaternal:  "maternal half-sister",
		model.CategoryNephewFull:      "full brother's son",
		model.CategoryNephewPaternal:  "paternal brother's son",
		model.CategoryUncleFull:       "full paternal uncle",
		model.CategoryUnclePaternal:   "paternal half-uncle",
		model.CategoryCousinFull:      "full uncle's son",
		model.CategoryCousinPaternal:  "paternal uncle's son",
		model.CategoryDistantKindred:  "distant kindred",
		model.CategoryIneligible:      "not an heir",
	},
	terms: map[string]string{
		"division":    "Estate division",
		"deceased":    "Deceased",
		"doctrine":    "Doctrine",
		"fixed":       "fixed",
		"residual":    "residual",
		"awl":         "shares reduced proportionally (awl)",
		"radd":        "surplus returned to heirs (radd)",
		"excluded":    "Excluded",
		"excluded_by": "excluded by",
		"total":       "Total",
		"share":       "Share",
		"heir":        "Heir",
		"alive":       "alive",
		"dead":        "deceased",
	},
}

var arabic = &Catalog{
	tag: language.Arabic,
	labels: map[model.HeirCategory]string{
		model.CategoryHusband:         "زوج",
		model.CategoryWife:            "زوجة",
		model.CategorySon:             "ابن",
		model.CategoryDaughter:        "بنت",
		model.CategoryGrandson:        "ابن الابن",
		model.CategoryGranddaughter:   "بنت الابن",
		model.CategoryFather:          "أب",
		model.CategoryMother:          "أم",
		model.CategoryGrandfather:     "جد لأب",
		model.CategoryGrandmother:     "جدة",
		model.CategoryBrotherFull:     "أخ شقيق",
		model.CategorySisterFull:      "أخت شقيقة",
		model.CategoryBrotherPaternal: "أخ لأب",
		model.CategorySisterPaternal:  "أخت لأب",
		model.CategoryBrotherMaternal: "أخ لأم",
		model.CategorySisterMaternal:  "أخت لأم",
		model.CategoryNephewFull:      "ابن الأخ الشقيق",
		model.CategoryNephewPaternal:  "ابن الأخ لأب",
		model.CategoryUncleFull:       "عم شقيق",
		model.CategoryUnclePaternal:   "عم لأب",
		model.CategoryCousinFull:      "ابن العم الشقيق",
		model.CategoryCousinPaternal:  "ابن العم لأب",
		model.CategoryDistantKindred:  "ذوو الأرحام",
		model.CategoryIneligible:      "غير وارث",
	},
	terms: map[string]string{
		"division":    "قسمة التركة",
		"deceased":    "المتوفى",
		"doctrine":    "المذهب",
		"fixed":       "فرض",
		"residual":    "تعصيب",
		"awl":         "عول",
		"radd":        "رد",
		"excluded":    "المحجوبون",
		"excluded_by": "محجوب بـ",
		"total":       "المجموع",
		"share":       "النصيب",
		"heir":        "الوارث",
		"alive":       "حي",
		"dead":        "متوفى",
	},
}
