package display

import (
	"strings"
	"testing"

	"github.com/ybensalah/mawarith/internal/model"
)

func TestCatalogFor_Matching(t *testing.T) {
	cases := []struct {
		lang string
		want *Catalog
	}{
		{"en", english},
		{"en-US", english},
		{"ar", arabic},
		{"ar-EG", arabic},
		{"fr", english}, // unsupported falls back
		{"", english},
		{"not a tag", english},
	}
	for _, tc := range cases {
		if got := CatalogFor(tc.lang); got != tc.want {
			t.Errorf("CatalogFor(%q) picked %v", tc.lang, got.Tag())
		}
	}
}

func TestCatalog_LabelFallback(t *testing.T) {
	c := CatalogFor("en")
	if c.Label(model.CategoryHusband) != "husband" {
		t.Errorf("unexpected label: %s", c.Label(model.CategoryHusband))
	}
	if c.Label(model.HeirCategory("no_such")) != "no_such" {
		t.Error("unmapped category must fall back to the raw string")
	}
	if c.Term("missing_term") != "missing_term" {
		t.Error("unmapped term must fall back to the key")
	}
}

func TestCatalog_EveryCategoryLabeled(t *testing.T) {
	all := []model.HeirCategory{
		model.CategoryHusband, model.CategoryWife,
		model.CategorySon, model.CategoryDaughter,
		model.CategoryGrandson, model.CategoryGranddaughter,
		model.CategoryFather, model.CategoryMother,
		model.CategoryGrandfather, model.CategoryGrandmother,
		model.CategoryBrotherFull, model.CategorySisterFull,
		model.CategoryBrotherPaternal, model.CategorySisterPaternal,
		model.CategoryBrotherMaternal, model.CategorySisterMaternal,
		model.CategoryNephewFull, model.CategoryNephewPaternal,
		model.CategoryUncleFull, model.CategoryUnclePaternal,
		model.CategoryCousinFull, model.CategoryCousinPaternal,
		model.CategoryDistantKindred, model.CategoryIneligible,
	}
	for _, c := range []*Catalog{english, arabic} {
		for _, cat := range all {
			if _, ok := c.labels[cat]; !ok {
				t.Errorf("%v catalog missing label for %s", c.Tag(), cat)
			}
		}
	}
}

func sampleDivision() *model.EstateDivision {
	return &model.EstateDivision{
		Doctrine: "standard",
		Entries: []model.ShareEntry{
			{PersonID: "w", Name: "Aisha", Category: model.CategoryWife, Fraction: model.NewFraction(1, 8), Kind: model.ShareFixed},
			{PersonID: "s", Name: "Khalid", Category: model.CategorySon, Fraction: model.NewFraction(7, 8), Kind: model.ShareResidual},
		},
		Exclusions: []model.Exclusion{
			{Excluded: model.CategoryBrotherFull, By: model.CategorySon, Condition: "always"},
		},
	}
}

func TestRenderDivision_English(t *testing.T) {
	out := NewRenderer("en").RenderDivision(sampleDivision())

	for _, want := range []string{
		"Estate division", "standard",
		"Aisha", "wife", "1/8",
		"Khalid", "son", "7/8",
		"Total: 1",
		"full brother excluded by son",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderDivision_Arabic(t *testing.T) {
	out := NewRenderer("ar").RenderDivision(sampleDivision())

	for _, want := range []string{"قسمة التركة", "زوجة", "ابن", "فرض", "تعصيب"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderDivision_CorrectionNotes(t *testing.T) {
	d := sampleDivision()
	d.AwlApplied = true
	d.RaddApplied = true

	out := NewRenderer("en").RenderDivision(d)
	if !strings.Contains(out, "awl") || !strings.Contains(out, "radd") {
		t.Errorf("correction notes missing:\n%s", out)
	}
}
