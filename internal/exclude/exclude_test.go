package exclude

import (
	"testing"

	"github.com/ybensalah/mawarith/internal/model"
)

func classifiedSet(cats ...model.HeirCategory) map[model.PersonID]model.HeirCategory {
	out := make(map[model.PersonID]model.HeirCategory)
	for i, cat := range cats {
		out[model.PersonID(rune('a'+i))] = cat
	}
	return out
}

func categories(pruned map[model.PersonID]model.HeirCategory) map[model.HeirCategory]int {
	out := make(map[model.HeirCategory]int)
	for _, cat := range pruned {
		out[cat]++
	}
	return out
}

func TestApply_SonExcludesSiblingsAndGrandchildren(t *testing.T) {
	pruned, audit := NewEngine().Apply(classifiedSet(
		model.CategorySon,
		model.CategoryGrandson,
		model.CategoryBrotherFull,
		model.CategorySisterMaternal,
		model.CategoryUncleFull,
		model.CategoryMother,
	))

	got := categories(pruned)
	if got[model.CategorySon] != 1 || got[model.CategoryMother] != 1 {
		t.Error("son and mother must survive")
	}
	for _, cat := range []model.HeirCategory{
		model.CategoryGrandson, model.CategoryBrotherFull,
		model.CategorySisterMaternal, model.CategoryUncleFull,
	} {
		if got[cat] != 0 {
			t.Errorf("%s must be excluded by the son", cat)
		}
	}

	if len(audit) == 0 {
		t.Fatal("expected audit entries")
	}
	for _, x := range audit {
		if x.By != model.CategorySon {
			t.Errorf("excluder should be son, got %s", x.By)
		}
	}
}

func TestApply_FatherExcludesGrandfather(t *testing.T) {
	pruned, _ := NewEngine().Apply(classifiedSet(
		model.CategoryFather,
		model.CategoryGrandfather,
		model.CategoryBrotherFull,
	))

	got := categories(pruned)
	if got[model.CategoryFather] != 1 {
		t.Error("father must survive")
	}
	if got[model.CategoryGrandfather] != 0 {
		t.Error("grandfather must be excluded by the father")
	}
	if got[model.CategoryBrotherFull] != 0 {
		t.Error("full brother must be excluded by the father")
	}
}

func TestApply_ExcludedExcluderDoesNotExclude(t *testing.T) {
	// The grandson would exclude siblings, but the son excludes the
	// grandson first; still, the son excludes siblings himself. Use a
	// custom table to isolate the mechanism: A excludes B, B excludes C.
	rules := []Rule{
		{Excluder: model.CategorySon, Excludes: []model.HeirCategory{model.CategoryGrandson}, When: condAlways},
		{Excluder: model.CategoryGrandson, Excludes: []model.HeirCategory{model.CategoryBrotherFull}, When: condAlways},
	}
	pruned, _ := NewEngineWithRules(rules).Apply(classifiedSet(
		model.CategorySon,
		model.CategoryGrandson,
		model.CategoryBrotherFull,
	))

	got := categories(pruned)
	if got[model.CategoryGrandson] != 0 {
		t.Error("grandson must be excluded")
	}
	if got[model.CategoryBrotherFull] != 1 {
		t.Error("an excluded grandson must not exclude the brother")
	}
}

func TestApply_GranddaughterBlockedByTwoDaughters(t *testing.T) {
	// Two daughters, no grandson: the granddaughter is blocked
	pruned, _ := NewEngine().Apply(classifiedSet(
		model.CategoryDaughter,
		model.CategoryDaughter,
		model.CategoryGranddaughter,
	))
	if categories(pruned)[model.CategoryGranddaughter] != 0 {
		t.Error("granddaughter must be blocked by two daughters")
	}

	// A grandson present turns her into his residuary partner instead
	pruned, _ = NewEngine().Apply(classifiedSet(
		model.CategoryDaughter,
		model.CategoryDaughter,
		model.CategoryGranddaughter,
		model.CategoryGrandson,
	))
	if categories(pruned)[model.CategoryGranddaughter] != 1 {
		t.Error("granddaughter must survive alongside a grandson")
	}

	// One daughter leaves room for the completing sixth
	pruned, _ = NewEngine().Apply(classifiedSet(
		model.CategoryDaughter,
		model.CategoryGranddaughter,
	))
	if categories(pruned)[model.CategoryGranddaughter] != 1 {
		t.Error("granddaughter must survive alongside one daughter")
	}
}

func TestApply_MaternalSiblingsBlockedByDescendants(t *testing.T) {
	pruned, _ := NewEngine().Apply(classifiedSet(
		model.CategoryDaughter,
		model.CategoryBrotherMaternal,
		model.CategorySisterMaternal,
		model.CategorySisterFull,
	))

	got := categories(pruned)
	if got[model.CategoryBrotherMaternal] != 0 || got[model.CategorySisterMaternal] != 0 {
		t.Error("maternal siblings must be excluded by a daughter")
	}
	if got[model.CategorySisterFull] != 1 {
		t.Error("a full sister is not excluded by a daughter")
	}
}

func TestApply_NamedHeirDisplacesDistantKindred(t *testing.T) {
	pruned, _ := NewEngine().Apply(classifiedSet(
		model.CategoryWife,
		model.CategoryDistantKindred,
	))

	got := categories(pruned)
	if got[model.CategoryDistantKindred] != 0 {
		t.Error("any named heir must displace distant kindred")
	}
	if got[model.CategoryWife] != 1 {
		t.Error("wife must survive")
	}
}

func TestApply_DistantKindredSurvivesAlone(t *testing.T) {
	pruned, _ := NewEngine().Apply(classifiedSet(
		model.CategoryDistantKindred,
		model.CategoryDistantKindred,
		model.CategoryIneligible,
	))

	got := categories(pruned)
	if got[model.CategoryDistantKindred] != 2 {
		t.Error("distant kindred must survive with no named heir")
	}
	if got[model.CategoryIneligible] != 0 {
		t.Error("ineligible persons are dropped")
	}
}

func TestApply_Monotonic(t *testing.T) {
	// Adding a nearer heir never resurrects anyone: everyone pruned in the
	// smaller set stays pruned in the larger one
	base := []model.HeirCategory{
		model.CategoryFather,
		model.CategoryBrotherFull,
		model.CategoryUnclePaternal,
	}
	withSon := append(append([]model.HeirCategory{}, base...), model.CategorySon)

	prunedBase, _ := NewEngine().Apply(classifiedSet(base...))
	prunedMore, _ := NewEngine().Apply(classifiedSet(withSon...))

	baseCats := categories(prunedBase)
	moreCats := categories(prunedMore)
	for cat, n := range moreCats {
		if cat == model.CategorySon {
			continue
		}
		if n > baseCats[cat] {
			t.Errorf("adding a son resurrected %s", cat)
		}
	}
}

func TestTable_AuditDeterministic(t *testing.T) {
	set := classifiedSet(
		model.CategorySon,
		model.CategoryFather,
		model.CategoryBrotherFull,
		model.CategoryGrandson,
		model.CategoryUncleFull,
	)

	_, first := NewEngine().Apply(set)
	for i := 0; i < 10; i++ {
		_, again := NewEngine().Apply(set)
		if len(again) != len(first) {
			t.Fatal("audit length varies across runs")
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("audit order varies at %d: %v vs %v", j, first[j], again[j])
			}
		}
	}
}
