package classify

import (
	"errors"
	"testing"

	"github.com/ybensalah/mawarith/internal/model"
	"github.com/ybensalah/mawarith/internal/tree"
)

type builder struct {
	t  *testing.T
	tr *tree.FamilyTree
}

func newBuilder(t *testing.T) *builder {
	return &builder{t: t, tr: tree.New()}
}

func (b *builder) person(name string, sex model.Sex, alive bool) model.PersonID {
	b.t.Helper()
	id, err := b.tr.AddPerson(name, sex, alive)
	if err != nil {
		b.t.Fatalf("add %s: %v", name, err)
	}
	return id
}

func (b *builder) relate(a, c model.PersonID, kind model.RelationshipKind) {
	b.t.Helper()
	if err := b.tr.AddRelationship(a, c, kind); err != nil {
		b.t.Fatalf("relate: %v", err)
	}
}

func (b *builder) classify(deceased model.PersonID) map[model.PersonID]Assignment {
	b.t.Helper()
	if err := b.tr.SetDeceased(deceased); err != nil {
		b.t.Fatal(err)
	}
	out, err := NewClassifier().Classify(b.tr)
	if err != nil {
		b.t.Fatalf("classify: %v", err)
	}
	return out
}

func (b *builder) expect(got map[model.PersonID]Assignment, id model.PersonID, want model.HeirCategory) {
	b.t.Helper()
	a, ok := got[id]
	if !ok {
		b.t.Errorf("person %s not classified", id)
		return
	}
	if a.Category != want {
		b.t.Errorf("person %s classified %s, want %s", id, a.Category, want)
	}
}

func TestClassify_DirectFamily(t *testing.T) {
	b := newBuilder(t)
	d := b.person("Omar", model.SexMale, true)
	wife := b.person("Aisha", model.SexFemale, true)
	son := b.person("Khalid", model.SexMale, true)
	daughter := b.person("Fatima", model.SexFemale, true)
	father := b.person("Abdullah", model.SexMale, true)
	mother := b.person("Amina", model.SexFemale, true)

	b.relate(d, wife, model.RelSpouse)
	b.relate(d, son, model.RelParent)
	b.relate(d, daughter, model.RelParent)
	b.relate(father, d, model.RelParent)
	b.relate(mother, d, model.RelParent)

	got := b.classify(d)

	b.expect(got, wife, model.CategoryWife)
	b.expect(got, son, model.CategorySon)
	b.expect(got, daughter, model.CategoryDaughter)
	b.expect(got, father, model.CategoryFather)
	b.expect(got, mother, model.CategoryMother)
}

func TestClassify_MaleLineDescendants(t *testing.T) {
	b := newBuilder(t)
	d := b.person("Omar", model.SexMale, true)
	son := b.person("Khalid", model.SexMale, false) // predeceased, conducts only
	grandson := b.person("Tariq", model.SexMale, true)
	granddaughter := b.person("Huda", model.SexFemale, true)
	daughter := b.person("Fatima", model.SexFemale, true)
	daughterSon := b.person("Said", model.SexMale, true)

	b.relate(d, son, model.RelParent)
	b.relate(son, grandson, model.RelParent)
	b.relate(son, granddaughter, model.RelParent)
	b.relate(d, daughter, model.RelParent)
	b.relate(daughter, daughterSon, model.RelParent)

	got := b.classify(d)

	// The dead son conducts lineage but is not classified
	if _, ok := got[son]; ok {
		t.Error("dead person must not appear in the classification")
	}
	b.expect(got, grandson, model.CategoryGrandson)
	b.expect(got, granddaughter, model.CategoryGranddaughter)
	// A daughter's son falls outside the named categories
	b.expect(got, daughterSon, model.CategoryDistantKindred)
}

func TestClassify_SiblingsFromSharedParents(t *testing.T) {
	b := newBuilder(t)
	d := b.person("Omar", model.SexMale, true)
	father := b.person("Abdullah", model.SexMale, true)
	mother := b.person("Amina", model.SexFemale, true)
	full := b.person("Hasan", model.SexMale, true)
	paternalSis := b.person("Zaynab", model.SexFemale, true)
	maternal := b.person("Bilal", model.SexMale, true)
	otherMother := b.person("Hind", model.SexFemale, true)

	b.relate(father, d, model.RelParent)
	b.relate(mother, d, model.RelParent)
	b.relate(father, full, model.RelParent)
	b.relate(mother, full, model.RelParent)
	b.relate(father, paternalSis, model.RelParent)
	b.relate(otherMother, paternalSis, model.RelParent)
	b.relate(mother, maternal, model.RelParent)

	got := b.classify(d)

	b.expect(got, full, model.CategoryBrotherFull)
	b.expect(got, paternalSis, model.CategorySisterPaternal)
	b.expect(got, maternal, model.CategoryBrotherMaternal)
	// The paternal sister's own mother is unrelated by blood
	b.expect(got, otherMother, model.CategoryIneligible)
}

func TestClassify_GrandparentsAndUncles(t *testing.T) {
	b := newBuilder(t)
	d := b.person("Omar", model.SexMale, true)
	father := b.person("Abdullah", model.SexMale, false)
	grandfather := b.person("Salim", model.SexMale, true)
	grandmother := b.person("Ruqayya", model.SexFemale, true)
	uncleFull := b.person("Hamza", model.SexMale, true)
	unclePaternal := b.person("Abbas", model.SexMale, true)
	aunt := b.person("Safiyya", model.SexFemale, true)
	motherOfMother := b.person("Khadija", model.SexFemale, true)
	mother := b.person("Amina", model.SexFemale, false)

	b.relate(father, d, model.RelParent)
	b.relate(mother, d, model.RelParent)
	b.relate(grandfather, father, model.RelParent)
	b.relate(grandmother, father, model.RelParent)
	// Uncle sharing the father's mother is a full uncle
	b.relate(grandfather, uncleFull, model.RelParent)
	b.relate(grandmother, uncleFull, model.RelParent)
	// Uncle through the grandfather alone is paternal
	b.relate(grandfather, unclePaternal, model.RelParent)
	b.relate(grandfather, aunt, model.RelParent)
	b.relate(grandmother, aunt, model.RelParent)
	b.relate(motherOfMother, mother, model.RelParent)

	got := b.classify(d)

	b.expect(got, grandfather, model.CategoryGrandfather)
	b.expect(got, grandmother, model.CategoryGrandmother)
	b.expect(got, uncleFull, model.CategoryUncleFull)
	b.expect(got, unclePaternal, model.CategoryUnclePaternal)
	// Paternal aunts and the maternal line's grandmother
	b.expect(got, aunt, model.CategoryDistantKindred)
	b.expect(got, motherOfMother, model.CategoryGrandmother)
}

func TestClassify_NephewsAndCousins(t *testing.T) {
	b := newBuilder(t)
	d := b.person("Omar", model.SexMale, true)
	father := b.person("Abdullah", model.SexMale, false)
	mother := b.person("Amina", model.SexFemale, false)
	brother := b.person("Hasan", model.SexMale, false)
	nephew := b.person("Yusuf", model.SexMale, true)
	niece := b.person("Maryam", model.SexFemale, true)

	b.relate(father, d, model.RelParent)
	b.relate(mother, d, model.RelParent)
	b.relate(father, brother, model.RelParent)
	b.relate(mother, brother, model.RelParent)
	b.relate(brother, nephew, model.RelParent)
	b.relate(brother, niece, model.RelParent)

	got := b.classify(d)

	b.expect(got, nephew, model.CategoryNephewFull)
	// A brother's daughter is not a named heir
	b.expect(got, niece, model.CategoryDistantKindred)
}

func TestClassify_InLawsAreIneligible(t *testing.T) {
	b := newBuilder(t)
	d := b.person("Omar", model.SexMale, true)
	son := b.person("Khalid", model.SexMale, true)
	sonsWife := b.person("Layla", model.SexFemale, true)

	b.relate(d, son, model.RelParent)
	b.relate(son, sonsWife, model.RelSpouse)

	got := b.classify(d)

	b.expect(got, son, model.CategorySon)
	b.expect(got, sonsWife, model.CategoryIneligible)
}

func TestClassify_NearerPathWins(t *testing.T) {
	// The deceased's daughter married his nephew: the nephew's blood path
	// (depth 3 through the brother) beats the in-law path through her.
	b := newBuilder(t)
	d := b.person("Omar", model.SexMale, true)
	father := b.person("Abdullah", model.SexMale, false)
	mother := b.person("Amina", model.SexFemale, false)
	brother := b.person("Hasan", model.SexMale, false)
	nephew := b.person("Yusuf", model.SexMale, true)
	daughter := b.person("Fatima", model.SexFemale, true)

	b.relate(father, d, model.RelParent)
	b.relate(mother, d, model.RelParent)
	b.relate(father, brother, model.RelParent)
	b.relate(mother, brother, model.RelParent)
	b.relate(brother, nephew, model.RelParent)
	b.relate(d, daughter, model.RelParent)
	b.relate(daughter, nephew, model.RelSpouse)

	got := b.classify(d)

	b.expect(got, daughter, model.CategoryDaughter)
	b.expect(got, nephew, model.CategoryNephewFull)
}

func TestClassify_NoDeceased(t *testing.T) {
	tr := tree.New()
	if _, err := tr.AddPerson("Omar", model.SexMale, true); err != nil {
		t.Fatal(err)
	}

	_, err := NewClassifier().Classify(tr)
	if !errors.Is(err, model.ErrInvalidRelationship) {
		t.Errorf("expected InvalidRelationship, got %v", err)
	}
}
