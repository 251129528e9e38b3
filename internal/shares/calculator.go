package shares

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/ybensalah/mawarith/internal/model"
)

// Heir is one surviving, non-excluded person entering share calculation
type Heir struct {
	ID       model.PersonID
	Name     string
	Sex      model.Sex
	Category model.HeirCategory
}

// Facts are conditioning facts that come from outside the pruned set.
// SiblingCount is the number of alive siblings before exclusion: excluded
// siblings still push the mother from one third to one sixth.
type Facts struct {
	SiblingCount int
}

// RawShare is one person's uncorrected entitlement. A person appears twice
// when doctrine grants both a fixed share and a residue (the father with
// only female descendants).
type RawShare struct {
	ID       model.PersonID
	Name     string
	Category model.HeirCategory
	Frac     *big.Rat
	Kind     model.ShareKind
}

// Calculator assigns each heir a fixed (fardh) or residual (tasib)
// fraction. All fixed categories are evaluated first so the residue is
// known before residuary heirs divide it; any leftover with no residuary
// present is the normalizer's problem, not ours.
type Calculator struct{}

// NewCalculator creates a new share calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute returns the raw shares for the pruned heir set. The sum may be
// above or below one; only the normalizer makes it exactly one.
func (c *Calculator) Compute(heirs []Heir, facts Facts) ([]RawShare, error) {
	byCat := make(map[model.HeirCategory][]Heir)
	for _, h := range heirs {
		byCat[h.Category] = append(byCat[h.Category], h)
	}
	for cat := range byCat {
		group := byCat[cat]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Name != group[j].Name {
				return group[i].Name < group[j].Name
			}
			return group[i].ID < group[j].ID
		})
	}
	count := func(cat model.HeirCategory) int { return len(byCat[cat]) }

	// Conditioning facts from the pruned set
	hasMaleDesc := count(model.CategorySon)+count(model.CategoryGrandson) > 0
	hasFemaleDesc := count(model.CategoryDaughter)+count(model.CategoryGranddaughter) > 0
	hasDesc := hasMaleDesc || hasFemaleDesc
	spousePresent := count(model.CategoryHusband)+count(model.CategoryWife) > 0

	var out []RawShare
	emit := func(h Heir, frac *big.Rat, kind model.ShareKind) {
		if frac.Sign() <= 0 {
			return
		}
		out = append(out, RawShare{ID: h.ID, Name: h.Name, Category: h.Category, Frac: frac, Kind: kind})
	}
	emitEach := func(group []Heir, total *big.Rat, kind model.ShareKind) {
		if len(group) == 0 {
			return
		}
		each := new(big.Rat).Quo(total, big.NewRat(int64(len(group)), 1))
		for _, h := range group {
			emit(h, new(big.Rat).Set(each), kind)
		}
	}

	// 1. Spouse
	spouseTotal := new(big.Rat)
	if n := count(model.CategoryHusband); n > 0 {
		share := big.NewRat(1, 2)
		if hasDesc {
			share = big.NewRat(1, 4)
		}
		spouseTotal.Set(share)
		emit(byCat[model.CategoryHusband][0], share, model.ShareFixed)
	} else if count(model.CategoryWife) > 0 {
		total := big.NewRat(1, 4)
		if hasDesc {
			total = big.NewRat(1, 8)
		}
		spouseTotal.Set(total)
		emitEach(byCat[model.CategoryWife], total, model.ShareFixed)
	}

	// 2. Mother
	if count(model.CategoryMother) > 0 {
		mother := byCat[model.CategoryMother][0]
		switch {
		case hasDesc || facts.SiblingCount >= 2:
			emit(mother, big.NewRat(1, 6), model.ShareFixed)
		case spousePresent && count(model.CategoryFather) > 0:
			// Umariyyatan: with a spouse and both parents only, the
			// mother takes a third of what remains after the spouse
			rest := new(big.Rat).Sub(big.NewRat(1, 1), spouseTotal)
			emit(mother, rest.Mul(rest, big.NewRat(1, 3)), model.ShareFixed)
		default:
			emit(mother, big.NewRat(1, 3), model.ShareFixed)
		}
	}

	// 3. Father, or grandfather in his absence. A sixth alongside any
	// descendant; with no male descendant he also takes the residue.
	for _, cat := range []model.HeirCategory{model.CategoryFather, model.CategoryGrandfather} {
		if count(cat) == 0 {
			continue
		}
		if hasDesc {
			emit(byCat[cat][0], big.NewRat(1, 6), model.ShareFixed)
		}
	}

	// 4. Grandmothers share a sixth when the mother is absent
	if count(model.CategoryGrandmother) > 0 {
		emitEach(byCat[model.CategoryGrandmother], big.NewRat(1, 6), model.ShareFixed)
	}

	// 5. Daughters, unless a son makes them residuary
	nDaughters := count(model.CategoryDaughter)
	if nDaughters > 0 && count(model.CategorySon) == 0 {
		total := big.NewRat(1, 2)
		if nDaughters >= 2 {
			total = big.NewRat(2, 3)
		}
		emitEach(byCat[model.CategoryDaughter], total, model.ShareFixed)
	}

	// 6. Granddaughters: full descendant share when no daughters, the
	// completing sixth alongside one daughter, residuary with a grandson
	nGranddaughters := count(model.CategoryGranddaughter)
	if nGranddaughters > 0 && count(model.CategoryGrandson) == 0 {
		switch nDaughters {
		case 0:
			total := big.NewRat(1, 2)
			if nGranddaughters >= 2 {
				total = big.NewRat(2, 3)
			}
			emitEach(byCat[model.CategoryGranddaughter], total, model.ShareFixed)
		case 1:
			emitEach(byCat[model.CategoryGranddaughter], big.NewRat(1, 6), model.ShareFixed)
		}
	}

	// 7. Full sisters: fixed only when no full brother and no female
	// descendant (with a female descendant they become residuary)
	nSistersFull := count(model.CategorySisterFull)
	if nSistersFull > 0 && count(model.CategoryBrotherFull) == 0 && !hasFemaleDesc {
		total := big.NewRat(1, 2)
		if nSistersFull >= 2 {
			total = big.NewRat(2, 3)
		}
		emitEach(byCat[model.CategorySisterFull], total, model.ShareFixed)
	}

	// 8. Paternal sisters: as full sisters, or the completing sixth
	// alongside exactly one full sister
	nSistersPaternal := count(model.CategorySisterPaternal)
	if nSistersPaternal > 0 && count(model.CategoryBrotherPaternal) == 0 && !hasFemaleDesc {
		switch nSistersFull {
		case 0:
			total := big.NewRat(1, 2)
			if nSistersPaternal >= 2 {
				total = big.NewRat(2, 3)
			}
			emitEach(byCat[model.CategorySisterPaternal], total, model.ShareFixed)
		case 1:
			emitEach(byCat[model.CategorySisterPaternal], big.NewRat(1, 6), model.ShareFixed)
		}
	}

	// 9. Maternal siblings: a sixth for one, a third shared equally for
	// two or more; the sexes inherit equally
	maternal := append(append([]Heir{}, byCat[model.CategoryBrotherMaternal]...), byCat[model.CategorySisterMaternal]...)
	if len(maternal) > 0 {
		sort.Slice(maternal, func(i, j int) bool {
			if maternal[i].Name != maternal[j].Name {
				return maternal[i].Name < maternal[j].Name
			}
			return maternal[i].ID < maternal[j].ID
		})
		total := big.NewRat(1, 6)
		if len(maternal) >= 2 {
			total = big.NewRat(1, 3)
		}
		emitEach(maternal, total, model.ShareFixed)
	}

	// 10. Residue to the nearest residuary class
	residue := big.NewRat(1, 1)
	for _, s := range out {
		residue.Sub(residue, s.Frac)
	}
	if residue.Sign() > 0 {
		class := c.residuaryClass(byCat, hasFemaleDesc)
		c.distributeResidue(class, residue, emit)
	}

	// 11. Distant kindred fallback: only when nobody else inherits
	if len(out) == 0 {
		if kin := byCat[model.CategoryDistantKindred]; len(kin) > 0 {
			emitEach(kin, big.NewRat(1, 1), model.ShareResidual)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("compute shares: %w", model.ErrNoEligibleHeir)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category.Precedence() < out[j].Category.Precedence()
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// residuaryClass returns the members of the nearest residuary class present
// together with whether males take double the female share. Full and
// paternal sisters step into their brothers' rank when a female descendant
// turned them residuary.
func (c *Calculator) residuaryClass(byCat map[model.HeirCategory][]Heir, hasFemaleDesc bool) []Heir {
	paired := func(male, female model.HeirCategory) []Heir {
		males := byCat[male]
		if len(males) == 0 {
			return nil
		}
		return append(append([]Heir{}, males...), byCat[female]...)
	}

	for _, cat := range model.ResiduaryOrder {
		switch cat {
		case model.CategorySon:
			if class := paired(model.CategorySon, model.CategoryDaughter); class != nil {
				return class
			}
		case model.CategoryGrandson:
			if class := paired(model.CategoryGrandson, model.CategoryGranddaughter); class != nil {
				return class
			}
		case model.CategoryBrotherFull:
			if class := paired(model.CategoryBrotherFull, model.CategorySisterFull); class != nil {
				return class
			}
			if hasFemaleDesc && len(byCat[model.CategorySisterFull]) > 0 {
				return byCat[model.CategorySisterFull]
			}
		case model.CategoryBrotherPaternal:
			if class := paired(model.CategoryBrotherPaternal, model.CategorySisterPaternal); class != nil {
				return class
			}
			if hasFemaleDesc && len(byCat[model.CategorySisterPaternal]) > 0 {
				return byCat[model.CategorySisterPaternal]
			}
		default:
			if members := byCat[cat]; len(members) > 0 {
				return members
			}
		}
	}
	return nil
}

// distributeResidue splits the residue across the class, two units per
// male and one per female
func (c *Calculator) distributeResidue(class []Heir, residue *big.Rat, emit func(Heir, *big.Rat, model.ShareKind)) {
	if len(class) == 0 {
		return
	}
	units := int64(0)
	for _, h := range class {
		if h.Sex == model.SexMale {
			units += 2
		} else {
			units++
		}
	}
	perUnit := new(big.Rat).Quo(residue, big.NewRat(units, 1))
	for _, h := range class {
		mult := int64(1)
		if h.Sex == model.SexMale {
			mult = 2
		}
		share := new(big.Rat).Mul(perUnit, big.NewRat(mult, 1))
		emit(h, share, model.ShareResidual)
	}
}
