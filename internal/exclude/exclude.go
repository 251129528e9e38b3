package exclude

import (
	"github.com/ybensalah/mawarith/internal/model"
)

// Engine applies the exclusion table to a classified set, pruning every
// heir displaced by a nearer relative. Exclusion is not symmetric and not
// "closest wins globally": a spouse never excludes children or parents, and
// several categories coexist by design. The table is the single source of
// truth; this engine only evaluates it.
type Engine struct {
	rules []Rule
}

// NewEngine creates an exclusion engine over the standard rule table
func NewEngine() *Engine {
	return &Engine{rules: Table()}
}

// NewEngineWithRules creates an engine over a custom table (tests, other
// doctrinal option sets)
func NewEngineWithRules(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Apply prunes the classified set in one pass over the rule table, nearest
// excluders first. An excluder that has itself been excluded no longer
// excludes anyone. People classified Ineligible are dropped without an
// audit record; they were never heirs. Returns the pruned set and the
// audit trail of exclusions.
func (e *Engine) Apply(classified map[model.PersonID]model.HeirCategory) (map[model.PersonID]model.HeirCategory, []model.Exclusion) {
	counts := make(Counts)
	for _, cat := range classified {
		if cat != model.CategoryIneligible {
			counts[cat]++
		}
	}

	excluded := make(map[model.HeirCategory]bool)
	var audit []model.Exclusion

	for _, rule := range e.rules {
		if counts[rule.Excluder] == 0 || excluded[rule.Excluder] {
			continue
		}
		if !rule.When.Holds(counts) {
			continue
		}
		for _, target := range rule.Excludes {
			if excluded[target] || counts[target] == 0 {
				continue
			}
			excluded[target] = true
			audit = append(audit, model.Exclusion{
				Excluded:  target,
				By:        rule.Excluder,
				Condition: rule.When.Name,
			})
		}
	}

	pruned := make(map[model.PersonID]model.HeirCategory)
	for id, cat := range classified {
		if cat == model.CategoryIneligible || excluded[cat] {
			continue
		}
		pruned[id] = cat
	}
	return pruned, audit
}
