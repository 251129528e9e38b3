package engine

import (
	"context"
	"fmt"

	"github.com/ybensalah/mawarith/internal/cache"
	"github.com/ybensalah/mawarith/internal/classify"
	"github.com/ybensalah/mawarith/internal/exclude"
	"github.com/ybensalah/mawarith/internal/llm"
	"github.com/ybensalah/mawarith/internal/model"
	"github.com/ybensalah/mawarith/internal/normalize"
	"github.com/ybensalah/mawarith/internal/shares"
	"github.com/ybensalah/mawarith/internal/tree"
)

// Engine orchestrates the complete division: validate, classify, exclude,
// calculate, normalize. Each stage is pure; the engine owns only the wiring
// and the cache in front of it.
type Engine struct {
	classifier *classify.Classifier
	excluder   *exclude.Engine
	calculator *shares.Calculator
	normalizer *normalize.Normalizer
	cache      cache.Cache    // nil when caching is disabled
	explainer  *llm.Explainer // nil or disabled unless configured
	config     *model.Config
}

// New creates an engine with the given configuration
func New(cfg *model.Config) *Engine {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	var explainer *llm.Explainer
	if cfg.LLM.Provider != "" {
		e, err := llm.NewExplainer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			explainer = e
		}
	}

	return &Engine{
		classifier: classify.NewClassifier(),
		excluder:   exclude.NewEngine(),
		calculator: shares.NewCalculator(),
		normalizer: normalize.NewNormalizer(),
		cache:      c,
		explainer:  explainer,
		config:     cfg,
	}
}

// Divide computes the estate division for a family tree. Identical trees
// under the same doctrine hit the cache and skip the pipeline.
func (e *Engine) Divide(ctx context.Context, t *tree.FamilyTree) (*model.EstateDivision, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validate tree: %w", err)
	}

	key := cache.DivisionKey(t.Fingerprint(), e.config.Doctrine)
	if e.cache != nil {
		if data, found := e.cache.Get(key); found {
			if d, err := cache.DecodeDivision(data); err == nil {
				return d, nil
			}
			// A corrupt entry is a miss; recompute and overwrite
			_ = e.cache.Delete(key)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, err := e.divide(t)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if data, err := cache.EncodeDivision(d); err == nil {
			_ = e.cache.Set(key, data, 0)
		}
	}
	return d, nil
}

func (e *Engine) divide(t *tree.FamilyTree) (*model.EstateDivision, error) {
	// 1. Classify every alive relative
	assignments, err := e.classifier.Classify(t)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	classified := make(map[model.PersonID]model.HeirCategory, len(assignments))
	siblingCount := 0
	for id, a := range assignments {
		classified[id] = a.Category
		// The mother's sixth is conditioned on siblings existing, not on
		// them inheriting; count before exclusion
		if a.Category.Sibling() {
			siblingCount++
		}
	}

	// 2. Apply exclusion
	pruned, audit := e.excluder.Apply(classified)

	// 3. Calculate raw shares
	heirs := make([]shares.Heir, 0, len(pruned))
	for id, cat := range pruned {
		p, ok := t.Person(id)
		if !ok {
			return nil, fmt.Errorf("resolve heir: %w: %s", model.ErrUnknownPerson, id)
		}
		heirs = append(heirs, shares.Heir{ID: id, Name: p.Name, Sex: p.Sex, Category: cat})
	}

	raw, err := e.calculator.Compute(heirs, shares.Facts{SiblingCount: siblingCount})
	if err != nil {
		return nil, err
	}

	// 4. Normalize to exactly one
	res, err := e.normalizer.Apply(raw)
	if err != nil {
		return nil, err
	}

	return &model.EstateDivision{
		Entries:     res.Entries,
		AwlApplied:  res.AwlApplied,
		RaddApplied: res.RaddApplied,
		Exclusions:  audit,
		Doctrine:    e.config.Doctrine,
	}, nil
}

// Explain narrates a computed division through the configured LLM.
// Returns nil when no provider is configured.
func (e *Engine) Explain(ctx context.Context, d *model.EstateDivision) (*llm.ExplainResponse, error) {
	if !e.explainer.IsEnabled() {
		return nil, nil
	}
	return e.explainer.Explain(ctx, *d)
}
