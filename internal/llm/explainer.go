package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/ybensalah/mawarith/internal/model"
)

// Explainer wraps a provider and turns a computed division into prose. It
// runs AFTER the division is final and can never change a share; a nil
// Explainer or a disabled provider simply yields no explanation.
type Explainer struct {
	provider Provider
	limiter  *rate.Limiter
	config   Config
}

// NewExplainer creates an explainer from configuration. Returns an error
// only on misconfiguration; an empty provider name yields a disabled
// explainer.
func NewExplainer(config Config) (*Explainer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Explainer{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (e *Explainer) IsEnabled() bool {
	return e != nil && e.provider != nil
}

// Explain narrates a division. The fraction allowlist is built from the
// division itself so strict shares mode can catch invented numbers.
func (e *Explainer) Explain(ctx context.Context, d model.EstateDivision) (*ExplainResponse, error) {
	if !e.IsEnabled() {
		return nil, nil
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	allowed := make([]string, 0, len(d.Entries))
	seen := make(map[string]bool)
	for _, entry := range d.Entries {
		f := entry.Fraction.String()
		if !seen[f] {
			seen[f] = true
			allowed = append(allowed, f)
		}
	}

	resp, err := e.provider.Explain(ctx, ExplainRequest{
		Division:         d,
		AllowedFractions: allowed,
		Model:            e.config.Model,
		MaxTokens:        e.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("explain division: %w", err)
	}
	return resp, nil
}
