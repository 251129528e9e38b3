package llm

import (
	"context"
	"fmt"

	"github.com/ybensalah/mawarith/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Explain generates a prose explanation of a computed division with
	// strict shares mode
	Explain(ctx context.Context, req ExplainRequest) (*ExplainResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ExplainRequest contains the input for LLM explanation
type ExplainRequest struct {
	// Division is the computed division to explain. The numbers are
	// final: the LLM narrates them, it never produces them.
	Division model.EstateDivision

	// AllowedFractions is the STRICT allowlist of fractions the LLM may
	// cite, exactly as they appear in the division. This catches the
	// model inventing or recomputing shares.
	AllowedFractions []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ExplainResponse contains the LLM's explanation output
type ExplainResponse struct {
	// Explanation is the generated prose
	Explanation string

	// CitedFractions are the fractions the LLM actually cited
	CitedFractions []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// StrictShares rejects explanations citing fractions absent from the
	// division (should always be true)
	StrictShares bool

	// MaxTokens for response generation
	MaxTokens int

	// Client-side pacing for API calls
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default
		Model:             "",
		Timeout:           30,
		StrictShares:      true,
		MaxTokens:         1000,
		RequestsPerSecond: 1,
		Burst:             1,
	}
}

// BuildPrompt constructs the default prompt for explaining a division with
// strict shares mode
func BuildPrompt(d model.EstateDivision, allowed []string) string {
	prompt := fmt.Sprintf(`You are explaining a completed Islamic inheritance division. The shares are already computed and final - you narrate WHY each heir received their share, you NEVER compute or adjust shares.

CRITICAL RULES:
1. You MUST ONLY cite fractions from this allowed list:
%s

2. DO NOT compute, round, or convert any fraction. Quote them verbatim.
3. If you cannot explain a share, say so explicitly rather than guessing.
4. Describe mechanism, not judgment: fixed share, residue, exclusion, awl, radd.
5. Never suggest the division could be wrong or offer an alternative split.

Division:
- Doctrine: %s
- Awl applied: %t
- Radd applied: %t
- Heirs:
`, joinFractions(allowed), d.Doctrine, d.AwlApplied, d.RaddApplied)

	for _, e := range d.Entries {
		prompt += fmt.Sprintf("- %s (%s, %s share): %s\n", e.Name, e.Category, e.Kind, e.Fraction.String())
	}
	if len(d.Exclusions) > 0 {
		prompt += "\nExclusions:\n"
		for _, x := range d.Exclusions {
			prompt += fmt.Sprintf("- %s excluded by %s (%s)\n", x.Excluded, x.By, x.Condition)
		}
	}

	prompt += "\nProvide a short paragraph per heir explaining the doctrinal basis of their share."

	return prompt
}

func joinFractions(fractions []string) string {
	if len(fractions) == 0 {
		return "(No fractions available)"
	}
	result := ""
	for _, f := range fractions {
		result += fmt.Sprintf("\n- %s", f)
	}
	return result
}
