package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ybensalah/mawarith/internal/engine"
	"github.com/ybensalah/mawarith/internal/model"
	"github.com/ybensalah/mawarith/internal/tree"
)

var (
	outJSON     string
	outYAML     string
	calcTimeout time.Duration
	noCache     bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// calcCmd represents the calc command
var calcCmd = &cobra.Command{
	Use:   "calc <tree.yaml>",
	Short: "Compute the estate division for one family tree",
	Long: `Calc loads a family tree snapshot and computes the division:
- Classify every relative into an heir category
- Apply the exclusion (hajb) rules
- Assign fixed (fardh) and residual (tasib) shares as exact fractions
- Correct over- or under-subscription through awl or radd

Example:
  mawarith calc family.yaml
  mawarith calc family.yaml --json division.json --lang ar
  mawarith calc family.yaml --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	// Output flags
	calcCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	calcCmd.Flags().StringVar(&outYAML, "yaml", "", "output YAML path (optional)")

	calcCmd.Flags().DurationVar(&calcTimeout, "timeout", 30*time.Second, "overall calculation timeout")
	calcCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh calculation)")

	// LLM flags
	calcCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM explanation of the division")
	calcCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	calcCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// buildConfig assembles the effective configuration from defaults and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Doctrine = doctrine
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.Language = lang

	if cfg.Cache.Enabled && cfg.Cache.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		cfg.Cache.Dir = filepath.Join(home, ".mawarith", "cache")
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

func runCalc(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), calcTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Calculating: %s\n", path)
		fmt.Fprintf(os.Stderr, "Doctrine: %s\n", doctrine)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	t, err := tree.Load(path)
	if err != nil {
		return fmt.Errorf("load tree: %w", err)
	}

	eng := engine.New(cfg)

	division, err := eng.Divide(ctx, t)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d heirs inherit\n", len(division.Entries))
		fmt.Fprintf(os.Stderr, "✓ %d relatives excluded\n", len(division.Exclusions))
		fmt.Fprintln(os.Stderr)
	}

	renderer := engine.NewRenderer(cfg.Output.Language)
	if err := renderer.RenderOutputs(division, outJSON, outYAML, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if llmEnabled {
		resp, err := eng.Explain(ctx, division)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM explanation failed: %v\n", err)
		} else if resp != nil {
			fmt.Println()
			fmt.Println(resp.Explanation)
		}
	}

	return nil
}
