package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ybensalah/mawarith/internal/display"
	"github.com/ybensalah/mawarith/internal/model"
)

// Renderer writes divisions to files and the terminal
type Renderer struct {
	text *display.Renderer
}

// NewRenderer creates a renderer for the given output language
func NewRenderer(lang string) *Renderer {
	return &Renderer{text: display.NewRenderer(lang)}
}

// RenderJSON writes the division as indented JSON
func (r *Renderer) RenderJSON(d *model.EstateDivision, path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal division: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderYAML writes the division as YAML
func (r *Renderer) RenderYAML(d *model.EstateDivision, path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal division: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write YAML: %w", err)
	}
	return nil
}

// RenderSummary prints the localized text rendering to stdout
func (r *Renderer) RenderSummary(d *model.EstateDivision) {
	fmt.Println(r.text.RenderDivision(d))
}

// RenderOutputs writes the requested files and always prints the summary
func (r *Renderer) RenderOutputs(d *model.EstateDivision, jsonPath, yamlPath string, verbose bool) error {
	if jsonPath != "" {
		if err := r.RenderJSON(d, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if yamlPath != "" {
		if err := r.RenderYAML(d, yamlPath); err != nil {
			return fmt.Errorf("render YAML: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote YAML: %s\n", yamlPath)
		}
	}

	r.RenderSummary(d)
	return nil
}
