package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ybensalah/mawarith/internal/classify"
	"github.com/ybensalah/mawarith/internal/display"
	"github.com/ybensalah/mawarith/internal/exclude"
	"github.com/ybensalah/mawarith/internal/model"
	"github.com/ybensalah/mawarith/internal/tree"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <tree.yaml>",
	Short: "Validate a family tree and preview heir classification",
	Long: `Check validates a tree snapshot without computing shares:
- Verify structural constraints (parents, spouses, cycles, deceased marker)
- Classify every relative into an heir category
- Show who the exclusion rules would remove

Example:
  mawarith check family.yaml
  mawarith check family.yaml --lang ar`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	t, err := tree.Load(path)
	if err != nil {
		return fmt.Errorf("load tree: %w", err)
	}

	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid tree: %w", err)
	}

	renderer := display.NewRenderer(lang)
	catalog := renderer.Catalog()

	if verbose {
		fmt.Fprint(os.Stderr, renderer.RenderTree(t))
		fmt.Fprintln(os.Stderr)
	}

	assignments, err := classify.NewClassifier().Classify(t)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	classified := make(map[model.PersonID]model.HeirCategory, len(assignments))
	for id, a := range assignments {
		classified[id] = a.Category
	}
	pruned, audit := exclude.NewEngine().Apply(classified)

	// Stable listing: category precedence, then name
	type row struct {
		name string
		cat  model.HeirCategory
		in   bool
	}
	var rows []row
	for id, cat := range classified {
		p, ok := t.Person(id)
		if !ok {
			continue
		}
		_, inherits := pruned[id]
		rows = append(rows, row{name: p.Name, cat: cat, in: inherits})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].cat != rows[j].cat {
			return rows[i].cat.Precedence() < rows[j].cat.Precedence()
		}
		return rows[i].name < rows[j].name
	})

	fmt.Println("✓ Tree is valid")
	fmt.Println()
	for _, r := range rows {
		marker := "✓"
		if !r.in {
			marker = "✗"
		}
		fmt.Printf("%s %-20s %s\n", marker, r.name, catalog.Label(r.cat))
	}

	if len(audit) > 0 {
		fmt.Println()
		fmt.Printf("%s:\n", catalog.Term("excluded"))
		for _, x := range audit {
			fmt.Printf("- %s %s %s (%s)\n",
				catalog.Label(x.Excluded), catalog.Term("excluded_by"), catalog.Label(x.By), x.Condition)
		}
	}

	return nil
}
