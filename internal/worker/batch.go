package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ybensalah/mawarith/internal/model"
	"github.com/ybensalah/mawarith/internal/tree"
)

// Divider computes a division for a family tree
type Divider interface {
	Divide(ctx context.Context, t *tree.FamilyTree) (*model.EstateDivision, error)
}

// DivideJob loads one snapshot file and divides its estate
type DivideJob struct {
	Path    string
	Divider Divider
}

// Execute executes the divide job
func (j *DivideJob) Execute(ctx context.Context) Result {
	t, err := tree.Load(j.Path)
	if err != nil {
		return &DivideResult{Path: j.Path, Error: fmt.Errorf("load snapshot: %w", err)}
	}

	division, err := j.Divider.Divide(ctx, t)
	if err != nil {
		return &DivideResult{Path: j.Path, Error: err}
	}
	return &DivideResult{Path: j.Path, Division: division}
}

// DivideResult represents the result of one divide job
type DivideResult struct {
	Path     string
	Division *model.EstateDivision
	Error    error
}

// GetError returns the error from the divide result
func (r *DivideResult) GetError() error {
	return r.Error
}

// BatchProcessor divides multiple snapshot files concurrently
type BatchProcessor struct {
	divider     Divider
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(divider Divider, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		divider:     divider,
		concurrency: concurrency,
	}
}

// ProcessPaths divides the given snapshot files concurrently. Results come
// back sorted by path so batch output is stable regardless of scheduling.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DivideResult {
	if len(paths) == 0 {
		return []*DivideResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&DivideJob{
			Path:    path,
			Divider: b.divider,
		})
	}

	results := pool.Wait()

	divideResults := make([]*DivideResult, len(results))
	for i, result := range results {
		divideResults[i] = result.(*DivideResult)
	}
	sort.Slice(divideResults, func(i, j int) bool {
		return divideResults[i].Path < divideResults[j].Path
	})

	return divideResults
}

// ProcessFile reads snapshot paths from a list file and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*DivideResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads snapshot paths from a file (one per line)
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
