package preflight

import (
	"context"
	"path/filepath"

	"quizprep/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir)}

	// The catalog may live outside the work directory; only check it once it exists.
	if dir := filepath.Dir(cfg.Paths.CatalogDB); dir != filepath.Clean(cfg.Paths.WorkDir) && dirExists(dir) {
		results = append(results, CheckDirectoryAccess("Catalog directory", dir))
	}

	if cfg.Logging.File != "" {
		results = append(results, CheckDirectoryAccess("Log directory", filepath.Dir(cfg.Logging.File)))
	}

	return results
}

// Failed returns the first failing result, if any.
func Failed(results []Result) (Result, bool) {
	for _, r := range results {
		if !r.Passed {
			return r, true
		}
	}
	return Result{}, false
}
