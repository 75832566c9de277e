package preflight

import (
	"context"

	"curator/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Target directory", cfg.Paths.TargetDir))
	results = append(results, CheckFreeSpace("Target free space", cfg.Paths.TargetDir, minFreeBytes))

	if cfg.Index.Enabled {
		results = append(results, CheckDirectoryAccess("Index directory", indexDir(cfg)))
	}
	if cfg.Entity.Enabled {
		results = append(results, CheckEntityEndpoint(ctx, cfg.Entity.BaseURL))
	}

	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
