package preflight

import (
	"context"

	"manimrun/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem and renderer checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Output tree (always checked; created on first render)
	results = append(results, CheckCreatableDirectory("Output directory", cfg.Paths.OutputDir))

	if cfg.Paths.CollectDir != "" {
		results = append(results, CheckCreatableDirectory("Collect directory", cfg.Paths.CollectDir))
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckCreatableDirectory("Log directory", cfg.Paths.LogDir))
	}

	results = append(results, CheckRendererVersion(ctx, cfg.Renderer.Binary))
	return results
}
