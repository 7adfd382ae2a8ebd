// Package config loads, normalizes, and validates manimrun configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts and paths relative to the working directory), reads TOML files,
// and honours the MANIMRUN_RENDERER environment fallback. The Config type
// centralizes the output tree location, renderer invocation, and logging
// knobs so the CLI resolves every setting in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
