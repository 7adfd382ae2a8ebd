// Package logging assembles structured slog loggers and formatting helpers used
// across manimrun.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so render code can tag log lines
// with the run identifier. The package also provides a no-op logger for tests
// and wiring code that cannot fail.
//
// Standard output is reserved for the OUTPUT_FILE protocol, so loggers built
// from config write to stderr (plus an optional log file) and never stdout.
package logging
