// Package services defines shared utilities consumed by the render pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp a per-invocation run identifier for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent, errors.Is-friendly messages and process exit codes.
//
// Subpackages wrap individual external tools (the manim renderer) behind
// small, testable clients.
package services
