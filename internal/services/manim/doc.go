// Package manim mediates access to the manim CLI used to render scenes.
//
// It normalizes command invocation (fixed quality flags, script path, then
// scene names), streams the renderer's stdout and stderr line by line,
// parses animation progress, and exposes a testable Executor seam so callers
// can exercise the pipeline without a Python toolchain. It also discovers
// Scene subclasses in a script so a caller can render every scene it declares.
//
// Prefer this package over ad-hoc exec.Command usage when interacting with
// manim so exit-status reporting and timeout handling remain consistent.
package manim
