// Package main hosts the manimrun CLI entrypoint and command graph.
//
// The root command renders directly: "manimrun <script> <scene...>" invokes
// the renderer, waits for it, and prints one OUTPUT_FILE line per resolved
// video on stdout. Logs and renderer output go to stderr so stdout stays
// machine-readable. Subcommands cover scene discovery, readiness checks, and
// configuration scaffolding.
//
// Keep this package lean: orchestration lives in internal/render, and the
// commands here only resolve configuration, build loggers, and format output.
package main
