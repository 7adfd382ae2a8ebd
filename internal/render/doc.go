// Package render orchestrates a single manimrun invocation.
//
// Runner.Run validates the request, takes the output-tree lock, clears stale
// videos, invokes the renderer and blocks until it exits, waits the settle
// delay, resolves one video per scene, and optionally collects copies into a
// destination directory. Every failure is fatal to the invocation and carries
// a services marker; nothing is retried.
//
// Protocol writes the line-oriented stdout contract consumed by callers:
// OUTPUT_FILE::<scene>::<path> per resolved scene and a closing summary.
package render
