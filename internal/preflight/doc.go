// Package preflight provides readiness checks for the renderer and the
// filesystem paths manimrun depends on.
//
// The "manimrun check" command runs RunAll and CheckSystemDeps and renders
// the results as a table. Render invocations do not run preflight; a missing
// renderer surfaces as a render failure instead.
package preflight
