package testsupport

import (
	"fmt"
	"path/filepath"
)

// RendererBehavior selects what the fake renderer does when invoked.
type RendererBehavior int

const (
	// RenderAll writes one video per scene and exits 0.
	RenderAll RendererBehavior = iota
	// RenderNothing writes nothing and exits 0.
	RenderNothing
	// RenderFail writes nothing and exits 2.
	RenderFail
)

// fakeRendererScript treats every argument after the first *.py as a scene
// and writes <out>/<stem>/480p15/<scene>.mp4 the way manim lays out output.
const fakeRendererScript = `#!/bin/sh
out='%s'
mode='%s'
script=""
for arg in "$@"; do
  if [ -n "$script" ]; then
    echo "Animation 0: FadeIn(Text('$arg')): 100%%" >&2
    if [ "$mode" = all ]; then
      stem=$(basename "$script" .py)
      mkdir -p "$out/$stem/480p15"
      printf 'frames' > "$out/$stem/480p15/$arg.mp4"
    fi
    continue
  fi
  case "$arg" in
    *.py) script="$arg" ;;
  esac
done
if [ "$mode" = fail ]; then
  echo "Scene not found" >&2
  exit 2
fi
exit 0
`

// WithFakeRenderer installs a shell renderer on PATH that writes into the
// config's output directory, and points the config's renderer binary at it.
// Apply it after any option that changes the output directory.
func WithFakeRenderer(behavior RendererBehavior) ConfigOption {
	return func(b *configBuilder) {
		mode := "all"
		switch behavior {
		case RenderNothing:
			mode = "none"
		case RenderFail:
			mode = "fail"
		}
		path := filepath.Join(b.binDir(), "manim")
		writeExecutable(b.t, path, fmt.Sprintf(fakeRendererScript, b.cfg.Paths.OutputDir, mode))
		b.cfg.Renderer.Binary = path
		b.prependPath()
	}
}
