package render

import (
	"fmt"
	"io"
	"strings"
)

const (
	outputPrefix    = "OUTPUT_FILE::"
	collectedPrefix = "COLLECTED_FILE::"
	fieldSeparator  = "::"
)

// Protocol writes the stdout contract. Logs never go through it.
type Protocol struct {
	w io.Writer
}

// NewProtocol returns a Protocol writing to w.
func NewProtocol(w io.Writer) *Protocol {
	return &Protocol{w: w}
}

// Rendering announces the script and scenes about to be rendered.
func (p *Protocol) Rendering(script string, scenes []string) {
	fmt.Fprintf(p.w, "Rendering: %s (%s)\n", script, strings.Join(scenes, ", "))
}

// OutputFile emits one resolved video.
func (p *Protocol) OutputFile(scene, path string) {
	fmt.Fprintf(p.w, "%s%s%s%s\n", outputPrefix, scene, fieldSeparator, path)
}

// CollectedFile emits one copy placed in the collect directory.
func (p *Protocol) CollectedFile(scene, path string) {
	fmt.Fprintf(p.w, "%s%s%s%s\n", collectedPrefix, scene, fieldSeparator, path)
}

// Summary emits the closing line for a successful run.
func (p *Protocol) Summary(count int) {
	fmt.Fprintf(p.w, "Rendered %d video(s)\n", count)
}

// NoOutput reports that nothing was resolved for the requested scenes.
func (p *Protocol) NoOutput(scenes []string) {
	fmt.Fprintf(p.w, "No rendered videos found for scenes: %s\n", strings.Join(scenes, ", "))
}

// Result writes the OUTPUT_FILE lines in request order, then any
// COLLECTED_FILE lines, then the summary.
func (p *Protocol) Result(res Result) {
	for _, video := range res.Videos {
		p.OutputFile(video.Scene, video.Path)
	}
	for _, c := range res.Collected {
		p.CollectedFile(c.Scene, c.Path)
	}
	p.Summary(len(res.Videos))
}
