package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeStub(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
}

func TestCheckBinaries(t *testing.T) {
	present := filepath.Join(t.TempDir(), "present")
	writeStub(t, present)
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Path != present {
		t.Fatalf("expected resolved path %q, got %q", present, results[0].Path)
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[1].Path != "" {
		t.Fatalf("missing binary should not resolve, got %q", results[1].Path)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected blank command to be unconfigured, got %#v", results[2])
	}
}

func TestCheckFFmpegPrefersRendererSibling(t *testing.T) {
	tmp := t.TempDir()
	rendererPath := filepath.Join(tmp, executableName("manim"))
	ffmpegPath := filepath.Join(tmp, executableName("ffmpeg"))
	writeStub(t, rendererPath)
	writeStub(t, ffmpegPath)

	status := CheckFFmpegForRenderer(rendererPath)
	if !status.Available {
		t.Fatalf("expected sibling ffmpeg to be available, got detail %q", status.Detail)
	}
	if status.Command != ffmpegPath {
		t.Fatalf("expected ffmpeg command %q, got %q", ffmpegPath, status.Command)
	}
}

func TestCheckFFmpegFallsBackToPath(t *testing.T) {
	tmp := t.TempDir()
	rendererPath := filepath.Join(tmp, executableName("manim"))
	writeStub(t, rendererPath)

	binDir := filepath.Join(tmp, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	ffmpegPath := filepath.Join(binDir, executableName("ffmpeg"))
	writeStub(t, ffmpegPath)
	t.Setenv("PATH", binDir)

	status := CheckFFmpegForRenderer(rendererPath)
	if !status.Available {
		t.Fatalf("expected PATH ffmpeg to be available, got detail %q", status.Detail)
	}
	if status.Command != ffmpegPath {
		t.Fatalf("expected ffmpeg command %q, got %q", ffmpegPath, status.Command)
	}
}

func TestCheckFFmpegMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	status := CheckFFmpegForRenderer("manim")
	if status.Available {
		t.Fatalf("expected ffmpeg to be unavailable")
	}
	if !status.Optional {
		t.Fatalf("ffmpeg should be reported as optional")
	}
	if status.Command != "ffmpeg" || status.Detail == "" {
		t.Fatalf("unexpected status %#v", status)
	}
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
