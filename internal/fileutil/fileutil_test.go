package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Intro.mp4")
	dst := filepath.Join(dir, "copy.mp4")

	content := []byte("not really a video")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileVerifiedMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(filepath.Join(dir, "absent.mp4"), filepath.Join(dir, "dst.mp4")); err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, err := os.Stat(filepath.Join(dir, "dst.mp4")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no destination, got err=%v", err)
	}
}

func TestCopyIntoDirCreatesDirectoryAndLeavesNoPartial(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "Outro_v1.mp4")
	if err := os.WriteFile(src, []byte("frames"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(base, "collected", "nested")

	dst, err := CopyIntoDir(src, dir, "Outro.mp4")
	if err != nil {
		t.Fatalf("CopyIntoDir returned error: %v", err)
	}
	if dst != filepath.Join(dir, "Outro.mp4") {
		t.Fatalf("unexpected destination %q", dst)
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "frames" {
		t.Fatalf("unexpected copy contents %q err=%v", got, err)
	}
	if _, err := os.Stat(dst + ".partial"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected temporary file removed, err=%v", err)
	}
}

func TestCopyIntoDirOverwritesExisting(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "Intro.mp4")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(base, "out")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Intro.mp4"), []byte("old contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	dst, err := CopyIntoDir(src, dir, "Intro.mp4")
	if err != nil {
		t.Fatalf("CopyIntoDir returned error: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "new" {
		t.Fatalf("expected overwritten contents, got %q err=%v", got, err)
	}
}
