package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteVideo creates a placeholder video at path, creating parent
// directories. A non-zero modTime is applied to the file.
func WriteVideo(t testing.TB, path string, modTime time.Time) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("frames"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if modTime.IsZero() {
		return
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}
