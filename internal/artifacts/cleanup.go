package artifacts

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"manimrun/internal/logging"
)

// CleanResult contains the outcome of a video cleanup pass.
type CleanResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a file path with its removal error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanVideos removes every file ending in ext below root. Cleanup is
// best-effort: a missing root, an unreadable directory, or a file that cannot
// be removed is recorded in the result and logged at debug level, never
// returned as an error.
func CleanVideos(ctx context.Context, root, ext string, logger *slog.Logger) CleanResult {
	result := CleanResult{}
	if logger == nil {
		logger = logging.NewNop()
	}

	root = strings.TrimSpace(root)
	if root == "" {
		return result
	}
	if ext == "" {
		ext = ".mp4"
	}
	if _, err := os.Stat(root); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			result.Errors = append(result.Errors, CleanupError{Path: root, Error: err})
		}
		return result
	}

	matches, err := doublestar.Glob(os.DirFS(root), VideoPattern(ext), doublestar.WithFilesOnly())
	if err != nil {
		result.Errors = append(result.Errors, CleanupError{Path: root, Error: err})
		logger.Debug("video cleanup glob failed", logging.String("root", root), logging.Error(err))
		return result
	}

	for _, match := range matches {
		if ctx.Err() != nil {
			break
		}
		path := filepath.Join(root, filepath.FromSlash(match))
		if err := os.Remove(path); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			logger.Debug("ignored stale video removal failure",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldEventType, "video_cleanup_failed"),
			)
			continue
		}
		result.Removed = append(result.Removed, path)
	}

	if len(result.Removed) > 0 {
		logger.Info("removed stale videos",
			logging.Int("count", len(result.Removed)),
			logging.String("root", root),
			logging.String(logging.FieldEventType, "video_cleanup"),
		)
	}
	return result
}
