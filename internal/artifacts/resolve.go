package artifacts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// SceneVideo is the artifact selected for one scene.
type SceneVideo struct {
	Scene   string
	Path    string
	ModTime time.Time
}

// Resolver locates scene artifacts below a fixed output root.
type Resolver struct {
	root string
	ext  string
	fsys fs.FS
}

// NewResolver returns a resolver rooted at root (made absolute) that matches
// files ending in ext.
func NewResolver(root, ext string) (*Resolver, error) {
	if root == "" {
		return nil, errors.New("output root required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve output root: %w", err)
	}
	if ext == "" {
		ext = ".mp4"
	}
	return &Resolver{root: abs, ext: ext, fsys: os.DirFS(abs)}, nil
}

// Resolve selects the newest artifact for every scene. Results keep the input
// order; scenes without a match are returned in missing instead. A scene
// listed twice is resolved once, at its first position.
func (r *Resolver) Resolve(scenes []string) ([]SceneVideo, []string, error) {
	var (
		videos  []SceneVideo
		missing []string
	)
	seen := make(map[string]struct{}, len(scenes))
	for _, scene := range scenes {
		if _, ok := seen[scene]; ok {
			continue
		}
		seen[scene] = struct{}{}

		video, ok, err := r.Latest(scene)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			missing = append(missing, scene)
			continue
		}
		videos = append(videos, video)
	}
	return videos, missing, nil
}

// Latest returns the newest artifact whose file name contains scene. Equal
// modification times are broken by the lexicographically greatest path so
// the choice is deterministic.
func (r *Resolver) Latest(scene string) (SceneVideo, bool, error) {
	if scene == "" {
		return SceneVideo{}, false, nil
	}
	if _, err := os.Stat(r.root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SceneVideo{}, false, nil
		}
		return SceneVideo{}, false, fmt.Errorf("stat output root: %w", err)
	}

	matches, err := doublestar.Glob(r.fsys, ScenePattern(scene, r.ext), doublestar.WithFilesOnly())
	if err != nil {
		return SceneVideo{}, false, fmt.Errorf("glob scene %q: %w", scene, err)
	}

	var best SceneVideo
	found := false
	for _, match := range matches {
		info, err := fs.Stat(r.fsys, match)
		if err != nil {
			// Removed between listing and stat.
			continue
		}
		path := filepath.Join(r.root, filepath.FromSlash(match))
		if !found || newer(info.ModTime(), path, best) {
			best = SceneVideo{Scene: scene, Path: path, ModTime: info.ModTime()}
			found = true
		}
	}
	return best, found, nil
}

func newer(modTime time.Time, path string, current SceneVideo) bool {
	if modTime.Equal(current.ModTime) {
		return path > current.Path
	}
	return modTime.After(current.ModTime)
}
