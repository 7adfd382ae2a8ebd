package manim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var classPattern = regexp.MustCompile(`^class\s+([\p{L}_][\p{L}\p{Mn}\p{Mc}\p{N}_]*)\s*\(([^)]*)\)\s*:`)

// DiscoverScenes returns the names of classes in a manim script that derive
// from a Scene type (Scene, ThreeDScene, manim.MovingCameraScene, ...), in
// declaration order without duplicates. Only top-level declarations count.
// Names are NFKC-normalized, matching how Python itself reads identifiers.
func DiscoverScenes(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var scenes []string
	seen := make(map[string]struct{})
	for scanner.Scan() {
		match := classPattern.FindStringSubmatch(scanner.Text())
		if match == nil || !hasSceneBase(match[2]) {
			continue
		}
		name := norm.NFKC.String(match[1])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		scenes = append(scenes, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan script: %w", err)
	}
	return scenes, nil
}

// DiscoverScenesFile opens path and runs DiscoverScenes over it.
func DiscoverScenesFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer file.Close()
	return DiscoverScenes(file)
}

func hasSceneBase(bases string) bool {
	for _, base := range strings.Split(bases, ",") {
		base = strings.TrimSpace(base)
		if idx := strings.LastIndex(base, "."); idx >= 0 {
			base = base[idx+1:]
		}
		if strings.HasSuffix(base, "Scene") {
			return true
		}
	}
	return false
}
