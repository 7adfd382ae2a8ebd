package deps

import (
	"os"
	"path/filepath"
	"runtime"
)

const ffmpegCommand = "ffmpeg"

// CheckFFmpegForRenderer reports the FFmpeg binary the renderer will pick up.
//
// A renderer installed into a virtualenv usually finds an ffmpeg in its own
// bin directory first, so that sibling wins over PATH.
func CheckFFmpegForRenderer(rendererCommand string) Status {
	req := Requirement{
		Name:        "FFmpeg",
		Command:     ffmpegCommand,
		Description: "Used by the renderer to encode scenes",
		Optional:    true,
	}
	if renderer, err := lookup(rendererCommand); err == nil {
		if sibling := siblingBinary(renderer, ffmpegCommand); isExecutable(sibling) {
			req.Command = sibling
		}
	}
	status := Check(req)
	if status.Available {
		status.Command = status.Path
	}
	return status
}

func siblingBinary(path, name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(path), name)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return runtime.GOOS == "windows" || info.Mode().Perm()&0o111 != 0
}
