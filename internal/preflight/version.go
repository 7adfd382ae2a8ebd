package preflight

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const versionProbeTimeout = 10 * time.Second

// CheckRendererVersion runs "<binary> --version" and reports the first
// non-empty output line.
func CheckRendererVersion(ctx context.Context, binary string) Result {
	const name = "Renderer version"

	binary = strings.TrimSpace(binary)
	if binary == "" {
		return Result{Name: name, Detail: "renderer binary not configured"}
	}
	if _, err := exec.LookPath(binary); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("binary %q not found", binary)}
	}

	probeCtx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	output, err := exec.CommandContext(probeCtx, binary, "--version").CombinedOutput()
	if err != nil {
		if errors.Is(probeCtx.Err(), context.DeadlineExceeded) {
			return Result{Name: name, Detail: "version probe timed out"}
		}
		return Result{Name: name, Detail: fmt.Sprintf("version probe failed (%v)", err)}
	}
	version := firstLine(string(output))
	if version == "" {
		return Result{Name: name, Passed: true, Detail: "unknown"}
	}
	return Result{Name: name, Passed: true, Detail: version}
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
