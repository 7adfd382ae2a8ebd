package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUsage         = errors.New("usage error")
	ErrRenderFailure = errors.New("render failure")
	ErrNoOutput      = errors.New("no output")
	ErrBusy          = errors.New("render already in progress")
	ErrConfiguration = errors.New("configuration error")
	ErrCollect       = errors.New("collect error")
	ErrExternalTool  = errors.New("external tool error")
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a pipeline error to the process exit status. Every failure
// kind exits 1; callers re-invoke externally when they want a retry.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

// Kind returns a short label for the marker carried by err, for logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUsage):
		return "usage"
	case errors.Is(err, ErrRenderFailure):
		return "render_failure"
	case errors.Is(err, ErrNoOutput):
		return "no_output"
	case errors.Is(err, ErrBusy):
		return "busy"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrCollect):
		return "collect"
	default:
		return "external_tool"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
