package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement names an external binary manimrun shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is a Requirement after lookup. Path holds the resolved location when
// the binary was found.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// Check resolves a single requirement against PATH.
func Check(req Requirement) Status {
	status := Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	switch path, err := lookup(status.Command); {
	case status.Command == "":
		status.Detail = "command not configured"
	case err != nil:
		status.Detail = notFound(status.Command)
	default:
		status.Available = true
		status.Path = path
	}
	return status
}

// CheckBinaries runs Check for every requirement, preserving order.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, len(requirements))
	for i, req := range requirements {
		results[i] = Check(req)
	}
	return results
}

func lookup(command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", exec.ErrNotFound
	}
	return exec.LookPath(command)
}

func notFound(command string) string {
	return fmt.Sprintf("binary %q not found", command)
}
