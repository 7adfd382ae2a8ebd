package manim_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"manimrun/internal/services"
	"manimrun/internal/services/manim"
)

type stubExecutor struct {
	lines   []string
	err     error
	calls   int
	binary  string
	args    [][]string
	sawDead bool
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	s.calls++
	s.binary = binary
	s.args = append(s.args, append([]string(nil), args...))
	_, s.sawDead = ctx.Deadline()
	for _, line := range s.lines {
		onLine(line)
	}
	return s.err
}

func TestRenderPassesFlagsScriptAndScenes(t *testing.T) {
	exec := &stubExecutor{}
	client, err := manim.New("manim", manim.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := client.Render(context.Background(), "demo.py", []string{"Intro", "Outro"}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if exec.calls != 1 {
		t.Fatalf("expected one invocation, got %d", exec.calls)
	}
	if exec.binary != "manim" {
		t.Fatalf("unexpected binary %q", exec.binary)
	}
	want := []string{"-pql", "demo.py", "Intro", "Outro"}
	if !reflect.DeepEqual(exec.args[0], want) {
		t.Fatalf("unexpected args: got %v want %v", exec.args[0], want)
	}
	if exec.sawDead {
		t.Fatal("expected no deadline without a timeout")
	}
}

func TestRenderHonoursCustomFlagsAndTimeout(t *testing.T) {
	exec := &stubExecutor{}
	client, err := manim.New("manim", manim.WithExecutor(exec), manim.WithFlags("-ql", "--disable_caching"), manim.WithTimeout(time.Minute))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Render(context.Background(), "demo.py", []string{"Intro"}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	want := []string{"-ql", "--disable_caching", "demo.py", "Intro"}
	if !reflect.DeepEqual(exec.args[0], want) {
		t.Fatalf("unexpected args: got %v want %v", exec.args[0], want)
	}
	if !exec.sawDead {
		t.Fatal("expected deadline when timeout configured")
	}
}

func TestRenderWrapsExecutorErrorAsRenderFailure(t *testing.T) {
	exec := &stubExecutor{lines: []string{"Rendering...", "  ", "SyntaxError: invalid syntax"}, err: errors.New("boom")}
	client, err := manim.New("manim", manim.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	err = client.Render(context.Background(), "demo.py", []string{"Intro"})
	if err == nil {
		t.Fatal("expected error from executor")
	}
	if !errors.Is(err, services.ErrRenderFailure) {
		t.Fatalf("expected render failure marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "last output: SyntaxError: invalid syntax") {
		t.Fatalf("expected last output line in error, got %v", err)
	}
}

func TestRenderRejectsEmptyInputsWithoutInvoking(t *testing.T) {
	exec := &stubExecutor{}
	client, err := manim.New("manim", manim.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Render(context.Background(), "demo.py", nil); !errors.Is(err, services.ErrUsage) {
		t.Fatalf("expected usage error for no scenes, got %v", err)
	}
	if err := client.Render(context.Background(), " ", []string{"Intro"}); !errors.Is(err, services.ErrUsage) {
		t.Fatalf("expected usage error for blank script, got %v", err)
	}
	if exec.calls != 0 {
		t.Fatalf("expected renderer not to run, got %d calls", exec.calls)
	}
}

func TestRenderForwardsOutputAndProgress(t *testing.T) {
	exec := &stubExecutor{lines: []string{
		"Manim Community v0.18.0",
		"Animation 0: Write(Text('Hello')):  40%|####      | 24/60",
		"Animation 1: FadeOut(Text('Hello')): 100%|##########| 60/60",
	}}
	var lines []string
	var updates []manim.ProgressUpdate
	client, err := manim.New("manim",
		manim.WithExecutor(exec),
		manim.WithOutput(func(line string) { lines = append(lines, line) }),
		manim.WithProgress(func(u manim.ProgressUpdate) { updates = append(updates, u) }),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Render(context.Background(), "demo.py", []string{"Intro"}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected all lines forwarded, got %v", lines)
	}
	if len(updates) != 2 {
		t.Fatalf("expected two progress updates, got %+v", updates)
	}
	if updates[0].Animation != 0 || updates[0].Percent != 40 || updates[0].Message != "Write(Text('Hello'))" {
		t.Fatalf("unexpected first update: %+v", updates[0])
	}
	if updates[1].Animation != 1 || updates[1].Percent != 100 {
		t.Fatalf("unexpected second update: %+v", updates[1])
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := manim.New("  "); err == nil {
		t.Fatal("expected error for blank binary")
	}
}

func TestExitStatusWithoutExitError(t *testing.T) {
	if got := manim.ExitStatus(errors.New("plain")); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}
