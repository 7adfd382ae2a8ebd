package manim

import (
	"bufio"
	"context"
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"manimrun/internal/services"
)

func TestScanLinesSplitsCarriageReturns(t *testing.T) {
	input := "first\nbar 10%\rbar 50%\rbar 100%\r\nlast"
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Split(scanLines)
	var got []string
	for scanner.Scan() {
		got = append(got, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan error: %v", err)
	}
	want := []string{"first", "bar 10%", "bar 50%", "bar 100%", "last"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: got %q want %q", got, want)
	}
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
		want ProgressUpdate
	}{
		{
			name: "standard bar",
			line: "Animation 3: Create(Circle):  75%|#######   | 45/60 [00:01<00:00]",
			ok:   true,
			want: ProgressUpdate{Animation: 3, Percent: 75, Message: "Create(Circle)"},
		},
		{
			name: "no description",
			line: "Animation 0:   5%|",
			ok:   true,
			want: ProgressUpdate{Animation: 0, Percent: 5},
		},
		{name: "unrelated", line: "File ready at 'media/videos/demo/480p15/Intro.mp4'", ok: false},
		{name: "empty", line: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseProgress(tt.line)
			if ok != tt.ok {
				t.Fatalf("parseProgress(%q) ok=%v, want %v", tt.line, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("parseProgress(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestCommandExecutorStreamsBothPipes(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	var mu sync.Mutex
	var lines []string
	err := commandExecutor{}.Run(context.Background(), "sh", []string{"-c", "echo out; echo err 1>&2"}, func(line string) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	joined := strings.Join(lines, ",")
	if !strings.Contains(joined, "out") || !strings.Contains(joined, "err") {
		t.Fatalf("expected both streams forwarded, got %v", lines)
	}
}

func TestCommandExecutorReportsExitStatus(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	err := commandExecutor{}.Run(context.Background(), "sh", []string{"-c", "exit 3"}, func(string) {})
	if err == nil {
		t.Fatal("expected non-zero exit error")
	}
	if got := ExitStatus(err); got != 3 {
		t.Fatalf("expected exit status 3, got %d (%v)", got, err)
	}
}

func TestCommandExecutorMissingBinary(t *testing.T) {
	err := commandExecutor{}.Run(context.Background(), "definitely-not-a-manim-binary", nil, nil)
	if err == nil {
		t.Fatal("expected start error")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Fatalf("expected exec.ErrNotFound, got %v", err)
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCommandExecutorForwardsOverlongLines(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var mu sync.Mutex
	var lines []string
	script := "head -c 2500000 /dev/zero | tr '\\0' a; echo; echo done"
	err := commandExecutor{}.Run(ctx, "sh", []string{"-c", script}, func(line string) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatalf("Run returned only after the deadline")
	}
	if len(lines) < 3 || lines[len(lines)-1] != "done" {
		t.Fatalf("expected chunked long line followed by done, got %d lines", len(lines))
	}
	if len(lines[0]) != maxLineBytes {
		t.Fatalf("expected first chunk of %d bytes, got %d", maxLineBytes, len(lines[0]))
	}
	total := 0
	for _, line := range lines[:len(lines)-1] {
		total += len(line)
	}
	if total != 2500000 {
		t.Fatalf("expected 2500000 bytes forwarded, got %d", total)
	}
}

func TestCommandExecutorReturnsWhenDescendantHoldsOutput(t *testing.T) {
	requireShell(t)
	start := time.Now()
	err := commandExecutor{waitDelay: 100 * time.Millisecond}.Run(context.Background(), "sh", []string{"-c", "sleep 5 & echo rendered"}, func(string) {})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("Run waited %s for a background process", elapsed)
	}
}

func TestCommandExecutorCancelKillsProcessGroup(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	// A waitDelay longer than the assertion means only the group kill can
	// release the sleeping descendant's hold on the pipes.
	err := commandExecutor{waitDelay: 20 * time.Second}.Run(ctx, "sh", []string{"-c", "sleep 30 & wait"}, func(string) {})
	if err == nil {
		t.Fatal("expected cancelled render to fail")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Run took %s after cancellation", elapsed)
	}
}

func TestRenderTimeoutBecomesRenderFailure(t *testing.T) {
	requireShell(t)
	client, err := New("sh", WithFlags("-c", "sleep 30 & wait"), WithTimeout(200*time.Millisecond))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	start := time.Now()
	err = client.Render(context.Background(), "demo.py", []string{"Intro"})
	if !errors.Is(err, services.ErrRenderFailure) {
		t.Fatalf("expected ErrRenderFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout message, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Render took %s despite a 200ms timeout", elapsed)
	}
}
