package manim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"manimrun/internal/services"
)

const maxLineBytes = 1024 * 1024

// ProgressUpdate captures a manim animation progress line.
type ProgressUpdate struct {
	Animation int
	Percent   float64
	Message   string
}

// Renderer defines the behaviour required by the render pipeline.
type Renderer interface {
	Render(ctx context.Context, scriptPath string, scenes []string) error
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithFlags replaces the fixed flags passed ahead of the script path.
func WithFlags(flags ...string) Option {
	return func(c *Client) {
		c.flags = append([]string(nil), flags...)
	}
}

// WithTimeout bounds a single render. Zero leaves the render unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithOutput receives every raw line the renderer prints.
func WithOutput(fn func(string)) Option {
	return func(c *Client) {
		c.onLine = fn
	}
}

// WithProgress receives parsed animation progress updates.
func WithProgress(fn func(ProgressUpdate)) Option {
	return func(c *Client) {
		c.progress = fn
	}
}

// Client wraps manim CLI interactions.
type Client struct {
	binary   string
	flags    []string
	timeout  time.Duration
	exec     Executor
	onLine   func(string)
	progress func(ProgressUpdate)
}

// New constructs a manim client. The default flags request a low-quality preview render.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("manim binary required")
	}
	client := &Client{
		binary: binary,
		flags:  []string{"-pql"},
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Args returns the argument vector for rendering scenes from scriptPath.
func (c *Client) Args(scriptPath string, scenes []string) []string {
	args := make([]string, 0, len(c.flags)+1+len(scenes))
	args = append(args, c.flags...)
	args = append(args, scriptPath)
	args = append(args, scenes...)
	return args
}

// Render runs manim to completion. The script path is passed through as-is;
// a missing script surfaces as a non-zero exit from the renderer itself.
func (c *Client) Render(ctx context.Context, scriptPath string, scenes []string) error {
	if strings.TrimSpace(scriptPath) == "" {
		return services.Wrap(services.ErrUsage, "render", "manim", "script path required", nil)
	}
	if len(scenes) == 0 {
		return services.Wrap(services.ErrUsage, "render", "manim", "at least one scene required", nil)
	}

	renderCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var (
		mu       sync.Mutex
		lastLine string
	)
	err := c.exec.Run(renderCtx, c.binary, c.Args(scriptPath, scenes), func(line string) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			mu.Lock()
			lastLine = trimmed
			mu.Unlock()
		}
		if c.onLine != nil {
			c.onLine(line)
		}
		if c.progress != nil {
			if update, ok := parseProgress(line); ok {
				c.progress(update)
			}
		}
	})
	if err == nil {
		return nil
	}

	message := "renderer did not complete"
	if status := ExitStatus(err); status > 0 {
		message = fmt.Sprintf("renderer exited with status %d", status)
	}
	if errors.Is(renderCtx.Err(), context.DeadlineExceeded) {
		message = fmt.Sprintf("renderer timed out after %s", c.timeout)
	}
	mu.Lock()
	if lastLine != "" {
		message += " (last output: " + lastLine + ")"
	}
	mu.Unlock()
	return services.Wrap(services.ErrRenderFailure, "render", c.binary, message, err)
}

// ExitStatus reports the child exit code carried by err, or -1 when err does
// not describe a process that ran to exit.
func ExitStatus(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

var progressPattern = regexp.MustCompile(`^\s*Animation\s+(\d+)\s*:?\s*(.*?):?\s+(\d{1,3})%`)

func parseProgress(line string) (ProgressUpdate, bool) {
	match := progressPattern.FindStringSubmatch(line)
	if match == nil {
		return ProgressUpdate{}, false
	}
	index, err := strconv.Atoi(match[1])
	if err != nil {
		return ProgressUpdate{}, false
	}
	percent, err := strconv.ParseFloat(match[3], 64)
	if err != nil || percent > 100 {
		return ProgressUpdate{}, false
	}
	return ProgressUpdate{
		Animation: index,
		Percent:   percent,
		Message:   strings.TrimSpace(match[2]),
	}, true
}

// defaultWaitDelay bounds how long Wait keeps reading output after the
// renderer exits or is cancelled. A preview player forked by -p can inherit
// the pipes and outlive the render.
const defaultWaitDelay = 2 * time.Second

type commandExecutor struct {
	waitDelay time.Duration
}

func (e commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	var forwardMu sync.Mutex
	forward := func(line string) {
		forwardMu.Lock()
		defer forwardMu.Unlock()
		if onLine != nil {
			onLine(line)
			return
		}
		fmt.Fprintln(os.Stderr, line)
	}
	stdout := &lineWriter{emit: forward}
	stderr := &lineWriter{emit: forward}

	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// The renderer gets its own process group so cancellation reaches the
	// ffmpeg and player processes it spawns.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return killGroup(cmd.Process)
	}
	cmd.WaitDelay = e.waitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = defaultWaitDelay
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}
	err := cmd.Wait()
	stdout.flush()
	stderr.flush()
	if err == nil {
		return nil
	}
	// The renderer exited cleanly but a descendant still held its output.
	if errors.Is(err, exec.ErrWaitDelay) && ctx.Err() == nil && cmd.ProcessState.Success() {
		return nil
	}
	return fmt.Errorf("wait command: %w", err)
}

func killGroup(process *os.Process) error {
	if process == nil {
		return os.ErrProcessDone
	}
	if err := unix.Kill(-process.Pid, unix.SIGKILL); err == nil {
		return nil
	}
	return process.Kill()
}

// lineWriter splits written bytes into lines with scanLines. A line longer
// than maxLineBytes is forwarded in maxLineBytes pieces rather than buffered
// without bound.
type lineWriter struct {
	emit func(string)
	buf  []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	rest := w.buf
	for {
		advance, token, _ := scanLines(rest, false)
		if advance == 0 {
			break
		}
		w.emit(string(token))
		rest = rest[advance:]
	}
	for len(rest) >= maxLineBytes {
		w.emit(string(rest[:maxLineBytes]))
		rest = rest[maxLineBytes:]
	}
	w.buf = append(w.buf[:0], rest...)
	return len(p), nil
}

func (w *lineWriter) flush() {
	for len(w.buf) > 0 {
		advance, token, _ := scanLines(w.buf, true)
		if advance == 0 {
			break
		}
		w.emit(string(token))
		w.buf = w.buf[advance:]
	}
	w.buf = nil
}

// scanLines splits on \n and on bare \r, which progress bars use to redraw
// in place.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance = i + 1
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			advance++
		} else if data[i] == '\r' && i+1 == len(data) && !atEOF {
			// Might be the first half of \r\n; wait for more data.
			return 0, nil, nil
		}
		return advance, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
