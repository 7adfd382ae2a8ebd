package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"manimrun/internal/artifacts"
	"manimrun/internal/fileutil"
	"manimrun/internal/logging"
	"manimrun/internal/services"
)

// Request names the script to render and the scenes to render from it.
type Request struct {
	ScriptPath string
	Scenes     []string
}

// Collected records a resolved video copied into the collect directory.
type Collected struct {
	Scene string
	Path  string
}

// Result reports what a successful run produced.
type Result struct {
	RunID     string
	Videos    []artifacts.SceneVideo
	Missing   []string
	Collected []Collected
}

// Renderer invokes the external renderer and blocks until it exits.
type Renderer interface {
	Render(ctx context.Context, scriptPath string, scenes []string) error
}

// Resolver maps scenes to the newest matching artifacts.
type Resolver interface {
	Resolve(scenes []string) ([]artifacts.SceneVideo, []string, error)
}

// Options carries the resolved configuration a Runner needs.
type Options struct {
	OutputDir      string
	VideoExtension string
	CollectDir     string
	LockPath       string
	SettleDelay    time.Duration
}

// Option customizes a Runner (primarily for tests).
type Option func(*Runner)

// WithSleep replaces the settle wait.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(r *Runner) {
		if fn != nil {
			r.sleep = fn
		}
	}
}

// WithResolver replaces the filesystem resolver.
func WithResolver(resolver Resolver) Option {
	return func(r *Runner) {
		if resolver != nil {
			r.resolver = resolver
		}
	}
}

// WithRunIDGenerator replaces the uuid-based run identifier source.
func WithRunIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newRunID = fn
		}
	}
}

// Runner executes render requests against a single output tree.
type Runner struct {
	opts     Options
	renderer Renderer
	resolver Resolver
	logger   *slog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
	newRunID func() string
}

// NewRunner constructs a Runner. OutputDir is required; an empty
// VideoExtension defaults to .mp4.
func NewRunner(renderer Renderer, opts Options, logger *slog.Logger, options ...Option) (*Runner, error) {
	if renderer == nil {
		return nil, errors.New("renderer required")
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, errors.New("output directory required")
	}
	if opts.VideoExtension == "" {
		opts.VideoExtension = ".mp4"
	}
	resolver, err := artifacts.NewResolver(opts.OutputDir, opts.VideoExtension)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		opts:     opts,
		renderer: renderer,
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "render"),
		sleep:    sleepContext,
		newRunID: uuid.NewString,
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// Run renders req and resolves its videos. Returned errors carry one of the
// services markers unless ctx was cancelled. Nothing is resolved after a
// render failure.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	result := Result{RunID: r.newRunID()}
	if strings.TrimSpace(req.ScriptPath) == "" {
		return result, services.Wrap(services.ErrUsage, "render", "validate", "script path required", nil)
	}
	if len(req.Scenes) == 0 {
		return result, services.Wrap(services.ErrUsage, "render", "validate", "at least one scene required", nil)
	}

	ctx = services.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, r.logger)

	unlock, err := r.acquireLock()
	if err != nil {
		return result, err
	}
	defer unlock()

	// Best-effort: leftover videos only matter because they could be
	// mistaken for fresh output, and resolution picks the newest anyway.
	artifacts.CleanVideos(ctx, r.opts.OutputDir, r.opts.VideoExtension, logger)

	logger.Info("render started",
		logging.String(logging.FieldScript, req.ScriptPath),
		logging.Strings("scenes", req.Scenes),
	)
	started := time.Now()
	if err := r.renderer.Render(ctx, req.ScriptPath, req.Scenes); err != nil {
		if !errors.Is(err, services.ErrRenderFailure) && !errors.Is(err, services.ErrUsage) {
			err = services.Wrap(services.ErrRenderFailure, "render", "invoke", "", err)
		}
		return result, logFailure(logger, "render failed", "render_failed", err,
			logging.String(logging.FieldErrorHint, "inspect renderer output above"),
		)
	}
	logger.Info("render finished", logging.Duration("elapsed", time.Since(started)))

	if err := r.sleep(ctx, r.opts.SettleDelay); err != nil {
		return result, fmt.Errorf("settle delay: %w", err)
	}

	videos, missing, err := r.resolver.Resolve(req.Scenes)
	if err != nil {
		return result, logFailure(logger, "resolve failed", "resolve_failed",
			services.Wrap(services.ErrExternalTool, "resolve", "glob", "", err))
	}
	result.Videos = videos
	result.Missing = missing
	if len(videos) == 0 {
		return result, services.Wrap(services.ErrNoOutput, "resolve", "",
			fmt.Sprintf("no %s files found under %s for scenes %s", r.opts.VideoExtension, r.opts.OutputDir, strings.Join(req.Scenes, ", ")), nil)
	}
	for _, scene := range missing {
		logging.WarnWithContext(logger, "scene produced no video", "scene_unresolved",
			logging.String(logging.FieldScene, scene),
			logging.String(logging.FieldErrorHint, "check the scene name matches a class in the script"),
			logging.String(logging.FieldImpact, "scene omitted from output"),
		)
	}

	if r.opts.CollectDir != "" {
		collected, err := r.collect(videos)
		result.Collected = collected
		if err != nil {
			return result, logFailure(logger, "collect failed", "collect_failed", err,
				logging.String(logging.FieldErrorHint, "check paths.collect_dir is writable"),
			)
		}
	}

	logger.Info("videos resolved",
		logging.Int("resolved", len(videos)),
		logging.Int("missing", len(missing)),
	)
	return result, nil
}

// logFailure logs err with its marker kind and returns it unchanged.
func logFailure(logger *slog.Logger, msg, eventType string, err error, attrs ...logging.Attr) error {
	attrs = append([]logging.Attr{
		logging.Error(err),
		logging.String(logging.FieldErrorKind, services.Kind(err)),
	}, attrs...)
	logging.ErrorWithContext(logger, msg, eventType, attrs...)
	return err
}

func (r *Runner) acquireLock() (func(), error) {
	if r.opts.LockPath == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(r.opts.LockPath), 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lock", "prepare", "create lock directory", err)
	}
	lock := flock.New(r.opts.LockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrBusy, "lock", "acquire", r.opts.LockPath, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrBusy, "lock", "acquire",
			fmt.Sprintf("another manimrun is rendering into %s", r.opts.OutputDir), nil)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release render lock", logging.String("lock", r.opts.LockPath), logging.Error(err))
		}
	}, nil
}

func (r *Runner) collect(videos []artifacts.SceneVideo) ([]Collected, error) {
	collected := make([]Collected, 0, len(videos))
	for _, video := range videos {
		name := video.Scene + filepath.Ext(video.Path)
		dst, err := fileutil.CopyIntoDir(video.Path, r.opts.CollectDir, name)
		if err != nil {
			return collected, services.Wrap(services.ErrCollect, "collect", video.Scene, "", err)
		}
		collected = append(collected, Collected{Scene: video.Scene, Path: dst})
	}
	return collected, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
