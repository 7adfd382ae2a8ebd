package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"manimrun/internal/logging"
	"manimrun/internal/render"
	"manimrun/internal/services"
	"manimrun/internal/services/manim"
)

const usageLine = "Usage: manimrun <script_path> <scene1> [scene2 ...]"

type renderFlags struct {
	allScenes bool
}

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().BoolVar(&flags.allScenes, "all-scenes", false, "Render every scene declared in the script")
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render <script_path> <scene1> [scene2 ...]",
		Short: "Render scenes from a script (same as the root command)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, ctx, flags, args)
		},
	}
	addRenderFlags(cmd, flags)
	return cmd
}

func runRender(cmd *cobra.Command, ctx *commandContext, flags *renderFlags, args []string) error {
	out := cmd.OutOrStdout()

	script, scenes, err := renderRequest(args, flags.allScenes)
	if err != nil {
		printUsage(out)
		return err
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	settle, err := ctx.settleDelay(cmd, cfg)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "prepare", "", err)
	}
	logger, err := ctx.newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	client, err := manim.New(cfg.Renderer.Binary,
		manim.WithFlags(cfg.Renderer.Flags...),
		manim.WithTimeout(cfg.RenderTimeout()),
		manim.WithOutput(func(line string) {
			fmt.Fprintln(stderr, line)
		}),
		manim.WithProgress(func(update manim.ProgressUpdate) {
			logger.Debug("render progress",
				logging.Int("animation", update.Animation),
				logging.Any("percent", update.Percent),
				logging.String("animation_name", update.Message),
			)
		}),
	)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "renderer", "init", "", err)
	}

	runner, err := render.NewRunner(client, render.Options{
		OutputDir:      cfg.Paths.OutputDir,
		VideoExtension: cfg.Renderer.VideoExtension,
		CollectDir:     cfg.Paths.CollectDir,
		LockPath:       cfg.LockPath(),
		SettleDelay:    settle,
	}, logger)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "render", "init", "", err)
	}

	protocol := render.NewProtocol(out)
	protocol.Rendering(script, scenes)
	result, err := runner.Run(cmd.Context(), render.Request{ScriptPath: script, Scenes: scenes})
	if err != nil {
		if errors.Is(err, services.ErrNoOutput) {
			protocol.NoOutput(scenes)
		}
		return err
	}
	protocol.Result(result)
	return nil
}

// renderRequest turns positional arguments into a script and scene list.
// With allScenes the script alone is required and scenes are discovered.
func renderRequest(args []string, allScenes bool) (string, []string, error) {
	if allScenes {
		if len(args) != 1 {
			return "", nil, services.Wrap(services.ErrUsage, "cli", "args", "--all-scenes takes exactly one script path", nil)
		}
		scenes, err := manim.DiscoverScenesFile(args[0])
		if err != nil {
			return "", nil, services.Wrap(services.ErrUsage, "cli", "discover", "", err)
		}
		if len(scenes) == 0 {
			return "", nil, services.Wrap(services.ErrUsage, "cli", "discover", fmt.Sprintf("no scenes declared in %s", args[0]), nil)
		}
		return args[0], scenes, nil
	}
	if len(args) < 2 {
		return "", nil, services.Wrap(services.ErrUsage, "cli", "args", "script path and at least one scene required", nil)
	}
	return args[0], args[1:], nil
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, usageLine)
	fmt.Fprintln(out, "       manimrun --all-scenes <script_path>")
}
