package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)
	rootFlags := &renderFlags{}

	rootCmd := &cobra.Command{
		Use:           "manimrun <script_path> <scene1> [scene2 ...]",
		Short:         "Render manim scenes and report the videos they produce",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, ctx, rootFlags, args)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	persistent.StringVar(&flags.outputDir, "output-dir", "", "Renderer output tree to clean and search")
	persistent.StringVar(&flags.collectDir, "collect-dir", "", "Copy resolved videos into this directory")
	persistent.DurationVar(&flags.settle, "settle", 0, "Wait between renderer exit and output resolution (default from config)")
	persistent.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	persistent.StringVar(&flags.logFormat, "log-format", "", "Log format (console, json)")
	addRenderFlags(rootCmd, rootFlags)

	rootCmd.AddCommand(newRenderCommand(ctx))
	rootCmd.AddCommand(newScenesCommand())
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
