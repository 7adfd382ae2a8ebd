package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"manimrun/internal/services"
	"manimrun/internal/services/manim"
)

func newScenesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes <script_path>",
		Short: "List the scenes declared in a script",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return services.Wrap(services.ErrUsage, "cli", "scenes", "expected exactly one script path", nil)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes, err := manim.DiscoverScenesFile(args[0])
			if err != nil {
				return services.Wrap(services.ErrUsage, "cli", "scenes", "", err)
			}
			out := cmd.OutOrStdout()
			if len(scenes) == 0 {
				fmt.Fprintf(out, "No scenes found in %s\n", args[0])
				return nil
			}
			rows := make([][]string, 0, len(scenes))
			for i, scene := range scenes {
				rows = append(rows, []string{strconv.Itoa(i + 1), scene})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Scene"}, rows, []columnAlignment{alignRight, alignLeft}))
			return nil
		},
	}
}
