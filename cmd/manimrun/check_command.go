package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"manimrun/internal/preflight"
	"manimrun/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the renderer and output paths are ready",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var rows [][]string
			failed := 0
			for _, status := range preflight.CheckSystemDeps(cfg) {
				kind := statusOK
				detail := status.Command
				if !status.Available {
					kind = statusError
					if status.Optional {
						kind = statusWarn
					} else {
						failed++
					}
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, statusCell(kind, colorize), detail, status.Description})
			}
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failed++
				}
				rows = append(rows, []string{result.Name, statusCell(kind, colorize), result.Detail, ""})
			}

			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail", "Purpose"}, rows, nil))
			if failed > 0 {
				return services.Wrap(services.ErrExternalTool, "check", "", fmt.Sprintf("%d required check(s) failed", failed), nil)
			}
			fmt.Fprintln(out, "Ready to render")
			return nil
		},
	}
}
