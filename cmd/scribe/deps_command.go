package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg.FFmpegBinary(), cfg.FFprobeBinary(), cfg.Whisper.Binary))

			out := cmd.OutOrStdout()
			color := shouldColorize(out)
			rows := make([][]string, 0, len(statuses))
			var missing []string
			for _, status := range statuses {
				state := colorize("ok", ansiGreen, color)
				note := status.Description
				if !status.Available {
					if status.Optional {
						state = colorize("missing (optional)", ansiYellow, color)
					} else {
						state = colorize("missing", ansiRed, color)
						missing = append(missing, status.Name)
					}
					note = status.InstallHint
				}
				rows = append(rows, []string{status.Name, status.Command, state, note})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Status", "Notes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			if len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
