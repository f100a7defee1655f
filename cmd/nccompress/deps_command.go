package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nccompress/internal/deps"
	"nccompress/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Show the status of the external tools nccompress relies on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(preflight.AllRequirements(cfg))

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
					if status.Optional {
						state = "missing (optional)"
					}
				}
				note := status.Description
				if status.Detail != "" {
					note = status.Detail
				}
				rows = append(rows, []string{status.Name, status.Command, state, note})
			}

			out := cmd.OutOrStdout()
			if stdoutIsTerminal() {
				fmt.Fprintln(out, renderTable(
					[]string{"Tool", "Command", "Status", "Notes"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
			} else {
				for _, row := range rows {
					fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", row[0], row[1], row[2], row[3])
				}
			}

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required tool(s) missing", len(missing))
			}
			return nil
		},
	}
}
