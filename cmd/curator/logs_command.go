package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"curator/internal/txlog"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "logs <directory>",
		Short: "List the transaction logs recorded for a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			paths, err := txlog.List(root)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transaction logs found.")
				return nil
			}

			type logSummary struct {
				File      string `json:"file"`
				Timestamp string `json:"timestamp"`
				DryRun    bool   `json:"dry_run"`
				Actions   int    `json:"actions"`
			}
			summaries := make([]logSummary, 0, len(paths))
			for _, p := range paths {
				entry, loadErr := txlog.Load(p)
				if loadErr != nil {
					return loadErr
				}
				summaries = append(summaries, logSummary{
					File:      filepath.Base(p),
					Timestamp: entry.Timestamp,
					DryRun:    entry.DryRun,
					Actions:   entry.ActionsCount,
				})
			}

			if jsonOutput {
				return writeJSON(cmd, summaries)
			}
			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []string{
					s.File,
					s.Timestamp,
					yesNo(s.DryRun),
					fmt.Sprintf("%d", s.Actions),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Log", "Recorded", "Dry Run", "Actions"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
