package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report environment readiness and index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			results := preflight.RunAll(cmd.Context(), cfg)

			var indexedFiles int64 = -1
			if store, err := ctx.openIndex(); err == nil && store != nil {
				if count, countErr := store.CountFiles(cmd.Context()); countErr == nil {
					indexedFiles = count
				}
				store.Close()
			}

			if jsonOutput {
				payload := struct {
					Checks       []preflight.Result `json:"checks"`
					Ready        bool               `json:"ready"`
					IndexedFiles int64              `json:"indexed_files"`
				}{results, preflight.Passed(results), indexedFiles}
				return writeJSON(cmd, payload)
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				state := "ok"
				if !r.Passed {
					state = "failed"
				}
				rows = append(rows, []string{r.Name, state, r.Detail})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Check", "State", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "Target directory: %s\n", cfg.Paths.TargetDir)
			if indexedFiles >= 0 {
				fmt.Fprintf(out, "Indexed files: %d\n", indexedFiles)
			}
			if preflight.Passed(results) {
				fmt.Fprintln(out, "Ready.")
			} else {
				fmt.Fprintln(out, "Not ready.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
