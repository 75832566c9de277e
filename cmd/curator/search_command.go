package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		categoryFilter string
		limit          int
		jsonOutput     bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the file index by name or path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openIndex()
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("indexing is disabled in the configuration")
			}
			defer store.Close()

			records, err := store.Search(cmd.Context(), args[0], categoryFilter, limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{
					r.Name,
					r.Category,
					humanSize(r.Size),
					r.Path,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Category", "Size", "Path"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFilter, "category", "", "Limit matches to one category")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of matches")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
