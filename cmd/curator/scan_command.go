package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"curator/internal/index"
	"curator/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput  bool
		noDeepScan  bool
		updateIndex bool
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Classify the files in a directory without changing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			root, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			opts := scanner.Options{
				Recursive: cfg.Scanner.Recursive,
				DeepScan:  cfg.Scanner.DeepScan && !noDeepScan,
				SkipDirs:  cfg.Scanner.SkipDirs,
				SkipFiles: cfg.Scanner.SkipFiles,
			}
			descriptors, err := scanner.New(ctx.loggerValue(), opts).Scan(cmd.Context(), root)
			if err != nil {
				return err
			}

			if updateIndex {
				store, err := ctx.openIndex()
				if err != nil {
					return err
				}
				if store == nil {
					return fmt.Errorf("indexing is disabled in the configuration")
				}
				defer store.Close()
				for _, d := range descriptors {
					record := index.FileRecord{
						Path:          d.Path,
						Name:          d.Name,
						Extension:     d.Extension,
						Size:          d.Size,
						Category:      d.Category.String(),
						MIME:          d.MIME,
						SuggestedName: d.SuggestedName,
						ModTime:       d.ModTime,
					}
					if err := store.UpsertFile(cmd.Context(), record); err != nil {
						return fmt.Errorf("index %s: %w", d.Path, err)
					}
				}
			}

			if jsonOutput {
				return writeJSON(cmd, descriptors)
			}

			rows := make([][]string, 0, len(descriptors))
			for _, d := range descriptors {
				rel, relErr := filepath.Rel(root, d.Path)
				if relErr != nil {
					rel = d.Path
				}
				rows = append(rows, []string{
					rel,
					d.Category.String(),
					d.MIME,
					yesNo(d.ExtensionMismatch),
					humanSize(d.Size),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Category", "Detected Type", "Ext Mismatch", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			fmt.Fprintf(cmd.OutOrStdout(), "%d files scanned\n", len(descriptors))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&noDeepScan, "no-deep-scan", false, "Classify by extension only")
	cmd.Flags().BoolVar(&updateIndex, "index", false, "Record scan results in the file index")
	return cmd
}
