package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"curator/internal/category"
	"curator/internal/logging"
	"curator/internal/organize"
	"curator/internal/preflight"
	"curator/internal/scanner"
	"curator/internal/services/entity"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun     bool
		assumeYes  bool
		jsonOutput bool
		targetFlag string
	)

	cmd := &cobra.Command{
		Use:   "organize <directory>",
		Short: "Rename and sort the files in a directory",
		Long: `Organize scans a directory, derives a normalized name for every file,
and sorts files into category folders under the target directory.
Every change is written to a transaction log that rollback can replay.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger := ctx.loggerValue()

			source, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			target := cfg.Paths.TargetDir
			if targetFlag != "" {
				if target, err = filepath.Abs(targetFlag); err != nil {
					return fmt.Errorf("resolve target: %w", err)
				}
			}
			if !cfg.Organizer.IntoFolders {
				target = source
			}

			if !dryRun {
				results := preflight.RunAll(cmd.Context(), cfg)
				if !preflight.Passed(results) {
					for _, r := range results {
						if !r.Passed {
							fmt.Fprintf(cmd.ErrOrStderr(), "preflight: %s: %s\n", r.Name, r.Detail)
						}
					}
					return fmt.Errorf("preflight checks failed")
				}
			}

			scanOpts := scanner.Options{
				Recursive: cfg.Scanner.Recursive,
				DeepScan:  cfg.Scanner.DeepScan,
				SkipDirs:  cfg.Scanner.SkipDirs,
				SkipFiles: cfg.Scanner.SkipFiles,
			}
			descriptors, err := scanner.New(logger, scanOpts).Scan(cmd.Context(), source)
			if err != nil {
				return err
			}
			if len(descriptors) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to organize.")
				return nil
			}

			if cfg.Entity.Enabled {
				detector := entity.NewService(entity.Config{
					Enabled: true,
					BaseURL: cfg.Entity.BaseURL,
					APIKey:  cfg.Entity.APIKey,
					Model:   cfg.Entity.Model,
					Timeout: time.Duration(cfg.Entity.TimeoutSeconds) * time.Second,
				}, logger)
				for i := range descriptors {
					if descriptors[i].Category != category.Documents {
						continue
					}
					name, detectErr := detector.DetectEntity(cmd.Context(), descriptors[i].Name, descriptors[i].Metadata)
					if detectErr != nil {
						logger.Warn("entity detection failed",
							logging.String(logging.FieldPath, descriptors[i].Path),
							logging.Error(detectErr))
						continue
					}
					descriptors[i].Entity = name
				}
			}

			plan := organize.BuildPlan(descriptors, target, organize.Options{
				IntoFolders:      cfg.Organizer.IntoFolders,
				EntityFolders:    cfg.Organizer.EntityFolders,
				EntityInFilename: cfg.Organizer.EntityInFilename,
				Subcategories:    cfg.Organizer.Subcategories,
				Rules:            cfg.Rules(),
			})
			if plan.TotalActions() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Everything is already organized.")
				return nil
			}

			if !jsonOutput {
				printPlan(cmd, source, plan)
			}

			if !dryRun && !assumeYes {
				ok, confirmErr := confirm(cmd, fmt.Sprintf("Apply %d changes?", plan.TotalActions()))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			var result *organize.ExecutionResult
			runErr := ctx.withLock(func() error {
				var execErr error
				result, execErr = organize.NewExecutor(logger).Execute(plan, source, dryRun)
				return execErr
			})
			if runErr != nil {
				return runErr
			}

			if store, storeErr := ctx.openIndex(); storeErr == nil && store != nil {
				defer store.Close()
				if err := store.RecordExecution(cmd.Context(), result.BatchID, result.LogEntries); err != nil {
					logger.Warn("index update failed", logging.Error(err))
				}
			} else if storeErr != nil {
				logger.Warn("index unavailable", logging.Error(storeErr))
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			printExecutionResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Plan and log changes without touching files")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Apply changes without asking for confirmation")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the execution result as JSON")
	cmd.Flags().StringVar(&targetFlag, "target", "", "Destination directory (overrides configuration)")
	return cmd
}

func printPlan(cmd *cobra.Command, source string, plan *organize.Plan) {
	rows := make([][]string, 0, plan.TotalActions())
	for _, r := range plan.Renames {
		rows = append(rows, []string{
			"rename",
			relativeTo(source, r.Original),
			relativeTo(source, r.NewPath),
			r.Reason,
		})
	}
	for _, m := range plan.Moves {
		rows = append(rows, []string{
			"move",
			relativeTo(source, m.Original),
			m.Destination,
			m.Reason,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Action", "From", "To", "Reason"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	))
}

func printExecutionResult(cmd *cobra.Command, result *organize.ExecutionResult) {
	out := cmd.OutOrStdout()
	if result.DryRun {
		fmt.Fprintf(out, "Dry run: %d renames and %d moves planned.\n", result.RenamesDone, result.MovesDone)
	} else {
		fmt.Fprintf(out, "Applied %d renames and %d moves.\n", result.RenamesDone, result.MovesDone)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(out, "  failed: %s: %s\n", e.Path, e.Message)
	}
	if result.LogPath != "" {
		fmt.Fprintf(out, "Transaction log: %s\n", result.LogPath)
	}
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
