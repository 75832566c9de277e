package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"curator/internal/txlog"
)

func newRollbackCommand(ctx *commandContext) *cobra.Command {
	var (
		logFlag    string
		assumeYes  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "rollback <directory>",
		Short: "Undo the changes recorded in a transaction log",
		Long: `Rollback replays a transaction log in reverse, moving every file back
to where it came from. Without --log it uses the most recent log under
the directory's log folder. Dry-run logs are never replayed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			logPath := logFlag
			if logPath == "" {
				logs, listErr := txlog.List(root)
				if listErr != nil {
					return listErr
				}
				if len(logs) == 0 {
					return fmt.Errorf("no transaction logs found under %s", filepath.Join(root, txlog.LogDirName))
				}
				logPath = logs[len(logs)-1]
			}

			entry, err := txlog.Load(logPath)
			if err != nil {
				return err
			}
			if !assumeYes && !entry.DryRun {
				ok, confirmErr := confirm(cmd, fmt.Sprintf("Reverse %d actions from %s?", entry.ActionsCount, filepath.Base(logPath)))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			var result *txlog.RollbackResult
			runErr := ctx.withLock(func() error {
				var rbErr error
				result, rbErr = txlog.Rollback(logPath, ctx.loggerValue())
				return rbErr
			})
			if runErr != nil {
				return runErr
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			switch result.Status {
			case txlog.StatusSkipped:
				fmt.Fprintf(out, "%s is a dry-run preview; nothing to undo.\n", filepath.Base(logPath))
			default:
				fmt.Fprintf(out, "Reversed %d actions from %s.\n", result.Reversed, filepath.Base(logPath))
				for _, msg := range result.Errors {
					fmt.Fprintf(out, "  %s\n", msg)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logFlag, "log", "", "Transaction log file to replay (defaults to the most recent)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Replay without asking for confirmation")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the rollback result as JSON")
	return cmd
}
