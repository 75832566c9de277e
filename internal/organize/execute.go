package organize

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"curator/internal/fileutil"
	"curator/internal/logging"
	"curator/internal/txlog"
)

// ActionError attributes a failed action to its source path.
type ActionError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ExecutionResult reports what one execution attempted and achieved.
type ExecutionResult struct {
	BatchID     string        `json:"batch_id"`
	DryRun      bool          `json:"dry_run"`
	RenamesDone int           `json:"renames_done"`
	MovesDone   int           `json:"moves_done"`
	Errors      []ActionError `json:"errors,omitempty"`
	LogEntries  []txlog.Entry `json:"actions"`
	LogPath     string        `json:"log_path"`
}

// Executor applies plans to the filesystem.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor constructs an executor. A nil logger disables logging.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Executor{logger: logging.NewComponentLogger(logger, "executor")}
}

// Execute applies the plan, renames first, then moves. Each action succeeds
// or fails on its own; a failure is recorded against its path and the batch
// continues. Every completed action (every planned action on a dry run)
// becomes a transaction log entry, and the log is saved under root's
// reserved log directory before returning.
func (e *Executor) Execute(plan *Plan, root string, dryRun bool) (*ExecutionResult, error) {
	result := &ExecutionResult{
		BatchID: uuid.NewString(),
		DryRun:  dryRun,
	}
	logger := e.logger.With(logging.String(logging.FieldBatchID, result.BatchID))
	logger.Info("executing plan",
		logging.Int("renames", len(plan.Renames)),
		logging.Int("moves", len(plan.Moves)),
		logging.Bool("dry_run", dryRun),
	)

	for _, r := range plan.Renames {
		if !dryRun {
			if err := os.Rename(r.Original, r.NewPath); err != nil {
				result.Errors = append(result.Errors, ActionError{Path: r.Original, Message: err.Error()})
				logger.Warn("rename failed", logging.String(logging.FieldPath, r.Original), logging.Error(err))
				continue
			}
		}
		result.RenamesDone++
		result.LogEntries = append(result.LogEntries, txlog.Entry{
			Type:   txlog.ActionRename,
			From:   r.Original,
			To:     r.NewPath,
			DryRun: dryRun,
		})
		logger.Debug("renamed", logging.String("from", r.Original), logging.String("to", r.NewPath))
	}

	for _, m := range plan.Moves {
		if !dryRun {
			if err := os.MkdirAll(filepath.Dir(m.Destination), 0o755); err != nil {
				result.Errors = append(result.Errors, ActionError{Path: m.Original, Message: err.Error()})
				logger.Warn("create destination failed", logging.String(logging.FieldPath, m.Original), logging.Error(err))
				continue
			}
			if err := fileutil.MoveFile(m.Original, m.Destination); err != nil {
				result.Errors = append(result.Errors, ActionError{Path: m.Original, Message: err.Error()})
				logger.Warn("move failed", logging.String(logging.FieldPath, m.Original), logging.Error(err))
				continue
			}
		}
		result.MovesDone++
		result.LogEntries = append(result.LogEntries, txlog.Entry{
			Type:     txlog.ActionMove,
			From:     m.Original,
			To:       m.Destination,
			Category: m.Category.String(),
			DryRun:   dryRun,
		})
		logger.Debug("moved", logging.String("from", m.Original), logging.String("to", m.Destination))
	}

	entry := txlog.New(dryRun, result.LogEntries)
	entry.BatchID = result.BatchID
	logPath, err := txlog.Save(root, entry)
	if err != nil {
		return result, err
	}
	result.LogPath = logPath

	logger.Info("execution finished",
		logging.Int("renames_done", result.RenamesDone),
		logging.Int("moves_done", result.MovesDone),
		logging.Int("errors", len(result.Errors)),
		logging.String("log", logPath),
	)
	return result, nil
}
