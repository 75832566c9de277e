package txlog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"curator/internal/fileutil"
	"curator/internal/logging"
)

// RollbackStatus summarizes a rollback attempt.
type RollbackStatus string

const (
	// StatusCompleted means every logged action was attempted in reverse.
	StatusCompleted RollbackStatus = "completed"
	// StatusSkipped means the log was a dry-run preview and nothing was done.
	StatusSkipped RollbackStatus = "skipped"
)

// RollbackResult reports what a rollback achieved.
type RollbackResult struct {
	Status   RollbackStatus `json:"status"`
	Reversed int            `json:"reversed"`
	Errors   []string       `json:"errors,omitempty"`
}

// Rollback undoes the execution recorded at logPath by replaying its actions
// in strict reverse order. Dry-run logs are refused. A missing or unmovable
// file produces a per-action error; the replay continues regardless.
//
// Directories that were move destinations in the original run are removed
// afterwards if they are now empty. Nothing else is deleted.
func Rollback(logPath string, logger *slog.Logger) (*RollbackResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "rollback")

	entry, err := Load(logPath)
	if err != nil {
		return nil, err
	}
	if entry.DryRun {
		logger.Info("log is a dry-run preview, nothing to undo", logging.String("log", logPath))
		return &RollbackResult{Status: StatusSkipped}, nil
	}

	logger.Info("rolling back execution",
		logging.String("log", logPath),
		logging.Int("actions", len(entry.Actions)),
	)

	result := &RollbackResult{Status: StatusCompleted}
	moveDirs := make(map[string]struct{})

	for i := len(entry.Actions) - 1; i >= 0; i-- {
		action := entry.Actions[i]
		if action.Type == ActionMove {
			moveDirs[filepath.Dir(action.To)] = struct{}{}
		}
		if _, err := os.Stat(action.To); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: source missing, cannot restore", action.To))
			continue
		}
		if err := os.MkdirAll(filepath.Dir(action.From), 0o755); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", action.From, err))
			continue
		}
		if err := fileutil.MoveFile(action.To, action.From); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", action.To, err))
			continue
		}
		result.Reversed++
		logger.Debug("restored", logging.String("from", action.To), logging.String("to", action.From))
	}

	removeEmptyDirs(moveDirs, logger)

	logger.Info("rollback finished",
		logging.Int("reversed", result.Reversed),
		logging.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// removeEmptyDirs deletes the given directories when empty, deepest first so
// nested destination folders collapse in one pass.
func removeEmptyDirs(dirs map[string]struct{}, logger *slog.Logger) {
	ordered := make([]string, 0, len(dirs))
	for dir := range dirs {
		ordered = append(ordered, dir)
	}
	sort.Slice(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })

	for _, dir := range ordered {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err == nil {
			logger.Debug("removed empty directory", logging.String("dir", dir))
		}
	}
}
