package txlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"curator/internal/services"
)

// LogDirName is the reserved subdirectory of the organized root that holds
// transaction logs.
const LogDirName = ".curator-logs"

// ActionType labels a logged filesystem mutation.
type ActionType string

const (
	ActionRename ActionType = "rename"
	ActionMove   ActionType = "move"
)

// Entry records one attempted action. From and To are absolute paths.
type Entry struct {
	Type     ActionType `json:"type"`
	From     string     `json:"from"`
	To       string     `json:"to"`
	Category string     `json:"category,omitempty"`
	DryRun   bool       `json:"dry_run,omitempty"`
}

// Log is the durable record of one execution. It is written once and never
// mutated; rollback replays Actions in reverse order.
type Log struct {
	Timestamp    string  `json:"timestamp"`
	DryRun       bool    `json:"dry_run"`
	ActionsCount int     `json:"actions_count"`
	Actions      []Entry `json:"actions"`
	// BatchID ties the log to one execution batch. Optional; readers that
	// only replay actions ignore it.
	BatchID string `json:"batch_id,omitempty"`
}

// New builds a log stamped with the current UTC time.
func New(dryRun bool, actions []Entry) Log {
	return Log{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		DryRun:       dryRun,
		ActionsCount: len(actions),
		Actions:      actions,
	}
}

// Save writes the log under root's reserved log directory and returns the
// path of the written file. Dry-run logs carry a -dry-run suffix so they are
// recognizable without being opened.
func Save(root string, entry Log) (string, error) {
	dir := filepath.Join(root, LogDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "txlog", "ensure log dir", "Failed to create transaction log directory", err)
	}

	payload, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "txlog", "encode log", "Failed to encode transaction log", err)
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	suffix := ""
	if entry.DryRun {
		suffix = "-dry-run"
	}
	for attempt := 0; ; attempt++ {
		name := fmt.Sprintf("changes-%s%s.json", stamp, suffix)
		if attempt > 0 {
			name = fmt.Sprintf("changes-%s-%d%s.json", stamp, attempt, suffix)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			if errors.Is(err, os.ErrExist) && attempt < 100 {
				continue
			}
			return "", services.Wrap(services.ErrTransient, "txlog", "write log", "Failed to write transaction log", err)
		}
		if _, err := f.Write(payload); err != nil {
			f.Close()
			return "", services.Wrap(services.ErrTransient, "txlog", "write log", "Failed to write transaction log", err)
		}
		if err := f.Close(); err != nil {
			return "", services.Wrap(services.ErrTransient, "txlog", "write log", "Failed to write transaction log", err)
		}
		return path, nil
	}
}

// List returns the transaction logs under root, newest last. The timestamped
// filenames make lexical order chronological.
func List(root string) ([]string, error) {
	dir := filepath.Join(root, LogDirName)
	matches, err := filepath.Glob(filepath.Join(dir, "changes-*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// Load reads and decodes a transaction log. A log that cannot be read or
// parsed is a hard error: rollback must never guess at what was done.
func Load(path string) (Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Log{}, services.Wrap(services.ErrNotFound, "txlog", "read log", "Failed to read transaction log", err)
	}
	var entry Log
	if err := json.Unmarshal(data, &entry); err != nil {
		return Log{}, services.Wrap(services.ErrValidation, "txlog", "parse log", "Transaction log is corrupt; refusing to roll back", err)
	}
	return entry, nil
}
