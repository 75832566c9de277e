package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"curator/internal/txlog"
)

// FileRecord is one indexed file.
type FileRecord struct {
	ID            int64     `json:"id"`
	Path          string    `json:"path"`
	Name          string    `json:"name"`
	Extension     string    `json:"extension"`
	Size          int64     `json:"size"`
	Category      string    `json:"category"`
	MIME          string    `json:"mime,omitempty"`
	SuggestedName string    `json:"suggested_name,omitempty"`
	ModTime       time.Time `json:"mod_time"`
	IndexedAt     time.Time `json:"indexed_at"`
}

// ActionRecord is one row of execution history.
type ActionRecord struct {
	ID         int64     `json:"id"`
	BatchID    string    `json:"batch_id"`
	Type       string    `json:"type"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Category   string    `json:"category,omitempty"`
	DryRun     bool      `json:"dry_run"`
	ExecutedAt time.Time `json:"executed_at"`
}

// UpsertFile inserts or refreshes the index row for record.Path.
func (s *Store) UpsertFile(ctx context.Context, record FileRecord) error {
	return s.execWithRetry(ctx, `
		INSERT INTO files (path, name, extension, size, category, mime, suggested_name, mod_time, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			extension = excluded.extension,
			size = excluded.size,
			category = excluded.category,
			mime = excluded.mime,
			suggested_name = excluded.suggested_name,
			mod_time = excluded.mod_time,
			indexed_at = excluded.indexed_at`,
		record.Path, record.Name, record.Extension, record.Size, record.Category,
		record.MIME, record.SuggestedName,
		record.ModTime.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
	)
}

// RemoveFile drops the index row for path, if any.
func (s *Store) RemoveFile(ctx context.Context, path string) error {
	return s.execWithRetry(ctx, "DELETE FROM files WHERE path = ?", path)
}

// MoveFile rewrites the indexed path after an executed action so the index
// follows the file.
func (s *Store) MoveFile(ctx context.Context, from, to string) error {
	return s.execWithRetry(ctx, "UPDATE files SET path = ?, name = ? WHERE path = ?",
		to, baseName(to), from)
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// RecordExecution stores one history row per completed log entry under the
// given batch id and updates indexed paths to match.
func (s *Store) RecordExecution(ctx context.Context, batchID string, entries []txlog.Entry) error {
	executedAt := time.Now().UTC().Format(time.RFC3339)
	for _, entry := range entries {
		if err := s.execWithRetry(ctx, `
			INSERT INTO actions (batch_id, type, from_path, to_path, category, dry_run, executed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			batchID, string(entry.Type), entry.From, entry.To, entry.Category,
			boolToInt(entry.DryRun), executedAt,
		); err != nil {
			return fmt.Errorf("record action %s: %w", entry.From, err)
		}
		if !entry.DryRun {
			if err := s.MoveFile(ctx, entry.From, entry.To); err != nil {
				return fmt.Errorf("update indexed path %s: %w", entry.From, err)
			}
		}
	}
	return nil
}

// Search returns indexed files whose name or path contains query, optionally
// restricted to one category. An empty query matches everything.
func (s *Store) Search(ctx context.Context, query, categoryName string, limit int) ([]FileRecord, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 100
	}

	where := []string{"1=1"}
	args := []any{}
	if query != "" {
		where = append(where, "(name LIKE ? OR path LIKE ?)")
		pattern := "%" + query + "%"
		args = append(args, pattern, pattern)
	}
	if categoryName != "" {
		where = append(where, "category = ?")
		args = append(args, categoryName)
	}
	args = append(args, limit)

	stmt := fmt.Sprintf(`
		SELECT id, path, name, extension, size, category, mime, suggested_name, mod_time, indexed_at
		FROM files WHERE %s ORDER BY path LIMIT ?`, strings.Join(where, " AND "))

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		record, err := scanFileRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// History returns the most recent action records, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]ActionRecord, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, batch_id, type, from_path, to_path, category, dry_run, executed_at
		FROM actions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ActionRecord
	for rows.Next() {
		var (
			record   ActionRecord
			dryRun   int
			executed string
		)
		if err := rows.Scan(&record.ID, &record.BatchID, &record.Type, &record.From,
			&record.To, &record.Category, &dryRun, &executed); err != nil {
			return nil, err
		}
		record.DryRun = dryRun != 0
		record.ExecutedAt, _ = time.Parse(time.RFC3339, executed)
		records = append(records, record)
	}
	return records, rows.Err()
}

// CountFiles reports the number of indexed files.
func (s *Store) CountFiles(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ensureContext(ctx), "SELECT COUNT(1) FROM files").Scan(&count)
	return count, err
}

func scanFileRecord(rows *sql.Rows) (FileRecord, error) {
	var (
		record  FileRecord
		modTime string
		indexed string
	)
	if err := rows.Scan(&record.ID, &record.Path, &record.Name, &record.Extension,
		&record.Size, &record.Category, &record.MIME, &record.SuggestedName,
		&modTime, &indexed); err != nil {
		return FileRecord{}, err
	}
	record.ModTime, _ = time.Parse(time.RFC3339, modTime)
	record.IndexedAt, _ = time.Parse(time.RFC3339, indexed)
	return record, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
