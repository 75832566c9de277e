package index

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"curator/internal/txlog"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUpsertAndSearch(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	records := []FileRecord{
		{Path: "/files/report.pdf", Name: "report.pdf", Extension: ".pdf", Size: 100, Category: "Documents", MIME: "application/pdf", ModTime: time.Now()},
		{Path: "/files/song.mp3", Name: "song.mp3", Extension: ".mp3", Size: 200, Category: "Audio", MIME: "audio/mpeg", ModTime: time.Now()},
	}
	for _, r := range records {
		if err := store.UpsertFile(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	count, err := store.CountFiles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	found, err := store.Search(ctx, "report", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Path != "/files/report.pdf" {
		t.Fatalf("search result = %+v", found)
	}

	byCategory, err := store.Search(ctx, "", "Audio", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(byCategory) != 1 || byCategory[0].Name != "song.mp3" {
		t.Fatalf("category search = %+v", byCategory)
	}
}

func TestUpsertRefreshesExistingRow(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := FileRecord{Path: "/files/a.txt", Name: "a.txt", Size: 1, Category: "Documents"}
	if err := store.UpsertFile(ctx, record); err != nil {
		t.Fatal(err)
	}
	record.Size = 42
	if err := store.UpsertFile(ctx, record); err != nil {
		t.Fatal(err)
	}

	found, err := store.Search(ctx, "a.txt", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Size != 42 {
		t.Fatalf("row not refreshed: %+v", found)
	}
}

func TestRecordExecutionUpdatesPathsAndHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.UpsertFile(ctx, FileRecord{Path: "/inbox/a.txt", Name: "a.txt", Category: "Documents"}); err != nil {
		t.Fatal(err)
	}

	entries := []txlog.Entry{
		{Type: txlog.ActionMove, From: "/inbox/a.txt", To: "/organized/01_Documents/a.txt", Category: "Documents"},
	}
	if err := store.RecordExecution(ctx, "batch-1", entries); err != nil {
		t.Fatal(err)
	}

	found, err := store.Search(ctx, "a.txt", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Path != "/organized/01_Documents/a.txt" {
		t.Fatalf("indexed path not updated: %+v", found)
	}

	history, err := store.History(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].BatchID != "batch-1" || history[0].Type != "move" {
		t.Fatalf("history = %+v", history)
	}
}

func TestRemoveFile(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.UpsertFile(ctx, FileRecord{Path: "/x.txt", Name: "x.txt"}); err != nil {
		t.Fatal(err)
	}
	if err := store.RemoveFile(ctx, "/x.txt"); err != nil {
		t.Fatal(err)
	}
	count, err := store.CountFiles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("count = %d after remove", count)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "index.db")
	first, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}
	second, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := second.Close(); err != nil {
		t.Fatal(err)
	}
}
