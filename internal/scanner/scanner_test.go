package scanner

import (
	"context"
	"path/filepath"
	"testing"

	"curator/internal/category"
	"curator/internal/logging"
	"curator/internal/testsupport"
)

func TestScanClassifiesByExtension(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "notes.txt"), []byte("plain text"))
	testsupport.WriteFile(t, filepath.Join(root, "sub", "song.mp3"), []byte("not really audio"))
	testsupport.WriteFile(t, filepath.Join(root, "mystery.xyz"), []byte{0x00})

	opts := DefaultOptions()
	opts.DeepScan = false
	descriptors, err := New(logging.NewNop(), opts).Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(descriptors) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(descriptors))
	}

	byName := map[string]category.Category{}
	for _, d := range descriptors {
		byName[d.Name] = d.Category
	}
	if byName["notes.txt"] != category.Documents {
		t.Errorf("notes.txt classified as %s", byName["notes.txt"])
	}
	if byName["song.mp3"] != category.Audio {
		t.Errorf("song.mp3 classified as %s", byName["song.mp3"])
	}
	if byName["mystery.xyz"] != category.Other {
		t.Errorf("mystery.xyz classified as %s", byName["mystery.xyz"])
	}
}

func TestScanDeepScanDetectsMismatch(t *testing.T) {
	root := t.TempDir()
	// PNG magic bytes behind a .txt extension.
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	testsupport.WriteFile(t, filepath.Join(root, "image.txt"), png)

	descriptors, err := New(logging.NewNop(), DefaultOptions()).Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(descriptors) != 1 {
		t.Fatalf("expected 1 descriptor, got %d", len(descriptors))
	}
	d := descriptors[0]
	if d.Category != category.Images {
		t.Errorf("category = %s, want Images", d.Category)
	}
	if !d.ExtensionMismatch || d.DetectedExtension != ".png" {
		t.Errorf("mismatch=%v detected=%s", d.ExtensionMismatch, d.DetectedExtension)
	}
}

func TestScanSkipsConfiguredNames(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, ".git", "config"), []byte("x"))
	testsupport.WriteFile(t, filepath.Join(root, ".curator-logs", "changes-1.json"), []byte("{}"))
	testsupport.WriteFile(t, filepath.Join(root, ".DS_Store"), []byte("x"))
	testsupport.WriteFile(t, filepath.Join(root, "keep.txt"), []byte("x"))

	descriptors, err := New(logging.NewNop(), DefaultOptions()).Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(descriptors) != 1 || descriptors[0].Name != "keep.txt" {
		t.Fatalf("descriptors = %+v", descriptors)
	}
}

func TestScanNonRecursive(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "top.txt"), []byte("x"))
	testsupport.WriteFile(t, filepath.Join(root, "sub", "nested.txt"), []byte("x"))

	opts := DefaultOptions()
	opts.Recursive = false
	descriptors, err := New(logging.NewNop(), opts).Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(descriptors) != 1 || descriptors[0].Name != "top.txt" {
		t.Fatalf("descriptors = %+v", descriptors)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := New(logging.NewNop(), DefaultOptions()).Scan(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing root")
	}
}
