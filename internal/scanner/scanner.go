package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"curator/internal/classify"
	"curator/internal/logging"
	"curator/internal/organize"
	"curator/internal/services"
	"curator/internal/txlog"
)

// Options controls a directory scan.
type Options struct {
	// Recursive descends into subdirectories.
	Recursive bool
	// DeepScan reads file bytes for signature detection and metadata
	// extraction; without it classification falls back to extensions.
	DeepScan bool
	// SkipDirs and SkipFiles name directory and file basenames excluded
	// from the scan, matched case-insensitively.
	SkipDirs  []string
	SkipFiles []string
}

// DefaultOptions returns the scan settings used by the CLI.
func DefaultOptions() Options {
	return Options{
		Recursive: true,
		DeepScan:  true,
		SkipDirs:  []string{".git", ".svn", "node_modules", "__pycache__", ".venv"},
		SkipFiles: []string{".DS_Store", "Thumbs.db", "desktop.ini"},
	}
}

// Scanner walks a directory tree and produces the descriptors the planner
// consumes.
type Scanner struct {
	analyzer *classify.Analyzer
	logger   *slog.Logger
	opts     Options
}

// New constructs a scanner.
func New(logger *slog.Logger, opts Options) *Scanner {
	return &Scanner{
		analyzer: classify.NewAnalyzer(logger),
		logger:   logging.NewComponentLogger(logger, "scanner"),
		opts:     opts,
	}
}

// Scan walks root and returns one descriptor per regular file, in a stable
// sorted order. Unreadable files are skipped with a warning; only a failure
// to read root itself is an error.
func (s *Scanner) Scan(ctx context.Context, root string) ([]organize.FileDescriptor, error) {
	skipDirs := lowerSet(s.opts.SkipDirs)
	skipFiles := lowerSet(s.opts.SkipFiles)
	skipDirs[strings.ToLower(txlog.LogDirName)] = struct{}{}

	var descriptors []organize.FileDescriptor
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Warn("skipping unreadable entry", logging.String(logging.FieldPath, path), logging.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[strings.ToLower(d.Name())]; skip || !s.opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, skip := skipFiles[strings.ToLower(d.Name())]; skip {
			return nil
		}
		desc, err := s.describe(path, d)
		if err != nil {
			s.logger.Warn("skipping file", logging.String(logging.FieldPath, path), logging.Error(err))
			return nil
		}
		descriptors = append(descriptors, desc)
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "scanner", "walk", "Failed to scan directory", err)
	}

	sort.Slice(descriptors, func(i, j int) bool { return descriptors[i].Path < descriptors[j].Path })
	s.logger.Info("scan finished", logging.String(logging.FieldPath, root), logging.Int("files", len(descriptors)))
	return descriptors, nil
}

func (s *Scanner) describe(path string, d fs.DirEntry) (organize.FileDescriptor, error) {
	info, err := d.Info()
	if err != nil {
		return organize.FileDescriptor{}, err
	}

	name := d.Name()
	ext := filepath.Ext(name)
	desc := organize.FileDescriptor{
		Path:      path,
		Name:      name,
		Stem:      strings.TrimSuffix(name, ext),
		Extension: ext,
		Size:      info.Size(),
		ModTime:   info.ModTime(),
		Category:  CategoryForExtension(ext),
	}

	if s.opts.DeepScan {
		content := s.analyzer.Analyze(path)
		if content.Detected {
			desc.Category = content.DetectedCategory
			desc.ExtensionMismatch = content.ExtensionMismatch
			desc.DetectedExtension = content.DetectedExtension
			desc.MIME = content.DetectedType
		}
		desc.SuggestedName = content.SuggestedName
		desc.Metadata = content.Metadata
	}
	return desc, nil
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
