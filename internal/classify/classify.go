package classify

import (
	"log/slog"
	"path/filepath"
	"strings"

	"curator/internal/category"
	"curator/internal/logging"
	"curator/internal/metadata"
	"curator/internal/signature"
)

// ContentInfo is the result of content-based file analysis. It is a derived
// value: computed per file during classification and discarded after
// planning.
type ContentInfo struct {
	DetectedType      string
	DetectedCategory  category.Category
	DetectedExtension string
	Description       string
	Detected          bool
	ExtensionMismatch bool
	Metadata          map[string]string
	SuggestedName     string
}

// extensionEquivalents lists extensions treated as interchangeable so benign
// spelling variants are not flagged as mismatches.
var extensionEquivalents = map[string][]string{
	".jpg":  {".jpeg"},
	".jpeg": {".jpg"},
	".tif":  {".tiff"},
	".tiff": {".tif"},
	".htm":  {".html"},
	".html": {".htm"},
	".mpg":  {".mpeg"},
	".mpeg": {".mpg"},
}

// Analyzer performs full content analysis: signature detection, mismatch
// checking, metadata extraction, and name suggestion.
type Analyzer struct {
	matcher *signature.Matcher
	logger  *slog.Logger
}

// NewAnalyzer constructs an analyzer over the default signature table.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	return &Analyzer{
		matcher: signature.NewMatcher(),
		logger:  logging.NewComponentLogger(logger, "classify"),
	}
}

// Analyze classifies the file at path from its own bytes. It never fails:
// unreadable or unrecognized files produce a ContentInfo with Detected false
// and empty metadata.
func (a *Analyzer) Analyze(path string) ContentInfo {
	info := ContentInfo{Metadata: map[string]string{}}
	currentExt := strings.ToLower(filepath.Ext(path))

	sig, ok := a.matcher.DetectFile(path)
	if ok {
		info.Detected = true
		info.DetectedType = sig.MIME
		info.DetectedCategory = sig.Category
		info.DetectedExtension = sig.Extension
		info.Description = sig.Description
		info.ExtensionMismatch = isMismatch(currentExt, sig.Extension)
		info.Metadata = metadata.Extract(path, sig.MIME, sig.Extension)
	} else if isOfficeExtension(currentExt) {
		// Extension claims an Office document but the magic bytes only said
		// ZIP or nothing; the docProps may still be readable.
		info.Metadata = metadata.ExtractOffice(path)
	}

	info.SuggestedName = suggestName(info, path)
	if info.ExtensionMismatch {
		a.logger.Debug(
			"extension mismatch",
			logging.String(logging.FieldPath, path),
			logging.String("claimed", currentExt),
			logging.String("actual", sig.Extension),
		)
	}
	return info
}

func isMismatch(currentExt, detectedExt string) bool {
	if currentExt == "" || currentExt == detectedExt {
		return false
	}
	for _, equivalent := range extensionEquivalents[detectedExt] {
		if currentExt == equivalent {
			return false
		}
	}
	return true
}

func isOfficeExtension(ext string) bool {
	switch ext {
	case ".docx", ".xlsx", ".pptx", ".odt", ".ods", ".odp":
		return true
	}
	return false
}

// suggestName derives a filename stem (no extension) from extracted
// metadata. An empty string means nothing useful was found.
func suggestName(info ContentInfo, path string) string {
	meta := info.Metadata
	if len(meta) == 0 {
		return ""
	}

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	ext := strings.ToLower(filepath.Ext(path))

	var parts []string
	switch {
	case info.DetectedCategory == category.Audio || isAudioExtension(ext):
		artist := meta[metadata.FieldArtist]
		title := meta[metadata.FieldTitle]
		track := meta[metadata.FieldTrack]
		switch {
		case artist != "" && title != "":
			if track != "" {
				parts = []string{artist, trackNumber(track) + " " + title}
			} else {
				parts = []string{artist, title}
			}
		case title != "":
			parts = []string{title}
		}
	case info.DetectedCategory == category.Images || isImageExtension(ext):
		date := meta[metadata.FieldDateTaken]
		desc := meta[metadata.FieldDescription]
		switch {
		case date != "":
			// EXIF datetimes read "2024:01:15 14:30:00"; keep the date part.
			day := strings.ReplaceAll(truncate(date, 10), ":", "-")
			switch {
			case desc != "":
				parts = []string{day, desc}
			case meta[metadata.FieldCameraModel] != "":
				parts = []string{day, meta[metadata.FieldCameraModel]}
			default:
				parts = []string{day, stem}
			}
		case desc != "":
			parts = []string{desc}
		}
	case info.DetectedCategory == category.Documents || isDocumentExtension(ext):
		if title := meta[metadata.FieldTitle]; len(title) > 3 {
			parts = []string{title}
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " - ")
}

func trackNumber(track string) string {
	number := track
	if idx := strings.IndexByte(track, '/'); idx != -1 {
		number = track[:idx]
	}
	if len(number) == 1 {
		number = "0" + number
	}
	return number
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit]
}

func isAudioExtension(ext string) bool {
	switch ext {
	case ".mp3", ".flac", ".m4a", ".ogg", ".wav":
		return true
	}
	return false
}

func isImageExtension(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".tiff", ".tif":
		return true
	}
	return false
}

func isDocumentExtension(ext string) bool {
	switch ext {
	case ".pdf", ".docx", ".xlsx", ".pptx":
		return true
	}
	return false
}
