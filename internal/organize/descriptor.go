package organize

import (
	"time"

	"curator/internal/category"
)

// FileDescriptor is the unit of planning: everything the planner needs to
// know about one file, gathered up front so planning itself never touches
// the filesystem.
type FileDescriptor struct {
	// Path is the file's current absolute path.
	Path string `json:"path"`
	// Name is the current basename, Stem and Extension its split form.
	Name      string            `json:"name"`
	Stem      string            `json:"stem"`
	Extension string            `json:"extension"`
	Size      int64             `json:"size"`
	ModTime   time.Time         `json:"mod_time"`
	Category  category.Category `json:"category"`
	// ExtensionMismatch is set when content sniffing disagreed with the
	// extension; DetectedExtension then holds the correct one and MIME the
	// detected media type.
	ExtensionMismatch bool   `json:"extension_mismatch,omitempty"`
	DetectedExtension string `json:"detected_extension,omitempty"`
	MIME              string `json:"mime,omitempty"`
	// SuggestedName is a metadata-derived name that takes priority over the
	// raw stem when present.
	SuggestedName string `json:"suggested_name,omitempty"`
	// Metadata holds the fields extracted from the file's bytes, for
	// consumers beyond naming (entity detection, indexing).
	Metadata map[string]string `json:"metadata,omitempty"`
	// Entity is an optional brand or organization supplied by an external
	// classifier, used for subfolder grouping.
	Entity string `json:"entity,omitempty"`
}
