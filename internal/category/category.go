package category

import (
	"encoding/json"
	"strings"
)

// Category is the closed set of top-level buckets files are organized into.
type Category int

const (
	Other Category = iota
	Documents
	Images
	Audio
	Video
	Archives
	Code
	Executables
	Fonts
	Models3D
	Databases
)

var names = map[Category]string{
	Other:       "Other",
	Documents:   "Documents",
	Images:      "Images",
	Audio:       "Audio",
	Video:       "Video",
	Archives:    "Archives",
	Code:        "Code",
	Executables: "Executables",
	Fonts:       "Fonts",
	Models3D:    "3D-Models",
	Databases:   "Databases",
}

// Folder names carry numeric prefixes so category directories sort in a
// stable, curated order on disk.
var folders = map[Category]string{
	Documents:   "01_Documents",
	Images:      "02_Images",
	Audio:       "03_Audio",
	Video:       "04_Video",
	Archives:    "05_Archives",
	Code:        "06_Code",
	Executables: "07_Executables",
	Fonts:       "08_Fonts",
	Models3D:    "09_3D-Models",
	Databases:   "10_Databases",
	Other:       "99_Other",
}

// String returns the human-readable category name.
func (c Category) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return "Other"
}

// Folder returns the on-disk directory name for the category.
func (c Category) Folder() string {
	if folder, ok := folders[c]; ok {
		return folder
	}
	return folders[Other]
}

// IsMedia reports whether the category uses date-first filename ordering.
func (c Category) IsMedia() bool {
	switch c {
	case Images, Audio, Video:
		return true
	default:
		return false
	}
}

// MarshalJSON emits the category name rather than its ordinal.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts either a name or a folder name.
func (c *Category) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*c = Parse(value)
	return nil
}

// All returns every category in folder order.
func All() []Category {
	return []Category{
		Documents, Images, Audio, Video, Archives,
		Code, Executables, Fonts, Models3D, Databases, Other,
	}
}

// Parse resolves a category from either its name or its folder name.
// Unrecognized values map to Other.
func Parse(value string) Category {
	trimmed := strings.TrimSpace(value)
	for cat, name := range names {
		if strings.EqualFold(trimmed, name) {
			return cat
		}
	}
	for cat, folder := range folders {
		if strings.EqualFold(trimmed, folder) {
			return cat
		}
	}
	return Other
}
