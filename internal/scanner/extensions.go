package scanner

import (
	"strings"

	"curator/internal/category"
)

var extensionCategories = map[string]category.Category{
	// Documents
	".pdf": category.Documents, ".doc": category.Documents, ".docx": category.Documents,
	".odt": category.Documents, ".rtf": category.Documents, ".txt": category.Documents,
	".md": category.Documents, ".xls": category.Documents, ".xlsx": category.Documents,
	".ods": category.Documents, ".csv": category.Documents, ".ppt": category.Documents,
	".pptx": category.Documents, ".odp": category.Documents, ".epub": category.Documents,

	// Images
	".jpg": category.Images, ".jpeg": category.Images, ".png": category.Images,
	".gif": category.Images, ".bmp": category.Images, ".tif": category.Images,
	".tiff": category.Images, ".webp": category.Images, ".heic": category.Images,
	".svg": category.Images, ".raw": category.Images, ".cr2": category.Images,
	".nef": category.Images, ".ico": category.Images,

	// Audio
	".mp3": category.Audio, ".wav": category.Audio, ".flac": category.Audio,
	".m4a": category.Audio, ".ogg": category.Audio, ".aac": category.Audio,
	".wma": category.Audio, ".opus": category.Audio,

	// Video
	".mp4": category.Video, ".mkv": category.Video, ".avi": category.Video,
	".mov": category.Video, ".webm": category.Video, ".wmv": category.Video,
	".m4v": category.Video, ".mpg": category.Video, ".mpeg": category.Video,

	// Archives
	".zip": category.Archives, ".tar": category.Archives, ".gz": category.Archives,
	".bz2": category.Archives, ".xz": category.Archives, ".7z": category.Archives,
	".rar": category.Archives, ".zst": category.Archives,

	// Code
	".go": category.Code, ".py": category.Code, ".js": category.Code,
	".ts": category.Code, ".c": category.Code, ".h": category.Code,
	".cpp": category.Code, ".rs": category.Code, ".java": category.Code,
	".rb": category.Code, ".sh": category.Code, ".sql": category.Code,
	".html": category.Code, ".css": category.Code, ".json": category.Code,
	".yaml": category.Code, ".yml": category.Code, ".toml": category.Code,
	".xml": category.Code,

	// Executables
	".exe": category.Executables, ".msi": category.Executables, ".dmg": category.Executables,
	".deb": category.Executables, ".rpm": category.Executables, ".appimage": category.Executables,

	// Fonts
	".ttf": category.Fonts, ".otf": category.Fonts, ".woff": category.Fonts,
	".woff2": category.Fonts,

	// 3D models
	".stl": category.Models3D, ".obj": category.Models3D, ".3mf": category.Models3D,
	".step": category.Models3D, ".gcode": category.Models3D, ".blend": category.Models3D,

	// Databases
	".db": category.Databases, ".sqlite": category.Databases, ".sqlite3": category.Databases,
	".mdb": category.Databases,
}

// CategoryForExtension maps a filename extension to its category; unknown
// extensions land in Other.
func CategoryForExtension(ext string) category.Category {
	if cat, ok := extensionCategories[strings.ToLower(ext)]; ok {
		return cat
	}
	return category.Other
}
