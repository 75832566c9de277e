package signature

import "curator/internal/category"

// Signature describes a known file type: the magic bytes that identify it,
// where they appear, and what the match means.
type Signature struct {
	Magic       []byte
	Offset      int
	MIME        string
	Category    category.Category
	Extension   string
	Description string
}

// defaultTable is ordered by specificity: a more specific signature must
// precede a more general one that shares a prefix (the four-byte JPEG
// variants before the bare FF D8 FF, for example). Detection takes the
// first byte-exact match.
var defaultTable = []Signature{
	// Images
	{[]byte("\x89PNG\r\n\x1a\n"), 0, "image/png", category.Images, ".png", "PNG image"},
	{[]byte{0xff, 0xd8, 0xff, 0xe0}, 0, "image/jpeg", category.Images, ".jpg", "JPEG image (JFIF)"},
	{[]byte{0xff, 0xd8, 0xff, 0xe1}, 0, "image/jpeg", category.Images, ".jpg", "JPEG image (EXIF)"},
	{[]byte{0xff, 0xd8, 0xff, 0xdb}, 0, "image/jpeg", category.Images, ".jpg", "JPEG image"},
	{[]byte{0xff, 0xd8, 0xff, 0xee}, 0, "image/jpeg", category.Images, ".jpg", "JPEG image (Adobe)"},
	{[]byte{0xff, 0xd8, 0xff}, 0, "image/jpeg", category.Images, ".jpg", "JPEG image"},
	{[]byte("GIF89a"), 0, "image/gif", category.Images, ".gif", "GIF image (89a)"},
	{[]byte("GIF87a"), 0, "image/gif", category.Images, ".gif", "GIF image (87a)"},
	{[]byte("RIFF"), 0, "image/webp", category.Images, ".webp", "WebP image"}, // WAV/AVI share the container; refined on match
	{[]byte("BM"), 0, "image/bmp", category.Images, ".bmp", "BMP image"},
	{[]byte{0x00, 0x00, 0x01, 0x00}, 0, "image/x-icon", category.Images, ".ico", "ICO icon"},
	{[]byte("II\x2a\x00"), 0, "image/tiff", category.Images, ".tiff", "TIFF image (little-endian)"},
	{[]byte("MM\x00\x2a"), 0, "image/tiff", category.Images, ".tiff", "TIFF image (big-endian)"},

	// Documents
	{[]byte("%PDF"), 0, "application/pdf", category.Documents, ".pdf", "PDF document"},
	{[]byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}, 0, "application/msoffice", category.Documents, ".doc", "Microsoft Office (legacy)"},

	// Audio
	{[]byte("ID3"), 0, "audio/mpeg", category.Audio, ".mp3", "MP3 audio (ID3)"},
	{[]byte{0xff, 0xfb}, 0, "audio/mpeg", category.Audio, ".mp3", "MP3 audio"},
	{[]byte{0xff, 0xf3}, 0, "audio/mpeg", category.Audio, ".mp3", "MP3 audio"},
	{[]byte{0xff, 0xf2}, 0, "audio/mpeg", category.Audio, ".mp3", "MP3 audio"},
	{[]byte("fLaC"), 0, "audio/flac", category.Audio, ".flac", "FLAC audio"},
	{[]byte("OggS"), 0, "audio/ogg", category.Audio, ".ogg", "OGG audio"},

	// Video
	{[]byte{0x1a, 0x45, 0xdf, 0xa3}, 0, "video/webm", category.Video, ".webm", "WebM/MKV video"},
	{[]byte("\x00\x00\x00\x1cftyp"), 0, "video/mp4", category.Video, ".mp4", "MP4 video"},
	{[]byte("\x00\x00\x00\x20ftyp"), 0, "video/mp4", category.Video, ".mp4", "MP4 video"},
	{[]byte("\x00\x00\x00\x18ftyp"), 0, "video/mp4", category.Video, ".mp4", "MP4 video"},

	// Archives
	{[]byte("PK\x03\x04"), 0, "application/zip", category.Archives, ".zip", "ZIP archive"},
	{[]byte("Rar!\x1a\x07"), 0, "application/x-rar", category.Archives, ".rar", "RAR archive"},
	{[]byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}, 0, "application/x-7z", category.Archives, ".7z", "7-Zip archive"},
	{[]byte{0x1f, 0x8b}, 0, "application/gzip", category.Archives, ".gz", "Gzip archive"},
	{[]byte{0x42, 0x5a, 0x68}, 0, "application/x-bzip2", category.Archives, ".bz2", "Bzip2 archive"},
	{[]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, 0, "application/x-xz", category.Archives, ".xz", "XZ archive"},

	// Executables
	{[]byte("MZ"), 0, "application/x-executable", category.Executables, ".exe", "Windows executable"},

	// Databases
	{[]byte("SQLite format 3\x00"), 0, "application/x-sqlite3", category.Databases, ".sqlite", "SQLite database"},

	// Fonts
	{[]byte{0x00, 0x01, 0x00, 0x00}, 0, "font/ttf", category.Fonts, ".ttf", "TrueType font"},
	{[]byte("OTTO"), 0, "font/otf", category.Fonts, ".otf", "OpenType font"},
	{[]byte("wOFF"), 0, "font/woff", category.Fonts, ".woff", "WOFF font"},
	{[]byte("wOF2"), 0, "font/woff2", category.Fonts, ".woff2", "WOFF2 font"},
}

// DefaultTable returns a copy of the built-in ordered signature table.
func DefaultTable() []Signature {
	table := make([]Signature, len(defaultTable))
	copy(table, defaultTable)
	return table
}

// Matcher matches file headers against an ordered signature table.
type Matcher struct {
	table []Signature
}

// NewMatcher constructs a matcher over the default signature table.
func NewMatcher() *Matcher {
	return NewMatcherWithTable(defaultTable)
}

// NewMatcherWithTable constructs a matcher over a caller-supplied ordered
// table. The table is copied; order encodes precedence.
func NewMatcherWithTable(table []Signature) *Matcher {
	cp := make([]Signature, len(table))
	copy(cp, table)
	return &Matcher{table: cp}
}
