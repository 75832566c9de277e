package signature

import (
	"bytes"
	"io"
	"os"

	"curator/internal/category"
)

// headerSize is enough bytes for every signature in the table, including the
// variable-offset ftyp scan.
const headerSize = 64

// Detect matches a file header against the table and returns the winning
// signature. The boolean is false when the header is shorter than two bytes
// or nothing matches. Detection never fails for I/O reasons; reading the
// header is the caller's concern.
func (m *Matcher) Detect(header []byte) (Signature, bool) {
	if len(header) < 2 {
		return Signature{}, false
	}

	for _, sig := range m.table {
		end := sig.Offset + len(sig.Magic)
		if len(header) < end || !bytes.Equal(header[sig.Offset:end], sig.Magic) {
			continue
		}

		if bytes.Equal(sig.Magic, []byte("RIFF")) {
			return refineRIFF(header)
		}
		if bytes.Contains(sig.Magic, []byte("ftyp")) {
			if refined, ok := refineFtypBrand(header, 8); ok {
				return refined, true
			}
		}
		return sig, true
	}

	// MP4 box sizes vary, so ftyp may sit at any small offset; the fixed
	// table entries only cover the common ones.
	return scanFtyp(header)
}

// DetectFile reads a bounded header from path and runs Detect, then promotes
// generic ZIP matches to document formats when the archive's content markers
// say so. Unreadable files yield no match rather than an error.
func (m *Matcher) DetectFile(path string) (Signature, bool) {
	file, err := os.Open(path)
	if err != nil {
		return Signature{}, false
	}
	header := make([]byte, headerSize)
	n, err := io.ReadFull(file, header)
	file.Close()
	if err != nil && err != io.ErrUnexpectedEOF {
		return Signature{}, false
	}

	sig, ok := m.Detect(header[:n])
	if !ok {
		return Signature{}, false
	}
	if sig.MIME == "application/zip" {
		if promoted, ok := promoteZip(path); ok {
			return promoted, true
		}
	}
	return sig, true
}

// refineRIFF distinguishes the formats sharing the RIFF container. An
// unrecognized subtype yields no match instead of a guess.
func refineRIFF(header []byte) (Signature, bool) {
	if len(header) < 12 {
		return Signature{}, false
	}
	switch string(header[8:12]) {
	case "WAVE":
		return Signature{[]byte("RIFF"), 0, "audio/wav", category.Audio, ".wav", "WAV audio"}, true
	case "AVI ":
		return Signature{[]byte("RIFF"), 0, "video/avi", category.Video, ".avi", "AVI video"}, true
	case "WEBP":
		return Signature{[]byte("RIFF"), 0, "image/webp", category.Images, ".webp", "WebP image"}, true
	}
	return Signature{}, false
}

// refineFtypBrand inspects the four-byte brand following an ftyp tag. The
// boolean is false when the brand is a generic MP4 one, in which case the
// table entry stands.
func refineFtypBrand(header []byte, brandOffset int) (Signature, bool) {
	if len(header) < brandOffset+4 {
		return Signature{}, false
	}
	brand := string(header[brandOffset : brandOffset+4])
	switch brand {
	case "M4A ", "M4A\x00":
		return Signature{[]byte("ftyp"), brandOffset - 4, "audio/mp4", category.Audio, ".m4a", "M4A audio"}, true
	case "qt  ":
		return Signature{[]byte("ftyp"), brandOffset - 4, "video/quicktime", category.Video, ".mov", "QuickTime video"}, true
	}
	return Signature{}, false
}

// scanFtyp looks for the ftyp tag at offsets 4 through 32, covering ISO base
// media files whose leading box size is not in the fixed table.
func scanFtyp(header []byte) (Signature, bool) {
	limit := len(header) - 4
	if limit > 32 {
		limit = 32
	}
	for offset := 4; offset <= limit; offset++ {
		if !bytes.Equal(header[offset:offset+4], []byte("ftyp")) {
			continue
		}
		if refined, ok := refineFtypBrand(header, offset+4); ok {
			return refined, true
		}
		return Signature{[]byte("ftyp"), offset, "video/mp4", category.Video, ".mp4", "MP4 video"}, true
	}
	return Signature{}, false
}
