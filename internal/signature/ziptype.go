package signature

import (
	"archive/zip"
	"io"
	"strings"

	"curator/internal/category"
)

// zipProbeLimit bounds how much of a content marker file is read when
// promoting a ZIP match.
const zipProbeLimit = 64 * 1024

// promoteZip inspects a ZIP archive's content markers and promotes the
// provisional ZIP signature to a document format when one is recognized.
// Any structural problem leaves the provisional match standing.
func promoteZip(path string) (Signature, bool) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return Signature{}, false
	}
	defer archive.Close()

	if body, ok := readArchiveFile(&archive.Reader, "[Content_Types].xml"); ok {
		switch {
		case strings.Contains(body, "wordprocessingml"):
			return docSignature("application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx", "Word document"), true
		case strings.Contains(body, "spreadsheetml"):
			return docSignature("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx", "Excel spreadsheet"), true
		case strings.Contains(body, "presentationml"):
			return docSignature("application/vnd.openxmlformats-officedocument.presentationml.presentation", ".pptx", "PowerPoint presentation"), true
		}
	}

	if body, ok := readArchiveFile(&archive.Reader, "mimetype"); ok {
		mimetype := strings.TrimSpace(body)
		switch {
		case strings.Contains(mimetype, "opendocument.text"):
			return docSignature(mimetype, ".odt", "OpenDocument text"), true
		case strings.Contains(mimetype, "opendocument.spreadsheet"):
			return docSignature(mimetype, ".ods", "OpenDocument spreadsheet"), true
		case strings.Contains(mimetype, "opendocument.presentation"):
			return docSignature(mimetype, ".odp", "OpenDocument presentation"), true
		}
	}

	return Signature{}, false
}

func docSignature(mime, ext, description string) Signature {
	return Signature{[]byte("PK"), 0, mime, category.Documents, ext, description}
}

func readArchiveFile(archive *zip.Reader, name string) (string, bool) {
	for _, entry := range archive.File {
		if entry.Name != name {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return "", false
		}
		data, err := io.ReadAll(io.LimitReader(rc, zipProbeLimit))
		rc.Close()
		if err != nil {
			return "", false
		}
		return string(data), true
	}
	return "", false
}
