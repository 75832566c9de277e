package metadata

import (
	"io"
	"os"
	"strings"
	"unicode/utf16"
)

// pdfReadLimit bounds the header window scanned for the /Info dictionary.
const pdfReadLimit = 64 * 1024

// pdfInfoKeys maps /Info dictionary keys to metadata fields, in scan order.
var pdfInfoKeys = []struct {
	key   string
	field string
}{
	{"/Title", FieldTitle},
	{"/Author", FieldAuthor},
	{"/Subject", FieldSubject},
	{"/Creator", FieldCreator},
	{"/Producer", FieldProducer},
	{"/CreationDate", FieldCreated},
}

// ExtractPDF scans the leading bytes of a PDF for /Info dictionary entries.
// Values are taken from the parenthesized literal following each key; a
// UTF-16BE byte-order mark is unescaped. Missing keys are simply omitted.
func ExtractPDF(path string) map[string]string {
	fields := map[string]string{}

	file, err := os.Open(path)
	if err != nil {
		return fields
	}
	content, err := io.ReadAll(io.LimitReader(file, pdfReadLimit))
	file.Close()
	if err != nil {
		return fields
	}

	text := string(content)
	for _, entry := range pdfInfoKeys {
		idx := strings.Index(text, entry.key)
		if idx == -1 {
			continue
		}
		rest := text[idx+len(entry.key):]
		start := strings.IndexByte(rest, '(')
		if start == -1 || start >= 50 {
			continue
		}
		end := strings.IndexByte(rest[start:], ')')
		if end == -1 {
			continue
		}
		value := strings.TrimSpace(rest[start+1 : start+end])
		value = decodePDFText(value)
		if value == "" || strings.EqualFold(value, "untitled") {
			continue
		}
		fields[entry.field] = value
	}
	return fields
}

// decodePDFText unescapes a UTF-16BE string literal marked with a leading
// byte-order mark; anything else is returned as-is.
func decodePDFText(value string) string {
	if !strings.HasPrefix(value, "\xfe\xff") {
		return value
	}
	raw := []byte(value[2:])
	if len(raw)%2 != 0 {
		raw = raw[:len(raw)-1]
	}
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		units = append(units, uint16(raw[i])<<8|uint16(raw[i+1]))
	}
	return strings.TrimSpace(string(utf16.Decode(units)))
}
