package metadata

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestExtractPDFInfoFields(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\n<< /Title (Annual Report) /Author (Jane Doe) /Producer (TestWriter 1.0) /CreationDate (D:20240115093000) >>\nendobj\n")
	path := writeFixture(t, "report.pdf", pdf)

	fields := ExtractPDF(path)
	want := map[string]string{
		FieldTitle:    "Annual Report",
		FieldAuthor:   "Jane Doe",
		FieldProducer: "TestWriter 1.0",
		FieldCreated:  "D:20240115093000",
	}
	for key, value := range want {
		if fields[key] != value {
			t.Errorf("fields[%q] = %q, want %q", key, fields[key], value)
		}
	}
	if _, ok := fields[FieldSubject]; ok {
		t.Error("absent /Subject key should be omitted, not defaulted")
	}
}

func TestExtractPDFUTF16Title(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n/Title (")
	buf.Write([]byte{0xfe, 0xff, 0x00, 'H', 0x00, 'i'})
	buf.WriteString(")\n")
	path := writeFixture(t, "utf16.pdf", buf.Bytes())

	fields := ExtractPDF(path)
	if fields[FieldTitle] != "Hi" {
		t.Errorf("title = %q, want %q", fields[FieldTitle], "Hi")
	}
}

func TestExtractPDFIgnoresUntitled(t *testing.T) {
	path := writeFixture(t, "untitled.pdf", []byte("%PDF-1.4\n/Title (Untitled)\n"))
	if fields := ExtractPDF(path); len(fields) != 0 {
		t.Errorf("expected empty fields, got %v", fields)
	}
}

func TestExtractPDFMissingFile(t *testing.T) {
	if fields := ExtractPDF(filepath.Join(t.TempDir(), "gone.pdf")); len(fields) != 0 {
		t.Errorf("missing file should yield empty fields, got %v", fields)
	}
}

// buildJPEGWithEXIF assembles a minimal JPEG whose APP1 segment carries a
// little-endian TIFF IFD0 with the given ASCII tags.
func buildJPEGWithEXIF(t *testing.T, tags map[uint16]string) []byte {
	t.Helper()

	// TIFF block, little-endian, IFD0 at offset 8.
	var tiff bytes.Buffer
	tiff.WriteString("II")
	binary.Write(&tiff, binary.LittleEndian, uint16(0x2a))
	binary.Write(&tiff, binary.LittleEndian, uint32(8))

	order := make([]uint16, 0, len(tags))
	for tag := range tags {
		order = append(order, tag)
	}
	for i := range order {
		for j := i + 1; j < len(order); j++ {
			if order[j] < order[i] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	binary.Write(&tiff, binary.LittleEndian, uint16(len(order)))
	valueOffset := 8 + 2 + len(order)*12 + 4
	var values bytes.Buffer
	for _, tag := range order {
		value := tags[tag] + "\x00"
		binary.Write(&tiff, binary.LittleEndian, tag)
		binary.Write(&tiff, binary.LittleEndian, uint16(2)) // ASCII
		binary.Write(&tiff, binary.LittleEndian, uint32(len(value)))
		if len(value) <= 4 {
			padded := make([]byte, 4)
			copy(padded, value)
			tiff.Write(padded)
		} else {
			binary.Write(&tiff, binary.LittleEndian, uint32(valueOffset+values.Len()))
			values.WriteString(value)
		}
	}
	binary.Write(&tiff, binary.LittleEndian, uint32(0)) // next IFD
	tiff.Write(values.Bytes())

	exif := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var jpeg bytes.Buffer
	jpeg.Write([]byte{0xff, 0xd8, 0xff, 0xe1})
	binary.Write(&jpeg, binary.BigEndian, uint16(len(exif)+2))
	jpeg.Write(exif)
	jpeg.Write([]byte{0xff, 0xd9})
	return jpeg.Bytes()
}

func TestExtractJPEGExifFields(t *testing.T) {
	data := buildJPEGWithEXIF(t, map[uint16]string{
		exifTagMake:     "Canon",
		exifTagModel:    "EOS R5",
		exifTagDateTime: "2024:01:15 14:30:00",
	})
	path := writeFixture(t, "photo.jpg", data)

	fields := ExtractJPEG(path)
	if fields[FieldCameraMake] != "Canon" {
		t.Errorf("camera_make = %q, want Canon", fields[FieldCameraMake])
	}
	if fields[FieldCameraModel] != "EOS R5" {
		t.Errorf("camera_model = %q, want EOS R5", fields[FieldCameraModel])
	}
	if fields[FieldDateTaken] != "2024:01:15 14:30:00" {
		t.Errorf("date_taken = %q", fields[FieldDateTaken])
	}
}

func TestExtractJPEGSkipsLeadingMarkers(t *testing.T) {
	exifData := buildJPEGWithEXIF(t, map[uint16]string{exifTagModel: "PixelCam"})
	// Insert an APP0 segment between SOI and APP1.
	app0 := []byte{0xff, 0xe0, 0x00, 0x06, 'J', 'F', 'I', 'F'}
	data := append([]byte{0xff, 0xd8}, app0...)
	data = append(data, exifData[2:]...)
	path := writeFixture(t, "jfif.jpg", data)

	fields := ExtractJPEG(path)
	if fields[FieldCameraModel] != "PixelCam" {
		t.Errorf("camera_model = %q, want PixelCam", fields[FieldCameraModel])
	}
}

func TestExtractJPEGNotAJPEG(t *testing.T) {
	path := writeFixture(t, "fake.jpg", []byte("plain text"))
	if fields := ExtractJPEG(path); len(fields) != 0 {
		t.Errorf("non-JPEG should yield empty fields, got %v", fields)
	}
}

func TestExtractJPEGTruncatedMarker(t *testing.T) {
	path := writeFixture(t, "trunc.jpg", []byte{0xff, 0xd8, 0xff, 0xe1, 0x10})
	if fields := ExtractJPEG(path); len(fields) != 0 {
		t.Errorf("truncated JPEG should yield empty fields, got %v", fields)
	}
}

func buildID3v23(t *testing.T, frames map[string]string) []byte {
	t.Helper()
	var body bytes.Buffer
	for id, text := range frames {
		payload := append([]byte{0}, []byte(text)...) // Latin-1 encoding byte
		body.WriteString(id)
		binary.Write(&body, binary.BigEndian, uint32(len(payload)))
		body.Write([]byte{0, 0}) // flags
		body.Write(payload)
	}

	size := body.Len()
	header := []byte{
		'I', 'D', '3', 3, 0, 0,
		byte(size >> 21 & 0x7f), byte(size >> 14 & 0x7f), byte(size >> 7 & 0x7f), byte(size & 0x7f),
	}
	return append(header, body.Bytes()...)
}

func TestExtractID3v23Frames(t *testing.T) {
	data := buildID3v23(t, map[string]string{
		"TIT2": "Karma Police",
		"TPE1": "Radiohead",
		"TALB": "OK Computer",
		"TRCK": "6/12",
	})
	path := writeFixture(t, "song.mp3", data)

	fields := ExtractID3(path)
	want := map[string]string{
		FieldTitle:  "Karma Police",
		FieldArtist: "Radiohead",
		FieldAlbum:  "OK Computer",
		FieldTrack:  "6/12",
	}
	for key, value := range want {
		if fields[key] != value {
			t.Errorf("fields[%q] = %q, want %q", key, fields[key], value)
		}
	}
}

func TestExtractID3v23UTF16Frame(t *testing.T) {
	payload := []byte{1, 0xff, 0xfe} // UTF-16 encoding, little-endian BOM
	for _, r := range "Sigur Ros" {
		payload = append(payload, byte(r), 0)
	}
	var body bytes.Buffer
	body.WriteString("TPE1")
	binary.Write(&body, binary.BigEndian, uint32(len(payload)))
	body.Write([]byte{0, 0})
	body.Write(payload)

	size := body.Len()
	header := []byte{
		'I', 'D', '3', 3, 0, 0,
		byte(size >> 21 & 0x7f), byte(size >> 14 & 0x7f), byte(size >> 7 & 0x7f), byte(size & 0x7f),
	}
	path := writeFixture(t, "utf16.mp3", append(header, body.Bytes()...))

	fields := ExtractID3(path)
	if fields[FieldArtist] != "Sigur Ros" {
		t.Errorf("artist = %q, want Sigur Ros", fields[FieldArtist])
	}
}

func TestExtractID3v22ShortFrames(t *testing.T) {
	var body bytes.Buffer
	payload := append([]byte{0}, []byte("Blue Monday")...)
	body.WriteString("TT2")
	body.Write([]byte{byte(len(payload) >> 16), byte(len(payload) >> 8), byte(len(payload))})
	body.Write(payload)

	size := body.Len()
	header := []byte{
		'I', 'D', '3', 2, 0, 0,
		byte(size >> 21 & 0x7f), byte(size >> 14 & 0x7f), byte(size >> 7 & 0x7f), byte(size & 0x7f),
	}
	path := writeFixture(t, "v22.mp3", append(header, body.Bytes()...))

	fields := ExtractID3(path)
	if fields[FieldTitle] != "Blue Monday" {
		t.Errorf("title = %q, want Blue Monday", fields[FieldTitle])
	}
}

func TestExtractID3v1Fallback(t *testing.T) {
	audio := bytes.Repeat([]byte{0xff, 0xfb, 0x90, 0x00}, 64)
	tag := make([]byte, 128)
	copy(tag, "TAG")
	copy(tag[3:], "So What")
	copy(tag[33:], "Miles Davis")
	copy(tag[63:], "Kind of Blue")
	copy(tag[93:], "1959")
	path := writeFixture(t, "v1.mp3", append(audio, tag...))

	fields := ExtractID3(path)
	if fields[FieldTitle] != "So What" || fields[FieldArtist] != "Miles Davis" || fields[FieldYear] != "1959" {
		t.Errorf("unexpected ID3v1 fields: %v", fields)
	}
}

func TestExtractID3NoTags(t *testing.T) {
	path := writeFixture(t, "bare.mp3", bytes.Repeat([]byte{0xff, 0xfb, 0x90, 0x00}, 64))
	if fields := ExtractID3(path); len(fields) != 0 {
		t.Errorf("untagged MP3 should yield empty fields, got %v", fields)
	}
}

func writeOfficeFixture(t *testing.T, core, app string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{}
	if core != "" {
		entries["docProps/core.xml"] = core
	}
	if app != "" {
		entries["docProps/app.xml"] = app
	}
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return writeFixture(t, "doc.docx", buf.Bytes())
}

const coreXML = `<?xml version="1.0"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/">
  <dc:title>Quarterly Budget</dc:title>
  <dc:creator>Finance Team</dc:creator>
  <dcterms:created>2024-02-01T10:00:00Z</dcterms:created>
</cp:coreProperties>`

const appXML = `<?xml version="1.0"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">
  <Application>Microsoft Word</Application>
  <Pages>14</Pages>
</Properties>`

func TestExtractOfficeCoreAndApp(t *testing.T) {
	path := writeOfficeFixture(t, coreXML, appXML)

	fields := ExtractOffice(path)
	want := map[string]string{
		FieldTitle:       "Quarterly Budget",
		FieldAuthor:      "Finance Team",
		FieldCreated:     "2024-02-01T10:00:00Z",
		FieldApplication: "Microsoft Word",
		FieldPages:       "14",
	}
	for key, value := range want {
		if fields[key] != value {
			t.Errorf("fields[%q] = %q, want %q", key, fields[key], value)
		}
	}
}

func TestExtractOfficeNotAZip(t *testing.T) {
	path := writeFixture(t, "broken.docx", []byte("not a zip"))
	if fields := ExtractOffice(path); len(fields) != 0 {
		t.Errorf("broken archive should yield empty fields, got %v", fields)
	}
}

func TestExtractDispatch(t *testing.T) {
	pdfPath := writeFixture(t, "a.pdf", []byte("%PDF-1.4\n/Title (Dispatch Check)\n"))

	tests := []struct {
		name string
		path string
		mime string
		ext  string
		key  string
		want string
	}{
		{"pdf", pdfPath, "application/pdf", ".pdf", FieldTitle, "Dispatch Check"},
		{"unknown", pdfPath, "application/x-unknown", ".bin", FieldTitle, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Extract(tt.path, tt.mime, tt.ext)
			if fields[tt.key] != tt.want {
				t.Errorf("Extract()[%q] = %q, want %q", tt.key, fields[tt.key], tt.want)
			}
		})
	}
}
