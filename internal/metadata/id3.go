package metadata

import (
	"encoding/binary"
	"io"
	"os"
	"strings"
	"unicode/utf16"
)

// id3ReadLimit caps how much of an ID3v2 tag block is walked.
const id3ReadLimit = 64 * 1024

// id3FrameFields maps ID3v2 frame IDs (v2.3+ four-byte and v2.2 three-byte)
// to metadata fields.
var id3FrameFields = map[string]string{
	"TIT2": FieldTitle, "TT2": FieldTitle,
	"TPE1": FieldArtist, "TP1": FieldArtist,
	"TALB": FieldAlbum, "TAL": FieldAlbum,
	"TYER": FieldYear, "TYE": FieldYear,
	"TDRC": FieldYear,
	"TRCK": FieldTrack, "TRK": FieldTrack,
	"TCON": FieldGenre, "TCO": FieldGenre,
}

// ExtractID3 reads ID3v2 text frames from an MP3. When no ID3v2 header is
// present it falls back to the fixed ID3v1 trailer at end-of-file.
func ExtractID3(path string) map[string]string {
	fields := map[string]string{}

	file, err := os.Open(path)
	if err != nil {
		return fields
	}
	defer file.Close()

	header := make([]byte, 10)
	if _, err := io.ReadFull(file, header); err != nil {
		return fields
	}
	if string(header[:3]) != "ID3" {
		return extractID3v1(file)
	}

	majorVersion := header[3]
	tagSize := syncsafe(header[6:10])
	if tagSize > id3ReadLimit {
		tagSize = id3ReadLimit
	}
	tag := make([]byte, tagSize)
	n, err := io.ReadFull(file, tag)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fields
	}
	tag = tag[:n]

	pos := 0
	for pos < len(tag)-10 {
		var frameID string
		var frameSize int
		if majorVersion >= 3 {
			frameID = strings.TrimRight(string(tag[pos:pos+4]), "\x00")
			frameSize = int(binary.BigEndian.Uint32(tag[pos+4 : pos+8]))
			pos += 10
		} else {
			frameID = strings.TrimRight(string(tag[pos:pos+3]), "\x00")
			frameSize = int(tag[pos+3])<<16 | int(tag[pos+4])<<8 | int(tag[pos+5])
			pos += 6
		}

		if frameSize <= 0 || frameSize > len(tag)-pos {
			break
		}
		if frameID == "" || !isASCIILetter(frameID[0]) {
			break
		}

		frame := tag[pos : pos+frameSize]
		pos += frameSize

		field, known := id3FrameFields[frameID]
		if !known {
			continue
		}
		if text := decodeID3Text(frame); text != "" {
			fields[field] = text
		}
	}
	return fields
}

// extractID3v1 reads the fixed 128-byte trailer tag.
func extractID3v1(file *os.File) map[string]string {
	fields := map[string]string{}

	if _, err := file.Seek(-128, io.SeekEnd); err != nil {
		return fields
	}
	tag := make([]byte, 128)
	if _, err := io.ReadFull(file, tag); err != nil {
		return fields
	}
	if string(tag[:3]) != "TAG" {
		return fields
	}

	set := func(field string, raw []byte) {
		value := strings.TrimSpace(strings.Trim(string(raw), "\x00"))
		if value != "" {
			fields[field] = value
		}
	}
	set(FieldTitle, tag[3:33])
	set(FieldArtist, tag[33:63])
	set(FieldAlbum, tag[63:93])
	set(FieldYear, tag[93:97])
	return fields
}

// syncsafe decodes the 4-byte ID3v2 size integer, which uses only 7 bits
// per byte.
func syncsafe(raw []byte) int {
	return int(raw[0]&0x7f)<<21 | int(raw[1]&0x7f)<<14 | int(raw[2]&0x7f)<<7 | int(raw[3]&0x7f)
}

// decodeID3Text decodes a text frame according to its leading encoding byte.
func decodeID3Text(frame []byte) string {
	if len(frame) < 2 {
		return ""
	}
	data := frame[1:]
	switch frame[0] {
	case 0: // ISO-8859-1
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}
		return trimText(string(runes))
	case 1: // UTF-16 with BOM
		return trimText(decodeUTF16(data, true))
	case 2: // UTF-16BE without BOM
		return trimText(decodeUTF16(data, false))
	case 3: // UTF-8
		return trimText(string(data))
	}
	return ""
}

func trimText(value string) string {
	return strings.TrimSpace(strings.Trim(value, "\x00"))
}

func decodeUTF16(data []byte, withBOM bool) string {
	order := binary.ByteOrder(binary.BigEndian)
	if withBOM {
		if len(data) < 2 {
			return ""
		}
		switch {
		case data[0] == 0xff && data[1] == 0xfe:
			order = binary.LittleEndian
			data = data[2:]
		case data[0] == 0xfe && data[1] == 0xff:
			data = data[2:]
		}
	}
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		units = append(units, order.Uint16(data[i:i+2]))
	}
	return string(utf16.Decode(units))
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
