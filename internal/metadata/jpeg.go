package metadata

import (
	"encoding/binary"
	"io"
	"os"
	"strings"
)

// exifMaxEntries caps the IFD0 walk so a corrupt entry count cannot run away.
const exifMaxEntries = 50

// EXIF IFD0 tags extracted as ASCII fields.
const (
	exifTagDescription = 0x010e
	exifTagMake        = 0x010f
	exifTagModel       = 0x0110
	exifTagDateTime    = 0x0132
)

// ExtractJPEG walks JPEG markers looking for the APP1 segment and parses the
// embedded EXIF IFD0 for camera and capture fields. Only the marker stream
// and the APP1 payload are read.
func ExtractJPEG(path string) map[string]string {
	fields := map[string]string{}

	file, err := os.Open(path)
	if err != nil {
		return fields
	}
	defer file.Close()

	soi := make([]byte, 2)
	if _, err := io.ReadFull(file, soi); err != nil || soi[0] != 0xff || soi[1] != 0xd8 {
		return fields
	}

	marker := make([]byte, 2)
	size := make([]byte, 2)
	for {
		if _, err := io.ReadFull(file, marker); err != nil {
			return fields
		}
		if marker[0] != 0xff {
			return fields
		}

		switch marker[1] {
		case 0xe1: // APP1
			if _, err := io.ReadFull(file, size); err != nil {
				return fields
			}
			length := int(binary.BigEndian.Uint16(size))
			if length < 2 {
				return fields
			}
			payload := make([]byte, length-2)
			if _, err := io.ReadFull(file, payload); err != nil {
				return fields
			}
			if len(payload) >= 6 && string(payload[:6]) == "Exif\x00\x00" {
				parseEXIF(payload[6:], fields)
			}
			return fields
		case 0xd9, 0xda: // EOI / SOS
			return fields
		default:
			if _, err := io.ReadFull(file, size); err != nil {
				return fields
			}
			length := int(binary.BigEndian.Uint16(size))
			if length < 2 {
				return fields
			}
			if _, err := file.Seek(int64(length-2), 1); err != nil {
				return fields
			}
		}
	}
}

// parseEXIF reads a single TIFF IFD0 from raw EXIF data, extracting the
// ASCII (type 2) tags curator cares about.
func parseEXIF(data []byte, fields map[string]string) {
	if len(data) < 8 {
		return
	}

	var order binary.ByteOrder
	switch string(data[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return
	}

	ifdOffset := int(order.Uint32(data[4:8]))
	if ifdOffset < 0 || ifdOffset+2 > len(data) {
		return
	}

	entries := int(order.Uint16(data[ifdOffset : ifdOffset+2]))
	if entries > exifMaxEntries {
		entries = exifMaxEntries
	}

	for i := 0; i < entries; i++ {
		entry := ifdOffset + 2 + i*12
		if entry+12 > len(data) {
			return
		}

		tag := order.Uint16(data[entry : entry+2])
		dtype := order.Uint16(data[entry+2 : entry+4])
		count := int(order.Uint32(data[entry+4 : entry+8]))
		if dtype != 2 || count <= 0 {
			continue
		}

		var value []byte
		if count <= 4 {
			value = data[entry+8 : entry+8+count]
		} else {
			offset := int(order.Uint32(data[entry+8 : entry+12]))
			if offset < 0 || offset+count > len(data) {
				continue
			}
			value = data[offset : offset+count]
		}

		text := strings.TrimSpace(strings.Trim(string(value), "\x00"))
		if text == "" {
			continue
		}

		switch tag {
		case exifTagMake:
			fields[FieldCameraMake] = text
		case exifTagModel:
			fields[FieldCameraModel] = text
		case exifTagDateTime:
			fields[FieldDateTaken] = text
		case exifTagDescription:
			fields[FieldDescription] = text
		}
	}
}
