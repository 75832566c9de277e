// Package metadata extracts a small structured field set from binary file
// payloads: PDF /Info dictionaries, JPEG EXIF IFD0 tags, MP3 ID3v1/v2 tags,
// and OOXML/ODF document properties.
//
// Every extractor is bounded in the bytes it reads and total in its error
// behavior: structural anomalies degrade to an empty field map instead of
// propagating, because every file in a mixed archive must be processable.
package metadata
