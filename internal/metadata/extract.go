package metadata

import "strings"

// Field keys produced by the extractors. Values are always plain strings so
// downstream naming and indexing code can treat metadata uniformly.
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldSubject     = "subject"
	FieldCreator     = "creator"
	FieldProducer    = "producer"
	FieldCreated     = "created"
	FieldModified    = "modified"
	FieldDescription = "description"
	FieldCameraMake  = "camera_make"
	FieldCameraModel = "camera_model"
	FieldDateTaken   = "date_taken"
	FieldArtist      = "artist"
	FieldAlbum       = "album"
	FieldYear        = "year"
	FieldTrack       = "track"
	FieldGenre       = "genre"
	FieldApplication = "application"
	FieldPages       = "pages"
)

// Extract pulls format-specific metadata from the file at path, dispatching
// on the detected MIME type and extension. It is total: any structural
// anomaly yields an empty map, never an error.
func Extract(path, mime, extension string) map[string]string {
	switch {
	case strings.Contains(mime, "pdf"):
		return ExtractPDF(path)
	case strings.Contains(mime, "jpeg"):
		return ExtractJPEG(path)
	case strings.Contains(mime, "mpeg") && extension == ".mp3":
		return ExtractID3(path)
	case strings.Contains(mime, "officedocument"), strings.Contains(mime, "opendocument"):
		return ExtractOffice(path)
	}
	return map[string]string{}
}
