package metadata

import (
	"archive/zip"
	"encoding/xml"
	"io"
)

// officeReadLimit bounds how much of a docProps part is decoded.
const officeReadLimit = 256 * 1024

// coreProperties models docProps/core.xml. The Dublin Core and core-properties
// namespaces are matched by the xml tags below.
type coreProperties struct {
	Title          string `xml:"http://purl.org/dc/elements/1.1/ title"`
	Creator        string `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Subject        string `xml:"http://purl.org/dc/elements/1.1/ subject"`
	Description    string `xml:"http://purl.org/dc/elements/1.1/ description"`
	LastModifiedBy string `xml:"http://schemas.openxmlformats.org/package/2006/metadata/core-properties lastModifiedBy"`
	Category       string `xml:"http://schemas.openxmlformats.org/package/2006/metadata/core-properties category"`
	Created        string `xml:"http://purl.org/dc/terms/ created"`
	Modified       string `xml:"http://purl.org/dc/terms/ modified"`
}

// appProperties models docProps/app.xml extended properties.
type appProperties struct {
	Application string `xml:"Application"`
	Pages       string `xml:"Pages"`
}

// ExtractOffice reads Dublin Core and application metadata from ZIP-based
// document containers (OOXML and ODF).
func ExtractOffice(path string) map[string]string {
	fields := map[string]string{}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return fields
	}
	defer archive.Close()

	if data, ok := readOfficePart(&archive.Reader, "docProps/core.xml"); ok {
		var core coreProperties
		if xml.Unmarshal(data, &core) == nil {
			setField(fields, FieldTitle, core.Title)
			setField(fields, FieldAuthor, core.Creator)
			setField(fields, FieldSubject, core.Subject)
			setField(fields, FieldDescription, core.Description)
			setField(fields, "last_modified_by", core.LastModifiedBy)
			setField(fields, "category", core.Category)
			setField(fields, FieldCreated, core.Created)
			setField(fields, FieldModified, core.Modified)
		}
	}

	if data, ok := readOfficePart(&archive.Reader, "docProps/app.xml"); ok {
		var app appProperties
		if xml.Unmarshal(data, &app) == nil {
			setField(fields, FieldApplication, app.Application)
			setField(fields, FieldPages, app.Pages)
		}
	}

	return fields
}

func readOfficePart(archive *zip.Reader, name string) ([]byte, bool) {
	for _, entry := range archive.File {
		if entry.Name != name {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, false
		}
		data, err := io.ReadAll(io.LimitReader(rc, officeReadLimit))
		rc.Close()
		if err != nil {
			return nil, false
		}
		return data, true
	}
	return nil, false
}

func setField(fields map[string]string, key, value string) {
	if trimmed := trimText(value); trimmed != "" {
		fields[key] = trimmed
	}
}
