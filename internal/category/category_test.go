package category

import (
	"encoding/json"
	"testing"
)

func TestFolderNames(t *testing.T) {
	tests := []struct {
		cat    Category
		folder string
	}{
		{Documents, "01_Documents"},
		{Images, "02_Images"},
		{Audio, "03_Audio"},
		{Databases, "10_Databases"},
		{Other, "99_Other"},
	}
	for _, tt := range tests {
		t.Run(tt.cat.String(), func(t *testing.T) {
			if got := tt.cat.Folder(); got != tt.folder {
				t.Errorf("Folder() = %q, want %q", got, tt.folder)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, cat := range All() {
		if got := Parse(cat.String()); got != cat {
			t.Errorf("Parse(%q) = %v, want %v", cat.String(), got, cat)
		}
		if got := Parse(cat.Folder()); got != cat {
			t.Errorf("Parse(%q) = %v, want %v", cat.Folder(), got, cat)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	if got := Parse("does-not-exist"); got != Other {
		t.Errorf("Parse(unknown) = %v, want Other", got)
	}
}

func TestIsMedia(t *testing.T) {
	media := map[Category]bool{Images: true, Audio: true, Video: true}
	for _, cat := range All() {
		if got := cat.IsMedia(); got != media[cat] {
			t.Errorf("%v.IsMedia() = %v, want %v", cat, got, media[cat])
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Audio)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"Audio"` {
		t.Fatalf("marshal = %s", data)
	}
	var c Category
	if err := json.Unmarshal([]byte(`"02_Images"`), &c); err != nil {
		t.Fatal(err)
	}
	if c != Images {
		t.Fatalf("unmarshal folder name = %s", c)
	}
}
