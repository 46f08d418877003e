package extractor

import (
	"errors"
	"testing"
)

func TestParseInfo(t *testing.T) {
	data := []byte(`{
		"title": "Never Gonna Give You Up",
		"formats": [
			{"format_id": "18", "vcodec": "avc1.42001E", "acodec": "mp4a.40.2", "filesize": 104857600, "resolution": "640x360", "url": "https://cdn/18"},
			{"format_id": "251", "vcodec": "none", "acodec": "opus", "abr": 128.4, "filesize": null, "url": "https://cdn/251"},
			{"format_id": "250", "vcodec": "none", "acodec": "opus", "abr": "64", "url": "https://cdn/250"},
			{"format_id": "sb0", "vcodec": "none", "acodec": "none", "resolution": null, "url": "https://cdn/sb0"},
			{"format_id": "x", "vcodec": null, "acodec": "opus", "abr": true, "filesize": "2048", "url": "https://cdn/x"}
		]
	}`)

	info, err := parseInfo(data)
	if err != nil {
		t.Fatalf("parseInfo failed: %v", err)
	}

	if info.Title == nil || *info.Title != "Never Gonna Give You Up" {
		t.Errorf("unexpected title: %v", info.Title)
	}

	if len(info.Formats) != 5 {
		t.Fatalf("expected 5 formats, got %d", len(info.Formats))
	}

	f := info.Formats[0]
	if !f.HasVideo() || !f.HasAudio() {
		t.Error("format 18 should have video and audio")
	}
	if f.FileSize == nil || *f.FileSize != 104857600 {
		t.Errorf("unexpected filesize: %v", f.FileSize)
	}
	if f.Resolution == nil || *f.Resolution != "640x360" {
		t.Errorf("unexpected resolution: %v", f.Resolution)
	}
	if f.URL != "https://cdn/18" {
		t.Errorf("unexpected url: %s", f.URL)
	}

	f = info.Formats[1]
	if f.HasVideo() || !f.HasAudio() {
		t.Error("format 251 should be audio only")
	}
	if f.AverageBitrate == nil || *f.AverageBitrate != "128.4" {
		t.Errorf("numeric abr should keep its literal text, got %v", f.AverageBitrate)
	}
	if f.FileSize != nil {
		t.Errorf("null filesize should be absent, got %d", *f.FileSize)
	}

	if got := info.Formats[2].AverageBitrate; got == nil || *got != "64" {
		t.Errorf("string abr should be kept, got %v", got)
	}

	if info.Formats[3].Resolution != nil {
		t.Error("null resolution should be absent")
	}

	f = info.Formats[4]
	if f.VideoCodec != nil {
		t.Error("null vcodec should be absent")
	}
	if f.AverageBitrate == nil || *f.AverageBitrate != "true" {
		t.Errorf("non-numeric abr should be present as text, got %v", f.AverageBitrate)
	}
	if f.FileSize == nil || *f.FileSize != 2048 {
		t.Errorf("string filesize should be parsed, got %v", f.FileSize)
	}
}

func TestParseInfo_SingleFormat(t *testing.T) {
	data := []byte(`{"title": "clip", "vcodec": "h264", "acodec": "aac", "url": "https://cdn/clip.mp4"}`)

	info, err := parseInfo(data)
	if err != nil {
		t.Fatalf("parseInfo failed: %v", err)
	}

	if len(info.Formats) != 1 {
		t.Fatalf("expected top-level format to be used, got %d formats", len(info.Formats))
	}

	if info.Formats[0].URL != "https://cdn/clip.mp4" {
		t.Errorf("unexpected url: %s", info.Formats[0].URL)
	}
}

func TestParseInfo_MissingTitle(t *testing.T) {
	info, err := parseInfo([]byte(`{"id": "abc", "formats": []}`))
	if err != nil {
		t.Fatalf("parseInfo failed: %v", err)
	}

	if info.Title != nil {
		t.Error("expected absent title")
	}

	if len(info.Formats) != 0 {
		t.Errorf("expected no formats, got %d", len(info.Formats))
	}
}

func TestParseInfo_NoFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"playlist", `{"_type": "playlist", "title": "PL", "entries": []}`},
		{"no formats key", `{"id": "abc"}`},
		{"null formats", `{"id": "abc", "formats": null}`},
		{"null root url", `{"title": "x", "url": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := parseInfo([]byte(tt.input))
			if !errors.Is(err, errNoFormats) {
				t.Fatalf("expected errNoFormats, got info=%v err=%v", info, err)
			}
		})
	}
}

func TestParseInfo_FileSizeOverflow(t *testing.T) {
	tests := []struct {
		name     string
		filesize string
	}{
		{"exponent", `1e20`},
		{"two to the 63", `9223372036854775808`},
		{"string", `"1e300"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`{"formats": [{"vcodec": "avc1", "acodec": "mp4a", "filesize": ` + tt.filesize + `, "url": "u"}]}`)
			info, err := parseInfo(data)
			if err != nil {
				t.Fatalf("parseInfo failed: %v", err)
			}
			if info.Formats[0].FileSize != nil {
				t.Errorf("expected absent filesize, got %d", *info.Formats[0].FileSize)
			}
		})
	}
}

func TestParseInfo_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not json", "[1,2]"} {
		if _, err := parseInfo([]byte(input)); err == nil {
			t.Errorf("parseInfo(%q) expected error", input)
		}
	}
}
