package media

import (
	"errors"
	"testing"
)

func TestParseProbe(t *testing.T) {
	json := `{
		"format": {"duration": "10.000000"},
		"streams": [
			{"codec_type": "video", "codec_name": "h264"},
			{"codec_type": "audio", "codec_name": "aac"}
		]
	}`

	info, err := parseProbe([]byte(json))
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if info.Duration != 10.0 {
		t.Errorf("Duration = %f, want 10.0", info.Duration)
	}
	if info.Codec != "aac" {
		t.Errorf("Codec = %q, want aac", info.Codec)
	}
}

func TestParseProbeNoAudioTrack(t *testing.T) {
	json := `{
		"format": {"duration": "10.000000"},
		"streams": [{"codec_type": "video", "codec_name": "h264"}]
	}`

	if _, err := parseProbe([]byte(json)); !errors.Is(err, ErrMediaRead) {
		t.Errorf("parseProbe = %v, want ErrMediaRead", err)
	}
}

func TestParseProbeBadJSON(t *testing.T) {
	if _, err := parseProbe([]byte("not json")); !errors.Is(err, ErrMediaRead) {
		t.Errorf("parseProbe = %v, want ErrMediaRead", err)
	}
}

func TestWavPath(t *testing.T) {
	tests := []struct {
		video string
		want  string
	}{
		{"/videos/demo.mp4", "/videos/demo.wav"},
		{"demo.mkv", "demo.wav"},
		{"a.b.mov", "a.b.wav"},
		{"noext", "noext.wav"},
	}

	for _, tt := range tests {
		if got := WavPath(tt.video); got != tt.want {
			t.Errorf("WavPath(%q) = %q, want %q", tt.video, got, tt.want)
		}
	}
}

func TestIsVideoExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".mp4", true},
		{".MP4", true},
		{".mkv", true},
		{".webm", true},
		{".wav", false},
		{".mp3", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsVideoExtension(tt.ext); got != tt.want {
			t.Errorf("IsVideoExtension(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}
