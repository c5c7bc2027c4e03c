package transcript

import (
	"testing"
)

func TestSegmentLine(t *testing.T) {
	tests := []struct {
		ticks int64
		text  string
		want  string
	}{
		{75000000, "Hello", "[00:00:07] Hello"},
		{0, "start", "[00:00:00] start"},
		{10000000, "Hello world", "[00:00:01] Hello world"},
		{50000000, "Goodbye now", "[00:00:05] Goodbye now"},
		// Sub-second precision is floored, not rounded.
		{19999999, "almost two", "[00:00:01] almost two"},
		{36610000000, "an hour in", "[01:01:01] an hour in"},
		{0, "", "[00:00:00] "},
	}

	for _, tt := range tests {
		seg := Segment{OffsetTicks: tt.ticks, Text: tt.text}
		if got := seg.Line(); got != tt.want {
			t.Errorf("Segment{%d, %q}.Line() = %q, want %q", tt.ticks, tt.text, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{7, "00:00:07"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{86399, "23:59:59"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestSegmentBlank(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"a", false},
		{" a ", false},
	}

	for _, tt := range tests {
		seg := Segment{Text: tt.text}
		if got := seg.Blank(); got != tt.want {
			t.Errorf("Segment{Text: %q}.Blank() = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestOffsetSeconds(t *testing.T) {
	seg := Segment{OffsetTicks: 75000000}
	if got := seg.OffsetSeconds(); got != 7 {
		t.Errorf("OffsetSeconds() = %d, want 7", got)
	}
}
