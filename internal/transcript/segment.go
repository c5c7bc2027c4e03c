package transcript

import (
	"fmt"
	"strings"
)

// TicksPerSecond is the speech service's wire convention: offsets arrive in
// ticks of 100 nanoseconds relative to stream start.
const TicksPerSecond = 10_000_000

// Segment is one recognized utterance with its stream offset.
type Segment struct {
	OffsetTicks int64
	Text        string
}

// OffsetSeconds returns the segment offset floored to whole seconds.
func (s Segment) OffsetSeconds() int64 {
	return s.OffsetTicks / TicksPerSecond
}

// Timestamp formats the offset as zero-padded HH:MM:SS.
func (s Segment) Timestamp() string {
	return FormatClock(s.OffsetSeconds())
}

// Line formats the segment as it appears in the transcript file.
func (s Segment) Line() string {
	return fmt.Sprintf("[%s] %s", s.Timestamp(), s.Text)
}

// Blank reports whether the recognized text is empty after trimming
// whitespace. Blank segments are kept in memory but never written to the
// transcript text file.
func (s Segment) Blank() bool {
	return strings.TrimSpace(s.Text) == ""
}

// FormatClock converts a second count to zero-padded HH:MM:SS.
func FormatClock(seconds int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
