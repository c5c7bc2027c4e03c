package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sink persists one run's transcript: timestamped lines appended to a
// human-readable text file as they arrive, plus a structured snapshot of the
// full ordered segment list written once at session end.
//
// The text file is append-only across runs against the same video; each run
// contributes a dated header block followed by its lines. The snapshot is
// replaced whole every run.
type Sink struct {
	textPath     string
	snapshotPath string

	headerWritten bool

	// now is swapped out by tests that pin the header timestamp.
	now func() time.Time
}

// NewSink derives the artifact paths from the video path: <stem>.txt for the
// transcript and <stem><snapshotSuffix> for the snapshot.
func NewSink(videoPath, snapshotSuffix string) *Sink {
	stem := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	return &Sink{
		textPath:     stem + ".txt",
		snapshotPath: stem + snapshotSuffix,
		now:          time.Now,
	}
}

// TextPath returns the transcript text file path.
func (s *Sink) TextPath() string { return s.textPath }

// SnapshotPath returns the structured snapshot path.
func (s *Sink) SnapshotPath() string { return s.snapshotPath }

// Append writes the segment's formatted line to the transcript file. Blank
// segments are ignored. The run's header block is written lazily, the first
// time the run actually appends, so a run that recognizes nothing leaves the
// file untouched.
func (s *Sink) Append(seg Segment) error {
	if seg.Blank() {
		return nil
	}

	f, err := os.OpenFile(s.textPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	if !s.headerWritten {
		header := "\n\n\nTranscription started at " + s.now().Format("20060102_150405") + "\n\n\n"
		if _, err := f.WriteString(header); err != nil {
			return fmt.Errorf("write transcript header: %w", err)
		}
		s.headerWritten = true
	}

	if _, err := f.WriteString(seg.Line() + "\n"); err != nil {
		return fmt.Errorf("write transcript line: %w", err)
	}
	return nil
}

// Finalize serializes the complete ordered segment list, blank segments
// included, as a JSON array of formatted lines. Any prior snapshot is
// replaced. Identical input produces a byte-identical artifact.
func (s *Sink) Finalize(segments []Segment) error {
	lines := make([]string, len(segments))
	for i, seg := range segments {
		lines[i] = seg.Line()
	}

	data, err := json.MarshalIndent(lines, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.snapshotPath, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
