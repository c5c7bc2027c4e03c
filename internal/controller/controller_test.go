package controller

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Utesgui/video-to-text/internal/config"
	"github.com/Utesgui/video-to-text/internal/media"
	"github.com/Utesgui/video-to-text/internal/speech"
)

type fakeRecognizer struct {
	events chan speech.Event
}

func newFakeRecognizer(events ...speech.Event) *fakeRecognizer {
	ch := make(chan speech.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	return &fakeRecognizer{events: ch}
}

func (f *fakeRecognizer) Start(ctx context.Context) error { return nil }
func (f *fakeRecognizer) Events() <-chan speech.Event     { return f.events }
func (f *fakeRecognizer) Stop() error                     { return nil }
func (f *fakeRecognizer) Close()                          {}

func testCreds() speech.Credentials {
	return speech.Credentials{Key: "key", Region: "westeurope"}
}

// testController fakes the media and service boundaries so runs complete
// without ffmpeg or a network.
func testController(t *testing.T, logs *LogBuffer, events ...speech.Event) (*Controller, string) {
	t.Helper()
	videoPath := filepath.Join(t.TempDir(), "demo.mp4")

	var logf func(string, ...any)
	if logs != nil {
		logf = logs.Append
	}
	c := New(config.Default(), logf)
	c.probe = func(ctx context.Context, path string) (*media.Info, error) {
		return &media.Info{Duration: 10.0, Codec: "aac"}, nil
	}
	c.extract = func(ctx context.Context, path string) (string, error) {
		return media.WavPath(path), nil
	}
	c.newRecognizer = func(creds speech.Credentials, wavPath string) (speech.Recognizer, error) {
		return newFakeRecognizer(events...), nil
	}
	return c, videoPath
}

func TestStartRejectsBlankCredentials(t *testing.T) {
	extracted := false
	c, videoPath := testController(t, nil)
	c.extract = func(ctx context.Context, path string) (string, error) {
		extracted = true
		return media.WavPath(path), nil
	}

	err := c.Start(videoPath, speech.Credentials{})
	if !errors.Is(err, speech.ErrAuthConfig) {
		t.Fatalf("Start = %v, want ErrAuthConfig", err)
	}
	if extracted {
		t.Error("extraction ran despite credential rejection")
	}
	if got := c.Status(); got != StatusIdle {
		t.Errorf("Status() = %v, want idle", got)
	}
}

func TestRunCompletes(t *testing.T) {
	logs := &LogBuffer{}
	c, videoPath := testController(t, logs,
		speech.Event{Type: speech.EventRecognized, Text: "Hello world", OffsetTicks: 10000000},
		speech.Event{Type: speech.EventStopped},
	)

	if err := c.Start(videoPath, testCreds()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := c.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := c.Status(); got != StatusCompleted {
		t.Errorf("Status() = %v, want completed", got)
	}
	if c.RunID() == "" {
		t.Error("RunID() empty after a run")
	}

	joined := strings.Join(logs.Lines(), "\n")
	for _, want := range []string{
		"Selected video file:",
		"Video duration: 00:00:10",
		"Extracted audio to:",
		"transcript: '[00:00:01] Hello world'",
		"Transcription completed.",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("log missing %q:\n%s", want, joined)
		}
	}
}

func TestStartRejectsOverlap(t *testing.T) {
	release := make(chan struct{})
	c, videoPath := testController(t, nil, speech.Event{Type: speech.EventStopped})
	c.extract = func(ctx context.Context, path string) (string, error) {
		<-release
		return media.WavPath(path), nil
	}

	if err := c.Start(videoPath, testCreds()); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := c.Start(videoPath, testCreds()); !errors.Is(err, ErrRunActive) {
		t.Fatalf("overlapping Start = %v, want ErrRunActive", err)
	}

	close(release)
	if err := c.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	// A terminal run frees the controller for the next one.
	c2events := make(chan speech.Event, 1)
	c2events <- speech.Event{Type: speech.EventStopped}
	c.newRecognizer = func(creds speech.Credentials, wavPath string) (speech.Recognizer, error) {
		return &fakeRecognizer{events: c2events}, nil
	}
	if err := c.Start(videoPath, testCreds()); err != nil {
		t.Fatalf("Start after completion: %v", err)
	}
	if err := c.Wait(); err != nil {
		t.Fatalf("second Wait: %v", err)
	}
}

func TestCancelBetweenStages(t *testing.T) {
	c, videoPath := testController(t, nil)
	extracting := make(chan struct{})
	c.extract = func(ctx context.Context, path string) (string, error) {
		close(extracting)
		<-ctx.Done()
		return "", ctx.Err()
	}

	if err := c.Start(videoPath, testCreds()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	<-extracting
	c.Cancel()

	if err := c.Wait(); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait = %v, want context.Canceled", err)
	}
	if got := c.Status(); got != StatusCancelled {
		t.Errorf("Status() = %v, want cancelled", got)
	}
}

func TestCancelAfterCompletionIsNoOp(t *testing.T) {
	logs := &LogBuffer{}
	c, videoPath := testController(t, logs, speech.Event{Type: speech.EventStopped})

	if err := c.Start(videoPath, testCreds()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := c.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	c.Cancel()

	if got := c.Status(); got != StatusCompleted {
		t.Errorf("Status() after late Cancel = %v, want completed", got)
	}
	for _, line := range logs.Lines() {
		if strings.Contains(line, "Stopping process") {
			t.Errorf("late Cancel logged %q", line)
		}
	}
}

func TestRunIDsDistinct(t *testing.T) {
	c, videoPath := testController(t, nil)
	c.newRecognizer = func(creds speech.Credentials, wavPath string) (speech.Recognizer, error) {
		return newFakeRecognizer(speech.Event{Type: speech.EventStopped}), nil
	}

	runOnce := func() string {
		t.Helper()
		if err := c.Start(videoPath, testCreds()); err != nil {
			t.Fatalf("Start: %v", err)
		}
		if err := c.Wait(); err != nil {
			t.Fatalf("Wait: %v", err)
		}
		return c.RunID()
	}

	first := runOnce()
	second := runOnce()
	if first == "" || second == "" {
		t.Fatalf("blank run ID: first %q, second %q", first, second)
	}
	if first == second {
		t.Errorf("consecutive runs share ID %q", first)
	}
}

func TestRunFailsOnProbeError(t *testing.T) {
	c, videoPath := testController(t, nil)
	c.probe = func(ctx context.Context, path string) (*media.Info, error) {
		return nil, media.ErrMediaRead
	}

	if err := c.Start(videoPath, testCreds()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := c.Wait(); !errors.Is(err, media.ErrMediaRead) {
		t.Fatalf("Wait = %v, want ErrMediaRead", err)
	}
	if got := c.Status(); got != StatusFailed {
		t.Errorf("Status() = %v, want failed", got)
	}
}

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusIdle, true},
		{StatusExtracting, false},
		{StatusRecognizing, false},
		{StatusCompleted, true},
		{StatusCancelled, true},
		{StatusFailed, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%v.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestLogBuffer(t *testing.T) {
	b := &LogBuffer{}
	b.Append("line %d", 1)
	b.Append("line %d", 2)

	lines := b.Lines()
	if len(lines) != 2 || lines[0] != "line 1" || lines[1] != "line 2" {
		t.Errorf("Lines() = %v", lines)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}

	// Lines returns a copy; mutating it must not touch the buffer.
	lines[0] = "mutated"
	if b.Lines()[0] != "line 1" {
		t.Error("Lines() exposed internal storage")
	}
}
