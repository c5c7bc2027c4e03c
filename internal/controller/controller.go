// Package controller orchestrates one transcription run: audio extraction,
// the recognition session, and the transcript sink, on a background worker
// so the invoking surface stays responsive.
package controller

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Utesgui/video-to-text/internal/config"
	"github.com/Utesgui/video-to-text/internal/media"
	"github.com/Utesgui/video-to-text/internal/session"
	"github.com/Utesgui/video-to-text/internal/speech"
	"github.com/Utesgui/video-to-text/internal/transcript"
)

// ErrRunActive rejects Start while a run is in a non-terminal state.
// Overlapping runs would race on the shared artifacts.
var ErrRunActive = errors.New("a transcription run is already active")

// Status is the run lifecycle position.
type Status int

const (
	StatusIdle Status = iota
	StatusExtracting
	StatusRecognizing
	StatusCompleted
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusExtracting:
		return "extracting"
	case StatusRecognizing:
		return "recognizing"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether a new run may start from this status.
func (s Status) Terminal() bool {
	switch s {
	case StatusIdle, StatusCompleted, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// Controller owns run lifecycle: one background worker per run, a per-run
// cancellation context, and a guard against overlapping runs. Progress is
// reported as plain text lines through the injected log callback.
type Controller struct {
	cfg  *config.Config
	logf session.LogFunc

	mu     sync.Mutex
	status Status
	runID  string
	cancel context.CancelFunc
	group  *errgroup.Group

	// Service and media boundaries, swapped out by tests.
	probe         func(ctx context.Context, videoPath string) (*media.Info, error)
	extract       func(ctx context.Context, videoPath string) (string, error)
	newRecognizer func(creds speech.Credentials, wavPath string) (speech.Recognizer, error)
}

// New returns an idle controller. logf receives every progress line; nil
// discards them.
func New(cfg *config.Config, logf session.LogFunc) *Controller {
	if cfg == nil {
		cfg = config.Default()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	c := &Controller{
		cfg:     cfg,
		logf:    logf,
		status:  StatusIdle,
		probe:   media.Probe,
		extract: media.Extract,
	}
	c.newRecognizer = func(creds speech.Credentials, wavPath string) (speech.Recognizer, error) {
		if cfg.StreamAudio {
			feeder := speech.NewFeeder(cfg.PushChunkBytes, cfg.PacingMultiple)
			return speech.NewAzureStreamRecognizer(creds, wavPath, feeder)
		}
		return speech.NewAzureRecognizer(creds, wavPath)
	}
	return c
}

// Status reports the current run status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// RunID identifies the current or most recent run.
func (c *Controller) RunID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runID
}

// Start validates credentials and spawns the background worker for one run.
// It returns ErrRunActive while a previous run has not reached a terminal
// state, and ErrAuthConfig on blank credentials — both before any side
// effect. The worker is not joined here; use Wait.
func (c *Controller) Start(videoPath string, creds speech.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	if !c.status.Terminal() {
		c.mu.Unlock()
		return ErrRunActive
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.status = StatusExtracting
	c.runID = uuid.NewString()[:8]
	g := &errgroup.Group{}
	c.group = g
	c.mu.Unlock()

	c.logf("Starting process...")

	g.Go(func() error {
		err := c.run(ctx, videoPath, creds)
		c.finish(err)
		cancel()
		return err
	})
	return nil
}

// Cancel requests cooperative cancellation of the active run. The request is
// honored between pipeline stages and at the session loop's next iteration;
// an in-flight extraction finishes first. Once the run is terminal, Cancel is
// a no-op.
func (c *Controller) Cancel() {
	c.mu.Lock()
	cancel := c.cancel
	active := !c.status.Terminal()
	c.mu.Unlock()
	if cancel != nil && active {
		c.logf("Stopping process...")
		cancel()
	}
}

// Wait blocks until the current run's worker finishes and returns its error.
func (c *Controller) Wait() error {
	c.mu.Lock()
	g := c.group
	c.mu.Unlock()
	if g == nil {
		return nil
	}
	return g.Wait()
}

func (c *Controller) run(ctx context.Context, videoPath string, creds speech.Credentials) error {
	c.logf("Selected video file: %s", videoPath)

	info, err := c.probe(ctx, videoPath)
	if err != nil {
		return err
	}
	c.logf("Video duration: %s", transcript.FormatClock(int64(info.Duration)))

	wavPath, err := c.extract(ctx, videoPath)
	if err != nil {
		return err
	}
	c.logf("Extracted audio to: %s", wavPath)

	if err := ctx.Err(); err != nil {
		return err
	}
	c.setStatus(StatusRecognizing)

	rec, err := c.newRecognizer(creds, wavPath)
	if err != nil {
		return err
	}

	sink := transcript.NewSink(videoPath, c.cfg.SnapshotSuffix)
	sess := session.New(rec, sink, c.logf)
	if err := sess.Run(ctx); err != nil {
		return err
	}

	c.logf("Transcription completed.")
	return nil
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

func (c *Controller) finish(err error) {
	switch {
	case err == nil:
		c.setStatus(StatusCompleted)
	case errors.Is(err, context.Canceled):
		c.setStatus(StatusCancelled)
		c.logf("Transcription cancelled.")
	default:
		c.setStatus(StatusFailed)
		c.logf("Error during processing: %v", err)
	}
}

// TranscriptPath returns the transcript text file a run against videoPath
// writes, for surfaces that display or copy the result.
func (c *Controller) TranscriptPath(videoPath string) string {
	return transcript.NewSink(videoPath, c.cfg.SnapshotSuffix).TextPath()
}

// DescribeArtifacts summarizes where a run's outputs land.
func (c *Controller) DescribeArtifacts(videoPath string) string {
	sink := transcript.NewSink(videoPath, c.cfg.SnapshotSuffix)
	return fmt.Sprintf("%s, %s", filepath.Base(sink.TextPath()), filepath.Base(sink.SnapshotPath()))
}
