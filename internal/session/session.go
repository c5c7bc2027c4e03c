// Package session owns one continuous-recognition run: it consumes the
// recognizer's event stream, converts recognized events into timestamped
// segments, forwards them to the transcript sink, and drives the session
// lifecycle through to its terminal state.
package session

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/Utesgui/video-to-text/internal/speech"
	"github.com/Utesgui/video-to-text/internal/transcript"
)

// State is the session lifecycle position.
type State int32

const (
	StateIdle State = iota
	StateStarting
	StateStreaming
	StateStopping
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateStreaming:
		return "streaming"
	case StateStopping:
		return "stopping"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// LogFunc receives human-readable progress lines.
type LogFunc func(format string, args ...any)

// Session converts one recognizer's event stream into durable transcript
// output. The run loop is the only goroutine touching segments and the sink;
// the recognizer adapter is responsible for moving events off its callback
// context onto the channel.
type Session struct {
	rec  speech.Recognizer
	sink *transcript.Sink
	logf LogFunc

	state     atomic.Int32
	segments  []transcript.Segment
	finalized bool
}

// New returns a session in StateIdle.
func New(rec speech.Recognizer, sink *transcript.Sink, logf LogFunc) *Session {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Session{rec: rec, sink: sink, logf: logf}
}

// State reports the current lifecycle position. Safe to call from other
// goroutines while Run is in flight.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Segments returns the complete ordered segment list, blank segments
// included. Valid once Run has returned.
func (s *Session) Segments() []transcript.Segment {
	return s.segments
}

// Run drives the session to its terminal state. It blocks until the service
// signals end-of-stream, the service cancels, or ctx is cancelled — there is
// no internal timeout. A Stopped or Canceled event is the only condition
// treated as end-of-stream.
//
// Cancellation is cooperative: a pending ctx is honored at the next loop
// iteration, never by interrupting an in-flight service call.
func (s *Session) Run(ctx context.Context) error {
	s.state.Store(int32(StateStarting))
	defer s.rec.Close()

	if err := s.rec.Start(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("start session: %w", err)
	}

	s.state.Store(int32(StateStreaming))

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return ctx.Err()

		case ev, ok := <-s.rec.Events():
			if !ok {
				s.shutdown()
				return nil
			}
			switch ev.Type {
			case speech.EventRecognized:
				seg := transcript.Segment{OffsetTicks: ev.OffsetTicks, Text: ev.Text}
				s.segments = append(s.segments, seg)
				s.logf("transcript: '%s'", seg.Line())
				if err := s.sink.Append(seg); err != nil {
					s.shutdown()
					return err
				}

			case speech.EventStopped:
				s.logf("Recognition session stopped.")
				s.shutdown()
				return nil

			case speech.EventCanceled:
				if ev.EndOfStream {
					s.logf("End of audio stream reached.")
					s.shutdown()
					return nil
				}
				s.logf("Recognition canceled by service: %s", ev.Reason)
				s.shutdown()
				return &speech.CanceledError{Code: ev.Code, Reason: ev.Reason}
			}
		}
	}
}

// shutdown performs the terminal transition: stop the recognizer, write the
// snapshot exactly once, enter StateDone. Partial progress already appended
// to the transcript file stays on disk regardless of why the session ends.
func (s *Session) shutdown() {
	s.state.Store(int32(StateStopping))

	if err := s.rec.Stop(); err != nil {
		s.logf("Error stopping recognizer: %v", err)
	}

	if !s.finalized {
		s.finalized = true
		if err := s.sink.Finalize(s.segments); err != nil {
			s.logf("Error writing transcript snapshot: %v", err)
		} else {
			s.logf("Transcription snapshot written to: %s", s.sink.SnapshotPath())
		}
	}

	s.state.Store(int32(StateDone))
}
