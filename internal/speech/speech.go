package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuthConfig marks missing or blank credentials, caught before any
	// service call is attempted.
	ErrAuthConfig = errors.New("speech credentials missing")
	// ErrSessionInit marks a failure constructing or starting the
	// recognizer. Sessions are never retried automatically; restart is a
	// user action.
	ErrSessionInit = errors.New("recognition session init failed")
)

// CanceledError is a service-initiated termination (auth rejection, network
// drop) carrying the service's reason.
type CanceledError struct {
	Code   int
	Reason string
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("recognition canceled by service (code %d): %s", e.Code, e.Reason)
}

// Credentials identify one run's speech-service subscription. They are
// supplied per run and never persisted here.
type Credentials struct {
	Key    string
	Region string
}

// Validate rejects blank credentials before any network call.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Key) == "" || strings.TrimSpace(c.Region) == "" {
		return fmt.Errorf("%w: subscription key and region are required", ErrAuthConfig)
	}
	return nil
}

// EventType discriminates the three event kinds the service delivers.
type EventType int

const (
	// EventRecognized carries one transcribed utterance.
	EventRecognized EventType = iota
	// EventStopped is the service's end-of-session signal.
	EventStopped
	// EventCanceled is a service-side cancellation. EndOfStream marks the
	// normal exhaustion of a file input; anything else is a failure.
	EventCanceled
)

// Event is one asynchronous recognition event, converted from the service
// callback context onto a channel so the session loop can consume events
// sequentially.
type Event struct {
	Type EventType

	// Recognized fields.
	Text        string
	OffsetTicks int64

	// Canceled fields.
	Code        int
	Reason      string
	EndOfStream bool
}

// Recognizer is one continuous-recognition run against the speech service.
// Events arrive on the Events channel from the service's own execution
// context; the channel is the only hand-off between the two.
type Recognizer interface {
	// Start begins continuous recognition. Failures wrap ErrSessionInit.
	Start(ctx context.Context) error
	// Events delivers recognition events in service order. Consumers must
	// treat a Stopped or Canceled event as the sole authoritative
	// end-of-stream signal.
	Events() <-chan Event
	// Stop issues a stop to the recognizer. It does not interrupt an
	// in-flight service call.
	Stop() error
	// Close releases the recognizer resources.
	Close()
}
