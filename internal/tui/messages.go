package tui

import "time"

// TickMsg drives the periodic poll of controller status and logs.
type TickMsg time.Time

// runStartedMsg reports the outcome of asking the controller to start.
type runStartedMsg struct {
	Err error
}

// settingsSavedMsg reports the outcome of persisting credentials.
type settingsSavedMsg struct {
	Err error
}

// copiedMsg reports the outcome of copying the transcript to the clipboard.
type copiedMsg struct {
	Err error
}
