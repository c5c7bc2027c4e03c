package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Utesgui/video-to-text/internal/controller"
	"github.com/Utesgui/video-to-text/internal/settings"
	"github.com/Utesgui/video-to-text/internal/speech"
)

// tickCmd schedules the next poll of controller state.
func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// startRun asks the controller to spawn a run.
func startRun(ctrl *controller.Controller, videoPath string, creds speech.Credentials) tea.Cmd {
	return func() tea.Msg {
		return runStartedMsg{Err: ctrl.Start(videoPath, creds)}
	}
}

// saveSettings persists the entered credentials to the INI store.
func saveSettings(path string, st *settings.Settings) tea.Cmd {
	return func() tea.Msg {
		return settingsSavedMsg{Err: st.Save(path)}
	}
}

// copyTranscript puts the transcript text file's contents on the clipboard.
func copyTranscript(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return copiedMsg{Err: fmt.Errorf("read transcript: %w", err)}
		}
		return copiedMsg{Err: clipboard.WriteAll(string(data))}
	}
}
