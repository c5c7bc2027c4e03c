package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Utesgui/video-to-text/internal/settings"
	"github.com/Utesgui/video-to-text/internal/speech"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case TickMsg:
		return m.handleTick()

	case runStartedMsg:
		if msg.Err != nil {
			m.note = msg.Err.Error()
		} else {
			m.note = ""
		}
		return m, nil

	case settingsSavedMsg:
		if msg.Err != nil {
			m.note = msg.Err.Error()
		} else {
			m.note = "Settings saved."
		}
		return m, nil

	case copiedMsg:
		if msg.Err != nil {
			m.note = msg.Err.Error()
		} else {
			m.note = "Transcript copied to clipboard."
		}
		return m, nil
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.ctrl.Cancel()
		return m, tea.Quit

	case "tab", "enter", "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case "ctrl+r":
		video := strings.TrimSpace(m.inputs[fieldVideo].Value())
		if video == "" {
			m.note = "Select a video file first."
			return m, nil
		}
		creds := speech.Credentials{
			Key:    m.inputs[fieldKey].Value(),
			Region: m.inputs[fieldRegion].Value(),
		}
		return m, startRun(m.ctrl, video, creds)

	case "ctrl+x":
		m.ctrl.Cancel()
		return m, nil

	case "ctrl+s":
		st := &settings.Settings{
			SpeechKey: m.inputs[fieldKey].Value(),
			Region:    m.inputs[fieldRegion].Value(),
		}
		return m, saveSettings(m.settingsPath, st)

	case "ctrl+y":
		video := strings.TrimSpace(m.inputs[fieldVideo].Value())
		if video == "" {
			m.note = "No video selected."
			return m, nil
		}
		return m, copyTranscript(m.ctrl.TranscriptPath(video))
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, fieldCount)
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	logHeight := msg.Height - chromeHeight
	if logHeight < 3 {
		logHeight = 3
	}
	if !m.ready {
		m.logView = newLogView(msg.Width-4, logHeight)
		m.ready = true
	} else {
		m.logView.Width = msg.Width - 4
		m.logView.Height = logHeight
	}
	return m
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.status = m.ctrl.Status()

	if n := m.logs.Len(); n != m.logCount {
		m.logCount = n
		if m.ready {
			m.logView.SetContent(strings.Join(m.logs.Lines(), "\n"))
			m.logView.GotoBottom()
		}
	}
	return m, tickCmd()
}

// runActive reports whether a run is in flight; the view uses it to pick the
// help line.
func (m Model) runActive() bool {
	return !m.status.Terminal()
}
