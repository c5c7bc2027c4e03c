// Package tui is the terminal control surface: video selection, credential
// entry, run start/stop, and a scrolling log panel fed by the controller.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Utesgui/video-to-text/internal/config"
	"github.com/Utesgui/video-to-text/internal/controller"
	"github.com/Utesgui/video-to-text/internal/settings"
)

// Input field indices.
const (
	fieldVideo = iota
	fieldKey
	fieldRegion
	fieldCount
)

// Model holds the control-surface state. The transcription work itself runs
// on the controller's background worker; the surface only polls its log
// buffer and status on a tick.
type Model struct {
	inputs [fieldCount]textinput.Model
	focus  int

	logView viewport.Model
	ready   bool

	cfg          *config.Config
	settingsPath string
	ctrl         *controller.Controller
	logs         *controller.LogBuffer
	logCount     int
	status       controller.Status
	note         string

	width  int
	height int
}

// NewModel builds the surface, pre-filling credentials from the persisted
// settings.
func NewModel(cfg *config.Config, settingsPath string, st *settings.Settings) Model {
	m := Model{
		cfg:          cfg,
		settingsPath: settingsPath,
		logs:         &controller.LogBuffer{},
		status:       controller.StatusIdle,
	}
	m.ctrl = controller.New(cfg, m.logs.Append)

	video := textinput.New()
	video.Placeholder = "/path/to/video.mp4"
	video.Prompt = ""
	video.Focus()

	key := textinput.New()
	key.Placeholder = "speech subscription key"
	key.Prompt = ""
	key.EchoMode = textinput.EchoPassword
	key.SetValue(st.SpeechKey)

	region := textinput.New()
	region.Placeholder = "westeurope"
	region.Prompt = ""
	region.SetValue(st.Region)

	m.inputs[fieldVideo] = video
	m.inputs[fieldKey] = key
	m.inputs[fieldRegion] = region
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}
