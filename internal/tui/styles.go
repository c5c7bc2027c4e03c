package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/Utesgui/video-to-text/internal/controller"
)

// Vertical space taken by everything above and below the log panel.
const chromeHeight = 12

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("205"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	logPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statusColors = map[controller.Status]lipgloss.Color{
		controller.StatusIdle:        lipgloss.Color("245"),
		controller.StatusExtracting:  lipgloss.Color("214"),
		controller.StatusRecognizing: lipgloss.Color("39"),
		controller.StatusCompleted:   lipgloss.Color("42"),
		controller.StatusCancelled:   lipgloss.Color("208"),
		controller.StatusFailed:      lipgloss.Color("196"),
	}
)

func statusBadge(s controller.Status) string {
	color, ok := statusColors[s]
	if !ok {
		color = lipgloss.Color("245")
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(color).
		Padding(0, 1).
		Render(s.String())
}

func newLogView(width, height int) viewport.Model {
	v := viewport.New(width, height)
	return v
}
