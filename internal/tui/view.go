package tui

import (
	"strings"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Video Transcription Tool"))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Video File", "Speech Key", "Region"}
	for i := range m.inputs {
		style := labelStyle
		if i == m.focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(labels[i]))
		b.WriteString(" ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusBadge(m.status))
	if m.note != "" {
		b.WriteString("  ")
		b.WriteString(noteStyle.Render(m.note))
	}
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(logPanelStyle.Render(m.logView.View()))
		b.WriteString("\n")
	}

	help := "ctrl+r start · ctrl+s save settings · ctrl+y copy transcript · esc quit"
	if m.runActive() {
		help = "ctrl+x stop · esc quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}
