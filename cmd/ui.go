package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Utesgui/video-to-text/internal/config"
	"github.com/Utesgui/video-to-text/internal/settings"
	"github.com/Utesgui/video-to-text/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive control surface",
	Long: `Open a terminal UI with fields for the video path and speech credentials,
start/stop controls, and a live log panel. Saved credentials are loaded from
the settings file and can be updated from the UI.`,
	RunE: runUI,
}

var uiSettingsFile string

func init() {
	uiCmd.Flags().StringVar(&uiSettingsFile, "settings", config.Default().SettingsFile, "INI file holding saved credentials")
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	st, err := settings.Load(uiSettingsFile)
	if err != nil {
		return err
	}

	m := tui.NewModel(config.Default(), uiSettingsFile, st)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
