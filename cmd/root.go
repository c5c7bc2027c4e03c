package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "video-to-text",
	Short: "Extract audio from a video and transcribe it with Azure Speech",
	Long: `Video-to-text extracts the audio track of a video file as a mono 16 kHz
PCM waveform and streams it through Azure continuous speech recognition,
producing a timestamped transcript file and a structured segment snapshot.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env with SPEECH_KEY / SPEECH_REGION.
		_ = godotenv.Load()
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}
