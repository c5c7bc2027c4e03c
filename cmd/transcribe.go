package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Utesgui/video-to-text/internal/config"
	"github.com/Utesgui/video-to-text/internal/controller"
	"github.com/Utesgui/video-to-text/internal/media"
	"github.com/Utesgui/video-to-text/internal/settings"
	"github.com/Utesgui/video-to-text/internal/speech"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <video-file>",
	Short: "Transcribe a video file to a timestamped text transcript",
	Long: `Transcribe extracts the audio track of a video file and streams it through
Azure continuous speech recognition. Lines are appended to <video>.txt as
they are recognized; the full ordered segment list is written as a JSON
snapshot at session end.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

var (
	speechKey    string
	speechRegion string
	streamAudio  bool
	settingsFile string
)

func init() {
	defaults := config.Default()

	transcribeCmd.Flags().StringVarP(&speechKey, "key", "k", "", "speech subscription key (falls back to SPEECH_KEY, then settings file)")
	transcribeCmd.Flags().StringVarP(&speechRegion, "region", "r", "", "speech service region (falls back to SPEECH_REGION, then settings file)")
	transcribeCmd.Flags().BoolVar(&streamAudio, "stream", defaults.StreamAudio, "push PCM through a paced stream instead of file input")
	transcribeCmd.Flags().StringVar(&settingsFile, "settings", defaults.SettingsFile, "INI file holding saved credentials")

	rootCmd.AddCommand(transcribeCmd)
}

// resolveCredentials picks the key/region from flags, then environment, then
// the persisted settings store.
func resolveCredentials() (speech.Credentials, error) {
	creds := speech.Credentials{Key: speechKey, Region: speechRegion}
	if creds.Key == "" {
		creds.Key = os.Getenv("SPEECH_KEY")
	}
	if creds.Region == "" {
		creds.Region = os.Getenv("SPEECH_REGION")
	}
	if creds.Key == "" || creds.Region == "" {
		st, err := settings.Load(settingsFile)
		if err != nil {
			return creds, err
		}
		if creds.Key == "" {
			creds.Key = st.SpeechKey
		}
		if creds.Region == "" {
			creds.Region = st.Region
		}
	}
	return creds, nil
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	absPath, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	if !media.IsVideoExtension(ext) {
		return fmt.Errorf("unsupported file type: %s", ext)
	}
	if !media.Available() {
		return fmt.Errorf("ffmpeg not found on PATH")
	}

	creds, err := resolveCredentials()
	if err != nil {
		return err
	}

	cfg := config.Default()
	cfg.StreamAudio = streamAudio
	cfg.SettingsFile = settingsFile

	ctrl := controller.New(cfg, func(format string, fields ...any) {
		slog.Info(fmt.Sprintf(format, fields...))
	})

	// Graceful cancellation on SIGINT/SIGTERM: request a cooperative stop,
	// then wait for the worker to reach its terminal state. Once the run has
	// finished the goroutine stands down so the deferred stop() cannot turn
	// into a spurious Cancel.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			ctrl.Cancel()
		case <-finished:
		}
	}()

	slog.Info("writing artifacts", "files", ctrl.DescribeArtifacts(absPath))

	if err := ctrl.Start(absPath, creds); err != nil {
		return err
	}
	if err := ctrl.Wait(); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}
