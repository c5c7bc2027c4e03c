package config

// Config holds the full application configuration.
type Config struct {
	// SettingsFile is the INI file holding the persisted speech key and region.
	SettingsFile string

	// SnapshotSuffix is appended to the video stem for the structured
	// segment snapshot written at session end.
	SnapshotSuffix string

	// StreamAudio switches the recognizer from WAV-file input to the paced
	// PCM push stream.
	StreamAudio bool

	PushChunkBytes int
	// PacingMultiple bounds how much faster than real time PCM is pushed.
	PacingMultiple float64
}

// Default returns a Config with hardcoded defaults.
func Default() *Config {
	return &Config{
		SettingsFile:   "settings.ini",
		SnapshotSuffix: ".segments.json",
		StreamAudio:    false,
		PushChunkBytes: 32 * 1024,
		PacingMultiple: 4.0,
	}
}
