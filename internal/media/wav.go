package media

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ValidateWAV confirms that path is a WAV file matching the waveform
// contract (mono, 16 kHz, 16-bit PCM).
func ValidateWAV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open wav: %v", ErrMediaRead, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return fmt.Errorf("%w: read wav header: %v", ErrMediaRead, err)
	}
	if !d.IsValidFile() {
		return fmt.Errorf("%w: not a valid wav file", ErrMediaRead)
	}

	if d.NumChans != Channels {
		return fmt.Errorf("%w: got %d channels, want %d", ErrEncode, d.NumChans, Channels)
	}
	if d.SampleRate != SampleRate {
		return fmt.Errorf("%w: got sample rate %d, want %d", ErrEncode, d.SampleRate, SampleRate)
	}
	if d.BitDepth != BitDepth {
		return fmt.Errorf("%w: got bit depth %d, want %d", ErrEncode, d.BitDepth, BitDepth)
	}
	return nil
}
