package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeTestWAV writes a minimal PCM WAV with the given format parameters.
func writeTestWAV(t *testing.T, channels uint16, sampleRate uint32, bitDepth uint16) string {
	t.Helper()

	payload := make([]byte, 64)

	var fmtChunk bytes.Buffer
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&fmtChunk, binary.LittleEndian, channels)
	binary.Write(&fmtChunk, binary.LittleEndian, sampleRate)
	byteRate := sampleRate * uint32(channels) * uint32(bitDepth) / 8
	binary.Write(&fmtChunk, binary.LittleEndian, byteRate)
	blockAlign := channels * bitDepth / 8
	binary.Write(&fmtChunk, binary.LittleEndian, blockAlign)
	binary.Write(&fmtChunk, binary.LittleEndian, bitDepth)

	var body bytes.Buffer
	body.WriteString("fmt ")
	binary.Write(&body, binary.LittleEndian, uint32(fmtChunk.Len()))
	body.Write(fmtChunk.Bytes())
	body.WriteString("data")
	binary.Write(&body, binary.LittleEndian, uint32(len(payload)))
	body.Write(payload)

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(4+body.Len()))
	out.WriteString("WAVE")
	out.Write(body.Bytes())

	path := filepath.Join(t.TempDir(), "test.wav")
	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		t.Fatalf("write test wav: %v", err)
	}
	return path
}

func TestValidateWAV(t *testing.T) {
	path := writeTestWAV(t, Channels, SampleRate, BitDepth)
	if err := ValidateWAV(path); err != nil {
		t.Errorf("ValidateWAV = %v, want nil", err)
	}
}

func TestValidateWAVWrongFormat(t *testing.T) {
	tests := []struct {
		name       string
		channels   uint16
		sampleRate uint32
		bitDepth   uint16
	}{
		{"stereo", 2, 16000, 16},
		{"44.1kHz", 1, 44100, 16},
		{"8-bit", 1, 16000, 8},
	}

	for _, tt := range tests {
		path := writeTestWAV(t, tt.channels, tt.sampleRate, tt.bitDepth)
		if err := ValidateWAV(path); !errors.Is(err, ErrEncode) {
			t.Errorf("%s: ValidateWAV = %v, want ErrEncode", tt.name, err)
		}
	}
}

func TestValidateWAVNotAWaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("not a wav at all"), 0644); err != nil {
		t.Fatalf("write junk: %v", err)
	}
	if err := ValidateWAV(path); !errors.Is(err, ErrMediaRead) {
		t.Errorf("ValidateWAV = %v, want ErrMediaRead", err)
	}
}
