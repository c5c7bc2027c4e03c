package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Waveform contract expected by the speech service: raw PCM, mono, 16 kHz,
// 16-bit signed little-endian.
const (
	SampleRate = 16000
	Channels   = 1
	BitDepth   = 16
)

var (
	// ErrMediaRead marks a container that cannot be opened or carries no
	// decodable audio track.
	ErrMediaRead = errors.New("media read error")
	// ErrEncode marks a failure writing the extracted waveform.
	ErrEncode = errors.New("audio encode error")
)

// Info holds duration and codec information for the source container.
type Info struct {
	Duration float64
	Codec    string
}

// Available returns true if ffmpeg is on the PATH.
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// probeOutput mirrors ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

// Probe queries duration and audio codec of the source container. It is a
// read-only query and does not require extraction to have run.
func Probe(ctx context.Context, videoPath string) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: probe %s: %v", ErrMediaRead, filepath.Base(videoPath), err)
	}
	return parseProbe([]byte(out))
}

func parseProbe(data []byte) (*Info, error) {
	var probe probeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: ffprobe JSON parse: %v", ErrMediaRead, err)
	}

	codec := ""
	for _, s := range probe.Streams {
		if s.CodecType == "audio" {
			codec = s.CodecName
			break
		}
	}
	if codec == "" {
		return nil, fmt.Errorf("%w: no audio track", ErrMediaRead)
	}

	dur, _ := strconv.ParseFloat(probe.Format.Duration, 64)
	return &Info{Duration: dur, Codec: codec}, nil
}

// WavPath returns the waveform path derived from the video path: the same
// stem with a .wav extension.
func WavPath(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"
}

// Extract writes the recognizer-compatible waveform next to the video,
// overwriting any previous extraction. The returned path is WavPath(videoPath).
//
// Extraction is a single blocking ffmpeg invocation; ctx is only consulted
// before it starts.
func Extract(ctx context.Context, videoPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := Probe(ctx, videoPath); err != nil {
		return "", err
	}

	wavPath := WavPath(videoPath)
	slog.Info("extracting audio", "input", filepath.Base(videoPath), "output", filepath.Base(wavPath))

	err := ffmpeg.Input(videoPath).
		Output(wavPath, ffmpeg.KwArgs{
			"vn":     "",
			"ac":     Channels,
			"ar":     SampleRate,
			"acodec": "pcm_s16le",
		}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return "", fmt.Errorf("%w: ffmpeg extract: %v", ErrEncode, err)
	}

	if err := ValidateWAV(wavPath); err != nil {
		return "", err
	}
	return wavPath, nil
}

// IsVideoExtension returns true for common video file extensions.
func IsVideoExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp4", ".mkv", ".mov", ".avi", ".flv", ".webm":
		return true
	}
	return false
}
