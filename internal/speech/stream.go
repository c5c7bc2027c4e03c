package speech

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/time/rate"
)

// Waveform contract, mirrored from the extractor.
const (
	sampleRate = 16000
	bitDepth   = 16
	channels   = 1

	// pcmBytesPerSecond is the real-time byte rate of the waveform:
	// 16000 samples/s at 2 bytes per mono sample.
	pcmBytesPerSecond = sampleRate * bitDepth / 8 * channels
)

// Feeder pushes raw PCM into the service's input stream at a bounded
// multiple of real time, so bulk uploads do not trip service throttling.
type Feeder struct {
	limiter   *rate.Limiter
	chunkSize int
}

// NewFeeder returns a feeder writing chunkBytes at a time, paced at
// pacingMultiple times the waveform's real-time byte rate.
func NewFeeder(chunkBytes int, pacingMultiple float64) *Feeder {
	return &Feeder{
		limiter:   rate.NewLimiter(rate.Limit(pacingMultiple*pcmBytesPerSecond), chunkBytes),
		chunkSize: chunkBytes,
	}
}

// PCMWriter accepts raw PCM chunks. The SDK's push stream satisfies it.
type PCMWriter interface {
	Write(buffer []byte) error
}

// Feed streams the PCM payload of the WAV at wavPath into stream. It returns
// when the payload is exhausted or ctx is cancelled. The caller closes the
// stream afterwards; the service turns that into its end-of-stream signal.
func (f *Feeder) Feed(ctx context.Context, wavPath string, stream PCMWriter) error {
	src, err := os.Open(wavPath)
	if err != nil {
		return fmt.Errorf("open waveform: %w", err)
	}
	defer src.Close()

	if err := seekToPCM(src); err != nil {
		return err
	}

	buf := make([]byte, f.chunkSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if werr := f.limiter.WaitN(ctx, n); werr != nil {
				return werr
			}
			if werr := stream.Write(buf[:n]); werr != nil {
				return fmt.Errorf("push stream write: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read waveform: %w", err)
		}
	}
}

// seekToPCM positions r just past the RIFF "data" chunk header. The stream
// carries bytes verbatim, so decoding samples just to re-encode them is
// avoided; only the chunk layout is walked.
func seekToPCM(r io.ReadSeeker) error {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return fmt.Errorf("read riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return errors.New("not a RIFF/WAVE file")
	}

	var chunk [8]byte
	for {
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			return fmt.Errorf("read chunk header: %w", err)
		}
		size := binary.LittleEndian.Uint32(chunk[4:8])
		if string(chunk[0:4]) == "data" {
			return nil
		}
		// Chunks are word-aligned.
		if size%2 == 1 {
			size++
		}
		if _, err := r.Seek(int64(size), io.SeekCurrent); err != nil {
			return fmt.Errorf("skip chunk: %w", err)
		}
	}
}
