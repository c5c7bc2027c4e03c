package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	azaudio "github.com/Microsoft/cognitive-services-speech-sdk-go/audio"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/common"
	azspeech "github.com/Microsoft/cognitive-services-speech-sdk-go/speech"
)

// AzureRecognizer adapts the Azure Speech SDK's callback-driven continuous
// recognition to the Recognizer interface. SDK callbacks run on service
// threads; they only convert event args to Event values and hand them to the
// buffered channel.
type AzureRecognizer struct {
	speechConfig *azspeech.SpeechConfig
	audioConfig  *azaudio.AudioConfig
	pushStream   *azaudio.PushAudioInputStream
	recognizer   *azspeech.SpeechRecognizer

	feeder  *Feeder
	wavPath string

	events    chan Event
	closed    chan struct{}
	feedDone  chan struct{}
	closeOnce sync.Once
}

// NewAzureRecognizer builds a recognizer reading the extracted waveform
// directly as a WAV file input, the service streaming it on our behalf.
func NewAzureRecognizer(creds Credentials, wavPath string) (*AzureRecognizer, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	a := &AzureRecognizer{
		wavPath: wavPath,
		events:  make(chan Event, 64),
		closed:  make(chan struct{}),
	}

	var err error
	a.speechConfig, err = azspeech.NewSpeechConfigFromSubscription(creds.Key, creds.Region)
	if err != nil {
		return nil, fmt.Errorf("%w: speech config: %v", ErrSessionInit, err)
	}
	a.audioConfig, err = azaudio.NewAudioConfigFromWavFileInput(wavPath)
	if err != nil {
		a.speechConfig.Close()
		return nil, fmt.Errorf("%w: audio config: %v", ErrSessionInit, err)
	}

	if err := a.attach(); err != nil {
		return nil, err
	}
	return a, nil
}

// NewAzureStreamRecognizer builds a recognizer fed through a push stream: the
// feeder reads the waveform's PCM payload and writes it at a bounded multiple
// of real time.
func NewAzureStreamRecognizer(creds Credentials, wavPath string, feeder *Feeder) (*AzureRecognizer, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	a := &AzureRecognizer{
		wavPath: wavPath,
		feeder:  feeder,
		events:  make(chan Event, 64),
		closed:  make(chan struct{}),
	}

	var err error
	a.speechConfig, err = azspeech.NewSpeechConfigFromSubscription(creds.Key, creds.Region)
	if err != nil {
		return nil, fmt.Errorf("%w: speech config: %v", ErrSessionInit, err)
	}

	format, err := azaudio.GetWaveFormatPCM(sampleRate, bitDepth, channels)
	if err != nil {
		a.speechConfig.Close()
		return nil, fmt.Errorf("%w: wave format: %v", ErrSessionInit, err)
	}
	defer format.Close()

	a.pushStream, err = azaudio.CreatePushAudioInputStreamFromFormat(format)
	if err != nil {
		a.speechConfig.Close()
		return nil, fmt.Errorf("%w: push stream: %v", ErrSessionInit, err)
	}
	a.audioConfig, err = azaudio.NewAudioConfigFromStreamInput(a.pushStream)
	if err != nil {
		a.pushStream.Close()
		a.speechConfig.Close()
		return nil, fmt.Errorf("%w: audio config: %v", ErrSessionInit, err)
	}

	if err := a.attach(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *AzureRecognizer) attach() error {
	var err error
	a.recognizer, err = azspeech.NewSpeechRecognizerFromConfig(a.speechConfig, a.audioConfig)
	if err != nil {
		a.audioConfig.Close()
		a.speechConfig.Close()
		return fmt.Errorf("%w: recognizer: %v", ErrSessionInit, err)
	}

	a.recognizer.Recognized(a.onRecognized)
	a.recognizer.SessionStopped(a.onSessionStopped)
	a.recognizer.Canceled(a.onCanceled)
	return nil
}

func (a *AzureRecognizer) onRecognized(event azspeech.SpeechRecognitionEventArgs) {
	defer event.Close()
	a.emit(Event{
		Type:        EventRecognized,
		Text:        event.Result.Text,
		OffsetTicks: int64(event.Result.Offset / (100 * time.Nanosecond)),
	})
}

func (a *AzureRecognizer) onSessionStopped(event azspeech.SessionEventArgs) {
	defer event.Close()
	a.emit(Event{Type: EventStopped})
}

func (a *AzureRecognizer) onCanceled(event azspeech.SpeechRecognitionCanceledEventArgs) {
	defer event.Close()
	reason := event.ErrorDetails
	if reason == "" {
		reason = fmt.Sprintf("cancellation reason %d", event.Reason)
	}
	a.emit(Event{
		Type:        EventCanceled,
		Code:        int(event.ErrorCode),
		Reason:      reason,
		EndOfStream: event.Reason == common.EndOfStream,
	})
}

// emit hands an event to the session loop. Once the recognizer is closed no
// consumer remains, so late callbacks are dropped instead of blocking a
// service thread.
func (a *AzureRecognizer) emit(ev Event) {
	select {
	case a.events <- ev:
	case <-a.closed:
	}
}

// Start begins continuous recognition. In push-stream mode it also launches
// the feeder, which closes the stream at end of audio so the service can
// signal end-of-stream.
func (a *AzureRecognizer) Start(ctx context.Context) error {
	if a.pushStream != nil {
		done := make(chan struct{})
		a.feedDone = done

		// The feeder stops on run cancellation or on Close; Close waits for
		// done so the SDK stream is never freed mid-write.
		feedCtx, cancelFeed := context.WithCancel(ctx)
		go func() {
			select {
			case <-a.closed:
			case <-done:
			}
			cancelFeed()
		}()
		go func() {
			defer close(done)
			err := a.feeder.Feed(feedCtx, a.wavPath, a.pushStream)
			switch {
			case err == nil:
				// Normal exhaustion: closing the stream is what the service
				// turns into its end-of-stream signal.
				a.pushStream.CloseStream()
			case !errors.Is(err, context.Canceled):
				slog.Warn("push stream feed ended", "err", err)
			}
		}()
	}

	select {
	case err := <-a.recognizer.StartContinuousRecognitionAsync():
		if err != nil {
			return fmt.Errorf("%w: start recognition: %v", ErrSessionInit, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events delivers the converted service events in arrival order.
func (a *AzureRecognizer) Events() <-chan Event {
	return a.events
}

// Stop drains the SDK's asynchronous stop.
func (a *AzureRecognizer) Stop() error {
	if err := <-a.recognizer.StopContinuousRecognitionAsync(); err != nil {
		return fmt.Errorf("stop recognition: %w", err)
	}
	return nil
}

// Close releases the SDK resources. Safe to call more than once. It joins
// the feeder goroutine first; the push stream outlives any in-flight write.
func (a *AzureRecognizer) Close() {
	a.closeOnce.Do(func() {
		close(a.closed)
		if a.feedDone != nil {
			<-a.feedDone
		}
		if a.recognizer != nil {
			a.recognizer.Close()
		}
		if a.audioConfig != nil {
			a.audioConfig.Close()
		}
		if a.pushStream != nil {
			a.pushStream.Close()
		}
		if a.speechConfig != nil {
			a.speechConfig.Close()
		}
	})
}
