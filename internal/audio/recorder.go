package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"jarvis/internal/audio/vad"
)

const (
	SampleRate = 16000
	frameSize  = 320 // 20ms
)

var ErrNoSpeech = vad.ErrNoSpeech

// Recorder owns the PortAudio runtime. Only one phrase is captured at a time.
type Recorder struct {
	mu sync.Mutex
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// Record waits up to wait for speech to start, then captures until trailing
// silence or until limit has elapsed since speech started. It returns
// ErrNoSpeech when nobody spoke in time.
func (r *Recorder) Record(ctx context.Context, wait, limit time.Duration) ([]float32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf := make([]float32, frameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("start stream: %w", err)
	}
	defer stream.Stop()

	det := vad.New(SampleRate, frameSize, wait, limit)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("read stream: %w", err)
		}
		if det.Feed(buf) {
			break
		}
	}

	if !det.Heard() {
		return nil, ErrNoSpeech
	}
	return det.PCM(), nil
}
