package listen

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	log "log/slog"

	"jarvis/internal/audio/vad"
	"jarvis/internal/dialog"
	"jarvis/pkg/audioconv"
)

const (
	msgRepeat   = "I didn't catch that. Could you repeat?"
	transcribeT = 30 * time.Second
)

type Recorder interface {
	Record(ctx context.Context, wait, limit time.Duration) ([]float32, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, pcm []float32) (string, error)
}

type Ducker interface {
	Duck(ctx context.Context) error
	Restore(ctx context.Context) error
}

type Mic struct {
	Recorder    Recorder
	Transcriber Transcriber
	Speaker     dialog.Speaker
	// Ducker is optional.
	Ducker Ducker
	// Archive, when set, is a directory every captured phrase is saved to.
	Archive string
}

// Listen returns Abort on silence and on device errors. A phrase that could
// not be understood gets one spoken retry.
func (m *Mic) Listen(ctx context.Context, timeout, limit time.Duration) string {
	for attempt := 0; attempt < 2; attempt++ {
		text, err := m.once(ctx, timeout, limit)
		switch {
		case errors.Is(err, vad.ErrNoSpeech), errors.Is(err, context.Canceled):
			return dialog.Abort
		case errors.Is(err, errUnclear):
			if attempt == 0 {
				m.Speaker.Say(msgRepeat)
				continue
			}
			return dialog.Abort
		case err != nil:
			log.Error("Microphone failed", "err", err)
			return dialog.Abort
		}
		log.Debug("Heard", "text", text)
		return text
	}
	return dialog.Abort
}

var errUnclear = errors.New("listen: unclear speech")

func (m *Mic) once(ctx context.Context, timeout, limit time.Duration) (string, error) {
	if m.Ducker != nil {
		if err := m.Ducker.Duck(ctx); err != nil {
			log.Debug("Failed to duck audio", "err", err)
		}
		defer func() {
			if err := m.Ducker.Restore(context.WithoutCancel(ctx)); err != nil {
				log.Debug("Failed to restore audio", "err", err)
			}
		}()
	}

	pcm, err := m.Recorder.Record(ctx, timeout, limit)
	if err != nil {
		return "", err
	}
	m.archive(pcm)

	tctx, cancel := context.WithTimeout(ctx, transcribeT)
	defer cancel()

	raw, err := m.Transcriber.Transcribe(tctx, pcm)
	if err != nil {
		log.Warn("Failed to transcribe", "samples", len(pcm), "err", err)
		return "", errUnclear
	}

	text := Normalize(raw)
	if text == "" {
		return "", errUnclear
	}
	return text, nil
}

func (m *Mic) archive(pcm []float32) {
	if m.Archive == "" {
		return
	}
	name := fmt.Sprintf("phrase_%s.wav", time.Now().Format("20060102_150405.000"))
	if err := audioconv.WriteWAV(filepath.Join(m.Archive, name), pcm); err != nil {
		log.Warn("Failed to archive phrase", "err", err)
	}
}
