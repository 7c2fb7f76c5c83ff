// Package tts is the assistant's voice. Every line is printed; it is also
// spoken when a speech engine is available.
package tts

import (
	"fmt"
	"io"
	"sync"

	log "log/slog"

	"jarvis/internal/task"
)

type Engine interface {
	Speak(text string) error
}

type Speaker struct {
	mu     sync.Mutex
	out    io.Writer
	engine Engine
}

// NewSpeaker prints to out. A nil engine means text-only mode.
func NewSpeaker(out io.Writer, engine Engine) *Speaker {
	return &Speaker{out: out, engine: engine}
}

// Say returns as soon as the line is printed. Playback runs on a detached
// task and may overlap with the next listen.
func (s *Speaker) Say(text string) {
	if text == "" {
		return
	}

	s.mu.Lock()
	fmt.Fprintf(s.out, "Jarvis: %s\n", text)
	s.mu.Unlock()

	if s.engine == nil {
		return
	}
	task.Go("tts", func() {
		if err := s.engine.Speak(text); err != nil {
			log.Warn("Failed to voice out", "err", err)
		}
	})
}
