package listen

import (
	"context"
	"time"

	log "log/slog"

	"jarvis/internal/dialog"
)

// Clips replays recorded audio files through the transcriber, one file per
// listen. Once the files run out every listen waits for the timeout and
// returns Abort, after calling Done once.
type Clips struct {
	Paths       []string
	Decode      func(path string) ([]float32, error)
	Transcriber Transcriber
	Done        func()

	next     int
	finished bool
}

func (c *Clips) Listen(ctx context.Context, timeout, _ time.Duration) string {
	if c.next >= len(c.Paths) {
		if !c.finished {
			c.finished = true
			if c.Done != nil {
				c.Done()
			}
		}
		wait(ctx, timeout)
		return dialog.Abort
	}

	path := c.Paths[c.next]
	c.next++

	pcm, err := c.Decode(path)
	if err != nil {
		log.Error("Failed to decode clip", "path", path, "err", err)
		return dialog.Abort
	}

	raw, err := c.Transcriber.Transcribe(ctx, pcm)
	if err != nil {
		log.Error("Failed to transcribe clip", "path", path, "err", err)
		return dialog.Abort
	}

	text := Normalize(raw)
	if text == "" {
		return dialog.Abort
	}
	log.Info("Clip", "path", path, "text", text)
	return text
}

func wait(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
