package listen

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	log "log/slog"

	"jarvis/internal/dialog"
)

// Lines is a source fed with typed text, from stdin or the control socket.
type Lines struct {
	ch chan string
}

func NewLines() *Lines {
	return &Lines{ch: make(chan string, 16)}
}

// Push queues one utterance, lowercased. Typed text keeps inner punctuation
// so addresses and file names survive, but trailing "?!.," is dropped. Push
// drops the text when the queue is full.
func (l *Lines) Push(text string) bool {
	text = trimSentence(strings.ToLower(text))
	if text == "" {
		return false
	}
	select {
	case l.ch <- text:
		return true
	default:
		log.Warn("Input queue full, dropping", "text", text)
		return false
	}
}

// Feed pushes every line of r until r ends or ctx is done.
func (l *Lines) Feed(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.Push(sc.Text())
	}
	return sc.Err()
}

func (l *Lines) Listen(ctx context.Context, timeout, _ time.Duration) string {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case text := <-l.ch:
		return text
	case <-t.C:
		return dialog.Abort
	case <-ctx.Done():
		return dialog.Abort
	}
}

// WithLines lets queued lines jump ahead of next, so text sent over the
// control socket is picked up while the microphone is the main source.
func WithLines(lines *Lines, next dialog.Source) dialog.Source {
	return &preferLines{lines: lines, next: next}
}

type preferLines struct {
	lines *Lines
	next  dialog.Source
}

func (p *preferLines) Listen(ctx context.Context, timeout, limit time.Duration) string {
	select {
	case text := <-p.lines.ch:
		return text
	default:
	}
	return p.next.Listen(ctx, timeout, limit)
}
