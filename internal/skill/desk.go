package skill

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	log "log/slog"
)

const (
	longClipboard = 500
	maxSummarize  = 10000
)

type Clipboard struct {
	Read    func() (string, error)
	LLM     Completer
	Speaker Speaker
}

func (c *Clipboard) Execute(ctx context.Context, _ Args) Result {
	text, err := c.Read()
	if err != nil {
		log.Warn("Clipboard read failed", "err", err)
		return Fail(CodeFailed, err, "Clipboard access failed.")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return OK("Clipboard is empty.")
	}
	if utf8.RuneCountInString(text) <= longClipboard {
		return OK("Clipboard says: %s", text)
	}

	c.Speaker.Say("Content is long. Summarizing...")
	return Summarize(ctx, c.LLM, text)
}

// Summarize asks the model for a short bullet summary.
func Summarize(ctx context.Context, llm Completer, text string) Result {
	if utf8.RuneCountInString(text) > maxSummarize {
		return Fail(CodeFailed, nil, "Text too long for summarization")
	}

	summary, err := llm.Complete(ctx, "Summarize the following text in 3-4 bullet points:\n\n"+text)
	if err != nil {
		return Fail(CodeUnavailable, err, fmt.Sprintf("Summarization failed: %v", err))
	}
	return OK("%s", summary)
}

type Screenshot struct {
	Dir     string
	Capture func() (image.Image, error)
	Now     func() time.Time
}

func (s *Screenshot) Execute(context.Context, Args) Result {
	path, err := s.save()
	if err != nil {
		log.Error("Screenshot failed", "err", err)
		return Fail(CodeFailed, err, "Screenshot failed.")
	}
	log.Info("Screenshot saved", "path", path)
	return OK("Screenshot saved")
}

func (s *Screenshot) save() (string, error) {
	img, err := s.Capture()
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}

	path := filepath.Join(s.Dir, fmt.Sprintf("screenshot_%s.png", s.Now().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return path, nil
}
