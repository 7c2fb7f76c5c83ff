package skill

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clip(text string, err error) func() (string, error) {
	return func() (string, error) { return text, err }
}

func TestClipboard(t *testing.T) {
	tests := []struct {
		name string
		read func() (string, error)
		want string
	}{
		{"short", clip("  remember the milk ", nil), "Clipboard says: remember the milk"},
		{"empty", clip(" \n ", nil), "Clipboard is empty."},
		{"error", clip("", errors.New("no display")), "Error: Clipboard access failed."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Clipboard{Read: tt.read, LLM: &fakeLLM{}, Speaker: &transcript{}}
			assert.Equal(t, tt.want, c.Execute(context.Background(), nil).Spoken())
		})
	}
}

func TestClipboard_LongIsSummarized(t *testing.T) {
	llm := &fakeLLM{answer: "- point one\n- point two"}
	sp := &transcript{}
	long := strings.Repeat("word ", 200)

	c := &Clipboard{Read: clip(long, nil), LLM: llm, Speaker: sp}
	res := c.Execute(context.Background(), nil)

	assert.Equal(t, "- point one\n- point two", res.Text)
	assert.Equal(t, []string{"Content is long. Summarizing..."}, sp.lines())
	require.Len(t, llm.prompts, 1)
	assert.True(t, strings.HasPrefix(llm.prompts[0], "Summarize the following text in 3-4 bullet points:"))
}

func TestClipboard_CountsCharacters(t *testing.T) {
	// 400 two-byte characters is 800 bytes but still short.
	text := strings.Repeat("é", 400)
	llm := &fakeLLM{}
	c := &Clipboard{Read: clip(text, nil), LLM: llm, Speaker: &transcript{}}

	assert.Equal(t, "Clipboard says: "+text, c.Execute(context.Background(), nil).Text)
	assert.Empty(t, llm.prompts)
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()

	res := Summarize(ctx, &fakeLLM{}, strings.Repeat("x", maxSummarize+1))
	assert.Equal(t, "Error: Text too long for summarization", res.Spoken())

	res = Summarize(ctx, &fakeLLM{answer: "ok"}, strings.Repeat("é", maxSummarize))
	assert.Equal(t, "ok", res.Spoken())

	res = Summarize(ctx, &fakeLLM{err: errors.New("rate limited")}, "short text")
	assert.Equal(t, "Error: Summarization failed: rate limited", res.Spoken())
}

func TestScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots")
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	s := &Screenshot{
		Dir:     dir,
		Capture: func() (image.Image, error) { return img, nil },
		Now:     func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) },
	}

	assert.Equal(t, "Screenshot saved", s.Execute(context.Background(), nil).Text)

	f, err := os.Open(filepath.Join(dir, "screenshot_20240309_140507.png"))
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestScreenshot_CaptureFails(t *testing.T) {
	s := &Screenshot{
		Dir:     t.TempDir(),
		Capture: func() (image.Image, error) { return nil, errors.New("no display") },
		Now:     time.Now,
	}

	res := s.Execute(context.Background(), nil)
	assert.Equal(t, CodeFailed, res.Code)
	assert.Equal(t, "Error: Screenshot failed.", res.Spoken())
}
