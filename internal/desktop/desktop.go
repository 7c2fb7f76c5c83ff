// Package desktop adapts operating system facilities to the skill
// interfaces: browser and file opening, the clipboard, screen capture and
// synthetic keyboard input.
package desktop

import (
	"errors"
	"fmt"
	"image"

	"github.com/atotto/clipboard"
	"github.com/kbinani/screenshot"
	"github.com/pkg/browser"
)

type Opener struct{}

func (Opener) OpenURL(url string) error {
	return browser.OpenURL(url)
}

func (Opener) OpenFile(path string) error {
	return browser.OpenFile(path)
}

func ReadClipboard() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("clipboard unsupported on this system")
	}
	return clipboard.ReadAll()
}

// CaptureScreen grabs the primary display.
func CaptureScreen() (image.Image, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, errors.New("no active display")
	}

	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return img, nil
}
