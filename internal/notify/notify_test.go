package notify

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sent struct {
	title, message string
}

func recordingNotifier(enabled bool, out *[]sent, err error) *Notifier {
	n := New(enabled)
	n.send = func(title, message, _ string) error {
		*out = append(*out, sent{title, message})
		return err
	}
	return n
}

func TestNotifier(t *testing.T) {
	var got []sent
	recordingNotifier(true, &got, nil).Notify("Message sent.")

	assert.Equal(t, []sent{{"Jarvis", "Message sent."}}, got)
}

func TestNotifier_Disabled(t *testing.T) {
	var got []sent
	recordingNotifier(false, &got, nil).Notify("Listening...")

	assert.Empty(t, got)
}

func TestCue_Wake(t *testing.T) {
	var got []sent
	c := &Cue{
		Beeper:   NewBeeper(filepath.Join(t.TempDir(), "missing.mp3")),
		Notifier: recordingNotifier(true, &got, errors.New("no dbus")),
	}

	c.Wake()

	assert.Equal(t, []sent{{"Jarvis", "Listening..."}}, got)
}

func TestBeeper_MissingFile(t *testing.T) {
	err := NewBeeper(filepath.Join(t.TempDir(), "missing.mp3")).Beep()
	assert.ErrorContains(t, err, "open cue")
}
