// Package notify gives the user feedback outside of speech: an audible cue
// and desktop notifications.
package notify

import (
	log "log/slog"

	"github.com/gen2brain/beeep"
)

const appName = "Jarvis"

type Notifier struct {
	enabled bool
	send    func(title, message, icon string) error
}

func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled, send: beeep.Notify}
}

func (n *Notifier) Notify(message string) {
	if !n.enabled {
		return
	}
	if err := n.send(appName, message, ""); err != nil {
		log.Debug("Desktop notification failed", "err", err)
	}
}

type Cue struct {
	Beeper   *Beeper
	Notifier *Notifier
}

// Wake signals that the wake word was heard. Both parts are optional and
// failures are only logged.
func (c *Cue) Wake() {
	if c.Notifier != nil {
		c.Notifier.Notify("Listening...")
	}
	if c.Beeper != nil {
		if err := c.Beeper.Beep(); err != nil {
			log.Debug("Wake cue failed", "err", err)
		}
	}
}
