// Package dialog asks the user for the arguments a command is missing.
package dialog

import (
	"context"
	"errors"
	"strings"
	"time"

	log "log/slog"
)

// Abort is returned by a Source when the user said nothing usable before
// the listen timeout.
const Abort = "none"

const (
	DefaultTimeout     = 5 * time.Second
	DefaultPhraseLimit = 8 * time.Second
)

var ErrAborted = errors.New("dialog: aborted")

// Source produces one lowercase utterance. It returns Abort when nothing was
// understood; it never blocks longer than roughly timeout plus phraseLimit.
type Source interface {
	Listen(ctx context.Context, timeout, phraseLimit time.Duration) string
}

type Speaker interface {
	Say(text string)
}

type Slot struct {
	Name   string
	Prompt string
	// Default replaces an empty or aborted answer instead of aborting the
	// whole command.
	Default string
	// Validate runs on the answer; a non-nil error rejects the command and
	// its text is spoken to the user.
	Validate func(answer string) error
}

// Rejection is returned by FillAll when a slot value failed validation.
type Rejection struct {
	Slot    string
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

type Filler struct {
	Source      Source
	Speaker     Speaker
	Timeout     time.Duration
	PhraseLimit time.Duration
}

func New(src Source, sp Speaker) *Filler {
	return &Filler{
		Source:      src,
		Speaker:     sp,
		Timeout:     DefaultTimeout,
		PhraseLimit: DefaultPhraseLimit,
	}
}

// Fill speaks prompt and returns the next utterance, or Abort.
func (f *Filler) Fill(ctx context.Context, prompt string) string {
	f.Speaker.Say(prompt)

	answer := strings.TrimSpace(f.Source.Listen(ctx, f.Timeout, f.PhraseLimit))
	if answer == "" || answer == Abort {
		return Abort
	}
	return answer
}

// FillAll prompts for every slot that args does not already hold, in order.
// On the first abort it stops without asking for the remaining slots and
// returns ErrAborted. Values are written into args as they arrive.
func (f *Filler) FillAll(ctx context.Context, slots []Slot, args map[string]string) error {
	for _, slot := range slots {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if v, ok := args[slot.Name]; ok && v != "" {
			continue
		}

		answer := f.Fill(ctx, slot.Prompt)
		if answer == Abort {
			if slot.Default == "" {
				log.Debug("Slot aborted", "slot", slot.Name)
				return ErrAborted
			}
			answer = slot.Default
		}

		if slot.Validate != nil {
			if err := slot.Validate(answer); err != nil {
				return &Rejection{Slot: slot.Name, Message: err.Error()}
			}
		}
		args[slot.Name] = answer
	}
	return nil
}
