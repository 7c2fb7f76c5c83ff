package skill

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	log "log/slog"

	"jarvis/internal/nlu"
	"jarvis/internal/store"
	"jarvis/internal/task"
)

// Keyboard drives synthetic key presses into whatever window has focus.
type Keyboard interface {
	Type(text string)
	Tap(key string)
}

type AddContact struct {
	Book *store.Contacts
}

func (a *AddContact) Execute(_ context.Context, args Args) Result {
	name := args[nlu.ArgName]
	if err := a.Book.Put(name, args[nlu.ArgNumber]); err != nil {
		log.Error("Failed to save contact", "name", name, "err", err)
		return Fail(CodeFailed, err, "Failed to save contact")
	}
	return OK("Added %s", name)
}

const (
	DefaultWhatsAppURL = "https://web.whatsapp.com/send"
	whatsAppWait       = 15 * time.Second
)

// WhatsApp sends through WhatsApp Web: open the prefilled chat, give the page
// time to load, then press Enter. All of that happens on a detached task.
type WhatsApp struct {
	Book     *store.Contacts
	BaseURL  string
	Wait     time.Duration
	Opener   Opener
	Keyboard Keyboard
	Speaker  Speaker
}

func NewWhatsApp(book *store.Contacts, opener Opener, kb Keyboard, sp Speaker) *WhatsApp {
	return &WhatsApp{
		Book:     book,
		BaseURL:  DefaultWhatsAppURL,
		Wait:     whatsAppWait,
		Opener:   opener,
		Keyboard: kb,
		Speaker:  sp,
	}
}

// KnownContact rejects names that are not in the book.
func (w *WhatsApp) KnownContact(name string) error {
	if !w.Book.Has(name) {
		return fmt.Errorf("Contact not found. Say 'add contact' to add %s", name)
	}
	return nil
}

func (w *WhatsApp) Execute(_ context.Context, args Args) Result {
	name := args[nlu.ArgContact]
	number, err := w.Book.Lookup(name)
	if err != nil {
		return Fail(CodeNotFound, err, fmt.Sprintf("Contact not found. Say 'add contact' to add %s", name))
	}

	q := url.Values{}
	q.Set("phone", phoneDigits(number))
	q.Set("text", args[nlu.ArgText])
	link := w.BaseURL + "?" + q.Encode()

	task.Go("whatsapp", func() {
		if err := w.Opener.OpenURL(link); err != nil {
			log.Error("WhatsApp send failed", "contact", name, "err", err)
			w.Speaker.Say("Failed to send WhatsApp.")
			return
		}
		time.Sleep(w.Wait)
		w.Keyboard.Tap("enter")
		w.Speaker.Say("Message sent.")
	})

	return OK("Sending message now...")
}

// phoneDigits keeps a leading plus and the digits of a spoken number.
func phoneDigits(number string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(number) {
		if r >= '0' && r <= '9' || r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
