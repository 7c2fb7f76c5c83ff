package skill

import (
	"context"
	"errors"
	"strings"

	log "log/slog"

	"jarvis/internal/nlu"
	"jarvis/internal/store"
)

type Notes struct {
	Store *store.Notes
}

func (n *Notes) Remember(_ context.Context, args Args) Result {
	if _, err := n.Store.Append(args[nlu.ArgText]); err != nil {
		log.Error("Failed to save note", "err", err)
		return Fail(CodeFailed, err, "Failed to save note.")
	}
	return OK("I've remembered that")
}

func (n *Notes) Recall(context.Context, Args) Result {
	lines, err := n.Store.Lines()
	switch {
	case errors.Is(err, store.ErrNotFound):
		return OK("No notes yet.")
	case err != nil:
		log.Error("Failed to read notes", "err", err)
		return Fail(CodeFailed, err, "Failed to access notes.")
	case len(lines) == 0:
		return OK("No notes saved.")
	}
	return OK("Your notes: %s", strings.Join(lines, ", "))
}
