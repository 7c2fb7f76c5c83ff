package skill

import (
	"context"
	"fmt"
	"strings"

	log "log/slog"

	"jarvis/internal/nlu"
)

const (
	askApology = "I'm having trouble processing that request."
	helpText   = "I can: tell time/date, search web/YouTube, send emails/messages, " +
		"read news/weather, take screenshots, remember notes, open apps/files, " +
		"and control CCTV systems. Say 'exit' when done."
)

// Ask hands anything the classifier did not recognise to the language model.
// A model failure is still a successful turn with an apology.
type Ask struct {
	LLM Completer
}

func (a *Ask) Execute(ctx context.Context, args Args) Result {
	prompt := fmt.Sprintf("User said: %s. Respond concisely as Jarvis assistant.", args[nlu.ArgPrompt])

	answer, err := a.LLM.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		log.Warn("LLM fallback failed", "err", err)
		return OK(askApology)
	}
	return OK("%s", strings.TrimSpace(answer))
}

func Help(context.Context, Args) Result {
	return OK(helpText)
}
