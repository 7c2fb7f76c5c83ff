// Package assistant runs the wake-word command loop: listen, classify, fill
// missing arguments, run the skill and speak its result.
package assistant

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	log "log/slog"

	"github.com/google/uuid"

	"jarvis/internal/dialog"
	"jarvis/internal/nlu"
	"jarvis/internal/skill"
)

const (
	DefaultWakeWord = "jarvis"

	msgWakeReprompt = "Please say 'Jarvis' before your command"
	msgRetry        = "Sorry, let's try that again"
	msgExit         = "Goodbye Sir! Have a great day."
	msgInterrupt    = "Goodbye!"
	msgNoHandler    = "I'm having trouble processing that request."
	msgReady        = "Jarvis at your service. How can I assist you today?"
)

type State int

const (
	Idle State = iota
	Listening
	Dispatching
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Listening:
		return "listening"
	case Dispatching:
		return "dispatching"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

type Speaker interface {
	Say(text string)
}

// Flow is what the assistant does with one intent: prompt for Slots, then
// run Handler.
type Flow struct {
	Slots   []dialog.Slot
	Handler skill.Handler
}

type Config struct {
	WakeWord string
	// OnWake runs every time the wake word is heard.
	OnWake      func()
	Clock       *skill.Clock
	Timeout     time.Duration
	PhraseLimit time.Duration
}

type Assistant struct {
	source  dialog.Source
	speaker Speaker
	filler  *dialog.Filler
	flows   map[nlu.Intent]Flow

	classify func(string) nlu.Command
	wake     *regexp.Regexp
	onWake   func()
	clock    *skill.Clock
	timeout  time.Duration
	phrase   time.Duration

	state State
}

func New(src dialog.Source, sp Speaker, flows map[nlu.Intent]Flow, cfg Config) *Assistant {
	if cfg.WakeWord == "" {
		cfg.WakeWord = DefaultWakeWord
	}
	if cfg.Clock == nil {
		cfg.Clock = skill.NewClock()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = dialog.DefaultTimeout
	}
	if cfg.PhraseLimit <= 0 {
		cfg.PhraseLimit = dialog.DefaultPhraseLimit
	}

	filler := dialog.New(src, sp)
	filler.Timeout = cfg.Timeout
	filler.PhraseLimit = cfg.PhraseLimit

	return &Assistant{
		source:   src,
		speaker:  sp,
		filler:   filler,
		flows:    flows,
		classify: nlu.Classify,
		wake:     regexp.MustCompile(`(?i)` + regexp.QuoteMeta(cfg.WakeWord)),
		onWake:   cfg.OnWake,
		clock:    cfg.Clock,
		timeout:  cfg.Timeout,
		phrase:   cfg.PhraseLimit,
	}
}

func (a *Assistant) State() State {
	return a.state
}

// Greet speaks the startup greeting.
func (a *Assistant) Greet(ctx context.Context) {
	a.speaker.Say("Welcome Back Sir!")
	a.speaker.Say(a.clock.Greeting())
	a.speaker.Say(a.clock.Time(ctx, nil).Text)
	a.speaker.Say(a.clock.Date(ctx, nil).Text)
	a.speaker.Say(msgReady)
}

// Run loops until the exit command, returning nil, or until ctx is done,
// returning ctx.Err().
func (a *Assistant) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			a.speaker.Say(msgInterrupt)
			a.state = Terminated
			return err
		}
		if a.Turn(ctx) {
			return nil
		}
	}
}

// Turn handles one utterance. It reports true once the assistant has
// terminated.
func (a *Assistant) Turn(ctx context.Context) bool {
	a.state = Listening
	utterance := a.source.Listen(ctx, a.timeout, a.phrase)
	a.state = Idle

	if ctx.Err() != nil || utterance == dialog.Abort {
		return false
	}

	if !a.wake.MatchString(utterance) {
		a.speaker.Say(msgWakeReprompt)
		return false
	}
	if a.onWake != nil {
		a.onWake()
	}

	text := strings.TrimSpace(a.wake.ReplaceAllString(utterance, ""))
	if text == "" {
		return false
	}

	exit := a.dispatch(ctx, uuid.NewString(), text)
	if exit {
		a.state = Terminated
	} else {
		a.state = Idle
	}
	return exit
}

func (a *Assistant) dispatch(ctx context.Context, turn, text string) (exit bool) {
	a.state = Dispatching
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Dispatch panicked", "turn", turn, "text", text, "panic", r)
			a.speaker.Say(msgRetry)
			exit = false
		}
	}()

	cmd := a.classify(text)
	log.Info("Command", "turn", turn, "intent", cmd.Intent, "args", cmd.Args)

	if cmd.Intent == nlu.Exit {
		a.speaker.Say(msgExit)
		return true
	}

	flow, ok := a.flows[cmd.Intent]
	if !ok {
		flow, ok = a.flows[nlu.Fallback]
		cmd.Args = map[string]string{nlu.ArgPrompt: cmd.Text}
	}
	if !ok || flow.Handler == nil {
		log.Warn("No handler for intent", "turn", turn, "intent", cmd.Intent)
		a.speaker.Say(msgNoHandler)
		return false
	}

	if p, ok := flow.Handler.(skill.Precondition); ok {
		if res, ready := p.Ready(); !ready {
			log.Warn("Skill not ready", "turn", turn, "intent", cmd.Intent, "code", res.Code)
			a.speaker.Say(res.Spoken())
			return false
		}
	}

	args := skill.Args{}
	for k, v := range cmd.Args {
		args[k] = v
	}

	if err := a.filler.FillAll(ctx, flow.Slots, args); err != nil {
		var rej *dialog.Rejection
		switch {
		case errors.As(err, &rej):
			log.Info("Command rejected", "turn", turn, "slot", rej.Slot)
			a.speaker.Say(rej.Message)
		case errors.Is(err, dialog.ErrAborted):
			log.Debug("Command aborted", "turn", turn, "intent", cmd.Intent)
		default:
			log.Debug("Slot filling stopped", "turn", turn, "err", err)
		}
		return false
	}

	res := flow.Handler.Execute(ctx, args)
	if res.Failed() {
		log.Warn("Skill failed", "turn", turn, "intent", cmd.Intent, "code", res.Code, "err", res.Err)
	} else {
		log.Debug("Skill done", "turn", turn, "intent", cmd.Intent, "took", time.Since(started))
	}
	a.speaker.Say(res.Spoken())
	return false
}
