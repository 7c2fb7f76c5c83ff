package assistant

import (
	"jarvis/internal/dialog"
	"jarvis/internal/nlu"
	"jarvis/internal/skill"
)

const DefaultCity = "Sydney"

// Skills is the set of handlers the assistant can dispatch to. A nil field
// leaves its intents unhandled, so they fall through to the language model.
type Skills struct {
	Clock      *skill.Clock
	Wiki       skill.Handler
	Search     skill.Handler
	YouTube    skill.Handler
	Email      skill.Handler
	WhatsApp   *skill.WhatsApp
	AddContact skill.Handler
	Screenshot skill.Handler
	Clipboard  skill.Handler
	Weather    skill.Handler
	News       skill.Handler
	Notes      *skill.Notes
	Apps       skill.Handler
	Files      skill.Handler
	Surveil    *skill.Surveil
	Ask        skill.Handler
}

// Flows builds the intent table with the prompts for every argument a
// command may be missing.
func Flows(s Skills) map[nlu.Intent]Flow {
	flows := map[nlu.Intent]Flow{
		nlu.Help: {Handler: skill.HandlerFunc(skill.Help)},
	}
	add := func(intent nlu.Intent, h skill.Handler, slots ...dialog.Slot) {
		if h != nil {
			flows[intent] = Flow{Slots: slots, Handler: h}
		}
	}

	if s.Clock != nil {
		add(nlu.Time, skill.HandlerFunc(s.Clock.Time))
		add(nlu.Date, skill.HandlerFunc(s.Clock.Date))
	}

	add(nlu.Wikipedia, s.Wiki, dialog.Slot{Name: nlu.ArgTopic, Prompt: "What should I search?"})
	add(nlu.WebSearch, s.Search, dialog.Slot{Name: nlu.ArgQuery, Prompt: "What should I search for?"})
	add(nlu.YouTube, s.YouTube, dialog.Slot{Name: nlu.ArgTopic, Prompt: "What should I search?"})

	add(nlu.Email, s.Email,
		dialog.Slot{Name: nlu.ArgTo, Prompt: "Recipient's email?"},
		dialog.Slot{Name: nlu.ArgSubject, Prompt: "Subject?"},
		dialog.Slot{Name: nlu.ArgBody, Prompt: "Message?"},
	)

	if s.WhatsApp != nil {
		add(nlu.Message, s.WhatsApp,
			dialog.Slot{Name: nlu.ArgContact, Prompt: "Who to message?", Validate: s.WhatsApp.KnownContact},
			dialog.Slot{Name: nlu.ArgText, Prompt: "Your message?"},
		)
	}
	add(nlu.AddContact, s.AddContact,
		dialog.Slot{Name: nlu.ArgName, Prompt: "Contact name?"},
		dialog.Slot{Name: nlu.ArgNumber, Prompt: "Phone number?"},
	)

	add(nlu.Screenshot, s.Screenshot)
	add(nlu.ClipboardRead, s.Clipboard)
	add(nlu.Weather, s.Weather, dialog.Slot{Name: nlu.ArgCity, Prompt: "Which city?", Default: DefaultCity})
	add(nlu.News, s.News)

	if s.Notes != nil {
		add(nlu.Remember, skill.HandlerFunc(s.Notes.Remember),
			dialog.Slot{Name: nlu.ArgText, Prompt: "What should I remember?"})
		add(nlu.Recall, skill.HandlerFunc(s.Notes.Recall))
	}

	add(nlu.OpenApp, s.Apps, dialog.Slot{Name: nlu.ArgApp, Prompt: "Which application?"})
	add(nlu.OpenFile, s.Files, dialog.Slot{Name: nlu.ArgFilename, Prompt: "What file should I open?"})

	if s.Surveil != nil {
		add(nlu.SurveillanceStatus, skill.HandlerFunc(s.Surveil.Status))
		add(nlu.SurveillanceRecord, skill.HandlerFunc(s.Surveil.Record))
		add(nlu.SurveillanceStop, skill.HandlerFunc(s.Surveil.Stop))
		add(nlu.SurveillanceView, skill.HandlerFunc(s.Surveil.View))
	}

	add(nlu.Fallback, s.Ask)
	return flows
}
