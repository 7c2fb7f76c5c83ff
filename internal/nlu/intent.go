package nlu

type Intent string

const (
	Time               Intent = "time"
	Date               Intent = "date"
	Wikipedia          Intent = "wikipedia"
	WebSearch          Intent = "web_search"
	YouTube            Intent = "youtube"
	Email              Intent = "email"
	Message            Intent = "message"
	AddContact         Intent = "add_contact"
	Screenshot         Intent = "screenshot"
	ClipboardRead      Intent = "clipboard_read"
	Weather            Intent = "weather"
	News               Intent = "news"
	Remember           Intent = "remember"
	Recall             Intent = "recall"
	OpenApp            Intent = "open_app"
	OpenFile           Intent = "open_file"
	SurveillanceStatus Intent = "surveillance_status"
	SurveillanceRecord Intent = "surveillance_record"
	SurveillanceStop   Intent = "surveillance_stop"
	SurveillanceView   Intent = "surveillance_view"
	Exit               Intent = "exit"
	Help               Intent = "help"
	Fallback           Intent = "llm_fallback"
)

// Argument keys filled by extractors and slot prompts.
const (
	ArgTopic    = "topic"
	ArgQuery    = "query"
	ArgCity     = "city"
	ArgText     = "text"
	ArgApp      = "app"
	ArgCamera   = "camera"
	ArgPrompt   = "prompt"
	ArgTo       = "to"
	ArgSubject  = "subject"
	ArgBody     = "body"
	ArgContact  = "contact"
	ArgName     = "name"
	ArgNumber   = "number"
	ArgFilename = "filename"
)

func (i Intent) String() string {
	return string(i)
}
