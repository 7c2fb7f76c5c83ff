package nlu

import (
	"regexp"
	"strings"
)

type Command struct {
	Intent Intent
	Args   map[string]string
	Text   string
}

func (c Command) Arg(key string) string {
	return c.Args[key]
}

// Rule is one entry of the ordered classification table. Resolve runs only
// after Match accepted the utterance and must always produce a command.
type Rule struct {
	Name    string
	Match   func(q string) bool
	Resolve func(q string) Command
}

var (
	wikiRe     = regexp.MustCompile(`search|wikipedia`)
	googleRe   = regexp.MustCompile(`search google for`)
	youtubeRe  = regexp.MustCompile(`search youtube for|play`)
	weatherRe  = regexp.MustCompile(`weather in|weather`)
	rememberRe = regexp.MustCompile(`remember`)
	openRe     = regexp.MustCompile(`open`)
	cameraRe   = regexp.MustCompile(`camera (\d+)`)
)

// Rules is evaluated top to bottom and the first match wins. The order
// encodes priority between overlapping keyword sets and must not be sorted.
var Rules = []Rule{
	{
		Name:    "time",
		Match:   anyOf("time", "clock"),
		Resolve: fixed(Time),
	},
	{
		Name:    "date",
		Match:   anyOf("date", "today", "day"),
		Resolve: fixed(Date),
	},
	{
		Name:    "wikipedia",
		Match:   anyOf("wikipedia"),
		Resolve: strip(Wikipedia, ArgTopic, wikiRe),
	},
	{
		Name:    "web_search",
		Match:   allOf("search", "google"),
		Resolve: strip(WebSearch, ArgQuery, googleRe),
	},
	{
		Name:    "youtube",
		Match:   anyOf("youtube"),
		Resolve: strip(YouTube, ArgTopic, youtubeRe),
	},
	{
		Name:    "email",
		Match:   anyOf("email"),
		Resolve: fixed(Email),
	},
	{
		Name:  "message",
		Match: anyOf("whatsapp", "message"),
		Resolve: func(q string) Command {
			if strings.Contains(q, "add contact") {
				return newCommand(AddContact, q)
			}
			return newCommand(Message, q)
		},
	},
	{
		Name:    "screenshot",
		Match:   anyOf("screenshot"),
		Resolve: fixed(Screenshot),
	},
	{
		Name:    "clipboard",
		Match:   allOf("read", "clipboard"),
		Resolve: fixed(ClipboardRead),
	},
	{
		Name:    "weather",
		Match:   anyOf("weather"),
		Resolve: strip(Weather, ArgCity, weatherRe),
	},
	{
		Name:    "news",
		Match:   anyOf("news"),
		Resolve: fixed(News),
	},
	{
		Name:    "remember",
		Match:   anyOf("remember"),
		Resolve: strip(Remember, ArgText, rememberRe),
	},
	{
		Name:    "recall",
		Match:   anyOf("recall", "do you know"),
		Resolve: fixed(Recall),
	},
	{
		Name:  "open",
		Match: anyOf("open"),
		Resolve: func(q string) Command {
			// "file" is narrower than "open" and has to be checked first.
			if strings.Contains(q, "file") {
				return newCommand(OpenFile, q)
			}
			return strip(OpenApp, ArgApp, openRe)(q)
		},
	},
	{
		Name:    "surveillance",
		Match:   anyOf("cctv", "surveillance", "camera"),
		Resolve: surveillance,
	},
	{
		Name:    "exit",
		Match:   anyOf("exit", "quit", "bye", "goodbye"),
		Resolve: fixed(Exit),
	},
	{
		Name:    "help",
		Match:   anyOf("help"),
		Resolve: fixed(Help),
	},
}

// Classify maps an utterance with the wake word already removed to a command.
// Anything no rule accepts, including the empty string, goes to the LLM.
func Classify(utterance string) Command {
	q := strings.ToLower(strings.TrimSpace(utterance))

	for _, r := range Rules {
		if r.Match(q) {
			return r.Resolve(q)
		}
	}

	cmd := newCommand(Fallback, q)
	cmd.Args[ArgPrompt] = q
	return cmd
}

func surveillance(q string) Command {
	switch {
	case strings.Contains(q, "status"):
		return newCommand(SurveillanceStatus, q)
	case containsAny(q, "record", "start"):
		return newCommand(SurveillanceRecord, q)
	case strings.Contains(q, "stop"):
		return newCommand(SurveillanceStop, q)
	case containsAny(q, "view", "show"):
		cmd := newCommand(SurveillanceView, q)
		if m := cameraRe.FindStringSubmatch(q); m != nil {
			cmd.Args[ArgCamera] = m[1]
		}
		return cmd
	default:
		cmd := newCommand(OpenApp, q)
		cmd.Args[ArgApp] = "cctv"
		return cmd
	}
}

func newCommand(intent Intent, q string) Command {
	return Command{Intent: intent, Args: map[string]string{}, Text: q}
}

func fixed(intent Intent) func(string) Command {
	return func(q string) Command {
		return newCommand(intent, q)
	}
}

// strip removes every match of re from the utterance and keeps the trimmed
// remainder as the argument. An empty remainder leaves the argument unset.
func strip(intent Intent, key string, re *regexp.Regexp) func(string) Command {
	return func(q string) Command {
		cmd := newCommand(intent, q)
		if rest := strings.TrimSpace(re.ReplaceAllString(q, "")); rest != "" {
			cmd.Args[key] = rest
		}
		return cmd
	}
}

func anyOf(words ...string) func(string) bool {
	return func(q string) bool {
		return containsAny(q, words...)
	}
}

func allOf(words ...string) func(string) bool {
	return func(q string) bool {
		for _, w := range words {
			if !strings.Contains(q, w) {
				return false
			}
		}
		return true
	}
}

func containsAny(q string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}
