// Package skill holds the capability handlers the assistant dispatches to.
//
// A handler never returns an error for a failure it expects (network down,
// missing credentials, file not found). It reports the failure in its Result
// instead, and the assistant turns that into speech.
package skill

import (
	"context"
	"fmt"
)

type Code int

const (
	CodeOK Code = iota
	// CodeUnavailable covers network errors and non-success remote replies.
	CodeUnavailable
	// CodeMisconfigured means a key or credential is missing.
	CodeMisconfigured
	CodeNotFound
	// CodeFailed is a local OS, file or device failure.
	CodeFailed
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeUnavailable:
		return "unavailable"
	case CodeMisconfigured:
		return "misconfigured"
	case CodeNotFound:
		return "not_found"
	case CodeFailed:
		return "failed"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

type Result struct {
	Text string
	Code Code
	// Err is the underlying cause for logs; it is never spoken.
	Err error
}

func OK(format string, args ...any) Result {
	return Result{Text: fmt.Sprintf(format, args...)}
}

func Fail(code Code, err error, text string) Result {
	return Result{Text: text, Code: code, Err: err}
}

func (r Result) Failed() bool {
	return r.Code != CodeOK
}

// Spoken is the text the assistant says for this result.
func (r Result) Spoken() string {
	if r.Failed() {
		return "Error: " + r.Text
	}
	return r.Text
}

type Args map[string]string

type Handler interface {
	Execute(ctx context.Context, args Args) Result
}

type HandlerFunc func(ctx context.Context, args Args) Result

func (f HandlerFunc) Execute(ctx context.Context, args Args) Result {
	return f(ctx, args)
}

// Precondition is implemented by handlers that can tell before any prompt
// whether they are able to run at all, e.g. because an API key is missing.
type Precondition interface {
	Ready() (Result, bool)
}

// Speaker is the narrow speech boundary handlers use for progress messages
// and for outcomes of work that finishes after Execute returned.
type Speaker interface {
	Say(text string)
}

// Opener shows a URL or local file to the user.
type Opener interface {
	OpenURL(url string) error
	OpenFile(path string) error
}

// Completer is the language model boundary.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
