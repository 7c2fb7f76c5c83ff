package skill

import (
	"context"
	"sync"
)

type fakeOpener struct {
	mu    sync.Mutex
	urls  []string
	files []string
	err   error
}

func (o *fakeOpener) OpenURL(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return o.err
}

func (o *fakeOpener) OpenFile(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.files = append(o.files, path)
	return o.err
}

type fakeLLM struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

type transcript struct {
	mu   sync.Mutex
	said []string
}

func (t *transcript) Say(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.said = append(t.said, text)
}

func (t *transcript) lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.said...)
}
