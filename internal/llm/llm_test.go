package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "llama3-8b-8192",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "  Four, sir.  "}
  }]
}`

func TestComplete(t *testing.T) {
	var got map[string]any
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completion)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "gsk-test", BaseURL: srv.URL})
	answer, err := c.Complete(context.Background(), "what is two plus two")

	require.NoError(t, err)
	assert.Equal(t, "Four, sir.", answer)
	assert.Equal(t, "Bearer gsk-test", auth)
	assert.Equal(t, DefaultModel, got["model"])
	assert.EqualValues(t, 0.5, got["temperature"])
	assert.EqualValues(t, 256, got["max_tokens"])
}

func TestComplete_NoKey(t *testing.T) {
	_, err := New(Config{}).Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestComplete_ServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(Config{APIKey: "k", BaseURL: srv.URL}).Complete(context.Background(), "hello")

	assert.Error(t, err)
	assert.Equal(t, 1, calls, "requests are not retried")
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"x","object":"chat.completion","created":0,"model":"m","choices":[]}`)
	}))
	defer srv.Close()

	_, err := New(Config{APIKey: "k", BaseURL: srv.URL}).Complete(context.Background(), "hello")
	assert.ErrorContains(t, err, "no choices")
}
