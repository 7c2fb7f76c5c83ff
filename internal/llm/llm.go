// Package llm talks to an OpenAI-compatible chat completion endpoint. Groq
// is the default.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama3-8b-8192"

	temperature    = 0.5
	maxTokens      = 256
	requestTimeout = 30 * time.Second
)

var ErrNoAPIKey = errors.New("llm: API key not set")

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// HTTPClient is optional; set it to route through a proxy.
	HTTPClient *http.Client
}

type Client struct {
	api     openai.Client
	model   string
	enabled bool
}

// New never fails. Without an API key every Complete returns ErrNoAPIKey.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/"),
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &Client{
		api:     openai.NewClient(opts...),
		model:   cfg.Model,
		enabled: cfg.APIKey != "",
	}
}

// Complete sends prompt as a single user message and returns the trimmed
// reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.enabled {
		return "", ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty message content")
	}

	log.Debug("Completed", "model", c.model, "chars", len(content))
	return content, nil
}
