package skill

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "log/slog"

	"github.com/tidwall/gjson"
)

const (
	DefaultNewsURL = "https://newsapi.org/v2/top-headlines"
	newsTimeout    = 10 * time.Second
)

type News struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewNews(apiKey string, client *http.Client) *News {
	return &News{APIKey: apiKey, BaseURL: DefaultNewsURL, Client: client}
}

func (n *News) Ready() (Result, bool) {
	if n.APIKey == "" {
		return Fail(CodeMisconfigured, nil, "News API key missing."), false
	}
	return Result{}, true
}

func (n *News) Execute(ctx context.Context, _ Args) Result {
	if res, ok := n.Ready(); !ok {
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, newsTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("category", "technology")
	q.Set("language", "en")
	q.Set("pageSize", "3")
	q.Set("apiKey", n.APIKey)

	body, status, err := get(ctx, n.Client, n.BaseURL+"?"+q.Encode())
	if err == nil && status != http.StatusOK {
		err = fmt.Errorf("status %d: %s", status, gjson.GetBytes(body, "message").String())
	}
	if err != nil {
		log.Warn("News request failed", "err", err)
		return Fail(CodeUnavailable, err, "News service unavailable.")
	}

	var headlines []string
	for _, title := range gjson.GetBytes(body, "articles.#.title").Array() {
		if t := strings.TrimSpace(title.String()); t != "" {
			headlines = append(headlines, t)
		}
	}
	if len(headlines) == 0 {
		return OK("No tech news available.")
	}

	return OK("Top tech news: %s", strings.Join(headlines, ". "))
}
