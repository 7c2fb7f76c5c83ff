package skill

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	log "log/slog"

	"github.com/tidwall/gjson"

	"jarvis/internal/nlu"
)

const (
	DefaultWikiURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"
	wikiTimeout    = 10 * time.Second
	wikiSentences  = 2
)

var sentenceEnd = regexp.MustCompile(`[.!?](\s+|$)`)

type Wiki struct {
	BaseURL string
	Client  *http.Client
}

func NewWiki(client *http.Client) *Wiki {
	return &Wiki{BaseURL: DefaultWikiURL, Client: client}
}

func (w *Wiki) Execute(ctx context.Context, args Args) Result {
	topic := args[nlu.ArgTopic]

	ctx, cancel := context.WithTimeout(ctx, wikiTimeout)
	defer cancel()

	title := strings.ReplaceAll(strings.TrimSpace(topic), " ", "_")
	body, status, err := get(ctx, w.Client, w.BaseURL+url.PathEscape(title)+"?redirect=true")
	if err == nil && status != http.StatusOK {
		err = fmt.Errorf("status %d", status)
	}
	if err != nil {
		log.Warn("Wikipedia lookup failed", "topic", topic, "err", err)
		return Fail(CodeNotFound, err, "Information not found")
	}

	extract := strings.TrimSpace(gjson.GetBytes(body, "extract").String())
	if extract == "" {
		return Fail(CodeNotFound, fmt.Errorf("empty extract"), "Information not found")
	}

	return OK("According to Wikipedia: %s", firstSentences(extract, wikiSentences))
}

func firstSentences(text string, n int) string {
	ends := sentenceEnd.FindAllStringIndex(text, n)
	if len(ends) < n {
		return text
	}
	return strings.TrimSpace(text[:ends[n-1][0]+1])
}
