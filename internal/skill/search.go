package skill

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "log/slog"

	"github.com/PuerkitoBio/goquery"

	"jarvis/internal/nlu"
)

const (
	DefaultSearchPage    = "https://duckduckgo.com/"
	DefaultSearchResults = "https://html.duckduckgo.com/html/"
	searchTimeout        = 10 * time.Second
	maxSnippets          = 3
)

type Search struct {
	PageURL    string
	ResultsURL string
	Client     *http.Client
	Opener     Opener
	LLM        Completer
}

func NewSearch(client *http.Client, opener Opener, llm Completer) *Search {
	return &Search{
		PageURL:    DefaultSearchPage,
		ResultsURL: DefaultSearchResults,
		Client:     client,
		Opener:     opener,
		LLM:        llm,
	}
}

func (s *Search) Execute(ctx context.Context, args Args) Result {
	query := args[nlu.ArgQuery]

	q := url.Values{}
	q.Set("q", query)
	if err := s.Opener.OpenURL(s.PageURL + "?" + q.Encode()); err != nil {
		return Fail(CodeFailed, err, "Search failed.")
	}

	prompt := fmt.Sprintf("Search the web for: '%s' and summarize the most relevant information in 3 sentences.", query)
	if snippets := s.snippets(ctx, query); len(snippets) > 0 {
		prompt += "\n\nTop results:\n- " + strings.Join(snippets, "\n- ")
	}

	summary, err := s.LLM.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(summary) == "" {
		log.Warn("Search summary unavailable", "query", query, "err", err)
		return OK("Showing results for %s", query)
	}

	return OK("Showing results for %s. Summary: %s", query, strings.TrimSpace(summary))
}

// snippets scrapes the HTML results page. Failures only cost the LLM some
// context, so they are logged and swallowed.
func (s *Search) snippets(ctx context.Context, query string) []string {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", query)
	body, status, err := get(ctx, s.Client, s.ResultsURL+"?"+q.Encode())
	if err == nil && status != http.StatusOK {
		err = fmt.Errorf("status %d", status)
	}
	if err != nil {
		log.Debug("Search results fetch failed", "err", err)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Debug("Search results parse failed", "err", err)
		return nil
	}

	var out []string
	doc.Find(".result__snippet").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := strings.Join(strings.Fields(sel.Text()), " "); text != "" {
			out = append(out, text)
		}
		return len(out) < maxSnippets
	})
	return out
}
