package skill

import (
	"context"
	"net/url"

	"jarvis/internal/nlu"
)

const DefaultYouTubeURL = "https://www.youtube.com/results"

type YouTube struct {
	BaseURL string
	Opener  Opener
}

func NewYouTube(opener Opener) *YouTube {
	return &YouTube{BaseURL: DefaultYouTubeURL, Opener: opener}
}

func (y *YouTube) Execute(_ context.Context, args Args) Result {
	topic := args[nlu.ArgTopic]

	q := url.Values{}
	q.Set("search_query", topic)
	if err := y.Opener.OpenURL(y.BaseURL + "?" + q.Encode()); err != nil {
		return Fail(CodeFailed, err, "YouTube access failed")
	}
	return OK("Playing %s", topic)
}
