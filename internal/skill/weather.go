package skill

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	log "log/slog"

	"github.com/tidwall/gjson"

	"jarvis/internal/nlu"
)

const (
	DefaultWeatherURL = "http://api.openweathermap.org/data/2.5/weather"
	weatherTimeout    = 5 * time.Second
)

type Weather struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewWeather(apiKey string, client *http.Client) *Weather {
	return &Weather{APIKey: apiKey, BaseURL: DefaultWeatherURL, Client: client}
}

func (w *Weather) Ready() (Result, bool) {
	if w.APIKey == "" {
		return Fail(CodeMisconfigured, nil, "Weather API key missing."), false
	}
	return Result{}, true
}

func (w *Weather) Execute(ctx context.Context, args Args) Result {
	if res, ok := w.Ready(); !ok {
		return res
	}
	city := args[nlu.ArgCity]

	ctx, cancel := context.WithTimeout(ctx, weatherTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", city)
	q.Set("units", "metric")
	q.Set("appid", w.APIKey)

	body, status, err := get(ctx, w.Client, w.BaseURL+"?"+q.Encode())
	if err != nil {
		log.Warn("Weather request failed", "city", city, "err", err)
		return Fail(CodeUnavailable, err, "Weather check failed.")
	}
	if status != http.StatusOK {
		return Fail(CodeUnavailable, fmt.Errorf("status %d", status), "Weather service unavailable.")
	}

	data := gjson.ParseBytes(body)
	temp := data.Get("main.temp")
	desc := data.Get("weather.0.description")
	if !temp.Exists() || !desc.Exists() {
		return Fail(CodeUnavailable, fmt.Errorf("unexpected payload"), "Weather check failed.")
	}

	return OK("In %s, it's %d°C with %s", city, int(math.Round(temp.Float())), desc.String())
}

func get(ctx context.Context, client *http.Client, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

const userAgent = "jarvis/1.0 (voice assistant)"
