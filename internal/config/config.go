// Package config collects the assistant's settings from the environment.
// Call godotenv first so a .env file can supply them.
package config

import (
	"os"
	"strconv"
	"strings"

	log "log/slog"
)

const (
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 465
)

type LLM struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Email struct {
	User string
	Pass string
	Host string
	Port int
}

type CCTV struct {
	URL  string
	User string
	Pass string
	Path string
}

type Config struct {
	LLM        LLM
	WeatherKey string
	NewsKey    string
	Email      Email
	CCTV       CCTV
	WakeWord   string
}

// FromEnv never fails. Missing keys leave the skills that need them
// reporting themselves as not configured.
func FromEnv() Config {
	return Config{
		LLM: LLM{
			APIKey:  os.Getenv("GROQ_API_KEY"),
			BaseURL: os.Getenv("LLM_BASE_URL"),
			Model:   os.Getenv("LLM_MODEL"),
		},
		WeatherKey: os.Getenv("WEATHER_API_KEY"),
		NewsKey:    os.Getenv("NEWS_API_KEY"),
		Email: Email{
			User: os.Getenv("EMAIL_USER"),
			Pass: os.Getenv("EMAIL_PASS"),
			Host: stringOr("SMTP_HOST", DefaultSMTPHost),
			Port: intOr("SMTP_PORT", DefaultSMTPPort),
		},
		CCTV: CCTV{
			URL:  os.Getenv("CCTV_URL"),
			User: os.Getenv("CCTV_USER"),
			Pass: os.Getenv("CCTV_PASS"),
			Path: os.Getenv("CCTV_PATH"),
		},
		WakeWord: strings.ToLower(stringOr("JARVIS_WAKE_WORD", "jarvis")),
	}
}

// Missing lists the unset keys, for the startup log.
func (c Config) Missing() []string {
	var missing []string
	check := func(name, v string) {
		if v == "" {
			missing = append(missing, name)
		}
	}
	check("GROQ_API_KEY", c.LLM.APIKey)
	check("WEATHER_API_KEY", c.WeatherKey)
	check("NEWS_API_KEY", c.NewsKey)
	check("EMAIL_USER", c.Email.User)
	check("EMAIL_PASS", c.Email.Pass)
	check("CCTV_URL", c.CCTV.URL)
	return missing
}

func stringOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intOr(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("Ignoring invalid number", "key", key, "value", v)
		return def
	}
	return n
}
