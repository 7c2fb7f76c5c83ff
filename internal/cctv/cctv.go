// Package cctv controls the surveillance system: its HTTP API for status and
// recording, and the desktop VMS application.
package cctv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"sync"
	"time"

	log "log/slog"

	"github.com/tidwall/gjson"

	"jarvis/internal/skill"
	"jarvis/internal/task"
)

const (
	DefaultAppPath = `C:\Program Files\VMS\VMS.exe`
	requestTimeout = 3 * time.Second
	loginDelay     = 3 * time.Second
)

type Config struct {
	BaseURL  string
	Username string
	Password string
	AppPath  string
}

// Elevator starts an application with administrative rights.
type Elevator func(path string) error

type Controller struct {
	cfg Config

	client   *http.Client
	keyboard skill.Keyboard
	elevate  Elevator
	delay    time.Duration

	mu            sync.Mutex
	authenticated bool
}

func New(cfg Config, kb skill.Keyboard) *Controller {
	if cfg.AppPath == "" {
		cfg.AppPath = DefaultAppPath
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	jar, _ := cookiejar.New(nil)
	return &Controller{
		cfg:      cfg,
		client:   &http.Client{Timeout: requestTimeout, Jar: jar},
		keyboard: kb,
		elevate:  launchElevated,
		delay:    loginDelay,
	}
}

// Authenticate logs in once per session. After a successful login every call
// returns true without contacting the server.
func (c *Controller) Authenticate(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.authenticated {
		return true
	}

	payload, _ := json.Marshal(map[string]string{
		"username": c.cfg.Username,
		"password": c.cfg.Password,
	})

	resp, err := c.do(ctx, http.MethodPost, "/login", payload)
	if err != nil {
		log.Debug("CCTV login failed", "err", err)
		return false
	}
	resp.Body.Close()

	c.authenticated = resp.StatusCode == http.StatusOK
	return c.authenticated
}

func (c *Controller) Status(ctx context.Context) string {
	if !c.Authenticate(ctx) {
		return "offline"
	}

	resp, err := c.do(ctx, http.MethodGet, "/status", nil)
	if err != nil {
		log.Debug("CCTV status failed", "err", err)
		return "offline"
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || !gjson.ValidBytes(body) {
		return "offline"
	}

	status := gjson.GetBytes(body, "status")
	if !status.Exists() {
		return "unknown"
	}
	return status.String()
}

// StartRecording is best effort; failures are only logged.
func (c *Controller) StartRecording(ctx context.Context) {
	c.record(ctx, "start")
}

func (c *Controller) StopRecording(ctx context.Context) {
	c.record(ctx, "stop")
}

func (c *Controller) record(ctx context.Context, action string) {
	if !c.Authenticate(ctx) {
		return
	}
	resp, err := c.do(ctx, http.MethodPost, "/record/"+action, nil)
	if err != nil {
		log.Warn("CCTV record request failed", "action", action, "err", err)
		return
	}
	resp.Body.Close()
}

func (c *Controller) FeedURL(camera string) string {
	return fmt.Sprintf("%s/camera/%s/feed", c.cfg.BaseURL, camera)
}

// Launch opens the VMS application elevated and, when credentials are
// configured, types them into the login window a few seconds later. Nothing
// confirms that the login went through.
func (c *Controller) Launch(_ context.Context) skill.Result {
	if _, err := os.Stat(c.cfg.AppPath); err != nil {
		return skill.Fail(skill.CodeNotFound, err, fmt.Sprintf("CCTV application not found at: %s", c.cfg.AppPath))
	}

	if err := c.elevate(c.cfg.AppPath); err != nil {
		log.Error("CCTV launch failed", "path", c.cfg.AppPath, "err", err)
		return skill.Fail(skill.CodeFailed, err, "Failed to launch CCTV with admin privileges")
	}
	log.Info("CCTV app launched with admin privileges", "path", c.cfg.AppPath)

	if c.cfg.Username != "" && c.cfg.Password != "" && c.keyboard != nil {
		c.autoLogin()
	}
	return skill.OK("CCTV application opened successfully")
}

func (c *Controller) autoLogin() {
	user, pass, kb, delay := c.cfg.Username, c.cfg.Password, c.keyboard, c.delay
	task.Go("cctv-login", func() {
		time.Sleep(delay)
		kb.Type(user)
		kb.Tap("tab")
		kb.Type(pass)
		kb.Tap("enter")
		log.Info("CCTV auto-login attempted")
	})
}

func (c *Controller) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("CCTV_URL not set")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, r)
	if err != nil {
		cancel()
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}
