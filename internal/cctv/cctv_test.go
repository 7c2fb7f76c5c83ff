package cctv

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/skill"
)

type fakeVMS struct {
	logins  atomic.Int32
	starts  atomic.Int32
	stops   atomic.Int32
	status  string
	loginOK bool
}

func (f *fakeVMS) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		f.logins.Add(1)
		if !f.loginOK {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1"})
	})
	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(f.status))
	})
	mux.HandleFunc("POST /record/start", func(w http.ResponseWriter, r *http.Request) { f.starts.Add(1) })
	mux.HandleFunc("POST /record/stop", func(w http.ResponseWriter, r *http.Request) { f.stops.Add(1) })

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestController_Status(t *testing.T) {
	vms := &fakeVMS{loginOK: true, status: `{"status":"online"}`}
	srv := vms.server(t)

	c := New(Config{BaseURL: srv.URL + "/", Username: "admin", Password: "pw"}, nil)
	ctx := context.Background()

	assert.Equal(t, "online", c.Status(ctx))
	assert.Equal(t, "online", c.Status(ctx))
	assert.Equal(t, int32(1), vms.logins.Load(), "login is cached for the session")
}

func TestController_StatusMissingField(t *testing.T) {
	vms := &fakeVMS{loginOK: true, status: `{"cameras":4}`}
	c := New(Config{BaseURL: vms.server(t).URL}, nil)

	assert.Equal(t, "unknown", c.Status(context.Background()))
}

func TestController_StatusLoginRejected(t *testing.T) {
	vms := &fakeVMS{loginOK: false}
	c := New(Config{BaseURL: vms.server(t).URL}, nil)
	ctx := context.Background()

	assert.False(t, c.Authenticate(ctx))
	assert.Equal(t, "offline", c.Status(ctx))
	assert.Equal(t, int32(2), vms.logins.Load(), "failed logins are retried")
}

func TestController_StatusUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url}, nil)
	assert.Equal(t, "offline", c.Status(context.Background()))
}

func TestController_StatusNoURL(t *testing.T) {
	c := New(Config{}, nil)
	assert.Equal(t, "offline", c.Status(context.Background()))
}

func TestController_Recording(t *testing.T) {
	vms := &fakeVMS{loginOK: true}
	c := New(Config{BaseURL: vms.server(t).URL}, nil)
	ctx := context.Background()

	c.StartRecording(ctx)
	c.StopRecording(ctx)
	c.StopRecording(ctx)

	assert.Equal(t, int32(1), vms.starts.Load())
	assert.Equal(t, int32(2), vms.stops.Load())
	assert.Equal(t, int32(1), vms.logins.Load())
}

func TestController_FeedURL(t *testing.T) {
	c := New(Config{BaseURL: "http://nvr.local:8080/"}, nil)
	assert.Equal(t, "http://nvr.local:8080/camera/3/feed", c.FeedURL("3"))
}

type recordingKeyboard struct {
	mu   sync.Mutex
	keys []string
	done chan struct{}
}

func (k *recordingKeyboard) Type(text string) { k.add("type:" + text) }
func (k *recordingKeyboard) Tap(key string)   { k.add("tap:" + key) }

func (k *recordingKeyboard) add(s string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys = append(k.keys, s)
	if s == "tap:enter" {
		close(k.done)
	}
}

func fakeApp(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "VMS.exe")
	require.NoError(t, os.WriteFile(path, []byte("bin"), 0o755))
	return path
}

func TestController_LaunchMissingApp(t *testing.T) {
	c := New(Config{AppPath: filepath.Join(t.TempDir(), "missing.exe")}, nil)
	c.elevate = func(string) error {
		t.Fatal("must not launch a missing application")
		return nil
	}

	res := c.Launch(context.Background())
	assert.Equal(t, skill.CodeNotFound, res.Code)
	assert.Contains(t, res.Spoken(), "Error: CCTV application not found at: ")
}

func TestController_LaunchElevationFails(t *testing.T) {
	c := New(Config{AppPath: fakeApp(t)}, nil)
	c.elevate = func(string) error { return errors.New("denied") }

	res := c.Launch(context.Background())
	assert.Equal(t, skill.CodeFailed, res.Code)
	assert.Equal(t, "Error: Failed to launch CCTV with admin privileges", res.Spoken())
}

func TestController_LaunchAutoLogin(t *testing.T) {
	path := fakeApp(t)
	kb := &recordingKeyboard{done: make(chan struct{})}

	c := New(Config{AppPath: path, Username: "admin", Password: "secret"}, kb)
	c.delay = time.Millisecond

	var launched string
	c.elevate = func(p string) error {
		launched = p
		return nil
	}

	res := c.Launch(context.Background())
	assert.False(t, res.Failed())
	assert.Equal(t, "CCTV application opened successfully", res.Text)
	assert.Equal(t, path, launched)

	select {
	case <-kb.done:
	case <-time.After(2 * time.Second):
		t.Fatal("auto-login did not run")
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()
	assert.Equal(t, []string{"type:admin", "tap:tab", "type:secret", "tap:enter"}, kb.keys)
}
