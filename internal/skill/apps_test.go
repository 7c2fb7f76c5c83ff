package skill

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"jarvis/internal/nlu"
)

type fakeLauncher struct {
	started [][]string
	fail    map[string]bool
}

func (l *fakeLauncher) Start(argv ...string) error {
	l.started = append(l.started, argv)
	if l.fail[argv[0]] {
		return errors.New("executable file not found")
	}
	return nil
}

type fakeSurveillance struct {
	launched int
}

func (f *fakeSurveillance) Launch(context.Context) Result {
	f.launched++
	return OK("CCTV application opened successfully")
}

func TestApps(t *testing.T) {
	l := &fakeLauncher{fail: map[string]bool{"google-chrome": true}}
	a := &Apps{Table: DefaultApps("linux"), Launcher: l, CCTV: &fakeSurveillance{}}

	res := a.Execute(context.Background(), Args{nlu.ArgApp: "chrome"})

	assert.Equal(t, "Opening chrome", res.Text)
	assert.Equal(t, [][]string{{"google-chrome"}, {"chromium"}}, l.started)
}

func TestApps_ExpandsEnv(t *testing.T) {
	t.Setenv("HOME", "/home/tony")
	l := &fakeLauncher{}
	a := &Apps{Table: DefaultApps("linux"), Launcher: l}

	a.Execute(context.Background(), Args{nlu.ArgApp: "documents"})

	assert.Equal(t, [][]string{{"xdg-open", "/home/tony/Documents"}}, l.started)
}

func TestApps_AllFail(t *testing.T) {
	l := &fakeLauncher{fail: map[string]bool{"spotify": true}}
	a := &Apps{Table: DefaultApps("linux"), Launcher: l}

	res := a.Execute(context.Background(), Args{nlu.ArgApp: "spotify"})

	assert.Equal(t, CodeFailed, res.Code)
	assert.Equal(t, "Error: Failed to open spotify", res.Spoken())
}

func TestApps_Unknown(t *testing.T) {
	l := &fakeLauncher{}
	a := &Apps{Table: DefaultApps("windows"), Launcher: l}

	res := a.Execute(context.Background(), Args{nlu.ArgApp: "photoshop"})

	assert.Equal(t, "Error: Application not configured", res.Spoken())
	assert.Empty(t, l.started)
}

func TestApps_Surveillance(t *testing.T) {
	for _, name := range []string{"cctv", "vms", "surveillance"} {
		cctv := &fakeSurveillance{}
		a := &Apps{Table: DefaultApps("windows"), Launcher: &fakeLauncher{}, CCTV: cctv}

		res := a.Execute(context.Background(), Args{nlu.ArgApp: name})

		assert.Equal(t, "CCTV application opened successfully", res.Text, name)
		assert.Equal(t, 1, cctv.launched, name)
	}
}

func TestDefaultApps(t *testing.T) {
	for _, goos := range []string{"windows", "darwin", "linux"} {
		table := DefaultApps(goos)
		for _, name := range []string{"code", "chrome", "documents", "spotify"} {
			assert.NotEmpty(t, table[name], "%s/%s", goos, name)
		}
	}
}
