package skill

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	log "log/slog"

	"jarvis/internal/nlu"
)

// Launcher starts a detached process from an argv.
type Launcher interface {
	Start(argv ...string) error
}

type ExecLauncher struct{}

func (ExecLauncher) Start(argv ...string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap in the background; the app outlives the command that opened it.
	go cmd.Wait()
	return nil
}

// Surveillance is the part of the CCTV controller the app launcher needs.
type Surveillance interface {
	Launch(ctx context.Context) Result
}

type Apps struct {
	// Table maps a spoken name to candidate command lines tried in order.
	// Arguments go through os.ExpandEnv before use.
	Table    map[string][][]string
	Launcher Launcher
	CCTV     Surveillance
}

var surveillanceApps = map[string]bool{"cctv": true, "vms": true, "surveillance": true}

func NewApps(launcher Launcher, cctv Surveillance) *Apps {
	return &Apps{Table: DefaultApps(runtime.GOOS), Launcher: launcher, CCTV: cctv}
}

func DefaultApps(goos string) map[string][][]string {
	switch goos {
	case "windows":
		return map[string][][]string{
			"code":      {{`C:\Program Files\Microsoft VS Code\Code.exe`}, {"code"}},
			"chrome":    {{`C:\Program Files\Google\Chrome\Application\chrome.exe`}},
			"documents": {{"explorer", `$USERPROFILE\Documents`}},
			"spotify":   {{`$APPDATA\Spotify\Spotify.exe`}},
		}
	case "darwin":
		return map[string][][]string{
			"code":      {{"open", "-a", "Visual Studio Code"}, {"code"}},
			"chrome":    {{"open", "-a", "Google Chrome"}},
			"documents": {{"open", "$HOME/Documents"}},
			"spotify":   {{"open", "-a", "Spotify"}},
		}
	default:
		return map[string][][]string{
			"code":      {{"code"}},
			"chrome":    {{"google-chrome"}, {"chromium"}, {"chromium-browser"}},
			"documents": {{"xdg-open", "$HOME/Documents"}},
			"spotify":   {{"spotify"}},
		}
	}
}

func (a *Apps) Execute(ctx context.Context, args Args) Result {
	name := args[nlu.ArgApp]

	if surveillanceApps[name] {
		return a.CCTV.Launch(ctx)
	}

	candidates, ok := a.Table[name]
	if !ok {
		return Fail(CodeNotFound, nil, "Application not configured")
	}

	var lastErr error
	for _, argv := range candidates {
		expanded := make([]string, len(argv))
		for i, arg := range argv {
			expanded[i] = os.ExpandEnv(arg)
		}
		if err := a.Launcher.Start(expanded...); err != nil {
			log.Debug("Open candidate failed", "app", name, "cmd", expanded[0], "err", err)
			lastErr = err
			continue
		}
		return OK("Opening %s", name)
	}

	return Fail(CodeFailed, lastErr, fmt.Sprintf("Failed to open %s", name))
}
