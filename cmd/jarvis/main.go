package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"jarvis/internal/assistant"
	"jarvis/internal/audio"
	"jarvis/internal/cctv"
	"jarvis/internal/config"
	"jarvis/internal/desktop"
	"jarvis/internal/dialog"
	"jarvis/internal/ipc"
	"jarvis/internal/listen"
	"jarvis/internal/llm"
	"jarvis/internal/mixer"
	"jarvis/internal/notify"
	"jarvis/internal/proxy"
	"jarvis/internal/skill"
	"jarvis/internal/store"
	"jarvis/internal/task"
	"jarvis/internal/tts"
	"jarvis/internal/tts/espeak"
	"jarvis/pkg/audioconv"
	"jarvis/pkg/stt"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

const typedTimeout = time.Minute

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	input := cli.StringP("input", "i", "mic", "Input source: mic, text or clips")
	dataDir := cli.StringP("data", "d", ".", "Directory for contacts, notes and screenshots")
	proxyAddr := cli.StringP("proxy", "p", "", "SOCKS5 proxy for LLM traffic, empty for direct")
	model := cli.StringP("model", "m", "models/ggml-base.en.bin", "Whisper model path")
	beepFile := cli.String("beep", "beep.mp3", "Wake cue mp3, empty to disable")
	socket := cli.String("socket", ipc.DefaultSocketPath, "Control socket path")
	archive := cli.String("archive", "", "Save every captured phrase as WAV into this directory")
	duck := cli.Bool("duck", false, "Lower other audio while listening (PulseAudio)")
	notifications := cli.Bool("notify", true, "Show desktop notifications")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	if err := godotenv.Load(*envFile); err != nil {
		log.Debug("No env file", "path", *envFile, "err", err)
	}
	cfg := config.FromEnv()
	if missing := cfg.Missing(); len(missing) > 0 {
		log.Warn("Some skills are not configured", "missing", missing)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var engine tts.Engine
	if e, err := espeak.Open(espeak.DefaultVoice, espeak.DefaultRate); err != nil {
		log.Warn("Failed to init speech engine, text only", "err", err)
	} else {
		engine = e
		defer e.Close()
	}
	speaker := tts.NewSpeaker(os.Stdout, engine)

	log.Debug("Loaded speaker")

	llmHTTP, err := proxy.NewClient(*proxyAddr, 60*time.Second)
	if err != nil {
		log.Error("Failed to set up socks proxy, going direct", "proxy", *proxyAddr, "err", err)
		llmHTTP = &http.Client{}
	}
	chat := llm.New(llm.Config{
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Model:      cfg.LLM.Model,
		HTTPClient: llmHTTP,
	})

	log.Debug("Loaded LLM client")

	opener := desktop.Opener{}
	keyboard := desktop.Keyboard{}
	web := &http.Client{Timeout: 10 * time.Second}

	contacts := store.OpenContacts(filepath.Join(*dataDir, store.ContactsFile))
	notes := store.OpenNotes(filepath.Join(*dataDir, store.NotesFile))
	log.Debug("Loaded stores", "contacts", contacts.Len())

	surveillance := cctv.New(cctv.Config{
		BaseURL:  cfg.CCTV.URL,
		Username: cfg.CCTV.User,
		Password: cfg.CCTV.Pass,
		AppPath:  cfg.CCTV.Path,
	}, keyboard)

	home, _ := os.UserHomeDir()
	skills := assistant.Skills{
		Clock:      skill.NewClock(),
		Wiki:       skill.NewWiki(web),
		Search:     skill.NewSearch(web, opener, chat),
		YouTube:    skill.NewYouTube(opener),
		Email:      skill.NewEmail(cfg.Email.User, cfg.Email.Pass, cfg.Email.Host, cfg.Email.Port),
		WhatsApp:   skill.NewWhatsApp(contacts, opener, keyboard, speaker),
		AddContact: &skill.AddContact{Book: contacts},
		Screenshot: &skill.Screenshot{
			Dir:     filepath.Join(*dataDir, "screenshots"),
			Capture: desktop.CaptureScreen,
			Now:     time.Now,
		},
		Clipboard: &skill.Clipboard{Read: desktop.ReadClipboard, LLM: chat, Speaker: speaker},
		Weather:   skill.NewWeather(cfg.WeatherKey, web),
		News:      skill.NewNews(cfg.NewsKey, web),
		Notes:     &skill.Notes{Store: notes},
		Apps:      skill.NewApps(skill.ExecLauncher{}, surveillance),
		Files:     skill.NewFiles(home, opener),
		Surveil:   &skill.Surveil{CCTV: surveillance, Opener: opener},
		Ask:       &skill.Ask{LLM: chat},
	}

	lines := listen.NewLines()
	source, timeout, closeInput := openInput(ctx, *input, inputOptions{
		model:   *model,
		archive: *archive,
		duck:    *duck,
		clips:   cli.Args(),
		lines:   lines,
		speaker: speaker,
		done:    stop,
	})
	defer closeInput()

	srv, err := ipc.Listen(*socket, func(msg ipc.ControlMessage) error {
		switch msg.Cmd {
		case ipc.CmdSay:
			if !lines.Push(msg.Text) {
				return errors.New("nothing queued")
			}
			return nil
		case ipc.CmdPing:
			return nil
		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
			return fmt.Errorf("unknown command: %s", msg.Cmd)
		}
	})
	if err != nil {
		log.Warn("Control socket disabled", "path", *socket, "err", err)
	} else {
		defer srv.Close()
	}

	cue := &notify.Cue{Notifier: notify.New(*notifications)}
	if *beepFile != "" {
		cue.Beeper = notify.NewBeeper(*beepFile)
	}

	jarvis := assistant.New(source, speaker, assistant.Flows(skills), assistant.Config{
		WakeWord: cfg.WakeWord,
		OnWake:   cue.Wake,
		Timeout:  timeout,
	})

	log.Info("Boot up - successful", "input", *input, "os", runtime.GOOS)

	jarvis.Greet(ctx)
	if err := jarvis.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Assistant stopped", "err", err)
	}

	drain(3 * time.Second)
	log.Info("Shut down")
}

type inputOptions struct {
	model   string
	archive string
	duck    bool
	clips   []string
	lines   *listen.Lines
	speaker *tts.Speaker
	done    func()
}

// openInput builds the utterance source. Any failure to bring up the
// microphone falls back to typed input.
func openInput(ctx context.Context, kind string, o inputOptions) (dialog.Source, time.Duration, func()) {
	typed := func() (dialog.Source, time.Duration, func()) {
		go func() {
			if err := o.lines.Feed(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("Stdin closed", "err", err)
			}
			o.done()
		}()
		fmt.Println("Type your commands, starting with the wake word.")
		return o.lines, typedTimeout, func() {}
	}

	switch kind {
	case "text":
		return typed()
	case "mic", "clips":
	default:
		log.Warn("Unknown input, using text", "input", kind)
		return typed()
	}

	whisper, err := stt.NewTranscriber(o.model, stt.Options{Language: "en"})
	if err != nil {
		log.Error("Failed to init whisper, using text input", "model", o.model, "err", err)
		return typed()
	}
	log.Debug("Loaded whisper")

	if kind == "clips" {
		clips := &listen.Clips{
			Paths:       o.clips,
			Decode:      audioconv.DecodeFile,
			Transcriber: whisper,
			Done:        o.done,
		}
		return listen.WithLines(o.lines, clips), dialog.DefaultTimeout, func() { whisper.Close() }
	}

	rec := audio.NewRecorder()
	if err := rec.Init(); err != nil {
		whisper.Close()
		log.Error("Failed to init audio, using text input", "err", err)
		return typed()
	}
	log.Debug("Loaded recorder")

	mic := &listen.Mic{
		Recorder:    rec,
		Transcriber: whisper,
		Speaker:     o.speaker,
		Archive:     o.archive,
	}
	if o.duck {
		mic.Ducker = mixer.New("jarvis", "espeak-ng")
	}

	return listen.WithLines(o.lines, mic), dialog.DefaultTimeout, func() {
		rec.Close()
		whisper.Close()
	}
}

// drain gives detached tasks such as speech playback a moment to finish.
func drain(limit time.Duration) {
	deadline := time.Now().Add(limit)
	for task.Running() > 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
}
