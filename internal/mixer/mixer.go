// Package mixer lowers the volume of other applications' PulseAudio streams
// while the assistant listens, and restores it afterwards. It shells out to
// pactl.
package mixer

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const maxVolume = 150

var percentRe = regexp.MustCompile(`(\d+)\s*%`)

type stream struct {
	id     int
	volume int
	app    string
}

// Runner executes pactl with args and returns its stdout.
type Runner func(ctx context.Context, args ...string) ([]byte, error)

func pactl(ctx context.Context, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, "pactl", args...).Output()
}

type Ducker struct {
	// Factor scales every foreign stream; Floor is the lowest percentage.
	Factor float64
	Floor  int
	Fade   time.Duration
	// Self lists application.name values that are left alone.
	Self []string
	Run  Runner

	mu       sync.Mutex
	active   bool
	original map[int]int
}

func New(self ...string) *Ducker {
	return &Ducker{
		Factor: 0.3,
		Floor:  10,
		Fade:   150 * time.Millisecond,
		Self:   self,
		Run:    pactl,
	}
}

// Duck fades foreign streams down. Calling it twice is a no-op.
func (d *Ducker) Duck(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active {
		return nil
	}

	streams, err := d.list(ctx)
	if err != nil {
		return err
	}

	d.original = map[int]int{}
	var fades []fade
	for _, s := range streams {
		to := int(math.Round(float64(s.volume) * d.Factor))
		to = min(max(to, d.Floor), maxVolume)
		d.original[s.id] = s.volume
		fades = append(fades, fade{id: s.id, from: s.volume, to: to})
	}

	if err := d.apply(ctx, fades); err != nil {
		return err
	}
	d.active = true
	return nil
}

// Restore fades ducked streams back to where they were. Streams that
// appeared after Duck are not touched.
func (d *Ducker) Restore(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		return nil
	}

	streams, err := d.list(ctx)
	if err != nil {
		return err
	}

	var fades []fade
	for _, s := range streams {
		if orig, ok := d.original[s.id]; ok {
			fades = append(fades, fade{id: s.id, from: s.volume, to: orig})
		}
	}

	if err := d.apply(ctx, fades); err != nil {
		return err
	}
	d.original = nil
	d.active = false
	return nil
}

func (d *Ducker) list(ctx context.Context) ([]stream, error) {
	out, err := d.Run(ctx, "list", "sink-inputs")
	if err != nil {
		return nil, fmt.Errorf("pactl list sink-inputs: %w", err)
	}

	var foreign []stream
	for _, s := range parseSinkInputs(string(out)) {
		if !d.self(s.app) {
			foreign = append(foreign, s)
		}
	}
	return foreign, nil
}

func (d *Ducker) self(app string) bool {
	for _, name := range d.Self {
		if app == name {
			return true
		}
	}
	return false
}

type fade struct {
	id, from, to int
}

func (d *Ducker) apply(ctx context.Context, fades []fade) error {
	if len(fades) == 0 {
		return nil
	}

	const step = 10 * time.Millisecond
	steps := max(int(d.Fade/step), 1)

	for i := 1; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		frac := float64(i) / float64(steps)
		for _, f := range fades {
			v := f.from + int(math.Round(float64(f.to-f.from)*frac))
			if err := d.set(ctx, f.id, v); err != nil {
				return err
			}
		}
		if i < steps {
			time.Sleep(step)
		}
	}
	return nil
}

func (d *Ducker) set(ctx context.Context, id, percent int) error {
	percent = min(max(percent, 0), maxVolume)
	if _, err := d.Run(ctx, "set-sink-input-volume", strconv.Itoa(id), fmt.Sprintf("%d%%", percent)); err != nil {
		return fmt.Errorf("set volume id=%d: %w", id, err)
	}
	return nil
}

// parseSinkInputs reads `pactl list sink-inputs` output.
func parseSinkInputs(text string) []stream {
	var streams []stream

	for _, block := range strings.Split(text, "Sink Input #")[1:] {
		header, body, _ := strings.Cut(block, "\n")
		id, err := strconv.Atoi(strings.TrimSpace(header))
		if err != nil {
			continue
		}

		s := stream{id: id}
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)

			switch {
			case strings.HasPrefix(line, "Volume:") && s.volume == 0:
				if m := percentRe.FindStringSubmatch(line); m != nil {
					s.volume, _ = strconv.Atoi(m[1])
				}
			case strings.HasPrefix(line, "application.name =") && s.app == "":
				_, v, _ := strings.Cut(line, "=")
				s.app = strings.Trim(strings.TrimSpace(v), `"`)
			}
		}

		if s.volume == 0 && s.app == "" {
			continue
		}
		streams = append(streams, s)
	}
	return streams
}
