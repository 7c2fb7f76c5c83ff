// Package vad finds one spoken phrase in a stream of fixed size frames by
// frame energy.
package vad

import (
	"errors"
	"math"
	"time"
)

var ErrNoSpeech = errors.New("audio: no speech before timeout")

const (
	Threshold       = 0.015
	TrailingSilence = 600 * time.Millisecond
)

type Detector struct {
	waitFrames    int
	limitFrames   int
	silenceFrames int

	frames   int
	spoken   int
	silent   int
	speaking bool
	pcm      []float32
}

// New returns a detector for frames of length frame, where each frame lasts
// frame/sampleRate seconds. wait bounds the time before speech starts; limit
// bounds the phrase itself.
func New(sampleRate, frame int, wait, limit time.Duration) *Detector {
	per := time.Second * time.Duration(frame) / time.Duration(sampleRate)
	return &Detector{
		waitFrames:    max(int(wait/per), 1),
		limitFrames:   max(int(limit/per), 1),
		silenceFrames: max(int(TrailingSilence/per), 1),
		pcm:           make([]float32, 0, sampleRate*3),
	}
}

// Feed consumes one frame and reports whether capture is finished. The frame
// is copied.
func (d *Detector) Feed(frame []float32) bool {
	d.frames++
	loud := RMS(frame) > Threshold

	if !d.speaking {
		if !loud {
			return d.frames >= d.waitFrames
		}
		d.speaking = true
	}

	d.pcm = append(d.pcm, frame...)
	d.spoken++

	if loud {
		d.silent = 0
	} else {
		d.silent++
		if d.silent >= d.silenceFrames {
			return true
		}
	}
	return d.spoken >= d.limitFrames
}

// Heard reports whether speech ever started.
func (d *Detector) Heard() bool {
	return d.speaking
}

func (d *Detector) PCM() []float32 {
	return d.pcm
}

func RMS(f []float32) float64 {
	if len(f) == 0 {
		return 0
	}
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
