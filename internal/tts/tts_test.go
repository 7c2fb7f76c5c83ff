package tts

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type chanEngine struct {
	spoken chan string
	err    error
}

func (e *chanEngine) Speak(text string) error {
	e.spoken <- text
	return e.err
}

func TestSay_TextOnly(t *testing.T) {
	var out bytes.Buffer
	s := NewSpeaker(&out, nil)

	s.Say("The current time is 02:05 PM")
	s.Say("")

	assert.Equal(t, "Jarvis: The current time is 02:05 PM\n", out.String())
}

func TestSay_Voiced(t *testing.T) {
	var out bytes.Buffer
	engine := &chanEngine{spoken: make(chan string, 1)}

	NewSpeaker(&out, engine).Say("Hello Sir")

	select {
	case got := <-engine.spoken:
		assert.Equal(t, "Hello Sir", got)
	case <-time.After(2 * time.Second):
		t.Fatal("engine was not called")
	}
	assert.Equal(t, "Jarvis: Hello Sir\n", out.String())
}

func TestSay_EngineErrorIsNotFatal(t *testing.T) {
	var out bytes.Buffer
	engine := &chanEngine{spoken: make(chan string, 2), err: errors.New("no audio device")}
	s := NewSpeaker(&out, engine)

	s.Say("one")
	s.Say("two")

	for range 2 {
		select {
		case <-engine.spoken:
		case <-time.After(2 * time.Second):
			t.Fatal("engine was not called")
		}
	}
	assert.Equal(t, "Jarvis: one\nJarvis: two\n", out.String())
}
