package ipc

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "j.sock")
	got := make(chan ControlMessage, 2)

	srv, err := Listen(path, func(msg ControlMessage) error {
		got <- msg
		if msg.Cmd != CmdSay {
			return errors.New("unknown command: " + msg.Cmd)
		}
		return nil
	})
	require.NoError(t, err)
	defer srv.Close()

	require.NoError(t, Send(path, ControlMessage{Cmd: CmdSay, Text: "jarvis what time is it"}))
	assert.Equal(t, ControlMessage{Cmd: CmdSay, Text: "jarvis what time is it"}, <-got)

	err = Send(path, ControlMessage{Cmd: "trigger"})
	assert.EqualError(t, err, "unknown command: trigger")
}

func TestListen_ReplacesStaleSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "j.sock")

	first, err := Listen(path, func(ControlMessage) error { return nil })
	require.NoError(t, err)
	first.ln.Close()

	second, err := Listen(path, func(ControlMessage) error { return nil })
	require.NoError(t, err)
	defer second.Close()

	assert.NoError(t, Send(path, ControlMessage{Cmd: CmdPing}))
}

func TestSend_NoDaemon(t *testing.T) {
	assert.Error(t, Send(filepath.Join(t.TempDir(), "missing.sock"), ControlMessage{Cmd: CmdPing}))
}
