// Package ipc is the local control socket of the jarvis daemon.
package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	log "log/slog"
)

const DefaultSocketPath = "/tmp/jarvis.sock"

const (
	CmdSay  = "say"
	CmdPing = "ping"
)

type ControlMessage struct {
	Cmd  string `json:"cmd"`
	Text string `json:"text,omitempty"`
}

type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Handler answers one message. A non-nil error is sent back to the client.
type Handler func(ControlMessage) error

type Server struct {
	ln   net.Listener
	path string
}

// Listen replaces any stale socket at path and serves h until Close.
func Listen(path string, h Handler) (*Server, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	s := &Server{ln: ln, path: path}
	go s.serve(h)
	return s, nil
}

func (s *Server) serve(h Handler) {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Warn("Control accept failed", "err", err)
			continue
		}
		go handleConn(conn, h)
	}
}

func (s *Server) Close() error {
	err := s.ln.Close()
	os.Remove(s.path)
	return err
}

func handleConn(conn net.Conn, h Handler) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	var msg ControlMessage
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		log.Debug("Bad control message", "err", err)
		return
	}

	reply := Reply{OK: true}
	if err := h(msg); err != nil {
		reply = Reply{Error: err.Error()}
	}
	json.NewEncoder(conn).Encode(reply)
}

// Send delivers one message and waits for the reply.
func Send(path string, msg ControlMessage) error {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return err
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	var reply Reply
	if err := json.NewDecoder(conn).Decode(&reply); err != nil {
		return fmt.Errorf("read reply: %w", err)
	}
	if !reply.OK {
		return errors.New(reply.Error)
	}
	return nil
}
