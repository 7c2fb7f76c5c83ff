package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const NoteTimeLayout = "2006-01-02 15:04:05.000000"

// NotesFile is the note log's name inside the data directory.
const NotesFile = "data.txt"

type Note struct {
	At   time.Time
	Text string
}

func (n Note) String() string {
	return fmt.Sprintf("%s: %s", n.At.Format(NoteTimeLayout), n.Text)
}

// Notes is an append-only text file, one "<timestamp>: <text>" line per note.
type Notes struct {
	path string
	now  func() time.Time
}

func OpenNotes(path string) *Notes {
	return &Notes{path: path, now: time.Now}
}

func (n *Notes) Append(text string) (Note, error) {
	note := Note{At: n.now(), Text: text}

	if dir := filepath.Dir(n.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Note{}, fmt.Errorf("create notes dir: %w", err)
		}
	}

	f, err := os.OpenFile(n.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return Note{}, fmt.Errorf("open notes: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(note.String() + "\n"); err != nil {
		return Note{}, fmt.Errorf("append note: %w", err)
	}
	return note, nil
}

// Lines returns the stored lines in order. ErrNotFound means no note was ever
// written, which callers report differently from an empty file.
func (n *Notes) Lines() ([]string, error) {
	data, err := os.ReadFile(n.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read notes: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
