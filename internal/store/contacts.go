// Package store keeps the assistant's contact book and note log on disk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "log/slog"
)

var ErrNotFound = errors.New("store: not found")

// ContactsFile is the contact book's name inside the data directory.
const ContactsFile = "contacts.json"

// Contacts maps a name, exactly as it was heard, to a phone number. The whole
// file is read once and rewritten on every change.
type Contacts struct {
	path string

	mu      sync.RWMutex
	numbers map[string]string
}

// OpenContacts loads the book at path. A missing file is an empty book; an
// unreadable one is logged and also treated as empty.
func OpenContacts(path string) *Contacts {
	c := &Contacts{path: path, numbers: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("Failed to read contacts", "path", path, "err", err)
		}
		return c
	}

	if err := json.Unmarshal(data, &c.numbers); err != nil {
		log.Warn("Failed to parse contacts", "path", path, "err", err)
		c.numbers = map[string]string{}
	}
	if c.numbers == nil {
		c.numbers = map[string]string{}
	}
	return c
}

func (c *Contacts) Lookup(name string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	number, ok := c.numbers[name]
	if !ok {
		return "", fmt.Errorf("contact %q: %w", name, ErrNotFound)
	}
	return number, nil
}

func (c *Contacts) Has(name string) bool {
	_, err := c.Lookup(name)
	return err == nil
}

// Put stores the number and persists the book. The in-memory entry is kept
// even when saving fails.
func (c *Contacts) Put(name, number string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.numbers[name] = number
	return c.save()
}

func (c *Contacts) All() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.numbers))
	for k, v := range c.numbers {
		out[k] = v
	}
	return out
}

func (c *Contacts) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.numbers)
}

func (c *Contacts) save() error {
	data, err := json.MarshalIndent(c.numbers, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal contacts: %w", err)
	}

	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create contacts dir: %w", err)
		}
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("write contacts: %w", err)
	}
	return nil
}
