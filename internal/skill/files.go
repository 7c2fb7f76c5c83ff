package skill

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "log/slog"

	"jarvis/internal/nlu"
)

var errFound = errors.New("found")

type Files struct {
	Dirs   []string
	Opener Opener
}

// NewFiles searches the usual user folders under home.
func NewFiles(home string, opener Opener) *Files {
	return &Files{
		Dirs: []string{
			filepath.Join(home, "Desktop"),
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Downloads"),
		},
		Opener: opener,
	}
}

func (f *Files) Execute(_ context.Context, args Args) Result {
	name := args[nlu.ArgFilename]

	path, ok := f.Find(name)
	if !ok {
		return Fail(CodeNotFound, nil, fmt.Sprintf("File '%s' not found", name))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if err := f.Opener.OpenFile(abs); err != nil {
		return Fail(CodeFailed, err, fmt.Sprintf("Failed to open file: %v", err))
	}
	return OK("Opened: %s", abs)
}

// Find returns the first file whose base name equals name, searching the
// directories in order. Unreadable subtrees are skipped.
func (f *Files) Find(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	for _, dir := range f.Dirs {
		var match string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					return err
				}
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if !d.IsDir() && d.Name() == name {
				match = path
				return errFound
			}
			return nil
		})
		if match != "" {
			return match, true
		}
		if err != nil && !errors.Is(err, errFound) && !errors.Is(err, os.ErrNotExist) {
			log.Debug("File search skipped directory", "dir", dir, "err", err)
		}
	}
	return "", false
}
