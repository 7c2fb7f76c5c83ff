package skill

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/nlu"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestFiles(t *testing.T) {
	home := t.TempDir()
	touch(t, filepath.Join(home, "Documents", "work", "report.pdf"))
	touch(t, filepath.Join(home, "Downloads", "report.pdf"))

	opener := &fakeOpener{}
	f := NewFiles(home, opener)

	res := f.Execute(context.Background(), Args{nlu.ArgFilename: "report.pdf"})

	want := filepath.Join(home, "Documents", "work", "report.pdf")
	assert.Equal(t, "Opened: "+want, res.Text)
	assert.Equal(t, []string{want}, opener.files, "Documents is searched before Downloads")
}

func TestFiles_NotFound(t *testing.T) {
	f := NewFiles(t.TempDir(), &fakeOpener{})

	res := f.Execute(context.Background(), Args{nlu.ArgFilename: "budget.xlsx"})

	assert.Equal(t, CodeNotFound, res.Code)
	assert.Equal(t, "Error: File 'budget.xlsx' not found", res.Spoken())
}

func TestFiles_Find(t *testing.T) {
	home := t.TempDir()
	touch(t, filepath.Join(home, "Desktop", "notes.txt"))
	f := NewFiles(home, &fakeOpener{})

	path, ok := f.Find("notes.txt")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(home, "Desktop", "notes.txt"), path)

	_, ok = f.Find("")
	assert.False(t, ok)

	_, ok = f.Find("Desktop")
	assert.False(t, ok, "directories do not match")
}

func TestFiles_OpenFails(t *testing.T) {
	home := t.TempDir()
	touch(t, filepath.Join(home, "Desktop", "a.txt"))
	f := NewFiles(home, &fakeOpener{err: os.ErrPermission})

	res := f.Execute(context.Background(), Args{nlu.ArgFilename: "a.txt"})
	assert.Equal(t, "Error: Failed to open file: permission denied", res.Spoken())
}
