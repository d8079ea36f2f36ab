package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

const (
	historyFile = "history"
	historyLock = ".history.lock"
)

// history keeps REPL input in the cache dir between sessions. Reads take
// a shared lock and rewrites an exclusive one, so concurrent sessions
// only ever see whole files.
type history struct {
	dir  string
	size int
}

func newHistory(dir string, size int) *history {
	return &history{dir: dir, size: size}
}

func (h *history) path() string {
	return filepath.Join(h.dir, historyFile)
}

func (h *history) lock() (*flock.Flock, error) {
	if err := os.MkdirAll(h.dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return flock.New(filepath.Join(h.dir, historyLock)), nil
}

// load returns the saved lines, oldest first.
func (h *history) load() ([]string, error) {
	if h.size == 0 {
		return nil, nil
	}
	lock, err := h.lock()
	if err != nil {
		return nil, err
	}
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	defer lock.Unlock()
	return h.read()
}

// save appends lines to the saved history and keeps the newest size lines.
func (h *history) save(lines []string) error {
	if h.size == 0 || len(lines) == 0 {
		return nil
	}
	lock, err := h.lock()
	if err != nil {
		return err
	}
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	defer lock.Unlock()

	all, err := h.read()
	if err != nil {
		return err
	}
	all = h.trim(append(all, lines...))

	// write then rename so a crash never leaves a partial file
	tmp := h.path() + ".tmp"
	if err := os.WriteFile(tmp, []byte(strings.Join(all, "\n")+"\n"), 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, h.path()); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

func (h *history) read() ([]string, error) {
	data, err := os.ReadFile(h.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	lines := strings.FieldsFunc(string(data), func(r rune) bool { return r == '\n' })
	return h.trim(lines), nil
}

func (h *history) trim(lines []string) []string {
	if len(lines) > h.size {
		return lines[len(lines)-h.size:]
	}
	return lines
}
