package repl

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

// DefaultHistoryLimit is the number of entries kept when no limit is set.
const DefaultHistoryLimit = 500

// History is a list of submitted input lines, oldest first, optionally
// persisted to a file with one entry per line.
type History struct {
	mu    sync.RWMutex
	path  string
	limit int
	lines []string
}

// NewHistory returns an empty History persisted to path. An empty path
// keeps the history in memory only. A limit less than 1 selects
// [DefaultHistoryLimit].
func NewHistory(path string, limit int) *History {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}

	return &History{path: path, limit: limit}
}

// Load replaces the entries with those read from the history file.
// A missing file is not an error.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.lines = h.lines[:0]

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.lines = append(h.lines, line)
		}
	}

	if over := len(h.lines) - h.limit; over > 0 {
		h.lines = h.lines[over:]
	}

	return scanner.Err()
}

// Add appends line to the history, removing an earlier copy of it and the
// oldest entries beyond the limit. Blank lines and repeats of the last
// entry are ignored.
func (h *History) Add(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return nil
	}

	rewrite := false

	if i := slices.Index(h.lines, line); i >= 0 {
		h.lines = slices.Delete(h.lines, i, i+1)
		rewrite = true
	}

	h.lines = append(h.lines, line)

	if over := len(h.lines) - h.limit; over > 0 {
		h.lines = slices.Delete(h.lines, 0, over)
		rewrite = true
	}

	if h.path == "" {
		return nil
	}

	if rewrite {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(line + "\n")

	return err
}

// Line returns the entry at index i, where 0 is the oldest.
func (h *History) Line(i int) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.lines) {
		return "", ErrOutOfBounds
	}

	return h.lines[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.lines)
}

// Lines returns a copy of all entries, oldest first.
func (h *History) Lines() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.lines)
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, line := range h.lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}

	return w.Flush()
}
