// Package potatolog keeps recent log entries in memory, so that the terminal
// editor can show them while it owns the terminal.
package potatolog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// LogEntry is a single log entry, as decoded from zerolog's JSON output.
type LogEntry = map[string]any

// DefaultLimit is the number of entries the global log keeps.
const DefaultLimit = 1000

// GlobalMemoryLogReaderWriter is a global MemoryLogReaderWriter.
var GlobalMemoryLogReaderWriter = NewMemoryLogReaderWriter(DefaultLimit)

// MemoryLogReaderWriter is a simple in-memory log reader and writer keeping
// the most recent entries up to a limit.
type MemoryLogReaderWriter struct {
	mtx   sync.Mutex
	log   []LogEntry
	limit int
}

// NewMemoryLogReaderWriter returns a log keeping at most limit entries.
func NewMemoryLogReaderWriter(limit int) *MemoryLogReaderWriter {
	if limit < 1 {
		limit = 1
	}
	return &MemoryLogReaderWriter{log: []LogEntry{}, limit: limit}
}

// Write appends a log entry to the log, evicting the oldest one when full.
func (w *MemoryLogReaderWriter) Write(p []byte) (int, error) {
	entry := LogEntry{}
	err := json.Unmarshal(p, &entry)
	if err != nil {
		return 0, fmt.Errorf("could not unmarshal log entry (err:%s) (input:'%s')", err.Error(), string(p))
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.log = append(w.log, entry)
	if over := len(w.log) - w.limit; over > 0 {
		w.log = append(w.log[:0:0], w.log[over:]...)
	}
	return len(p), nil
}

// Get returns a copy of the log. The entries themselves are shared.
func (w *MemoryLogReaderWriter) Get() []LogEntry {
	return w.Tail(-1)
}

// Tail returns a copy of the last n entries, all of them for negative n.
func (w *MemoryLogReaderWriter) Tail(n int) []LogEntry {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if n < 0 || n > len(w.log) {
		n = len(w.log)
	}
	result := make([]LogEntry, n)
	copy(result, w.log[len(w.log)-n:])
	return result
}

// LogReader allows reading access to a log.
type LogReader interface {
	Get() []LogEntry
	Tail(n int) []LogEntry
}

// Format renders an entry as a single line: level, message and the
// remaining fields sorted by key.
func Format(e LogEntry) string {
	level, _ := e[zerolog.LevelFieldName].(string)
	message, _ := e[zerolog.MessageFieldName].(string)

	keys := []string{}
	for k := range e {
		switch k {
		case zerolog.LevelFieldName, zerolog.MessageFieldName, zerolog.TimestampFieldName, zerolog.CallerFieldName:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %s", strings.ToUpper(level), message)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e[k])
	}
	return b.String()
}
