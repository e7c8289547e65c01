// Package oplog keeps a history of CLI operations in JSONL format (one JSON
// object per line).
package oplog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"openskills/internal/config"
)

// FileName is the log file inside the log directory.
const FileName = "operations.log"

// Entry statuses.
const (
	StatusOK        = "ok"
	StatusError     = "error"
	StatusCancelled = "cancelled"
)

// Entry represents one log line.
type Entry struct {
	Timestamp string         `json:"ts"`
	Command   string         `json:"cmd"`
	Args      map[string]any `json:"args,omitempty"`
	Status    string         `json:"status"`
	Message   string         `json:"msg,omitempty"`
	Duration  int64          `json:"ms,omitempty"`
}

// NewEntry creates an Entry stamped with the current time.
func NewEntry(cmd, status string, duration time.Duration) Entry {
	return Entry{
		Timestamp: time.Now().Format(time.RFC3339),
		Command:   cmd,
		Status:    status,
		Duration:  duration.Milliseconds(),
	}
}

// Log is an operation log stored under Dir.
type Log struct {
	Dir string
	// MaxEntries bounds the file; 0 keeps everything.
	MaxEntries int
}

// DefaultDir returns $XDG_STATE_HOME/openskills/logs.
func DefaultDir() string {
	return filepath.Join(config.StateDir(), "logs")
}

// New returns a log in the default directory.
func New(maxEntries int) *Log {
	return &Log{Dir: DefaultDir(), MaxEntries: maxEntries}
}

// Path is the log file location.
func (l *Log) Path() string {
	return filepath.Join(l.Dir, FileName)
}

// Append writes e and trims the oldest entries once the file has grown
// past MaxEntries.
func (l *Log) Append(e Entry) error {
	if info, err := os.Stat(l.Dir); err == nil && !info.IsDir() {
		return &os.PathError{Op: "mkdir", Path: l.Dir, Err: os.ErrInvalid}
	}
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(l.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(f).Encode(e); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if l.MaxEntries <= 0 {
		return nil
	}
	// Only rewrite once the file is 20% over the limit.
	threshold := l.MaxEntries + l.MaxEntries/5
	entries, err := readAll(l.Path())
	if err != nil || len(entries) <= threshold {
		return nil
	}
	return rewrite(l.Path(), entries[len(entries)-l.MaxEntries:])
}

// Read returns up to limit entries, newest first. limit <= 0 returns all.
func (l *Log) Read(limit int) ([]Entry, error) {
	all, err := readAll(l.Path())
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Clear truncates the log.
func (l *Log) Clear() error {
	err := os.Truncate(l.Path(), 0)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// readAll reads entries in file order, oldest first. Malformed lines are
// skipped.
func readAll(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var all []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		all = append(all, e)
	}
	return all, scanner.Err()
}

// rewrite atomically replaces the log file with entries.
func rewrite(path string, entries []Entry) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
