package oplog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Filter narrows log entries. Zero fields match everything.
type Filter struct {
	Cmd    string // command name, case-insensitive
	Status string // status, case-insensitive
	Since  time.Time
}

// Apply returns the entries matching f, keeping their order.
func (f Filter) Apply(entries []Entry) []Entry {
	if f.Cmd == "" && f.Status == "" && f.Since.IsZero() {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Cmd != "" && !strings.EqualFold(e.Command, f.Cmd) {
			continue
		}
		if f.Status != "" && !strings.EqualFold(e.Status, f.Status) {
			continue
		}
		if !f.Since.IsZero() {
			ts, err := time.Parse(time.RFC3339, e.Timestamp)
			if err != nil || ts.Before(f.Since) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// ParseSince turns "30m", "2h", "2d", "1w", a 2006-01-02 date or an RFC3339
// timestamp into an absolute time relative to now.
func ParseSince(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if n, err := strconv.Atoi(s[:len(s)-1]); err == nil && n > 0 {
		switch s[len(s)-1] {
		case 'm':
			return now.Add(-time.Duration(n) * time.Minute), nil
		case 'h':
			return now.Add(-time.Duration(n) * time.Hour), nil
		case 'd':
			return now.AddDate(0, 0, -n), nil
		case 'w':
			return now.AddDate(0, 0, -7*n), nil
		}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use 30m, 2h, 2d, 1w, 2006-01-02 or RFC3339)", s)
}
