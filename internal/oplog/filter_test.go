package oplog

import (
	"testing"
	"time"
)

func TestFilterApply(t *testing.T) {
	entries := []Entry{
		{Timestamp: "2026-01-03T10:00:00Z", Command: "sync", Status: "ok"},
		{Timestamp: "2026-01-02T10:00:00Z", Command: "install", Status: "error"},
		{Timestamp: "2026-01-01T10:00:00Z", Command: "SYNC", Status: "error"},
		{Timestamp: "garbage", Command: "sync", Status: "ok"},
	}
	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"empty", Filter{}, 4},
		{"cmd case-insensitive", Filter{Cmd: "sync"}, 3},
		{"status", Filter{Status: "ERROR"}, 2},
		{"cmd and status", Filter{Cmd: "sync", Status: "error"}, 1},
		{"since drops old and unparseable", Filter{Since: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Apply(entries); len(got) != tt.want {
				t.Errorf("Apply() = %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseSince(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"30m", now.Add(-30 * time.Minute)},
		{"2h", now.Add(-2 * time.Hour)},
		{"2d", now.AddDate(0, 0, -2)},
		{"1w", now.AddDate(0, 0, -7)},
		{"2026-01-02", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2026-01-02T03:04:05Z", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseSince(tt.in, now)
		if err != nil {
			t.Errorf("ParseSince(%q) error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseSince(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"x", "0d", "5y", "yesterday"} {
		if _, err := ParseSince(bad, now); err == nil {
			t.Errorf("ParseSince(%q) expected error", bad)
		}
	}
}
