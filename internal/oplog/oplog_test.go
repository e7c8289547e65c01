package oplog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func tempLog(t *testing.T, maxEntries int) *Log {
	t.Helper()
	return &Log{Dir: filepath.Join(t.TempDir(), "logs"), MaxEntries: maxEntries}
}

func TestAppendAndRead(t *testing.T) {
	l := tempLog(t, 0)

	e1 := Entry{Timestamp: "2026-01-01T10:00:00Z", Command: "install", Status: StatusOK, Duration: 100}
	e2 := Entry{Timestamp: "2026-01-01T10:01:00Z", Command: "sync", Status: StatusOK, Duration: 200}
	e3 := Entry{Timestamp: "2026-01-01T10:02:00Z", Command: "remove", Status: StatusError, Message: "not found"}

	for _, e := range []Entry{e1, e2, e3} {
		if err := l.Append(e); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	entries, err := l.Read(0)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Read() got %d entries, want 3", len(entries))
	}
	if entries[0].Command != "remove" || entries[0].Message != "not found" {
		t.Errorf("entries[0] = %+v, want the remove entry", entries[0])
	}
	if entries[2].Command != "install" {
		t.Errorf("entries[2].Command = %q, want %q", entries[2].Command, "install")
	}
}

func TestReadWithLimit(t *testing.T) {
	l := tempLog(t, 0)
	for i := 0; i < 10; i++ {
		if err := l.Append(Entry{Command: fmt.Sprintf("c%d", i), Status: StatusOK}); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := l.Read(3)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(entries) != 3 || entries[0].Command != "c9" {
		t.Errorf("got %+v, want newest three", entries)
	}
}

func TestReadMissingFile(t *testing.T) {
	entries, err := tempLog(t, 0).Read(0)
	if err != nil || entries != nil {
		t.Errorf("Read() = %v, %v; want nil, nil", entries, err)
	}
}

func TestReadSkipsMalformedLines(t *testing.T) {
	l := tempLog(t, 0)
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `{"ts":"a","cmd":"list","status":"ok"}` + "\nnot json\n\n" + `{"ts":"b","cmd":"read","status":"ok"}` + "\n"
	if err := os.WriteFile(l.Path(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	entries, err := l.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Command != "read" {
		t.Errorf("got %+v", entries)
	}
}

func TestAppendTrimsPastThreshold(t *testing.T) {
	l := tempLog(t, 10)
	// 12 entries stay below the 20% threshold.
	for i := 0; i < 12; i++ {
		if err := l.Append(Entry{Command: fmt.Sprintf("c%d", i), Status: StatusOK}); err != nil {
			t.Fatal(err)
		}
	}
	if entries, _ := l.Read(0); len(entries) != 12 {
		t.Fatalf("got %d entries before threshold, want 12", len(entries))
	}

	if err := l.Append(Entry{Command: "c12", Status: StatusOK}); err != nil {
		t.Fatal(err)
	}
	entries, _ := l.Read(0)
	if len(entries) != 10 {
		t.Fatalf("got %d entries after trim, want 10", len(entries))
	}
	if entries[0].Command != "c12" || entries[9].Command != "c3" {
		t.Errorf("kept wrong window: newest=%s oldest=%s", entries[0].Command, entries[9].Command)
	}
}

func TestAppendRejectsFileAsDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "logs")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	l := &Log{Dir: blocker}
	if err := l.Append(Entry{Command: "list"}); err == nil {
		t.Error("expected error when log dir is a file")
	}
}

func TestClear(t *testing.T) {
	l := tempLog(t, 0)
	if err := l.Clear(); err != nil {
		t.Fatalf("Clear() on missing file: %v", err)
	}
	if err := l.Append(Entry{Command: "list"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Clear(); err != nil {
		t.Fatal(err)
	}
	if entries, _ := l.Read(0); len(entries) != 0 {
		t.Errorf("got %d entries after Clear, want 0", len(entries))
	}
}

func TestNewEntry(t *testing.T) {
	e := NewEntry("sync", StatusOK, 1500*time.Millisecond)
	if e.Command != "sync" || e.Status != StatusOK || e.Duration != 1500 {
		t.Errorf("got %+v", e)
	}
	if _, err := time.Parse(time.RFC3339, e.Timestamp); err != nil {
		t.Errorf("timestamp %q not RFC3339", e.Timestamp)
	}
}

func TestDefaultDir(t *testing.T) {
	if !strings.HasSuffix(DefaultDir(), filepath.Join("openskills", "logs")) {
		t.Errorf("DefaultDir() = %q", DefaultDir())
	}
}
