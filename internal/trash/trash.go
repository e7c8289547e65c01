// Package trash moves removed skills aside instead of deleting them, so
// they can be restored for a while.
package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"

	"openskills/internal/config"
	"openskills/internal/utils"
)

const timestampLayout = "2006-01-02_15-04-05.000000000"

// Entry is one trashed skill directory.
type Entry struct {
	Name string // skill name
	Path string // location inside the trash
	Date time.Time
	Size int64
}

// TrashDir returns $XDG_DATA_HOME/openskills/trash.
func TrashDir() string {
	return filepath.Join(config.DataDir(), "trash")
}

// MoveToTrash moves path into trashDir as <name>_<timestamp> and returns the
// new location.
func MoveToTrash(path, name, trashDir string) (string, error) {
	if err := os.MkdirAll(trashDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create trash directory: %w", err)
	}

	dest := filepath.Join(trashDir, name+"_"+time.Now().Format(timestampLayout))
	if exists(dest) {
		return "", fmt.Errorf("%s already exists in trash", filepath.Base(dest))
	}

	if err := move(path, dest); err != nil {
		return "", fmt.Errorf("failed to move %s to trash: %w", name, err)
	}
	return dest, nil
}

// Delete removes each path, either permanently or by moving it to trashDir.
// Every path is attempted; failures are collected into one error.
func Delete(paths []string, permanent bool, trashDir string) error {
	var result *multierror.Error
	for _, p := range paths {
		var err error
		if permanent {
			err = os.RemoveAll(p)
		} else {
			_, err = MoveToTrash(p, filepath.Base(p), trashDir)
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", filepath.Base(p), err))
		}
	}
	return result.ErrorOrNil()
}

// List returns trashed entries, newest first.
func List(trashDir string) []Entry {
	dirents, err := os.ReadDir(trashDir)
	if err != nil {
		return nil
	}

	var entries []Entry
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		name, date, ok := parseEntryName(d.Name())
		if !ok {
			continue
		}
		path := filepath.Join(trashDir, d.Name())
		entries = append(entries, Entry{Name: name, Path: path, Date: date, Size: dirSize(path)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries
}

// FindByName returns the most recently trashed entry named name.
func FindByName(trashDir, name string) *Entry {
	for _, e := range List(trashDir) {
		if e.Name == name {
			return &e
		}
	}
	return nil
}

// Restore moves e back to destDir/<name>. It refuses to overwrite.
func Restore(e *Entry, destDir string) (string, error) {
	dest := filepath.Join(destDir, e.Name)
	if exists(dest) {
		return "", fmt.Errorf("%s already exists", dest)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destDir, err)
	}
	if err := move(e.Path, dest); err != nil {
		return "", fmt.Errorf("failed to restore %s: %w", e.Name, err)
	}
	return dest, nil
}

// TotalSize sums the sizes of every entry in trashDir.
func TotalSize(trashDir string) int64 {
	var total int64
	for _, e := range List(trashDir) {
		total += e.Size
	}
	return total
}

// Cleanup removes entries older than maxAge and returns how many were
// removed.
func Cleanup(trashDir string, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	var stale []string
	for _, e := range List(trashDir) {
		if e.Date.Before(cutoff) {
			stale = append(stale, e.Path)
		}
	}
	if err := Delete(stale, true, trashDir); err != nil {
		return 0, err
	}
	return len(stale), nil
}

// Empty removes every entry and returns how many were removed.
func Empty(trashDir string) (int, error) {
	entries := List(trashDir)
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	if err := Delete(paths, true, trashDir); err != nil {
		return 0, err
	}
	return len(paths), nil
}

// parseEntryName splits "<name>_<timestamp>".
func parseEntryName(base string) (string, time.Time, bool) {
	cut := len(base) - len(timestampLayout)
	if cut < 2 || base[cut-1] != '_' {
		return "", time.Time{}, false
	}
	date, err := time.ParseInLocation(timestampLayout, base[cut:], time.Local)
	if err != nil {
		return "", time.Time{}, false
	}
	return base[:cut-1], date, true
}

// move renames src to dst. Only a cross-device rename falls back to
// copy and remove; other rename errors are returned as is.
func move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !isCrossDevice(err) {
		return err
	}
	if err := copyEntry(src, dst); err != nil {
		os.RemoveAll(dst)
		return err
	}
	return os.RemoveAll(src)
}

// copyEntry copies a skill directory, or recreates it when it is a link.
func copyEntry(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		link, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(link, dst)
	}
	return utils.CopyDir(src, dst, nil)
}
