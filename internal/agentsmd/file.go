package agentsmd

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoFile is returned when the instructions file does not exist.
var ErrNoFile = errors.New("no agents file to update")

// Load reads the instructions file at path.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNoFile, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Save writes content back to path, keeping its permissions.
func Save(path, content string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
