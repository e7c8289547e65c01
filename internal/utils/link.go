package utils

import (
	"os"
	"path/filepath"
)

// IsSymlinkOrJunction checks whether path is a symlink or Windows junction.
func IsSymlinkOrJunction(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return true
	}
	return isWindowsReparsePoint(path)
}

// IsDirOrDirLink reports whether path is a directory, following a link if
// it is one. Broken links report false.
func IsDirOrDirLink(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ResolveLinkTarget resolves the target path of a symlink or junction.
func ResolveLinkTarget(path string) (string, error) {
	link, err := os.Readlink(path)
	if err == nil {
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		return filepath.Abs(link)
	}

	// Readlink can fail on junctions; EvalSymlinks still resolves them.
	resolved, evalErr := filepath.EvalSymlinks(path)
	if evalErr != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}
