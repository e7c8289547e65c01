package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
)

const hashPrefix = "sha256:"

// ContentHash returns the digest of dir/file as "sha256:<hex>".
func ContentHash(dir, file string) (string, error) {
	f, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hashPrefix + hex.EncodeToString(h.Sum(nil)), nil
}

// SameContent reports whether dir/file still hashes to want.
func SameContent(dir, file, want string) bool {
	got, err := ContentHash(dir, file)
	return err == nil && got == want
}
