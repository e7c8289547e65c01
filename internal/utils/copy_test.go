package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	outside := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(outside, []byte("secret"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(src, "scripts"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "scripts", "run.sh"), []byte("echo hi"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(src, "skipme"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(src, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(src, filepath.Join(src, "loop")); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "out")
	skip := func(rel string, d fs.DirEntry) bool { return rel == "skipme" }
	if err := CopyDir(src, dst, skip); err != nil {
		t.Fatalf("CopyDir: %v", err)
	}

	info, err := os.Stat(filepath.Join(dst, "scripts", "run.sh"))
	if err != nil {
		t.Fatalf("regular file missing: %v", err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("mode = %v, want executable", info.Mode())
	}
	for _, name := range []string{"link", "loop"} {
		if fi, err := os.Lstat(filepath.Join(dst, name)); err != nil || fi.Mode()&os.ModeSymlink == 0 {
			t.Errorf("%s should be copied as a link: %v, %v", name, fi, err)
		}
	}
	if got, _ := os.Readlink(filepath.Join(dst, "link")); got != outside {
		t.Errorf("link target = %q, want %q", got, outside)
	}
	if _, err := os.Stat(filepath.Join(dst, "skipme")); !os.IsNotExist(err) {
		t.Error("skipped directory was copied")
	}
}

func TestCopyDir_LinkedRoot(t *testing.T) {
	orig := t.TempDir()
	if err := os.WriteFile(filepath.Join(orig, "SKILL.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(t.TempDir(), "linked")
	if err := os.Symlink(orig, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "out")
	if err := CopyDir(link, dst, nil); err != nil {
		t.Fatalf("CopyDir: %v", err)
	}
	if fi, err := os.Lstat(dst); err != nil || !fi.IsDir() {
		t.Errorf("linked root should be copied as a directory: %v, %v", fi, err)
	}
	if _, err := os.Stat(filepath.Join(dst, "SKILL.md")); err != nil {
		t.Errorf("SKILL.md missing: %v", err)
	}
}
