package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/skills", filepath.Join(home, "skills")},
		{"./skills", "./skills"},
		{"/abs/~x", "/abs/~x"},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPathInside(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"child", filepath.Join(dir, "a"), true},
		{"nested", filepath.Join(dir, "a", "b"), true},
		{"same", dir, true},
		{"parent traversal", filepath.Join(dir, "..", "escape"), false},
		{"dotdot prefix name", filepath.Join(dir, "..x"), true},
		{"sibling", dir + "-other", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPathInside(tt.target, dir); got != tt.want {
				t.Errorf("IsPathInside(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestIsSymlinkOrJunction(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if !IsSymlinkOrJunction(link) {
		t.Error("link should be detected")
	}
	if IsSymlinkOrJunction(target) {
		t.Error("plain directory reported as link")
	}
	if !IsDirOrDirLink(link) {
		t.Error("link to directory should count as directory")
	}

	got, err := ResolveLinkTarget(link)
	if err != nil {
		t.Fatalf("ResolveLinkTarget: %v", err)
	}
	want, _ := filepath.Abs(target)
	if got != want {
		t.Errorf("ResolveLinkTarget = %q, want %q", got, want)
	}
}

func TestContentHash(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ContentHash(dir, "SKILL.md")
	if err != nil {
		t.Fatalf("ContentHash: %v", err)
	}
	const want = "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("ContentHash = %q, want %q", got, want)
	}
	if !SameContent(dir, "SKILL.md", want) {
		t.Error("SameContent = false for unchanged file")
	}
	if SameContent(dir, "missing.md", want) {
		t.Error("SameContent = true for missing file")
	}
}
