package install

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeSkillMD(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0644); err != nil {
		t.Fatalf("write SKILL.md in %s: %v", dir, err)
	}
}

func skillPaths(list []SkillInfo) []string {
	var out []string
	for _, s := range list {
		out = append(out, s.Path)
	}
	return out
}

func TestDiscoverSkills_Nested(t *testing.T) {
	root := t.TempDir()
	writeSkillMD(t, filepath.Join(root, "skills", "alpha"), "---\nname: alpha\ndescription: First\nlicense: MIT\n---\n# A")
	writeSkillMD(t, filepath.Join(root, "skills", "alpha", "examples", "inner"), "---\nname: inner\n---\n")
	writeSkillMD(t, filepath.Join(root, "beta"), "# no frontmatter")
	writeSkillMD(t, filepath.Join(root, ".git", "hooks"), "---\nname: hidden\n---\n")
	writeSkillMD(t, filepath.Join(root, "node_modules", "pkg"), "---\nname: dep\n---\n")

	got, err := discoverSkills(root, "repo")
	if err != nil {
		t.Fatal(err)
	}
	if paths, want := skillPaths(got), []string{"beta", "skills/alpha"}; !reflect.DeepEqual(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	alpha := got[1]
	if alpha.Name != "alpha" || alpha.Description != "First" || alpha.License != "MIT" || !alpha.Valid {
		t.Errorf("alpha = %+v", alpha)
	}
	if alpha.Dir != filepath.Join(root, "skills", "alpha") {
		t.Errorf("alpha dir = %s", alpha.Dir)
	}
	if got[0].Valid {
		t.Error("beta has no frontmatter and should not be valid")
	}
}

func TestDiscoverSkills_RootSkill(t *testing.T) {
	root := t.TempDir()
	writeSkillMD(t, root, "---\nname: solo\ndescription: One skill\n---\n")
	writeSkillMD(t, filepath.Join(root, "sub"), "---\nname: sub\n---\n")

	got, err := discoverSkills(root, "solo")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Path != "." || got[0].Name != "solo" || got[0].Dir != root {
		t.Errorf("got %+v", got)
	}
}

func TestMatchSkillIgnore(t *testing.T) {
	patterns := []string{"debug-tool", "test-*", "experimental", "**/draft-*"}
	tests := []struct {
		path string
		want bool
	}{
		{"debug-tool", true},
		{"experimental/sub-skill", true},
		{"test-alpha", true},
		{"test-beta/sub", true},
		{"skills/draft-one", true},
		{"production-skill", false},
		{"skills/debug-tool", false},
	}
	for _, tt := range tests {
		if got := matchSkillIgnore(tt.path, patterns); got != tt.want {
			t.Errorf("matchSkillIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
	if matchSkillIgnore("x", []string{"[bad"}) {
		t.Error("bad pattern should not match")
	}
}

func TestReadSkillIgnore(t *testing.T) {
	dir := t.TempDir()
	if got := readSkillIgnore(dir); got != nil {
		t.Errorf("missing file: got %v", got)
	}
	content := "# comment\n\ndebug-tool\ntest-*\n/experimental/\n"
	if err := os.WriteFile(filepath.Join(dir, ".skillignore"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if got, want := readSkillIgnore(dir), []string{"debug-tool", "test-*", "experimental"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscoverSkills_WithSkillIgnore(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"alpha", "beta", "test-debug"} {
		writeSkillMD(t, filepath.Join(root, name), "---\nname: "+name+"\n---\n")
	}
	if err := os.WriteFile(filepath.Join(root, ".skillignore"), []byte("test-*\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := discoverSkills(root, "")
	if err != nil {
		t.Fatal(err)
	}
	if paths := skillPaths(got); !reflect.DeepEqual(paths, []string{"alpha", "beta"}) {
		t.Errorf("paths = %v", paths)
	}
}

func TestDiscover_Local(t *testing.T) {
	root := t.TempDir()
	writeSkillMD(t, filepath.Join(root, "one"), "---\nname: one\n---\n")

	src, err := ParseSource(root)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Discover(context.Background(), src, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Cleanup()
	if res.Root != root || len(res.Skills) != 1 || res.CommitHash != "" {
		t.Errorf("res = %+v", res)
	}
	if err := res.Cleanup(); err != nil {
		t.Errorf("Cleanup of a local source: %v", err)
	}
	if _, err := os.Stat(root); err != nil {
		t.Error("Cleanup must not touch local sources")
	}
}

func TestDiscover_LocalErrors(t *testing.T) {
	empty := t.TempDir()
	src, _ := ParseSource(empty)
	if _, err := Discover(context.Background(), src, nil); !errors.Is(err, ErrNoSkills) {
		t.Errorf("empty dir err = %v, want ErrNoSkills", err)
	}

	missing, _ := ParseSource(filepath.Join(empty, "nope"))
	if _, err := Discover(context.Background(), missing, nil); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("missing dir err = %v, want ErrInvalidSource", err)
	}

	file := filepath.Join(empty, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	fileSrc, _ := ParseSource(file)
	if _, err := Discover(context.Background(), fileSrc, nil); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("file err = %v, want ErrInvalidSource", err)
	}
}

func TestDiscover_GitMissing(t *testing.T) {
	prev := lookGit
	lookGit = func() error { return errors.New("not found") }
	t.Cleanup(func() { lookGit = prev })

	src, _ := ParseSource("owner/repo")
	if _, err := Discover(context.Background(), src, nil); !errors.Is(err, ErrGitMissing) {
		t.Errorf("err = %v, want ErrGitMissing", err)
	}
}

func TestResolveSubpath(t *testing.T) {
	repo := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repo, "skills", "pdf"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := resolveSubpath(repo, "skills/pdf")
	if err != nil || got != filepath.Join(repo, "skills", "pdf") {
		t.Errorf("resolveSubpath = %q, %v", got, err)
	}
	if got, _ := resolveSubpath(repo, ""); got != repo {
		t.Errorf("empty subpath = %q", got)
	}
	// .. is clamped to the repo root, which then fails the directory check
	// for the remaining component.
	if _, err := resolveSubpath(repo, "../../etc/nope"); !errors.Is(err, ErrSubpathNotDirectory) {
		t.Errorf("escape err = %v", err)
	}
	if _, err := resolveSubpath(repo, "missing"); !errors.Is(err, ErrSubpathNotDirectory) {
		t.Errorf("missing err = %v", err)
	}
}
