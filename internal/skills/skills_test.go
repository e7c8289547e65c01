package skills

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/pkoukk/tiktoken-go"
)

func writeSkillMD(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, SkillFile), []byte(content), 0644); err != nil {
		t.Fatalf("write SKILL.md in %s: %v", dir, err)
	}
}

func testDirs(t *testing.T) (cwd, home string, dirs []SearchDir) {
	t.Helper()
	cwd, home = t.TempDir(), t.TempDir()
	return cwd, home, searchDirs(cwd, home)
}

func TestSearchDirs_Priority(t *testing.T) {
	dirs := searchDirs("/proj", "/home/u")
	want := []string{
		filepath.Join("/proj", ".agent", "skills"),
		filepath.Join("/home/u", ".agent", "skills"),
		filepath.Join("/proj", ".claude", "skills"),
		filepath.Join("/home/u", ".claude", "skills"),
	}
	for i, d := range dirs {
		if d.Path != want[i] {
			t.Errorf("dirs[%d] = %s, want %s", i, d.Path, want[i])
		}
	}
	if !dirs[0].Universal || dirs[0].Scope != ScopeProject || dirs[3].Scope != ScopeGlobal {
		t.Errorf("unexpected scopes: %+v", dirs)
	}
}

func TestSearchDir_Label(t *testing.T) {
	tests := []struct {
		dir  SearchDir
		want string
	}{
		{SearchDir{Scope: ScopeProject, Universal: true}, ".agent/skills/ (project universal)"},
		{SearchDir{Scope: ScopeGlobal, Universal: true}, "~/.agent/skills/ (global universal)"},
		{SearchDir{Scope: ScopeProject}, ".claude/skills/ (project)"},
		{SearchDir{Scope: ScopeGlobal}, "~/.claude/skills/ (global)"},
	}
	for _, tt := range tests {
		if got := tt.dir.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestSkillsDir(t *testing.T) {
	cwd := t.TempDir()
	home := t.TempDir()
	t.Chdir(cwd)
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := []struct {
		global, universal bool
		want              string
	}{
		{false, false, filepath.Join(cwd, ".claude", "skills")},
		{false, true, filepath.Join(cwd, ".agent", "skills")},
		{true, false, filepath.Join(home, ".claude", "skills")},
		{true, true, filepath.Join(home, ".agent", "skills")},
	}
	for _, tt := range tests {
		got, _ := filepath.EvalSymlinks(filepath.Dir(filepath.Dir(SkillsDir(tt.global, tt.universal))))
		want, _ := filepath.EvalSymlinks(filepath.Dir(filepath.Dir(tt.want)))
		if got != want {
			t.Errorf("SkillsDir(%v, %v) root = %s, want %s", tt.global, tt.universal, got, want)
		}
	}
}

func TestFindAll_PriorityAndDedup(t *testing.T) {
	cwd, home, dirs := testDirs(t)
	writeSkillMD(t, filepath.Join(cwd, ".claude", "skills", "pdf"), "---\nname: pdf\ndescription: project pdf\n---\n")
	writeSkillMD(t, filepath.Join(home, ".claude", "skills", "pdf"), "---\nname: pdf\ndescription: global pdf\n---\n")
	writeSkillMD(t, filepath.Join(home, ".claude", "skills", "xlsx"), "---\nname: xlsx\ndescription: sheets\n---\n")
	writeSkillMD(t, filepath.Join(cwd, ".agent", "skills", "docx"), "---\nname: docx\ndescription: docs\n---\n")

	got := findAll(dirs)
	if names := Names(got); !reflect.DeepEqual(names, []string{"docx", "pdf", "xlsx"}) {
		t.Fatalf("names = %v", names)
	}
	if got[0].Location != ScopeProject || !got[0].Universal {
		t.Errorf("docx = %+v", got[0])
	}
	if got[1].Description != "project pdf" || got[1].Location != ScopeProject {
		t.Errorf("pdf should come from the project dir: %+v", got[1])
	}
	if got[2].Location != ScopeGlobal {
		t.Errorf("xlsx = %+v", got[2])
	}
}

func TestFindAll_SkipsDirsWithoutSkillFile(t *testing.T) {
	cwd, _, dirs := testDirs(t)
	base := filepath.Join(cwd, ".claude", "skills")
	if err := os.MkdirAll(filepath.Join(base, "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "loose.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := findAll(dirs); len(got) != 0 {
		t.Errorf("expected no skills, got %+v", got)
	}
}

func TestFindAll_FollowsSymlinkedSkill(t *testing.T) {
	cwd, _, dirs := testDirs(t)
	real := filepath.Join(t.TempDir(), "linked")
	writeSkillMD(t, real, "---\nname: linked\ndescription: via link\n---\n")
	base := filepath.Join(cwd, ".claude", "skills")
	if err := os.MkdirAll(base, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(real, filepath.Join(base, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	got := findAll(dirs)
	if len(got) != 1 || got[0].Description != "via link" {
		t.Errorf("got %+v", got)
	}
}

func TestFind(t *testing.T) {
	cwd, home, dirs := testDirs(t)
	writeSkillMD(t, filepath.Join(home, ".claude", "skills", "pdf"), "---\nname: pdf\n---\n")
	writeSkillMD(t, filepath.Join(cwd, ".agent", "skills", "pdf"), "---\nname: pdf\n---\n")

	loc, err := find(dirs, "pdf")
	if err != nil {
		t.Fatal(err)
	}
	wantBase := filepath.Join(cwd, ".agent", "skills", "pdf")
	if loc.BaseDir != wantBase || loc.Path != filepath.Join(wantBase, SkillFile) {
		t.Errorf("loc = %+v", loc)
	}
	if loc.Source != filepath.Join(cwd, ".agent", "skills") {
		t.Errorf("source = %s", loc.Source)
	}

	for _, name := range []string{"missing", "", "..", "a/b"} {
		if _, err := find(dirs, name); !errors.Is(err, ErrNotFound) {
			t.Errorf("find(%q) err = %v, want ErrNotFound", name, err)
		}
	}
}

func TestFindByPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-skill")
	writeSkillMD(t, dir, "---\nname: my-skill\n---\n")
	skillFile := filepath.Join(dir, SkillFile)

	for _, arg := range []string{dir, skillFile, "file://" + skillFile, "file://" + dir} {
		loc, err := FindByPath(arg)
		if err != nil {
			t.Fatalf("FindByPath(%q): %v", arg, err)
		}
		if loc.Path != skillFile || loc.BaseDir != dir {
			t.Errorf("FindByPath(%q) = %+v", arg, loc)
		}
	}

	if _, err := FindByPath(filepath.Join(dir, "nope")); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing path err = %v", err)
	}
	other := filepath.Join(dir, "README.md")
	if err := os.WriteFile(other, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := FindByPath(other); err == nil {
		t.Error("non-SKILL.md file should be rejected")
	}
	if _, err := FindByPath(t.TempDir()); !errors.Is(err, ErrNotFound) {
		t.Errorf("dir without SKILL.md err = %v", err)
	}
}

func TestLooksLikePath(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"pdf", false},
		{"skill-creator", false},
		{"./pdf", true},
		{"/abs/pdf", true},
		{"~/skills/pdf", true},
		{"file:///tmp/pdf", true},
		{"dir/pdf", true},
	}
	for _, tt := range tests {
		if got := LooksLikePath(tt.arg); got != tt.want {
			t.Errorf("LooksLikePath(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestSort(t *testing.T) {
	list := []Skill{
		{Name: "zeta", Location: ScopeGlobal},
		{Name: "beta", Location: ScopeProject},
		{Name: "alpha", Location: ScopeGlobal},
		{Name: "alpha", Location: ScopeProject},
	}
	Sort(list)
	var got []string
	for _, s := range list {
		got = append(got, string(s.Location)+":"+s.Name)
	}
	want := []string{"project:alpha", "project:beta", "global:alpha", "global:zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort = %v, want %v", got, want)
	}
}

func resetEncoding(t *testing.T, load func() (*tiktoken.Tiktoken, error)) {
	t.Helper()
	prev := loadEncoding
	loadEncoding = load
	encOnce, enc = sync.Once{}, nil
	t.Cleanup(func() {
		loadEncoding = prev
		encOnce, enc = sync.Once{}, nil
	})
}

func TestEstimateTokens_FallsBackToLength(t *testing.T) {
	resetEncoding(t, func() (*tiktoken.Tiktoken, error) { return nil, errors.New("offline") })

	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 400), 100},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%d bytes) = %d, want %d", len(tt.text), got, tt.want)
		}
	}
}

func TestEstimateTokens_LoadsOnce(t *testing.T) {
	calls := 0
	resetEncoding(t, func() (*tiktoken.Tiktoken, error) {
		calls++
		return nil, errors.New("offline")
	})
	EstimateTokens("one")
	EstimateTokens("two")
	if calls != 1 {
		t.Errorf("encoding loaded %d times, want 1", calls)
	}
}
