package skills

import (
	"os"
	"path/filepath"
)

// SkillFile is the instruction file every skill directory carries.
const SkillFile = "SKILL.md"

// Scope tells whether a skill directory belongs to the current project or
// to the user.
type Scope string

const (
	ScopeProject Scope = "project"
	ScopeGlobal  Scope = "global"
)

// SearchDir is one directory skills are looked up in.
type SearchDir struct {
	Path      string
	Scope     Scope
	Universal bool
}

// Label is the short human form used in listings, e.g. ".claude/skills/ (project)".
func (d SearchDir) Label() string {
	base := ".claude/skills/"
	if d.Universal {
		base = ".agent/skills/"
	}
	kind := string(d.Scope)
	if d.Universal {
		kind += " universal"
	}
	if d.Scope == ScopeGlobal {
		base = "~/" + base
	}
	return base + " (" + kind + ")"
}

func skillsSubdir(universal bool) string {
	if universal {
		return filepath.Join(".agent", "skills")
	}
	return filepath.Join(".claude", "skills")
}

func cwdAndHome() (string, string) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = cwd
	}
	return cwd, home
}

// SkillsDir returns the directory installs write into.
func SkillsDir(global, universal bool) string {
	cwd, home := cwdAndHome()
	root := cwd
	if global {
		root = home
	}
	return filepath.Join(root, skillsSubdir(universal))
}

// SearchDirs lists skill directories in lookup priority: universal project,
// universal global, project, global.
func SearchDirs() []SearchDir {
	cwd, home := cwdAndHome()
	return searchDirs(cwd, home)
}

func searchDirs(cwd, home string) []SearchDir {
	return []SearchDir{
		{Path: filepath.Join(cwd, skillsSubdir(true)), Scope: ScopeProject, Universal: true},
		{Path: filepath.Join(home, skillsSubdir(true)), Scope: ScopeGlobal, Universal: true},
		{Path: filepath.Join(cwd, skillsSubdir(false)), Scope: ScopeProject},
		{Path: filepath.Join(home, skillsSubdir(false)), Scope: ScopeGlobal},
	}
}
