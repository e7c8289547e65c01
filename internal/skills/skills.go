// Package skills locates installed skills across the project and user skill
// directories.
package skills

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"openskills/internal/logger"
	"openskills/internal/utils"
)

// ErrNotFound is returned when no search directory holds the requested skill.
var ErrNotFound = errors.New("skill not found")

// Skill is an installed skill as seen by list, manage and sync.
type Skill struct {
	Name        string
	Description string
	Location    Scope
	Path        string // skill directory
	Universal   bool
}

// Location points at a resolved skill.
type Location struct {
	Path    string // SKILL.md
	BaseDir string // skill directory
	Source  string // search directory it was found in
}

// FindAll lists every skill in the search directories. When the same name
// appears in more than one directory the higher-priority one wins.
func FindAll() []Skill {
	return findAll(SearchDirs())
}

func findAll(dirs []SearchDir) []Skill {
	var out []Skill
	seen := make(map[string]bool)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir.Path)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.L.WithError(err).WithField("dir", dir.Path).Debug("skipping unreadable skills dir")
			}
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if seen[name] {
				continue
			}
			skillDir := filepath.Join(dir.Path, name)
			// Entries may be symlinks to directories (install --symlink).
			if !e.IsDir() && !utils.IsDirOrDirLink(skillDir) {
				continue
			}
			content, err := os.ReadFile(filepath.Join(skillDir, SkillFile))
			if err != nil {
				continue
			}
			seen[name] = true
			out = append(out, Skill{
				Name:        name,
				Description: utils.ExtractYAMLField(string(content), "description"),
				Location:    dir.Scope,
				Path:        skillDir,
				Universal:   dir.Universal,
			})
		}
	}
	return out
}

// Find resolves a skill by directory name.
func Find(name string) (*Location, error) {
	return find(SearchDirs(), name)
}

func find(dirs []SearchDir, name string) (*Location, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	for _, dir := range dirs {
		baseDir := filepath.Join(dir.Path, name)
		skillPath := filepath.Join(baseDir, SkillFile)
		if info, err := os.Stat(skillPath); err == nil && !info.IsDir() {
			return &Location{Path: skillPath, BaseDir: baseDir, Source: dir.Path}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// LooksLikePath reports whether a read argument names a path or file URI
// rather than a skill name.
func LooksLikePath(arg string) bool {
	if strings.HasPrefix(arg, "file://") || arg == "~" || strings.HasPrefix(arg, "~/") {
		return true
	}
	return filepath.IsAbs(arg) || strings.ContainsRune(arg, '/') || strings.ContainsRune(arg, filepath.Separator)
}

// FindByPath resolves a file:// URI or filesystem path pointing at a skill
// directory or its SKILL.md.
func FindByPath(arg string) (*Location, error) {
	p := arg
	if strings.HasPrefix(arg, "file://") {
		u, err := url.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid file URI %q: %w", arg, err)
		}
		p = u.Path
	}
	p, err := filepath.Abs(utils.ExpandPath(p))
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	baseDir, skillPath := p, filepath.Join(p, SkillFile)
	if !info.IsDir() {
		if filepath.Base(p) != SkillFile {
			return nil, fmt.Errorf("%s is not a %s file", p, SkillFile)
		}
		baseDir, skillPath = filepath.Dir(p), p
	}
	if _, err := os.Stat(skillPath); err != nil {
		return nil, fmt.Errorf("%w: no %s in %s", ErrNotFound, SkillFile, baseDir)
	}
	return &Location{Path: skillPath, BaseDir: baseDir, Source: filepath.Dir(baseDir)}, nil
}

// Names returns the skill names in order.
func Names(list []Skill) []string {
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}
	return names
}

// Sort orders project skills before global ones, then by name.
func Sort(list []Skill) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Location != list[j].Location {
			return list[i].Location == ScopeProject
		}
		return list[i].Name < list[j].Name
	})
}
