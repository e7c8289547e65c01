package install

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	gosync "sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	securejoin "github.com/cyphar/filepath-securejoin"

	"openskills/internal/logger"
	"openskills/internal/skills"
	"openskills/internal/utils"
)

// ignoreFile lists doublestar patterns, relative to the discovery root, of
// skills that should not be offered for install.
const ignoreFile = ".skillignore"

// SkillInfo is a skill found in a source.
type SkillInfo struct {
	Name        string // directory name, installed under this name
	Path        string // slash-separated path relative to the discovery root; "." for the root itself
	Dir         string // absolute directory
	Description string
	License     string
	Valid       bool // SKILL.md carries frontmatter
}

// DiscoveryResult holds the skills found in a source. Call Cleanup once the
// skills have been installed.
type DiscoveryResult struct {
	Source     *Source
	Root       string // directory the skills were found under
	Skills     []SkillInfo
	CommitHash string // git sources only

	tempDir string
}

// Cleanup removes the temporary clone, if any.
func (r *DiscoveryResult) Cleanup() error {
	if r == nil || r.tempDir == "" {
		return nil
	}
	err := os.RemoveAll(r.tempDir)
	r.tempDir = ""
	return err
}

// Discover fetches src (a shallow clone for git sources) and lists the
// skills under it. A source whose root holds a SKILL.md is a single skill.
func Discover(ctx context.Context, src *Source, onProgress ProgressCallback) (*DiscoveryResult, error) {
	res := &DiscoveryResult{Source: src}

	switch {
	case src.Kind == SourceLocal:
		info, err := os.Stat(src.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidSource, src.Path)
		}
		res.Root = src.Path

	case src.IsGit():
		if err := lookGit(); err != nil {
			return nil, ErrGitMissing
		}
		tempDir, err := os.MkdirTemp("", "openskills-*")
		if err != nil {
			return nil, fmt.Errorf("create temp directory: %w", err)
		}
		res.tempDir = tempDir
		repo := filepath.Join(tempDir, "repo")
		if err := cloneRepo(ctx, src.CloneURL, repo, onProgress); err != nil {
			res.Cleanup()
			return nil, fmt.Errorf("clone %s: %w", src.CloneURL, err)
		}
		if hash, err := headCommit(ctx, repo); err == nil {
			res.CommitHash = hash
		}
		root, err := resolveSubpath(repo, src.Subpath)
		if err != nil {
			res.Cleanup()
			return nil, err
		}
		res.Root = root

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, src.Raw)
	}

	found, err := discoverSkills(res.Root, src.Name)
	if err != nil {
		res.Cleanup()
		return nil, err
	}
	if len(found) == 0 {
		res.Cleanup()
		if src.Subpath != "" {
			return nil, fmt.Errorf("%w at %s", ErrMissingSkillFile, src.Subpath)
		}
		return nil, ErrNoSkills
	}
	res.Skills = found
	return res, nil
}

// resolveSubpath joins sub onto repo without letting .. or symlinks escape
// the checkout.
func resolveSubpath(repo, sub string) (string, error) {
	if sub == "" {
		return repo, nil
	}
	p, err := securejoin.SecureJoin(repo, filepath.FromSlash(sub))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", sub, err)
	}
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSubpathNotDirectory, sub)
	}
	return p, nil
}

// discoverSkills lists directories under root that hold a SKILL.md. The
// walk does not descend into a skill, so bundled resources are never
// mistaken for skills.
func discoverSkills(root, rootName string) ([]SkillInfo, error) {
	if _, err := os.Stat(filepath.Join(root, skills.SkillFile)); err == nil {
		if rootName == "" {
			rootName = filepath.Base(root)
		}
		return []SkillInfo{newSkillInfo(root, ".", rootName)}, nil
	}

	var (
		mu    gosync.Mutex
		found []SkillInfo
	)
	err := fastwalk.Walk(nil, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() || path == root {
			return nil
		}
		switch d.Name() {
		case ".git", "node_modules":
			return fastwalk.SkipDir
		}
		if _, statErr := os.Stat(filepath.Join(path, skills.SkillFile)); statErr != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		info := newSkillInfo(path, filepath.ToSlash(rel), d.Name())
		mu.Lock()
		found = append(found, info)
		mu.Unlock()
		return fastwalk.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
	return filterIgnored(found, readSkillIgnore(root)), nil
}

func newSkillInfo(dir, rel, name string) SkillInfo {
	data, err := os.ReadFile(filepath.Join(dir, skills.SkillFile))
	if err != nil {
		return SkillInfo{Name: name, Path: rel, Dir: dir}
	}
	content := string(data)
	fields := utils.FrontmatterFields(content, "description", "license")
	desc := fields["description"]
	if desc == "" {
		desc = utils.ExtractYAMLField(content, "description")
	}
	return SkillInfo{
		Name:        name,
		Path:        rel,
		Dir:         dir,
		Description: desc,
		License:     fields["license"],
		Valid:       utils.HasValidFrontmatter(content),
	}
}

// readSkillIgnore returns the patterns in root/.skillignore. Blank lines
// and # comments are skipped.
func readSkillIgnore(root string) []string {
	data, err := os.ReadFile(filepath.Join(root, ignoreFile))
	if err != nil {
		return nil
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, strings.Trim(line, "/"))
	}
	return patterns
}

// matchSkillIgnore reports whether skillPath, or a directory above it,
// matches one of the patterns.
func matchSkillIgnore(skillPath string, patterns []string) bool {
	for _, p := range patterns {
		for _, candidate := range []string{p, p + "/**"} {
			ok, err := doublestar.Match(candidate, skillPath)
			if err != nil {
				if errors.Is(err, doublestar.ErrBadPattern) {
					logger.L.WithField("pattern", p).Debug("ignoring bad .skillignore pattern")
				}
				break
			}
			if ok {
				return true
			}
		}
	}
	return false
}

func filterIgnored(list []SkillInfo, patterns []string) []SkillInfo {
	if len(patterns) == 0 {
		return list
	}
	kept := list[:0]
	for _, s := range list {
		if !matchSkillIgnore(s.Path, patterns) {
			kept = append(kept, s)
		}
	}
	return kept
}
