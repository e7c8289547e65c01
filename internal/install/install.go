// Package install fetches skills from git repositories or local directories
// and installs them into a skills directory.
package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"openskills/internal/logger"
	"openskills/internal/skills"
	"openskills/internal/utils"
)

// maxParallelInstalls bounds InstallAll.
const maxParallelInstalls = 4

// Options configures an install.
type Options struct {
	TargetDir string // skills directory the skill lands in
	Global    bool   // target is a user-level directory
	Symlink   bool   // link instead of copy; local sources only
}

// Result reports one installed skill.
type Result struct {
	Skill     SkillInfo
	Path      string
	Symlinked bool
	Warnings  []string
	Err       error
}

// InstallSkill installs one discovered skill into opts.TargetDir.
func InstallSkill(res *DiscoveryResult, skill SkillInfo, opts Options) (*Result, error) {
	result := &Result{Skill: skill}

	content, err := os.ReadFile(filepath.Join(skill.Dir, skills.SkillFile))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", skill.Name, ErrMissingSkillFile)
	}
	if !utils.HasValidFrontmatter(string(content)) {
		return nil, fmt.Errorf("%s: %w", skill.Name, ErrInvalidFrontmatter)
	}
	if opts.Symlink && res.Source.Kind != SourceLocal {
		return nil, ErrSymlinkNeedsLocal
	}

	target := filepath.Join(opts.TargetDir, skill.Name)
	if !utils.IsPathInside(target, opts.TargetDir) || utils.PathsEqual(target, opts.TargetDir) {
		return nil, fmt.Errorf("%s: %w", skill.Name, ErrPathEscape)
	}
	result.Path = target

	if _, err := os.Lstat(target); err == nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Overwriting existing skill at %s", target))
		if err := os.RemoveAll(target); err != nil {
			return nil, fmt.Errorf("remove existing %s: %w", target, err)
		}
	}
	if opts.Global && IsMarketplaceSkill(skill.Name) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("'%s' matches an Anthropic marketplace skill; a global install may conflict with Claude Code plugins (install per project to avoid this)", skill.Name))
	}

	if err := os.MkdirAll(opts.TargetDir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", opts.TargetDir, err)
	}

	if opts.Symlink {
		src, err := filepath.Abs(skill.Dir)
		if err != nil {
			return nil, err
		}
		if err := os.Symlink(src, target); err != nil {
			return nil, fmt.Errorf("link %s: %w", skill.Name, err)
		}
		result.Symlinked = true
		return result, nil
	}

	if err := copySkill(skill.Dir, target); err != nil {
		os.RemoveAll(target)
		return nil, fmt.Errorf("copy %s: %w", skill.Name, err)
	}
	if err := WriteMeta(target, newMeta(res, skill)); err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	logger.L.WithField("skill", skill.Name).WithField("path", target).Debug("installed skill")
	return result, nil
}

// InstallAll installs list concurrently. Per-skill failures are reported
// in each Result; the returned error is only set when ctx is cancelled.
// Results keep the order of list.
func InstallAll(ctx context.Context, res *DiscoveryResult, list []SkillInfo, opts Options) ([]Result, error) {
	results := make([]Result, len(list))
	seen := make(map[string]bool, len(list))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelInstalls)
	for i, skill := range list {
		if seen[skill.Name] {
			results[i] = Result{Skill: skill, Err: fmt.Errorf("%s: duplicate skill name in selection (%s)", skill.Name, skill.Path)}
			continue
		}
		seen[skill.Name] = true

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := InstallSkill(res, skill, opts)
			if err != nil {
				results[i] = Result{Skill: skill, Err: err}
				return nil
			}
			results[i] = *r
			return nil
		})
	}
	err := g.Wait()
	return results, err
}
