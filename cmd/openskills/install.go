package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"openskills/internal/install"
	"openskills/internal/logger"
	"openskills/internal/prompt"
	"openskills/internal/skills"
	"openskills/internal/ui"
)

type installFlags struct {
	global    bool
	universal bool
	yes       bool
	symlink   bool
}

func newInstallCmd() *cobra.Command {
	var f installFlags

	cmd := &cobra.Command{
		Use:   "install <source>",
		Short: "Install skills from a git repository or local path",
		Long: `Install skills from a GitHub repository (owner/repo[/path]), a git URL
or a local directory. Repositories with several skills open a picker unless
-y is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("global") {
				f.global = cfg.Global
			}
			if !cmd.Flags().Changed("universal") {
				f.universal = cfg.Universal
			}
			start := time.Now()
			installed, err := runInstall(cmd.Context(), args[0], f)
			recordOp("install", map[string]any{"source": args[0], "installed": installed}, start, err)
			return err
		},
	}
	cmd.Flags().BoolVarP(&f.global, "global", "g", false, "Install to ~/.claude/skills instead of the project")
	cmd.Flags().BoolVarP(&f.universal, "universal", "u", false, "Install to .agent/skills for non-Claude agents")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "Install every skill without prompting")
	cmd.Flags().BoolVar(&f.symlink, "symlink", false, "Link local skills instead of copying them")
	return cmd
}

func runInstall(ctx context.Context, arg string, f installFlags) ([]string, error) {
	src, err := install.ParseSource(arg)
	if err != nil {
		return nil, err
	}
	if f.symlink && src.Kind != install.SourceLocal {
		return nil, install.ErrSymlinkNeedsLocal
	}

	start := time.Now()
	targetDir := skills.SkillsDir(f.global, f.universal)
	scope := skills.ScopeProject
	if f.global {
		scope = skills.ScopeGlobal
	}
	ui.Info("Installing from: %s", src)
	ui.Info("Location: %s (%s)", targetDir, scope)

	res, err := discover(ctx, src)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.L.WithError(err).Debug("failed to remove temporary clone")
		}
	}()

	selected, err := selectForInstall(ctx, res.Skills, f.yes)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		ui.Warning("No skills selected. Installation cancelled.")
		return nil, nil
	}

	results, err := install.InstallAll(ctx, res, selected, install.Options{
		TargetDir: targetDir,
		Global:    f.global,
		Symlink:   f.symlink,
	})
	if err != nil {
		return nil, err
	}

	var installed []string
	failed := 0
	for _, r := range results {
		for _, w := range r.Warnings {
			ui.Warning("%s", w)
		}
		if r.Err != nil {
			failed++
			ui.Warning("Skipping %s: %v", r.Skill.Name, r.Err)
			continue
		}
		installed = append(installed, r.Skill.Name)
		verb := "Installed"
		if r.Symlinked {
			verb = "Linked"
		}
		ui.Success("%s: %s", verb, r.Skill.Name)
		ui.Plain("   Location: %s", r.Path)
	}

	ui.Plain("")
	ui.SummaryLine("Installation", time.Since(start),
		ui.Metric{Label: "installed", Count: len(installed)},
		ui.Metric{Label: "failed", Count: failed},
	)
	if len(installed) == 0 {
		return nil, errors.New("no skills were installed")
	}
	ui.Plain("\nRead skill: openskills read <skill-name>")
	return installed, nil
}

// discover fetches the source, with a spinner while git clones.
func discover(ctx context.Context, src *install.Source) (*install.DiscoveryResult, error) {
	if !src.IsGit() {
		return install.Discover(ctx, src, nil)
	}
	spinner := ui.StartSpinner("Cloning repository...")
	res, err := install.Discover(ctx, src, func(line string) {
		spinner.Update("Cloning repository... " + line)
	})
	if err != nil {
		spinner.Fail("Clone failed")
		return nil, err
	}
	spinner.Success(fmt.Sprintf("Found %s", countLabel(len(res.Skills), "skill")))
	return res, nil
}

// selectForInstall returns the skills to install. A single skill, or -y,
// installs every valid skill; otherwise the user picks.
func selectForInstall(ctx context.Context, found []install.SkillInfo, yes bool) ([]install.SkillInfo, error) {
	var valid []install.SkillInfo
	for _, s := range found {
		if s.Valid {
			valid = append(valid, s)
		} else if len(found) > 1 {
			ui.Warning("Skipping %s: Invalid SKILL.md (missing YAML frontmatter)", s.Path)
		}
	}
	if len(found) == 1 {
		return found, nil
	}
	if len(valid) == 0 {
		return nil, install.ErrInvalidFrontmatter
	}
	if yes || len(valid) == 1 {
		return valid, nil
	}
	if err := requireInteractive("pass -y to install every skill"); err != nil {
		return nil, err
	}

	return prompt.Run(ctx, prompt.Config[install.SkillInfo]{
		Message:  "Select skills to install",
		Choices:  installChoices(found),
		PageSize: cfg.PageSize,
	})
}
