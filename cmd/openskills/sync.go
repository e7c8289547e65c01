package main

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"openskills/internal/agentsmd"
	"openskills/internal/prompt"
	"openskills/internal/skills"
	"openskills/internal/ui"
)

type syncFlags struct {
	yes    bool
	output string
	dryRun bool
	create bool // output given explicitly; create the file when missing
}

func newSyncCmd() *cobra.Command {
	var f syncFlags

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Write the installed skills into AGENTS.md",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.create = cmd.Flags().Changed("output")
			if !f.create {
				f.output = cfg.AgentsFile
			}
			start := time.Now()
			synced, err := runSync(cmd.Context(), f)
			recordOp("sync", map[string]any{"file": f.output, "skills": synced, "dry_run": f.dryRun}, start, err)
			return err
		},
	}
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "Sync every installed skill without prompting")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "File to update (default AGENTS.md)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show the changes without writing them")
	return cmd
}

func runSync(ctx context.Context, f syncFlags) ([]string, error) {
	content, err := agentsmd.Load(f.output)
	switch {
	case errors.Is(err, agentsmd.ErrNoFile) && f.create:
		content = "# " + trimExt(filepath.Base(f.output)) + "\n"
	case errors.Is(err, agentsmd.ErrNoFile):
		ui.Warning("No %s to update", f.output)
		return nil, nil
	case err != nil:
		return nil, err
	}

	list := skills.FindAll()
	if len(list) == 0 {
		ui.Info("No skills installed. Install skills first:")
		ui.Plain("  openskills install anthropics/skills")
		return nil, nil
	}
	skills.Sort(list)

	selected := list
	if !f.yes {
		if err := requireInteractive("pass -y to sync every installed skill"); err != nil {
			return nil, err
		}
		current := agentsmd.ParseCurrentSkills(content)
		selected, err = prompt.Run(ctx, prompt.Config[skills.Skill]{
			Message:  "Select skills to sync to " + filepath.Base(f.output),
			Choices:  skillChoices(list, syncPreselect(current)),
			PageSize: cfg.PageSize,
		})
		if err != nil {
			return nil, err
		}
	}

	var updated, message string
	switch {
	case len(selected) == 0:
		updated = agentsmd.RemoveSkillsSection(content)
		message = "Removed all skills from " + f.output
	case agentsmd.HasMarkers(content):
		updated = agentsmd.ReplaceSkillsSection(content, agentsmd.GenerateSkillsXML(selected))
		message = "Synced " + countLabel(len(selected), "skill") + " to " + f.output
	default:
		updated = agentsmd.ReplaceSkillsSection(content, agentsmd.GenerateSkillsXML(selected))
		message = "Added skills section to " + f.output + " (" + countLabel(len(selected), "skill") + ")"
	}

	if f.dryRun {
		if diff := agentsmd.Diff(content, updated); diff != "" {
			ui.Plain("%s", diff)
		} else {
			ui.Info("%s is up to date", f.output)
		}
		ui.Info("Dry run: %s not written", f.output)
		return skills.Names(selected), nil
	}

	if err := agentsmd.Save(f.output, updated); err != nil {
		return nil, err
	}
	ui.Success("%s", message)
	return skills.Names(selected), nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
