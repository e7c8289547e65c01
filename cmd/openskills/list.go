package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"openskills/internal/install"
	"openskills/internal/logger"
	"openskills/internal/skills"
	"openskills/internal/ui"
	"openskills/internal/utils"
)

func newListCmd() *cobra.Command {
	var tokens bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all installed skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(tokens)
		},
	}
	cmd.Flags().BoolVar(&tokens, "tokens", false, "Show the estimated token size of each SKILL.md")
	return cmd
}

func runList(tokens bool) error {
	list := skills.FindAll()
	ui.Header("Available Skills")

	if len(list) == 0 {
		ui.Plain("No skills installed.\n")
		ui.Plain("Install skills:")
		ui.Plain("  openskills install anthropics/skills         # Project (default)")
		ui.Plain("  openskills install owner/skill --global      # Global (advanced)")
		return nil
	}
	skills.Sort(list)

	var totalTokens int
	for _, dir := range skills.SearchDirs() {
		var group []skills.Skill
		for _, s := range list {
			if s.Location == dir.Scope && s.Universal == dir.Universal {
				group = append(group, s)
			}
		}
		if len(group) == 0 {
			continue
		}

		ui.SectionLabel(dir.Label())
		for _, s := range group {
			line := "  " + ui.Highlight(padName(s.Name))
			if tokens {
				n := skillTokens(s)
				totalTokens += n
				line += ui.Dim(fmt.Sprintf(" ~%d tokens", n))
			}
			if utils.IsSymlinkOrJunction(s.Path) {
				if target, err := utils.ResolveLinkTarget(s.Path); err == nil {
					line += ui.Dim(" -> " + target)
				}
			} else if meta, err := install.ReadMeta(s.Path); err == nil && meta != nil {
				line += ui.Dim(" from " + meta.Source)
				if meta.Modified(s.Path) {
					line += ui.Dim(" (modified)")
				}
			}
			ui.Plain("%s", line)
			if s.Description != "" {
				ui.Plain("    %s", s.Description)
			}
			ui.Plain("")
		}
	}

	summary := fmt.Sprintf("Total: %s", countLabel(len(list), "skill"))
	if tokens {
		summary += fmt.Sprintf(", ~%d tokens", totalTokens)
	}
	ui.Plain("%s", summary)
	return nil
}

func skillTokens(s skills.Skill) int {
	data, err := os.ReadFile(skillFilePath(s))
	if err != nil {
		logger.L.WithError(err).WithField("skill", s.Name).Debug("read SKILL.md")
		return 0
	}
	return skills.EstimateTokens(string(data))
}

func skillFilePath(s skills.Skill) string {
	return filepath.Join(s.Path, skills.SkillFile)
}
