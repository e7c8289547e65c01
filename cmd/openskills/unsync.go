package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"openskills/internal/agentsmd"
	"openskills/internal/ui"
)

func newUnsyncCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "unsync",
		Short: "Remove the skills section from AGENTS.md",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("output") {
				output = cfg.AgentsFile
			}
			start := time.Now()
			err := runUnsync(output)
			recordOp("unsync", map[string]any{"file": output}, start, err)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to update (default AGENTS.md)")
	return cmd
}

func runUnsync(output string) error {
	content, err := agentsmd.Load(output)
	if errors.Is(err, agentsmd.ErrNoFile) {
		ui.Warning("No %s to update", output)
		return nil
	}
	if err != nil {
		return err
	}
	if !agentsmd.HasMarkers(content) {
		ui.Info("%s has no skills section", output)
		return nil
	}
	if err := agentsmd.Save(output, agentsmd.RemoveSkillsSection(content)); err != nil {
		return err
	}
	ui.Success("Removed skills section from %s", output)
	return nil
}
