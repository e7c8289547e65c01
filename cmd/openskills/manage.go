package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"openskills/internal/prompt"
	"openskills/internal/skills"
	"openskills/internal/ui"
)

func newManageCmd() *cobra.Command {
	var permanent bool

	cmd := &cobra.Command{
		Use:   "manage",
		Short: "Interactively pick installed skills to remove",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("permanent") {
				permanent = cfg.PermanentDelete
			}
			start := time.Now()
			removed, err := runManage(cmd.Context(), permanent)
			recordOp("manage", map[string]any{"removed": removed, "permanent": permanent}, start, err)
			return err
		},
	}
	cmd.Flags().BoolVar(&permanent, "permanent", false, "Delete instead of moving to the trash")
	return cmd
}

func runManage(ctx context.Context, permanent bool) ([]string, error) {
	list := skills.FindAll()
	if len(list) == 0 {
		ui.Info("No skills installed.")
		return nil, nil
	}
	if err := requireInteractive("manage needs an interactive terminal"); err != nil {
		return nil, err
	}
	skills.Sort(list)

	selected, err := prompt.Run(ctx, prompt.Config[skills.Skill]{
		Message:  "Select skills to remove",
		Choices:  skillChoices(list, nil),
		PageSize: cfg.PageSize,
	})
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		ui.Info("No skills selected for removal.")
		return nil, nil
	}

	dirs := make([]string, len(selected))
	for i, s := range selected {
		dirs[i] = s.Path
	}
	n, err := deleteSkills(dirs, permanent)

	action := "moved to trash"
	if permanent {
		action = "permanently removed"
	}
	if n > 0 {
		ui.Success("Successfully %s: %s", action, countLabel(n, "skill"))
	}
	return skills.Names(selected), err
}
