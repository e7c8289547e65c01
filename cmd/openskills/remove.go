package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"openskills/internal/prompt"
	"openskills/internal/skills"
	"openskills/internal/trash"
	"openskills/internal/ui"
)

// confirm asks a yes/no question; it is a variable so tests can answer.
var confirm = func(message string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: message}, &ok)
	return ok, err
}

func newRemoveCmd() *cobra.Command {
	var permanent, yes bool

	cmd := &cobra.Command{
		Use:     "remove <skill-name>",
		Aliases: []string{"rm"},
		Short:   "Remove an installed skill",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("permanent") {
				permanent = cfg.PermanentDelete
			}
			start := time.Now()
			err := runRemove(args[0], permanent, yes)
			recordOp("remove", map[string]any{"name": args[0], "permanent": permanent}, start, err)
			return err
		},
	}
	cmd.Flags().BoolVar(&permanent, "permanent", false, "Delete instead of moving to the trash")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation for --permanent")
	return cmd
}

func runRemove(name string, permanent, yes bool) error {
	loc, err := skills.Find(name)
	if err != nil {
		return fmt.Errorf("skill '%s' not found", name)
	}

	if permanent {
		ui.Warning("DANGER: Permanently deleting %s", name)
		if err := confirmPermanent(fmt.Sprintf("Permanently delete %s?", name), yes); err != nil {
			return err
		}
	}

	if _, err := deleteSkills([]string{loc.BaseDir}, permanent); err != nil {
		return err
	}

	where := string(skills.ScopeProject)
	if d, ok := scopeOf(loc.Source); ok {
		where = d.Label()
	}
	ui.Success("Removed: %s", name)
	ui.Plain("   From: %s (%s)", where, loc.Source)
	return nil
}

// confirmPermanent asks before an irreversible delete unless yes is set.
func confirmPermanent(message string, yes bool) error {
	if yes {
		return nil
	}
	if err := requireInteractive("pass -y to confirm"); err != nil {
		return err
	}
	ok, err := confirm(message)
	if err != nil {
		return err
	}
	if !ok {
		return prompt.ErrCancelled
	}
	return nil
}

// deleteSkills trashes or deletes each directory and returns how many
// succeeded. Partial failures are returned together.
func deleteSkills(dirs []string, permanent bool) (int, error) {
	err := trash.Delete(dirs, permanent, trash.TrashDir())
	if !permanent {
		purgeTrash()
	}
	if err == nil {
		return len(dirs), nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return len(dirs) - len(merr.Errors), err
	}
	return 0, err
}
