package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"openskills/internal/skills"
	"openskills/internal/trash"
	"openskills/internal/ui"
)

func newTrashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Inspect and manage removed skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return trashList(trash.TrashDir())
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List trashed skills",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return trashList(trash.TrashDir())
			},
		},
		newTrashRestoreCmd(),
		newTrashDeleteCmd(),
		newTrashEmptyCmd(),
	)
	return cmd
}

func trashList(dir string) error {
	items := trash.List(dir)
	if len(items) == 0 {
		ui.Info("Trash is empty")
		return nil
	}

	ui.Header("Trash")
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{item.Name, ui.FormatBytes(item.Size), ui.FormatAge(time.Since(item.Date)) + " ago"}
	}
	ui.Table([]string{"Name", "Size", "Trashed"}, rows)

	ui.Plain("")
	ui.Info("%s, %s total", countLabel(len(items), "item"), ui.FormatBytes(trash.TotalSize(dir)))
	ui.Info("Items are removed after %s", ui.FormatAge(cfg.TrashMaxAge.Duration))
	return nil
}

func newTrashRestoreCmd() *cobra.Command {
	var global, universal bool

	cmd := &cobra.Command{
		Use:   "restore <name>",
		Short: "Restore the most recently trashed version of a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("global") {
				global = cfg.Global
			}
			if !cmd.Flags().Changed("universal") {
				universal = cfg.Universal
			}
			start := time.Now()
			err := trashRestore(trash.TrashDir(), args[0], skills.SkillsDir(global, universal))
			recordOp("trash", map[string]any{"action": "restore", "name": args[0]}, start, err)
			return err
		},
	}
	cmd.Flags().BoolVarP(&global, "global", "g", false, "Restore into ~/.claude/skills")
	cmd.Flags().BoolVarP(&universal, "universal", "u", false, "Restore into .agent/skills")
	return cmd
}

func trashRestore(dir, name, destDir string) error {
	entry := trash.FindByName(dir, name)
	if entry == nil {
		return fmt.Errorf("'%s' not found in trash", name)
	}
	dest, err := trash.Restore(entry, destDir)
	if err != nil {
		return err
	}
	ui.Success("Restored: %s", name)
	ui.Plain("   Location: %s", dest)
	return nil
}

func newTrashDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Permanently delete one item from the trash",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			err := trashDelete(trash.TrashDir(), args[0], yes)
			recordOp("trash", map[string]any{"action": "delete", "name": args[0]}, start, err)
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func trashDelete(dir, name string, yes bool) error {
	entry := trash.FindByName(dir, name)
	if entry == nil {
		return fmt.Errorf("'%s' not found in trash", name)
	}
	if err := confirmPermanent(fmt.Sprintf("Permanently delete %s from the trash?", name), yes); err != nil {
		return err
	}
	if err := os.RemoveAll(entry.Path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	ui.Success("Permanently deleted: %s", name)
	return nil
}

func newTrashEmptyCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "empty",
		Short: "Permanently delete everything in the trash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			n, err := trashEmpty(trash.TrashDir(), yes)
			recordOp("trash", map[string]any{"action": "empty", "items": n}, start, err)
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func trashEmpty(dir string, yes bool) (int, error) {
	items := trash.List(dir)
	if len(items) == 0 {
		ui.Info("Trash is already empty")
		return 0, nil
	}
	msg := fmt.Sprintf("Permanently delete %s from the trash?", countLabel(len(items), "item"))
	if err := confirmPermanent(msg, yes); err != nil {
		return 0, err
	}
	n, err := trash.Empty(dir)
	if err != nil {
		return 0, err
	}
	ui.Success("Emptied trash: %s permanently deleted", countLabel(n, "item"))
	return n, nil
}
