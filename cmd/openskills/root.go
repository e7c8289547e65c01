package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"openskills/internal/config"
	"openskills/internal/logger"
	"openskills/internal/oplog"
	"openskills/internal/prompt"
	"openskills/internal/trash"
)

// cfg is loaded from cfgPath before any command runs.
var (
	cfg     = config.Default()
	cfgPath string
)

// stdinIsTTY reports whether interactive prompts can read from stdin.
var stdinIsTTY = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "openskills",
		Short:         "Universal skills loader for AI coding agents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cfgPath == "" {
				cfgPath = config.ConfigPath()
			}
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded

			level := cfg.LogLevel
			if verbose {
				level = "debug"
			}
			if err := logger.SetLevel(level); err != nil {
				return err
			}
			logger.L.WithField("config", cfgPath).Debug("configuration loaded")
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print debug logs to stderr")
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default "+config.ConfigPath()+")")

	root.AddCommand(
		newListCmd(),
		newInstallCmd(),
		newReadCmd(),
		newRemoveCmd(),
		newManageCmd(),
		newSyncCmd(),
		newUnsyncCmd(),
		newTrashCmd(),
		newLogCmd(),
		newConfigCmd(),
	)
	return root
}

// isCancelled reports whether err comes from the user aborting a prompt.
func isCancelled(err error) bool {
	return errors.Is(err, prompt.ErrCancelled) || errors.Is(err, terminal.InterruptErr)
}

func statusFromErr(err error) string {
	switch {
	case err == nil:
		return oplog.StatusOK
	case isCancelled(err):
		return oplog.StatusCancelled
	default:
		return oplog.StatusError
	}
}

// recordOp appends one entry to the operation log. Failures are only
// logged; they never fail the command.
func recordOp(command string, args map[string]any, start time.Time, cmdErr error) {
	e := oplog.NewEntry(command, statusFromErr(cmdErr), time.Since(start))
	e.Args = args
	if cmdErr != nil {
		e.Message = cmdErr.Error()
	}
	if err := oplog.New(cfg.LogMaxEntries).Append(e); err != nil {
		logger.L.WithError(err).Debug("failed to write operation log")
	}
}

// requireInteractive fails when stdin can not drive a prompt.
func requireInteractive(hint string) error {
	if stdinIsTTY() {
		return nil
	}
	return fmt.Errorf("stdin is not a terminal; %s", hint)
}

// purgeTrash drops trash entries older than the configured age.
func purgeTrash() {
	n, err := trash.Cleanup(trash.TrashDir(), cfg.TrashMaxAge.Duration)
	if err != nil {
		logger.L.WithError(err).Debug("trash cleanup failed")
		return
	}
	if n > 0 {
		logger.L.WithField("removed", n).Debug("purged old trash entries")
	}
}
