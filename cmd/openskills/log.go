package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"openskills/internal/oplog"
	"openskills/internal/ui"
)

type logFlags struct {
	cmd    string
	status string
	since  string
	limit  int
	clear  bool
}

func newLogCmd() *cobra.Command {
	var f logFlags

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the operation history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLog(oplog.New(cfg.LogMaxEntries), f, time.Now())
		},
	}
	cmd.Flags().StringVar(&f.cmd, "cmd", "", "Only show one command (install, sync, remove, ...)")
	cmd.Flags().StringVar(&f.status, "status", "", "Only show one status (ok, error, cancelled)")
	cmd.Flags().StringVar(&f.since, "since", "", "Only show entries newer than 30m, 2h, 3d, 1w or a date")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 20, "Entries to show; 0 shows all")
	cmd.Flags().BoolVar(&f.clear, "clear", false, "Delete the history")
	return cmd
}

func runLog(l *oplog.Log, f logFlags, now time.Time) error {
	if f.clear {
		if err := l.Clear(); err != nil {
			return fmt.Errorf("failed to clear log: %w", err)
		}
		ui.Success("Operation log cleared")
		return nil
	}

	since, err := oplog.ParseSince(f.since, now)
	if err != nil {
		return err
	}
	entries, err := l.Read(0)
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}
	entries = oplog.Filter{Cmd: f.cmd, Status: f.status, Since: since}.Apply(entries)
	if f.limit > 0 && len(entries) > f.limit {
		entries = entries[:f.limit]
	}
	if len(entries) == 0 {
		ui.Info("No matching operations")
		return nil
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{formatLogTime(e.Timestamp), e.Command, e.Status, formatLogDuration(e.Duration), formatLogDetail(e)}
	}
	ui.Header("Operations")
	ui.Table([]string{"Time", "Command", "Status", "Duration", "Details"}, rows)
	return nil
}

func formatLogTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatLogDuration(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

// formatLogDetail renders args as sorted key=value pairs, then the message.
func formatLogDetail(e oplog.Entry) string {
	keys := make([]string, 0, len(e.Args))
	for k := range e.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		v := e.Args[k]
		switch x := v.(type) {
		case nil:
			continue
		case []any:
			if len(x) == 0 {
				continue
			}
			strs := make([]string, len(x))
			for i, s := range x {
				strs[i] = fmt.Sprint(s)
			}
			v = strings.Join(strs, ",")
		case []string:
			if len(x) == 0 {
				continue
			}
			v = strings.Join(x, ",")
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, " ")
}
