package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"
)

// displayWidth returns the visible width of a string (excluding ANSI codes, handling wide chars)
func displayWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// padLines pads every line to the widest one so box borders line up.
func padLines(lines []string) string {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, displayWidth(line))
	}
	padded := make([]string, len(lines))
	for i, line := range lines {
		padded[i] = line + strings.Repeat(" ", maxLen-displayWidth(line))
	}
	return strings.Join(padded, "\n")
}

// Box prints content in a styled box
func Box(title string, lines ...string) {
	if !IsTTY() {
		if title != "" {
			fmt.Fprintf(Out, "── %s ──\n", title)
		}
		for _, line := range lines {
			fmt.Fprintln(Out, line)
		}
		return
	}
	pterm.DefaultBox.WithWriter(Out).WithTitle(title).Println(padLines(lines))
}

// WarningBox prints warning in a box
func WarningBox(title string, lines ...string) {
	if !IsTTY() {
		fmt.Fprintf(Out, "! %s\n", title)
		for _, line := range lines {
			fmt.Fprintf(Out, "  %s\n", line)
		}
		return
	}
	pterm.DefaultBox.
		WithWriter(Out).
		WithTitle(pterm.Yellow(title)).
		WithBoxStyle(pterm.NewStyle(pterm.FgYellow)).
		Println(padLines(lines))
}

// SkillBox prints a skill in a styled box with name and description
func SkillBox(name, description, location string) {
	if !IsTTY() {
		fmt.Fprintf(Out, "\n── %s ──\n", name)
		if description != "" {
			fmt.Fprintf(Out, "  %s\n", description)
		}
		if location != "" {
			fmt.Fprintf(Out, "  Location: %s\n", location)
		}
		return
	}

	lines := []string{""}
	for _, line := range wrapText(description, 55) {
		lines = append(lines, "  "+line)
	}
	if location != "" {
		lines = append(lines, "", fmt.Sprintf("  %s %s", pterm.Gray("Location:"), pterm.Gray(location)))
	}
	lines = append(lines, "")

	pterm.DefaultBox.
		WithWriter(Out).
		WithTitle(pterm.Cyan(name)).
		WithTitleTopLeft().
		Println(padLines(lines))
}

// Table prints rows under a header row.
func Table(header []string, rows [][]string) {
	if !IsTTY() {
		fmt.Fprintln(Out, strings.Join(header, "\t"))
		for _, r := range rows {
			fmt.Fprintln(Out, strings.Join(r, "\t"))
		}
		return
	}
	data := pterm.TableData{header}
	data = append(data, rows...)
	pterm.DefaultTable.WithWriter(Out).WithHasHeader().WithData(data).Render() //nolint:errcheck
}

// SectionLabel prints a dim section label.
func SectionLabel(label string) {
	if IsTTY() {
		fmt.Fprintf(Out, "\n  %s\n", pterm.Gray(label))
	} else {
		fmt.Fprintf(Out, "\n- %s\n", label)
	}
}

// Spinner wraps pterm spinner
type Spinner struct {
	spinner *pterm.SpinnerPrinter
	start   time.Time
}

// StartSpinner starts a spinner with message
func StartSpinner(message string) *Spinner {
	if !IsTTY() {
		fmt.Fprintf(Out, "... %s\n", message)
		return &Spinner{start: time.Now()}
	}
	printer := pterm.DefaultSpinner
	printer.Writer = Out
	s, _ := printer.Start(message)
	return &Spinner{spinner: s, start: time.Now()}
}

// Update updates spinner text
func (s *Spinner) Update(message string) {
	if s.spinner != nil {
		s.spinner.UpdateText(message)
		return
	}
	fmt.Fprintf(Out, "... %s\n", message)
}

// Success stops spinner with success
func (s *Spinner) Success(message string) {
	msg := withElapsed(message, time.Since(s.start))
	if s.spinner != nil {
		s.spinner.Success(msg)
		return
	}
	fmt.Fprintf(Out, "✓ %s\n", msg)
}

// Fail stops spinner with failure (red)
func (s *Spinner) Fail(message string) {
	if s.spinner != nil {
		s.spinner.Fail(message)
		return
	}
	fmt.Fprintf(Out, "✗ %s\n", message)
}

// Stop stops spinner without message
func (s *Spinner) Stop() {
	if s.spinner != nil {
		s.spinner.Stop() //nolint:errcheck
	}
}

func withElapsed(message string, elapsed time.Duration) string {
	if elapsed < 50*time.Millisecond {
		return message
	}
	return fmt.Sprintf("%s (%.1fs)", message, elapsed.Seconds())
}

// Metric is one count in a summary line.
type Metric struct {
	Label string
	Count int
}

// SummaryLine prints "<verb> complete: N label, ... (1.2s)".
func SummaryLine(verb string, elapsed time.Duration, metrics ...Metric) {
	Success("%s", formatSummaryLine(verb, elapsed, metrics...))
}

func formatSummaryLine(verb string, elapsed time.Duration, metrics ...Metric) string {
	parts := make([]string, len(metrics))
	for i, m := range metrics {
		parts[i] = fmt.Sprintf("%d %s", m.Count, m.Label)
	}
	line := verb + " complete: " + strings.Join(parts, ", ")
	if elapsed > 0 {
		line += fmt.Sprintf(" (%.1fs)", elapsed.Seconds())
	}
	return line
}

// FormatBytes renders a size as B, KB or MB.
func FormatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

// FormatAge renders a duration as the largest whole unit.
func FormatAge(d time.Duration) string {
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd", int(d/(24*time.Hour)))
	case d >= time.Hour:
		return fmt.Sprintf("%dh", int(d/time.Hour))
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	}
	return fmt.Sprintf("%ds", int(d/time.Second))
}

// wrapText wraps text to specified width
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if displayWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case displayWidth(current)+1+displayWidth(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
