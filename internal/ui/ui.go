package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

// Out receives all console output.
var Out io.Writer = os.Stdout

// IsTTY returns true if stdout is a terminal
func IsTTY() bool {
	f, ok := Out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// color wraps s in code when writing to a terminal.
func color(code, s string) string {
	if !IsTTY() {
		return s
	}
	return code + s + Reset
}

// Success prints a success message
func Success(format string, args ...any) {
	fmt.Fprintf(Out, color(Green, "✓")+" "+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...any) {
	fmt.Fprintf(Out, color(Red, "✗")+" "+format+"\n", args...)
}

// Warning prints a warning message
func Warning(format string, args ...any) {
	fmt.Fprintf(Out, color(Yellow, "!")+" "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...any) {
	fmt.Fprintf(Out, color(Cyan, "→")+" "+format+"\n", args...)
}

// Plain prints a line without decoration.
func Plain(format string, args ...any) {
	fmt.Fprintf(Out, format+"\n", args...)
}

// Dim returns s in gray.
func Dim(s string) string { return color(Gray, s) }

// Highlight returns s in bold.
func Highlight(s string) string { return color(Bold, s) }

// Header prints a section header
func Header(text string) {
	fmt.Fprintf(Out, "\n%s\n", color(Cyan, text))
	fmt.Fprintln(Out, color(Gray, "─────────────────────────────────────────"))
}
