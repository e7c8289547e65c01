package agentsmd

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is how many unchanged lines Diff keeps around each change.
const contextLines = 3

// Diff renders a line diff between old and new content. Inserted lines are
// prefixed with "+ ", deleted lines with "- " and context with "  ". Long
// unchanged stretches collapse to "  ...". Identical input yields "".
func Diff(oldContent, newContent string) string {
	if oldContent == newContent {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return formatDiff(diffs)
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func formatDiff(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	write := func(prefix string, lines []string) {
		for _, line := range lines {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	for i, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			write("+ ", lines)
		case diffmatchpatch.DiffDelete:
			write("- ", lines)
		case diffmatchpatch.DiffEqual:
			head, tail := contextLines, contextLines
			if i == 0 {
				head = 0
			}
			if i == len(diffs)-1 {
				tail = 0
			}
			if len(lines) <= head+tail+1 {
				write("  ", lines)
				continue
			}
			write("  ", lines[:head])
			b.WriteString("  ...\n")
			write("  ", lines[len(lines)-tail:])
		}
	}
	return b.String()
}
