package prompt

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Render draws one frame of s. Lines longer than width are truncated; a
// width of zero disables truncation.
func Render[V any](s State[V], width int) string {
	o := &s.cfg.options
	th := o.theme

	header := th.Prefix.Idle + " " + th.Style.Message.Render(o.message)
	if s.status == StatusDone {
		header = th.Prefix.Done + " " + th.Style.Message.Render(o.message)
		if answer := s.cfg.summary(s.Selection()); answer != "" {
			header += " " + th.Style.Answer.Render(answer)
		}
		return truncateLines(header, width)
	}

	lines := []string{header, renderSearchLine(s), renderPage(s), " "}
	if c, ok := s.ActiveChoice(); ok && c.Description != "" && !c.IsDisabled() {
		lines = append(lines, th.Style.Description.Render(c.Description))
	}
	if s.errMsg != "" {
		lines = append(lines, th.Style.Error.Render("> "+s.errMsg))
	}
	lines = append(lines, renderHelp(s))

	return truncateLines(strings.Join(lines, "\n"), width)
}

func renderSearchLine[V any](s State[V]) string {
	o := &s.cfg.options
	th := o.theme
	label := th.Style.Message.Render("Search:") + " "
	switch {
	case s.searching && s.query != "":
		return label + th.Style.Highlight.Render(s.query)
	case s.searching:
		return label + th.Style.Hint.Render("type to search")
	default:
		return label + th.Style.Hint.Render("press "+o.searchKey+" to search")
	}
}

func renderPage[V any](s State[V]) string {
	o := &s.cfg.options
	if len(s.filtered) == 0 {
		return o.theme.Style.Hint.Render("  No matches")
	}
	rows := paginate(len(s.filtered), s.active, o.pageSize, o.loop)
	out := make([]string, len(rows))
	for i, pos := range rows {
		out[i] = renderRow(s, pos)
	}
	return strings.Join(out, "\n")
}

func renderRow[V any](s State[V], pos int) string {
	th := s.cfg.theme
	switch it := s.items[s.filtered[pos]].(type) {
	case Separator:
		return " " + th.Style.Separator.Render(it.Text)
	case Choice[V]:
		if it.IsDisabled() {
			return th.Style.Disabled.Render("- " + it.Name + " " + it.disabledLabel())
		}
		cursor := " "
		if pos == s.active {
			cursor = th.Icon.Cursor
		}
		box := th.Icon.Unchecked
		name := it.Name
		if it.Checked {
			box = th.Icon.Checked
			name = it.CheckedName
		}
		if pos == s.active {
			name = th.Style.Highlight.Render(name)
		}
		return cursor + box + " " + name
	}
	return ""
}

func renderHelp[V any](s State[V]) string {
	o := &s.cfg.options
	th := o.theme
	bindings := o.keys.helpBindings(o, s.searching)
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = th.Style.Key.Render(h.Key) + " " + th.Style.Help.Render(h.Desc)
	}
	return strings.Join(parts, th.Style.Help.Render(th.HelpSeparator))
}

// paginate returns the filtered positions shown for a cursor at active.
// With loop the window wraps past the end of the list and keeps the cursor
// near the middle; without it the window slides and clamps at both ends.
func paginate(n, active, pageSize int, loop bool) []int {
	if n <= pageSize {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		return rows
	}

	middle := pageSize / 2
	rows := make([]int, pageSize)
	if loop {
		start := 0
		if active > middle {
			start = active - middle
		}
		for i := range rows {
			rows[i] = (start + i) % n
		}
		return rows
	}

	start := min(max(active-middle, 0), n-pageSize)
	for i := range rows {
		rows[i] = start + i
	}
	return rows
}

func truncateLines(frame string, width int) string {
	if width <= 0 {
		return frame
	}
	lines := strings.Split(frame, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "…")
	}
	return strings.Join(lines, "\n")
}
