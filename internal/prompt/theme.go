package prompt

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme controls the glyphs and styles of a prompt.
type Theme struct {
	Prefix struct {
		Idle string
		Done string
	}
	Icon struct {
		Checked   string
		Unchecked string
		Cursor    string
	}
	Style struct {
		Message     lipgloss.Style
		Highlight   lipgloss.Style
		Disabled    lipgloss.Style
		Description lipgloss.Style
		Error       lipgloss.Style
		Answer      lipgloss.Style
		Hint        lipgloss.Style
		Key         lipgloss.Style
		Help        lipgloss.Style
		Separator   lipgloss.Style
	}
	HelpSeparator string
}

// DefaultTheme styles the prompt for the terminal lipgloss detects on
// stdout.
func DefaultTheme() Theme {
	return NewTheme(lipgloss.DefaultRenderer())
}

// NewTheme builds the default theme on the given renderer. A renderer over a
// non-terminal writer yields plain text.
func NewTheme(r *lipgloss.Renderer) Theme {
	var t Theme
	t.Prefix.Idle = r.NewStyle().Foreground(lipgloss.Color("4")).Render("?")
	t.Prefix.Done = r.NewStyle().Foreground(lipgloss.Color("2")).Render("✔")

	t.Icon.Checked = r.NewStyle().Foreground(lipgloss.Color("2")).Render("◉")
	t.Icon.Unchecked = "◯"
	t.Icon.Cursor = "❯"

	t.Style.Message = r.NewStyle().Bold(true)
	t.Style.Highlight = r.NewStyle().Foreground(lipgloss.Color("6"))
	t.Style.Disabled = r.NewStyle().Faint(true)
	t.Style.Description = r.NewStyle().Foreground(lipgloss.Color("6"))
	t.Style.Error = r.NewStyle().Foreground(lipgloss.Color("1"))
	t.Style.Answer = r.NewStyle().Foreground(lipgloss.Color("6"))
	t.Style.Hint = r.NewStyle().Faint(true)
	t.Style.Key = r.NewStyle().Bold(true)
	t.Style.Help = r.NewStyle().Faint(true)
	t.Style.Separator = r.NewStyle().Faint(true)
	t.HelpSeparator = " • "
	return t
}
