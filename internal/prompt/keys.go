package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key is a single key press delivered to the state machine.
type Key struct {
	Name     string // "up", "down", "space", "enter", "backspace", "escape", or a lower-cased character
	Sequence string // raw characters produced by the key, if any
	Ctrl     bool
	Meta     bool
}

// Keybinding presets that add navigation keys on top of the arrows.
const (
	KeybindingsVim   = "vim"
	KeybindingsEmacs = "emacs"
)

func hasBinding(bindings []string, name string) bool {
	for _, b := range bindings {
		if b == name {
			return true
		}
	}
	return false
}

func isUpKey(k Key, bindings []string) bool {
	switch {
	case k.Name == "up":
		return true
	case hasBinding(bindings, KeybindingsVim) && k.Name == "k" && !k.Ctrl:
		return true
	case hasBinding(bindings, KeybindingsEmacs) && k.Ctrl && k.Name == "p":
		return true
	}
	return false
}

func isDownKey(k Key, bindings []string) bool {
	switch {
	case k.Name == "down":
		return true
	case hasBinding(bindings, KeybindingsVim) && k.Name == "j" && !k.Ctrl:
		return true
	case hasBinding(bindings, KeybindingsEmacs) && k.Ctrl && k.Name == "n":
		return true
	}
	return false
}

func isSpaceKey(k Key) bool     { return k.Name == "space" }
func isEnterKey(k Key) bool     { return k.Name == "enter" || k.Name == "return" }
func isBackspaceKey(k Key) bool { return k.Name == "backspace" }

// numberKey returns n for the digit keys 1-9.
func numberKey(k Key) (int, bool) {
	if len(k.Name) != 1 || k.Ctrl || k.Meta {
		return 0, false
	}
	c := k.Name[0]
	if c < '1' || c > '9' {
		return 0, false
	}
	return int(c - '0'), true
}

// isPrintableKey accepts single visible ASCII characters. Space is excluded
// so that it keeps toggling rows while a search is being typed.
func isPrintableKey(k Key) bool {
	if k.Ctrl || k.Meta {
		return false
	}
	if len(k.Sequence) != 1 {
		return false
	}
	c := k.Sequence[0]
	return c >= 33 && c <= 126
}

// keyFromMsg converts a bubbletea key message into a Key.
func keyFromMsg(msg tea.KeyMsg) Key {
	switch msg.Type {
	case tea.KeyUp:
		return Key{Name: "up", Meta: msg.Alt}
	case tea.KeyDown:
		return Key{Name: "down", Meta: msg.Alt}
	case tea.KeyEnter:
		return Key{Name: "enter", Sequence: "\r", Meta: msg.Alt}
	case tea.KeyBackspace:
		return Key{Name: "backspace", Meta: msg.Alt}
	case tea.KeyEsc:
		return Key{Name: "escape"}
	case tea.KeyTab:
		return Key{Name: "tab", Sequence: "\t"}
	case tea.KeySpace:
		return Key{Name: "space", Sequence: " ", Meta: msg.Alt}
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return Key{Sequence: string(msg.Runes), Meta: msg.Alt}
		}
		s := string(msg.Runes[0])
		if s == " " {
			return Key{Name: "space", Sequence: s, Meta: msg.Alt}
		}
		return Key{Name: strings.ToLower(s), Sequence: s, Meta: msg.Alt}
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		name := string(rune('a' + int(msg.Type-tea.KeyCtrlA)))
		return Key{Name: name, Ctrl: true, Meta: msg.Alt}
	}
	return Key{Name: msg.String()}
}

// keyMap holds the bindings handled by the driver rather than the state
// machine, plus the entries of the help line.
type keyMap struct {
	Cancel   key.Binding
	Navigate key.Binding
	Toggle   key.Binding
	Search   key.Binding
	Clear    key.Binding
	All      key.Binding
	Invert   key.Binding
	Submit   key.Binding
}

func newKeyMap(o *options) keyMap {
	clearLabel := o.clearSearchKey
	if clearLabel == "escape" {
		clearLabel = "esc"
	}
	return keyMap{
		Cancel:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "cancel")),
		Navigate: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "navigate")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Search:   key.NewBinding(key.WithKeys(o.searchKey), key.WithHelp(o.searchKey, "search")),
		Clear:    key.NewBinding(key.WithKeys(clearLabel), key.WithHelp(clearLabel, "clear")),
		All:      key.NewBinding(key.WithKeys(o.allKey), key.WithHelp(o.allKey, "all"), key.WithDisabled()),
		Invert:   key.NewBinding(key.WithKeys(o.invertKey), key.WithHelp(o.invertKey, "invert"), key.WithDisabled()),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "submit")),
	}
}

// helpBindings lists the bindings applicable in the current mode, in
// display order.
func (km keyMap) helpBindings(o *options, searching bool) []key.Binding {
	out := []key.Binding{km.Navigate, km.Toggle, km.Search}
	if searching {
		out = append(out, km.Clear)
	}
	if !searching && o.allKey != "" {
		out = append(out, km.All)
	}
	if !searching && o.invertKey != "" {
		out = append(out, km.Invert)
	}
	return append(out, km.Submit)
}
