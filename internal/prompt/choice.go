package prompt

import "fmt"

// Item is one row of the prompt: either a Choice or a Separator.
type Item[V any] interface {
	isItem()
}

// Choice is a selectable row.
type Choice[V any] struct {
	Value       V
	Name        string // shown while unchecked; defaults to fmt.Sprint(Value)
	CheckedName string // shown while checked; defaults to Name
	Short       string // used in the final answer line; defaults to Name
	Description string // shown below the list while the row is active

	// Disabled rows are visible but can be neither navigated to nor
	// toggled. A non-empty DisabledReason implies Disabled.
	Disabled       bool
	DisabledReason string

	Checked bool
}

func (Choice[V]) isItem() {}

// IsDisabled reports whether the choice can not be selected.
func (c Choice[V]) IsDisabled() bool {
	return c.Disabled || c.DisabledReason != ""
}

func (c Choice[V]) disabledLabel() string {
	if c.DisabledReason != "" {
		return c.DisabledReason
	}
	return "(disabled)"
}

func (c Choice[V]) searchText() string {
	if c.Description == "" {
		return c.Name
	}
	return c.Name + " " + c.Description
}

const defaultSeparatorText = "──────────────"

// Separator is a non-interactive row used to group choices.
type Separator struct {
	Text string
}

func (Separator) isItem() {}

// NewSeparator returns a separator with the given text, or the default
// rule when text is empty.
func NewSeparator(text string) Separator {
	if text == "" {
		text = defaultSeparatorText
	}
	return Separator{Text: text}
}

// IsSeparator reports whether x is a Separator row.
func IsSeparator(x any) bool {
	switch x.(type) {
	case Separator, *Separator:
		return true
	}
	return false
}

// Strings builds unchecked choices whose value, name and short label are
// the given strings.
func Strings(values ...string) []Item[string] {
	items := make([]Item[string], 0, len(values))
	for _, v := range values {
		items = append(items, Choice[string]{Value: v})
	}
	return items
}

// normalizeItems fills defaulted display fields and rejects unknown rows.
func normalizeItems[V any](in []Item[V]) ([]Item[V], error) {
	out := make([]Item[V], 0, len(in))
	for i, it := range in {
		switch v := it.(type) {
		case Separator:
			if v.Text == "" {
				v = NewSeparator("")
			}
			out = append(out, v)
		case *Separator:
			if v == nil {
				return nil, fmt.Errorf("item %d: nil separator", i)
			}
			out = append(out, NewSeparator(v.Text))
		case Choice[V]:
			out = append(out, normalizeChoice(v))
		case *Choice[V]:
			if v == nil {
				return nil, fmt.Errorf("item %d: nil choice", i)
			}
			out = append(out, normalizeChoice(*v))
		default:
			return nil, fmt.Errorf("item %d: unsupported item type %T", i, it)
		}
	}
	return out, nil
}

func normalizeChoice[V any](c Choice[V]) Choice[V] {
	if c.Name == "" {
		c.Name = fmt.Sprint(c.Value)
	}
	if c.Short == "" {
		c.Short = c.Name
	}
	if c.CheckedName == "" {
		c.CheckedName = c.Name
	}
	return c
}

func isSelectable[V any](it Item[V]) bool {
	c, ok := it.(Choice[V])
	return ok && !c.IsDisabled()
}

func isChecked[V any](it Item[V]) bool {
	c, ok := it.(Choice[V])
	return ok && !c.IsDisabled() && c.Checked
}
