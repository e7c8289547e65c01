package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNoSelectableChoices is returned by New when every choice is
	// disabled or the list holds only separators.
	ErrNoSelectableChoices = errors.New("[searchable checkbox] No selectable choices. All choices are disabled.")

	// ErrCancelled is returned by Run when the user aborts with ctrl+c.
	ErrCancelled = errors.New("cancelled by user")
)

const (
	msgRequired       = "At least one choice must be selected"
	msgInvalidDefault = "You must select a valid value"
	defaultPageSize   = 7
	defaultSearchKey  = "f"
	defaultClearKey   = "escape"
	defaultAllKey     = "a"
	defaultInvertKey  = "i"
	defaultSummarySep = ", "
)

// NoShortcut disables a shortcut in Shortcuts.
const NoShortcut = ""

// Shortcuts names the keys for the bulk actions. A nil *Shortcuts in Config
// means "a" and "i"; NoShortcut turns an action off.
type Shortcuts struct {
	All    string
	Invert string
}

// Config describes a prompt session.
type Config[V any] struct {
	Message  string
	Choices  []Item[V]
	PageSize int   // rows shown at once; default 7
	Loop     *bool // wrap navigation and pagination; default true
	Required bool

	// Validate is consulted on enter. A nil error accepts the selection;
	// otherwise the error text is shown and the prompt stays open.
	Validate func(ctx context.Context, selected []Choice[V]) error

	Theme          func(*Theme)
	Shortcuts      *Shortcuts
	SearchKey      string   // default "f"
	ClearSearchKey string   // default "escape"
	Keybindings    []string // KeybindingsVim, KeybindingsEmacs
	Scorer         Scorer   // default FuzzyScorer

	// Summary renders the answer shown once the prompt is done. The default
	// joins the short labels with ", ".
	Summary func(selected []Choice[V]) string
}

// Status is the lifecycle of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusDone
)

func (s Status) String() string {
	if s == StatusDone {
		return "done"
	}
	return "idle"
}

// Effect is the side effect requested by a transition.
type Effect int

const (
	EffectNone Effect = iota
	// EffectValidate asks the driver to run Validate on Selection and feed
	// the result back through Resolve.
	EffectValidate
)

type options struct {
	message        string
	pageSize       int
	loop           bool
	required       bool
	allKey         string
	invertKey      string
	searchKey      string
	clearSearchKey string
	keybindings    []string
	scorer         Scorer
	theme          Theme
	keys           keyMap
}

type settings[V any] struct {
	options
	validate func(context.Context, []Choice[V]) error
	summary  func([]Choice[V]) string
}

// State is an immutable snapshot of a prompt session. Every transition
// returns a new State; the item slice is shared until a transition writes
// to it.
type State[V any] struct {
	cfg *settings[V]

	items    []Item[V]
	version  int
	filtered []int

	query     string
	searching bool
	active    int
	preSearch int

	status Status
	errMsg string
}

// New validates cfg and returns the initial state.
func New[V any](cfg Config[V]) (State[V], error) {
	items, err := normalizeItems(cfg.Choices)
	if err != nil {
		return State[V]{}, fmt.Errorf("searchable checkbox: %w", err)
	}

	st := State[V]{
		cfg:       resolveSettings(cfg),
		items:     items,
		preSearch: -1,
	}
	st.filtered = filterIndexes(st.items, "", st.cfg.scorer)
	first := st.firstSelectable()
	if first < 0 {
		return State[V]{}, ErrNoSelectableChoices
	}
	st.active = first
	return st, nil
}

func resolveSettings[V any](cfg Config[V]) *settings[V] {
	o := options{
		message:        cfg.Message,
		pageSize:       cfg.PageSize,
		loop:           true,
		required:       cfg.Required,
		allKey:         defaultAllKey,
		invertKey:      defaultInvertKey,
		searchKey:      cfg.SearchKey,
		clearSearchKey: cfg.ClearSearchKey,
		keybindings:    cfg.Keybindings,
		scorer:         cfg.Scorer,
		theme:          DefaultTheme(),
	}
	if o.pageSize <= 0 {
		o.pageSize = defaultPageSize
	}
	if cfg.Loop != nil {
		o.loop = *cfg.Loop
	}
	if cfg.Shortcuts != nil {
		o.allKey = cfg.Shortcuts.All
		o.invertKey = cfg.Shortcuts.Invert
	}
	if o.searchKey == "" {
		o.searchKey = defaultSearchKey
	}
	if o.clearSearchKey == "" {
		o.clearSearchKey = defaultClearKey
	}
	if o.scorer == nil {
		o.scorer = FuzzyScorer
	}
	if cfg.Theme != nil {
		cfg.Theme(&o.theme)
	}
	o.keys = newKeyMap(&o)

	s := &settings[V]{options: o, validate: cfg.Validate, summary: cfg.Summary}
	if s.summary == nil {
		s.summary = defaultSummary[V]
	}
	return s
}

func defaultSummary[V any](selected []Choice[V]) string {
	labels := make([]string, len(selected))
	for i, c := range selected {
		labels[i] = c.Short
	}
	return strings.Join(labels, defaultSummarySep)
}

// Status reports whether the session is still accepting input.
func (s State[V]) Status() Status { return s.status }

// Query is the current search text.
func (s State[V]) Query() string { return s.query }

// Searching reports whether search mode is on.
func (s State[V]) Searching() bool { return s.searching }

// Active is the cursor position in the filtered view.
func (s State[V]) Active() int { return s.active }

// Err is the message shown below the list, if any.
func (s State[V]) Err() string { return s.errMsg }

// Version increases every time the items are modified.
func (s State[V]) Version() int { return s.version }

// Items returns a copy of all rows in list order.
func (s State[V]) Items() []Item[V] {
	out := make([]Item[V], len(s.items))
	copy(out, s.items)
	return out
}

// Filtered returns the rows currently visible, in display order.
func (s State[V]) Filtered() []Item[V] {
	out := make([]Item[V], len(s.filtered))
	for i, idx := range s.filtered {
		out[i] = s.items[idx]
	}
	return out
}

// ActiveChoice returns the choice under the cursor.
func (s State[V]) ActiveChoice() (Choice[V], bool) {
	idx, ok := s.absolute(s.active)
	if !ok {
		return Choice[V]{}, false
	}
	c, ok := s.items[idx].(Choice[V])
	return c, ok
}

// Selection returns the checked selectable choices in list order.
func (s State[V]) Selection() []Choice[V] {
	var out []Choice[V]
	for _, it := range s.items {
		if isChecked[V](it) {
			out = append(out, it.(Choice[V]))
		}
	}
	return out
}

// Values returns the values of Selection.
func (s State[V]) Values() []V {
	sel := s.Selection()
	out := make([]V, len(sel))
	for i, c := range sel {
		out[i] = c.Value
	}
	return out
}

// Update applies one key press.
func (s State[V]) Update(k Key) (State[V], Effect) {
	if s.status == StatusDone {
		return s, EffectNone
	}
	o := &s.cfg.options

	if !s.searching && k.Name == o.searchKey && !k.Ctrl && !k.Meta {
		s.preSearch, _ = s.absolute(s.active)
		s.searching = true
		s.setQuery("")
		s.errMsg = ""
		return s, EffectNone
	}

	if s.searching {
		switch {
		case k.Name == o.clearSearchKey:
			restore := s.preSearch
			s.preSearch = -1
			s.searching = false
			s.errMsg = ""
			s.setQuery("")
			if restore >= 0 && restore < len(s.filtered) && s.selectableAt(restore) {
				s.active = restore
			} else {
				s.active = max(s.firstSelectable(), 0)
			}
			return s, EffectNone
		case isBackspaceKey(k):
			q := s.query
			if q != "" {
				_, size := utf8.DecodeLastRuneInString(q)
				q = q[:len(q)-size]
			}
			s.setQuery(q)
			s.errMsg = ""
			s.rehome()
			return s, EffectNone
		case isPrintableKey(k):
			s.setQuery(s.query + k.Sequence)
			s.errMsg = ""
			s.rehome()
			return s, EffectNone
		}
	}

	switch {
	case isEnterKey(k):
		return s.submit()
	case isUpKey(k, o.keybindings):
		s.move(-1)
	case isDownKey(k, o.keybindings):
		s.move(1)
	case isSpaceKey(k):
		if idx, ok := s.absolute(s.active); ok && isSelectable[V](s.items[idx]) {
			s.errMsg = ""
			s.toggle(func(i int, _ Choice[V]) bool { return i == idx })
		}
	case !s.searching && o.allKey != "" && k.Name == o.allKey && !k.Ctrl && !k.Meta:
		checkAll := false
		for _, it := range s.items {
			if isSelectable[V](it) && !isChecked[V](it) {
				checkAll = true
				break
			}
		}
		s.setChecked(func(_ int, c Choice[V]) bool { return checkAll })
	case !s.searching && o.invertKey != "" && k.Name == o.invertKey && !k.Ctrl && !k.Meta:
		s.setChecked(func(_ int, c Choice[V]) bool { return !c.Checked })
	default:
		if n, ok := numberKey(k); ok {
			s.selectNth(n)
		}
	}
	return s, EffectNone
}

// Resolve finishes a submit started by EffectValidate. A nil err completes
// the session; otherwise its text becomes the pending error.
func (s State[V]) Resolve(err error) State[V] {
	if s.status == StatusDone {
		return s
	}
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = msgInvalidDefault
		}
		s.errMsg = msg
		return s
	}
	s.status = StatusDone
	s.errMsg = ""
	return s
}

// Validate runs the configured validator against the current selection.
func (s State[V]) Validate(ctx context.Context) error {
	if s.cfg.validate == nil {
		return nil
	}
	return s.cfg.validate(ctx, s.Selection())
}

func (s State[V]) submit() (State[V], Effect) {
	if s.cfg.required && len(s.Selection()) == 0 {
		s.errMsg = msgRequired
		return s, EffectNone
	}
	return s, EffectValidate
}

func (s *State[V]) setQuery(q string) {
	s.query = q
	s.filtered = filterIndexes(s.items, q, s.cfg.scorer)
}

// rehome moves the cursor to the first selectable row when the current
// position no longer points at one.
func (s *State[V]) rehome() {
	if s.active < len(s.filtered) && s.selectableAt(s.active) {
		return
	}
	s.active = max(s.firstSelectable(), 0)
}

func (s *State[V]) move(offset int) {
	first, last := s.bounds()
	if first < 0 {
		return
	}
	if !s.cfg.loop && ((offset < 0 && s.active == first) || (offset > 0 && s.active == last)) {
		return
	}
	n := len(s.filtered)
	next := s.active
	for {
		next = ((next+offset)%n + n) % n
		if s.selectableAt(next) {
			break
		}
	}
	s.active = next
}

func (s *State[V]) selectNth(n int) {
	seen := 0
	for pos := range s.filtered {
		if !s.selectableAt(pos) {
			continue
		}
		seen++
		if seen == n {
			idx := s.filtered[pos]
			s.active = pos
			s.errMsg = ""
			s.toggle(func(i int, _ Choice[V]) bool { return i == idx })
			return
		}
	}
}

// toggle flips every selectable choice for which match returns true.
func (s *State[V]) toggle(match func(int, Choice[V]) bool) {
	s.setChecked(func(i int, c Choice[V]) bool {
		if match(i, c) {
			return !c.Checked
		}
		return c.Checked
	})
}

// setChecked rewrites the checked flag of every selectable choice into a
// fresh item slice.
func (s *State[V]) setChecked(next func(int, Choice[V]) bool) {
	items := make([]Item[V], len(s.items))
	changed := false
	for i, it := range s.items {
		c, ok := it.(Choice[V])
		if !ok || c.IsDisabled() {
			items[i] = it
			continue
		}
		v := next(i, c)
		if v != c.Checked {
			changed = true
			c.Checked = v
		}
		items[i] = c
	}
	if !changed {
		return
	}
	s.items = items
	s.version++
}

func (s State[V]) absolute(pos int) (int, bool) {
	if pos < 0 || pos >= len(s.filtered) {
		return -1, false
	}
	return s.filtered[pos], true
}

func (s State[V]) selectableAt(pos int) bool {
	idx, ok := s.absolute(pos)
	return ok && isSelectable[V](s.items[idx])
}

func (s State[V]) firstSelectable() int {
	first, _ := s.bounds()
	return first
}

// bounds returns the first and last selectable positions in the filtered
// view, or -1, -1.
func (s State[V]) bounds() (int, int) {
	first, last := -1, -1
	for pos := range s.filtered {
		if s.selectableAt(pos) {
			if first < 0 {
				first = pos
			}
			last = pos
		}
	}
	return first, last
}
