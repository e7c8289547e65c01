package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// RunOption customises the terminal program behind Run.
type RunOption func(*runOptions)

type runOptions struct {
	input  io.Reader
	output io.Writer
}

// WithInput reads key presses from r instead of stdin.
func WithInput(r io.Reader) RunOption {
	return func(o *runOptions) { o.input = r }
}

// WithOutput draws frames to w instead of stdout.
func WithOutput(w io.Writer) RunOption {
	return func(o *runOptions) { o.output = w }
}

// validatedMsg carries the result of a Validate call back into the model.
type validatedMsg struct {
	err error
}

// model adapts a State to bubbletea.
type model[V any] struct {
	ctx        context.Context
	state      State[V]
	width      int
	validating bool
	cancelled  bool
}

func newModel[V any](ctx context.Context, st State[V]) model[V] {
	return model[V]{ctx: ctx, state: st}
}

func (m model[V]) Init() tea.Cmd { return nil }

func (m model[V]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case validatedMsg:
		m.validating = false
		m.state = m.state.Resolve(msg.err)
		if m.state.Status() == StatusDone {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.state.cfg.keys.Cancel) {
			m.cancelled = true
			return m, tea.Quit
		}
		if m.validating {
			return m, nil
		}
		next, effect := m.state.Update(keyFromMsg(msg))
		m.state = next
		if effect == EffectValidate {
			m.validating = true
			return m, m.validate()
		}
	}
	return m, nil
}

func (m model[V]) validate() tea.Cmd {
	st := m.state
	ctx := m.ctx
	return func() tea.Msg {
		return validatedMsg{err: st.Validate(ctx)}
	}
}

func (m model[V]) View() string {
	if m.cancelled {
		return ""
	}
	return Render(m.state, m.width) + "\n"
}

// Run shows the prompt described by cfg and blocks until the user commits a
// selection, cancels with ctrl+c, or ctx is done. The committed values are
// returned in list order.
func Run[V any](ctx context.Context, cfg Config[V], opts ...RunOption) ([]V, error) {
	st, err := New(cfg)
	if err != nil {
		return nil, err
	}

	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}
	teaOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if ro.input != nil {
		teaOpts = append(teaOpts, tea.WithInput(ro.input))
	}
	if ro.output != nil {
		teaOpts = append(teaOpts, tea.WithOutput(ro.output))
	}

	final, err := tea.NewProgram(newModel(ctx, st), teaOpts...).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, tea.ErrInterrupted) || errors.Is(err, tea.ErrProgramKilled) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("run prompt: %w", err)
	}

	m, ok := final.(model[V])
	if !ok || m.cancelled || m.state.Status() != StatusDone {
		return nil, ErrCancelled
	}
	return m.state.Values(), nil
}
