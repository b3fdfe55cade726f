// Package tui provides the interactive front ends for the history picker.
//
// Every backend drives the same picker.Controller. Key input is
// translated into picker events and each Frame is drawn in the backend's
// own toolkit. Selections are delivered only after the terminal is
// restored, so messages printed by the sink are not lost.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/chazuruo/hui/internal/output"
	"github.com/chazuruo/hui/internal/picker"
)

const (
	defaultWidth  = 80
	previewHeight = 3
)

// Options holds presentation settings common to all backends.
type Options struct {
	ShowHelp    bool
	ShowPreview bool
	Log         *zap.Logger
	// Now is the clock for "last used" labels. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) logger() *zap.Logger {
	if o.Log != nil {
		return o.Log
	}
	return zap.NewNop()
}

// Model is a Bubble Tea model over a picker.Controller. The controller owns
// the query and cursor; the text input only displays the query.
type Model struct {
	ctrl  *picker.Controller
	frame picker.Frame
	opts  Options

	// maxHeight is the configured list height; the window may shrink it.
	maxHeight int
	width     int

	keys    keyMap
	help    help.Model
	input   textinput.Model
	preview viewport.Model
	styles  styles
}

// NewModel creates a model showing ctrl's current frame.
func NewModel(ctrl *picker.Controller, opts Options) Model {
	st := defaultStyles()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = st.prompt
	ti.Placeholder = "Search history..."
	ti.Focus()

	m := Model{
		ctrl:      ctrl,
		opts:      opts,
		maxHeight: ctrl.Height(),
		width:     defaultWidth,
		keys:      defaultKeyMap(),
		help:      help.New(),
		input:     ti,
		preview:   viewport.New(defaultWidth-4, previewHeight),
		styles:    st,
	}
	m.sync()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(1, msg.Width)
		m.help.Width = msg.Width
		m.preview.Width = max(1, msg.Width-4)
		m.ctrl.Resize(m.listHeight(msg.Height))
		m.sync()
		return m, nil

	case tea.KeyMsg:
		for _, ev := range m.keys.teaEvents(msg) {
			m.ctrl.Apply(ev)
		}
		m.sync()
		if m.frame.State.Terminal() {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// listHeight fits the result list into a terminal of the given height.
func (m Model) listHeight(termHeight int) int {
	reserved := 2 // query and status lines
	if m.opts.ShowHelp {
		reserved++
	}
	if m.opts.ShowPreview {
		reserved += previewHeight + 2
	}
	return max(1, min(m.maxHeight, termHeight-reserved))
}

// sync copies the controller state into the display components.
func (m *Model) sync() {
	m.frame = m.ctrl.Frame()
	m.input.SetValue(m.frame.Query)
	m.input.CursorEnd()
	if m.opts.ShowPreview {
		m.preview.SetContent(m.previewContent())
		m.preview.GotoTop()
	}
}

func (m Model) previewContent() string {
	cur := m.frame.Current
	if cur == nil {
		return ""
	}
	var last *time.Time
	if t, ok := cur.LastUsed(); ok {
		last = &t
	}
	times := "times"
	if cur.Occurrences == 1 {
		times = "time"
	}
	meta := fmt.Sprintf("used %s %s, last %s", humanize.Comma(int64(cur.Occurrences)), times, output.LastUsed(last, m.opts.now()))
	return cur.Text + "\n" + meta
}

// View implements tea.Model.
func (m Model) View() string {
	if m.frame.State.Terminal() {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	f := m.frame
	rowWidth := max(1, m.width-2)
	switch {
	case f.Total == 0:
		b.WriteString(m.styles.empty.Render("  No commands found in shell history."))
		b.WriteString("\n")
	case len(f.Visible) == 0:
		b.WriteString(m.styles.empty.Render("  (no matches)"))
		b.WriteString("\n")
	}
	for i, text := range f.Visible {
		row := output.Row(text, rowWidth)
		if i == f.Highlighted {
			b.WriteString(m.styles.selected.Render("› " + row))
		} else {
			b.WriteString(m.styles.normal.Render("  " + row))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.status.Render(fmt.Sprintf("  %d/%d", f.Matches, f.Total)))
	b.WriteString("\n")

	if m.opts.ShowPreview && f.Current != nil {
		b.WriteString(m.styles.preview.Width(max(1, m.width-2)).Render(m.preview.View()))
		b.WriteString("\n")
	}
	if m.opts.ShowHelp {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// Frame returns the last frame drawn.
func (m Model) Frame() picker.Frame {
	return m.frame
}
