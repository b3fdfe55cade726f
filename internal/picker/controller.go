// Package picker implements the interactive selection state machine.
//
// A Controller owns the query, the current matches, and the cursor. Each
// Event is applied synchronously and yields a Frame for the renderer.
// The controller never draws and never talks to a terminal: front ends
// translate their key input into Events and their Frames into pixels.
package picker

import (
	"unicode"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/chazuruo/hui/internal/filter"
	"github.com/chazuruo/hui/internal/rank"
)

// DefaultHeight is the viewport height used when none is configured.
const DefaultHeight = 20

// State is the controller mode.
type State int

const (
	// Browsing accepts input. It is the initial state.
	Browsing State = iota
	// Confirmed carries the selected command. Terminal.
	Confirmed
	// Cancelled ends without a selection. Terminal.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further events are accepted.
func (s State) Terminal() bool { return s != Browsing }

// Frame is the render model for one state of the controller.
type Frame struct {
	// Visible is the window of matched command texts.
	Visible []string
	// Highlighted indexes Visible, or is -1 when nothing matches.
	Highlighted int
	Query       string
	// Matches is the number of matches, Total the size of the master list.
	Matches int
	Total   int
	// Offset is the index of Visible[0] within the matches.
	Offset int
	Height int
	State  State
	// Selected is the full text of the highlighted command, or the confirmed
	// command once State is Confirmed.
	Selected string
	// Current is the highlighted command, nil when nothing matches.
	Current *rank.RankedCommand
}

// Option configures a Controller.
type Option func(*Controller)

// WithHeight sets the number of visible rows. Values below 1 are ignored.
func WithHeight(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.height = n
		}
	}
}

// WithQuery starts the controller with a non-empty query.
func WithQuery(q string) Option {
	return func(c *Controller) {
		c.query = []rune(q)
	}
}

// WithLogger attaches a logger for state transitions.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// Controller is the selection state machine. It is not safe for
// concurrent use; a front end drives it from a single goroutine.
type Controller struct {
	engine *filter.Engine
	height int
	log    *zap.Logger

	query   []rune
	matches []*rank.RankedCommand
	cursor  int
	offset  int

	state     State
	selected  string
	delivered bool
}

// NewController creates a controller in the Browsing state over master.
func NewController(master []*rank.RankedCommand, opts ...Option) *Controller {
	c := &Controller{
		engine: filter.New(master),
		height: DefaultHeight,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.matches = c.engine.Filter(string(c.query))
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Query returns the current query.
func (c *Controller) Query() string { return string(c.query) }

// Cursor returns the cursor index into the matches.
func (c *Controller) Cursor() int { return c.cursor }

// Matches returns the current matches. The slice must not be modified.
func (c *Controller) Matches() []*rank.RankedCommand { return c.matches }

// Height returns the viewport height.
func (c *Controller) Height() int { return c.height }

// Selected returns the confirmed command.
func (c *Controller) Selected() (string, bool) {
	return c.selected, c.state == Confirmed
}

// Apply feeds one event to the controller. It returns the resulting frame
// and whether anything observable changed. Events that change nothing,
// including every event after a terminal state, report false.
func (c *Controller) Apply(ev Event) (Frame, bool) {
	if c.state.Terminal() {
		return c.Frame(), false
	}

	changed := c.apply(ev)
	if changed {
		c.log.Debug("picker event",
			zap.Stringer("event", ev),
			zap.Stringer("state", c.state),
			zap.Int("matches", len(c.matches)),
			zap.Int("cursor", c.cursor))
	}
	return c.Frame(), changed
}

func (c *Controller) apply(ev Event) bool {
	last := len(c.matches) - 1

	switch ev.Kind {
	case EventChar:
		if !unicode.IsPrint(ev.Rune) {
			return false
		}
		c.query = append(c.query, ev.Rune)
		c.refilter()
		return true

	case EventBackspace:
		if len(c.query) == 0 {
			return false
		}
		c.query = c.query[:len(c.query)-1]
		c.refilter()
		return true

	case EventClear:
		if len(c.query) == 0 {
			return false
		}
		c.query = c.query[:0]
		c.refilter()
		return true

	case EventUp:
		return c.moveTo(c.cursor - 1)
	case EventDown:
		return c.moveTo(c.cursor + 1)
	case EventPageUp:
		return c.moveTo(c.cursor - c.height)
	case EventPageDown:
		return c.moveTo(c.cursor + c.height)
	case EventHome:
		return c.moveTo(0)
	case EventEnd:
		return c.moveTo(last)

	case EventConfirm:
		if len(c.matches) == 0 {
			return false
		}
		c.state = Confirmed
		c.selected = c.matches[c.cursor].Text
		return true

	case EventCancel:
		c.state = Cancelled
		return true
	}

	return false
}

// refilter recomputes the matches and resets the cursor and scroll.
func (c *Controller) refilter() {
	c.matches = c.engine.Filter(string(c.query))
	c.cursor = 0
	c.offset = 0
}

// moveTo clamps i into the match range and scrolls so the cursor stays
// visible. It reports whether the cursor moved.
func (c *Controller) moveTo(i int) bool {
	if len(c.matches) == 0 {
		return false
	}
	i = max(0, min(i, len(c.matches)-1))
	if i == c.cursor {
		return false
	}
	c.cursor = i
	c.scroll()
	return true
}

func (c *Controller) scroll() {
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.height {
		c.offset = c.cursor - c.height + 1
	}
	// Keep the window full when the list shrinks below it.
	c.offset = max(0, min(c.offset, len(c.matches)-c.height))
}

// Resize changes the viewport height and reports whether the frame changed.
func (c *Controller) Resize(height int) bool {
	if height < 1 || height == c.height {
		return false
	}
	c.height = height
	c.scroll()
	return true
}

// Frame builds the render model for the current state.
func (c *Controller) Frame() Frame {
	end := min(c.offset+c.height, len(c.matches))
	window := c.matches[c.offset:end]

	f := Frame{
		Visible:     lo.Map(window, func(rc *rank.RankedCommand, _ int) string { return rc.Text }),
		Highlighted: -1,
		Query:       string(c.query),
		Matches:     len(c.matches),
		Total:       c.engine.Len(),
		Offset:      c.offset,
		Height:      c.height,
		State:       c.state,
	}
	if len(c.matches) > 0 {
		f.Highlighted = c.cursor - c.offset
		f.Current = c.matches[c.cursor]
		f.Selected = f.Current.Text
	}
	if c.state == Confirmed {
		f.Selected = c.selected
	}
	return f
}
