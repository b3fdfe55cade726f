package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	huierrors "github.com/chazuruo/hui/internal/errors"
	"github.com/chazuruo/hui/internal/output"
	"github.com/chazuruo/hui/internal/picker"
)

// Control bytes seen on a raw terminal.
const (
	keyCtrlC     = 0x03
	keyCtrlH     = 0x08
	keyLF        = 0x0a
	keyCtrlN     = 0x0e
	keyCR        = 0x0d
	keyCtrlP     = 0x10
	keyCtrlU     = 0x15
	keyEscape    = 0x1b
	keyBackspace = 0x7f
)

// escapeDelay is how long a lone ESC waits for the rest of an escape
// sequence before it counts as the Escape key.
const escapeDelay = 50 * time.Millisecond

// KeySource decodes raw terminal bytes into picker events. A goroutine
// reads the terminal so that NextEvent can give up on a cancelled context
// and time out a lone ESC.
type KeySource struct {
	in      chan byte
	err     error // read error, valid once in is closed
	pending []byte
	delay   time.Duration
}

// NewKeySource reads keys from r, normally a terminal in raw mode.
func NewKeySource(r io.Reader) *KeySource {
	s := &KeySource{in: make(chan byte, 256), delay: escapeDelay}
	go s.pump(r)
	return s
}

func (s *KeySource) pump(r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			s.in <- b
		}
		if err != nil {
			s.err = err
			close(s.in)
			return
		}
	}
}

// next returns the next byte, blocking until one arrives or ctx is done.
func (s *KeySource) next(ctx context.Context) (byte, error) {
	if len(s.pending) > 0 {
		b := s.pending[0]
		s.pending = s.pending[1:]
		return b, nil
	}
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case b, ok := <-s.in:
		if !ok {
			return 0, s.err
		}
		return b, nil
	}
}

// nextWithin returns the next byte if one arrives within d.
func (s *KeySource) nextWithin(ctx context.Context, d time.Duration) (byte, bool) {
	if len(s.pending) > 0 {
		b, _ := s.next(ctx)
		return b, true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return 0, false
	case <-timer.C:
		return 0, false
	case b, ok := <-s.in:
		return b, ok
	}
}

// NextEvent implements picker.Source.
func (s *KeySource) NextEvent(ctx context.Context) (picker.Event, error) {
	if err := ctx.Err(); err != nil {
		return picker.Event{}, err
	}

	b, err := s.next(ctx)
	if err != nil {
		return picker.Event{}, err
	}

	switch b {
	case keyCtrlC:
		return picker.Key(picker.EventCancel), nil
	case keyBackspace, keyCtrlH:
		return picker.Key(picker.EventBackspace), nil
	case keyCR, keyLF:
		return picker.Key(picker.EventConfirm), nil
	case keyCtrlP:
		return picker.Key(picker.EventUp), nil
	case keyCtrlN:
		return picker.Key(picker.EventDown), nil
	case keyCtrlU:
		return picker.Key(picker.EventClear), nil
	case keyEscape:
		return s.escape(ctx)
	}

	if b < 0x20 {
		return picker.Key(picker.EventNone), nil
	}
	if b < utf8.RuneSelf {
		return picker.Char(rune(b)), nil
	}

	buf := []byte{b}
	for !utf8.FullRune(buf) {
		c, err := s.next(ctx)
		if err != nil {
			return picker.Event{}, err
		}
		buf = append(buf, c)
	}
	r, size := utf8.DecodeRune(buf)
	// Bytes after an invalid lead byte start the next key.
	s.pending = append(buf[size:len(buf):len(buf)], s.pending...)
	if r == utf8.RuneError {
		return picker.Key(picker.EventNone), nil
	}
	return picker.Char(r), nil
}

// escape decodes the rest of an escape sequence. ESC with nothing after it
// within the delay is the Escape key; ESC followed by [ or O starts a
// sequence that is read to its final byte however slowly it arrives.
func (s *KeySource) escape(ctx context.Context) (picker.Event, error) {
	intro, ok := s.nextWithin(ctx, s.delay)
	if !ok {
		return picker.Key(picker.EventCancel), nil
	}
	if intro != '[' && intro != 'O' {
		return picker.Key(picker.EventNone), nil
	}

	var params []byte
	for {
		c, err := s.next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return picker.Key(picker.EventNone), nil
			}
			return picker.Event{}, err
		}
		if c >= '0' && c <= '9' || c == ';' {
			params = append(params, c)
			continue
		}
		return csiEvent(c, string(params)), nil
	}
}

func csiEvent(final byte, params string) picker.Event {
	switch final {
	case 'A':
		return picker.Key(picker.EventUp)
	case 'B':
		return picker.Key(picker.EventDown)
	case 'H':
		return picker.Key(picker.EventHome)
	case 'F':
		return picker.Key(picker.EventEnd)
	case '~':
		switch params {
		case "1", "7":
			return picker.Key(picker.EventHome)
		case "4", "8":
			return picker.Key(picker.EventEnd)
		case "5":
			return picker.Key(picker.EventPageUp)
		case "6":
			return picker.Key(picker.EventPageDown)
		}
	}
	return picker.Key(picker.EventNone)
}

// ANSIRenderer redraws the picker in place below the cursor using ANSI
// escape sequences. Lines end in CRLF because raw mode disables output
// post-processing.
type ANSIRenderer struct {
	w        io.Writer
	width    int
	showHelp bool
	drawn    int

	prompt   lipgloss.Style
	selected lipgloss.Style
	dim      lipgloss.Style
}

// NewANSIRenderer draws on w, fitting rows to width cells. Styles follow
// the color profile detected for w.
func NewANSIRenderer(w io.Writer, width int, showHelp bool) *ANSIRenderer {
	re := lipgloss.NewRenderer(w)
	return &ANSIRenderer{
		w:        w,
		width:    max(1, width),
		showHelp: showHelp,
		prompt:   re.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		selected: re.NewStyle().Reverse(true),
		dim:      re.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Render implements picker.Renderer. A terminal frame erases the picker.
func (r *ANSIRenderer) Render(f picker.Frame) error {
	var b strings.Builder
	if r.drawn > 1 {
		fmt.Fprintf(&b, "\x1b[%dA", r.drawn-1)
	}
	b.WriteString("\r\x1b[J")

	if f.State.Terminal() {
		r.drawn = 0
		_, err := io.WriteString(r.w, b.String())
		return err
	}

	lines := []string{r.prompt.Render("> ") + output.Truncate(output.Flatten(f.Query), r.width-2)}
	for i, text := range f.Visible {
		row := output.Row(text, r.width-2)
		if i == f.Highlighted {
			lines = append(lines, r.selected.Render("> "+row))
		} else {
			lines = append(lines, "  "+row)
		}
	}
	if f.Total == 0 {
		lines = append(lines, r.dim.Render("  No commands found in shell history."))
	}
	status := fmt.Sprintf("  %d/%d", f.Matches, f.Total)
	if r.showHelp {
		status += "  enter copy, ↑/↓ move, ctrl+u clear, esc quit"
	}
	lines = append(lines, r.dim.Render(output.Truncate(status, r.width)))

	b.WriteString(strings.Join(lines, "\r\n"))
	r.drawn = len(lines)

	_, err := io.WriteString(r.w, b.String())
	return err
}

func runBasic(ctx context.Context, ctrl *picker.Controller, opts Options, sink picker.Sink) (picker.Result, error) {
	in := os.Stdin
	if !term.IsTerminal(int(in.Fd())) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return picker.Result{State: ctrl.State()}, huierrors.Wrap(err, "open terminal")
		}
		defer tty.Close()
		in = tty
	}

	fd := int(in.Fd())
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return picker.Result{State: ctrl.State()}, huierrors.Wrap(err, "enter raw mode")
	}

	width, height, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil {
		width, height = defaultWidth, ctrl.Height()+2
	}
	chrome := 2
	ctrl.Resize(max(1, min(ctrl.Height(), height-chrome)))

	_, runErr := picker.Run(ctx, ctrl, NewKeySource(in), NewANSIRenderer(os.Stderr, width, opts.ShowHelp), nil)
	if err := term.Restore(fd, saved); err != nil && runErr == nil {
		runErr = huierrors.Wrap(err, "restore terminal")
	}
	if runErr != nil {
		return picker.Result{State: ctrl.State()}, runErr
	}
	return finish(ctrl, sink)
}
