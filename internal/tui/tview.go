package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	huierrors "github.com/chazuruo/hui/internal/errors"
	"github.com/chazuruo/hui/internal/output"
	"github.com/chazuruo/hui/internal/picker"
)

// tviewView holds the primitives of the tview backend.
type tviewView struct {
	query  *tview.TextView
	list   *tview.List
	status *tview.TextView
	help   *tview.TextView
	layout *tview.Flex
}

func newTviewView(opts Options) *tviewView {
	v := &tviewView{
		query:  tview.NewTextView().SetDynamicColors(true),
		list:   tview.NewList().ShowSecondaryText(false).SetHighlightFullLine(true),
		status: tview.NewTextView().SetDynamicColors(true),
		help:   tview.NewTextView().SetDynamicColors(true),
	}
	v.list.SetSelectedBackgroundColor(tcell.ColorSlateBlue)
	v.list.SetSelectedTextColor(tcell.ColorLightYellow)
	v.list.SetMainTextColor(tcell.ColorSilver)
	v.help.SetText("[::b]enter[::-] copy  [::b]↑/↓[::-] move  [::b]ctrl+u[::-] clear  [::b]esc[::-] quit")

	v.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.query, 1, 0, false).
		AddItem(v.list, 0, 1, true).
		AddItem(v.status, 1, 0, false)
	if opts.ShowHelp {
		v.layout.AddItem(v.help, 1, 0, false)
	}
	return v
}

// render draws f. List entries are escaped so brackets in commands are
// not read as color tags.
func (v *tviewView) render(f picker.Frame, width int) {
	v.query.SetText("[aqua::b]> [-::-]" + tview.Escape(f.Query))

	v.list.Clear()
	for _, text := range f.Visible {
		v.list.AddItem(tview.Escape(output.Row(text, max(1, width-2))), "", 0, nil)
	}
	switch {
	case f.Total == 0:
		v.list.AddItem("[gray::i]No commands found in shell history.", "", 0, nil)
	case len(f.Visible) == 0:
		v.list.AddItem("[gray::i](no matches)", "", 0, nil)
	}
	if f.Highlighted >= 0 {
		v.list.SetCurrentItem(f.Highlighted)
	}

	v.status.SetText(fmt.Sprintf("[gray]%d/%d", f.Matches, f.Total))
}

func runTview(ctx context.Context, ctrl *picker.Controller, opts Options, sink picker.Sink) (picker.Result, error) {
	app := tview.NewApplication()
	view := newTviewView(opts)
	maxHeight := ctrl.Height()
	width := defaultWidth

	view.render(ctrl.Frame(), width)

	// Chrome rows around the list: query, status and the optional help.
	chrome := 2
	if opts.ShowHelp {
		chrome++
	}
	app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		w, h := screen.Size()
		resized := ctrl.Resize(max(1, min(maxHeight, h-chrome)))
		if resized || w != width {
			width = w
			view.render(ctrl.Frame(), width)
		}
		return false
	})

	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		frame, changed := ctrl.Apply(tcellEvent(ev))
		if changed {
			view.render(frame, width)
		}
		if frame.State.Terminal() {
			app.Stop()
		}
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			app.Stop()
		case <-done:
		}
	}()

	if err := app.SetRoot(view.layout, true).SetFocus(view.list).Run(); err != nil {
		return picker.Result{State: ctrl.State()}, huierrors.Wrap(err, "run tview")
	}
	return finish(ctrl, sink)
}
