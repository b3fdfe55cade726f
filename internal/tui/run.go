package tui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/chazuruo/hui/internal/config"
	huierrors "github.com/chazuruo/hui/internal/errors"
	"github.com/chazuruo/hui/internal/picker"
)

// Run presents ctrl with the named backend until the user confirms or
// cancels, then hands a confirmed selection to sink.
func Run(ctx context.Context, backend string, ctrl *picker.Controller, opts Options, sink picker.Sink) (picker.Result, error) {
	opts.logger().Debug("starting picker",
		zap.String("backend", backend),
		zap.Int("height", ctrl.Height()))

	switch backend {
	case config.BackendBubbletea, "":
		return runBubbletea(ctx, ctrl, opts, sink)
	case config.BackendTview:
		return runTview(ctx, ctrl, opts, sink)
	case config.BackendBasic:
		return runBasic(ctx, ctrl, opts, sink)
	default:
		return picker.Result{State: ctrl.State()}, huierrors.Invalidf("backend %q (supported: bubbletea, tview, basic)", backend)
	}
}

func runBubbletea(ctx context.Context, ctrl *picker.Controller, opts Options, sink picker.Sink) (picker.Result, error) {
	progOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	_, err := tea.NewProgram(NewModel(ctrl, opts), progOpts...).Run()
	if err != nil && !interrupted(ctx, err) {
		return picker.Result{State: ctrl.State()}, huierrors.Wrap(err, "run bubbletea")
	}
	return finish(ctrl, sink)
}

// interrupted reports whether err only says the session was cut short.
func interrupted(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, tea.ErrProgramKilled) ||
		errors.Is(err, tea.ErrInterrupted) ||
		errors.Is(err, context.Canceled)
}

// finish cancels a session that ended without reaching a terminal state,
// then reports the outcome.
func finish(ctrl *picker.Controller, sink picker.Sink) (picker.Result, error) {
	if !ctrl.State().Terminal() {
		ctrl.Apply(picker.Key(picker.EventCancel))
	}
	return picker.Finish(ctrl, sink)
}
