package app

import (
	"context"

	"go.uber.org/zap"

	huierrors "github.com/chazuruo/hui/internal/errors"
	"github.com/chazuruo/hui/internal/picker"
	"github.com/chazuruo/hui/internal/rank"
	"github.com/chazuruo/hui/internal/tui"
)

// Runner presents a controller and delivers the outcome. tui.Run is the
// production runner.
type Runner func(ctx context.Context, backend string, ctrl *picker.Controller, opts tui.Options, sink picker.Sink) (picker.Result, error)

// SelectOptions configures one interactive session.
type SelectOptions struct {
	Backend     string
	Query       string
	Height      int
	ShowHelp    bool
	ShowPreview bool
	Sink        picker.Sink
	Log         *zap.Logger

	// Run overrides the runner, for tests.
	Run Runner
}

// Select runs the picker over commands. A cancelled session returns
// ErrCanceled; a confirmed one has already been delivered to the sink.
func Select(ctx context.Context, commands []*rank.RankedCommand, opts SelectOptions) (picker.Result, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	run := opts.Run
	if run == nil {
		run = tui.Run
	}

	ctrl := picker.NewController(commands,
		picker.WithHeight(opts.Height),
		picker.WithQuery(opts.Query),
		picker.WithLogger(log))

	res, err := run(ctx, opts.Backend, ctrl, tui.Options{
		ShowHelp:    opts.ShowHelp,
		ShowPreview: opts.ShowPreview,
		Log:         log,
	}, opts.Sink)
	if err != nil {
		log.Error("picker failed", zap.Error(err))
		return res, err
	}

	log.Info("picker finished",
		zap.Stringer("state", res.State),
		zap.Int("length", len(res.Text)))

	if res.State != picker.Confirmed {
		return res, huierrors.ErrCanceled
	}
	return res, nil
}
