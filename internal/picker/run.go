package picker

import (
	"context"
	"errors"
	"io"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

// Source yields the next input event. NextEvent may block until the user
// types. io.EOF or a context error ends the session as a cancel.
type Source interface {
	NextEvent(ctx context.Context) (Event, error)
}

// Renderer draws one frame.
type Renderer interface {
	Render(Frame) error
}

// Sink receives the confirmed command.
type Sink interface {
	Deliver(text string) error
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (Event, error)

func (f SourceFunc) NextEvent(ctx context.Context) (Event, error) { return f(ctx) }

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame) error

func (f RendererFunc) Render(fr Frame) error { return f(fr) }

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string) error

func (f SinkFunc) Deliver(text string) error { return f(text) }

// Result is the outcome of a session.
type Result struct {
	State State
	// Text is the confirmed command, empty unless State is Confirmed.
	Text string
}

// Run drives c until it reaches a terminal state. It renders the initial
// frame, then renders once after every event that changed the controller.
// A confirmed selection is handed to sink exactly once.
func Run(ctx context.Context, c *Controller, src Source, r Renderer, sink Sink) (Result, error) {
	if err := r.Render(c.Frame()); err != nil {
		return Result{State: c.State()}, huierrors.Wrap(err, "render")
	}

	for !c.State().Terminal() {
		ev, err := src.NextEvent(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil && !errors.Is(err, context.Canceled) {
				return Result{State: c.State()}, huierrors.Wrap(err, "read input")
			}
			ev = Key(EventCancel)
		}

		frame, changed := c.Apply(ev)
		if !changed {
			continue
		}
		if err := r.Render(frame); err != nil {
			return Result{State: c.State()}, huierrors.Wrap(err, "render")
		}
	}

	return Finish(c, sink)
}

// Finish reports the outcome of c and, when confirmed, delivers the
// selection to sink. It is how front ends that own their own event loop
// complete a session.
func Finish(c *Controller, sink Sink) (Result, error) {
	res := Result{State: c.State()}
	if c.State() != Confirmed {
		return res, nil
	}
	res.Text = c.selected
	return res, c.Deliver(sink)
}

// Deliver hands the confirmed selection to sink. It does nothing unless the
// controller is Confirmed, and never delivers twice. Sink failures are
// reported as SinkError carrying the selection.
func (c *Controller) Deliver(sink Sink) error {
	if c.state != Confirmed || c.delivered || sink == nil {
		return nil
	}
	c.delivered = true

	if err := sink.Deliver(c.selected); err != nil {
		if _, ok := huierrors.AsSinkError(err); ok {
			return err
		}
		return &huierrors.SinkError{Text: c.selected, Err: err}
	}
	return nil
}
