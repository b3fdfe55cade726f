package picker

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

// script replays a fixed sequence of events and then reports io.EOF.
type script struct {
	events []Event
	pos    int
}

func (s *script) NextEvent(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	if s.pos >= len(s.events) {
		return Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

type recorder struct {
	frames []Frame
}

func (r *recorder) Render(f Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

type countingSink struct {
	got []string
	err error
}

func (s *countingSink) Deliver(text string) error {
	s.got = append(s.got, text)
	return s.err
}

func TestRun_EndToEnd(t *testing.T) {
	c := NewController(masterOf("git status", "git status", "ls -la"))
	src := &script{events: append(Type("git"), Key(EventConfirm), Char('z'))}
	rec := &recorder{}
	sink := &countingSink{}

	res, err := Run(context.Background(), c, src, rec, sink)
	require.NoError(t, err)

	assert.Equal(t, Confirmed, res.State)
	assert.Equal(t, "git status", res.Text)
	assert.Equal(t, []string{"git status"}, sink.got)

	// Initial frame, three keystrokes, then the confirmation.
	require.Len(t, rec.frames, 5)
	assert.Equal(t, []string{"ls -la", "git status"}, rec.frames[0].Visible)
	assert.Equal(t, []string{"git status"}, rec.frames[3].Visible)
	assert.Equal(t, Confirmed, rec.frames[4].State)

	// Events after the terminal state are never read.
	assert.Equal(t, 4, src.pos)

	_, err = Finish(c, sink)
	require.NoError(t, err)
	assert.Len(t, sink.got, 1, "the sink receives the selection exactly once")
}

func TestRun_NoOpEventsDoNotRender(t *testing.T) {
	c := NewController(masterOf("ls"))
	src := &script{events: []Event{Key(EventUp), Key(EventNone), Key(EventBackspace), Key(EventCancel)}}
	rec := &recorder{}

	res, err := Run(context.Background(), c, src, rec, &countingSink{})
	require.NoError(t, err)
	assert.Equal(t, Cancelled, res.State)
	assert.Len(t, rec.frames, 2)
}

func TestRun_EmptyHistoryOnlyCancelEnds(t *testing.T) {
	c := NewController(nil)
	src := &script{events: append(Type("abc"), Key(EventConfirm), Key(EventDown), Key(EventCancel))}
	sink := &countingSink{}

	res, err := Run(context.Background(), c, src, &recorder{}, sink)
	require.NoError(t, err)
	assert.Equal(t, Cancelled, res.State)
	assert.Empty(t, res.Text)
	assert.Empty(t, sink.got)
}

func TestRun_EOFCancels(t *testing.T) {
	c := NewController(masterOf("ls"))
	sink := &countingSink{}

	res, err := Run(context.Background(), c, &script{events: Type("l")}, &recorder{}, sink)
	require.NoError(t, err)
	assert.Equal(t, Cancelled, res.State)
	assert.Empty(t, sink.got)
}

func TestRun_ContextCancelCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewController(masterOf("ls"))
	res, err := Run(ctx, c, &script{events: Type("ls")}, &recorder{}, &countingSink{})
	require.NoError(t, err)
	assert.Equal(t, Cancelled, res.State)
}

func TestRun_SourceError(t *testing.T) {
	boom := errors.New("tty gone")
	src := SourceFunc(func(context.Context) (Event, error) { return Event{}, boom })

	_, err := Run(context.Background(), NewController(masterOf("ls")), src, &recorder{}, &countingSink{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRun_RenderError(t *testing.T) {
	boom := errors.New("draw failed")
	r := RendererFunc(func(Frame) error { return boom })

	_, err := Run(context.Background(), NewController(nil), &script{}, r, &countingSink{})
	assert.ErrorIs(t, err, boom)
}

func TestRun_SinkFailureKeepsSelection(t *testing.T) {
	c := NewController(masterOf("make build"))
	sink := &countingSink{err: errors.New("no clipboard utility")}

	res, err := Run(context.Background(), c, &script{events: []Event{Key(EventConfirm)}}, &recorder{}, sink)
	require.Error(t, err)
	assert.Equal(t, Confirmed, res.State)
	assert.Equal(t, "make build", res.Text)
	assert.True(t, huierrors.IsSinkUnavailable(err))

	se, ok := huierrors.AsSinkError(err)
	require.True(t, ok)
	assert.Equal(t, "make build", se.Text)

	require.NoError(t, c.Deliver(sink))
	assert.Len(t, sink.got, 1)
}

func TestDeliver_RequiresConfirmed(t *testing.T) {
	c := NewController(masterOf("ls"))
	sink := &countingSink{}

	require.NoError(t, c.Deliver(sink))
	assert.Empty(t, sink.got)

	c.Apply(Key(EventCancel))
	require.NoError(t, c.Deliver(sink))
	assert.Empty(t, sink.got)
}

func TestDeliver_PassesThroughSinkError(t *testing.T) {
	c := NewController(masterOf("ls"))
	c.Apply(Key(EventConfirm))

	want := &huierrors.SinkError{Sink: "clipboard", Text: "ls", Err: errors.New("x")}
	err := c.Deliver(SinkFunc(func(string) error { return want }))
	assert.Same(t, want, err)
}
