// Package output delivers a selected command and formats command lists.
package output

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

// Sink receives a confirmed command. It has the same shape as picker.Sink.
type Sink interface {
	Deliver(text string) error
}

// Sink names accepted by New.
const (
	SinkClipboard = "clipboard"
	SinkStdout    = "stdout"
)

// ClipboardSink copies the selection to the system clipboard.
type ClipboardSink struct {
	// Notify, when set, receives a confirmation line after a successful copy.
	Notify io.Writer

	write func(string) error
}

// NewClipboardSink returns a sink backed by the system clipboard.
func NewClipboardSink(notify io.Writer) *ClipboardSink {
	return &ClipboardSink{Notify: notify}
}

func (s *ClipboardSink) Deliver(text string) error {
	write := s.write
	if write == nil {
		if clipboard.Unsupported {
			return &huierrors.SinkError{Sink: SinkClipboard, Text: text, Err: fmt.Errorf("no clipboard utility available")}
		}
		write = clipboard.WriteAll
	}
	if err := write(text); err != nil {
		return &huierrors.SinkError{Sink: SinkClipboard, Text: text, Err: err}
	}
	if s.Notify != nil {
		fmt.Fprintf(s.Notify, "Copied to clipboard: %s\n", text)
	}
	return nil
}

// WriterSink prints the selection followed by a newline.
type WriterSink struct {
	W    io.Writer
	Name string
}

// NewWriterSink returns a sink that prints to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{W: w, Name: SinkStdout}
}

func (s *WriterSink) Deliver(text string) error {
	if _, err := fmt.Fprintln(s.W, text); err != nil {
		return &huierrors.SinkError{Sink: s.Name, Text: text, Err: err}
	}
	return nil
}

// FallbackSink tries Primary and, if it fails, prints the selection to
// Fallback so it is not lost. The primary failure is still returned.
type FallbackSink struct {
	Primary  Sink
	Fallback io.Writer
}

func (s *FallbackSink) Deliver(text string) error {
	err := s.Primary.Deliver(text)
	if err == nil {
		return nil
	}
	if s.Fallback != nil {
		_, _ = fmt.Fprintln(s.Fallback, text)
	}
	if _, ok := huierrors.AsSinkError(err); ok {
		return err
	}
	return &huierrors.SinkError{Text: text, Err: err}
}

// New builds the sink named by kind. With fallback set, a clipboard sink
// falls back to printing on stdout.
func New(kind string, stdout, stderr io.Writer, fallback bool) (Sink, error) {
	switch kind {
	case SinkStdout:
		return NewWriterSink(stdout), nil
	case SinkClipboard, "":
		cb := NewClipboardSink(stderr)
		if !fallback {
			return cb, nil
		}
		return &FallbackSink{Primary: cb, Fallback: stdout}, nil
	default:
		return nil, huierrors.Invalidf("output sink %q (supported: clipboard, stdout)", kind)
	}
}
