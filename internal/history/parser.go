package history

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

// grammar classifies physical lines for one shell kind.
type grammar interface {
	// normalize rewrites the raw bytes of one physical line, newline removed.
	normalize(line []byte) []byte
	// begin reads the first physical line of a record. malformed is set when
	// the line looked structured but its metadata could not be parsed.
	begin(line string) (rec Record, malformed bool)
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger attaches a logger for the per-parse summary.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// Parser converts history sources into entries for one shell kind.
// A Parser is not safe for concurrent use.
type Parser struct {
	kind    ShellKind
	grammar grammar
	decoder *textDecoder
	log     *zap.Logger
}

// NewParser creates a Parser for the given shell kind.
func NewParser(kind ShellKind, opts ...Option) (*Parser, error) {
	var g grammar
	switch kind {
	case ShellBash:
		g = bashGrammar{}
	case ShellZsh:
		g = newZshGrammar()
	default:
		return nil, huierrors.Invalidf("shell kind %s", kind)
	}

	p := &Parser{
		kind:    kind,
		grammar: g,
		decoder: newTextDecoder(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Kind returns the shell kind the parser was built for.
func (p *Parser) Kind() ShellKind { return p.kind }

// Parse reads every source in order and returns the entries found.
// Sequence numbers continue across sources. The only error is a source
// that fails to read, reported as a SourceError.
func (p *Parser) Parse(sources ...Source) ([]Entry, error) {
	entries, _, err := p.ParseWithStats(sources...)
	return entries, err
}

// ParseWithStats is Parse with a summary of the pass.
func (p *Parser) ParseWithStats(sources ...Source) ([]Entry, Stats, error) {
	var (
		entries []Entry
		stats   Stats
	)
	for _, src := range sources {
		n := len(entries)
		var err error
		entries, err = p.parseSource(src, entries, &stats)
		if err != nil {
			p.log.Warn("history source unreadable",
				zap.String("source", src.Name),
				zap.Error(err))
			return nil, stats, &huierrors.SourceError{Path: src.Name, Err: err}
		}
		stats.Sources++
		p.log.Debug("history source parsed",
			zap.String("source", src.Name),
			zap.Int("entries", len(entries)-n))
	}
	stats.Entries = len(entries)

	p.log.Info("history parsed",
		zap.String("shell", p.kind.String()),
		zap.Int("sources", stats.Sources),
		zap.Int("lines", stats.Lines),
		zap.Int("entries", stats.Entries),
		zap.Int("malformed", stats.Malformed))

	return entries, stats, nil
}

// parseSource appends the entries of one source to out.
func (p *Parser) parseSource(src Source, out []Entry, stats *Stats) ([]Entry, error) {
	if src.Reader == nil {
		return out, fmt.Errorf("no reader")
	}

	r := bufio.NewReaderSize(src.Reader, 64*1024)

	var (
		pending strings.Builder
		open    bool // a record is waiting for its continuation line
		rec     Record
	)

	emit := func() {
		text := trimCommand(pending.String())
		pending.Reset()
		open = false
		if text == "" {
			return
		}
		rec.Text = text
		out = append(out, rec.Entry(len(out)))
	}

	for {
		raw, err := r.ReadBytes('\n')
		if len(raw) > 0 {
			stats.Lines++
			raw = bytes.TrimSuffix(raw, []byte{'\n'})
			raw = bytes.TrimSuffix(raw, []byte{'\r'})
			line := p.decoder.decode(p.grammar.normalize(raw))

			var body string
			if open {
				body = line
			} else {
				var malformed bool
				rec, malformed = p.grammar.begin(line)
				if malformed {
					stats.Malformed++
				}
				body = rec.Text
			}

			if rest, more := cutContinuation(body); more {
				pending.WriteString(rest)
				pending.WriteByte('\n')
				open = true
			} else {
				pending.WriteString(body)
				emit()
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, err
		}
	}

	// A continuation left open at the end of a source ends the record there.
	if open {
		emit()
	}
	return out, nil
}

// cutContinuation reports whether s ends with an unescaped backslash and,
// if so, returns s without it. An even run of trailing backslashes is a
// sequence of escaped backslashes, not a continuation marker.
func cutContinuation(s string) (string, bool) {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	if n%2 == 1 {
		return s[:len(s)-1], true
	}
	return s, false
}

// trimCommand trims surrounding whitespace from s, except a whitespace
// rune escaped by the backslash run before it, which stays part of the
// command.
func trimCommand(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	t := strings.TrimRightFunc(s, unicode.IsSpace)
	if len(t) == len(s) {
		return t
	}
	if _, escaped := cutContinuation(t); escaped {
		_, size := utf8.DecodeRuneInString(s[len(t):])
		return s[:len(t)+size]
	}
	return t
}

// ParseBytes parses in-memory buffers as consecutive sources.
func ParseBytes(kind ShellKind, bufs ...[]byte) ([]Entry, error) {
	p, err := NewParser(kind)
	if err != nil {
		return nil, err
	}
	sources := make([]Source, len(bufs))
	for i, b := range bufs {
		sources[i] = Source{
			Name:   fmt.Sprintf("buffer-%d", i),
			Reader: bytes.NewReader(b),
		}
	}
	return p.Parse(sources...)
}
