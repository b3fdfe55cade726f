// Package history parses bash and zsh history files into entries.
package history

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

// ShellKind selects the history grammar.
type ShellKind int

const (
	// ShellBash reads one command per line with backslash continuation.
	ShellBash ShellKind = iota
	// ShellZsh reads zsh extended history (": <ts>:<dur>;<cmd>").
	ShellZsh
)

func (k ShellKind) String() string {
	switch k {
	case ShellBash:
		return "bash"
	case ShellZsh:
		return "zsh"
	default:
		return fmt.Sprintf("ShellKind(%d)", int(k))
	}
}

// Valid reports whether k is one of the known shell kinds.
func (k ShellKind) Valid() bool {
	return k == ShellBash || k == ShellZsh
}

// ParseShellKind accepts "bash" or "zsh" in any case, or a path to either
// shell binary such as "/usr/bin/zsh".
func ParseShellKind(s string) (ShellKind, error) {
	name := strings.ToLower(filepath.Base(strings.TrimSpace(s)))
	switch name {
	case "bash":
		return ShellBash, nil
	case "zsh":
		return ShellZsh, nil
	default:
		return 0, huierrors.Invalidf("shell %q (supported: bash, zsh)", s)
	}
}

// Entry is one command occurrence as read from a history source.
type Entry struct {
	// Text is the full command. Multi-line commands keep their line breaks.
	Text string

	// Timestamp is seconds since the epoch, set only for zsh extended records.
	Timestamp *int64

	// Duration is the elapsed seconds, set only for zsh extended records.
	Duration *int64

	// Sequence is the position of the entry across all parsed sources.
	Sequence int
}

// RecordKind tags which grammar branch produced a Record.
type RecordKind int

const (
	// RecordPlain carries text only.
	RecordPlain RecordKind = iota
	// RecordStructured carries a timestamp and duration as well.
	RecordStructured
)

// Record is one logical history record before sequence numbering.
type Record struct {
	Kind      RecordKind
	Text      string
	Timestamp int64
	Duration  int64
}

// Entry converts the record into an Entry with the given sequence number.
func (r Record) Entry(seq int) Entry {
	e := Entry{Text: r.Text, Sequence: seq}
	if r.Kind == RecordStructured {
		ts, dur := r.Timestamp, r.Duration
		e.Timestamp = &ts
		e.Duration = &dur
	}
	return e
}

// Source is a named stream of history bytes.
type Source struct {
	// Name identifies the source in errors and logs, usually the file path.
	Name   string
	Reader io.Reader
}

// Stats summarizes one parse pass.
type Stats struct {
	Sources   int
	Lines     int
	Entries   int
	Malformed int
}
