package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
	"gopkg.in/yaml.v3"

	huierrors "github.com/chazuruo/hui/internal/errors"
	"github.com/chazuruo/hui/internal/rank"
)

// Format is the output format of a command listing.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatPlain Format = "plain"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML, FormatPlain:
		return f, nil
	default:
		return "", huierrors.Invalidf("format %q (must be table, json, yaml, or plain)", s)
	}
}

// tableCommandWidth caps the command column in table output.
const tableCommandWidth = 72

// Item is one ranked command in a listing.
type Item struct {
	Rank        int        `json:"rank" yaml:"rank"`
	Command     string     `json:"command" yaml:"command"`
	Occurrences int        `json:"occurrences" yaml:"occurrences"`
	Score       float64    `json:"score" yaml:"score"`
	LastUsed    *time.Time `json:"last_used,omitempty" yaml:"last_used,omitempty"`
}

// Items converts the first limit commands of list into listing items.
// A limit of zero or less keeps everything.
func Items(list []*rank.RankedCommand, limit int) []Item {
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	items := make([]Item, len(list))
	for i, c := range list {
		items[i] = Item{
			Rank:        i + 1,
			Command:     c.Text,
			Occurrences: c.Occurrences,
			Score:       c.Score,
		}
		if t, ok := c.LastUsed(); ok {
			t = t.UTC()
			items[i].LastUsed = &t
		}
	}
	return items
}

// WriteList writes items to w in the given format. now anchors the
// relative times of the table format.
func WriteList(w io.Writer, format Format, items []Item, now time.Time) error {
	switch format {
	case FormatTable:
		writeTable(w, items, now)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return huierrors.Wrap(enc.Encode(items), "encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return huierrors.Wrap(err, "encode yaml")
		}
		return huierrors.Wrap(enc.Close(), "encode yaml")
	case FormatPlain:
		for _, it := range items {
			if _, err := fmt.Fprintln(w, it.Command); err != nil {
				return huierrors.Wrap(err, "write")
			}
		}
		return nil
	default:
		return huierrors.Invalidf("format %q", format)
	}
}

func writeTable(w io.Writer, items []Item, now time.Time) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No commands found.")
		return
	}

	tbl := table.New("#", "COMMAND", "COUNT", "LAST USED").
		WithWriter(w).
		WithWidthFunc(runewidth.StringWidth)

	for _, it := range items {
		tbl.AddRow(it.Rank, Row(it.Command, tableCommandWidth), humanize.Comma(int64(it.Occurrences)), LastUsed(it.LastUsed, now))
	}
	tbl.Print()
}

// LastUsed formats t relative to now, or "-" when unknown.
func LastUsed(t *time.Time, now time.Time) string {
	if t == nil {
		return "-"
	}
	return humanize.RelTime(*t, now, "ago", "from now")
}
