package output

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// LineBreak replaces newlines when a multi-line command is shown on one row.
const LineBreak = " ↵ "

// Flatten renders text on a single line. Tabs become single spaces.
func Flatten(text string) string {
	if !strings.ContainsAny(text, "\n\t\r") {
		return text
	}
	r := strings.NewReplacer("\r\n", LineBreak, "\n", LineBreak, "\r", "", "\t", " ")
	return r.Replace(text)
}

// Truncate shortens s to at most width terminal cells, ending in "…" when
// anything was cut. Wide runes count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Row returns text flattened and fitted to width cells.
func Row(text string, width int) string {
	return Truncate(Flatten(text), width)
}
