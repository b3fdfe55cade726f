package history

import (
	"regexp"
	"strconv"
	"strings"
)

// zshGrammar reads zsh extended history.
//
// Example:
//
//	: 1616420000:0;ls -la
//	: 1616420100:3;git commit -m "multi\
//	line message"
//
// Lines that do not start a metadata record fall back to bash rules.
type zshGrammar struct {
	meta *regexp.Regexp
}

func newZshGrammar() zshGrammar {
	// Matches any ": x:y;" shape; the two integers are validated in begin.
	return zshGrammar{meta: regexp.MustCompile(`^: *([^:;]*):([^;]*);(.*)$`)}
}

func (zshGrammar) normalize(line []byte) []byte { return unmetafy(line) }

func (g zshGrammar) begin(line string) (Record, bool) {
	m := g.meta.FindStringSubmatch(line)
	if m == nil {
		return Record{Kind: RecordPlain, Text: line}, false
	}

	ts, okTS := parseNonNegative(m[1])
	dur, okDur := parseNonNegative(m[2])
	if !okTS || !okDur {
		return Record{Kind: RecordPlain, Text: line}, true
	}

	return Record{
		Kind:      RecordStructured,
		Text:      m[3],
		Timestamp: ts,
		Duration:  dur,
	}, false
}

func parseNonNegative(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
