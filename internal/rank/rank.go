// Package rank collapses duplicate history entries and orders them by a
// fixed frequency and recency score.
package rank

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/chazuruo/hui/internal/history"
)

// Score weights. These are part of the ranking contract: identical input
// always produces the identical master list.
const (
	// OccurrencesWeight scales ln(1+occurrences).
	OccurrencesWeight = 1.0
	// RecencyWeight scales the recency term, which lies in [0, 1].
	RecencyWeight = 1.0
)

// RankedCommand is one unique command text with its aggregated usage.
// Values are built once by Rank and must not be modified afterwards.
type RankedCommand struct {
	Text          string
	Occurrences   int
	LastTimestamp *int64
	LastSequence  int
	Score         float64
}

// LastUsed returns the time of the most recent timestamped occurrence.
func (c *RankedCommand) LastUsed() (time.Time, bool) {
	if c.LastTimestamp == nil {
		return time.Time{}, false
	}
	return time.Unix(*c.LastTimestamp, 0), true
}

// span is an observed [min, max] range.
type span struct {
	min, max int64
	seen     bool
}

func (s *span) add(v int64) {
	if !s.seen {
		s.min, s.max, s.seen = v, v, true
		return
	}
	s.min = min(s.min, v)
	s.max = max(s.max, v)
}

// position maps v into [0, 1]. A degenerate range maps to 1.
func (s span) position(v int64) float64 {
	if s.max == s.min {
		return 1
	}
	return float64(v-s.min) / float64(s.max-s.min)
}

// Rank groups entries by exact text and returns the master list sorted by
// score descending, then last sequence descending, then text ascending.
// An empty input yields an empty list.
func Rank(entries []history.Entry) []*RankedCommand {
	byText := make(map[string]*RankedCommand, len(entries))
	var (
		order      []*RankedCommand
		timestamps span
		sequences  span
	)

	for _, e := range entries {
		sequences.add(int64(e.Sequence))
		if e.Timestamp != nil {
			timestamps.add(*e.Timestamp)
		}

		c, ok := byText[e.Text]
		if !ok {
			c = &RankedCommand{Text: e.Text, LastSequence: e.Sequence}
			byText[e.Text] = c
			order = append(order, c)
		}
		c.Occurrences++
		c.LastSequence = max(c.LastSequence, e.Sequence)
		if e.Timestamp != nil && (c.LastTimestamp == nil || *e.Timestamp > *c.LastTimestamp) {
			ts := *e.Timestamp
			c.LastTimestamp = &ts
		}
	}

	for _, c := range order {
		var recency float64
		if c.LastTimestamp != nil {
			recency = timestamps.position(*c.LastTimestamp)
		} else {
			recency = sequences.position(int64(c.LastSequence))
		}
		c.Score = OccurrencesWeight*math.Log1p(float64(c.Occurrences)) + RecencyWeight*recency
	}

	sort.Slice(order, func(i, j int) bool { return Less(order[i], order[j]) })
	return order
}

// Less is the master list order. It is a strict total order over commands
// with distinct texts.
func Less(a, b *RankedCommand) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.LastSequence != b.LastSequence {
		return a.LastSequence > b.LastSequence
	}
	return a.Text < b.Text
}

// Summary describes a master list.
type Summary struct {
	Unique      int
	Occurrences int
	Timestamped int
	Newest      *int64
}

// Stats summarizes a master list.
func Stats(list []*RankedCommand) Summary {
	s := Summary{
		Unique:      len(list),
		Occurrences: lo.SumBy(list, func(c *RankedCommand) int { return c.Occurrences }),
	}
	stamped := lo.Filter(list, func(c *RankedCommand, _ int) bool { return c.LastTimestamp != nil })
	s.Timestamped = len(stamped)
	if len(stamped) > 0 {
		newest := lo.MaxBy(stamped, func(a, b *RankedCommand) bool { return *a.LastTimestamp > *b.LastTimestamp })
		ts := *newest.LastTimestamp
		s.Newest = &ts
	}
	return s
}
