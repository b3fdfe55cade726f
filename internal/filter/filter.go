// Package filter narrows the master list to commands containing a query.
package filter

import (
	"strings"

	"github.com/chazuruo/hui/internal/rank"
)

// Engine filters one immutable master list. Results are views into the
// master list and keep its order.
//
// An Engine remembers its last result: when a query extends the previous
// one, only the previous matches are scanned. The result is the same as
// Match on the full list. An Engine is not safe for concurrent use.
type Engine struct {
	master []*rank.RankedCommand
	lower  []string

	lastQuery string
	lastIdx   []int
	valid     bool
}

// New builds an Engine over master, lower-casing every text once.
func New(master []*rank.RankedCommand) *Engine {
	lower := make([]string, len(master))
	for i, c := range master {
		lower[i] = strings.ToLower(c.Text)
	}
	return &Engine{master: master, lower: lower}
}

// Len returns the size of the master list.
func (e *Engine) Len() int { return len(e.master) }

// Master returns the full master list.
func (e *Engine) Master() []*rank.RankedCommand { return e.master }

// Filter returns the commands whose lower-cased text contains the
// lower-cased query. The empty query returns the master list itself.
func (e *Engine) Filter(query string) []*rank.RankedCommand {
	q := strings.ToLower(query)
	if q == "" {
		e.valid = false
		return e.master
	}

	var idx []int
	if e.valid && strings.HasPrefix(q, e.lastQuery) {
		idx = make([]int, 0, len(e.lastIdx))
		for _, i := range e.lastIdx {
			if strings.Contains(e.lower[i], q) {
				idx = append(idx, i)
			}
		}
	} else {
		for i, l := range e.lower {
			if strings.Contains(l, q) {
				idx = append(idx, i)
			}
		}
	}

	e.lastQuery, e.lastIdx, e.valid = q, idx, true

	out := make([]*rank.RankedCommand, len(idx))
	for j, i := range idx {
		out[j] = e.master[i]
	}
	return out
}

// Match is the reference linear scan: every command in master whose
// lower-cased text contains the lower-cased query, in master order.
func Match(master []*rank.RankedCommand, query string) []*rank.RankedCommand {
	q := strings.ToLower(query)
	if q == "" {
		return master
	}
	out := make([]*rank.RankedCommand, 0)
	for _, c := range master {
		if strings.Contains(strings.ToLower(c.Text), q) {
			out = append(out, c)
		}
	}
	return out
}
