package dfa

import (
	"encoding/binary"
	"sync"

	"github.com/coregx/coredfa/nfa"
)

// CaptureGroupTransition describes how capture registers evolve along one
// DFA edge.
//
// An executor tracks one register file per member of the current state's
// TransitionSet. Following the edge, the register file of each member of
// the edge's set is copied from the source-state member it descends from and
// then updated with the member's GroupBoundaries.
//
// Construction only records the two sets; the per-member operations are
// computed on first use by Lazy.
type CaptureGroupTransition struct {
	source *TransitionSet
	edge   *TransitionSet

	once sync.Once
	ops  *CaptureOps
}

// CaptureOps is the materialized form of a CaptureGroupTransition.
type CaptureOps struct {
	Entries []CaptureEntry `json:"entries"`
}

// CaptureEntry is the register operation for one member of the edge's set.
type CaptureEntry struct {
	// Transition is the member of the edge's set.
	Transition nfa.TransitionID `json:"transition"`

	// From is the index, in the source state's set, of the member whose
	// register file is copied, or -1 when none leads to Transition's source.
	From int `json:"from"`

	Updates []int `json:"updates,omitempty"`
	Clears  []int `json:"clears,omitempty"`
}

func newCaptureGroupTransition(source, edge *TransitionSet) *CaptureGroupTransition {
	return &CaptureGroupTransition{source: source, edge: edge}
}

// Lazy returns the register operations, computing them on the first call.
// It is safe for concurrent use.
//
// When several source members enter the NFA state an edge member leaves
// from, the earliest one in canonical order is used.
func (c *CaptureGroupTransition) Lazy() *CaptureOps {
	c.once.Do(func() {
		ops := &CaptureOps{Entries: make([]CaptureEntry, 0, c.edge.Len())}
		for _, u := range c.edge.All() {
			entry := CaptureEntry{
				Transition: u.ID(),
				From:       -1,
				Updates:    u.Groups().Updates(),
				Clears:     u.Groups().Clears(),
			}
			for i, s := range c.source.All() {
				if s.Target() == u.Source() {
					entry.From = i
					break
				}
			}
			ops.Entries = append(ops.Entries, entry)
		}
		c.ops = ops
	})
	return c.ops
}

// signature identifies the register permutation of the edge. Edges with
// equal signatures entering the same state can share it.
func (c *CaptureGroupTransition) signature() string {
	ops := c.Lazy()
	buf := make([]byte, 0, 2*len(ops.Entries))
	for _, e := range ops.Entries {
		buf = binary.AppendVarint(buf, int64(e.From))
	}
	return string(buf)
}
