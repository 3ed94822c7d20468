package dfa

import (
	"encoding/json"
	"slices"
	"unicode/utf8"
)

// stepRange is one row of a state's step table.
type stepRange struct {
	lo, hi rune
	target int
}

// DFA is a finalized deterministic automaton.
//
// States are numbered from 0 in breadth-first order from the start state;
// edges are numbered in state order, then by lowest code point. A DFA is
// immutable and safe for concurrent use.
type DFA struct {
	states            []*StateNodeBuilder
	edges             []*StateTransitionBuilder
	steps             [][]stepRange
	forward           bool
	prioritySensitive bool
	captureCount      int
}

// Start returns the ID of the start state, which is always 0
func (d *DFA) Start() int {
	return 0
}

// NumStates returns the number of states
func (d *DFA) NumStates() int {
	return len(d.states)
}

// NumTransitions returns the number of edges
func (d *DFA) NumTransitions() int {
	return len(d.edges)
}

// State returns the state with the given ID, or nil if out of range
func (d *DFA) State(id int) *StateNodeBuilder {
	if id < 0 || id >= len(d.states) {
		return nil
	}
	return d.states[id]
}

// States returns all states ordered by ID
func (d *DFA) States() []*StateNodeBuilder {
	return slices.Clone(d.states)
}

// Transition returns the edge with the given ID, or nil if out of range
func (d *DFA) Transition(id int) *StateTransitionBuilder {
	if id < 0 || id >= len(d.edges) {
		return nil
	}
	return d.edges[id]
}

// Builders returns all edges ordered by ID
func (d *DFA) Builders() []*StateTransitionBuilder {
	return slices.Clone(d.edges)
}

// Step returns the state reached from state on r, or -1 when no edge
// matches r.
func (d *DFA) Step(state int, r rune) int {
	if state < 0 || state >= len(d.steps) {
		return -1
	}
	table := d.steps[state]
	i, found := slices.BinarySearchFunc(table, r, func(s stepRange, target rune) int {
		switch {
		case s.hi < target:
			return -1
		case s.lo > target:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return -1
	}
	return table[i].target
}

// MatchAt runs d over haystack from offset at and returns the end offset of
// the last accepting position, or -1 if none is reached. For a forward,
// anchored, priority-sensitive DFA this is the end of the leftmost-first
// match starting at at. Invalid UTF-8 is read as utf8.RuneError.
func (d *DFA) MatchAt(haystack []byte, at int) int {
	if at < 0 || at > len(haystack) {
		return -1
	}
	end := -1
	s := d.Start()
	for i := at; i < len(haystack); {
		if d.states[s].unanchoredFinal != nil {
			end = i
		}
		r, size := utf8.DecodeRune(haystack[i:])
		if s = d.Step(s, r); s < 0 {
			return end
		}
		i += size
	}
	if d.states[s].IsFinal() {
		end = len(haystack)
	}
	return end
}

// IsForward reports whether the DFA reads input left to right
func (d *DFA) IsForward() bool {
	return d.forward
}

// IsPrioritySensitive reports whether the DFA was built with
// leftmost-first semantics
func (d *DFA) IsPrioritySensitive() bool {
	return d.prioritySensitive
}

// CaptureCount returns the number of capture groups of the source NFA
func (d *DFA) CaptureCount() int {
	return d.captureCount
}

// Dump is the debug form of a DFA.
type Dump struct {
	Start             int                `json:"start"`
	Forward           bool               `json:"forward"`
	PrioritySensitive bool               `json:"prioritySensitive"`
	CaptureCount      int                `json:"captureCount"`
	States            []StateRecord      `json:"states"`
	Transitions       []TransitionRecord `json:"transitions"`
}

// Dump exports every state and edge. Capture descriptors are materialized.
func (d *DFA) Dump() Dump {
	out := Dump{
		Start:             d.Start(),
		Forward:           d.forward,
		PrioritySensitive: d.prioritySensitive,
		CaptureCount:      d.captureCount,
		States:            make([]StateRecord, len(d.states)),
		Transitions:       make([]TransitionRecord, len(d.edges)),
	}
	for i, s := range d.states {
		out.States[i] = s.Export()
	}
	for i, e := range d.edges {
		out.Transitions[i] = e.Export()
	}
	return out
}

// MarshalJSON implements json.Marshaler using Dump
func (d *DFA) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Dump())
}
