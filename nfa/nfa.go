package nfa

import (
	"fmt"
	"strings"

	"github.com/coregx/coredfa/interval"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// TransitionID uniquely identifies an NFA transition within one NFA.
type TransitionID uint32

// InvalidState represents an invalid/uninitialized state ID.
// Initial transitions use it as their source.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the role of an NFA state.
type StateKind uint8

const (
	// StateNormal is an ordinary state with character-consuming transitions
	StateNormal StateKind = iota

	// StateAnchoredFinal accepts only when the whole input has been consumed
	StateAnchoredFinal

	// StateUnanchoredFinal accepts at the current position
	StateUnanchoredFinal
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateNormal:
		return "Normal"
	case StateAnchoredFinal:
		return "AnchoredFinal"
	case StateUnanchoredFinal:
		return "UnanchoredFinal"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State is a single NFA state with its outgoing transitions in priority order.
type State struct {
	id   StateID
	kind StateKind
	next []*Transition
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Kind returns the state's role
func (s *State) Kind() StateKind {
	return s.kind
}

// IsFinal returns true for both anchored and unanchored final states
func (s *State) IsFinal() bool {
	return s.kind != StateNormal
}

// Next returns the outgoing transitions ordered by priority.
// The returned slice must not be modified.
func (s *State) Next() []*Transition {
	return s.next
}

// Transition is an edge between two NFA states.
//
// A transition into a final state and an initial transition (source
// InvalidState) carry the empty matcher and consume no input. Every other
// transition consumes exactly one code point matched by its Matcher.
// Lower priority values win under leftmost-first semantics.
type Transition struct {
	id       TransitionID
	source   StateID
	target   StateID
	matcher  interval.Matcher
	priority int
	groups   GroupBoundaries
}

// ID returns the transition's unique identifier
func (t *Transition) ID() TransitionID {
	return t.id
}

// Source returns the source state, or InvalidState for initial transitions
func (t *Transition) Source() StateID {
	return t.source
}

// Target returns the target state
func (t *Transition) Target() StateID {
	return t.target
}

// Matcher returns the set of code points consumed by this transition
func (t *Transition) Matcher() interval.Matcher {
	return t.matcher
}

// Priority returns the transition's priority rank (lower wins)
func (t *Transition) Priority() int {
	return t.priority
}

// Groups returns the capture-slot updates applied when the transition is taken
func (t *Transition) Groups() GroupBoundaries {
	return t.groups
}

// IsInitial reports whether the transition seeds the start state
func (t *Transition) IsInitial() bool {
	return t.source == InvalidState
}

// String returns a debug representation such as "t3: 2 -> 4 [a-f] p3".
func (t *Transition) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "t%d: ", t.id)
	if t.IsInitial() {
		sb.WriteString("start")
	} else {
		fmt.Fprintf(&sb, "%d", t.source)
	}
	fmt.Fprintf(&sb, " -> %d", t.target)
	if !t.matcher.IsEmpty() {
		sb.WriteByte(' ')
		sb.WriteString(t.matcher.String())
	}
	fmt.Fprintf(&sb, " p%d", t.priority)
	if !t.groups.IsEmpty() {
		sb.WriteByte(' ')
		sb.WriteString(t.groups.String())
	}
	return sb.String()
}

// NFA is an immutable, epsilon-free nondeterministic automaton over code points.
//
// Every NFA has exactly two final states: one anchored (match only at end of
// input) and one unanchored. Matching begins by following the initial
// transitions, which consume nothing.
type NFA struct {
	states          []*State
	transitions     []*Transition
	initial         []*Transition
	anchoredFinal   StateID
	unanchoredFinal StateID
	captureCount    int
	forward         bool
}

// NumStates returns the total number of states
func (n *NFA) NumStates() int {
	return len(n.states)
}

// State returns the state with the given ID, or nil if invalid
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return n.states[id]
}

// NumTransitions returns the total number of transitions, initial ones included
func (n *NFA) NumTransitions() int {
	return len(n.transitions)
}

// Transition returns the transition with the given ID, or nil if invalid
func (n *NFA) Transition(id TransitionID) *Transition {
	if int(id) >= len(n.transitions) {
		return nil
	}
	return n.transitions[id]
}

// Initial returns the initial transitions in priority order.
// The returned slice must not be modified.
func (n *NFA) Initial() []*Transition {
	return n.initial
}

// AnchoredFinal returns the ID of the anchored final state
func (n *NFA) AnchoredFinal() StateID {
	return n.anchoredFinal
}

// UnanchoredFinal returns the ID of the unanchored final state
func (n *NFA) UnanchoredFinal() StateID {
	return n.unanchoredFinal
}

// IsFinal reports whether id names one of the two final states
func (n *NFA) IsFinal(id StateID) bool {
	return id == n.anchoredFinal || id == n.unanchoredFinal
}

// CaptureCount returns the number of capture groups, group 0 included
func (n *NFA) CaptureCount() int {
	return n.captureCount
}

// Forward reports whether the NFA reads input left to right.
// NFAs produced by Reverse return false.
func (n *NFA) Forward() bool {
	return n.forward
}

// String returns a multi-line debug listing of all transitions
func (n *NFA) String() string {
	var sb strings.Builder
	dir := "forward"
	if !n.forward {
		dir = "backward"
	}
	fmt.Fprintf(&sb, "NFA{states: %d, transitions: %d, captures: %d, %s}\n",
		len(n.states), len(n.transitions), n.captureCount, dir)
	for _, t := range n.transitions {
		sb.WriteString("  ")
		sb.WriteString(t.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
