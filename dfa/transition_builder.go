package dfa

import (
	"github.com/coregx/coredfa/automaton"
	"github.com/coregx/coredfa/interval"
	"github.com/coregx/coredfa/nfa"
)

var _ automaton.TransitionBuilder[*TransitionSet, *StateTransitionBuilder] = (*StateTransitionBuilder)(nil)

// StateTransitionBuilder is a DFA edge under construction.
//
// Its TransitionSet holds the NFA transitions taken when the edge is
// followed, which is also the identity of the target state. The source is
// fixed when the edge is attached to a state and the target when it is
// resolved; neither may change afterwards. Once the DFA is finalized the
// builder is frozen and every mutation panics.
type StateTransitionBuilder struct {
	id      int
	source  *StateNodeBuilder
	target  *StateNodeBuilder
	matcher interval.Matcher
	set     *TransitionSet
	capture *CaptureGroupTransition
	frozen  bool
}

// NewStateTransitionBuilder creates an edge for a single NFA transition.
func NewStateTransitionBuilder(m interval.Matcher, t *nfa.Transition, prioritySensitive bool) *StateTransitionBuilder {
	return NewMergedTransitionBuilder(m, NewTransitionSet(prioritySensitive, t))
}

// newCandidateBuilder creates an edge for t ranked at the given position
// among the candidates of the expanding state.
func newCandidateBuilder(t *nfa.Transition, rank int, prioritySensitive bool) *StateTransitionBuilder {
	return NewMergedTransitionBuilder(t.Matcher(), newRankedSet(prioritySensitive, t, rank))
}

// NewMergedTransitionBuilder creates an edge for an already merged set.
// The builder takes ownership of set.
func NewMergedTransitionBuilder(m interval.Matcher, set *TransitionSet) *StateTransitionBuilder {
	return &StateTransitionBuilder{
		id:      -1,
		matcher: m,
		set:     set,
	}
}

// ID returns the edge's number, or -1 before finalization
func (b *StateTransitionBuilder) ID() int {
	return b.id
}

// Source returns the state the edge leaves, or nil while detached
func (b *StateTransitionBuilder) Source() *StateNodeBuilder {
	return b.source
}

// Target returns the state the edge enters, or nil while unresolved
func (b *StateTransitionBuilder) Target() *StateNodeBuilder {
	return b.target
}

// Matcher returns the code points that select this edge
func (b *StateTransitionBuilder) Matcher() interval.Matcher {
	return b.matcher
}

// SetMatcher replaces the edge's matcher.
// Panics if the builder is frozen.
func (b *StateTransitionBuilder) SetMatcher(m interval.Matcher) {
	b.checkMutable()
	b.matcher = m
}

// TransitionSet returns the NFA transitions taken along this edge
func (b *StateTransitionBuilder) TransitionSet() *TransitionSet {
	return b.set
}

// CaptureGroupTransition returns the edge's capture descriptor, or nil when
// capture tracking is disabled
func (b *StateTransitionBuilder) CaptureGroupTransition() *CaptureGroupTransition {
	return b.capture
}

// CreateMerged returns a detached edge holding the union of both sets and
// the given matcher. Neither operand is modified.
func (b *StateTransitionBuilder) CreateMerged(other *StateTransitionBuilder, merged interval.Matcher) *StateTransitionBuilder {
	return NewMergedTransitionBuilder(merged, b.set.CreateMerged(other.set))
}

// MergeInPlace adds other's transitions to b and replaces b's matcher.
// Panics if b is frozen.
func (b *StateTransitionBuilder) MergeInPlace(other *StateTransitionBuilder, merged interval.Matcher) {
	b.checkMutable()
	b.set.AddAll(other.set)
	b.matcher = merged
}

// CreateNodeSplitCopy returns a detached edge with the same matcher and a
// copy of the transition set, for re-attaching to a split state.
func (b *StateTransitionBuilder) CreateNodeSplitCopy() *StateTransitionBuilder {
	return NewMergedTransitionBuilder(b.matcher, b.set.Clone())
}

func (b *StateTransitionBuilder) setSource(s *StateNodeBuilder) {
	b.checkMutable()
	if b.source != nil && b.source != s {
		panic("dfa: transition source already set")
	}
	b.source = s
}

func (b *StateTransitionBuilder) setTarget(s *StateNodeBuilder) {
	b.checkMutable()
	if b.target != nil && b.target != s {
		panic("dfa: transition target already set")
	}
	b.target = s
}

func (b *StateTransitionBuilder) setCapture(c *CaptureGroupTransition) {
	b.checkMutable()
	b.capture = c
}

func (b *StateTransitionBuilder) freeze(id int) {
	b.id = id
	b.frozen = true
}

func (b *StateTransitionBuilder) checkMutable() {
	if b.frozen {
		panic("dfa: transition builder is frozen")
	}
}

// TransitionRecord is the debug form of a finalized edge.
type TransitionRecord struct {
	ID      int    `json:"id"`
	Source  int    `json:"source"`
	Target  int    `json:"target"`
	Matcher string `json:"matcher"`

	// NFATransitions lists the edge's transitions followed by the target
	// state's anchored and unanchored final transitions, when present.
	NFATransitions []nfa.TransitionID `json:"nfaTransitions"`

	CaptureGroupTransition *CaptureOps `json:"captureGroupTransition,omitempty"`
}

// Export returns the debug record of the edge. The capture descriptor is
// materialized if it has not been yet.
func (b *StateTransitionBuilder) Export() TransitionRecord {
	rec := TransitionRecord{
		ID:             b.id,
		Source:         -1,
		Target:         -1,
		Matcher:        b.matcher.String(),
		NFATransitions: b.set.IDs(),
	}
	if b.source != nil {
		rec.Source = b.source.id
	}
	if b.target != nil {
		rec.Target = b.target.id
		if t := b.target.anchoredFinal; t != nil {
			rec.NFATransitions = append(rec.NFATransitions, t.ID())
		}
		if t := b.target.unanchoredFinal; t != nil {
			rec.NFATransitions = append(rec.NFATransitions, t.ID())
		}
	}
	if b.capture != nil {
		rec.CaptureGroupTransition = b.capture.Lazy()
	}
	return rec
}
