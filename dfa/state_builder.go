package dfa

import (
	"slices"

	"github.com/coregx/coredfa/nfa"
)

// StateNodeBuilder is a DFA state under construction.
//
// A state is identified by its TransitionSet: the NFA transitions through
// which it was entered. Node splitting may create further states with an
// equal set; those record the state they were split from.
type StateNodeBuilder struct {
	id    int
	order int // discovery position, valid while building
	set   *TransitionSet

	successors      []*StateTransitionBuilder
	anchoredFinal   *nfa.Transition
	unanchoredFinal *nfa.Transition
	splitFrom       *StateNodeBuilder
	frozen          bool
}

func newStateNodeBuilder(set *TransitionSet, order int) *StateNodeBuilder {
	return &StateNodeBuilder{id: -1, order: order, set: set}
}

// ID returns the state's number, or -1 before finalization
func (s *StateNodeBuilder) ID() int {
	return s.id
}

// TransitionSet returns the state's identity
func (s *StateNodeBuilder) TransitionSet() *TransitionSet {
	return s.set
}

// Successors returns the outgoing edges ordered by lowest code point.
// The returned slice must not be modified.
func (s *StateNodeBuilder) Successors() []*StateTransitionBuilder {
	return s.successors
}

// AnchoredFinal returns the highest-priority NFA transition into the
// anchored final state, or nil. A state with one accepts at end of input.
func (s *StateNodeBuilder) AnchoredFinal() *nfa.Transition {
	return s.anchoredFinal
}

// UnanchoredFinal returns the highest-priority NFA transition into the
// unanchored final state, or nil. A state with one accepts immediately.
func (s *StateNodeBuilder) UnanchoredFinal() *nfa.Transition {
	return s.unanchoredFinal
}

// IsFinal reports whether the state accepts, anchored or not
func (s *StateNodeBuilder) IsFinal() bool {
	return s.anchoredFinal != nil || s.unanchoredFinal != nil
}

// SplitFrom returns the state this one was duplicated from by node
// splitting, or nil.
func (s *StateNodeBuilder) SplitFrom() *StateNodeBuilder {
	return s.splitFrom
}

func (s *StateNodeBuilder) addSuccessor(e *StateTransitionBuilder) {
	s.checkMutable()
	e.setSource(s)
	s.successors = append(s.successors, e)
}

// replaceSuccessor swaps old for e, keeping its position.
func (s *StateNodeBuilder) replaceSuccessor(old, e *StateTransitionBuilder) {
	s.checkMutable()
	i := slices.Index(s.successors, old)
	if i < 0 {
		panic("dfa: replacing an edge the state does not own")
	}
	e.setSource(s)
	s.successors[i] = e
}

func (s *StateNodeBuilder) freeze(id int) {
	s.id = id
	s.frozen = true
}

func (s *StateNodeBuilder) checkMutable() {
	if s.frozen {
		panic("dfa: state builder is frozen")
	}
}

// StateRecord is the debug form of a finalized state.
type StateRecord struct {
	ID              int                `json:"id"`
	NFATransitions  []nfa.TransitionID `json:"nfaTransitions"`
	Successors      []int              `json:"successors"`
	AnchoredFinal   *nfa.TransitionID  `json:"anchoredFinal,omitempty"`
	UnanchoredFinal *nfa.TransitionID  `json:"unanchoredFinal,omitempty"`
	SplitFrom       *int               `json:"splitFrom,omitempty"`
}

// Export returns the debug record of the state
func (s *StateNodeBuilder) Export() StateRecord {
	rec := StateRecord{
		ID:             s.id,
		NFATransitions: s.set.IDs(),
		Successors:     make([]int, len(s.successors)),
	}
	for i, e := range s.successors {
		rec.Successors[i] = e.id
	}
	if s.anchoredFinal != nil {
		id := s.anchoredFinal.ID()
		rec.AnchoredFinal = &id
	}
	if s.unanchoredFinal != nil {
		id := s.unanchoredFinal.ID()
		rec.UnanchoredFinal = &id
	}
	if s.splitFrom != nil {
		from := s.splitFrom.id
		rec.SplitFrom = &from
	}
	return rec
}
