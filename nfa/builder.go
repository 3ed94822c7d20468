package nfa

import (
	"cmp"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/coredfa/interval"
	"github.com/coregx/coredfa/internal/conv"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the
// Compiler, ParseText and Reverse.
//
// The two final states are allocated up front. Misuse (unknown state IDs,
// empty matchers, edges leaving a final state) is recorded and reported by
// Build, so call sites can chain Add calls without checking each one.
type Builder struct {
	states          []*State
	transitions     []*Transition
	initial         []*Transition
	anchoredFinal   StateID
	unanchoredFinal StateID
	captureCount    int
	forward         bool
	err             *BuildError
}

// TransitionOption customizes a transition added to a Builder.
type TransitionOption func(*Transition)

// WithPriority overrides the default priority, which is the transition's
// insertion index.
func WithPriority(p int) TransitionOption {
	return func(t *Transition) {
		t.priority = p
	}
}

// WithGroups attaches capture-slot updates to the transition.
func WithGroups(g GroupBoundaries) TransitionOption {
	return func(t *Transition) {
		t.groups = g
	}
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	b := &Builder{
		states:      make([]*State, 0, capacity),
		transitions: make([]*Transition, 0, capacity),
		forward:     true,
	}
	b.anchoredFinal = b.addState(StateAnchoredFinal)
	b.unanchoredFinal = b.addState(StateUnanchoredFinal)
	return b
}

// AnchoredFinal returns the ID of the anchored final state
func (b *Builder) AnchoredFinal() StateID {
	return b.anchoredFinal
}

// UnanchoredFinal returns the ID of the unanchored final state
func (b *Builder) UnanchoredFinal() StateID {
	return b.unanchoredFinal
}

// AddState adds a normal state and returns its ID
func (b *Builder) AddState() StateID {
	return b.addState(StateNormal)
}

func (b *Builder) addState(kind StateKind) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, &State{id: id, kind: kind})
	return id
}

// AddTransition adds a transition from src to dst consuming one code point
// matched by m. Neither state may be final; use AddFinalTransition to accept.
func (b *Builder) AddTransition(src, dst StateID, m interval.Matcher, opts ...TransitionOption) TransitionID {
	switch {
	case !b.checkState(src) || !b.checkState(dst):
	case b.states[src].IsFinal():
		b.fail(src, "final states have no outgoing transitions")
	case b.states[dst].IsFinal():
		b.fail(dst, "transitions into a final state must use AddFinalTransition")
	case m.IsEmpty():
		b.fail(src, "transition has an empty matcher")
	}
	return b.add(src, dst, m, opts)
}

// AddFinalTransition adds an input-free transition from src into the
// anchored or unanchored final state.
func (b *Builder) AddFinalTransition(src StateID, anchored bool, opts ...TransitionOption) TransitionID {
	dst := b.unanchoredFinal
	if anchored {
		dst = b.anchoredFinal
	}
	if b.checkState(src) && b.states[src].IsFinal() {
		b.fail(src, "final states have no outgoing transitions")
	}
	return b.add(src, dst, interval.Empty(), opts)
}

// AddInitial adds an initial transition into dst. The initial transitions
// form the start state of the determinized automaton.
func (b *Builder) AddInitial(dst StateID, opts ...TransitionOption) TransitionID {
	if b.checkState(dst) && b.states[dst].IsFinal() {
		b.fail(dst, "initial transitions must enter a normal state")
	}
	id := b.add(InvalidState, dst, interval.Empty(), opts)
	b.initial = append(b.initial, b.transitions[id])
	return id
}

// SetCaptureCount declares the number of capture groups, group 0 included.
// Build raises it when transitions reference higher slots.
func (b *Builder) SetCaptureCount(n int) {
	b.captureCount = n
}

// setForward marks the direction of the resulting NFA.
func (b *Builder) setForward(forward bool) {
	b.forward = forward
}

func (b *Builder) add(src, dst StateID, m interval.Matcher, opts []TransitionOption) TransitionID {
	id := TransitionID(conv.IntToUint32(len(b.transitions)))
	t := &Transition{
		id:       id,
		source:   src,
		target:   dst,
		matcher:  m,
		priority: int(id),
	}
	for _, opt := range opts {
		opt(t)
	}
	b.transitions = append(b.transitions, t)
	if src != InvalidState && int(src) < len(b.states) {
		b.states[src].next = append(b.states[src].next, t)
	}
	return id
}

func (b *Builder) checkState(id StateID) bool {
	if int(id) >= len(b.states) {
		b.fail(id, "unknown state")
		return false
	}
	return true
}

func (b *Builder) fail(id StateID, msg string) {
	if b.err == nil {
		b.err = &BuildError{Message: msg, StateID: id}
	}
}

// Build validates the accumulated states and transitions and returns the NFA.
//
// Validation fails when any Add call was invalid, when there are no initial
// transitions, or when no final state is reachable from them.
func (b *Builder) Build() (*NFA, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.initial) == 0 {
		return nil, &BuildError{Message: "no initial transitions", StateID: InvalidState}
	}

	captures := b.captureCount
	for _, t := range b.transitions {
		if slot := t.groups.MaxSlot(); slot >= 0 {
			captures = max(captures, slot/2+1)
		}
	}

	for _, s := range b.states {
		sortTransitions(s.next)
	}
	sortTransitions(b.initial)

	if !b.finalReachable() {
		return nil, &BuildError{Message: "no final state is reachable from the initial transitions", StateID: InvalidState}
	}

	return &NFA{
		states:          b.states,
		transitions:     b.transitions,
		initial:         b.initial,
		anchoredFinal:   b.anchoredFinal,
		unanchoredFinal: b.unanchoredFinal,
		captureCount:    captures,
		forward:         b.forward,
	}, nil
}

// finalReachable runs a forward search from the initial transitions.
func (b *Builder) finalReachable() bool {
	seen := bitset.New(uint(len(b.states)))
	stack := make([]StateID, 0, len(b.initial))
	for _, t := range b.initial {
		if !seen.Test(uint(t.target)) {
			seen.Set(uint(t.target))
			stack = append(stack, t.target)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b.states[id].IsFinal() {
			return true
		}
		for _, t := range b.states[id].next {
			if !seen.Test(uint(t.target)) {
				seen.Set(uint(t.target))
				stack = append(stack, t.target)
			}
		}
	}
	return false
}

// sortTransitions orders transitions by (priority, id).
func sortTransitions(ts []*Transition) {
	slices.SortFunc(ts, func(a, b *Transition) int {
		if c := cmp.Compare(a.priority, b.priority); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
}
