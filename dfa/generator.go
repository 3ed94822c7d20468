// Package dfa determinizes NFAs over code-point ranges.
//
// The Generator performs subset construction where each DFA state is
// identified by a TransitionSet, the set of NFA transitions through which the
// state was entered. Outgoing edges are computed by partitioning the
// matchers of all candidate NFA transitions (see automaton.Partition), so the
// alphabet never has to be enumerated code point by code point.
//
// Match priority is preserved: in priority-sensitive mode a state's members
// are ranked in the order their threads were produced, which is the order of
// the source members and then of each NFA state's outgoing transitions. An
// unanchored final cuts off every thread ranked after it, which yields
// leftmost-first semantics.
//
// Example:
//
//	n, _ := nfa.NewDefaultCompiler().Compile(`foo|bar`)
//	d, err := dfa.Determinize(n, dfa.DefaultConfig())
//	if err != nil {
//	    // errors.Is(err, dfa.ErrStateExplosion) for pathological patterns
//	}
//	fmt.Println(d.NumStates())
package dfa

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/coregx/coredfa/automaton"
	"github.com/coregx/coredfa/internal/conv"
	"github.com/coregx/coredfa/internal/sparse"
	"github.com/coregx/coredfa/nfa"
)

// Generator turns an NFA into a DFA.
//
// A Generator may be reused for several builds but is not safe for
// concurrent use. Every Build starts from empty tables.
type Generator struct {
	config Config
	logger *slog.Logger

	nfa      *nfa.NFA
	states   []*StateNodeBuilder
	index    map[uint64][]*StateNodeBuilder
	head     int
	numEdges int
	seen     *sparse.SparseSet
}

// NewGenerator creates a generator with the given configuration.
func NewGenerator(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{config: config, logger: logger}, nil
}

// Determinize builds a DFA for n with a one-off Generator.
func Determinize(n *nfa.NFA, config Config) (*DFA, error) {
	g, err := NewGenerator(config)
	if err != nil {
		return nil, err
	}
	return g.Build(n)
}

// Build runs subset construction on n.
//
// Pending states are expanded in FIFO order. For each state the generator
// collects candidate edges from the outgoing transitions of every NFA state
// it has entered, partitions them into disjoint fragments, and resolves each
// fragment's TransitionSet to an existing or new state. On error no partial
// DFA is returned.
func (g *Generator) Build(n *nfa.NFA) (*DFA, error) {
	g.reset()
	defer g.reset()

	if n == nil {
		return nil, &DFAError{Kind: InvalidNFA, Message: "NFA is nil"}
	}
	if len(n.Initial()) == 0 {
		return nil, &DFAError{Kind: InvalidNFA, Message: "NFA has no initial transitions"}
	}

	src := n
	if !g.config.Forward {
		src = nfa.Reverse(n)
	}
	g.nfa = src
	g.seen = sparse.NewSparseSet(conv.IntToUint32(src.NumStates()))

	start, err := g.lookupOrCreate(NewTransitionSet(g.config.PrioritySensitive, src.Initial()...))
	if err != nil {
		return nil, err
	}

	for g.head < len(g.states) {
		s := g.states[g.head]
		g.head++
		if err := g.expand(s); err != nil {
			g.logger.Warn("DFA generation aborted",
				"states", len(g.states),
				"transitions", g.numEdges,
				"error", err)
			return nil, err
		}
	}

	if g.config.PruneDeadStates {
		g.pruneDeadStates(start)
	}
	if g.config.SplitCaptureConflicts {
		if err := g.splitCaptureConflicts(); err != nil {
			g.logger.Warn("node splitting aborted", "states", len(g.states), "error", err)
			return nil, err
		}
	}

	d := g.finalize(start)
	g.logger.Debug("DFA finalized",
		"states", d.NumStates(),
		"transitions", d.NumTransitions(),
		"forward", d.forward)
	return d, nil
}

func (g *Generator) reset() {
	g.nfa = nil
	g.states = nil
	g.index = make(map[uint64][]*StateNodeBuilder)
	g.head = 0
	g.numEdges = 0
	g.seen = nil
}

// lookupOrCreate returns the state identified by set, creating and
// enqueueing it if it has not been seen.
func (g *Generator) lookupOrCreate(set *TransitionSet) (*StateNodeBuilder, error) {
	h := set.Hash()
	for _, s := range g.index[h] {
		if s.set.Equal(set) {
			return s, nil
		}
	}
	if len(g.states) >= g.config.MaxStates {
		return nil, stateExplosion("states", g.config.MaxStates)
	}

	s := newStateNodeBuilder(set.Clone(), len(g.states))
	g.states = append(g.states, s)
	g.index[h] = append(g.index[h], s)
	g.logger.Debug("discovered DFA state", "order", s.order, "set", set)
	return s, nil
}

// expand computes the outgoing edges and final transitions of s.
//
// Candidates are ranked by the order in which they are produced: source
// members in set order, then each NFA state's transitions in priority order.
// An NFA state already entered by an earlier member is skipped, so every
// candidate is a distinct NFA transition.
func (g *Generator) expand(s *StateNodeBuilder) error {
	ps := g.config.PrioritySensitive
	g.seen.Clear()

	var candidates []*StateTransitionBuilder
members:
	for _, m := range s.set.All() {
		if !g.seen.Insert(uint32(m.Target())) {
			continue
		}

		for _, u := range g.nfa.State(m.Target()).Next() {
			switch u.Target() {
			case g.nfa.AnchoredFinal():
				if s.anchoredFinal == nil {
					s.anchoredFinal = u
				}
			case g.nfa.UnanchoredFinal():
				if s.unanchoredFinal == nil {
					s.unanchoredFinal = u
				}
				if ps {
					break members
				}
			default:
				candidates = append(candidates, newCandidateBuilder(u, len(candidates), ps))
			}
		}
	}

	// Fragments have distinct cover sets over distinct NFA transitions, so
	// no two of them resolve to the same target.
	for _, e := range automaton.Partition[*TransitionSet](candidates) {
		target, err := g.lookupOrCreate(e.TransitionSet())
		if err != nil {
			return err
		}
		if g.numEdges >= g.config.MaxTransitions {
			return stateExplosion("transitions", g.config.MaxTransitions)
		}
		g.numEdges++

		s.addSuccessor(e)
		e.setTarget(target)
		if g.config.TrackCaptureGroups {
			e.setCapture(newCaptureGroupTransition(s.set, e.set))
		}
	}
	return nil
}

// finalize numbers states breadth-first from start, numbers edges in state
// order, freezes every builder and builds the step tables.
func (g *Generator) finalize(start *StateNodeBuilder) *DFA {
	d := &DFA{
		forward:           g.nfa.Forward(),
		prioritySensitive: g.config.PrioritySensitive,
		captureCount:      g.nfa.CaptureCount(),
	}

	order := []*StateNodeBuilder{start}
	numbered := map[*StateNodeBuilder]bool{start: true}
	for i := 0; i < len(order); i++ {
		slices.SortStableFunc(order[i].successors, func(a, b *StateTransitionBuilder) int {
			return cmp.Compare(a.matcher.Min(), b.matcher.Min())
		})
		for _, e := range order[i].successors {
			if !numbered[e.target] {
				numbered[e.target] = true
				order = append(order, e.target)
			}
		}
	}

	for id, s := range order {
		s.set.Hash()
		s.freeze(id)
		d.states = append(d.states, s)
	}

	d.steps = make([][]stepRange, len(d.states))
	for _, s := range d.states {
		for _, e := range s.successors {
			e.set.Hash()
			e.freeze(len(d.edges))
			d.edges = append(d.edges, e)
			for _, r := range e.matcher.Ranges() {
				d.steps[s.id] = append(d.steps[s.id], stepRange{lo: r.Lo, hi: r.Hi, target: e.target.id})
			}
		}
		slices.SortFunc(d.steps[s.id], func(a, b stepRange) int {
			return cmp.Compare(a.lo, b.lo)
		})
	}
	return d
}
