package dfa

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// pruneDeadStates drops every state from which no final state can be
// reached, along with the edges entering them. The start state is kept
// even when dead so the DFA always has one.
func (g *Generator) pruneDeadStates(start *StateNodeBuilder) {
	n := len(g.states)
	preds := make([][]int, n)
	for _, s := range g.states {
		for _, e := range s.successors {
			preds[e.target.order] = append(preds[e.target.order], s.order)
		}
	}

	live := bitset.New(uint(n))
	var stack []int
	for _, s := range g.states {
		if s.IsFinal() {
			live.Set(uint(s.order))
			stack = append(stack, s.order)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range preds[i] {
			if !live.Test(uint(p)) {
				live.Set(uint(p))
				stack = append(stack, p)
			}
		}
	}

	kept := make([]*StateNodeBuilder, 0, live.Count()+1)
	for _, s := range g.states {
		if s != start && !live.Test(uint(s.order)) {
			continue
		}
		s.successors = slices.DeleteFunc(s.successors, func(e *StateTransitionBuilder) bool {
			return !live.Test(uint(e.target.order))
		})
		kept = append(kept, s)
	}

	g.logger.Debug("pruned dead states", "removed", n-len(kept))
	g.states = kept
	for i, s := range g.states {
		s.order = i
	}
}

// splitCaptureConflicts duplicates states whose incoming edges carry
// different capture signatures until every state has one signature.
//
// For a state with k signature groups, groups 2..k each get a copy of the
// state with copies of all its outgoing edges, and the incoming edges of
// the group are replaced by split copies entering that copy. Copies keep
// the source and edge sets of the originals, so no new signatures appear
// and the loop settles after one splitting pass.
func (g *Generator) splitCaptureConflicts() error {
	incoming := make(map[*StateNodeBuilder][]*StateTransitionBuilder)
	for _, s := range g.states {
		for _, e := range s.successors {
			incoming[e.target] = append(incoming[e.target], e)
		}
	}

	for {
		split := false
		for i := 0; i < len(g.states); i++ {
			s := g.states[i]
			groups := groupBySignature(incoming[s])
			if len(groups) < 2 {
				continue
			}
			if err := g.splitState(s, groups, incoming); err != nil {
				return err
			}
			split = true
		}
		if !split {
			return nil
		}
	}
}

func (g *Generator) splitState(s *StateNodeBuilder, groups [][]*StateTransitionBuilder, incoming map[*StateNodeBuilder][]*StateTransitionBuilder) error {
	origin := s
	for origin.splitFrom != nil {
		origin = origin.splitFrom
	}

	nodes := make([]*StateNodeBuilder, len(groups))
	nodes[0] = s
	groupOf := make(map[*StateTransitionBuilder]int)
	for k, grp := range groups {
		for _, e := range grp {
			groupOf[e] = k
		}
	}
	for k := 1; k < len(groups); k++ {
		if len(g.states) >= g.config.MaxStates {
			return stateExplosion("states", g.config.MaxStates)
		}
		cp := newStateNodeBuilder(s.set.Clone(), len(g.states))
		cp.anchoredFinal = s.anchoredFinal
		cp.unanchoredFinal = s.unanchoredFinal
		cp.splitFrom = origin
		g.states = append(g.states, cp)
		nodes[k] = cp
	}
	incoming[s] = slices.Clone(groups[0])

	originals := slices.Clone(s.successors)
	for _, cp := range nodes[1:] {
		for _, e := range originals {
			if g.numEdges >= g.config.MaxTransitions {
				return stateExplosion("transitions", g.config.MaxTransitions)
			}
			g.numEdges++

			target := e.target
			if target == s {
				target = nodes[groupOf[e]]
			}
			ne := e.CreateNodeSplitCopy()
			cp.addSuccessor(ne)
			ne.setTarget(target)
			ne.setCapture(newCaptureGroupTransition(cp.set, ne.set))
			incoming[target] = append(incoming[target], ne)
		}
	}

	for k := 1; k < len(groups); k++ {
		for _, e := range groups[k] {
			src := e.source
			ne := e.CreateNodeSplitCopy()
			src.replaceSuccessor(e, ne)
			ne.setTarget(nodes[k])
			ne.setCapture(newCaptureGroupTransition(src.set, ne.set))
			incoming[nodes[k]] = append(incoming[nodes[k]], ne)
		}
	}

	g.logger.Debug("split DFA state", "order", s.order, "copies", len(groups)-1)
	return nil
}

// groupBySignature buckets edges by capture signature, in order of first
// appearance.
func groupBySignature(edges []*StateTransitionBuilder) [][]*StateTransitionBuilder {
	var groups [][]*StateTransitionBuilder
	index := make(map[string]int)
	for _, e := range edges {
		sig := e.capture.signature()
		k, ok := index[sig]
		if !ok {
			k = len(groups)
			index[sig] = k
			groups = append(groups, nil)
		}
		groups[k] = append(groups[k], e)
	}
	return groups
}
