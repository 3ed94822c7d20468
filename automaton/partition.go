// Package automaton holds the alphabet-partitioning step shared by
// subset-construction style algorithms over code-point ranges.
//
// Given k transition builders with overlapping matchers, Partition splits
// the code-point domain into fragments such that every code point in a
// fragment is matched by exactly the same subset of builders. Each fragment
// becomes one merged builder. This is the step that turns "several NFA
// transitions on overlapping classes" into "deterministic DFA edges".
package automaton

import (
	"cmp"
	"encoding/binary"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/coredfa/interval"
)

// TransitionBuilder is a transition under construction that carries a
// matcher and a payload of type S. B is the concrete builder type.
//
// Implementations must not mutate the receiver or the argument in
// CreateMerged.
type TransitionBuilder[S any, B any] interface {
	// Matcher returns the code points the builder currently covers.
	Matcher() interval.Matcher

	// SetMatcher replaces the builder's matcher.
	SetMatcher(m interval.Matcher)

	// TransitionSet returns the builder's payload.
	TransitionSet() S

	// CreateMerged returns a new builder whose payload is the union of
	// both payloads and whose matcher is merged.
	CreateMerged(other B, merged interval.Matcher) B

	// MergeInPlace adds other's payload to the receiver and replaces
	// the receiver's matcher with merged.
	MergeInPlace(other B, merged interval.Matcher)
}

// boundary is an open or close event of one builder's range.
// Closes are recorded at Hi+1 so segments are half-open [at, next).
type boundary struct {
	at      rune
	builder int
	open    bool
}

// fragment accumulates the elementary segments sharing one cover set.
type fragment struct {
	cover  []int
	ranges []interval.Range
}

// Partition splits the matchers of in into disjoint fragments.
//
// Every elementary segment between consecutive range boundaries is
// labeled with the set of builders covering it; segments with the same
// label form one fragment, even when they are not contiguous. The result
// holds one new builder per fragment, ordered by the fragment's lowest code
// point. A fragment covered by builders i < j < ... is built as
// in[i].CreateMerged(in[j], m) followed by MergeInPlace for the rest, so
// payload merging follows input order. Builders with empty matchers
// contribute nothing; the inputs themselves are never modified.
//
// Example:
//
//	in:  [a-f]{t1}, [a-f]{t2}, [c-z]{t3}
//	out: [ab]{t1,t2}, [c-f]{t1,t2,t3}, [g-z]{t3}
//
// Runs in O(R log R) for R input ranges, plus the cost of merging payloads.
func Partition[S any, B TransitionBuilder[S, B]](in []B) []B {
	events := make([]boundary, 0, 2*len(in))
	for i, b := range in {
		for _, r := range b.Matcher().Ranges() {
			events = append(events,
				boundary{at: r.Lo, builder: i, open: true},
				boundary{at: r.Hi + 1, builder: i, open: false},
			)
		}
	}
	if len(events) == 0 {
		return nil
	}
	slices.SortFunc(events, func(a, b boundary) int {
		return cmp.Compare(a.at, b.at)
	})

	active := bitset.New(uint(len(in)))
	index := make(map[string]int)
	var frags []*fragment
	var key []byte

	for i := 0; i < len(events); {
		at := events[i].at
		for ; i < len(events) && events[i].at == at; i++ {
			if events[i].open {
				active.Set(uint(events[i].builder))
			} else {
				active.Clear(uint(events[i].builder))
			}
		}
		if active.None() {
			continue
		}

		// A non-empty active set always has a pending close event.
		segment := interval.Range{Lo: at, Hi: events[i].at - 1}

		key = key[:0]
		for b, ok := active.NextSet(0); ok; b, ok = active.NextSet(b + 1) {
			key = binary.AppendUvarint(key, uint64(b))
		}
		fi, ok := index[string(key)]
		if !ok {
			fi = len(frags)
			index[string(key)] = fi
			f := &fragment{}
			for b, ok := active.NextSet(0); ok; b, ok = active.NextSet(b + 1) {
				f.cover = append(f.cover, int(b))
			}
			frags = append(frags, f)
		}
		frags[fi].ranges = append(frags[fi].ranges, segment)
	}

	out := make([]B, 0, len(frags))
	for _, f := range frags {
		m := interval.Must(interval.New(f.ranges...))
		first := in[f.cover[0]]
		second := first
		if len(f.cover) > 1 {
			second = in[f.cover[1]]
		}
		merged := first.CreateMerged(second, m)
		for _, c := range f.cover[min(2, len(f.cover)):] {
			merged.MergeInPlace(in[c], m)
		}
		out = append(out, merged)
	}
	return out
}
