package dfa

import (
	"cmp"
	"encoding/binary"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/coregx/coredfa/nfa"
)

// TransitionSet is an ordered set of NFA transitions without duplicates.
// It is the identity of a DFA state: two states are the same state exactly
// when their sets are Equal.
//
// In priority-sensitive mode every member carries a rank, and members are
// kept in (rank, id) order. A rank is the position of the thread among all
// threads of the expanding state, so the order of a set is the order in
// which its threads win under leftmost-first semantics. NewTransitionSet
// uses each transition's static priority as its rank. Otherwise members are
// kept in id order. Because the order is canonical, merging is commutative
// and idempotent in both membership and order; a transition must carry the
// same rank in every set it is merged from.
type TransitionSet struct {
	members           []member
	prioritySensitive bool

	hash   uint64
	hashed bool
}

type member struct {
	t    *nfa.Transition
	rank int
}

// NewTransitionSet returns a canonical set holding ts, ranked by priority.
func NewTransitionSet(prioritySensitive bool, ts ...*nfa.Transition) *TransitionSet {
	s := &TransitionSet{
		members:           make([]member, len(ts)),
		prioritySensitive: prioritySensitive,
	}
	for i, t := range ts {
		s.members[i] = member{t: t, rank: t.Priority()}
	}
	slices.SortFunc(s.members, s.compare)
	s.members = slices.CompactFunc(s.members, func(a, b member) bool {
		return a.t.ID() == b.t.ID()
	})
	return s
}

// newRankedSet returns a singleton set whose member has the given rank.
func newRankedSet(prioritySensitive bool, t *nfa.Transition, rank int) *TransitionSet {
	return &TransitionSet{
		members:           []member{{t: t, rank: rank}},
		prioritySensitive: prioritySensitive,
	}
}

func (s *TransitionSet) compare(a, b member) int {
	if s.prioritySensitive {
		if c := cmp.Compare(a.rank, b.rank); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.t.ID(), b.t.ID())
}

// PrioritySensitive reports the ordering mode of the set
func (s *TransitionSet) PrioritySensitive() bool {
	return s.prioritySensitive
}

// Len returns the number of members
func (s *TransitionSet) Len() int {
	return len(s.members)
}

// IsEmpty reports whether the set has no members
func (s *TransitionSet) IsEmpty() bool {
	return len(s.members) == 0
}

// At returns the i-th member in canonical order
func (s *TransitionSet) At(i int) *nfa.Transition {
	return s.members[i].t
}

// All iterates over the members in canonical order
func (s *TransitionSet) All() iter.Seq2[int, *nfa.Transition] {
	return func(yield func(int, *nfa.Transition) bool) {
		for i, m := range s.members {
			if !yield(i, m.t) {
				return
			}
		}
	}
}

// Contains reports whether t is a member
func (s *TransitionSet) Contains(t *nfa.Transition) bool {
	return slices.ContainsFunc(s.members, func(m member) bool {
		return m.t.ID() == t.ID()
	})
}

// IDs returns the member IDs in canonical order
func (s *TransitionSet) IDs() []nfa.TransitionID {
	ids := make([]nfa.TransitionID, len(s.members))
	for i, m := range s.members {
		ids[i] = m.t.ID()
	}
	return ids
}

// Clone returns an independent copy of the set
func (s *TransitionSet) Clone() *TransitionSet {
	return &TransitionSet{
		members:           slices.Clone(s.members),
		prioritySensitive: s.prioritySensitive,
		hash:              s.hash,
		hashed:            s.hashed,
	}
}

// CreateMerged returns a new set holding the members of both sets.
// Neither operand is modified.
func (s *TransitionSet) CreateMerged(other *TransitionSet) *TransitionSet {
	s.checkCompatible(other)
	return &TransitionSet{
		members:           s.merge(other),
		prioritySensitive: s.prioritySensitive,
	}
}

// AddAll adds the members of other to s.
func (s *TransitionSet) AddAll(other *TransitionSet) {
	s.checkCompatible(other)
	if other.IsEmpty() {
		return
	}
	s.members = s.merge(other)
	s.hashed = false
}

// merge is a linear two-way merge that drops duplicate members.
func (s *TransitionSet) merge(other *TransitionSet) []member {
	a, b := s.members, other.members
	out := make([]member, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := s.compare(a[i], b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func (s *TransitionSet) checkCompatible(other *TransitionSet) {
	if s.prioritySensitive != other.prioritySensitive {
		panic("dfa: cannot merge transition sets with different ordering modes")
	}
}

// Equal reports whether both sets hold the same members in the same order
// and mode. Ranks only matter through the order they impose.
func (s *TransitionSet) Equal(other *TransitionSet) bool {
	if s == other {
		return true
	}
	if s.prioritySensitive != other.prioritySensitive || len(s.members) != len(other.members) {
		return false
	}
	for i, m := range s.members {
		if m.t.ID() != other.members[i].t.ID() {
			return false
		}
	}
	return true
}

// Hash returns an xxhash digest of the member IDs in canonical order.
// The value is cached until the set changes.
func (s *TransitionSet) Hash() uint64 {
	if s.hashed {
		return s.hash
	}
	buf := make([]byte, 0, 1+4*len(s.members))
	if s.prioritySensitive {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	for _, m := range s.members {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(m.t.ID()))
	}
	s.hash = xxhash.Sum64(buf)
	s.hashed = true
	return s.hash
}

// String returns the member IDs, e.g. "{t1,t4}"
func (s *TransitionSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range s.members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('t')
		sb.WriteString(strconv.FormatUint(uint64(m.t.ID()), 10))
	}
	sb.WriteByte('}')
	return sb.String()
}
