package prefilter

import (
	"slices"
	"unicode/utf8"

	"github.com/coregx/coredfa/dfa"
)

// Limits bounds literal extraction.
type Limits struct {
	// MaxLiterals caps the number of literals. Extraction stops growing the
	// set before it would exceed this.
	// Default: 64
	MaxLiterals int `json:"max_literals"`

	// MaxLen caps the length of each literal in code points.
	// Default: 16
	MaxLen int `json:"max_len"`

	// MaxClassSize is the largest number of code points an edge may match
	// and still be expanded into literals.
	// Default: 4
	MaxClassSize int `json:"max_class_size"`
}

// DefaultLimits returns the default extraction limits
func DefaultLimits() Limits {
	return Limits{
		MaxLiterals:  64,
		MaxLen:       16,
		MaxClassSize: 4,
	}
}

type prefix struct {
	state int
	lit   []byte
	runes int
	done  bool
}

// ExtractPrefixes returns the literal prefixes every match of d must begin
// with, sorted and deduplicated, and whether any were found.
//
// The walk starts at the start state and extends each prefix through all
// outgoing edges as long as every edge matches at most MaxClassSize code
// points. A prefix stops growing at an accepting state, at MaxLen, or when
// an edge is too wide. Prefixes reaching a state with no edges and no final
// transition are dropped since nothing can match through them.
//
// Only forward DFAs are supported. An unanchored DFA starts with a catch-all
// edge and yields no literals.
func ExtractPrefixes(d *dfa.DFA, limits Limits) ([]string, bool) {
	if d == nil || !d.IsForward() || d.NumStates() == 0 {
		return nil, false
	}

	frontier := []prefix{{state: d.Start()}}
	for {
		next := make([]prefix, 0, len(frontier))
		grew := false
		for _, p := range frontier {
			if p.done {
				next = append(next, p)
				continue
			}
			ext, ok := extend(d, p, limits)
			if !ok {
				p.done = true
				next = append(next, p)
				continue
			}
			next = append(next, ext...)
			grew = true
		}
		if len(next) > limits.MaxLiterals {
			break
		}
		frontier = next
		if !grew {
			break
		}
	}

	if len(frontier) == 0 {
		return nil, false
	}
	lits := make([]string, 0, len(frontier))
	for _, p := range frontier {
		if len(p.lit) == 0 {
			return nil, false
		}
		lits = append(lits, string(p.lit))
	}
	slices.Sort(lits)
	return slices.Compact(lits), true
}

// extend returns the one-code-point extensions of p, or false when p cannot
// grow.
func extend(d *dfa.DFA, p prefix, limits Limits) ([]prefix, bool) {
	s := d.State(p.state)
	if s.IsFinal() || p.runes >= limits.MaxLen {
		return nil, false
	}
	edges := s.Successors()
	for _, e := range edges {
		if e.Matcher().Len() > limits.MaxClassSize {
			return nil, false
		}
	}

	var out []prefix
	for _, e := range edges {
		for _, r := range e.Matcher().Ranges() {
			for c := r.Lo; c <= r.Hi; c++ {
				lit := utf8.AppendRune(slices.Clip(p.lit), c)
				out = append(out, prefix{state: e.Target().ID(), lit: lit, runes: p.runes + 1})
			}
		}
	}
	return out, true
}
