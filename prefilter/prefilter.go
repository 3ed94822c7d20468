// Package prefilter finds candidate match positions from literal prefixes
// extracted out of a finalized DFA.
//
// A prefilter is used to skip positions in the haystack that cannot start a
// match. ExtractPrefixes walks the DFA from its start state and collects the
// finite set of literals every match must begin with; Build turns them into
// an Aho-Corasick automaton that reports the next position where one of them
// occurs. The DFA then confirms or rejects each candidate.
//
// Example usage:
//
//	d, _ := dfa.Determinize(n, dfa.DefaultConfig())
//	var f prefilter.Finder // nil scans every position
//	if pf, err := prefilter.FromDFA(d, prefilter.DefaultLimits()); err == nil {
//	    f = pf
//	}
//	for _, m := range prefilter.FindAll(d, f, haystack, -1) {
//	    fmt.Println(m)
//	}
package prefilter

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/coredfa/dfa"
)

// ErrNoLiterals is returned when no prefilter can be built because the
// pattern has no usable literal prefix.
var ErrNoLiterals = errors.New("prefilter: no literal prefixes")

// Finder reports the next candidate position at or after at, or -1.
type Finder interface {
	Find(haystack []byte, at int) int
}

// Prefilter is an Aho-Corasick candidate finder over literal prefixes.
// It is safe for concurrent use.
type Prefilter struct {
	auto     *ahocorasick.Automaton
	literals []string
	patterns [][]byte
	maxLen   int
}

// Build creates a prefilter matching any of literals.
// Returns ErrNoLiterals if literals is empty or contains the empty string,
// since an empty prefix matches everywhere.
func Build(literals []string) (*Prefilter, error) {
	if len(literals) == 0 {
		return nil, ErrNoLiterals
	}
	lits := slices.Clone(literals)
	slices.Sort(lits)
	lits = slices.Compact(lits)
	if lits[0] == "" {
		return nil, fmt.Errorf("%w: empty literal", ErrNoLiterals)
	}

	p := &Prefilter{literals: lits, patterns: make([][]byte, len(lits))}
	builder := ahocorasick.NewBuilder()
	for i, lit := range lits {
		p.patterns[i] = []byte(lit)
		p.maxLen = max(p.maxLen, len(lit))
		builder.AddPattern(p.patterns[i])
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("prefilter: building automaton: %w", err)
	}
	p.auto = auto
	return p, nil
}

// FromDFA extracts the literal prefixes of d and builds a prefilter for them.
func FromDFA(d *dfa.DFA, limits Limits) (*Prefilter, error) {
	lits, ok := ExtractPrefixes(d, limits)
	if !ok {
		return nil, ErrNoLiterals
	}
	return Build(lits)
}

// Find returns the start of the leftmost literal occurrence at or after at,
// or -1 if there is none.
//
// The automaton reports the occurrence that ends first. A longer literal
// starting earlier ends no sooner, so it starts within maxLen bytes before
// that end and is found by checking the positions in between.
func (p *Prefilter) Find(haystack []byte, at int) int {
	if at < 0 || at >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, at)
	if m == nil {
		return -1
	}
	for i := max(at, m.End-p.maxLen); i < m.Start; i++ {
		if p.hasLiteralAt(haystack, i) {
			return i
		}
	}
	return m.Start
}

func (p *Prefilter) hasLiteralAt(haystack []byte, i int) bool {
	for _, lit := range p.patterns {
		if bytes.HasPrefix(haystack[i:], lit) {
			return true
		}
	}
	return false
}

// IsMatch reports whether any literal occurs in haystack
func (p *Prefilter) IsMatch(haystack []byte) bool {
	return p.auto.IsMatch(haystack)
}

// Literals returns the sorted, deduplicated literals
func (p *Prefilter) Literals() []string {
	return slices.Clone(p.literals)
}
