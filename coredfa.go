// Package coredfa compiles regular expressions into priority-preserving
// deterministic automata.
//
// A pattern is lowered to an epsilon-free NFA (package nfa), determinized by
// subset construction over code-point ranges (package dfa), and paired with
// an Aho-Corasick prefilter over its literal prefixes (package prefilter).
// The resulting DFA keeps leftmost-first semantics: where Go's regexp would
// prefer one alternative over another, so does the DFA.
//
// Basic usage:
//
//	re, err := coredfa.Compile(`foo(bar|baz)+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(re.DFA().NumStates())
//	fmt.Println(re.FindIndex([]byte("xx foobarbaz"))) // [3 12]
//
// Advanced usage:
//
//	config := coredfa.DefaultConfig()
//	config.DFA = config.DFA.WithMaxStates(50_000).WithPruneDeadStates(true)
//	re, err := coredfa.CompileWithConfig(`(a|b)*a(a|b){8}`, config)
//
// Determinization is exponential in the worst case; exceeding the configured
// budget fails with an error matching dfa.ErrStateExplosion.
package coredfa

import (
	"errors"
	"regexp/syntax"
	"slices"

	"github.com/coregx/coredfa/dfa"
	"github.com/coregx/coredfa/nfa"
	"github.com/coregx/coredfa/prefilter"
)

// Config bundles the settings of every compilation stage.
type Config struct {
	// Compiler configures pattern parsing. Anchored is ignored: a Regex
	// always compiles its pattern anchored and searches by trying each
	// candidate start.
	Compiler nfa.CompilerConfig `json:"compiler"`

	// DFA configures determinization. Search needs a forward DFA.
	DFA dfa.Config `json:"dfa"`

	// Literals bounds prefix extraction for the prefilter.
	Literals prefilter.Limits `json:"literals"`
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass it to CompileWithConfig.
func DefaultConfig() Config {
	return Config{
		Compiler: nfa.DefaultCompilerConfig(),
		DFA:      dfa.DefaultConfig(),
		Literals: prefilter.DefaultLimits(),
	}
}

// Regex is a compiled pattern. It is safe for concurrent use.
type Regex struct {
	dfa     *dfa.DFA
	pf      *prefilter.Prefilter
	pattern string

	// For patterns with ^ or \A, dfa confirms candidates at offset 0 and
	// rest everywhere else. A nil rest never matches.
	startOnly bool
	rest      *dfa.DFA
}

// Compile compiles pattern with the default configuration.
//
// Syntax is Perl-compatible (same as Go's stdlib regexp) except for
// constructs that cannot be expressed without lookaround, such as \b.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("coredfa: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern with a custom configuration.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	cc := config.Compiler
	cc.Anchored = true
	n, err := nfa.NewCompiler(cc).Compile(pattern)
	if err != nil {
		return nil, err
	}
	re, err := CompileNFA(n, config)
	if err != nil {
		return nil, err
	}
	re.pattern = pattern
	if parsed, err := syntax.Parse(pattern, syntax.Perl); err == nil && hasBeginText(parsed) {
		if err := re.compileRest(pattern, cc, config); err != nil {
			return nil, err
		}
	}
	return re, nil
}

func hasBeginText(re *syntax.Regexp) bool {
	return re.Op == syntax.OpBeginText || slices.ContainsFunc(re.Sub, hasBeginText)
}

// compileRest builds the DFA for candidates after offset 0 and widens the
// prefilter to its literal prefixes.
func (r *Regex) compileRest(pattern string, cc nfa.CompilerConfig, config Config) error {
	r.startOnly = true
	cc.MidText = true
	n, err := nfa.NewCompiler(cc).Compile(pattern)
	if errors.Is(err, nfa.ErrInvalidPattern) {
		// Every match needs the start of the input.
		return nil
	}
	if err != nil {
		return err
	}
	if r.rest, err = dfa.Determinize(n, config.DFA); err != nil {
		return err
	}

	if r.pf == nil {
		return nil
	}
	lits, ok := prefilter.ExtractPrefixes(r.rest, config.Literals)
	if !ok {
		r.pf = nil
		return nil
	}
	pf, err := prefilter.Build(append(r.pf.Literals(), lits...))
	if errors.Is(err, prefilter.ErrNoLiterals) {
		r.pf = nil
		return nil
	}
	if err != nil {
		return err
	}
	r.pf = pf
	return nil
}

// matchAt confirms a candidate start, choosing the DFA by offset.
func (r *Regex) matchAt(haystack []byte, at int) int {
	switch {
	case !r.startOnly || at == 0:
		return r.dfa.MatchAt(haystack, at)
	case r.rest == nil:
		return -1
	default:
		return r.rest.MatchAt(haystack, at)
	}
}

// CompileNFA determinizes a prebuilt NFA. The NFA should be anchored: its
// initial transitions are taken only at the candidate start.
func CompileNFA(n *nfa.NFA, config Config) (*Regex, error) {
	if !config.DFA.Forward {
		return nil, &dfa.DFAError{Kind: dfa.InvalidConfig, Message: "search requires a forward DFA"}
	}
	d, err := dfa.Determinize(n, config.DFA)
	if err != nil {
		return nil, err
	}

	pf, err := prefilter.FromDFA(d, config.Literals)
	if err != nil && !errors.Is(err, prefilter.ErrNoLiterals) {
		return nil, err
	}
	return &Regex{dfa: d, pf: pf}, nil
}

// DFA returns the underlying automaton
func (r *Regex) DFA() *dfa.DFA {
	return r.dfa
}

// Literals returns the prefixes every match begins with, or nil when the
// pattern has none and every position is tried.
func (r *Regex) Literals() []string {
	if r.pf == nil {
		return nil
	}
	return r.pf.Literals()
}

// String returns the source pattern, or "" for a Regex built from an NFA
func (r *Regex) String() string {
	return r.pattern
}

// Match reports whether b contains any match
func (r *Regex) Match(b []byte) bool {
	return r.FindIndex(b) != nil
}

// MatchString reports whether s contains any match
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// FindIndex returns the location of the leftmost match in b, or nil.
func (r *Regex) FindIndex(b []byte) []int {
	all := r.FindAllIndex(b, 1)
	if all == nil {
		return nil
	}
	return all[0]
}

// FindAllIndex returns the locations of successive non-overlapping matches,
// at most n of them when n >= 0. It returns nil if there is no match.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	var f prefilter.Finder
	if r.pf != nil {
		f = r.pf
	}
	matches := prefilter.FindAll(confirmer(r.matchAt), f, b, n)
	if len(matches) == 0 {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = []int{m.Start, m.End}
	}
	return out
}

// confirmer adapts a function to prefilter.Confirmer.
type confirmer func(haystack []byte, at int) int

func (c confirmer) MatchAt(haystack []byte, at int) int {
	return c(haystack, at)
}
