package nfa

import (
	"fmt"
	"regexp/syntax"
	"slices"
	"unicode"

	"github.com/coregx/coredfa/interval"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// Anchored forces the pattern to match only at the start of input.
	// When false, a lazy (?s:.)*? prefix is prepended.
	Anchored bool `json:"anchored"`

	// DotNewline determines whether '.' matches '\n'
	DotNewline bool `json:"dot_newline"`

	// CaseInsensitive compiles the pattern as if it started with (?i)
	CaseInsensitive bool `json:"case_insensitive"`

	// MidText compiles the pattern for a match that starts after the
	// beginning of the input, where ^ and \A never hold.
	MidText bool `json:"-"`

	// MaxNodes limits the size of the intermediate Thompson graph.
	// Patterns exceeding it fail with ErrTooComplex.
	// Default: 10000
	MaxNodes int `json:"max_nodes"`
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		Anchored:        false,
		DotNewline:      false,
		CaseInsensitive: false,
		MaxNodes:        10000,
	}
}

// Compiler lowers regexp/syntax trees into epsilon-free NFAs.
//
// The pattern is first compiled into a Thompson graph with epsilon edges.
// Each character node then becomes one NFA state ("just consumed this
// character"), and each state's outgoing transitions are the character
// nodes and match nodes reachable through its epsilon closure, in
// leftmost-first order. Transition priorities follow that order.
type Compiler struct {
	config CompilerConfig
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxNodes <= 0 {
		config.MaxNodes = DefaultCompilerConfig().MaxNodes
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses and compiles a regex pattern string into an NFA
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	flags := syntax.Perl
	if c.config.DotNewline {
		flags |= syntax.DotNL
	}
	if c.config.CaseInsensitive {
		flags |= syntax.FoldCase
	}
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     fmt.Errorf("%w: %v", ErrInvalidPattern, err),
		}
	}

	n, err := c.CompileRegexp(re)
	if err != nil {
		if ce, ok := err.(*CompileError); ok {
			ce.Pattern = pattern
		}
		return nil, err
	}
	return n, nil
}

// CompileRegexp compiles a parsed syntax.Regexp into an NFA
func (c *Compiler) CompileRegexp(re *syntax.Regexp) (*NFA, error) {
	g := &thompson{maxNodes: c.config.MaxNodes}

	match := g.push(enode{kind: enodeMatch})
	body := g.push(enode{kind: enodeCapture, slot: CloseSlot(0), out: match})
	inner, err := g.compile(re.Simplify(), body)
	if err != nil {
		return nil, err
	}
	entry := g.push(enode{kind: enodeCapture, slot: OpenSlot(0), out: inner})
	if !c.config.Anchored {
		entry = g.lazyAnyPrefix(entry)
	}
	if g.err != nil {
		return nil, g.err
	}

	return g.lower(entry, re.MaxCap()+1, c.config.MidText)
}

type enodeKind uint8

const (
	enodeChar enodeKind = iota
	enodeSplit
	enodeCapture
	enodeMatch
	enodeBeginText
	enodeEndText
	enodeFail
)

// enode is a node of the intermediate Thompson graph.
// Split nodes prefer out over out1.
type enode struct {
	kind    enodeKind
	matcher interval.Matcher
	out     int
	out1    int
	slot    int
}

type thompson struct {
	nodes    []enode
	maxNodes int
	err      error
}

func (g *thompson) push(n enode) int {
	if len(g.nodes) >= g.maxNodes && g.err == nil {
		g.err = &CompileError{Err: ErrTooComplex}
	}
	g.nodes = append(g.nodes, n)
	return len(g.nodes) - 1
}

// compile appends the nodes for re, continuing to next, and returns the entry node.
func (g *thompson) compile(re *syntax.Regexp, next int) (int, error) {
	if g.err != nil {
		return 0, g.err
	}

	switch re.Op {
	case syntax.OpEmptyMatch:
		return next, nil

	case syntax.OpNoMatch:
		return g.push(enode{kind: enodeFail}), nil

	case syntax.OpLiteral:
		fold := re.Flags&syntax.FoldCase != 0
		for i := len(re.Rune) - 1; i >= 0; i-- {
			next = g.push(enode{kind: enodeChar, matcher: literalMatcher(re.Rune[i], fold), out: next})
		}
		return next, nil

	case syntax.OpCharClass:
		m, err := interval.FromRunePairs(re.Rune)
		if err != nil {
			return 0, &CompileError{Err: fmt.Errorf("%w: %v", ErrInvalidPattern, err)}
		}
		if m.IsEmpty() {
			return g.push(enode{kind: enodeFail}), nil
		}
		return g.push(enode{kind: enodeChar, matcher: m, out: next}), nil

	case syntax.OpAnyCharNotNL:
		m := interval.All().Subtract(interval.Single('\n'))
		return g.push(enode{kind: enodeChar, matcher: m, out: next}), nil

	case syntax.OpAnyChar:
		return g.push(enode{kind: enodeChar, matcher: interval.All(), out: next}), nil

	case syntax.OpBeginText:
		return g.push(enode{kind: enodeBeginText, out: next}), nil

	case syntax.OpEndText:
		return g.push(enode{kind: enodeEndText, out: next}), nil

	case syntax.OpCapture:
		closeNode := g.push(enode{kind: enodeCapture, slot: CloseSlot(re.Cap), out: next})
		body, err := g.compile(re.Sub[0], closeNode)
		if err != nil {
			return 0, err
		}
		return g.push(enode{kind: enodeCapture, slot: OpenSlot(re.Cap), out: body}), nil

	case syntax.OpConcat:
		var err error
		for i := len(re.Sub) - 1; i >= 0; i-- {
			if next, err = g.compile(re.Sub[i], next); err != nil {
				return 0, err
			}
		}
		return next, nil

	case syntax.OpAlternate:
		entry, err := g.compile(re.Sub[len(re.Sub)-1], next)
		if err != nil {
			return 0, err
		}
		for i := len(re.Sub) - 2; i >= 0; i-- {
			alt, err := g.compile(re.Sub[i], next)
			if err != nil {
				return 0, err
			}
			entry = g.push(enode{kind: enodeSplit, out: alt, out1: entry})
		}
		return entry, nil

	case syntax.OpStar:
		split := g.push(enode{kind: enodeSplit})
		body, err := g.compile(re.Sub[0], split)
		if err != nil {
			return 0, err
		}
		g.setBranches(split, body, next, re.Flags&syntax.NonGreedy != 0)
		return split, nil

	case syntax.OpPlus:
		split := g.push(enode{kind: enodeSplit})
		body, err := g.compile(re.Sub[0], split)
		if err != nil {
			return 0, err
		}
		g.setBranches(split, body, next, re.Flags&syntax.NonGreedy != 0)
		return body, nil

	case syntax.OpQuest:
		body, err := g.compile(re.Sub[0], next)
		if err != nil {
			return 0, err
		}
		split := g.push(enode{kind: enodeSplit})
		g.setBranches(split, body, next, re.Flags&syntax.NonGreedy != 0)
		return split, nil

	default:
		// OpRepeat is expanded by Simplify; line and word assertions
		// need look-behind that an epsilon-free NFA cannot express.
		return 0, &CompileError{Err: fmt.Errorf("%w: unsupported operator %v", ErrInvalidPattern, re.Op)}
	}
}

// setBranches points a split at body and exit, preferring body unless lazy.
func (g *thompson) setBranches(split, body, exit int, lazy bool) {
	if lazy {
		g.nodes[split].out, g.nodes[split].out1 = exit, body
	} else {
		g.nodes[split].out, g.nodes[split].out1 = body, exit
	}
}

// lazyAnyPrefix wraps entry in (?s:.)*? so a match may start anywhere.
func (g *thompson) lazyAnyPrefix(entry int) int {
	split := g.push(enode{kind: enodeSplit})
	anyChar := g.push(enode{kind: enodeChar, matcher: interval.All(), out: split})
	g.setBranches(split, anyChar, entry, true)
	return split
}

func literalMatcher(r rune, fold bool) interval.Matcher {
	if !fold {
		return interval.Single(r)
	}
	ranges := []interval.Range{{Lo: r, Hi: r}}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		ranges = append(ranges, interval.Range{Lo: f, Hi: f})
	}
	return interval.Must(interval.New(ranges...))
}

// closureStep is one stop reached through an epsilon closure.
type closureStep struct {
	node  int
	slots []int
	ended bool
}

// closure walks epsilon edges from start depth-first in priority order and
// returns the reachable character and match nodes. A node reached twice with
// the same end-of-text flag keeps its first (highest priority) path.
func (g *thompson) closure(start int, atStart bool) []closureStep {
	var steps []closureStep
	visited := make(map[int]bool)

	var visit func(n int, slots []int, ended bool)
	visit = func(n int, slots []int, ended bool) {
		key := n * 2
		if ended {
			key++
		}
		if visited[key] {
			return
		}
		visited[key] = true

		node := &g.nodes[n]
		switch node.kind {
		case enodeChar:
			if !ended {
				steps = append(steps, closureStep{node: n, slots: slots})
			}
		case enodeMatch:
			steps = append(steps, closureStep{node: n, slots: slots, ended: ended})
		case enodeSplit:
			visit(node.out, slots, ended)
			visit(node.out1, slots, ended)
		case enodeCapture:
			visit(node.out, append(slices.Clip(slots), node.slot), ended)
		case enodeBeginText:
			if atStart {
				visit(node.out, slots, ended)
			}
		case enodeEndText:
			visit(node.out, slots, true)
		case enodeFail:
		}
	}
	visit(start, nil, false)
	return steps
}

// lower converts the Thompson graph reachable from entry into an
// epsilon-free NFA, numbering states in breadth-first order.
func (g *thompson) lower(entry int, captures int, midText bool) (*NFA, error) {
	b := NewBuilderWithCapacity(len(g.nodes))
	b.SetCaptureCount(captures)

	stateOf := make(map[int]StateID)
	var queue []int

	emit := func(src StateID, steps []closureStep) {
		for _, st := range steps {
			opt := WithGroups(NewGroupBoundaries(st.slots, nil))
			node := &g.nodes[st.node]
			if node.kind == enodeMatch {
				b.AddFinalTransition(src, st.ended, opt)
				continue
			}
			dst, ok := stateOf[st.node]
			if !ok {
				dst = b.AddState()
				stateOf[st.node] = dst
				queue = append(queue, st.node)
			}
			b.AddTransition(src, dst, node.matcher, opt)
		}
	}

	start := b.AddState()
	b.AddInitial(start)
	emit(start, g.closure(entry, !midText))

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		emit(stateOf[n], g.closure(g.nodes[n].out, false))
	}

	nfa, err := b.Build()
	if err != nil {
		// The only reachable failure is a pattern that can never match.
		return nil, &CompileError{Err: fmt.Errorf("%w: %v", ErrInvalidPattern, err)}
	}
	return nfa, nil
}
