package nfa

import (
	"errors"
	"regexp"
	"testing"
)

func TestCompile_MatchesStdlib(t *testing.T) {
	patterns := []string{
		"abc",
		"a|ab",
		"a*b",
		"(a|b)+c",
		"x{2,3}",
		"[a-c]?d",
		"(?i)k",
		"a.c",
		"^ab$",
		"(foo|foobar)(bar)?",
		"[^a]*",
		"",
	}
	inputs := []string{
		"", "a", "ab", "abc", "b", "aab", "abbc", "c", "xx", "xxx", "xxxx",
		"d", "cd", "k", "K", "\u212a", "a\nc", "abcabc", "foo", "foobar",
		"foobarbar", "bbb",
	}

	compiler := NewCompiler(CompilerConfig{Anchored: true})
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			n, err := compiler.Compile(pattern)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", pattern, err)
			}
			re := regexp.MustCompile(`^(?:` + pattern + `)$`)
			for _, in := range inputs {
				if got, want := accepts(n, in), re.MatchString(in); got != want {
					t.Errorf("accepts(%q) = %v, regexp says %v", in, got, want)
				}
			}
		})
	}
}

// stepOrder lists, in priority order, what follows each transition taken
// from the start state on r: "final" or the next transition's matcher.
func stepOrder(n *NFA, r rune) []string {
	var order []string
	for _, t := range n.State(n.Initial()[0].Target()).Next() {
		if n.IsFinal(t.Target()) || !t.Matcher().Contains(r) {
			continue
		}
		for _, u := range n.State(t.Target()).Next() {
			if n.IsFinal(u.Target()) {
				order = append(order, "final")
			} else {
				order = append(order, u.Matcher().String())
			}
		}
	}
	return order
}

func TestCompile_LeftmostFirstOrder(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{pattern: "a|ab", want: []string{"final", "[b]"}},
		{pattern: "ab|a", want: []string{"[b]", "final"}},
		{pattern: "ab*", want: []string{"[b]", "final"}},
		{pattern: "ab*?", want: []string{"final", "[b]"}},
	}

	compiler := NewCompiler(CompilerConfig{Anchored: true})
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := compiler.Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			got := stepOrder(n, 'a')
			if len(got) != len(tt.want) {
				t.Fatalf("order after 'a' = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("order after 'a' = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestCompile_Unanchored(t *testing.T) {
	n, err := NewDefaultCompiler().Compile("ab")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	next := n.State(n.Initial()[0].Target()).Next()
	if len(next) != 2 {
		t.Fatalf("start state has %d transitions, want 2", len(next))
	}
	if got := next[0].Matcher().String(); got != "[a]" {
		t.Errorf("pattern transition should come first, got %s", got)
	}
	if !next[1].Matcher().Contains('z') {
		t.Errorf("second transition should be the any-char prefix, got %s", next[1].Matcher())
	}
	if !accepts(n, "zzab") {
		t.Error("unanchored NFA should accept a match after a prefix")
	}
}

func TestCompile_Captures(t *testing.T) {
	n, err := NewCompiler(CompilerConfig{Anchored: true}).Compile("(a)b")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if n.CaptureCount() != 2 {
		t.Errorf("CaptureCount() = %d, want 2", n.CaptureCount())
	}

	toA := n.State(n.Initial()[0].Target()).Next()[0]
	if got := toA.Groups().String(); got != "set{0,2}" {
		t.Errorf("groups entering 'a' = %q, want %q", got, "set{0,2}")
	}
	toB := n.State(toA.Target()).Next()[0]
	if got := toB.Groups().String(); got != "set{3}" {
		t.Errorf("groups entering 'b' = %q, want %q", got, "set{3}")
	}
	final := n.State(toB.Target()).Next()[0]
	if final.Target() != n.UnanchoredFinal() || final.Groups().String() != "set{1}" {
		t.Errorf("final transition = %v, want unanchored final with set{1}", final)
	}
}

func TestCompile_EndAnchor(t *testing.T) {
	n, err := NewCompiler(CompilerConfig{Anchored: true}).Compile("a$")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	final := n.State(n.State(n.Initial()[0].Target()).Next()[0].Target()).Next()[0]
	if final.Target() != n.AnchoredFinal() {
		t.Errorf("'a$' should accept through the anchored final, got %v", final)
	}
}

func TestCompile_MidText(t *testing.T) {
	n, err := NewCompiler(CompilerConfig{Anchored: true, MidText: true}).Compile(`^a|b`)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	initial := n.Initial()
	if len(initial) != 1 || !initial[0].Matcher().Contains('b') || initial[0].Matcher().Contains('a') {
		t.Errorf("initial transitions = %v, want only the 'b' branch", initial)
	}

	_, err = NewCompiler(CompilerConfig{Anchored: true, MidText: true}).Compile(`\Aab`)
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("pattern needing the start of input: error = %v, want ErrInvalidPattern", err)
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		config  CompilerConfig
		want    error
	}{
		{name: "syntax", pattern: "a(", want: ErrInvalidPattern},
		{name: "multiline begin", pattern: "(?m)^a", want: ErrInvalidPattern},
		{name: "word boundary", pattern: `\bfoo`, want: ErrInvalidPattern},
		{name: "never matches", pattern: `a\Ab`, config: CompilerConfig{Anchored: true}, want: ErrInvalidPattern},
		{name: "too many nodes", pattern: "abcdefghij", config: CompilerConfig{MaxNodes: 5}, want: ErrTooComplex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCompiler(tt.config).Compile(tt.pattern)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Compile(%q) error = %v, want %v", tt.pattern, err, tt.want)
			}
			var ce *CompileError
			if !errors.As(err, &ce) || ce.Pattern != tt.pattern {
				t.Errorf("expected *CompileError carrying the pattern, got %v", err)
			}
		})
	}
}
