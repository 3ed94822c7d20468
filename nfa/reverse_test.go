package nfa

import (
	"testing"
)

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func TestReverse_Language(t *testing.T) {
	tests := []struct {
		pattern string
		inputs  []string
	}{
		{pattern: "abc", inputs: []string{"abc", "cba", "ab", ""}},
		{pattern: "foo|bar", inputs: []string{"foo", "bar", "oof", "rab", "fo"}},
		{pattern: "a(b|cd)*e", inputs: []string{"ae", "abe", "acde", "abcdbe", "ea", "acd"}},
		{pattern: "x+y?", inputs: []string{"x", "xxy", "y", "yx", "xyx"}},
	}

	compiler := NewCompiler(CompilerConfig{Anchored: true})
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			forward, err := compiler.Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.pattern, err)
			}
			reverse := Reverse(forward)

			if reverse.Forward() {
				t.Error("Reverse() should produce a backward NFA")
			}
			if reverse.NumStates() != forward.NumStates() {
				t.Errorf("NumStates() = %d, want %d", reverse.NumStates(), forward.NumStates())
			}

			for _, in := range tt.inputs {
				want := accepts(forward, in)
				if got := accepts(reverse, reverseString(in)); got != want {
					t.Errorf("reverse accepts(%q) = %v, forward accepts(%q) = %v",
						reverseString(in), got, in, want)
				}
			}
		})
	}
}

func TestReverse_Twice(t *testing.T) {
	forward, err := NewCompiler(CompilerConfig{Anchored: true}).Compile("ab|c")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	twice := Reverse(Reverse(forward))
	if !twice.Forward() {
		t.Error("reversing twice should restore the forward direction")
	}
	for _, in := range []string{"ab", "c", "ba", "abc"} {
		if accepts(twice, in) != accepts(forward, in) {
			t.Errorf("accepts(%q) differs after double reverse", in)
		}
	}
}
