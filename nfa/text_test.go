package nfa

import (
	"errors"
	"testing"
)

func TestParseText(t *testing.T) {
	src := `
		start -> s0;
		s0 -> s1 ['a'-'f', 'x'] open(1);
		s1 -> s1 [48-57];
		s1 -> accept close(1);
		s0 -> accept_anchored;
	`
	n, err := ParseText(src)
	if err != nil {
		t.Fatalf("ParseText failed: %v", err)
	}

	if len(n.Initial()) != 1 {
		t.Fatalf("got %d initial transitions, want 1", len(n.Initial()))
	}
	s0 := n.State(n.Initial()[0].Target())
	next := s0.Next()
	if len(next) != 2 {
		t.Fatalf("s0 has %d transitions, want 2", len(next))
	}
	if got := next[0].Matcher().String(); got != "[a-fx]" {
		t.Errorf("s0 -> s1 matcher = %s, want [a-fx]", got)
	}
	if got := next[0].Groups().String(); got != "set{2}" {
		t.Errorf("s0 -> s1 groups = %q, want set{2}", got)
	}
	if next[1].Target() != n.AnchoredFinal() {
		t.Errorf("second s0 edge should enter the anchored final")
	}
	if n.CaptureCount() != 2 {
		t.Errorf("CaptureCount() = %d, want 2", n.CaptureCount())
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"a", true},
		{"x42", true},
		{"g", false},
		{"a4b", false},
	}
	for _, tt := range tests {
		if got := accepts(n, tt.input); got != tt.want {
			t.Errorf("accepts(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseText_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{name: "syntax", src: "start -> ;", want: ErrInvalidText},
		{name: "missing class", src: "start -> s0; s0 -> s1; s1 -> accept;", want: ErrInvalidText},
		{name: "class on final", src: "start -> s0; s0 -> accept ['a'];", want: ErrInvalidText},
		{name: "start as target", src: "start -> s0; s0 -> start ['a'];", want: ErrInvalidText},
		{name: "final as source", src: "start -> s0; accept -> s0 ['a'];", want: ErrInvalidText},
		{name: "inverted range", src: "start -> s0; s0 -> s1 ['z'-'a']; s1 -> accept;", want: ErrInvalidText},
		{name: "multi-rune char", src: `start -> s0; s0 -> s1 ['ab']; s1 -> accept;`, want: ErrInvalidText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseText(tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseText error = %v, want %v", err, tt.want)
			}
		})
	}

	_, err := ParseText("start -> s0; s0 -> s0 ['a'];")
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Errorf("unreachable final should surface a *BuildError, got %v", err)
	}
}
