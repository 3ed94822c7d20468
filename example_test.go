package coredfa_test

import (
	"errors"
	"fmt"

	"github.com/coregx/coredfa"
	"github.com/coregx/coredfa/dfa"
)

// ExampleCompile demonstrates compiling a pattern and searching with it.
func ExampleCompile() {
	re, err := coredfa.Compile(`foo(bar|baz)+`)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.FindIndex([]byte("xx foobarbaz")))
	fmt.Println(re.Literals())
	// Output:
	// [3 12]
	// [foobar foobaz]
}

// ExampleRegex_FindAllIndex demonstrates leftmost-first match selection.
func ExampleRegex_FindAllIndex() {
	re := coredfa.MustCompile(`a|ab`)
	fmt.Println(re.FindAllIndex([]byte("ab ab"), -1))
	// Output: [[0 1] [3 4]]
}

// ExampleCompileWithConfig demonstrates the state budget.
func ExampleCompileWithConfig() {
	config := coredfa.DefaultConfig()
	config.DFA = config.DFA.WithMaxStates(100)

	_, err := coredfa.CompileWithConfig(`(a|b)*a(a|b){12}`, config)
	fmt.Println(errors.Is(err, dfa.ErrStateExplosion))
	// Output: true
}
