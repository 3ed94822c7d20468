package nfa

import (
	"errors"
	"testing"
)

func TestCompileError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CompileError
		wantFull string
	}{
		{
			name:     "with pattern",
			err:      &CompileError{Pattern: `[a-z]+`, Err: ErrTooComplex},
			wantFull: `NFA compilation failed for pattern "[a-z]+": pattern too complex`,
		},
		{
			name:     "empty pattern",
			err:      &CompileError{Pattern: "", Err: ErrInvalidPattern},
			wantFull: "NFA compilation failed: invalid regex pattern",
		},
		{
			name:     "nil inner error",
			err:      &CompileError{Pattern: "x", Err: nil},
			wantFull: `NFA compilation failed for pattern "x": <nil>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantFull {
				t.Errorf("Error() = %q, want %q", got, tt.wantFull)
			}
		})
	}
}

func TestCompileError_Unwrap(t *testing.T) {
	err := &CompileError{Pattern: "abc", Err: ErrTooComplex}
	if !errors.Is(err, ErrTooComplex) {
		t.Error("errors.Is should see the wrapped sentinel")
	}
	if errors.Is(err, ErrInvalidPattern) {
		t.Error("errors.Is should not match an unrelated sentinel")
	}
}

func TestBuildError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *BuildError
		want string
	}{
		{
			name: "with state",
			err:  &BuildError{Message: "unknown state", StateID: 7},
			want: "NFA build error at state 7: unknown state",
		},
		{
			name: "without state",
			err:  &BuildError{Message: "no initial transitions", StateID: InvalidState},
			want: "NFA build error: no initial transitions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
