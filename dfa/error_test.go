package dfa

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		name string
		kind ErrorKind
		want string
	}{
		{name: "StateExplosion", kind: StateExplosion, want: "StateExplosion"},
		{name: "InvalidConfig", kind: InvalidConfig, want: "InvalidConfig"},
		{name: "InvalidNFA", kind: InvalidNFA, want: "InvalidNFA"},
		{name: "unknown error kind 42", kind: ErrorKind(42), want: "UnknownErrorKind(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestDFAErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *DFAError
		want string
	}{
		{
			name: "without cause",
			err:  &DFAError{Kind: InvalidNFA, Message: "NFA is nil"},
			want: "NFA is nil",
		},
		{
			name: "with cause",
			err:  &DFAError{Kind: InvalidConfig, Message: "invalid config", Cause: fmt.Errorf("max states is zero")},
			want: "invalid config: max states is zero",
		},
		{
			name: "budget exceeded",
			err:  stateExplosion("states", 7),
			want: "DFA state explosion: pattern too complex (more than 7 states)",
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

func TestDFAErrorIs(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("building: %w", &DFAError{Kind: StateExplosion, Message: "x", Cause: cause})

	if !errors.Is(err, ErrStateExplosion) {
		t.Error("errors.Is(err, ErrStateExplosion) = false, want true")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("errors.Is(err, ErrInvalidConfig) = true, want false")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true via Unwrap")
	}

	var de *DFAError
	if !errors.As(err, &de) || de.Kind != StateExplosion {
		t.Errorf("errors.As did not recover the StateExplosion error: %v", de)
	}
	if !strings.Contains(ErrStateExplosion.Error(), "too complex") {
		t.Errorf("ErrStateExplosion message %q should mention complexity", ErrStateExplosion)
	}
}
