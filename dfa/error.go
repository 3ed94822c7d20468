package dfa

import "fmt"

// Error types for DFA generation

// ErrStateExplosion indicates that determinization exceeded the configured
// state or transition budget.
//
// Subset construction is exponential in the worst case. Patterns like
// (a|b)*a(a|b){20} produce millions of DFA states; the budget turns that into
// a reportable error instead of unbounded memory growth.
var ErrStateExplosion = &DFAError{
	Kind:    StateExplosion,
	Message: "DFA state explosion: pattern too complex",
}

// ErrInvalidConfig indicates that the provided configuration is invalid.
// This is caught before any state is created.
var ErrInvalidConfig = &DFAError{
	Kind:    InvalidConfig,
	Message: "invalid DFA configuration",
}

// ErrInvalidNFA indicates that the input NFA cannot be determinized.
var ErrInvalidNFA = &DFAError{
	Kind:    InvalidNFA,
	Message: "invalid NFA",
}

// ErrorKind classifies DFA errors into categories
type ErrorKind uint8

const (
	// StateExplosion indicates too many states or transitions were created
	StateExplosion ErrorKind = iota

	// InvalidConfig indicates configuration validation failed
	InvalidConfig

	// InvalidNFA indicates the input automaton was nil or malformed
	InvalidNFA
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case StateExplosion:
		return "StateExplosion"
	case InvalidConfig:
		return "InvalidConfig"
	case InvalidNFA:
		return "InvalidNFA"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// DFAError represents an error that occurred during DFA generation
type DFAError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *DFAError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *DFAError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// stateExplosion builds the error returned when a budget is exceeded.
func stateExplosion(what string, limit int) *DFAError {
	return &DFAError{
		Kind:    StateExplosion,
		Message: fmt.Sprintf("DFA state explosion: pattern too complex (more than %d %s)", limit, what),
	}
}
