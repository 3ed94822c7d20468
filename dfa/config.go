package dfa

import "log/slog"

// Config configures DFA generation.
//
// The zero value is not useful; start from DefaultConfig and adjust with the
// With* modifiers.
type Config struct {
	// MaxStates is the maximum number of DFA states created during one Build,
	// node-split copies included. Exceeding it aborts with ErrStateExplosion.
	//
	// Default: 10,000 states
	//
	// Tuning guidelines:
	//   - Simple patterns: 100-1,000 states sufficient
	//   - Counted repetitions of classes: 10,000-100,000 states
	MaxStates int `json:"max_states"`

	// MaxTransitions is the maximum number of DFA edges created during one
	// Build. Exceeding it aborts with ErrStateExplosion.
	//
	// Default: 100,000 edges
	MaxTransitions int `json:"max_transitions"`

	// Forward selects the reading direction. When false, the generator
	// determinizes nfa.Reverse of its input.
	//
	// Default: true
	Forward bool `json:"forward"`

	// PrioritySensitive keeps transition sets ordered by priority and cuts
	// lower-priority candidates once an unanchored final is reached
	// (leftmost-first semantics). When false, sets are ordered by ID and
	// the DFA accepts the same language with longest-match semantics.
	//
	// Default: true
	PrioritySensitive bool `json:"priority_sensitive"`

	// TrackCaptureGroups attaches a CaptureGroupTransition to every edge.
	//
	// Default: true
	TrackCaptureGroups bool `json:"track_capture_groups"`

	// PruneDeadStates removes states from which no final state is reachable.
	// The start state is always kept.
	//
	// Default: false
	PruneDeadStates bool `json:"prune_dead_states"`

	// SplitCaptureConflicts duplicates states whose incoming edges apply
	// different capture-group updates, so each copy has a single capture
	// signature. Requires TrackCaptureGroups.
	//
	// Default: false
	SplitCaptureConflicts bool `json:"split_capture_conflicts"`

	// Logger receives debug events per discovered state and a warning on
	// state explosion. Nil discards all events.
	Logger *slog.Logger `json:"-"`
}

// DefaultConfig returns a configuration with sensible defaults.
//
// These defaults produce a forward, leftmost-first DFA with capture
// tracking and no optional passes.
func DefaultConfig() Config {
	return Config{
		MaxStates:          10_000,
		MaxTransitions:     100_000,
		Forward:            true,
		PrioritySensitive:  true,
		TrackCaptureGroups: true,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.MaxStates <= 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be > 0",
		}
	}

	if c.MaxTransitions <= 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxTransitions must be > 0",
		}
	}

	if c.SplitCaptureConflicts && !c.TrackCaptureGroups {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "SplitCaptureConflicts requires TrackCaptureGroups",
		}
	}

	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}

// WithMaxTransitions returns a new config with the specified max transitions
func (c Config) WithMaxTransitions(maxTransitions int) Config {
	c.MaxTransitions = maxTransitions
	return c
}

// WithForward returns a new config reading in the given direction
func (c Config) WithForward(forward bool) Config {
	c.Forward = forward
	return c
}

// WithPrioritySensitive returns a new config with leftmost-first semantics enabled/disabled
func (c Config) WithPrioritySensitive(enabled bool) Config {
	c.PrioritySensitive = enabled
	return c
}

// WithCaptureGroups returns a new config with capture tracking enabled/disabled
func (c Config) WithCaptureGroups(enabled bool) Config {
	c.TrackCaptureGroups = enabled
	return c
}

// WithPruneDeadStates returns a new config with dead-state pruning enabled/disabled
func (c Config) WithPruneDeadStates(enabled bool) Config {
	c.PruneDeadStates = enabled
	return c
}

// WithSplitCaptureConflicts returns a new config with node splitting enabled/disabled
func (c Config) WithSplitCaptureConflicts(enabled bool) Config {
	c.SplitCaptureConflicts = enabled
	return c
}

// WithLogger returns a new config logging to l
func (c Config) WithLogger(l *slog.Logger) Config {
	c.Logger = l
	return c
}
