package dfa

import (
	"errors"
	"log/slog"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.MaxStates != 10_000 || c.MaxTransitions != 100_000 {
		t.Errorf("budgets = %d/%d, want 10000/100000", c.MaxStates, c.MaxTransitions)
	}
	if !c.Forward || !c.PrioritySensitive || !c.TrackCaptureGroups {
		t.Errorf("default config should be forward, priority sensitive and track captures: %+v", c)
	}
	if c.PruneDeadStates || c.SplitCaptureConflicts {
		t.Errorf("optional passes should be off by default: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "default", config: DefaultConfig()},
		{name: "zero states", config: DefaultConfig().WithMaxStates(0), wantErr: true},
		{name: "negative transitions", config: DefaultConfig().WithMaxTransitions(-1), wantErr: true},
		{
			name:    "split without captures",
			config:  DefaultConfig().WithCaptureGroups(false).WithSplitCaptureConflicts(true),
			wantErr: true,
		},
		{name: "split with captures", config: DefaultConfig().WithSplitCaptureConflicts(true)},
		{
			name:   "all modifiers",
			config: DefaultConfig().WithForward(false).WithPrioritySensitive(false).WithPruneDeadStates(true).WithLogger(slog.Default()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error %v should match ErrInvalidConfig", err)
			}

			_, genErr := NewGenerator(tt.config)
			if (genErr != nil) != tt.wantErr {
				t.Errorf("NewGenerator() error = %v, wantErr %v", genErr, tt.wantErr)
			}
		})
	}
}

func TestConfigModifiersDoNotAlias(t *testing.T) {
	base := DefaultConfig()
	_ = base.WithMaxStates(1).WithForward(false)
	if base.MaxStates != 10_000 || !base.Forward {
		t.Errorf("modifiers changed the receiver: %+v", base)
	}
}
