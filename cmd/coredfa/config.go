package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/coredfa"
	"github.com/coregx/coredfa/nfa"
)

// loadConfig starts from the defaults, overlays the JSON config file if one
// is given, then applies the flags set on the command line.
func (o *options) loadConfig(cmd *cobra.Command) (coredfa.Config, error) {
	cfg := coredfa.DefaultConfig()
	if o.configFile != "" {
		data, err := os.ReadFile(o.configFile)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("max-states") {
		cfg.DFA.MaxStates = o.maxStates
	}
	if flags.Changed("max-transitions") {
		cfg.DFA.MaxTransitions = o.maxTransitions
	}
	if flags.Changed("backward") {
		cfg.DFA.Forward = !o.backward
	}
	if flags.Changed("longest") {
		cfg.DFA.PrioritySensitive = !o.longest
	}
	if flags.Changed("no-captures") {
		cfg.DFA.TrackCaptureGroups = !o.noCaptures
	}
	if flags.Changed("prune") {
		cfg.DFA.PruneDeadStates = o.prune
	}
	if flags.Changed("split") {
		cfg.DFA.SplitCaptureConflicts = o.split
	}
	if flags.Changed("anchored") {
		cfg.Compiler.Anchored = o.anchored
	}
	if flags.Changed("ignore-case") {
		cfg.Compiler.CaseInsensitive = o.ignoreCase
	}
	cfg.DFA.Logger = o.logger()

	if err := cfg.DFA.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadNFA compiles --pattern or parses --nfa.
func (o *options) loadNFA(cc nfa.CompilerConfig) (*nfa.NFA, error) {
	switch {
	case o.pattern != "" && o.nfaFile != "":
		return nil, errors.New("--pattern and --nfa are mutually exclusive")
	case o.nfaFile != "":
		src, err := os.ReadFile(o.nfaFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read NFA file: %w", err)
		}
		return nfa.ParseText(string(src))
	case o.pattern != "":
		return nfa.NewCompiler(cc).Compile(o.pattern)
	default:
		return nil, errors.New("one of --pattern or --nfa is required")
	}
}
