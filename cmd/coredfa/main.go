// Command coredfa builds DFAs from regular expressions or textual NFAs and
// prints them for inspection.
//
//	coredfa build --pattern 'foo|bar' --json
//	coredfa build --nfa fixture.nfa --prune --split
//	coredfa literals --pattern 'foo(bar|baz)' --scan input.txt
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every subcommand.
type options struct {
	configFile     string
	pattern        string
	nfaFile        string
	maxStates      int
	maxTransitions int
	backward       bool
	longest        bool
	noCaptures     bool
	prune          bool
	split          bool
	anchored       bool
	ignoreCase     bool
	verbose        bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "coredfa",
		Short: "Priority-preserving NFA to DFA determinization",
		Long: `coredfa compiles a regular expression (or reads a textual NFA) and
determinizes it by subset construction over code-point ranges.

- build:    print the DFA as a summary or as a JSON dump
- literals: print the literal prefixes of the DFA and scan files with them

Use 'coredfa help <command>' for more information on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Configuration file (JSON)")
	flags.StringVarP(&opts.pattern, "pattern", "p", "", "Regular expression to compile")
	flags.StringVar(&opts.nfaFile, "nfa", "", "Textual NFA file to determinize instead of a pattern")
	flags.IntVar(&opts.maxStates, "max-states", 0, "Maximum number of DFA states (default from config)")
	flags.IntVar(&opts.maxTransitions, "max-transitions", 0, "Maximum number of DFA edges (default from config)")
	flags.BoolVar(&opts.backward, "backward", false, "Determinize the reversed NFA")
	flags.BoolVar(&opts.longest, "longest", false, "Ignore priorities (leftmost-longest)")
	flags.BoolVar(&opts.noCaptures, "no-captures", false, "Do not attach capture-group descriptors")
	flags.BoolVar(&opts.prune, "prune", false, "Remove states that cannot reach a final state")
	flags.BoolVar(&opts.split, "split", false, "Split states with conflicting capture updates")
	flags.BoolVar(&opts.anchored, "anchored", false, "Match only at the start of input")
	flags.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "Case-insensitive matching")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(newBuildCmd(opts), newLiteralsCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
