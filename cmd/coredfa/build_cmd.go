package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coregx/coredfa/dfa"
)

func newBuildCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Determinize a pattern or NFA and print the DFA",
		Long: `Build compiles the input, runs subset construction and prints either a
readable summary of every state and edge or, with --json, the full debug
dump including transition sets and capture-group operations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			n, err := opts.loadNFA(cfg.Compiler)
			if err != nil {
				return err
			}
			d, err := dfa.Determinize(n, cfg.DFA)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(d.Dump(), "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode DFA: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			printSummary(out, d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full JSON dump")
	return cmd
}

// printSummary writes one line per state followed by its edges.
func printSummary(w io.Writer, d *dfa.DFA) {
	direction := "forward"
	if !d.IsForward() {
		direction = "backward"
	}
	semantics := "leftmost-first"
	if !d.IsPrioritySensitive() {
		semantics = "leftmost-longest"
	}

	fmt.Fprint(w, color.CyanString("=== DFA ===\n"))
	fmt.Fprintf(w, "states: %d  transitions: %d  %s, %s, %d capture groups\n",
		d.NumStates(), d.NumTransitions(), direction, semantics, d.CaptureCount())

	for _, s := range d.States() {
		var tags []string
		if s.UnanchoredFinal() != nil {
			tags = append(tags, color.GreenString("final"))
		}
		if s.AnchoredFinal() != nil {
			tags = append(tags, color.GreenString("final@end"))
		}
		if from := s.SplitFrom(); from != nil {
			tags = append(tags, color.YellowString("split from %d", from.ID()))
		}
		line := fmt.Sprintf("%d %s", s.ID(), s.TransitionSet())
		if len(tags) > 0 {
			line += " (" + strings.Join(tags, ", ") + ")"
		}
		fmt.Fprintln(w, line)

		for _, e := range s.Successors() {
			fmt.Fprintf(w, "    %s -> %d\n", e.Matcher(), e.Target().ID())
		}
	}
}
