package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coregx/coredfa"
)

func newLiteralsCmd(opts *options) *cobra.Command {
	var scanFile string

	cmd := &cobra.Command{
		Use:   "literals",
		Short: "Print the literal prefixes of a pattern and optionally scan a file",
		Long: `Literals compiles the input anchored, extracts the literal prefixes every
match must begin with and prints them. With --scan, the file is searched
using the Aho-Corasick prefilter over those prefixes and each match is
printed as start-end followed by the matched text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Compiler.Anchored = true
			n, err := opts.loadNFA(cfg.Compiler)
			if err != nil {
				return err
			}
			re, err := coredfa.CompileNFA(n, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			lits := re.Literals()
			if len(lits) == 0 {
				fmt.Fprint(out, color.YellowString("no literal prefixes, every position is a candidate\n"))
			}
			for _, lit := range lits {
				fmt.Fprintln(out, strconv.Quote(lit))
			}

			if scanFile == "" {
				return nil
			}
			data, err := os.ReadFile(scanFile)
			if err != nil {
				return fmt.Errorf("failed to read scan file: %w", err)
			}
			matches := re.FindAllIndex(data, -1)
			fmt.Fprint(out, color.CyanString("=== %d matches ===\n", len(matches)))
			for _, m := range matches {
				fmt.Fprintf(out, "%d-%d %s\n", m[0], m[1], strconv.Quote(string(data[m[0]:m[1]])))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scanFile, "scan", "", "File to search for matches")
	return cmd
}
