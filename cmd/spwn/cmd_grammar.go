package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/spwn/grammar"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect and verify the SPWN EBNF grammar",
	}

	cmd.AddCommand(newGrammarPrintCmd())
	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarProductionsCmd())

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := os.Stdout.Write(grammar.Source())
			return err
		},
	}
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file (default: the built-in grammar)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args)
			if err != nil {
				printErrors(err)
				return fmt.Errorf("grammar has errors")
			}
			if err := grammar.Verify(g, startProduction); err != nil {
				printErrors(err)
				return fmt.Errorf("grammar has errors")
			}
			fmt.Printf("ok: %d productions\n", len(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarProductionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "productions [file]",
		Short: "List production names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args)
			if err != nil {
				printErrors(err)
				return fmt.Errorf("grammar has errors")
			}
			fmt.Println(strings.Join(grammar.Productions(g), "\n"))
			return nil
		},
	}
}

func loadGrammar(args []string) (ebnf.Grammar, error) {
	if len(args) == 0 {
		return grammar.Load()
	}
	return grammar.LoadFile(args[0])
}

func printErrors(err error) {
	for _, msg := range grammar.Errors(err) {
		fmt.Fprintln(os.Stderr, msg)
	}
}
