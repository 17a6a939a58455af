package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/spwn/format"
	"github.com/dhamidi/spwn/syntax"
)

func newTreeCmd(a *app) *cobra.Command {
	var outputFormat string
	var includePositions bool
	var expression bool

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Dump the concrete parse tree of a .spwn file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, name, err := readSource(argOrStdin(args))
			if err != nil {
				return err
			}

			opts := []syntax.Option{syntax.WithFile(name), syntax.WithMaxDepth(a.maxDepthOrDefault())}
			var p *syntax.Parser
			if expression {
				p = syntax.ParseExpression(bytes.NewReader(source), opts...)
			} else {
				p = syntax.ParseProgram(bytes.NewReader(source), opts...)
			}
			node, err := p.Finish()
			if err != nil {
				return err
			}

			switch outputFormat {
			case "json":
				if err := format.NewTreeJSONEncoder(os.Stdout).Encode(node); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
			case "text":
				if includePositions {
					fmt.Println(node.StringWithPositions())
				} else {
					fmt.Println(node.String())
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include source spans in text output")
	cmd.Flags().BoolVarP(&expression, "expression", "e", false, "parse a single expression instead of a program")

	return cmd
}

func (a *app) maxDepthOrDefault() int {
	if a.maxDepth > 0 {
		return a.maxDepth
	}
	return a.cfg.MaxDepth
}
