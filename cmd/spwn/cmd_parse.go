package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/spwn/format"
	"github.com/dhamidi/spwn/parser"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a .spwn file and dump the resulting AST",
		Long: `Parse a .spwn file and dump the resulting AST.

Reads from stdin if no file (or "-") is given.

Formats:
  json  - statements as indented JSON
  spwn  - canonical SPWN source
  line  - one tab-separated line per top-level statement`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "spwn":
				encoder = format.NewSpwnEncoder(os.Stdout)
			case "line":
				encoder = format.NewLineEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			source, name, err := readSource(argOrStdin(args))
			if err != nil {
				return err
			}

			opts := append(a.parserOptions(), parser.WithSink(parser.SinkFunc(func(d parser.Diagnostic) {
				fmt.Fprintf(os.Stderr, "warning: %s\n", d)
			})))
			res, err := parser.ParseSource(name, source, opts...)
			if err != nil {
				return err
			}

			if err := encoder.Encode(res.Program); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, spwn, line)")

	return cmd
}
