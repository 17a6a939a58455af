package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/spwn/format"
)

func newFmtCmd(a *app) *cobra.Command {
	var fmtOverwrite bool
	var fmtList bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print a .spwn file in canonical form",
		Long: `Pretty-print a .spwn file to stdout.

If a file is provided, it must have a .spwn extension.
If no file is provided, reads SPWN source from stdin.

Comments are kept on their source lines. Use -w to overwrite the file in place
(requires a file argument) and -l to only list files whose formatting
differs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filename string
			if len(args) > 0 {
				filename = args[0]
				if ext := filepath.Ext(filename); ext != ".spwn" {
					return fmt.Errorf("expected .spwn file, got %s", ext)
				}
			} else if fmtOverwrite {
				return fmt.Errorf("-w requires a file argument")
			}

			source, name, err := readSource(filename)
			if err != nil {
				return err
			}

			output, err := format.PrettyPrintSpwnFile(source, name, a.parserOptions()...)
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtList {
				if !bytes.Equal(source, output) {
					fmt.Println(name)
				}
				return nil
			}
			if fmtOverwrite {
				return os.WriteFile(filename, output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list the file if its formatting differs")

	return cmd
}
