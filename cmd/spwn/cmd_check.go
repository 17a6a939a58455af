package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/spwn/parser"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Report syntax errors and unsupported constructs",
		Long: `Parse every given file and report problems.

Directories are searched recursively for .spwn files. Exits non-zero if
any file fails to parse, or if any diagnostics are reported with --strict.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectFiles(args)
			if err != nil {
				return err
			}

			failed := 0
			for _, file := range files {
				collector := &parser.Collector{}
				opts := append(a.parserOptions(), parser.WithSink(collector))
				_, err := parser.ParseFile(file, opts...)
				for _, d := range collector.Diagnostics {
					fmt.Printf("%s: warning: %s\n", file, d)
				}
				if err != nil {
					fmt.Printf("%s: error: %v\n", file, err)
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(files))
			}
			fmt.Fprintf(os.Stderr, "checked %d files\n", len(files))
			return nil
		},
	}

	return cmd
}

func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == ".spwn" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return files, nil
}
