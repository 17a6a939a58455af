package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/spwn/config"
	"github.com/dhamidi/spwn/parser"
)

const version = "0.1.0"

// app carries settings shared by all subcommands.
type app struct {
	configPath string
	verbose    int
	logFile    string
	maxDepth   int
	strict     bool

	cfg *config.Config
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "spwn",
		Short:         "Parse, check and format SPWN sources",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to spwn.yaml (default: nearest spwn.yaml above the working directory)")
	flags.CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&a.logFile, "log", "", "write logs to this file instead of stderr")
	flags.IntVar(&a.maxDepth, "max-depth", 0, "maximum nesting depth (overrides config)")
	flags.BoolVar(&a.strict, "strict", false, "treat unsupported constructs as errors")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newTreeCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newFmtCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newGrammarCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "spwn:", err)
		os.Exit(1)
	}
}

func (a *app) setup() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	verbosity := a.cfg.Log.Verbosity + a.verbose
	var path *string
	switch {
	case a.logFile != "":
		path = &a.logFile
	case a.cfg.Log.File != "":
		path = &a.cfg.Log.File
	}
	commonlog.Configure(verbosity, path)

	if a.cfg.Path != "" {
		commonlog.GetLogger("spwn").Infof("using config %s", a.cfg.Path)
	}
	return nil
}

func (a *app) parserOptions() []parser.Option {
	opts := a.cfg.ParserOptions()
	if a.maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(a.maxDepth))
	}
	if a.strict {
		opts = append(opts, parser.WithStrict())
	}
	return opts
}

// readSource reads the named file, or stdin when name is empty or "-".
func readSource(name string) ([]byte, string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "<stdin>", nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, "", &parser.IOError{Path: name, Err: err}
	}
	return data, name, nil
}

func argOrStdin(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
