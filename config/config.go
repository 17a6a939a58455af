// Package config loads spwn.yaml project configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/spwn/parser"
	"github.com/dhamidi/spwn/syntax"
)

const FileName = "spwn.yaml"

type Config struct {
	// Path is the file the configuration was loaded from, empty for
	// defaults.
	Path     string    `yaml:"-"`
	MaxDepth int       `yaml:"max_depth"`
	Strict   bool      `yaml:"strict"`
	Log      LogConfig `yaml:"log"`
}

type LogConfig struct {
	// Verbosity follows commonlog: 0 is notice, 1 info, 2 debug, negative
	// values silence progressively down to -4.
	Verbosity int    `yaml:"verbosity"`
	File      string `yaml:"file"`
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config: %s is invalid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func Default() *Config {
	return &Config{MaxDepth: syntax.DefaultMaxDepth}
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, path)
}

// Decode parses configuration from r. Unknown keys are rejected and an
// empty document yields the defaults.
func Decode(r io.Reader, path string) (*Config, error) {
	cfg := Default()
	cfg.Path = path

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = syntax.DefaultMaxDepth
	}
	if cfg.Log.File != "" && !filepath.IsAbs(cfg.Log.File) && path != "" {
		cfg.Log.File = filepath.Join(filepath.Dir(path), cfg.Log.File)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	errs := &ValidationError{Path: c.Path}
	if c.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must not be negative, got %d", c.MaxDepth))
	}
	if c.Log.Verbosity < -4 || c.Log.Verbosity > 2 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.verbosity must be between -4 and 2, got %d", c.Log.Verbosity))
	}
	if len(errs.Issues) > 0 {
		return errs
	}
	return nil
}

// Find looks for spwn.yaml in dir and its parents.
func Find(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for d := abs; ; d = filepath.Dir(d) {
		candidate := filepath.Join(d, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		if filepath.Dir(d) == d {
			return "", false
		}
	}
}

// Discover loads the nearest spwn.yaml above dir, or the defaults when
// there is none.
func Discover(dir string) (*Config, error) {
	path, ok := Find(dir)
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// ParserOptions translates the configuration into parser options.
func (c *Config) ParserOptions() []parser.Option {
	opts := []parser.Option{parser.WithMaxDepth(c.MaxDepth)}
	if c.Strict {
		opts = append(opts, parser.WithStrict())
	}
	return opts
}
