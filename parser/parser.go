// Package parser turns SPWN source into an ast.Program.
//
// ParseFile and ParseSource run the grammar from package syntax and then
// build the AST from the resulting parse tree. Build can be used directly
// on a tree obtained elsewhere.
//
// Constructs the builder cannot represent do not abort the build. They are
// replaced by placeholders and reported as Diagnostics, both in the result
// and to the configured Sink. WithStrict turns them into an error.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/spwn/ast"
	"github.com/dhamidi/spwn/syntax"
)

var log = commonlog.GetLogger("spwn.parser")

type Option func(*options)

type options struct {
	maxDepth int
	strict   bool
	sink     Sink
}

func newOptions(opts []Option) *options {
	o := &options{maxDepth: syntax.DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	if o.sink == nil {
		o.sink = NewLogSink()
	}
	return o
}

// WithMaxDepth bounds the nesting depth accepted by both the grammar and
// the builder.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithStrict makes any diagnostic fail the build with *UnsupportedError.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

func WithSink(sink Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

type Result struct {
	Program     ast.Program
	Diagnostics Diagnostics
	Tree        *syntax.Node
	Comments    []syntax.Token
}

// ParseFile reads and parses the file at path.
func ParseFile(path string, opts ...Option) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return ParseSource(path, data, opts...)
}

// ParseSource parses src. Name is used in positions and messages.
func ParseSource(name string, src []byte, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	p := syntax.ParseProgram(bytes.NewReader(src), syntax.WithFile(name), syntax.WithMaxDepth(o.maxDepth))
	tree, err := p.Finish()
	if err != nil {
		var syntaxErr *syntax.Error
		if errors.As(err, &syntaxErr) {
			return nil, &SyntaxError{Err: syntaxErr}
		}
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	program, diags, err := build(tree, o)
	if err != nil {
		return nil, err
	}
	log.Debugf("parsed %s: %d statements, %d diagnostics", name, len(program), len(diags))

	return &Result{
		Program:     program,
		Diagnostics: diags,
		Tree:        tree,
		Comments:    p.Comments(),
	}, nil
}

// Build converts a program parse tree into an ast.Program.
func Build(root *syntax.Node, opts ...Option) (ast.Program, Diagnostics, error) {
	return build(root, newOptions(opts))
}

func build(root *syntax.Node, o *options) (ast.Program, Diagnostics, error) {
	if root == nil {
		return nil, nil, errors.New("build: no parse tree")
	}
	if root.Rule != syntax.RuleProgram {
		return nil, nil, fmt.Errorf("build: root is %s, want %s", root.Rule, syntax.RuleProgram)
	}

	b := &builder{maxDepth: o.maxDepth, sink: o.sink}
	program := ast.Program(b.statements(root))
	if b.err != nil {
		return nil, b.diags, b.err
	}
	if o.strict && len(b.diags) > 0 {
		return nil, b.diags, &UnsupportedError{Diagnostics: b.diags}
	}
	return program, b.diags, nil
}
