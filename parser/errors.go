package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/spwn/syntax"
)

// IOError reports a source file that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// SyntaxError reports input rejected by the grammar.
type SyntaxError struct {
	Err *syntax.Error
}

func (e *SyntaxError) Error() string {
	return "syntax error at " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (e *SyntaxError) Pos() syntax.Position {
	return e.Err.Pos
}

func (e *SyntaxError) Message() string {
	return e.Err.Message
}

// DepthError reports a parse tree nested deeper than the configured limit.
type DepthError struct {
	Limit int
	Rule  syntax.Rule
	Span  syntax.Span
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%s: %s nested deeper than %d levels", e.Span.Start, e.Rule, e.Limit)
}

// UnsupportedError is returned in strict mode when the tree contained
// constructs the builder could not represent.
type UnsupportedError struct {
	Diagnostics Diagnostics
}

func (e *UnsupportedError) Error() string {
	if len(e.Diagnostics) == 1 {
		return "unsupported construct: " + e.Diagnostics[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d unsupported constructs:", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("\n  ")
		b.WriteString(d.String())
	}
	return b.String()
}
