package parser

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/spwn/syntax"
)

// Diagnostic describes a parse tree construct the builder replaced with a
// placeholder.
type Diagnostic struct {
	Rule    syntax.Rule
	Span    syntax.Span
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Span.Start, d.Message)
}

type Diagnostics []Diagnostic

// Sink receives diagnostics as they are produced.
type Sink interface {
	Report(d Diagnostic)
}

type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) {
	f(d)
}

// LogSink writes diagnostics to a commonlog logger at notice level.
type LogSink struct {
	Log commonlog.Logger
}

func NewLogSink() *LogSink {
	return &LogSink{Log: commonlog.GetLogger("spwn.parser")}
}

func (s *LogSink) Report(d Diagnostic) {
	s.Log.Notice(d.Message, "rule", d.Rule.String(), "position", d.Span.Start.String())
}

// Collector keeps every reported diagnostic.
type Collector struct {
	Diagnostics Diagnostics
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}
