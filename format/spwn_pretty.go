package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/spwn/ast"
	"github.com/dhamidi/spwn/parser"
	"github.com/dhamidi/spwn/syntax"
)

// SpwnPrettyPrinter renders an ast.Program as SPWN source that parses back
// to an equal program. Comments passed to Print are placed by source line:
// before the statement that follows them, or after it when they are line
// comments on its last line.
type SpwnPrettyPrinter struct {
	w           io.Writer
	indent      int
	indentStr   string
	atLineStart bool
	err         error

	comments     []syntax.Token
	commentIndex int
	lastLine     int
}

func NewSpwnPrettyPrinter(w io.Writer) *SpwnPrettyPrinter {
	return &SpwnPrettyPrinter{
		w:           w,
		indentStr:   "    ",
		atLineStart: true,
	}
}

func (p *SpwnPrettyPrinter) Print(program ast.Program, comments []syntax.Token) error {
	p.comments = comments
	p.commentIndex = 0
	p.lastLine = 0
	p.printStatements(program)
	p.emitRemainingComments()
	return p.err
}

func (p *SpwnPrettyPrinter) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *SpwnPrettyPrinter) writeIndent() {
	if !p.atLineStart {
		return
	}
	p.atLineStart = false
	for i := 0; i < p.indent; i++ {
		p.write(p.indentStr)
	}
}

func (p *SpwnPrettyPrinter) write(s string) {
	if p.err != nil {
		return
	}
	p.writeIndent()
	if _, err := io.WriteString(p.w, s); err != nil {
		p.fail(err)
	}
}

func (p *SpwnPrettyPrinter) newline() {
	if p.err != nil {
		return
	}
	if _, err := io.WriteString(p.w, "\n"); err != nil {
		p.fail(err)
	}
	p.atLineStart = true
}

func (p *SpwnPrettyPrinter) printStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		if _, ok := stmt.Body.(*ast.EndOfInput); ok {
			continue
		}
		p.emitCommentsBeforeLine(stmt.Line.Start)
		if stmt.Line.Start > p.lastLine {
			p.lastLine = stmt.Line.Start
		}
		p.printStatement(stmt)
		p.emitTrailingLineComment(stmt.Line.End)
		p.newline()
		if stmt.Line.End > p.lastLine {
			p.lastLine = stmt.Line.End
		}
	}
}

// printBlock writes `{ ... }` with the statements indented. An empty block
// stays on one line.
func (p *SpwnPrettyPrinter) printBlock(open string, stmts []ast.Statement) {
	if !hasStatements(stmts) {
		p.write(open + "}")
		return
	}
	p.write(open)
	p.newline()
	p.indent++
	p.printStatements(stmts)
	p.indent--
	p.write("}")
}

func hasStatements(stmts []ast.Statement) bool {
	for _, stmt := range stmts {
		if _, ok := stmt.Body.(*ast.EndOfInput); !ok {
			return true
		}
	}
	return false
}

func (p *SpwnPrettyPrinter) printStatement(stmt ast.Statement) {
	if stmt.Arrow {
		p.write("-> ")
	}
	switch s := stmt.Body.(type) {
	case *ast.Definition:
		p.write(s.Symbol)
		p.write(" = ")
		p.printExpression(s.Value)
		if len(s.Properties) > 0 {
			p.write(" ")
			p.printTag(s.Properties)
		}
	case *ast.Call:
		p.printVariable(s.Function)
	case *ast.ExprStatement:
		p.printExpression(s.Expression)
	case *ast.TypeDef:
		p.write("type @" + s.Name)
	case *ast.Return:
		p.write("return")
		if !s.Value.IsNull() {
			p.write(" ")
			p.printExpression(s.Value)
		}
	case *ast.Implementation:
		p.write("impl ")
		p.printVariable(s.Target)
		p.write(" ")
		p.printDictDefs(s.Members)
	case *ast.If:
		p.printIf(s)
	case *ast.For:
		p.write("for " + s.Symbol + " in ")
		p.printExpression(s.Iterable)
		p.write(" ")
		p.printBlock("{", s.Body)
	case *ast.ErrorRaise:
		p.write("error ")
		p.printExpression(s.Message)
	case *ast.Extract:
		p.write("extract ")
		p.printExpression(s.Value)
	case *ast.AddObject:
		p.write("add ")
		p.printExpression(s.Object)
	default:
		p.fail(fmt.Errorf("cannot print statement %T", stmt.Body))
	}
}

func (p *SpwnPrettyPrinter) printIf(s *ast.If) {
	p.write("if ")
	p.printExpression(s.Condition)
	p.write(" ")
	p.printBlock("{", s.Body)
	if s.Else == nil {
		return
	}
	p.write(" else ")
	if len(s.Else) == 1 && !s.Else[0].Arrow {
		if nested, ok := s.Else[0].Body.(*ast.If); ok {
			p.printIf(nested)
			return
		}
	}
	p.printBlock("{", s.Else)
}

func PrettyPrintSpwn(source []byte) ([]byte, error) {
	return PrettyPrintSpwnFile(source, "")
}

// PrettyPrintSpwnFile parses source and prints it back in canonical form.
// Sources with unsupported constructs are rejected rather than printed
// with placeholders.
func PrettyPrintSpwnFile(source []byte, filename string, opts ...parser.Option) ([]byte, error) {
	opts = append(append([]parser.Option{}, opts...), parser.WithStrict(), parser.WithSink(&parser.Collector{}))
	res, err := parser.ParseSource(filename, source, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := NewSpwnPrettyPrinter(&buf).Print(res.Program, res.Comments); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SpwnEncoder writes programs as SPWN source.
type SpwnEncoder struct {
	w       io.Writer
	program ast.Program
}

func NewSpwnEncoder(w io.Writer) *SpwnEncoder {
	return &SpwnEncoder{w: w}
}

func (e *SpwnEncoder) Encode(program ast.Program) error {
	e.program = program
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *SpwnEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if err := NewSpwnPrettyPrinter(&sb).Print(e.program, nil); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

var errResolved = errors.New("cannot print a resolved value")
