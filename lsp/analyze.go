package lsp

import (
	"errors"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/spwn/ast"
	"github.com/dhamidi/spwn/parser"
	"github.com/dhamidi/spwn/syntax"
)

// Analyze parses text and returns its diagnostics and top-level symbols.
// The returned slices are never nil.
func Analyze(name, text string, opts ...parser.Option) ([]protocol.Diagnostic, []protocol.DocumentSymbol) {
	collector := &parser.Collector{}
	opts = append(append([]parser.Option{}, opts...), parser.WithSink(collector))

	diags := []protocol.Diagnostic{}
	symbols := []protocol.DocumentSymbol{}

	result, err := parser.ParseSource(name, []byte(text), opts...)

	// In strict mode the builder diagnostics are the error itself.
	severity := protocol.DiagnosticSeverityWarning
	var unsupported *parser.UnsupportedError
	if errors.As(err, &unsupported) {
		severity = protocol.DiagnosticSeverityError
	}
	for _, d := range collector.Diagnostics {
		diags = append(diags, newDiagnostic(d.Span, severity, d.Message))
	}
	if unsupported != nil {
		return diags, symbols
	}
	if err != nil {
		diags = append(diags, errorDiagnostic(err))
		return diags, symbols
	}

	for _, stmt := range result.Program {
		if sym, ok := statementSymbol(stmt); ok {
			symbols = append(symbols, sym)
		}
	}
	return diags, symbols
}

func errorDiagnostic(err error) protocol.Diagnostic {
	var (
		syntaxErr *parser.SyntaxError
		depthErr  *parser.DepthError
	)
	switch {
	case errors.As(err, &syntaxErr):
		pos := syntaxErr.Pos()
		return newDiagnostic(syntax.Span{Start: pos, End: pos}, protocol.DiagnosticSeverityError, syntaxErr.Message())
	case errors.As(err, &depthErr):
		return newDiagnostic(depthErr.Span, protocol.DiagnosticSeverityError, depthErr.Error())
	default:
		return newDiagnostic(syntax.Span{}, protocol.DiagnosticSeverityError, err.Error())
	}
}

func newDiagnostic(span syntax.Span, severity protocol.DiagnosticSeverity, message string) protocol.Diagnostic {
	source := lsName
	return protocol.Diagnostic{
		Range:    spanRange(span),
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// spanRange converts a 1-based span into a 0-based LSP range. Unset
// positions map to the start of the document.
func spanRange(span syntax.Span) protocol.Range {
	start := position(span.Start)
	end := position(span.End)
	if end.Line < start.Line || (end.Line == start.Line && end.Character < start.Character) {
		end = start
	}
	return protocol.Range{Start: start, End: end}
}

func position(p syntax.Position) protocol.Position {
	line, col := p.Line-1, p.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func lineRange(span ast.LineSpan) protocol.Range {
	return spanRange(syntax.Span{
		Start: syntax.Position{Line: span.Start, Column: 1},
		End:   syntax.Position{Line: span.End + 1, Column: 1},
	})
}

func statementSymbol(stmt ast.Statement) (protocol.DocumentSymbol, bool) {
	var (
		name   string
		kind   protocol.SymbolKind
		detail *string
	)
	switch body := stmt.Body.(type) {
	case *ast.Definition:
		name, kind = body.Symbol, protocol.SymbolKindVariable
		if isMacro(body.Value) {
			kind = protocol.SymbolKindFunction
		}
		if desc, ok := body.Properties.Desc(); ok {
			detail = &desc
		}
	case *ast.TypeDef:
		name, kind = "@"+body.Name, protocol.SymbolKindClass
	case *ast.Implementation:
		t, ok := body.Target.Value.(ast.TypeIndicator)
		if !ok {
			return protocol.DocumentSymbol{}, false
		}
		name, kind = "impl @"+string(t), protocol.SymbolKindNamespace
	default:
		return protocol.DocumentSymbol{}, false
	}

	r := lineRange(stmt.Line)
	return protocol.DocumentSymbol{
		Name:           name,
		Detail:         detail,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
	}, true
}

func isMacro(e ast.Expression) bool {
	if len(e.Values) != 1 || e.Values[0].Operator != nil || len(e.Values[0].Path) != 0 {
		return false
	}
	_, ok := e.Values[0].Value.(ast.Macro)
	return ok
}
