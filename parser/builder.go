package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/spwn/ast"
	"github.com/dhamidi/spwn/syntax"
)

type builder struct {
	maxDepth int
	depth    int
	sink     Sink
	diags    Diagnostics
	err      error
}

// enter increments the nesting depth. Once the limit is exceeded it
// records a *DepthError and every later call fails, so the walk unwinds
// with zero values.
func (b *builder) enter(n *syntax.Node) bool {
	if b.err != nil {
		return false
	}
	b.depth++
	if b.depth > b.maxDepth {
		b.err = &DepthError{Limit: b.maxDepth, Rule: n.Rule, Span: n.Span}
		return false
	}
	return true
}

func (b *builder) leave() {
	b.depth--
}

func (b *builder) report(n *syntax.Node, format string, args ...any) {
	d := Diagnostic{Rule: n.Rule, Span: n.Span, Message: fmt.Sprintf(format, args...)}
	b.diags = append(b.diags, d)
	b.sink.Report(d)
}

func (b *builder) unsupported(n *syntax.Node, position string) {
	b.report(n, "%s is not supported in %s position", n.Rule, position)
}

// child returns the i-th child of n, reporting a diagnostic when it is
// missing.
func (b *builder) child(n *syntax.Node, i int, what string) *syntax.Node {
	if i < len(n.Children) {
		return n.Children[i]
	}
	b.report(n, "%s is missing its %s", n.Rule, what)
	return nil
}

func lineSpan(n *syntax.Node) ast.LineSpan {
	end := n.Span.End.Line
	if end < n.Span.Start.Line {
		end = n.Span.Start.Line
	}
	return ast.LineSpan{Start: n.Span.Start.Line, End: end}
}

func (b *builder) statements(n *syntax.Node) []ast.Statement {
	stmts := make([]ast.Statement, 0, len(n.Children))
	for _, child := range n.Children {
		stmts = append(stmts, b.statement(child))
		if b.err != nil {
			break
		}
	}
	return stmts
}

func (b *builder) statement(n *syntax.Node) ast.Statement {
	stmt := ast.Statement{Line: lineSpan(n)}
	if !b.enter(n) {
		stmt.Body = &ast.EndOfInput{}
		return stmt
	}
	defer b.leave()

	switch n.Rule {
	case syntax.RuleArrowStatement:
		if inner := b.child(n, 0, "statement"); inner != nil {
			stmt.Body = b.statement(inner).Body
		} else {
			stmt.Body = &ast.EndOfInput{}
		}
		stmt.Arrow = true
	case syntax.RuleDefinition:
		stmt.Body = b.definition(n)
	case syntax.RuleCall:
		stmt.Body = &ast.Call{Function: b.variable(b.child(n, 0, "function"))}
	case syntax.RuleIf:
		stmt.Body = b.ifStatement(n)
	case syntax.RuleFor:
		stmt.Body = b.forStatement(n)
	case syntax.RuleAddObject:
		stmt.Body = &ast.AddObject{Object: b.expression(b.child(n, 0, "object"))}
	case syntax.RuleImplement:
		stmt.Body = b.implementation(n)
	case syntax.RuleExpression:
		stmt.Body = &ast.ExprStatement{Expression: b.expression(n)}
	case syntax.RuleReturn:
		value := ast.NullExpression()
		if len(n.Children) > 0 {
			value = b.expression(n.Children[0])
		}
		stmt.Body = &ast.Return{Value: value}
	case syntax.RuleErrorStatement:
		stmt.Body = &ast.ErrorRaise{Message: b.expression(b.child(n, 0, "message"))}
	case syntax.RuleExtract:
		stmt.Body = &ast.Extract{Value: b.expression(b.child(n, 0, "value"))}
	case syntax.RuleTypeDef:
		name := ""
		if ind := b.child(n, 0, "type name"); ind != nil {
			name = typeName(ind.Text)
		}
		stmt.Body = &ast.TypeDef{Name: name}
	case syntax.RuleEOI:
		stmt.Body = &ast.EndOfInput{}
	default:
		b.unsupported(n, "statement")
		stmt.Body = &ast.EndOfInput{}
	}
	return stmt
}

// definition handles `name = value #[...]` and the wildcard `* = value`,
// which has no symbol child.
func (b *builder) definition(n *syntax.Node) *ast.Definition {
	def := &ast.Definition{Symbol: "*"}
	rest := n.Children
	if len(rest) > 0 && rest[0].Rule == syntax.RuleSymbol {
		def.Symbol = rest[0].Text
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0].Rule == syntax.RuleTag {
		b.report(n, "%s is missing its value", n.Rule)
		def.Value = ast.NullExpression()
	} else {
		def.Value = b.expression(rest[0])
		rest = rest[1:]
	}
	for _, child := range rest {
		if child.Rule != syntax.RuleTag {
			b.unsupported(child, "definition")
			continue
		}
		def.Properties = append(def.Properties, b.tag(child)...)
	}
	return def
}

func (b *builder) ifStatement(n *syntax.Node) *ast.If {
	stmt := &ast.If{
		Condition: b.expression(b.child(n, 0, "condition")),
		Body:      b.block(b.child(n, 1, "body")),
	}
	if len(n.Children) > 2 {
		stmt.Else = b.block(n.Children[2])
	}
	return stmt
}

func (b *builder) forStatement(n *syntax.Node) *ast.For {
	stmt := &ast.For{}
	if sym := b.child(n, 0, "loop variable"); sym != nil {
		stmt.Symbol = sym.Text
	}
	stmt.Iterable = b.expression(b.child(n, 1, "iterable"))
	stmt.Body = b.block(b.child(n, 2, "body"))
	return stmt
}

func (b *builder) implementation(n *syntax.Node) *ast.Implementation {
	impl := &ast.Implementation{Target: b.variable(b.child(n, 0, "target"))}
	if members := b.child(n, 1, "members"); members != nil {
		impl.Members = b.dictDefs(members)
	}
	return impl
}

// block returns a non-nil statement list so that an empty else branch is
// distinguishable from a missing one.
func (b *builder) block(n *syntax.Node) []ast.Statement {
	if n == nil {
		return []ast.Statement{}
	}
	switch n.Rule {
	case syntax.RuleBlock, syntax.RuleCompoundStatement:
		return b.statements(n)
	}
	b.unsupported(n, "block")
	return []ast.Statement{}
}

func typeName(text string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "@"))
}
