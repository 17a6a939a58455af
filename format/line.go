package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/spwn/ast"
)

// LineEncoder writes a tab separated outline of the top-level statements:
// kind, name, line range, and a kind specific detail column.
type LineEncoder struct {
	w       io.Writer
	program ast.Program
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(program ast.Program) error {
	e.program = program
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, stmt := range e.program {
		e.writeStatement(&sb, stmt)
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeStatement(sb *strings.Builder, stmt ast.Statement) {
	lines := fmt.Sprintf("%d-%d", stmt.Line.Start, stmt.Line.End)
	kind, name, detail := "", "-", "-"

	switch s := stmt.Body.(type) {
	case *ast.Definition:
		kind, name = "definition", s.Symbol
		if m, ok := singleMacro(s.Value); ok {
			kind = "macro"
			detail = macroParamsStr(m)
			if desc, ok := m.Properties.Desc(); ok {
				detail += "\t" + desc
			}
		} else if desc, ok := s.Properties.Desc(); ok {
			detail = desc
		}
	case *ast.Call:
		kind, name = "call", variableName(s.Function)
	case *ast.Implementation:
		kind, name = "impl", variableName(s.Target)
		var members []string
		for _, def := range s.Members {
			if entry, ok := def.(ast.DictEntry); ok {
				members = append(members, entry.Name)
			}
		}
		if len(members) > 0 {
			detail = strings.Join(members, ",")
		}
	case *ast.TypeDef:
		kind, name = "type", "@"+s.Name
	case *ast.For:
		kind, name = "for", s.Symbol
	case *ast.ExprStatement:
		kind = "expression"
	case *ast.Return:
		kind = "return"
	case *ast.If:
		kind = "if"
	case *ast.ErrorRaise:
		kind = "error"
	case *ast.Extract:
		kind = "extract"
	case *ast.AddObject:
		kind = "add"
	default:
		return
	}
	if stmt.Arrow {
		kind = "->" + kind
	}
	fmt.Fprintf(sb, "%s\t%s\t%s\t%s\n", kind, name, lines, detail)
}

func singleMacro(e ast.Expression) (ast.Macro, bool) {
	if len(e.Values) != 1 || e.Values[0].Operator != nil || len(e.Values[0].Path) != 0 {
		return ast.Macro{}, false
	}
	m, ok := e.Values[0].Value.(ast.Macro)
	return m, ok
}

func macroParamsStr(m ast.Macro) string {
	if len(m.Args) == 0 {
		return "()"
	}
	var parts []string
	for _, arg := range m.Args {
		part := arg.Name
		if arg.Default != nil {
			part += "?"
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// variableName renders the base value and member path of v, e.g. "$.print".
func variableName(v ast.Variable) string {
	var sb strings.Builder
	switch value := v.Value.(type) {
	case ast.Symbol:
		sb.WriteString(string(value))
	case ast.TypeIndicator:
		sb.WriteString("@" + string(value))
	default:
		sb.WriteString("-")
	}
	for _, p := range v.Path {
		if member, ok := p.(ast.MemberPath); ok {
			sb.WriteString("." + member.Name)
		}
	}
	return sb.String()
}
