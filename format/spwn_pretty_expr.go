package format

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dhamidi/spwn/ast"
)

func (p *SpwnPrettyPrinter) printExpression(e ast.Expression) {
	for i, v := range e.Values {
		if i > 0 {
			op := e.Operators[i-1]
			if op == ast.OperatorRange {
				p.write(op.Text())
			} else {
				p.write(" " + op.Text() + " ")
			}
		}
		p.printVariable(v)
	}
}

func (p *SpwnPrettyPrinter) printVariable(v ast.Variable) {
	if v.Operator != nil {
		p.write(v.Operator.Text())
		// Keep "! {" apart from the "!{" compound statement opener.
		if _, ok := v.Value.(ast.Dictionary); ok {
			p.write(" ")
		}
	}
	p.printValue(v.Value)
	for _, path := range v.Path {
		switch path := path.(type) {
		case ast.MemberPath:
			p.write("." + path.Name)
		case ast.IndexPath:
			p.write("[")
			p.printExpression(path.Index)
			p.write("]")
		case ast.CallPath:
			p.write("(")
			p.printArguments(path.Args)
			p.write(")")
		}
	}
}

func (p *SpwnPrettyPrinter) printArguments(args []ast.Argument) {
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}
		if arg.Name != nil {
			p.write(*arg.Name + " = ")
		}
		p.printExpression(arg.Value)
	}
}

func (p *SpwnPrettyPrinter) printValue(value ast.ValueLiteral) {
	switch v := value.(type) {
	case ast.HandleID:
		if v.Unspecified {
			p.write("?" + v.Class.Letter())
		} else {
			p.write(strconv.FormatUint(uint64(v.Number), 10) + v.Class.Letter())
		}
	case ast.Number:
		p.write(strconv.FormatFloat(float64(v), 'f', -1, 64))
	case ast.Bool:
		p.write(strconv.FormatBool(bool(v)))
	case ast.Null:
		p.write("null")
	case ast.Symbol:
		p.write(string(v))
	case ast.Str:
		p.write(`"` + string(v) + `"`)
	case ast.Import:
		p.write(`import "` + filepath.ToSlash(v.Path) + `"`)
	case ast.TypeIndicator:
		p.write("@" + string(v))
	case ast.ParenExpression:
		p.write("(")
		p.printExpression(v.Expression)
		p.write(")")
	case ast.Array:
		p.write("[")
		for i, e := range v.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.printExpression(e)
		}
		p.write("]")
	case ast.Dictionary:
		p.printDictDefs(v.Entries)
	case ast.Object:
		p.printObject(v)
	case ast.CompoundStatement:
		p.printBlock("!{", v.Statements)
	case ast.Macro:
		p.printMacro(v)
	case ast.Resolved:
		p.fail(errResolved)
	default:
		p.fail(fmt.Errorf("cannot print value %T", value))
	}
}

// printDictDefs writes one member per line with a trailing comma.
func (p *SpwnPrettyPrinter) printDictDefs(defs []ast.DictDef) {
	if len(defs) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.newline()
	p.indent++
	for _, def := range defs {
		switch d := def.(type) {
		case ast.DictEntry:
			p.write(d.Name + ": ")
			p.printExpression(d.Value)
		case ast.DictExtract:
			p.write("..")
			p.printExpression(d.Value)
		}
		p.write(",")
		p.newline()
	}
	p.indent--
	p.write("}")
}

func (p *SpwnPrettyPrinter) printObject(obj ast.Object) {
	if len(obj.Entries) == 0 {
		p.write("obj {}")
		return
	}
	p.write("obj {")
	p.newline()
	p.indent++
	for _, entry := range obj.Entries {
		p.printExpression(entry.Key)
		p.write(": ")
		p.printExpression(entry.Value)
		p.write(",")
		p.newline()
	}
	p.indent--
	p.write("}")
}

func (p *SpwnPrettyPrinter) printMacro(m ast.Macro) {
	if len(m.Properties) > 0 {
		p.printTag(m.Properties)
		p.write(" ")
	}
	p.write("(")
	for i, arg := range m.Args {
		if i > 0 {
			p.write(", ")
		}
		p.write(arg.Name)
		if len(arg.Properties) > 0 {
			p.write(" ")
			p.printTag(arg.Properties)
		}
		if arg.Type != nil {
			p.write(": ")
			p.printExpression(*arg.Type)
		}
		if arg.Default != nil {
			p.write(" = ")
			p.printExpression(*arg.Default)
		}
	}
	p.write(") ")
	p.printBlock("{", m.Body.Statements)
}

func (p *SpwnPrettyPrinter) printTag(tag ast.Tag) {
	p.write("#[")
	for i, prop := range tag {
		if i > 0 {
			p.write(", ")
		}
		p.write(prop.Name)
		if len(prop.Args) > 0 {
			p.write("(")
			p.printArguments(prop.Args)
			p.write(")")
		}
	}
	p.write("]")
}
