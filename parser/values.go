package parser

import (
	"path/filepath"
	"strconv"

	"github.com/dhamidi/spwn/ast"
	"github.com/dhamidi/spwn/syntax"
)

// expression builds an operator chain. Operator children become
// Operators and every other child an operand. A node that is not an
// expression becomes a single-operand expression.
func (b *builder) expression(n *syntax.Node) ast.Expression {
	if n == nil {
		return ast.NullExpression()
	}
	if n.Rule != syntax.RuleExpression {
		return ast.Expression{Values: []ast.Variable{b.variable(n)}}
	}
	if !b.enter(n) {
		return ast.NullExpression()
	}
	defer b.leave()

	var expr ast.Expression
	wantOperand := true
	for _, child := range n.Children {
		if child.Rule == syntax.RuleOperator {
			op, ok := ast.LookupOperator(child.Text)
			switch {
			case !ok:
				b.report(child, "unknown operator %q", child.Text)
			case wantOperand:
				b.report(child, "operator %q has no left operand", child.Text)
			default:
				expr.Operators = append(expr.Operators, op)
				wantOperand = true
			}
			continue
		}
		if !wantOperand {
			b.report(child, "%s follows an operand without an operator", child.Rule)
			continue
		}
		expr.Values = append(expr.Values, b.variable(child))
		wantOperand = false
	}

	if len(expr.Values) == 0 {
		b.report(n, "empty expression")
		return ast.NullExpression()
	}
	if wantOperand {
		b.report(n, "trailing operator %s", expr.Operators[len(expr.Operators)-1])
		expr.Operators = expr.Operators[:len(expr.Operators)-1]
	}
	return expr
}

// variable builds an operand. An expression in operand position is a
// nested precedence tier and becomes a parenthesised expression.
func (b *builder) variable(n *syntax.Node) ast.Variable {
	if n == nil {
		return ast.Variable{Value: ast.Null{}}
	}
	switch n.Rule {
	case syntax.RuleExpression:
		return b.expression(n).AsVariable()
	case syntax.RuleVariable:
	default:
		return ast.Variable{Value: b.value(n)}
	}

	rest := n.Children
	var v ast.Variable
	if len(rest) > 0 && rest[0].Rule == syntax.RuleUnaryOperator {
		if op, ok := ast.LookupUnaryOperator(rest[0].Text); ok {
			v.Operator = &op
		} else {
			b.report(rest[0], "unknown unary operator %q", rest[0].Text)
		}
		rest = rest[1:]
	}
	if len(rest) == 0 {
		b.report(n, "%s is missing its value", n.Rule)
		v.Value = ast.Null{}
		return v
	}
	v.Value = b.value(rest[0])
	for _, child := range rest[1:] {
		if p := b.path(child); p != nil {
			v.Path = append(v.Path, p)
		}
	}
	return v
}

func (b *builder) path(n *syntax.Node) ast.Path {
	switch n.Rule {
	case syntax.RuleSymbol:
		return ast.MemberPath{Name: n.Text}
	case syntax.RuleIndex:
		return ast.IndexPath{Index: b.expression(b.child(n, 0, "index"))}
	case syntax.RuleArguments:
		return ast.CallPath{Args: b.arguments(n)}
	}
	b.unsupported(n, "path")
	return nil
}

// arguments builds a call argument list. An argument whose first child is
// a symbol followed by a value is a keyword argument.
func (b *builder) arguments(n *syntax.Node) []ast.Argument {
	args := make([]ast.Argument, 0, len(n.Children))
	for _, child := range n.Children {
		if child.Rule != syntax.RuleArgument {
			args = append(args, ast.Argument{Value: b.expression(child)})
			continue
		}
		if len(child.Children) >= 2 && child.Children[0].Rule == syntax.RuleSymbol {
			name := child.Children[0].Text
			args = append(args, ast.Argument{Name: &name, Value: b.expression(child.Children[1])})
			continue
		}
		args = append(args, ast.Argument{Value: b.expression(b.child(child, 0, "value"))})
	}
	return args
}

func (b *builder) value(n *syntax.Node) ast.ValueLiteral {
	if n == nil {
		return ast.Null{}
	}
	for n.Rule == syntax.RuleValueWrapper {
		inner := b.child(n, 0, "value")
		if inner == nil {
			return ast.Number(0)
		}
		n = inner
	}
	if !b.enter(n) {
		return ast.Null{}
	}
	defer b.leave()

	switch n.Rule {
	case syntax.RuleHandleID:
		return b.handle(n)
	case syntax.RuleMacroDefinition:
		return b.macro(n)
	case syntax.RuleNumber:
		f, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			b.report(n, "invalid number %q", n.Text)
			return ast.Number(0)
		}
		return ast.Number(f)
	case syntax.RuleBoolean:
		return ast.Bool(n.Text == "true")
	case syntax.RuleNull:
		return ast.Null{}
	case syntax.RuleDictionary:
		return ast.Dictionary{Entries: b.dictDefs(n)}
	case syntax.RuleCompoundStatement:
		return ast.CompoundStatement{Statements: b.statements(n)}
	case syntax.RuleObject:
		return b.object(n)
	case syntax.RuleVariable:
		return ast.ParenExpression{Expression: ast.Expression{Values: []ast.Variable{b.variable(n)}}}
	case syntax.RuleExpression:
		return ast.ParenExpression{Expression: b.expression(n)}
	case syntax.RuleSymbol:
		return ast.Symbol(n.Text)
	case syntax.RuleString:
		return ast.Str(ast.StrContent(n.Text))
	case syntax.RuleArray:
		elems := make([]ast.Expression, 0, len(n.Children))
		for _, child := range n.Children {
			elems = append(elems, b.expression(child))
		}
		return ast.Array{Elements: elems}
	case syntax.RuleImport:
		if s := b.child(n, 0, "path"); s != nil {
			return ast.Import{Path: filepath.FromSlash(ast.StrContent(s.Text))}
		}
		return ast.Import{}
	case syntax.RuleTypeIndicator:
		return ast.TypeIndicator(typeName(n.Text))
	}
	b.unsupported(n, "value")
	return ast.Number(0)
}

// handle builds 10g style IDs from a number and a class child, and ?g
// style IDs from a lone class child.
func (b *builder) handle(n *syntax.Node) ast.HandleID {
	var id ast.HandleID
	rest := n.Children
	if len(rest) > 0 && rest[0].Rule == syntax.RuleNumber {
		num, err := strconv.ParseUint(rest[0].Text, 10, 16)
		if err != nil {
			b.report(rest[0], "invalid ID number %q", rest[0].Text)
		} else {
			id.Number = uint16(num)
		}
		rest = rest[1:]
	} else {
		id.Unspecified = true
	}
	if len(rest) == 0 {
		b.report(n, "%s is missing its class", n.Rule)
		return id
	}
	class, ok := ast.LookupHandleClass(rest[0].Text)
	if !ok {
		b.report(rest[0], "unknown ID class %q", rest[0].Text)
	}
	id.Class = class
	return id
}

func (b *builder) dictDefs(n *syntax.Node) []ast.DictDef {
	defs := make([]ast.DictDef, 0, len(n.Children))
	for _, child := range n.Children {
		switch child.Rule {
		case syntax.RuleDictEntry:
			entry := ast.DictEntry{}
			if sym := b.child(child, 0, "key"); sym != nil {
				entry.Name = sym.Text
			}
			entry.Value = b.expression(b.child(child, 1, "value"))
			defs = append(defs, entry)
		case syntax.RuleDictExtract:
			defs = append(defs, ast.DictExtract{Value: b.expression(b.child(child, 0, "value"))})
		default:
			b.unsupported(child, "dictionary")
		}
	}
	return defs
}

func (b *builder) object(n *syntax.Node) ast.Object {
	obj := ast.Object{Entries: make([]ast.ObjectEntry, 0, len(n.Children))}
	for _, child := range n.Children {
		if child.Rule != syntax.RuleObjectEntry {
			b.unsupported(child, "object")
			continue
		}
		obj.Entries = append(obj.Entries, ast.ObjectEntry{
			Key:   b.expression(b.child(child, 0, "key")),
			Value: b.expression(b.child(child, 1, "value")),
		})
	}
	return obj
}

// macro builds `#[props] (args) { body }`.
func (b *builder) macro(n *syntax.Node) ast.Macro {
	var m ast.Macro
	for _, child := range n.Children {
		switch child.Rule {
		case syntax.RuleTag:
			m.Properties = append(m.Properties, b.tag(child)...)
		case syntax.RuleMacroArgs:
			m.Args = make([]ast.ArgDef, 0, len(child.Children))
			for _, arg := range child.Children {
				m.Args = append(m.Args, b.argDef(arg))
			}
		case syntax.RuleBlock, syntax.RuleCompoundStatement:
			m.Body = ast.CompoundStatement{Statements: b.statements(child)}
		default:
			b.unsupported(child, "macro")
		}
	}
	return m
}

func (b *builder) argDef(n *syntax.Node) ast.ArgDef {
	var def ast.ArgDef
	for _, child := range n.Children {
		switch child.Rule {
		case syntax.RuleSymbol:
			def.Name = child.Text
		case syntax.RuleTag:
			def.Properties = append(def.Properties, b.tag(child)...)
		case syntax.RuleArgType:
			typ := b.expression(b.child(child, 0, "type"))
			def.Type = &typ
		default:
			value := b.expression(child)
			def.Default = &value
		}
	}
	return def
}

func (b *builder) tag(n *syntax.Node) ast.Tag {
	tag := make(ast.Tag, 0, len(n.Children))
	for _, child := range n.Children {
		if child.Rule != syntax.RuleProperty {
			b.unsupported(child, "tag")
			continue
		}
		var prop ast.Property
		if sym := b.child(child, 0, "name"); sym != nil {
			prop.Name = sym.Text
		}
		if len(child.Children) > 1 {
			prop.Args = b.arguments(child.Children[1])
		}
		tag = append(tag, prop)
	}
	return tag
}
