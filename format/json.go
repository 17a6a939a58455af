package format

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/dhamidi/spwn/ast"
)

// JSONEncoder writes a program as a JSON array of statements. Every node
// carries a "kind" field naming its variant.
type JSONEncoder struct {
	w       io.Writer
	program ast.Program
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(program ast.Program) error {
	e.program = program
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := make([]jsonStatement, 0, len(e.program))
	for _, stmt := range e.program {
		data = append(data, statementToJSON(stmt))
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonStatement struct {
	Kind  string   `json:"kind"`
	Arrow bool     `json:"arrow,omitempty"`
	Lines [2]int   `json:"lines"`
	Body  jsonNode `json:"body,omitempty"`
}

type jsonNode map[string]any

type jsonExpression struct {
	Values    []jsonVariable `json:"values"`
	Operators []string       `json:"operators,omitempty"`
}

type jsonVariable struct {
	Operator string     `json:"operator,omitempty"`
	Value    jsonNode   `json:"value"`
	Path     []jsonNode `json:"path,omitempty"`
}

type jsonArgument struct {
	Name  string         `json:"name,omitempty"`
	Value jsonExpression `json:"value"`
}

type jsonProperty struct {
	Name string         `json:"name"`
	Args []jsonArgument `json:"args,omitempty"`
}

type jsonArgDef struct {
	Name       string          `json:"name"`
	Type       *jsonExpression `json:"type,omitempty"`
	Default    *jsonExpression `json:"default,omitempty"`
	Properties []jsonProperty  `json:"properties,omitempty"`
}

func statementsToJSON(stmts []ast.Statement) []jsonStatement {
	result := make([]jsonStatement, 0, len(stmts))
	for _, stmt := range stmts {
		result = append(result, statementToJSON(stmt))
	}
	return result
}

func statementToJSON(stmt ast.Statement) jsonStatement {
	js := jsonStatement{
		Arrow: stmt.Arrow,
		Lines: [2]int{stmt.Line.Start, stmt.Line.End},
	}
	switch s := stmt.Body.(type) {
	case *ast.Definition:
		js.Kind = "definition"
		js.Body = jsonNode{"symbol": s.Symbol, "value": expressionToJSON(s.Value)}
		if len(s.Properties) > 0 {
			js.Body["properties"] = tagToJSON(s.Properties)
		}
	case *ast.Call:
		js.Kind = "call"
		js.Body = jsonNode{"function": variableToJSON(s.Function)}
	case *ast.ExprStatement:
		js.Kind = "expression"
		js.Body = jsonNode{"expression": expressionToJSON(s.Expression)}
	case *ast.TypeDef:
		js.Kind = "type"
		js.Body = jsonNode{"name": s.Name}
	case *ast.Return:
		js.Kind = "return"
		js.Body = jsonNode{"value": expressionToJSON(s.Value)}
	case *ast.Implementation:
		js.Kind = "impl"
		js.Body = jsonNode{"target": variableToJSON(s.Target), "members": dictDefsToJSON(s.Members)}
	case *ast.If:
		js.Kind = "if"
		js.Body = jsonNode{"condition": expressionToJSON(s.Condition), "body": statementsToJSON(s.Body)}
		if s.Else != nil {
			js.Body["else"] = statementsToJSON(s.Else)
		}
	case *ast.For:
		js.Kind = "for"
		js.Body = jsonNode{"symbol": s.Symbol, "iterable": expressionToJSON(s.Iterable), "body": statementsToJSON(s.Body)}
	case *ast.ErrorRaise:
		js.Kind = "error"
		js.Body = jsonNode{"message": expressionToJSON(s.Message)}
	case *ast.Extract:
		js.Kind = "extract"
		js.Body = jsonNode{"value": expressionToJSON(s.Value)}
	case *ast.AddObject:
		js.Kind = "add"
		js.Body = jsonNode{"object": expressionToJSON(s.Object)}
	case *ast.EndOfInput:
		js.Kind = "end"
	default:
		js.Kind = "unknown"
	}
	return js
}

func expressionToJSON(e ast.Expression) jsonExpression {
	je := jsonExpression{Values: make([]jsonVariable, 0, len(e.Values))}
	for _, v := range e.Values {
		je.Values = append(je.Values, variableToJSON(v))
	}
	for _, op := range e.Operators {
		je.Operators = append(je.Operators, op.Text())
	}
	return je
}

func variableToJSON(v ast.Variable) jsonVariable {
	jv := jsonVariable{Value: valueToJSON(v.Value)}
	if v.Operator != nil {
		jv.Operator = v.Operator.Text()
	}
	for _, path := range v.Path {
		switch path := path.(type) {
		case ast.MemberPath:
			jv.Path = append(jv.Path, jsonNode{"kind": "member", "name": path.Name})
		case ast.IndexPath:
			jv.Path = append(jv.Path, jsonNode{"kind": "index", "index": expressionToJSON(path.Index)})
		case ast.CallPath:
			jv.Path = append(jv.Path, jsonNode{"kind": "call", "args": argumentsToJSON(path.Args)})
		}
	}
	return jv
}

func argumentsToJSON(args []ast.Argument) []jsonArgument {
	result := make([]jsonArgument, 0, len(args))
	for _, arg := range args {
		ja := jsonArgument{Value: expressionToJSON(arg.Value)}
		if arg.Name != nil {
			ja.Name = *arg.Name
		}
		result = append(result, ja)
	}
	return result
}

func tagToJSON(tag ast.Tag) []jsonProperty {
	result := make([]jsonProperty, 0, len(tag))
	for _, prop := range tag {
		jp := jsonProperty{Name: prop.Name}
		if len(prop.Args) > 0 {
			jp.Args = argumentsToJSON(prop.Args)
		}
		result = append(result, jp)
	}
	return result
}

func dictDefsToJSON(defs []ast.DictDef) []jsonNode {
	result := make([]jsonNode, 0, len(defs))
	for _, def := range defs {
		switch d := def.(type) {
		case ast.DictEntry:
			result = append(result, jsonNode{"kind": "entry", "name": d.Name, "value": expressionToJSON(d.Value)})
		case ast.DictExtract:
			result = append(result, jsonNode{"kind": "extract", "value": expressionToJSON(d.Value)})
		}
	}
	return result
}

func optionalExpression(e *ast.Expression) *jsonExpression {
	if e == nil {
		return nil
	}
	je := expressionToJSON(*e)
	return &je
}

func valueToJSON(value ast.ValueLiteral) jsonNode {
	switch v := value.(type) {
	case ast.HandleID:
		n := jsonNode{"kind": "id", "class": v.Class.String(), "unspecified": v.Unspecified}
		if !v.Unspecified {
			n["number"] = v.Number
		}
		return n
	case ast.Number:
		return jsonNode{"kind": "number", "value": float64(v)}
	case ast.Bool:
		return jsonNode{"kind": "bool", "value": bool(v)}
	case ast.Null:
		return jsonNode{"kind": "null"}
	case ast.Symbol:
		return jsonNode{"kind": "symbol", "name": string(v)}
	case ast.Str:
		return jsonNode{"kind": "string", "value": string(v)}
	case ast.Import:
		return jsonNode{"kind": "import", "path": filepath.ToSlash(v.Path)}
	case ast.TypeIndicator:
		return jsonNode{"kind": "type", "name": string(v)}
	case ast.ParenExpression:
		return jsonNode{"kind": "expression", "expression": expressionToJSON(v.Expression)}
	case ast.Array:
		elems := make([]jsonExpression, 0, len(v.Elements))
		for _, e := range v.Elements {
			elems = append(elems, expressionToJSON(e))
		}
		return jsonNode{"kind": "array", "elements": elems}
	case ast.Dictionary:
		return jsonNode{"kind": "dictionary", "entries": dictDefsToJSON(v.Entries)}
	case ast.Object:
		entries := make([]jsonNode, 0, len(v.Entries))
		for _, entry := range v.Entries {
			entries = append(entries, jsonNode{"key": expressionToJSON(entry.Key), "value": expressionToJSON(entry.Value)})
		}
		return jsonNode{"kind": "object", "entries": entries}
	case ast.CompoundStatement:
		return jsonNode{"kind": "compound", "statements": statementsToJSON(v.Statements)}
	case ast.Macro:
		args := make([]jsonArgDef, 0, len(v.Args))
		for _, arg := range v.Args {
			ja := jsonArgDef{
				Name:    arg.Name,
				Type:    optionalExpression(arg.Type),
				Default: optionalExpression(arg.Default),
			}
			if len(arg.Properties) > 0 {
				ja.Properties = tagToJSON(arg.Properties)
			}
			args = append(args, ja)
		}
		n := jsonNode{"kind": "macro", "args": args, "body": statementsToJSON(v.Body.Statements)}
		if len(v.Properties) > 0 {
			n["properties"] = tagToJSON(v.Properties)
		}
		return n
	case ast.Resolved:
		return jsonNode{"kind": "resolved"}
	}
	return jsonNode{"kind": "unknown"}
}
