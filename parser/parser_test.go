package parser

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/spwn/ast"
	"github.com/dhamidi/spwn/syntax"
)

func parse(t *testing.T, src string, opts ...Option) *Result {
	t.Helper()
	opts = append([]Option{WithSink(&Collector{})}, opts...)
	res, err := ParseSource("test.spwn", []byte(src), opts...)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return res
}

// definitionValue returns the value of the first statement of src, which
// must be a definition.
func definitionValue(t *testing.T, src string) ast.Expression {
	t.Helper()
	res := parse(t, src)
	def, ok := res.Program[0].Body.(*ast.Definition)
	if !ok {
		t.Fatalf("got %T, want *ast.Definition", res.Program[0].Body)
	}
	return def.Value
}

func single(v ast.ValueLiteral) ast.Expression {
	return ast.Expression{Values: []ast.Variable{{Value: v}}}
}

func TestHandleLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  ast.HandleID
	}{
		{"10g", ast.HandleID{Number: 10, Class: ast.HandleGroup}},
		{"?g", ast.HandleID{Unspecified: true, Class: ast.HandleGroup}},
		{"3c", ast.HandleID{Number: 3, Class: ast.HandleColor}},
		{"?i", ast.HandleID{Unspecified: true, Class: ast.HandleItem}},
		{"65535b", ast.HandleID{Number: 65535, Class: ast.HandleBlock}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value := definitionValue(t, "a = "+tt.input)
			if !reflect.DeepEqual(value, single(tt.want)) {
				t.Errorf("got %+v, want %+v", value, tt.want)
			}
		})
	}
}

func TestHandleNumberOutOfRange(t *testing.T) {
	c := &Collector{}
	res, err := ParseSource("test.spwn", []byte("a = 70000g"), WithSink(c))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 1 || len(c.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, %d reported", len(res.Diagnostics), len(c.Diagnostics))
	}
	value := res.Program[0].Body.(*ast.Definition).Value.Values[0].Value
	if value != (ast.HandleID{Class: ast.HandleGroup}) {
		t.Errorf("got %+v", value)
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Str
	}{
		{"plain", `"hello"`, "hello"},
		{"empty", `""`, ""},
		// Quote characters are deleted, escape backslashes stay.
		{"embedded quote", `"say \"hi\""`, `say \hi\`},
		{"other escape", `"a\nb"`, `a\nb`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := definitionValue(t, "s = "+tt.input)
			if !reflect.DeepEqual(value, single(tt.want)) {
				t.Errorf("got %+v, want %q", value, tt.want)
			}
		})
	}
}

func TestScalarLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  ast.ValueLiteral
	}{
		{"42", ast.Number(42)},
		{"0.25", ast.Number(0.25)},
		{"true", ast.Bool(true)},
		{"false", ast.Bool(false)},
		{"null", ast.Null{}},
		{"name", ast.Symbol("name")},
		{"@group", ast.TypeIndicator("group")},
		{`import "lib/util.spwn"`, ast.Import{Path: filepath.FromSlash("lib/util.spwn")}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value := definitionValue(t, "v = "+tt.input)
			if !reflect.DeepEqual(value, single(tt.want)) {
				t.Errorf("got %+v, want %+v", value, tt.want)
			}
		})
	}
}

func TestPostfixChain(t *testing.T) {
	value := definitionValue(t, "v = foo.bar[0](x)")
	want := ast.Expression{Values: []ast.Variable{{
		Value: ast.Symbol("foo"),
		Path: []ast.Path{
			ast.MemberPath{Name: "bar"},
			ast.IndexPath{Index: single(ast.Number(0))},
			ast.CallPath{Args: []ast.Argument{{Value: single(ast.Symbol("x"))}}},
		},
	}}}
	if !reflect.DeepEqual(value, want) {
		t.Errorf("got %+v\nwant %+v", value, want)
	}
}

func TestCallStatement(t *testing.T) {
	res := parse(t, "thing.method(1, key = 2)")
	call, ok := res.Program[0].Body.(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want *ast.Call", res.Program[0].Body)
	}
	if call.Function.Value != ast.Symbol("thing") {
		t.Errorf("function base = %v", call.Function.Value)
	}
	last, ok := call.Function.Path[len(call.Function.Path)-1].(ast.CallPath)
	if !ok {
		t.Fatalf("path does not end in a call: %+v", call.Function.Path)
	}
	if last.Args[0].Name != nil {
		t.Errorf("first argument should be positional")
	}
	if last.Args[1].Name == nil || *last.Args[1].Name != "key" {
		t.Errorf("second argument should be named key")
	}
}

func TestMacroDefinition(t *testing.T) {
	value := definitionValue(t, "m = (a, b = 5) { }")
	macro, ok := value.Values[0].Value.(ast.Macro)
	if !ok {
		t.Fatalf("got %T, want ast.Macro", value.Values[0].Value)
	}
	five := single(ast.Number(5))
	want := []ast.ArgDef{
		{Name: "a"},
		{Name: "b", Default: &five},
	}
	if !reflect.DeepEqual(macro.Args, want) {
		t.Errorf("args = %+v", macro.Args)
	}
	if len(macro.Body.Statements) != 0 {
		t.Errorf("body has %d statements", len(macro.Body.Statements))
	}
}

func TestMacroPropertiesAndTypes(t *testing.T) {
	value := definitionValue(t, `m = #[desc("adds")] (a #[desc("left")]: @number, b) { return a + b }`)
	macro := value.Values[0].Value.(ast.Macro)
	if desc, ok := macro.Properties.Desc(); !ok || desc != "adds" {
		t.Errorf("macro desc = %q, %v", desc, ok)
	}
	a := macro.Args[0]
	if desc, ok := a.Properties.Desc(); !ok || desc != "left" {
		t.Errorf("argument desc = %q, %v", desc, ok)
	}
	if a.Type == nil || !reflect.DeepEqual(*a.Type, single(ast.TypeIndicator("number"))) {
		t.Errorf("argument type = %+v", a.Type)
	}
	if macro.Args[1].Type != nil || macro.Args[1].Default != nil {
		t.Errorf("second argument = %+v", macro.Args[1])
	}
	ret, ok := macro.Body.Statements[0].Body.(*ast.Return)
	if !ok || len(ret.Value.Operators) != 1 {
		t.Errorf("body = %+v", macro.Body.Statements)
	}
}

func TestPrecedence(t *testing.T) {
	value := definitionValue(t, "v = 1 + 2 * 3")
	want := ast.Expression{
		Values: []ast.Variable{
			{Value: ast.Number(1)},
			ast.Expression{
				Values:    []ast.Variable{{Value: ast.Number(2)}, {Value: ast.Number(3)}},
				Operators: []ast.Operator{ast.OperatorMultiply},
			}.AsVariable(),
		},
		Operators: []ast.Operator{ast.OperatorPlus},
	}
	if !reflect.DeepEqual(value, want) {
		t.Errorf("got %+v\nwant %+v", value, want)
	}
}

func TestParenthesisedOperand(t *testing.T) {
	value := definitionValue(t, "v = -(a || b).x")
	v := value.Values[0]
	if v.Operator == nil || *v.Operator != ast.UnaryNegate {
		t.Errorf("operator = %v", v.Operator)
	}
	paren, ok := v.Value.(ast.ParenExpression)
	if !ok {
		t.Fatalf("got %T, want ast.ParenExpression", v.Value)
	}
	if !reflect.DeepEqual(paren.Expression.Operators, []ast.Operator{ast.OperatorOr}) {
		t.Errorf("inner operators = %v", paren.Expression.Operators)
	}
	if !reflect.DeepEqual(v.Path, []ast.Path{ast.MemberPath{Name: "x"}}) {
		t.Errorf("path = %+v", v.Path)
	}
}

func TestExpressionInvariantOnSample(t *testing.T) {
	res, err := ParseFile(filepath.Join("testdata", "sample.spwn"), WithSink(&Collector{}), WithStrict())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Program.Valid() {
		t.Error("an expression has a mismatched operator count")
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if _, ok := res.Program[len(res.Program)-1].Body.(*ast.EndOfInput); !ok {
		t.Error("program does not end with EndOfInput")
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		input string
		want  ast.StatementBody
	}{
		{"type @enemy", &ast.TypeDef{Name: "enemy"}},
		{"extract $", &ast.Extract{Value: single(ast.Symbol("$"))}},
		{`error "bad"`, &ast.ErrorRaise{Message: single(ast.Str("bad"))}},
		{"return", &ast.Return{Value: ast.NullExpression()}},
		{"return 1", &ast.Return{Value: single(ast.Number(1))}},
		{"add obj { 1: 2 }", &ast.AddObject{Object: single(ast.Object{Entries: []ast.ObjectEntry{
			{Key: single(ast.Number(1)), Value: single(ast.Number(2))},
		}})}},
		{"x", &ast.ExprStatement{Expression: single(ast.Symbol("x"))}},
		{"for i in list { }", &ast.For{Symbol: "i", Iterable: single(ast.Symbol("list")), Body: []ast.Statement{}}},
		{"if c { }", &ast.If{Condition: single(ast.Symbol("c")), Body: []ast.Statement{}}},
		{"if c { } else { }", &ast.If{Condition: single(ast.Symbol("c")), Body: []ast.Statement{}, Else: []ast.Statement{}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := parse(t, tt.input)
			if len(res.Program) != 2 {
				t.Fatalf("got %d statements, want 2", len(res.Program))
			}
			if !reflect.DeepEqual(res.Program[0].Body, tt.want) {
				t.Errorf("got %+v, want %+v", res.Program[0].Body, tt.want)
			}
		})
	}
}

func TestElseIf(t *testing.T) {
	res := parse(t, "if a { } else if b { x() }")
	stmt := res.Program[0].Body.(*ast.If)
	if len(stmt.Else) != 1 {
		t.Fatalf("else has %d statements", len(stmt.Else))
	}
	nested, ok := stmt.Else[0].Body.(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *ast.If", stmt.Else[0].Body)
	}
	if nested.Else != nil {
		t.Error("nested if should have no else")
	}
	if _, ok := nested.Body[0].Body.(*ast.Call); !ok {
		t.Errorf("nested body = %+v", nested.Body)
	}
}

func TestDefinitions(t *testing.T) {
	res := parse(t, "* = import \"x.spwn\"\nspeed = 5 #[desc(\"fast\"), builtin] #[hidden]")
	wild := res.Program[0].Body.(*ast.Definition)
	if wild.Symbol != "*" {
		t.Errorf("symbol = %q", wild.Symbol)
	}

	def := res.Program[1].Body.(*ast.Definition)
	if def.Symbol != "speed" {
		t.Errorf("symbol = %q", def.Symbol)
	}
	var names []string
	for _, p := range def.Properties {
		names = append(names, p.Name)
	}
	if !reflect.DeepEqual(names, []string{"desc", "builtin", "hidden"}) {
		t.Errorf("properties = %v", names)
	}
	if desc, ok := def.Properties.Desc(); !ok || desc != "fast" {
		t.Errorf("desc = %q, %v", desc, ok)
	}
}

func TestImplementation(t *testing.T) {
	res := parse(t, "impl @thing { size: 1, ..base }")
	impl := res.Program[0].Body.(*ast.Implementation)
	if impl.Target.Value != ast.TypeIndicator("thing") {
		t.Errorf("target = %+v", impl.Target)
	}
	want := []ast.DictDef{
		ast.DictEntry{Name: "size", Value: single(ast.Number(1))},
		ast.DictExtract{Value: single(ast.Symbol("base"))},
	}
	if !reflect.DeepEqual(impl.Members, want) {
		t.Errorf("members = %+v", impl.Members)
	}
}

func TestCollections(t *testing.T) {
	value := definitionValue(t, "v = [1, {a: 2}, !{ b() }]")
	arr, ok := value.Values[0].Value.(ast.Array)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("got %+v", value.Values[0].Value)
	}
	dict := arr.Elements[1].Values[0].Value.(ast.Dictionary)
	if !reflect.DeepEqual(dict.Entries, []ast.DictDef{ast.DictEntry{Name: "a", Value: single(ast.Number(2))}}) {
		t.Errorf("dictionary = %+v", dict)
	}
	cmp := arr.Elements[2].Values[0].Value.(ast.CompoundStatement)
	if len(cmp.Statements) != 1 {
		t.Errorf("compound statement = %+v", cmp)
	}
}

func TestArrowAndLines(t *testing.T) {
	res := parse(t, "a = 1\n-> b()\nc = !{\n  d()\n}")
	tests := []struct {
		arrow bool
		lines ast.LineSpan
	}{
		{false, ast.LineSpan{Start: 1, End: 1}},
		{true, ast.LineSpan{Start: 2, End: 2}},
		{false, ast.LineSpan{Start: 3, End: 5}},
	}
	for i, tt := range tests {
		stmt := res.Program[i]
		if stmt.Arrow != tt.arrow {
			t.Errorf("statement %d: arrow = %v", i, stmt.Arrow)
		}
		if stmt.Line != tt.lines {
			t.Errorf("statement %d: lines = %+v, want %+v", i, stmt.Line, tt.lines)
		}
	}
	if _, ok := res.Program[1].Body.(*ast.Call); !ok {
		t.Errorf("arrow statement body = %T", res.Program[1].Body)
	}
}

func TestErrorKinds(t *testing.T) {
	res, err := ParseFile(filepath.Join(t.TempDir(), "missing.spwn"))
	if res != nil {
		t.Error("result returned for unreadable file")
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("got %v, want *IOError", err)
	}
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		t.Error("IO failure reported as syntax error")
	}

	res, err = ParseSource("bad.spwn", []byte("a = !{\n  b()\n"))
	if res != nil {
		t.Error("result returned for malformed source")
	}
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("got %v, want *SyntaxError", err)
	}
	if errors.As(err, &ioErr) {
		t.Error("syntax failure reported as IO error")
	}
	if pos := syntaxErr.Pos(); pos.File != "bad.spwn" || pos.Line != 3 {
		t.Errorf("position = %s", pos)
	}
	if !strings.Contains(err.Error(), "bad.spwn:3:1") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestMismatchedBraces(t *testing.T) {
	for _, src := range []string{"a = [1, 2}", "if a { b()", "f(1]", "}"} {
		_, err := ParseSource("bad.spwn", []byte(src))
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("%q: got %v, want *SyntaxError", src, err)
		}
	}
}

func node(rule syntax.Rule, line int, text string, children ...*syntax.Node) *syntax.Node {
	pos := syntax.Position{Line: line, Column: 1}
	return &syntax.Node{Rule: rule, Span: syntax.Span{Start: pos, End: pos}, Text: text, Children: children}
}

func numberDefinition(line int, name, value string) *syntax.Node {
	return node(syntax.RuleDefinition, line, "",
		node(syntax.RuleSymbol, line, name),
		node(syntax.RuleExpression, line, "",
			node(syntax.RuleVariable, line, "",
				node(syntax.RuleValueWrapper, line, "",
					node(syntax.RuleNumber, line, value)))))
}

func TestUnknownStatementContinues(t *testing.T) {
	tree := node(syntax.RuleProgram, 1, "",
		numberDefinition(1, "a", "1"),
		node(syntax.RuleIndex, 2, "[0]"),
		numberDefinition(3, "b", "2"),
		node(syntax.RuleEOI, 4, ""),
	)

	var reported []Diagnostic
	program, diags, err := Build(tree, WithSink(SinkFunc(func(d Diagnostic) {
		reported = append(reported, d)
	})))
	if err != nil {
		t.Fatal(err)
	}
	if len(program) != 4 {
		t.Fatalf("got %d statements, want 4", len(program))
	}
	if _, ok := program[1].Body.(*ast.EndOfInput); !ok {
		t.Errorf("placeholder = %T, want *ast.EndOfInput", program[1].Body)
	}
	def, ok := program[2].Body.(*ast.Definition)
	if !ok || def.Symbol != "b" {
		t.Errorf("statement after placeholder = %+v", program[2].Body)
	}
	if len(diags) != 1 || diags[0].Rule != syntax.RuleIndex || diags[0].Span.Start.Line != 2 {
		t.Errorf("diagnostics = %v", diags)
	}
	if !reflect.DeepEqual(reported, []Diagnostic(diags)) {
		t.Errorf("sink received %v", reported)
	}
}

func TestStrictMode(t *testing.T) {
	tree := node(syntax.RuleProgram, 1, "", node(syntax.RuleTag, 1, "#[x]"))
	program, diags, err := Build(tree, WithSink(&Collector{}), WithStrict())
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("got %v, want *UnsupportedError", err)
	}
	if program != nil {
		t.Error("program returned in strict mode")
	}
	if len(diags) != 1 || len(unsupported.Diagnostics) != 1 {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestUnknownValue(t *testing.T) {
	tree := node(syntax.RuleProgram, 1, "",
		node(syntax.RuleDefinition, 1, "",
			node(syntax.RuleSymbol, 1, "a"),
			node(syntax.RuleExpression, 1, "",
				node(syntax.RuleVariable, 1, "",
					node(syntax.RuleValueWrapper, 1, "",
						node(syntax.RuleBlock, 1, "{}"))))),
	)
	c := &Collector{}
	program, diags, err := Build(tree, WithSink(c))
	if err != nil {
		t.Fatal(err)
	}
	def := program[0].Body.(*ast.Definition)
	if !reflect.DeepEqual(def.Value, single(ast.Number(0))) {
		t.Errorf("value = %+v", def.Value)
	}
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "value position") {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestMalformedExpressionKeepsInvariant(t *testing.T) {
	op := node(syntax.RuleOperator, 1, "+")
	num := func(v string) *syntax.Node {
		return node(syntax.RuleVariable, 1, "", node(syntax.RuleNumber, 1, v))
	}
	tree := node(syntax.RuleProgram, 1, "",
		node(syntax.RuleExpression, 1, "", op, num("1"), num("2"), op, op, num("3"), op),
	)
	program, diags, err := Build(tree, WithSink(&Collector{}))
	if err != nil {
		t.Fatal(err)
	}
	expr := program[0].Body.(*ast.ExprStatement).Expression
	if !expr.Valid() {
		t.Errorf("invariant broken: %+v", expr)
	}
	if len(diags) != 4 {
		t.Errorf("got %d diagnostics, want 4: %v", len(diags), diags)
	}
}

func TestDepthLimit(t *testing.T) {
	inner := node(syntax.RuleNumber, 1, "1")
	for i := 0; i < 40; i++ {
		inner = node(syntax.RuleArray, 1, "",
			node(syntax.RuleExpression, 1, "",
				node(syntax.RuleVariable, 1, "", inner)))
	}
	tree := node(syntax.RuleProgram, 1, "",
		node(syntax.RuleExpression, 1, "", node(syntax.RuleVariable, 1, "", inner)))

	_, _, err := Build(tree, WithSink(&Collector{}), WithMaxDepth(20))
	var depthErr *DepthError
	if !errors.As(err, &depthErr) {
		t.Fatalf("got %v, want *DepthError", err)
	}
	if depthErr.Limit != 20 {
		t.Errorf("limit = %d", depthErr.Limit)
	}

	if _, _, err := Build(tree, WithSink(&Collector{})); err != nil {
		t.Errorf("default limit: %v", err)
	}
}

func TestDeepSourceIsSyntaxError(t *testing.T) {
	src := "a = " + strings.Repeat("[", 30) + strings.Repeat("]", 30)
	_, err := ParseSource("deep.spwn", []byte(src), WithMaxDepth(10))
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("got %v, want *SyntaxError", err)
	}
}

func TestBuildRejectsNonProgram(t *testing.T) {
	if _, _, err := Build(nil); err == nil {
		t.Error("nil tree accepted")
	}
	if _, _, err := Build(node(syntax.RuleBlock, 1, "")); err == nil {
		t.Error("block root accepted")
	}
}
