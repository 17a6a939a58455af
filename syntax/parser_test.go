package syntax

import (
	"errors"
	"strings"
	"testing"
)

func parseProgram(t *testing.T, src string) *Node {
	t.Helper()
	tree, err := ParseProgram(strings.NewReader(src), WithFile("test.spwn")).Finish()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return tree
}

func rules(nodes []*Node) []Rule {
	var result []Rule
	for _, n := range nodes {
		result = append(result, n.Rule)
	}
	return result
}

func equalRules(a, b []Rule) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rule  Rule
	}{
		{"definition", "a = 5", RuleDefinition},
		{"wildcard definition", "* = import \"lib.spwn\"", RuleDefinition},
		{"call", "a.b(1)", RuleCall},
		{"expression", "a + 1", RuleExpression},
		{"assignment expression", "a.b += 1", RuleExpression},
		{"if", "if a { }", RuleIf},
		{"for", "for i in 0..10 { }", RuleFor},
		{"return", "return", RuleReturn},
		{"implement", "impl @group { move: (x) { } }", RuleImplement},
		{"add object", "add obj { 1: 10 }", RuleAddObject},
		{"error", "error \"bad\"", RuleErrorStatement},
		{"extract", "extract $", RuleExtract},
		{"type", "type @thing", RuleTypeDef},
		{"arrow", "-> a.b()", RuleArrowStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseProgram(t, tt.input)
			if len(tree.Children) != 2 {
				t.Fatalf("got %d children, want statement and end-of-input:\n%s", len(tree.Children), tree)
			}
			if got := tree.Children[0].Rule; got != tt.rule {
				t.Errorf("got %v, want %v", got, tt.rule)
			}
			if got := tree.Children[1].Rule; got != RuleEOI {
				t.Errorf("last child is %v, want end-of-input", got)
			}
		})
	}
}

func TestParseStatementSeparators(t *testing.T) {
	tree := parseProgram(t, "a = 1; b = 2\nc = 3\n\n;d()")
	want := []Rule{RuleDefinition, RuleDefinition, RuleDefinition, RuleCall, RuleEOI}
	if got := rules(tree.Children); !equalRules(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseNewlineEndsOperand(t *testing.T) {
	tree := parseProgram(t, "a = b\n(c)\nd = e\n[1]")
	want := []Rule{RuleDefinition, RuleExpression, RuleDefinition, RuleExpression, RuleEOI}
	if got := rules(tree.Children); !equalRules(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseDefinitionShape(t *testing.T) {
	tree := parseProgram(t, `a = 10g #[desc("main"), builtin]`)
	def := tree.Children[0]
	want := []Rule{RuleSymbol, RuleExpression, RuleTag}
	if got := rules(def.Children); !equalRules(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if def.Children[0].Text != "a" {
		t.Errorf("symbol = %q", def.Children[0].Text)
	}
	tag := def.Children[2]
	if len(tag.Children) != 2 {
		t.Fatalf("got %d properties, want 2", len(tag.Children))
	}
	builtin := tag.Children[1]
	if got := rules(builtin.Children); !equalRules(got, []Rule{RuleSymbol, RuleArguments}) {
		t.Errorf("property without arguments: got %v", got)
	}
	if len(builtin.Children[1].Children) != 0 {
		t.Errorf("expected empty argument list")
	}
}

func TestParseWildcardDefinition(t *testing.T) {
	tree := parseProgram(t, "* = a")
	def := tree.Children[0]
	if got := rules(def.Children); !equalRules(got, []Rule{RuleExpression}) {
		t.Errorf("got %v, want [expression]", got)
	}
}

func TestParsePrecedenceTiers(t *testing.T) {
	tree := parseProgram(t, "a + b * c - d")
	expr := tree.Children[0]
	want := []Rule{RuleVariable, RuleOperator, RuleExpression, RuleOperator, RuleVariable}
	if got := rules(expr.Children); !equalRules(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	inner := expr.Children[2]
	if inner.Text != "b * c" {
		t.Errorf("inner text = %q", inner.Text)
	}
	if got := rules(inner.Children); !equalRules(got, []Rule{RuleVariable, RuleOperator, RuleVariable}) {
		t.Errorf("inner got %v", got)
	}
}

func TestParseLoneOperandIsWrapped(t *testing.T) {
	tree, err := ParseExpression(strings.NewReader("x")).Finish()
	if err != nil {
		t.Fatal(err)
	}
	if tree.Rule != RuleExpression {
		t.Fatalf("got %v, want expression", tree.Rule)
	}
	if got := rules(tree.Children); !equalRules(got, []Rule{RuleVariable}) {
		t.Errorf("got %v", got)
	}
}

func TestParseVariablePath(t *testing.T) {
	tree, err := ParseExpression(strings.NewReader("foo.bar[0](x, y = 2)")).Finish()
	if err != nil {
		t.Fatal(err)
	}
	v := tree.Children[0]
	want := []Rule{RuleValueWrapper, RuleSymbol, RuleIndex, RuleArguments}
	if got := rules(v.Children); !equalRules(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	args := v.Children[3]
	if got := rules(args.Children[1].Children); !equalRules(got, []Rule{RuleSymbol, RuleExpression}) {
		t.Errorf("keyword argument got %v", got)
	}
	if got := rules(args.Children[0].Children); !equalRules(got, []Rule{RuleExpression}) {
		t.Errorf("positional argument got %v", got)
	}
}

func TestParseUnary(t *testing.T) {
	tests := []struct {
		input string
		op    string
	}{
		{"!a", "!"},
		{"-a", "-"},
		{"..a", ".."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree, err := ParseExpression(strings.NewReader(tt.input)).Finish()
			if err != nil {
				t.Fatal(err)
			}
			v := tree.Children[0]
			if v.Children[0].Rule != RuleUnaryOperator || v.Children[0].Text != tt.op {
				t.Errorf("got %v %q", v.Children[0].Rule, v.Children[0].Text)
			}
		})
	}
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		input string
		rule  Rule
	}{
		{"42", RuleNumber},
		{"10g", RuleHandleID},
		{"?b", RuleHandleID},
		{"true", RuleBoolean},
		{"null", RuleNull},
		{"\"s\"", RuleString},
		{"name", RuleSymbol},
		{"@group", RuleTypeIndicator},
		{"[1, 2,]", RuleArray},
		{"{a: 1, ..b}", RuleDictionary},
		{"obj {1: 2}", RuleObject},
		{"!{ a() }", RuleCompoundStatement},
		{"import \"x.spwn\"", RuleImport},
		{"(a, b = 5) { }", RuleMacroDefinition},
		{"#[desc(\"m\")] () { }", RuleMacroDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree, err := ParseExpression(strings.NewReader(tt.input)).Finish()
			if err != nil {
				t.Fatal(err)
			}
			wrapper := tree.Children[0].Children[0]
			if wrapper.Rule != RuleValueWrapper {
				t.Fatalf("got %v, want value", wrapper.Rule)
			}
			if got := wrapper.Children[0].Rule; got != tt.rule {
				t.Errorf("got %v, want %v", got, tt.rule)
			}
		})
	}
}

func TestParseParenExpression(t *testing.T) {
	tree, err := ParseExpression(strings.NewReader("(a + b)")).Finish()
	if err != nil {
		t.Fatal(err)
	}
	inner := tree.Children[0].Children[0]
	if inner.Rule != RuleExpression {
		t.Fatalf("got %v, want expression", inner.Rule)
	}
	if inner.Text != "(a + b)" {
		t.Errorf("text = %q", inner.Text)
	}
}

func TestParseHandle(t *testing.T) {
	tests := []struct {
		input string
		want  []Rule
		class string
	}{
		{"10g", []Rule{RuleNumber, RuleHandleClass}, "g"},
		{"?i", []Rule{RuleHandleClass}, "i"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree, err := ParseExpression(strings.NewReader(tt.input)).Finish()
			if err != nil {
				t.Fatal(err)
			}
			handle := tree.Children[0].Children[0].Children[0]
			if got := rules(handle.Children); !equalRules(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			class := handle.Children[len(handle.Children)-1]
			if class.Text != tt.class {
				t.Errorf("class = %q, want %q", class.Text, tt.class)
			}
			if len(handle.Children) == 2 && handle.Children[0].Text != "10" {
				t.Errorf("number = %q", handle.Children[0].Text)
			}
		})
	}
}

func TestParseMacroShape(t *testing.T) {
	tree, err := ParseExpression(strings.NewReader(`(a, b #[desc("x")]: @number = 5) { return a }`)).Finish()
	if err != nil {
		t.Fatal(err)
	}
	macro := tree.Children[0].Children[0].Children[0]
	if got := rules(macro.Children); !equalRules(got, []Rule{RuleMacroArgs, RuleBlock}) {
		t.Fatalf("got %v", got)
	}
	args := macro.Children[0].Children
	if len(args) != 2 {
		t.Fatalf("got %d args, want 2", len(args))
	}
	want := []Rule{RuleSymbol, RuleTag, RuleArgType, RuleExpression}
	if got := rules(args[1].Children); !equalRules(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseControlClauseIsNotMacro(t *testing.T) {
	tree := parseProgram(t, "if (a) { b() } else if c { } else { d = 1 }")
	stmt := tree.Children[0]
	want := []Rule{RuleExpression, RuleBlock, RuleBlock}
	if got := rules(stmt.Children); !equalRules(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	elseBlock := stmt.Children[2]
	if len(elseBlock.Children) != 1 || elseBlock.Children[0].Rule != RuleIf {
		t.Errorf("else if should nest an if statement, got %v", rules(elseBlock.Children))
	}
}

func TestParseMacroBlockMustShareLine(t *testing.T) {
	tree := parseProgram(t, "x = (a)\n{ b: 1 }")
	want := []Rule{RuleDefinition, RuleExpression, RuleEOI}
	if got := rules(tree.Children); !equalRules(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if containsRule(tree.Children[0], RuleMacroDefinition) {
		t.Errorf("parenthesised operand read as a macro:\n%s", tree)
	}

	tree = parseProgram(t, "m = (a) {\n    return a\n}")
	if !containsRule(tree.Children[0], RuleMacroDefinition) {
		t.Errorf("same-line block should make a macro:\n%s", tree)
	}
}

func containsRule(n *Node, rule Rule) bool {
	if n == nil {
		return false
	}
	if n.Rule == rule {
		return true
	}
	for _, child := range n.Children {
		if containsRule(child, rule) {
			return true
		}
	}
	return false
}

func TestParseMacroInsideControlClause(t *testing.T) {
	tree := parseProgram(t, "if f((x) { return x }) { }")
	if tree.Children[0].Rule != RuleIf {
		t.Fatalf("got %v", tree.Children[0].Rule)
	}
}

func TestParseSpans(t *testing.T) {
	tree := parseProgram(t, "a = 1\n\nb = !{\n  c()\n}")
	second := tree.Children[1]
	if second.Span.Start.Line != 3 || second.Span.End.Line != 5 {
		t.Errorf("span = %s-%s", second.Span.Start, second.Span.End)
	}
	if second.Text != "b = !{\n  c()\n}" {
		t.Errorf("text = %q", second.Text)
	}
}

func TestParseEmptyProgram(t *testing.T) {
	tree := parseProgram(t, "// nothing\n")
	if got := rules(tree.Children); !equalRules(got, []Rule{RuleEOI}) {
		t.Errorf("got %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"unclosed brace", "a = !{\n b()\n", 3},
		{"extra brace", "a = 1\n}", 2},
		{"mismatched", "a = [1, 2)", 1},
		{"missing value", "a = ", 1},
		{"two expressions", "a b", 1},
		{"illegal character", "a = 1\nb = ~", 2},
		{"unterminated string", "a = \"x", 1},
		{"bad dictionary", "a = {1: 2}", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProgram(strings.NewReader(tt.input)).Finish()
			if err == nil {
				t.Fatal("expected error")
			}
			var syntaxErr *Error
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("got %T, want *Error", err)
			}
			if syntaxErr.Pos.Line != tt.line {
				t.Errorf("error at line %d, want %d: %v", syntaxErr.Pos.Line, tt.line, err)
			}
		})
	}
}

func TestParseDepthLimit(t *testing.T) {
	src := strings.Repeat("[", 50) + strings.Repeat("]", 50)
	_, err := ParseExpression(strings.NewReader(src), WithMaxDepth(20)).Finish()
	var syntaxErr *Error
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("got %v, want *Error", err)
	}
	if !strings.Contains(syntaxErr.Message, "nesting") {
		t.Errorf("message = %q", syntaxErr.Message)
	}

	if _, err := ParseExpression(strings.NewReader(src)).Finish(); err != nil {
		t.Errorf("default limit rejected moderate nesting: %v", err)
	}
}

func TestParserReset(t *testing.T) {
	p := ParseProgram(strings.NewReader("a = 1"))
	if _, err := p.Finish(); err != nil {
		t.Fatal(err)
	}
	p.Reset(strings.NewReader("a = "))
	if _, err := p.Finish(); err == nil {
		t.Error("expected error after reset")
	}
}

func TestParseComments(t *testing.T) {
	p := ParseProgram(strings.NewReader("// one\na = 1 /* two */"))
	if _, err := p.Finish(); err != nil {
		t.Fatal(err)
	}
	if len(p.Comments()) != 2 {
		t.Errorf("got %d comments, want 2", len(p.Comments()))
	}
}
