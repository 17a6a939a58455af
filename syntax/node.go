package syntax

// Rule identifies the grammar production a Node instantiates.
type Rule int

const (
	RuleError Rule = iota

	// Program level
	RuleProgram
	RuleEOI
	RuleBlock

	// Statements
	RuleDefinition
	RuleCall
	RuleIf
	RuleFor
	RuleAddObject
	RuleImplement
	RuleReturn
	RuleErrorStatement
	RuleExtract
	RuleTypeDef
	RuleArrowStatement

	// Expressions
	RuleExpression
	RuleOperator
	RuleUnaryOperator
	RuleVariable

	// Values
	RuleValueWrapper
	RuleHandleID
	RuleHandleClass
	RuleNumber
	RuleBoolean
	RuleNull
	RuleString
	RuleSymbol
	RuleTypeIndicator
	RuleArray
	RuleDictionary
	RuleDictEntry
	RuleDictExtract
	RuleObject
	RuleObjectEntry
	RuleCompoundStatement
	RuleImport
	RuleMacroDefinition
	RuleMacroArgs
	RuleArgDef
	RuleArgType

	// Paths
	RuleIndex
	RuleArguments
	RuleArgument

	// Properties
	RuleTag
	RuleProperty
)

var ruleNames = map[Rule]string{
	RuleError:             "error",
	RuleProgram:           "program",
	RuleEOI:               "end-of-input",
	RuleBlock:             "block",
	RuleDefinition:        "definition",
	RuleCall:              "call",
	RuleIf:                "if",
	RuleFor:               "for",
	RuleAddObject:         "add-object",
	RuleImplement:         "implement",
	RuleReturn:            "return",
	RuleErrorStatement:    "error-statement",
	RuleExtract:           "extract",
	RuleTypeDef:           "type-def",
	RuleArrowStatement:    "arrow-statement",
	RuleExpression:        "expression",
	RuleOperator:          "operator",
	RuleUnaryOperator:     "unary-operator",
	RuleVariable:          "variable",
	RuleValueWrapper:      "value",
	RuleHandleID:          "handle-id",
	RuleHandleClass:       "handle-class",
	RuleNumber:            "number",
	RuleBoolean:           "boolean",
	RuleNull:              "null",
	RuleString:            "string",
	RuleSymbol:            "symbol",
	RuleTypeIndicator:     "type-indicator",
	RuleArray:             "array",
	RuleDictionary:        "dictionary",
	RuleDictEntry:         "dictionary-entry",
	RuleDictExtract:       "dictionary-extract",
	RuleObject:            "object",
	RuleObjectEntry:       "object-entry",
	RuleCompoundStatement: "compound-statement",
	RuleImport:            "import",
	RuleMacroDefinition:   "macro-definition",
	RuleMacroArgs:         "macro-arguments",
	RuleArgDef:            "argument-definition",
	RuleArgType:           "argument-type",
	RuleIndex:             "index",
	RuleArguments:         "argument-list",
	RuleArgument:          "argument",
	RuleTag:               "tag",
	RuleProperty:          "property",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Node is one node of the parse tree. Text is the exact source text the
// node matched.
type Node struct {
	Rule     Rule
	Span     Span
	Text     string
	Children []*Node
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) FirstChildOfRule(rule Rule) *Node {
	for _, child := range n.Children {
		if child.Rule == rule {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfRule(rule Rule) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Rule == rule {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	result := prefix + n.Rule.String()
	if showPositions {
		result += " [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]"
	}
	if len(n.Children) == 0 {
		result += " " + n.Text
	}
	result += "\n"

	for _, child := range n.Children {
		result += child.stringIndent(indent+1, showPositions)
	}
	return result
}
