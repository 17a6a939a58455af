package ast

// Expression is a flat chain of operands joined by the operators of a
// single precedence tier: Values[0] Operators[0] Values[1] ... Tighter
// tiers are nested as ParenExpression operands.
type Expression struct {
	Values    []Variable
	Operators []Operator
}

// NullExpression is the expression consisting of a single null operand.
func NullExpression() Expression {
	return Expression{Values: []Variable{{Value: Null{}}}}
}

// IsNull reports whether e is exactly NullExpression.
func (e Expression) IsNull() bool {
	if len(e.Values) != 1 || len(e.Operators) != 0 {
		return false
	}
	v := e.Values[0]
	if v.Operator != nil || len(v.Path) != 0 {
		return false
	}
	_, ok := v.Value.(Null)
	return ok
}

// AsVariable wraps the whole expression as a single operand.
func (e Expression) AsVariable() Variable {
	return Variable{Value: ParenExpression{Expression: e}}
}

// Valid reports whether every expression reachable from e has exactly one
// more operand than operators.
func (e Expression) Valid() bool {
	if len(e.Values) != len(e.Operators)+1 {
		return false
	}
	for _, v := range e.Values {
		if !v.valid() {
			return false
		}
	}
	return true
}

func (v Variable) valid() bool {
	if !validValue(v.Value) {
		return false
	}
	for _, p := range v.Path {
		switch p := p.(type) {
		case IndexPath:
			if !p.Index.Valid() {
				return false
			}
		case CallPath:
			if !validArguments(p.Args) {
				return false
			}
		}
	}
	return true
}

func validArguments(args []Argument) bool {
	for _, arg := range args {
		if !arg.Value.Valid() {
			return false
		}
	}
	return true
}

func validTag(tag Tag) bool {
	for _, prop := range tag {
		if !validArguments(prop.Args) {
			return false
		}
	}
	return true
}

func validValue(value ValueLiteral) bool {
	switch v := value.(type) {
	case ParenExpression:
		return v.Expression.Valid()
	case Array:
		for _, e := range v.Elements {
			if !e.Valid() {
				return false
			}
		}
	case Dictionary:
		return validDictDefs(v.Entries)
	case Object:
		for _, entry := range v.Entries {
			if !entry.Key.Valid() || !entry.Value.Valid() {
				return false
			}
		}
	case CompoundStatement:
		return validStatements(v.Statements)
	case Macro:
		for _, arg := range v.Args {
			if arg.Default != nil && !arg.Default.Valid() {
				return false
			}
			if arg.Type != nil && !arg.Type.Valid() {
				return false
			}
			if !validTag(arg.Properties) {
				return false
			}
		}
		return validTag(v.Properties) && validStatements(v.Body.Statements)
	}
	return true
}

func validDictDefs(defs []DictDef) bool {
	for _, def := range defs {
		switch d := def.(type) {
		case DictEntry:
			if !d.Value.Valid() {
				return false
			}
		case DictExtract:
			if !d.Value.Valid() {
				return false
			}
		}
	}
	return true
}

// Valid reports whether every expression in the program satisfies
// Expression.Valid.
func (p Program) Valid() bool {
	return validStatements(p)
}

func validStatements(stmts []Statement) bool {
	for _, stmt := range stmts {
		if !validStatement(stmt.Body) {
			return false
		}
	}
	return true
}

func validStatement(body StatementBody) bool {
	switch s := body.(type) {
	case *Definition:
		return s.Value.Valid() && validTag(s.Properties)
	case *Call:
		return s.Function.valid()
	case *ExprStatement:
		return s.Expression.Valid()
	case *Return:
		return s.Value.Valid()
	case *Implementation:
		return s.Target.valid() && validDictDefs(s.Members)
	case *If:
		return s.Condition.Valid() && validStatements(s.Body) && validStatements(s.Else)
	case *For:
		return s.Iterable.Valid() && validStatements(s.Body)
	case *ErrorRaise:
		return s.Message.Valid()
	case *Extract:
		return s.Value.Valid()
	case *AddObject:
		return s.Object.Valid()
	}
	return true
}

type Operator int

const (
	OperatorOr Operator = iota
	OperatorAnd
	OperatorEqual
	OperatorNotEqual
	OperatorRange
	OperatorMoreOrEqual
	OperatorLessOrEqual
	OperatorMore
	OperatorLess
	OperatorDivide
	OperatorMultiply
	OperatorPower
	OperatorPlus
	OperatorMinus
	OperatorModulo
	OperatorAssign
	OperatorAddAssign
	OperatorSubtractAssign
	OperatorMultiplyAssign
	OperatorDivideAssign
)

var operatorText = map[Operator]string{
	OperatorOr:             "||",
	OperatorAnd:            "&&",
	OperatorEqual:          "==",
	OperatorNotEqual:       "!=",
	OperatorRange:          "..",
	OperatorMoreOrEqual:    ">=",
	OperatorLessOrEqual:    "<=",
	OperatorMore:           ">",
	OperatorLess:           "<",
	OperatorDivide:         "/",
	OperatorMultiply:       "*",
	OperatorPower:          "^",
	OperatorPlus:           "+",
	OperatorMinus:          "-",
	OperatorModulo:         "%",
	OperatorAssign:         "=",
	OperatorAddAssign:      "+=",
	OperatorSubtractAssign: "-=",
	OperatorMultiplyAssign: "*=",
	OperatorDivideAssign:   "/=",
}

var operatorNames = map[Operator]string{
	OperatorOr:             "Or",
	OperatorAnd:            "And",
	OperatorEqual:          "Equal",
	OperatorNotEqual:       "NotEqual",
	OperatorRange:          "Range",
	OperatorMoreOrEqual:    "MoreOrEqual",
	OperatorLessOrEqual:    "LessOrEqual",
	OperatorMore:           "More",
	OperatorLess:           "Less",
	OperatorDivide:         "Divide",
	OperatorMultiply:       "Multiply",
	OperatorPower:          "Power",
	OperatorPlus:           "Plus",
	OperatorMinus:          "Minus",
	OperatorModulo:         "Modulo",
	OperatorAssign:         "Assign",
	OperatorAddAssign:      "AddAssign",
	OperatorSubtractAssign: "SubtractAssign",
	OperatorMultiplyAssign: "MultiplyAssign",
	OperatorDivideAssign:   "DivideAssign",
}

var operatorsByText = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorText))
	for op, text := range operatorText {
		m[text] = op
	}
	return m
}()

// LookupOperator maps the surface text of a binary operator to its
// Operator.
func LookupOperator(text string) (Operator, bool) {
	op, ok := operatorsByText[text]
	return op, ok
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "Unknown"
}

// Text returns the surface syntax of the operator.
func (o Operator) Text() string {
	return operatorText[o]
}

type UnaryOperator int

const (
	UnaryNot UnaryOperator = iota
	UnaryNegate
	UnaryRangeFrom
)

var unaryText = map[UnaryOperator]string{
	UnaryNot:       "!",
	UnaryNegate:    "-",
	UnaryRangeFrom: "..",
}

var unaryNames = map[UnaryOperator]string{
	UnaryNot:       "Not",
	UnaryNegate:    "Negate",
	UnaryRangeFrom: "RangeFrom",
}

func LookupUnaryOperator(text string) (UnaryOperator, bool) {
	for op, t := range unaryText {
		if t == text {
			return op, true
		}
	}
	return 0, false
}

func (o UnaryOperator) String() string {
	if name, ok := unaryNames[o]; ok {
		return name
	}
	return "Unknown"
}

func (o UnaryOperator) Text() string {
	return unaryText[o]
}

// Variable is an operand: an optional unary operator applied to a base
// value followed by a chain of member, index and call accesses.
type Variable struct {
	Operator *UnaryOperator
	Value    ValueLiteral
	Path     []Path
}

// Path is one postfix access, applied left to right.
type Path interface {
	path()
}

type MemberPath struct {
	Name string
}

func (MemberPath) path() {}

type IndexPath struct {
	Index Expression
}

func (IndexPath) path() {}

type CallPath struct {
	Args []Argument
}

func (CallPath) path() {}

// Argument is a call argument. Name is nil for positional arguments.
type Argument struct {
	Name  *string
	Value Expression
}
