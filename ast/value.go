package ast

// ValueLiteral is implemented by every base value of a Variable.
type ValueLiteral interface {
	valueLiteral()
}

type HandleClass int

const (
	HandleGroup HandleClass = iota
	HandleColor
	HandleItem
	HandleBlock
)

var handleClassLetters = map[HandleClass]string{
	HandleGroup: "g",
	HandleColor: "c",
	HandleItem:  "i",
	HandleBlock: "b",
}

var handleClassNames = map[HandleClass]string{
	HandleGroup: "Group",
	HandleColor: "Color",
	HandleItem:  "Item",
	HandleBlock: "Block",
}

// LookupHandleClass maps a class suffix such as "g" to its HandleClass.
func LookupHandleClass(letter string) (HandleClass, bool) {
	for class, l := range handleClassLetters {
		if l == letter {
			return class, true
		}
	}
	return 0, false
}

func (c HandleClass) String() string {
	if name, ok := handleClassNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Letter returns the suffix used in source, e.g. "g" for HandleGroup.
func (c HandleClass) Letter() string {
	return handleClassLetters[c]
}

// HandleID names a group, color, item or block. When Unspecified is set
// the ID is assigned later and Number is 0.
type HandleID struct {
	Number      uint16
	Unspecified bool
	Class       HandleClass
}

func (HandleID) valueLiteral() {}

type Number float64

func (Number) valueLiteral() {}

type Symbol string

func (Symbol) valueLiteral() {}

type Bool bool

func (Bool) valueLiteral() {}

// Str is string content with the surrounding quotes removed. Escape
// sequences are kept as written.
type Str string

func (Str) valueLiteral() {}

// Import references another source file by a path relative to the
// importing file.
type Import struct {
	Path string
}

func (Import) valueLiteral() {}

// TypeIndicator is a type name written as @name. Name excludes the @.
type TypeIndicator string

func (TypeIndicator) valueLiteral() {}

type Null struct{}

func (Null) valueLiteral() {}

type CompoundStatement struct {
	Statements []Statement
}

func (CompoundStatement) valueLiteral() {}

type Dictionary struct {
	Entries []DictDef
}

func (Dictionary) valueLiteral() {}

// DictDef is a dictionary member: a named entry or a spread of another
// dictionary.
type DictDef interface {
	dictDef()
}

type DictEntry struct {
	Name  string
	Value Expression
}

func (DictEntry) dictDef() {}

type DictExtract struct {
	Value Expression
}

func (DictExtract) dictDef() {}

type ParenExpression struct {
	Expression Expression
}

func (ParenExpression) valueLiteral() {}

type Array struct {
	Elements []Expression
}

func (Array) valueLiteral() {}

// Object is a trigger object literal mapping object keys to values.
type Object struct {
	Entries []ObjectEntry
}

func (Object) valueLiteral() {}

type ObjectEntry struct {
	Key   Expression
	Value Expression
}

type Macro struct {
	Args       []ArgDef
	Body       CompoundStatement
	Properties Tag
}

func (Macro) valueLiteral() {}

// ArgDef is a macro parameter. Default and Type are nil when omitted.
type ArgDef struct {
	Name       string
	Default    *Expression
	Properties Tag
	Type       *Expression
}

// Resolved carries a value computed by a later compilation stage. The
// tree builder never produces it.
type Resolved struct {
	Value any
}

func (Resolved) valueLiteral() {}
