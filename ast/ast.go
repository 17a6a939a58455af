// Package ast defines the structured representation of a SPWN program.
//
// A Program is built once per source file by package parser and handed to
// the compiler back end. Every node is owned by exactly one parent; there
// are no back references.
package ast

// Program is the ordered statement list of one source file.
type Program []Statement

// LineSpan is the first and last source line of a statement, 1-based.
type LineSpan struct {
	Start int
	End   int
}

type Statement struct {
	Body StatementBody
	// Arrow marks a statement that runs in a forked context.
	Arrow bool
	Line  LineSpan
}

// StatementBody is implemented by every statement variant.
type StatementBody interface {
	statementBody()
}

// Definition binds Value to Symbol. Symbol is "*" for the wildcard form,
// which spreads the fields of Value into the enclosing scope.
type Definition struct {
	Symbol     string
	Value      Expression
	Properties Tag
}

func (*Definition) statementBody() {}

// Call is a statement consisting of a single invocation. The path of
// Function ends in a CallPath.
type Call struct {
	Function Variable
}

func (*Call) statementBody() {}

type ExprStatement struct {
	Expression Expression
}

func (*ExprStatement) statementBody() {}

// TypeDef declares a new type name.
type TypeDef struct {
	Name string
}

func (*TypeDef) statementBody() {}

// Return carries the returned value. A bare return holds NullExpression.
type Return struct {
	Value Expression
}

func (*Return) statementBody() {}

// Implementation attaches the members to the type denoted by Target.
type Implementation struct {
	Target  Variable
	Members []DictDef
}

func (*Implementation) statementBody() {}

// If has a nil Else when no else branch was written.
type If struct {
	Condition Expression
	Body      []Statement
	Else      []Statement
}

func (*If) statementBody() {}

type For struct {
	Symbol   string
	Iterable Expression
	Body     []Statement
}

func (*For) statementBody() {}

type ErrorRaise struct {
	Message Expression
}

func (*ErrorRaise) statementBody() {}

type Extract struct {
	Value Expression
}

func (*Extract) statementBody() {}

type AddObject struct {
	Object Expression
}

func (*AddObject) statementBody() {}

// EndOfInput marks the end of the program. The tree builder also uses it
// as the placeholder for constructs it does not support.
type EndOfInput struct{}

func (*EndOfInput) statementBody() {}
