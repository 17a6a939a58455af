// Package syntax tokenizes SPWN source and produces its parse tree.
//
// # Overview
//
// The parse tree is generic: every node carries the grammar rule that
// produced it, the exact source text it matched, and its ordered children.
// The tree builder in package parser consumes this tree and never looks at
// tokens directly.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │ (parse tree)│
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// # Statements
//
// Statements are separated by newlines or semicolons. A binary operator,
// an index or a call must start on the line of its left operand, so
//
//	a = b
//	(c)
//
// is two statements. A statement prefixed with -> is an arrow statement;
// the flag is preserved for the compiler.
//
// # Precedence
//
// Binary operators bind in these tiers, loosest first:
//
//	=  +=  -=  *=  /=
//	||
//	&&
//	==  !=  <  <=  >  >=
//	..
//	+  -
//	*  /  %
//	^
//
// A tier that applies at least one operator becomes one expression node
// whose children alternate operand, operator, operand. An operand that is
// itself a tighter tier is a nested expression node. Every expression
// position in the tree holds an expression node, even for a lone operand.
//
// # Errors
//
// The parser is not error tolerant. The first illegal token or unexpected
// token aborts the parse and Finish returns an *Error carrying the
// position. Nesting deeper than the configured limit (DefaultMaxDepth
// unless WithMaxDepth is given) is reported the same way.
//
// # Example Usage
//
//	p := syntax.ParseProgram(strings.NewReader("a = 10g\n-> a.move(x = 5)"),
//		syntax.WithFile("main.spwn"))
//	tree, err := p.Finish()
//
// The complete grammar is documented in EBNF in package grammar.
package syntax
