package syntax

import (
	"fmt"
	"sort"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIllegal
	TokenWhitespace
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenNumber
	TokenString
	TokenHandle
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords
	TokenIf
	TokenElse
	TokenFor
	TokenIn
	TokenReturn
	TokenImpl
	TokenImport
	TokenObj
	TokenAdd
	TokenError
	TokenExtract
	TokenType

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenDotDot
	TokenColon
	TokenAt
	TokenHashBracket
	TokenArrow
	TokenBangBrace

	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenCaret
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:          "EOF",
	TokenIllegal:      "Illegal",
	TokenWhitespace:   "Whitespace",
	TokenComment:      "Comment",
	TokenLineComment:  "LineComment",
	TokenIdent:        "Identifier",
	TokenNumber:       "Number",
	TokenString:       "String",
	TokenHandle:       "Handle",
	TokenTrue:         "true",
	TokenFalse:        "false",
	TokenNull:         "null",
	TokenIf:           "if",
	TokenElse:         "else",
	TokenFor:          "for",
	TokenIn:           "in",
	TokenReturn:       "return",
	TokenImpl:         "impl",
	TokenImport:       "import",
	TokenObj:          "obj",
	TokenAdd:          "add",
	TokenError:        "error",
	TokenExtract:      "extract",
	TokenType:         "type",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenLBrace:       "{",
	TokenRBrace:       "}",
	TokenLBracket:     "[",
	TokenRBracket:     "]",
	TokenSemicolon:    ";",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenDotDot:       "..",
	TokenColon:        ":",
	TokenAt:           "@",
	TokenHashBracket:  "#[",
	TokenArrow:        "->",
	TokenBangBrace:    "!{",
	TokenAssign:       "=",
	TokenEQ:           "==",
	TokenNE:           "!=",
	TokenLT:           "<",
	TokenLE:           "<=",
	TokenGT:           ">",
	TokenGE:           ">=",
	TokenAnd:          "&&",
	TokenOr:           "||",
	TokenNot:          "!",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenPercent:      "%",
	TokenCaret:        "^",
	TokenPlusAssign:   "+=",
	TokenMinusAssign:  "-=",
	TokenStarAssign:   "*=",
	TokenSlashAssign:  "/=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywords = map[string]TokenKind{
	"true":    TokenTrue,
	"false":   TokenFalse,
	"null":    TokenNull,
	"if":      TokenIf,
	"else":    TokenElse,
	"for":     TokenFor,
	"in":      TokenIn,
	"return":  TokenReturn,
	"impl":    TokenImpl,
	"import":  TokenImport,
	"obj":     TokenObj,
	"add":     TokenAdd,
	"error":   TokenError,
	"extract": TokenExtract,
	"type":    TokenType,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// Keywords returns the reserved words in sorted order.
func Keywords() []string {
	result := make([]string, 0, len(keywords))
	for word := range keywords {
		result = append(result, word)
	}
	sort.Strings(result)
	return result
}
