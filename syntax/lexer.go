package syntax

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		return l.scanWhitespace(startPos)
	}

	if isLetter(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}

	if ch == '"' {
		return l.scanString(startPos)
	}

	if ch == '?' {
		return l.scanUnspecifiedHandle(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for {
		if l.pos >= len(l.input) {
			return l.token(TokenIllegal, start)
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return l.token(TokenComment, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isLetterOrDigit(l.peek()) {
		l.advance()
	}
	tok := l.token(TokenIdent, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

// scanNumber scans a decimal number. A number immediately followed by a
// handle class letter (g, c, i, b) is a handle literal such as 10g.
func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		return l.token(TokenNumber, start)
	}

	if isHandleClass(l.peek()) && !isLetterOrDigit(l.peekN(1)) {
		l.advance()
		return l.token(TokenHandle, start)
	}

	return l.token(TokenNumber, start)
}

func (l *Lexer) scanUnspecifiedHandle(start Position) Token {
	l.advance()
	if isHandleClass(l.peek()) && !isLetterOrDigit(l.peekN(1)) {
		l.advance()
		return l.token(TokenHandle, start)
	}
	return l.token(TokenIllegal, start)
}

// scanString scans a double-quoted string. A backslash keeps the following
// byte inside the literal; no escape is decoded.
func (l *Lexer) scanString(start Position) Token {
	l.advance()
	for l.peek() != '"' {
		if l.pos >= len(l.input) || l.peek() == '\n' {
			return l.token(TokenIllegal, start)
		}
		if l.peek() == '\\' && l.peekN(1) != 0 && l.peekN(1) != '\n' {
			l.advance()
		}
		l.advance()
	}
	l.advance()
	return l.token(TokenString, start)
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case '[':
		l.advance()
		return l.token(TokenLBracket, start)
	case ']':
		l.advance()
		return l.token(TokenRBracket, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case ':':
		l.advance()
		return l.token(TokenColon, start)
	case '@':
		l.advance()
		return l.token(TokenAt, start)
	case '^':
		l.advance()
		return l.token(TokenCaret, start)
	case '%':
		l.advance()
		return l.token(TokenPercent, start)

	case '.':
		if l.peekN(1) == '.' {
			l.advanceN(2)
			return l.token(TokenDotDot, start)
		}
		l.advance()
		return l.token(TokenDot, start)

	case '#':
		if l.peekN(1) == '[' {
			l.advanceN(2)
			return l.token(TokenHashBracket, start)
		}

	case '=':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenEQ, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		if l.peekN(1) == '{' {
			l.advanceN(2)
			return l.token(TokenBangBrace, start)
		}
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}

	case '+':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPlusAssign, start)
		}
		l.advance()
		return l.token(TokenPlus, start)

	case '-':
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenMinusAssign, start)
		}
		l.advance()
		return l.token(TokenMinus, start)

	case '*':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenStarAssign, start)
		}
		l.advance()
		return l.token(TokenStar, start)

	case '/':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenSlashAssign, start)
		}
		l.advance()
		return l.token(TokenSlash, start)
	}

	l.advance()
	return l.token(TokenIllegal, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isLetterOrDigit(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

func isHandleClass(ch byte) bool {
	return ch == 'g' || ch == 'c' || ch == 'i' || ch == 'b'
}
