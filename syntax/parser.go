package syntax

import (
	"fmt"
	"io"
)

// DefaultMaxDepth bounds how deeply statements and expressions may nest.
const DefaultMaxDepth = 256

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// Error reports input rejected by the grammar.
type Error struct {
	Message string
	Pos     Position
	Got     *Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type parseFunc func(*Parser) *Node

type Parser struct {
	file     string
	maxDepth int
	reader   io.Reader
	input    []byte
	lexer    *Lexer
	tokens   []Token
	comments []Token
	pos      int
	depth    int
	noMacro  bool
	entry    parseFunc
	err      *Error
}

func ParseProgram(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		maxDepth: DefaultMaxDepth,
		reader:   r,
		entry:    (*Parser).parseProgram,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func ParseExpression(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		maxDepth: DefaultMaxDepth,
		reader:   r,
		entry:    (*Parser).parseStandaloneExpression,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Comments() []Token {
	return p.comments
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	p.input = data
	return nil
}

// Finish reads the whole input and parses it. The returned error is a
// *Error when the grammar rejects the input.
func (p *Parser) Finish() (*Node, error) {
	if err := p.readAll(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	p.lexer = NewLexer(p.input, p.file)
	p.tokens = nil
	p.comments = nil
	p.pos = 0
	p.depth = 0
	p.noMacro = false
	p.err = nil
	p.tokenize()
	if p.err != nil {
		return nil, p.err
	}
	result := p.entry(p)
	if p.err != nil {
		return nil, p.err
	}
	return result, nil
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.lexer = nil
	p.tokens = nil
	p.comments = nil
	p.pos = 0
	p.err = nil
}

func (p *Parser) tokenize() {
	for {
		tok := p.lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenComment, TokenLineComment:
			p.comments = append(p.comments, tok)
			continue
		case TokenIllegal:
			p.err = &Error{
				Message: fmt.Sprintf("unexpected %q", tok.Literal),
				Pos:     tok.Span.Start,
				Got:     &tok,
			}
			return
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// onNewLine reports whether the next token starts a line below the
// previous token.
func (p *Parser) onNewLine() bool {
	if p.pos == 0 || p.pos >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos].Span.Start.Line > p.tokens[p.pos-1].Span.End.Line
}

func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	p.fail(fmt.Sprintf("expected %q, got %s", kind.String(), describe(tok)))
	return nil
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end to break if no progress was made.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

// fail records the first syntax error and skips to the end of input so
// every enclosing loop terminates.
func (p *Parser) fail(msg string) *Node {
	tok := p.peek()
	if p.err == nil {
		p.err = &Error{Message: msg, Pos: tok.Span.Start, Got: &tok}
	}
	if len(p.tokens) > 0 {
		p.pos = len(p.tokens) - 1
	}
	return &Node{Rule: RuleError, Span: tok.Span}
}

func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.fail(fmt.Sprintf("nesting deeper than %d levels", p.maxDepth))
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// allowMacros lifts the control-clause restriction inside brackets and
// returns a function restoring the previous state.
func (p *Parser) allowMacros() func() {
	saved := p.noMacro
	p.noMacro = false
	return func() { p.noMacro = saved }
}

func (p *Parser) startNode(rule Rule) *Node {
	return &Node{
		Rule: rule,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		n.Span.End = p.tokens[p.pos-1].Span.End
	}
	if n.Span.End.Offset < n.Span.Start.Offset {
		n.Span.End = n.Span.Start
	}
	if n.Span.End.Offset <= len(p.input) {
		n.Text = string(p.input[n.Span.Start.Offset:n.Span.End.Offset])
	}
	return n
}

func (p *Parser) leaf(rule Rule, tok Token) *Node {
	return &Node{Rule: rule, Span: tok.Span, Text: tok.Literal}
}

func describe(tok Token) string {
	if tok.Kind == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

func (p *Parser) parseProgram() *Node {
	node := p.startNode(RuleProgram)
	p.parseStatementsInto(node, TokenEOF)
	eoi := p.peek()
	result := p.finishNode(node)
	result.AddChild(&Node{Rule: RuleEOI, Span: Span{Start: eoi.Span.Start, End: eoi.Span.Start}})
	return result
}

func (p *Parser) parseStandaloneExpression() *Node {
	node := p.parseExpression()
	if !p.check(TokenEOF) {
		return p.fail(fmt.Sprintf("expected end of input, got %s", describe(p.peek())))
	}
	return node
}

func (p *Parser) parseStatementsInto(node *Node, end TokenKind) {
	for !p.check(end) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		node.AddChild(p.parseStatement())
		if !progress() {
			break
		}
	}
}

func (p *Parser) parseStatement() *Node {
	if !p.enter() {
		return &Node{Rule: RuleError}
	}
	defer p.leave()

	var node *Node
	if p.check(TokenArrow) {
		node = p.startNode(RuleArrowStatement)
		p.advance()
		node.AddChild(p.parseStatementBody())
		node = p.finishNode(node)
	} else {
		node = p.parseStatementBody()
	}

	switch {
	case p.check(TokenSemicolon):
		p.advance()
	case p.check(TokenEOF), p.check(TokenRBrace), p.onNewLine():
	default:
		return p.fail(fmt.Sprintf("expected end of statement, got %s", describe(p.peek())))
	}
	return node
}

func (p *Parser) parseStatementBody() *Node {
	switch p.peek().Kind {
	case TokenIf:
		return p.parseIf()
	case TokenFor:
		return p.parseFor()
	case TokenReturn:
		return p.parseReturn()
	case TokenImpl:
		return p.parseImplement()
	case TokenAdd:
		return p.parseKeywordStatement(RuleAddObject)
	case TokenError:
		return p.parseKeywordStatement(RuleErrorStatement)
	case TokenExtract:
		return p.parseKeywordStatement(RuleExtract)
	case TokenType:
		return p.parseTypeDef()
	case TokenIdent, TokenStar:
		if p.peekN(1).Kind == TokenAssign {
			return p.parseDefinition()
		}
	}
	return p.parseExpressionStatement()
}

// parseDefinition parses `name = expr` or the wildcard form `* = expr`.
// The wildcard form has no symbol child. Trailing property tags must
// stay on the definition's line.
func (p *Parser) parseDefinition() *Node {
	node := p.startNode(RuleDefinition)
	if p.check(TokenStar) {
		p.advance()
	} else {
		tok := p.advance()
		node.AddChild(p.leaf(RuleSymbol, tok))
	}
	p.expect(TokenAssign)
	node.AddChild(p.parseExpression())
	for p.check(TokenHashBracket) && !p.onNewLine() {
		node.AddChild(p.parseTag())
	}
	return p.finishNode(node)
}

func (p *Parser) parseExpressionStatement() *Node {
	expr := p.parseExpression()
	if call := asCall(expr); call != nil {
		return call
	}
	return expr
}

// asCall turns a lone variable ending in an argument list into a call
// statement.
func asCall(expr *Node) *Node {
	if expr.Rule != RuleExpression || len(expr.Children) != 1 {
		return nil
	}
	v := expr.Children[0]
	if v.Rule != RuleVariable || len(v.Children) < 2 {
		return nil
	}
	if v.Children[0].Rule == RuleUnaryOperator {
		return nil
	}
	if v.Children[len(v.Children)-1].Rule != RuleArguments {
		return nil
	}
	return &Node{Rule: RuleCall, Span: expr.Span, Text: expr.Text, Children: []*Node{v}}
}

func (p *Parser) parseControlExpression() *Node {
	saved := p.noMacro
	p.noMacro = true
	defer func() { p.noMacro = saved }()
	return p.parseExpression()
}

func (p *Parser) parseIf() *Node {
	node := p.startNode(RuleIf)
	p.expect(TokenIf)
	node.AddChild(p.parseControlExpression())
	node.AddChild(p.parseBlock())
	if p.check(TokenElse) {
		p.advance()
		if p.check(TokenIf) {
			block := p.startNode(RuleBlock)
			if p.enter() {
				block.AddChild(p.parseIf())
			}
			p.leave()
			node.AddChild(p.finishNode(block))
		} else {
			node.AddChild(p.parseBlock())
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseFor() *Node {
	node := p.startNode(RuleFor)
	p.expect(TokenFor)
	if tok := p.expect(TokenIdent); tok != nil {
		node.AddChild(p.leaf(RuleSymbol, *tok))
	}
	p.expect(TokenIn)
	node.AddChild(p.parseControlExpression())
	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseReturn() *Node {
	node := p.startNode(RuleReturn)
	p.expect(TokenReturn)
	if !p.match(TokenEOF, TokenRBrace, TokenSemicolon) && !p.onNewLine() {
		node.AddChild(p.parseExpression())
	}
	return p.finishNode(node)
}

func (p *Parser) parseImplement() *Node {
	node := p.startNode(RuleImplement)
	p.expect(TokenImpl)
	saved := p.noMacro
	p.noMacro = true
	node.AddChild(p.parseVariable())
	p.noMacro = saved
	node.AddChild(p.parseDictionary())
	return p.finishNode(node)
}

func (p *Parser) parseKeywordStatement(rule Rule) *Node {
	node := p.startNode(rule)
	p.advance()
	node.AddChild(p.parseExpression())
	return p.finishNode(node)
}

func (p *Parser) parseTypeDef() *Node {
	node := p.startNode(RuleTypeDef)
	p.expect(TokenType)
	node.AddChild(p.parseTypeIndicator())
	return p.finishNode(node)
}

func (p *Parser) parseBlock() *Node {
	defer p.allowMacros()()
	node := p.startNode(RuleBlock)
	p.expect(TokenLBrace)
	p.parseStatementsInto(node, TokenRBrace)
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

// Binary operator tiers from loosest to tightest binding. Each tier with
// at least one operator becomes its own expression node.
var precedenceTiers = [][]TokenKind{
	{TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign},
	{TokenOr},
	{TokenAnd},
	{TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE},
	{TokenDotDot},
	{TokenPlus, TokenMinus},
	{TokenStar, TokenSlash, TokenPercent},
	{TokenCaret},
}

func (p *Parser) parseExpression() *Node {
	return p.parseExpressionFrom(0)
}

// parseExpressionFrom parses an expression starting at the given tier and
// always returns an expression node.
func (p *Parser) parseExpressionFrom(tier int) *Node {
	if !p.enter() {
		return &Node{Rule: RuleError}
	}
	defer p.leave()

	node := p.parseTier(tier)
	if node.Rule == RuleExpression {
		return node
	}
	return &Node{Rule: RuleExpression, Span: node.Span, Text: node.Text, Children: []*Node{node}}
}

func (p *Parser) parseTier(tier int) *Node {
	if tier >= len(precedenceTiers) {
		return p.parseVariable()
	}
	start := p.peek()
	left := p.parseTier(tier + 1)
	if !p.matchOperator(tier) {
		return left
	}

	node := &Node{Rule: RuleExpression, Span: Span{Start: start.Span.Start}}
	node.AddChild(left)
	for p.matchOperator(tier) {
		progress := p.mustProgress()
		tok := p.advance()
		node.AddChild(p.leaf(RuleOperator, tok))
		node.AddChild(p.parseTier(tier + 1))
		if !progress() {
			break
		}
	}
	return p.finishNode(node)
}

func (p *Parser) matchOperator(tier int) bool {
	return !p.onNewLine() && p.match(precedenceTiers[tier]...)
}

func (p *Parser) parseVariable() *Node {
	node := p.startNode(RuleVariable)
	if p.match(TokenNot, TokenMinus, TokenDotDot) {
		tok := p.advance()
		node.AddChild(p.leaf(RuleUnaryOperator, tok))
	}
	node.AddChild(p.parseValue())
	p.parsePath(node)
	return p.finishNode(node)
}

func (p *Parser) parsePath(node *Node) {
	for {
		progress := p.mustProgress()
		switch {
		case p.check(TokenDot):
			p.advance()
			if tok := p.expect(TokenIdent); tok != nil {
				node.AddChild(p.leaf(RuleSymbol, *tok))
			}
		case p.check(TokenLBracket) && !p.onNewLine():
			node.AddChild(p.parseIndex())
		case p.check(TokenLParen) && !p.onNewLine():
			node.AddChild(p.parseArguments())
		default:
			return
		}
		if !progress() {
			return
		}
	}
}

func (p *Parser) parseIndex() *Node {
	defer p.allowMacros()()
	node := p.startNode(RuleIndex)
	p.expect(TokenLBracket)
	node.AddChild(p.parseExpression())
	p.expect(TokenRBracket)
	return p.finishNode(node)
}

func (p *Parser) parseArguments() *Node {
	defer p.allowMacros()()
	node := p.startNode(RuleArguments)
	p.expect(TokenLParen)
	p.parseList(node, TokenRParen, p.parseArgument)
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseArgument() *Node {
	node := p.startNode(RuleArgument)
	if p.check(TokenIdent) && p.peekN(1).Kind == TokenAssign {
		tok := p.advance()
		node.AddChild(p.leaf(RuleSymbol, tok))
		p.advance()
	}
	node.AddChild(p.parseExpression())
	return p.finishNode(node)
}

// parseList parses comma separated elements up to the closing token. A
// trailing comma is allowed.
func (p *Parser) parseList(node *Node, end TokenKind, element func() *Node) {
	for !p.check(end) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(element())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}
}

func (p *Parser) parseValue() *Node {
	if !p.enter() {
		return &Node{Rule: RuleError}
	}
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case TokenNumber:
		return p.wrapValue(p.leaf(RuleNumber, p.advance()))
	case TokenHandle:
		return p.wrapValue(p.parseHandle())
	case TokenTrue, TokenFalse:
		return p.wrapValue(p.leaf(RuleBoolean, p.advance()))
	case TokenNull:
		return p.wrapValue(p.leaf(RuleNull, p.advance()))
	case TokenString:
		return p.wrapValue(p.leaf(RuleString, p.advance()))
	case TokenIdent:
		return p.wrapValue(p.leaf(RuleSymbol, p.advance()))
	case TokenAt:
		return p.wrapValue(p.parseTypeIndicator())
	case TokenLBracket:
		return p.wrapValue(p.parseArray())
	case TokenLBrace:
		return p.wrapValue(p.parseDictionary())
	case TokenObj:
		return p.wrapValue(p.parseObject())
	case TokenBangBrace:
		return p.wrapValue(p.parseCompoundStatement())
	case TokenImport:
		return p.wrapValue(p.parseImport())
	case TokenHashBracket:
		return p.wrapValue(p.parseMacro())
	case TokenLParen:
		if p.isMacro() {
			return p.wrapValue(p.parseMacro())
		}
		return p.parseParenExpression()
	}
	return p.fail(fmt.Sprintf("expected value, got %s", describe(tok)))
}

func (p *Parser) wrapValue(inner *Node) *Node {
	return &Node{Rule: RuleValueWrapper, Span: inner.Span, Text: inner.Text, Children: []*Node{inner}}
}

// parseHandle splits a handle token such as 10g or ?g into its number and
// class parts.
func (p *Parser) parseHandle() *Node {
	tok := p.advance()
	node := p.leaf(RuleHandleID, tok)
	last := len(tok.Literal) - 1
	classStart := tok.Span.Start
	classStart.Offset += last
	classStart.Column += last
	class := &Node{
		Rule: RuleHandleClass,
		Span: Span{Start: classStart, End: tok.Span.End},
		Text: tok.Literal[last:],
	}
	if tok.Literal[0] != '?' {
		node.AddChild(&Node{
			Rule: RuleNumber,
			Span: Span{Start: tok.Span.Start, End: classStart},
			Text: tok.Literal[:last],
		})
	}
	node.AddChild(class)
	return node
}

func (p *Parser) parseTypeIndicator() *Node {
	node := p.startNode(RuleTypeIndicator)
	p.expect(TokenAt)
	p.expect(TokenIdent)
	return p.finishNode(node)
}

func (p *Parser) parseArray() *Node {
	defer p.allowMacros()()
	node := p.startNode(RuleArray)
	p.expect(TokenLBracket)
	p.parseList(node, TokenRBracket, p.parseExpression)
	p.expect(TokenRBracket)
	return p.finishNode(node)
}

func (p *Parser) parseDictionary() *Node {
	defer p.allowMacros()()
	node := p.startNode(RuleDictionary)
	p.expect(TokenLBrace)
	p.parseList(node, TokenRBrace, p.parseDictEntry)
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseDictEntry() *Node {
	if p.check(TokenDotDot) {
		node := p.startNode(RuleDictExtract)
		p.advance()
		node.AddChild(p.parseExpression())
		return p.finishNode(node)
	}
	node := p.startNode(RuleDictEntry)
	if tok := p.expect(TokenIdent); tok != nil {
		node.AddChild(p.leaf(RuleSymbol, *tok))
	}
	p.expect(TokenColon)
	node.AddChild(p.parseExpression())
	return p.finishNode(node)
}

func (p *Parser) parseObject() *Node {
	defer p.allowMacros()()
	node := p.startNode(RuleObject)
	p.expect(TokenObj)
	p.expect(TokenLBrace)
	p.parseList(node, TokenRBrace, p.parseObjectEntry)
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseObjectEntry() *Node {
	node := p.startNode(RuleObjectEntry)
	node.AddChild(p.parseExpressionFrom(1))
	p.expect(TokenColon)
	node.AddChild(p.parseExpression())
	return p.finishNode(node)
}

func (p *Parser) parseCompoundStatement() *Node {
	defer p.allowMacros()()
	node := p.startNode(RuleCompoundStatement)
	p.expect(TokenBangBrace)
	p.parseStatementsInto(node, TokenRBrace)
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseImport() *Node {
	node := p.startNode(RuleImport)
	p.expect(TokenImport)
	if tok := p.expect(TokenString); tok != nil {
		node.AddChild(p.leaf(RuleString, *tok))
	}
	return p.finishNode(node)
}

func (p *Parser) parseParenExpression() *Node {
	defer p.allowMacros()()
	start := p.peek()
	p.expect(TokenLParen)
	expr := p.parseExpression()
	p.expect(TokenRParen)
	expr.Span.Start = start.Span.Start
	return p.finishNode(expr)
}

// isMacro reports whether the parenthesis at the current position opens a
// macro parameter list, that is, its matching ')' is followed by '{' on the
// same line.
func (p *Parser) isMacro() bool {
	if p.noMacro {
		return false
	}
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case TokenLParen, TokenLBracket, TokenLBrace, TokenBangBrace, TokenHashBracket:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Kind == TokenLBrace &&
					p.tokens[i+1].Span.Start.Line == p.tokens[i].Span.End.Line
			}
		case TokenEOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseMacro() *Node {
	defer p.allowMacros()()
	node := p.startNode(RuleMacroDefinition)
	for p.check(TokenHashBracket) {
		node.AddChild(p.parseTag())
	}

	args := p.startNode(RuleMacroArgs)
	p.expect(TokenLParen)
	p.parseList(args, TokenRParen, p.parseArgDef)
	p.expect(TokenRParen)
	node.AddChild(p.finishNode(args))

	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

// parseArgDef parses `name #[props] : type = default`, every part after
// the name being optional.
func (p *Parser) parseArgDef() *Node {
	node := p.startNode(RuleArgDef)
	if tok := p.expect(TokenIdent); tok != nil {
		node.AddChild(p.leaf(RuleSymbol, *tok))
	}
	for p.check(TokenHashBracket) {
		node.AddChild(p.parseTag())
	}
	if p.check(TokenColon) {
		typ := p.startNode(RuleArgType)
		p.advance()
		typ.AddChild(p.parseExpressionFrom(1))
		node.AddChild(p.finishNode(typ))
	}
	if p.check(TokenAssign) {
		p.advance()
		node.AddChild(p.parseExpression())
	}
	return p.finishNode(node)
}

func (p *Parser) parseTag() *Node {
	defer p.allowMacros()()
	node := p.startNode(RuleTag)
	p.expect(TokenHashBracket)
	p.parseList(node, TokenRBracket, p.parseProperty)
	p.expect(TokenRBracket)
	return p.finishNode(node)
}

// parseProperty parses `name` or `name(args)`. The argument list child is
// always present, possibly empty.
func (p *Parser) parseProperty() *Node {
	node := p.startNode(RuleProperty)
	tok := p.expect(TokenIdent)
	if tok == nil {
		return p.finishNode(node)
	}
	node.AddChild(p.leaf(RuleSymbol, *tok))
	if p.check(TokenLParen) {
		node.AddChild(p.parseArguments())
	} else {
		node.AddChild(&Node{Rule: RuleArguments, Span: Span{Start: tok.Span.End, End: tok.Span.End}})
	}
	return p.finishNode(node)
}
