package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is an expression node. The set of implementations is closed.
type Expr interface {
	String() string
	expr()
}

// Stmt is a statement node. The set of implementations is closed.
type Stmt interface {
	String() string
	stmt()
}

type literalNode struct {
	value Value
}

func (n literalNode) String() string {
	if s, ok := n.value.(StringValue); ok {
		return strconv.Quote(string(s))
	}
	return n.value.String()
}

type unaryNode struct {
	op    Token
	right Expr
}

func (n unaryNode) String() string {
	return "(" + n.op.Lexeme + " " + n.right.String() + ")"
}

type binaryNode struct {
	left  Expr
	op    Token
	right Expr
}

func (n binaryNode) String() string {
	return "(" + n.op.Lexeme + " " + n.left.String() + " " + n.right.String() + ")"
}

type groupingNode struct {
	inner Expr
}

func (n groupingNode) String() string {
	return "(group " + n.inner.String() + ")"
}

type variableNode struct {
	name Token
}

func (n variableNode) String() string {
	return n.name.Lexeme
}

type assignmentNode struct {
	name  Token
	value Expr
}

func (n assignmentNode) String() string {
	return "(= " + n.name.Lexeme + " " + n.value.String() + ")"
}

func (literalNode) expr() {}
func (unaryNode) expr() {}
func (binaryNode) expr() {}
func (groupingNode) expr() {}
func (variableNode) expr() {}
func (assignmentNode) expr() {}

type varNode struct {
	name        Token
	initializer Expr // nil when absent
}

func (n varNode) String() string {
	if n.initializer == nil {
		return "(var " + n.name.Lexeme + ")"
	}
	return "(var " + n.name.Lexeme + " " + n.initializer.String() + ")"
}

type expressionNode struct {
	expression Expr
}

func (n expressionNode) String() string {
	return "(expr " + n.expression.String() + ")"
}

type printNode struct {
	expression Expr
}

func (n printNode) String() string {
	return "(print " + n.expression.String() + ")"
}

type blockNode struct {
	statements []Stmt
}

func (n blockNode) String() string {
	parts := []string{"block"}
	for _, stmt := range n.statements {
		if stmt != nil {
			parts = append(parts, stmt.String())
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (varNode) stmt() {}
func (expressionNode) stmt() {}
func (printNode) stmt() {}
func (blockNode) stmt() {}

type parseError struct {
	reason string
	tok    Token
}

func (e parseError) Error() string {
	if e.tok.Kind == EOF {
		return fmt.Sprintf("Parse error [line %d] at end: %s", e.tok.Line, e.reason)
	}
	return fmt.Sprintf("Parse error [line %d] at '%s': %s", e.tok.Line, e.tok.Lexeme, e.reason)
}

type parser struct {
	tokens   []Token
	index    int
	reporter *Reporter
}

func newParser(tokens []Token, r *Reporter) parser {
	// the grammar relies on a trailing EOF
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, Token{Kind: EOF, Line: line})
	}

	return parser{
		tokens:   tokens,
		reporter: r,
	}
}

// ParseTokens parses a whole program. A statement that fails to parse is
// reported to r and appears as nil in the result.
func ParseTokens(tokens []Token, r *Reporter) []Stmt {
	p := newParser(tokens, r)
	return p.parse()
}

// ParseExpression parses tokens as a single expression followed by EOF.
func ParseExpression(tokens []Token, r *Reporter) (Expr, error) {
	p := newParser(tokens, r)

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.isEOF() {
		return nil, p.error(p.peek(), "Expect end of expression.")
	}
	return expr, nil
}

func (p *parser) isEOF() bool {
	return p.peek().Kind == EOF
}

func (p *parser) peek() Token {
	return p.tokens[p.index]
}

func (p *parser) previous() Token {
	return p.tokens[p.index-1]
}

func (p *parser) next() Token {
	tok := p.peek()
	if !p.isEOF() {
		p.index++
	}
	return tok
}

func (p *parser) check(kind TokenKind) bool {
	if p.isEOF() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.next()
			return true
		}
	}
	return false
}

func (p *parser) expect(kind TokenKind, message string) (Token, error) {
	if p.check(kind) {
		return p.next(), nil
	}
	return Token{}, p.error(p.peek(), message)
}

// error reports the failure immediately and returns it for unwinding.
func (p *parser) error(tok Token, message string) error {
	p.reporter.ErrorAt(tok, message)
	return parseError{reason: message, tok: tok}
}

// synchronize discards tokens until the start of the next statement.
func (p *parser) synchronize() {
	p.next()

	for !p.isEOF() {
		if p.previous().Kind == SEMICOLON {
			return
		}

		switch p.peek().Kind {
		case CLASS, FOR, FUN, IF, PRINT, RETURN, VAR, WHILE:
			return
		}

		p.next()
	}
}

func (p *parser) parse() []Stmt {
	stmts := []Stmt{}

	for !p.isEOF() {
		stmts = append(stmts, p.declaration())
	}

	return stmts
}

func (p *parser) declaration() Stmt {
	var stmt Stmt
	var err error

	if p.match(VAR) {
		stmt, err = p.varDeclaration()
	} else {
		stmt, err = p.statement()
	}

	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *parser) varDeclaration() (Stmt, error) {
	name, err := p.expect(IDENTIFIER, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	node := varNode{name: name}
	if p.match(EQUAL) {
		if node.initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *parser) statement() (Stmt, error) {
	switch {
	case p.match(PRINT):
		return p.printStatement()
	case p.match(LEFT_BRACE):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return blockNode{statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

func (p *parser) printStatement() (Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return printNode{expression: value}, nil
}

func (p *parser) expressionStatement() (Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return expressionNode{expression: value}, nil
}

// block parses declarations up to the closing brace; the opening brace has
// already been consumed.
func (p *parser) block() ([]Stmt, error) {
	stmts := []Stmt{}

	for !p.check(RIGHT_BRACE) && !p.isEOF() {
		stmts = append(stmts, p.declaration())
	}

	if _, err := p.expect(RIGHT_BRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *parser) assignment() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	if !p.match(EQUAL) {
		return expr, nil
	}

	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}

	if v, ok := expr.(variableNode); ok {
		return assignmentNode{name: v.name, value: value}, nil
	}

	// reported, but not worth unwinding for: the assignment is dropped
	p.error(equals, "Invalid assignment target.")
	return expr, nil
}

// binary parses one left-associative precedence tier.
func (p *parser) binary(operand func() (Expr, error), ops ...TokenKind) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(ops...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = binaryNode{left: expr, op: op, right: right}
	}

	return expr, nil
}

func (p *parser) equality() (Expr, error) {
	return p.binary(p.comparison, BANG_EQUAL, EQUAL_EQUAL)
}

func (p *parser) comparison() (Expr, error) {
	return p.binary(p.term, GREATER, GREATER_EQUAL, LESS, LESS_EQUAL)
}

func (p *parser) term() (Expr, error) {
	return p.binary(p.factor, MINUS, PLUS)
}

func (p *parser) factor() (Expr, error) {
	return p.binary(p.unary, SLASH, STAR)
}

func (p *parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: op, right: right}, nil
	}

	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	switch tok := p.peek(); tok.Kind {
	case FALSE:
		p.next()
		return literalNode{value: BoolValue(false)}, nil
	case TRUE:
		p.next()
		return literalNode{value: BoolValue(true)}, nil
	case NIL:
		p.next()
		return literalNode{value: null}, nil
	case NUMBER:
		if n, ok := tok.Literal.(float64); ok {
			p.next()
			return literalNode{value: NumberValue(n)}, nil
		}
	case STRING:
		if s, ok := tok.Literal.(string); ok {
			p.next()
			return literalNode{value: StringValue(s)}, nil
		}
	case IDENTIFIER:
		p.next()
		return variableNode{name: tok}, nil
	case LEFT_PAREN:
		p.next()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_PAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return groupingNode{inner: inner}, nil
	}

	return nil, p.error(p.peek(), "Expect expression.")
}

// Parse scans and parses source in one step.
func Parse(source string, r *Reporter) []Stmt {
	return ParseTokens(Scan(source, r), r)
}
