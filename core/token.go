package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type TokenKind int

const (
	// single-character tokens
	LEFT_PAREN TokenKind = iota
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR

	// one or two character tokens
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	// literals
	IDENTIFIER
	STRING
	NUMBER

	// keywords
	AND
	CLASS
	ELSE
	FALSE
	FUN
	FOR
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE

	EOF
)

var keywords = map[string]TokenKind{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

func (k TokenKind) String() string {
	switch k {
	case LEFT_PAREN:
		return "("
	case RIGHT_PAREN:
		return ")"
	case LEFT_BRACE:
		return "{"
	case RIGHT_BRACE:
		return "}"
	case COMMA:
		return ","
	case DOT:
		return "."
	case MINUS:
		return "-"
	case PLUS:
		return "+"
	case SEMICOLON:
		return ";"
	case SLASH:
		return "/"
	case STAR:
		return "*"

	case BANG:
		return "!"
	case BANG_EQUAL:
		return "!="
	case EQUAL:
		return "="
	case EQUAL_EQUAL:
		return "=="
	case GREATER:
		return ">"
	case GREATER_EQUAL:
		return ">="
	case LESS:
		return "<"
	case LESS_EQUAL:
		return "<="

	case IDENTIFIER:
		return "<identifier>"
	case STRING:
		return "<string>"
	case NUMBER:
		return "<number>"

	case EOF:
		return "<eof>"
	}

	for word, kind := range keywords {
		if kind == k {
			return word
		}
	}
	return "<unknown>"
}

// IsKeyword reports whether k is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k >= AND && k <= WHILE
}

// Token is a single lexical unit. Literal holds the decoded value of strings
// (string) and numbers (float64) and is nil otherwise.
type Token struct {
	Kind    TokenKind
	Lexeme  string
	Literal any
	Line    int

	// rune offset of the lexeme in the scanned source
	offset int
}

// Offset is the rune index of the lexeme in the scanned source.
func (t Token) Offset() int {
	return t.offset
}

// Equal compares kind and literal, ignoring lexeme and line.
func (t Token) Equal(u Token) bool {
	return t.Kind == u.Kind && t.Literal == u.Literal
}

func (t Token) String() string {
	switch lit := t.Literal.(type) {
	case string:
		return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, strconv.Quote(lit))
	case float64:
		return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, NumberValue(lit))
	default:
		return fmt.Sprintf("%s %s", t.Kind, t.Lexeme)
	}
}

type tokenizer struct {
	source   []rune
	start    int
	index    int
	line     int
	tokens   []Token
	reporter *Reporter
}

func newTokenizer(source string, r *Reporter) tokenizer {
	return tokenizer{
		source:   []rune(source),
		line:     1,
		tokens:   []Token{},
		reporter: r,
	}
}

// Scan converts source into tokens. Lexical errors are reported to r and
// scanning continues; the result always ends with a single EOF token.
func Scan(source string, r *Reporter) []Token {
	t := newTokenizer(source, r)
	return t.tokenize()
}

func (t *tokenizer) isEOF() bool {
	return t.index >= len(t.source)
}

func (t *tokenizer) next() rune {
	ch := t.source[t.index]
	t.index++
	return ch
}

func (t *tokenizer) peek() rune {
	if t.isEOF() {
		return 0
	}
	return t.source[t.index]
}

func (t *tokenizer) peekAhead(n int) rune {
	if t.index+n >= len(t.source) {
		return 0
	}
	return t.source[t.index+n]
}

// match consumes the next rune if it is expected.
func (t *tokenizer) match(expected rune) bool {
	if t.isEOF() || t.source[t.index] != expected {
		return false
	}
	t.index++
	return true
}

func (t *tokenizer) add(kind TokenKind, literal any) {
	t.tokens = append(t.tokens, Token{
		Kind:    kind,
		Lexeme:  string(t.source[t.start:t.index]),
		Literal: literal,
		Line:    t.line,
		offset:  t.start,
	})
}

func (t *tokenizer) addPair(expected rune, double, single TokenKind) {
	if t.match(expected) {
		t.add(double, nil)
	} else {
		t.add(single, nil)
	}
}

func (t *tokenizer) nextToken() {
	ch := t.next()

	switch ch {
	case '(':
		t.add(LEFT_PAREN, nil)
	case ')':
		t.add(RIGHT_PAREN, nil)
	case '{':
		t.add(LEFT_BRACE, nil)
	case '}':
		t.add(RIGHT_BRACE, nil)
	case ',':
		t.add(COMMA, nil)
	case '.':
		t.add(DOT, nil)
	case '-':
		t.add(MINUS, nil)
	case '+':
		t.add(PLUS, nil)
	case ';':
		t.add(SEMICOLON, nil)
	case '*':
		t.add(STAR, nil)
	case '!':
		t.addPair('=', BANG_EQUAL, BANG)
	case '=':
		t.addPair('=', EQUAL_EQUAL, EQUAL)
	case '<':
		t.addPair('=', LESS_EQUAL, LESS)
	case '>':
		t.addPair('=', GREATER_EQUAL, GREATER)
	case '/':
		if t.match('/') {
			for !t.isEOF() && t.peek() != '\n' {
				t.next()
			}
		} else {
			t.add(SLASH, nil)
		}
	case '\n':
		t.line++
	case ' ', '\r', '\t':
	case '"':
		t.readString()
	default:
		switch {
		case isDigit(ch):
			t.readNumber()
		case unicode.IsLetter(ch):
			t.readIdentifier()
		default:
			t.reporter.Error(t.line, fmt.Sprintf("Unexpected character %q.", ch))
		}
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func (t *tokenizer) readString() {
	startLine := t.line
	for !t.isEOF() && t.peek() != '"' {
		ch := t.next()
		if ch == '\\' && !t.isEOF() {
			ch = t.next()
		}
		if ch == '\n' {
			t.line++
		}
	}

	if t.isEOF() {
		t.reporter.Error(startLine, "Unterminated string.")
		return
	}

	t.next() // closing quote
	raw := t.source[t.start+1 : t.index-1]
	t.add(STRING, decodeString(raw))
}

// decodeString resolves backslash escapes in the body of a string literal.
func decodeString(runes []rune) string {
	builder := strings.Builder{}

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch != '\\' || i+1 >= len(runes) {
			builder.WriteRune(ch)
			continue
		}

		i++
		switch ch = runes[i]; ch {
		case 't':
			builder.WriteByte('\t')
		case 'n':
			builder.WriteByte('\n')
		case 'r':
			builder.WriteByte('\r')
		case 'f':
			builder.WriteByte('\f')
		case 'x':
			if i+2 >= len(runes) {
				builder.WriteByte('x')
				continue
			}
			code, err := strconv.ParseUint(string(runes[i+1:i+3]), 16, 8)
			if err != nil {
				builder.WriteByte('x')
				continue
			}
			i += 2
			builder.WriteRune(rune(code))
		default:
			builder.WriteRune(ch)
		}
	}

	return builder.String()
}

func (t *tokenizer) readNumber() {
	for isDigit(t.peek()) {
		t.next()
	}

	// a trailing '.' without digits is left for the DOT token
	if t.peek() == '.' && isDigit(t.peekAhead(1)) {
		t.next()
		for isDigit(t.peek()) {
			t.next()
		}
	}

	text := string(t.source[t.start:t.index])
	// a digit run only fails with ErrRange, and n is then ±Inf or 0
	n, _ := strconv.ParseFloat(text, 64)
	t.add(NUMBER, n)
}

func (t *tokenizer) readIdentifier() {
	for !t.isEOF() {
		ch := t.peek()
		if !unicode.IsLetter(ch) && !isDigit(ch) {
			break
		}
		t.next()
	}

	text := string(t.source[t.start:t.index])
	if kind, ok := keywords[text]; ok {
		t.add(kind, nil)
		return
	}
	t.add(IDENTIFIER, nil)
}

func (t *tokenizer) tokenize() []Token {
	for !t.isEOF() {
		t.start = t.index
		t.nextToken()
	}

	t.tokens = append(t.tokens, Token{
		Kind:   EOF,
		Line:   t.line,
		offset: len(t.source),
	})

	return t.tokens
}
