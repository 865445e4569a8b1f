package core

import (
	"bytes"
	"testing"
)

func parseExpr(t *testing.T, src string) string {
	t.Helper()
	r := NewReporter(&bytes.Buffer{})
	expr, err := ParseExpression(Scan(src, r), r)
	if err != nil {
		t.Fatalf("%s: %v", src, err)
	}
	return expr.String()
}

func parseProgram(t *testing.T, src string) ([]Stmt, *Reporter) {
	t.Helper()
	r := NewReporter(&bytes.Buffer{})
	return Parse(src, r), r
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"3", "3"},
		{"1.5", "1.5"},
		{`"foo"`, `"foo"`},
		{"nil", "nil"},
		{"false", "false"},
		{"(3)", "(group 3)"},
		{`3 + "foo"`, `(+ 3 "foo")`},
		{`(3 + "foo")`, `(group (+ 3 "foo"))`},
		{"3 + 4 * 6 + 8", "(+ (+ 3 (* 4 6)) 8)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"6 / 4 * 2", "(* (/ 6 4) 2)"},
		{"-true", "(- true)"},
		{"!!a", "(! (! a))"},
		{"-2 * 3", "(* (- 2) 3)"},
		{"1 < 2 == 3 >= 4", "(== (< 1 2) (>= 3 4))"},
		{"60.2 <= 43.0 == false", "(== (<= 60.2 43) false)"},
		{"a = b = 1", "(= a (= b 1))"},
		{"a = 1 + 2", "(= a (+ 1 2))"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := parseExpr(t, tt.src); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseExpressionTrailingTokens(t *testing.T) {
	r := NewReporter(&bytes.Buffer{})
	if _, err := ParseExpression(Scan("1 2", r), r); err == nil {
		t.Fatal("expected an error for trailing tokens")
	}
	if !r.HadError() {
		t.Error("trailing tokens should be reported")
	}
}

func TestParseStatements(t *testing.T) {
	stmts, r := parseProgram(t, `
var a = 1;
var b;
print a;
{ var c; c = 2; }
a;
`)
	if r.HadError() {
		t.Fatalf("unexpected diagnostics: %v", r.Diagnostics())
	}

	want := []string{
		"(var a 1)",
		"(var b)",
		"(print a)",
		"(block (var c) (expr (= c 2)))",
		"(expr a)",
	}
	if len(stmts) != len(want) {
		t.Fatalf("got %d statements %v, want %d", len(stmts), stmts, len(want))
	}
	for i, stmt := range stmts {
		if stmt.String() != want[i] {
			t.Errorf("statement %d: got %s, want %s", i, stmt, want[i])
		}
	}
}

type parseErrorCase struct {
	name  string
	src   string
	stmts []string // "" marks a statement that failed to parse
	diags []string
}

func TestParseErrors(t *testing.T) {
	tests := []parseErrorCase{
		{
			name:  "missing semicolon at end",
			src:   "print 1",
			stmts: []string{""},
			diags: []string{"[line 1] Error at end: Expect ';' after value."},
		},
		{
			name:  "missing variable name",
			src:   "var = 1; print 2;",
			stmts: []string{"", "(print 2)"},
			diags: []string{"[line 1] Error at '=': Expect variable name."},
		},
		{
			name:  "one diagnostic per fault",
			src:   "1 +; var x = ;\nprint 3;",
			stmts: []string{"", "", "(print 3)"},
			diags: []string{
				"[line 1] Error at ';': Expect expression.",
				"[line 1] Error at ';': Expect expression.",
			},
		},
		{
			name:  "synchronize stops at statement keyword",
			src:   "var a = 1 + ) print 2;",
			stmts: []string{"", "(print 2)"},
			diags: []string{"[line 1] Error at ')': Expect expression."},
		},
		{
			name:  "synchronize skips to semicolon",
			src:   "print 1 var a = 2; print a;",
			stmts: []string{"", "(print a)"},
			diags: []string{"[line 1] Error at 'var': Expect ';' after value."},
		},
		{
			name:  "unclosed group",
			src:   "(1 + 2;",
			stmts: []string{""},
			diags: []string{"[line 1] Error at ';': Expect ')' after expression."},
		},
		{
			name:  "unclosed block",
			src:   "{ print 1;",
			stmts: []string{""},
			diags: []string{"[line 1] Error at end: Expect '}' after block."},
		},
		{
			name:  "error inside block",
			src:   "{ print ; print 2; }",
			stmts: []string{"(block (print 2))"},
			diags: []string{"[line 1] Error at ';': Expect expression."},
		},
		{
			name:  "invalid assignment target",
			src:   "1 + 2 = 3;",
			stmts: []string{"(expr (+ 1 2))"},
			diags: []string{"[line 1] Error at '=': Invalid assignment target."},
		},
		{
			name:  "reserved word without behaviour",
			src:   "while;\nprint 1;",
			stmts: []string{"", "(print 1)"},
			diags: []string{"[line 1] Error at 'while': Expect expression."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, r := parseProgram(t, tt.src)

			if len(stmts) != len(tt.stmts) {
				t.Fatalf("got %d statements %v, want %d", len(stmts), stmts, len(tt.stmts))
			}
			for i, stmt := range stmts {
				switch {
				case tt.stmts[i] == "" && stmt != nil:
					t.Errorf("statement %d: got %s, want nil", i, stmt)
				case tt.stmts[i] != "" && stmt == nil:
					t.Errorf("statement %d: got nil, want %s", i, tt.stmts[i])
				case stmt != nil && stmt.String() != tt.stmts[i]:
					t.Errorf("statement %d: got %s, want %s", i, stmt, tt.stmts[i])
				}
			}

			diags := r.Diagnostics()
			if len(diags) != len(tt.diags) {
				t.Fatalf("got diagnostics %v, want %v", diags, tt.diags)
			}
			for i, d := range diags {
				if d.Kind != SyntaxError {
					t.Errorf("diagnostic %d has kind %s", i, d.Kind)
				}
				if d.String() != tt.diags[i] {
					t.Errorf("diagnostic %d: got %q, want %q", i, d.String(), tt.diags[i])
				}
			}
		})
	}
}

func TestParseTokensWithoutEOF(t *testing.T) {
	r := NewReporter(&bytes.Buffer{})
	stmts := ParseTokens([]Token{
		{Kind: PRINT, Lexeme: "print", Line: 1},
		{Kind: NUMBER, Lexeme: "1", Literal: 1.0, Line: 1},
		{Kind: SEMICOLON, Lexeme: ";", Line: 1},
	}, r)

	if len(stmts) != 1 || stmts[0] == nil || stmts[0].String() != "(print 1)" {
		t.Fatalf("got %v", stmts)
	}
	if len(ParseTokens(nil, r)) != 0 {
		t.Error("empty token stream should parse to an empty program")
	}
}

func TestParseLiteralTokensWithoutValue(t *testing.T) {
	for _, kind := range []TokenKind{NUMBER, STRING} {
		t.Run(kind.String(), func(t *testing.T) {
			r := NewReporter(nil)
			stmts := ParseTokens([]Token{
				{Kind: PRINT, Lexeme: "print", Line: 1},
				{Kind: kind, Lexeme: "1", Line: 1},
				{Kind: SEMICOLON, Lexeme: ";", Line: 1},
			}, r)

			if len(stmts) != 1 || stmts[0] != nil {
				t.Fatalf("got %v, want one failed statement", stmts)
			}
			diags := r.Diagnostics()
			if len(diags) != 1 || diags[0].String() != "[line 1] Error at '1': Expect expression." {
				t.Errorf("got %v", diags)
			}
		})
	}
}
