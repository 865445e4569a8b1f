package core

import (
	"bytes"
	"strings"
	"testing"
)

func TestReporterErrorAt(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(out)

	r.ErrorAt(Token{Kind: SEMICOLON, Lexeme: ";", Line: 3}, "Expect expression.")
	r.ErrorAt(Token{Kind: EOF, Line: 4}, "Expect ';' after value.")

	want := "[line 3] Error at ';': Expect expression.\n" +
		"[line 4] Error at end: Expect ';' after value.\n"
	if got := out.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !r.HadError() || r.HadRuntimeError() {
		t.Errorf("flags: HadError=%v HadRuntimeError=%v", r.HadError(), r.HadRuntimeError())
	}
}

func TestReporterLexicalError(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(out)
	r.Error(14, "test")

	if got := out.String(); got != "[line 14] Error: test\n" {
		t.Errorf("got %q", got)
	}
	if d := r.Diagnostics()[0]; d.Kind != LexicalError || d.Line != 14 {
		t.Errorf("got %#v", d)
	}
}

func TestReporterRuntimeError(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(out)

	r.RuntimeError(&RuntimeError{Kind: NameError, Token: ident("x"), Reason: "Undefined variable 'x'."})

	if got := out.String(); got != "Undefined variable 'x'.\n[line 1]\n" {
		t.Errorf("got %q", got)
	}
	if r.HadError() || !r.HadRuntimeError() {
		t.Errorf("flags: HadError=%v HadRuntimeError=%v", r.HadError(), r.HadRuntimeError())
	}
	if d := r.Diagnostics()[0]; d.Kind != RuntimeNameError {
		t.Errorf("kind = %s, want name error", d.Kind)
	}
}

func TestReporterReset(t *testing.T) {
	r := NewReporter(nil)
	r.Error(1, "bad")
	r.RuntimeError(&RuntimeError{Kind: TypeError, Token: ident("+"), Reason: "bad operand"})

	r.Reset()
	if r.HadError() {
		t.Error("Reset should clear the compile error flag")
	}
	if !r.HadRuntimeError() {
		t.Error("Reset should keep the runtime error flag")
	}
	if len(r.Diagnostics()) != 2 {
		t.Errorf("Reset should keep the diagnostics, got %v", r.Diagnostics())
	}

	r.ResetAll()
	if r.HadError() || r.HadRuntimeError() || len(r.Diagnostics()) != 0 {
		t.Error("ResetAll should clear everything")
	}
}

func TestReportersAreIndependent(t *testing.T) {
	first, second := NewReporter(nil), NewReporter(nil)

	first.Error(1, "only here")
	if second.HadError() {
		t.Error("an error in one reporter leaked into another")
	}

	second.Error(2, "and here")
	first.Reset()
	if !second.HadError() {
		t.Error("resetting one reporter cleared another")
	}
}

func TestReporterColorize(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(out)

	r.Colorize(true)
	r.Error(1, "coloured")
	if !strings.Contains(out.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", out.String())
	}

	out.Reset()
	r.Colorize(false)
	r.Error(1, "plain")
	if strings.Contains(out.String(), "\x1b[") {
		t.Errorf("unexpected ANSI escapes in %q", out.String())
	}
}
