package core

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type DiagnosticKind int

const (
	LexicalError DiagnosticKind = iota
	SyntaxError
	RuntimeTypeError
	RuntimeNameError
)

func (k DiagnosticKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case RuntimeTypeError:
		return "type error"
	case RuntimeNameError:
		return "name error"
	default:
		return "<unknown>"
	}
}

// IsRuntime reports whether the diagnostic was raised during execution.
func (k DiagnosticKind) IsRuntime() bool {
	return k == RuntimeTypeError || k == RuntimeNameError
}

type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Where   string // " at 'x'", " at end" or empty
	Message string
}

func (d Diagnostic) String() string {
	if d.Kind.IsRuntime() {
		return fmt.Sprintf("%s\n[line %d]", d.Message, d.Line)
	}
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Reporter collects the diagnostics of one session and writes each of them
// to its output as soon as it is raised. Separate reporters share nothing.
type Reporter struct {
	out         io.Writer
	diagnostics []Diagnostic

	hadError        bool
	hadRuntimeError bool
	compileErrors   int // survives Reset

	label   *color.Color
	message *color.Color
}

func NewReporter(w io.Writer) *Reporter {
	r := &Reporter{
		out:     w,
		label:   color.New(color.FgRed, color.Bold),
		message: color.New(color.Bold),
	}
	r.Colorize(false)
	return r
}

// Colorize toggles ANSI colouring of the written diagnostics.
func (r *Reporter) Colorize(enabled bool) {
	if enabled {
		r.label.EnableColor()
		r.message.EnableColor()
	} else {
		r.label.DisableColor()
		r.message.DisableColor()
	}
}

// Error records a lexical error on line.
func (r *Reporter) Error(line int, message string) {
	r.add(Diagnostic{Kind: LexicalError, Line: line, Message: message})
}

// ErrorAt records a syntax error at tok.
func (r *Reporter) ErrorAt(tok Token, message string) {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Kind == EOF {
		where = " at end"
	}
	r.add(Diagnostic{Kind: SyntaxError, Line: tok.Line, Where: where, Message: message})
}

// RuntimeError records an error that aborted execution.
func (r *Reporter) RuntimeError(err *RuntimeError) {
	kind := RuntimeTypeError
	if err.Kind == NameError {
		kind = RuntimeNameError
	}
	r.add(Diagnostic{Kind: kind, Line: err.Token.Line, Message: err.Reason})
}

func (r *Reporter) add(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
	if d.Kind.IsRuntime() {
		r.hadRuntimeError = true
	} else {
		r.hadError = true
		r.compileErrors++
	}

	if r.out == nil {
		return
	}
	fmt.Fprintln(r.out, r.render(d))
}

func (r *Reporter) render(d Diagnostic) string {
	if d.Kind.IsRuntime() {
		return fmt.Sprintf("%s\n%s", r.message.Sprint(d.Message), r.label.Sprintf("[line %d]", d.Line))
	}
	return fmt.Sprintf("[line %d] %s%s: %s", d.Line, r.label.Sprint("Error"), d.Where, r.message.Sprint(d.Message))
}

// HadError reports whether a lexical or syntax error was seen.
func (r *Reporter) HadError() bool {
	return r.hadError
}

func (r *Reporter) HadRuntimeError() bool {
	return r.hadRuntimeError
}

// Diagnostics returns a copy of everything recorded so far.
func (r *Reporter) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// Reset clears the compile-time error flag so that an interactive session
// can carry on after a bad line.
func (r *Reporter) Reset() {
	r.hadError = false
}

func (r *Reporter) ResetAll() {
	r.hadError = false
	r.hadRuntimeError = false
	r.compileErrors = 0
	r.diagnostics = nil
}
