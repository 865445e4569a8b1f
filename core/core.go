package core

import (
	"errors"
	"io"
)

// ErrCompile is returned by Evaluate when the source had lexical or syntax
// errors; the details went to the reporter.
var ErrCompile = errors.New("source has compile errors")

// Options are debugging hooks called between the pipeline stages.
type Options struct {
	OnTokens func([]Token)
	OnAST    func([]Stmt)
}

// Context is the state of one session: its diagnostics and the global
// scope that persists across Run calls.
type Context struct {
	// file the session was started on, "<stdin>" for the REPL
	Filename string
	Options  Options

	reporter    *Reporter
	interpreter *Interpreter
}

func NewContext(filename string, stdout, stderr io.Writer) *Context {
	reporter := NewReporter(stderr)
	return &Context{
		Filename:    filename,
		reporter:    reporter,
		interpreter: NewInterpreter(stdout, reporter),
	}
}

func (c *Context) Reporter() *Reporter {
	return c.reporter
}

func (c *Context) Interpreter() *Interpreter {
	return c.interpreter
}

// Run scans, parses and executes source. Nothing is executed when a
// lexical or syntax error was reported for this source. Errors from
// earlier calls do not matter; HadError still reports them until Reset.
func (c *Context) Run(source string) error {
	seen := c.reporter.compileErrors

	tokens := Scan(source, c.reporter)
	if c.Options.OnTokens != nil {
		c.Options.OnTokens(tokens)
	}

	stmts := ParseTokens(tokens, c.reporter)
	if c.Options.OnAST != nil {
		c.Options.OnAST(stmts)
	}

	if c.reporter.compileErrors > seen {
		return nil
	}

	return c.interpreter.Interpret(stmts)
}

// Evaluate parses source as a single expression and evaluates it in the
// session's global scope. Any diagnostic raised on the way, including a
// runtime error, is reported as well as returned.
func (c *Context) Evaluate(source string) (Value, error) {
	seen := c.reporter.compileErrors

	expr, err := ParseExpression(Scan(source, c.reporter), c.reporter)
	if err != nil {
		return nil, err
	}
	if c.reporter.compileErrors > seen {
		return nil, ErrCompile
	}

	value, err := c.interpreter.Evaluate(expr)
	if rerr, ok := err.(*RuntimeError); ok {
		c.reporter.RuntimeError(rerr)
	}
	return value, err
}
