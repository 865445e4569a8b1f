package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/ajkachnic/lox/core"
)

const version = "0.0.1"

const helpMessage = `lox is a tiny scripting language.

Usage:
  lox [flags] [script]
`

// sysexits(3) codes
const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitNoInput  = 66
	exitSoftware = 70
)

type options struct {
	debugTokens bool
	debugAST    bool
	noColor     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, helpMessage)
		fs.PrintDefaults()
	}

	var opts options
	fs.BoolVar(&opts.debugTokens, "debug-tokens", false, "print tokens")
	fs.BoolVar(&opts.debugAST, "debug-ast", false, "print AST")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return exitOK
	}

	if opts.noColor {
		color.NoColor = true
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
		return repl(stdin, stdout, stderr, opts)
	case 1:
		return runFile(rest[0], stdout, stderr, opts)
	default:
		fmt.Fprintln(stderr, "Usage: lox [script]")
		return exitUsage
	}
}

func newContext(filename string, stdout, stderr io.Writer, opts options) *core.Context {
	ctx := core.NewContext(filename, stdout, stderr)
	ctx.Reporter().Colorize(!color.NoColor && isTerminal(stderr))

	if opts.debugTokens {
		ctx.Options.OnTokens = func(tokens []core.Token) {
			for _, tok := range tokens {
				fmt.Fprintln(stdout, tok)
			}
		}
	}
	if opts.debugAST {
		ctx.Options.OnAST = func(stmts []core.Stmt) {
			printAST(stdout, stmts)
		}
	}

	return ctx
}

func runFile(path string, stdout, stderr io.Writer, opts options) int {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitNoInput
	}

	ctx := newContext(path, stdout, stderr, opts)
	ctx.Run(string(content))

	return exitCode(ctx.Reporter())
}

func exitCode(r *core.Reporter) int {
	switch {
	case r.HadError():
		return exitDataErr
	case r.HadRuntimeError():
		return exitSoftware
	default:
		return exitOK
	}
}
