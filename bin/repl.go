package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/reeflective/readline"

	"github.com/ajkachnic/lox/core"
)

type lineReader interface {
	Readline() (string, error)
}

// plainReader serves piped input, where line editing makes no sense.
type plainReader struct {
	scanner *bufio.Scanner
}

func newPlainReader(r io.Reader) *plainReader {
	return &plainReader{scanner: bufio.NewScanner(r)}
}

func (p *plainReader) Readline() (string, error) {
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	if err := p.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func repl(stdin io.Reader, stdout, stderr io.Writer, opts options) int {
	ctx := newContext("<stdin>", stdout, stderr, opts)

	var rl lineReader
	if isTerminal(stdin) {
		shell := readline.NewShell()
		shell.Prompt.Primary(func() string { return "> " })
		shell.SyntaxHighlighter = highlight
		rl = shell

		color.New(color.Bold).Fprintf(stdout, "lox %s\n", version)
	} else {
		rl = newPlainReader(stdin)
	}

	return session(ctx, rl, stderr)
}

// session runs every line read from rl. Variables outlive a bad line; the
// compile error flag does not.
func session(ctx *core.Context, rl lineReader, stderr io.Writer) int {
	for {
		text, err := rl.Readline()

		if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintln(stderr, err)
			break
		}

		ctx.Run(text)
		ctx.Reporter().Reset()
	}

	return exitOK
}

var (
	stringColor  = color.New(color.FgGreen).SprintFunc()
	numberColor  = color.New(color.FgMagenta).SprintFunc()
	keywordColor = color.New(color.FgBlue, color.Bold).SprintFunc()
)

func highlight(line []rune) string {
	tokens := core.Scan(string(line), core.NewReporter(nil))

	builder := strings.Builder{}

	i := 0
	for _, tok := range tokens {
		if tok.Kind == core.EOF {
			break
		}
		if tok.Offset() > i {
			builder.WriteString(string(line[i:tok.Offset()]))
		}

		switch {
		case tok.Kind == core.STRING:
			builder.WriteString(stringColor(tok.Lexeme))
		case tok.Kind == core.NUMBER:
			builder.WriteString(numberColor(tok.Lexeme))
		case tok.Kind.IsKeyword():
			builder.WriteString(keywordColor(tok.Lexeme))
		default:
			builder.WriteString(tok.Lexeme)
		}

		i = tok.Offset() + len([]rune(tok.Lexeme))
	}

	// comments, whitespace and anything the lexer skipped
	if i < len(line) {
		builder.WriteString(string(line[i:]))
	}

	return builder.String()
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
