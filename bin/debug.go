package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"

	"github.com/ajkachnic/lox/core"
)

// printAST writes one S-expression per statement. On a terminal the dump is
// highlighted as scheme, which reads the same parenthesised shape.
func printAST(w io.Writer, stmts []core.Stmt) {
	builder := strings.Builder{}
	for _, stmt := range stmts {
		if stmt == nil {
			builder.WriteString("<error>\n")
			continue
		}
		builder.WriteString(stmt.String())
		builder.WriteByte('\n')
	}
	dump := builder.String()

	if f, ok := w.(*os.File); ok && isTerminal(f) && !color.NoColor {
		if err := quick.Highlight(colorable.NewColorable(f), dump, "scheme", "terminal256", "monokai"); err == nil {
			return
		}
	}

	fmt.Fprint(w, dump)
}
