// Package errors formats interpreter errors with source context: the
// offending line plus a caret under the column, the same presentation the
// teacher project uses for its own compiler diagnostics.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Position identifies a 1-based line and column in source text. It mirrors
// lexer.Position without importing the lexer package, keeping this package
// free of dependencies on the rest of the interpreter.
type Position struct {
	Line   int
	Column int
}

// SourceError is any error that carries a source Position. Lexical,
// syntactic and runtime errors all implement it so a single Format
// function can render any of them uniformly.
type SourceError interface {
	error
	Position() Position
}

var caretColor = color.New(color.FgRed, color.Bold)

// Format renders err with a source-line-and-caret excerpt from source. If
// useColor is true, the caret is rendered in bold red for terminal output.
func Format(err SourceError, source string, useColor bool) string {
	pos := err.Position()

	var sb strings.Builder
	fmt.Fprintf(&sb, "line %d:%d: %s\n", pos.Line, pos.Column, err.Error())

	line := sourceLine(source, pos.Line)
	if line == "" {
		return sb.String()
	}

	prefix := fmt.Sprintf("%4d | ", pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", len(prefix)+max0(pos.Column-1)))
	if useColor {
		sb.WriteString(caretColor.Sprint("^"))
	} else {
		sb.WriteString("^")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
