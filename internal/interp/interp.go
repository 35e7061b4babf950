// Package interp wires the lexer, parser, and evaluator together behind
// the single embedding entry point described by the run contract: source
// text in, a terminal Result out, with every phase's errors reported
// uniformly through internal/errors.
package interp

import (
	"io"

	"github.com/aclevel/pseudocode/internal/ast"
	ierrors "github.com/aclevel/pseudocode/internal/errors"
	"github.com/aclevel/pseudocode/internal/evaluator"
	"github.com/aclevel/pseudocode/internal/lexer"
	"github.com/aclevel/pseudocode/internal/parser"
)

// Options configures a run end to end: the evaluator's strict-mode switch,
// its recursion-depth guard, the lexer's tab width, and an optional trace
// sink for the evaluator.
type Options struct {
	Strict   bool
	MaxDepth int
	TabWidth int
	Trace    io.Writer
}

// Result reports where in the pipeline a run stopped. Phase is "lex",
// "parse", "eval", or "" on success, letting callers (the CLI in
// particular) choose how to label a failure without inspecting error
// types themselves.
type Result struct {
	Phase string
	Err   error
}

// OK reports whether the run completed without error.
func (r Result) OK() bool { return r.Err == nil }

// Lex tokenizes source with the default tab width, returning a
// lexer.LexicalError/IndentationError on failure (both satisfy
// errors.SourceError).
func Lex(source string) ([]lexer.Token, error) {
	return lexer.New(source).Tokenize()
}

// LexWithTabWidth is Lex with a caller-supplied indentation tab width.
func LexWithTabWidth(source string, tabWidth int) ([]lexer.Token, error) {
	return lexer.NewWithTabWidth(source, tabWidth).Tokenize()
}

// ParseSource runs the full lex+parse pipeline, stopping at the first
// lexical or syntax error.
func ParseSource(source string) (*ast.Program, error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, err
	}
	return parser.Parse(tokens)
}

// Run lexes, parses, and evaluates source against stdin/stdout, reporting
// which phase any failure occurred in.
func Run(source string, stdin io.Reader, stdout io.Writer, opts Options) Result {
	tokens, err := LexWithTabWidth(source, opts.TabWidth)
	if err != nil {
		return Result{Phase: "lex", Err: err}
	}

	prog, err := parser.Parse(tokens)
	if err != nil {
		return Result{Phase: "parse", Err: err}
	}

	it := evaluator.New(stdin, stdout, evaluator.Options{Strict: opts.Strict, MaxDepth: opts.MaxDepth})
	if opts.Trace != nil {
		it.SetTrace(opts.Trace)
	}

	if err := it.Run(prog); err != nil {
		return Result{Phase: "eval", Err: err}
	}
	return Result{}
}

// FormatError renders any phase error from Run with source-line context,
// falling back to a bare error string for errors that do not carry a
// Position (such as the return signal left by a RETURN executed outside
// any routine call).
func FormatError(source string, err error, color bool) string {
	if se, ok := err.(ierrors.SourceError); ok {
		return ierrors.Format(se, source, color)
	}
	return err.Error()
}
