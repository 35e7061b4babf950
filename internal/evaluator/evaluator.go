// Package evaluator tree-walks an *ast.Program against a runtime
// environment, driving I/O through injected stdin/stdout and dispatching
// built-in calls through a builtins.Registry.
package evaluator

import (
	"bufio"
	"io"

	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/builtins"
	"github.com/aclevel/pseudocode/internal/runtime"
)

// Options configures a single interpreter run. Strict mirrors the §6
// embedding contract's `options={strict:bool}`. MaxDepth is the ambient
// CLI's recursion guard: the deepest chain of nested routine calls before
// a run is aborted, rather than left to exhaust the Go goroutine stack.
// Zero means unlimited.
type Options struct {
	Strict   bool
	MaxDepth int
}

// Interpreter owns everything a program run needs: the global scope, the
// file-handle table, the built-in registry, and the borrowed stdin/stdout
// streams. There is exactly one Interpreter per run; it is never a
// package-level singleton.
type Interpreter struct {
	Global  *runtime.Environment
	Files   *runtime.FileTable
	Options Options

	stdin  *bufio.Reader
	stdout io.Writer
	trace  io.Writer // optional; nil disables tracing

	builtins   *builtins.Registry
	depth      int
	typeFields map[string][]ast.FieldDecl
}

// New creates an Interpreter bound to the given stdin/stdout streams for
// the lifetime of one Run call.
func New(stdin io.Reader, stdout io.Writer, opts Options) *Interpreter {
	return &Interpreter{
		Global:     runtime.NewEnvironment(),
		Files:      runtime.NewFileTable(),
		Options:    opts,
		typeFields: make(map[string][]ast.FieldDecl),
		stdin:      bufio.NewReader(stdin),
		stdout:     stdout,
		builtins:   builtins.NewRegistry(),
	}
}

// SetTrace installs an optional sink for per-statement tracing, the same
// ambient debugging aid the CLI's --trace flag exposes. A nil sink (the
// default) disables tracing entirely.
func (it *Interpreter) SetTrace(w io.Writer) {
	it.trace = w
}

// Run executes prog to completion, guaranteeing every open file handle is
// closed before returning, on both the success and the error path.
func (it *Interpreter) Run(prog *ast.Program) error {
	err := it.execStatements(prog.Statements, it.Global)
	closeErr := it.Files.CloseAll()
	if err != nil {
		return err
	}
	return closeErr
}

// execStatements runs stmts in order against env, stopping at the first
// error (including a propagating *returnSignal).
func (it *Interpreter) execStatements(stmts []ast.Statement, env *runtime.Environment) error {
	for _, stmt := range stmts {
		if err := it.execStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}
