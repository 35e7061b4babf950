package lexer

import (
	"fmt"

	ierrors "github.com/aclevel/pseudocode/internal/errors"
)

// LexicalError reports a character the scanner could not match against any
// token pattern.
type LexicalError struct {
	Pos  Position
	Char rune
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("unexpected character %q", e.Char)
}

// Position satisfies errors.SourceError.
func (e *LexicalError) Position() ierrors.Position {
	return ierrors.Position{Line: e.Pos.Line, Column: e.Pos.Column}
}

// IndentationError reports a DEDENT whose column does not match any open
// indent level on the stack.
type IndentationError struct {
	Pos Position
}

func (e *IndentationError) Error() string {
	return fmt.Sprintf("inconsistent dedent at line %d", e.Pos.Line)
}

// Position satisfies errors.SourceError.
func (e *IndentationError) Position() ierrors.Position {
	return ierrors.Position{Line: e.Pos.Line, Column: e.Pos.Column}
}
