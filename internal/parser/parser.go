// Package parser implements the recursive-descent parser that turns a
// lexer token stream into an *ast.Program.
package parser

import (
	"fmt"

	"github.com/aclevel/pseudocode/internal/ast"
	ierrors "github.com/aclevel/pseudocode/internal/errors"
	"github.com/aclevel/pseudocode/internal/lexer"
)

// SyntaxError reports a token the parser could not fit into any
// production.
type SyntaxError struct {
	Message string
	Pos     lexer.Position
}

func (e *SyntaxError) Error() string { return e.Message }

// Position satisfies errors.SourceError.
func (e *SyntaxError) Position() ierrors.Position {
	return ierrors.Position{Line: e.Pos.Line, Column: e.Pos.Column}
}

// Parser is a single-token-lookahead recursive-descent parser with a peek
// helper for further lookahead, which no production currently calls. CASE
// arms tell `value :` from `lo ... hi :` by checking for `...` after the
// first expression.
type Parser struct {
	tokens []lexer.Token
	pos    int

	errors []*SyntaxError
}

// New builds a Parser over an already-tokenized source.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the token stream into a Program. It returns the first
// syntax error encountered, matching the lexer's fail-fast failure mode.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	p := New(tokens)
	prog := p.parseProgram()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return prog, nil
}

// cur returns the current token.
func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

// peek returns the token n positions ahead of current, clamped to EOF.
func (p *Parser) peek(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

// advance consumes and returns the current token.
func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// at reports whether the current token has type t.
func (p *Parser) at(t lexer.TokenType) bool {
	return p.cur().Type == t
}

// expect consumes the current token if it has type t, else records a
// syntax error and returns the current token without consuming it.
func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	if p.at(t) {
		return p.advance()
	}
	p.errorf("expected %s, got %s %q", t, p.cur().Type, p.cur().Literal)
	return p.cur()
}

// errorf records a syntax error at the current token's position.
func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Pos:     p.cur().Pos,
	})
}

// skipNewlines consumes any run of NEWLINE tokens; the parser freely
// allows blank statement separators everywhere a statement boundary is
// expected.
func (p *Parser) skipNewlines() {
	for p.at(lexer.NEWLINE) {
		p.advance()
	}
}

// parseProgram parses a flat sequence of top-level statements until EOF.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.at(lexer.EOF) && len(p.errors) == 0 {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
	}
	return prog
}

// parseBlock parses statements after an INDENT until the matching DEDENT,
// used for every header/terminator-delimited block construct.
func (p *Parser) parseBlock() []ast.Statement {
	p.expect(lexer.INDENT)
	var stmts []ast.Statement
	p.skipNewlines()
	for !p.at(lexer.DEDENT) && !p.at(lexer.EOF) && len(p.errors) == 0 {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipNewlines()
	}
	p.expect(lexer.DEDENT)
	return stmts
}
