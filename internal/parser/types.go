package parser

import (
	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/lexer"
)

var simpleTypeTokens = map[lexer.TokenType]string{
	lexer.INTEGER: "INTEGER",
	lexer.REAL:    "REAL",
	lexer.STRING:  "STRING",
	lexer.CHAR:    "CHAR",
	lexer.BOOLEAN: "BOOLEAN",
	lexer.DATE:    "DATE",
}

// parseTypeSpec parses a type name appearing after a `:`, in a parameter
// list, or as an array's element type: a primitive name, an ARRAY[...] OF
// spec, or a custom (record) type name.
func (p *Parser) parseTypeSpec() ast.TypeSpec {
	tok := p.cur()

	if name, ok := simpleTypeTokens[tok.Type]; ok {
		p.advance()
		return &ast.SimpleType{Name: name, Position: tok.Pos}
	}

	if p.at(lexer.ARRAY) {
		return p.parseArrayType()
	}

	if p.at(lexer.NAME) {
		p.advance()
		return &ast.CustomType{Name: tok.Literal, Position: tok.Pos}
	}

	p.errorf("expected a type name, got %s %q", tok.Type, tok.Literal)
	return &ast.SimpleType{Name: "INTEGER", Position: tok.Pos}
}

// parseArrayType parses `ARRAY[lo:hi]` or `ARRAY[lo:hi, lo:hi] OF type`.
// More than two dimensions is a syntax error, per spec.
func (p *Parser) parseArrayType() ast.TypeSpec {
	start := p.cur().Pos
	p.expect(lexer.ARRAY)
	p.expect(lexer.LBRACKET)

	dims := []ast.ArrayDimension{p.parseArrayDimension()}
	for p.at(lexer.COMMA) {
		p.advance()
		dims = append(dims, p.parseArrayDimension())
	}
	if len(dims) > 2 {
		p.errorf("array type permits at most 2 dimensions, got %d", len(dims))
	}

	p.expect(lexer.RBRACKET)
	p.expect(lexer.OF)
	element := p.parseTypeSpec()

	return &ast.ArrayType{Dimensions: dims, Element: element, Position: start}
}

func (p *Parser) parseArrayDimension() ast.ArrayDimension {
	lower := p.parseExpression()
	p.expect(lexer.COLON)
	upper := p.parseExpression()
	return ast.ArrayDimension{Lower: lower, Upper: upper}
}
