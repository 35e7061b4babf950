package parser

import (
	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/lexer"
)

func (p *Parser) parseDeclareStatement() ast.Statement {
	pos := p.advance().Pos
	name := p.expect(lexer.NAME)
	p.expect(lexer.COLON)
	typ := p.parseTypeSpec()
	return &ast.DeclareStatement{Name: name.Literal, Type: typ, Position: pos}
}

func (p *Parser) parseConstantStatement() ast.Statement {
	pos := p.advance().Pos
	name := p.expect(lexer.NAME)
	p.expect(lexer.EQ)
	value := p.parseExpression()
	return &ast.ConstantStatement{Name: name.Literal, Value: value, Position: pos}
}

// parseTypeDefStatement parses `TYPE name` followed by an indented run of
// `name : type` field declarations, ending in ENDTYPE.
func (p *Parser) parseTypeDefStatement() ast.Statement {
	pos := p.advance().Pos
	name := p.expect(lexer.NAME)
	p.skipNewlines()
	p.expect(lexer.INDENT)
	p.skipNewlines()

	var fields []ast.FieldDecl
	for !p.at(lexer.DEDENT) && !p.at(lexer.EOF) && len(p.errors) == 0 {
		fieldName := p.expect(lexer.NAME)
		p.expect(lexer.COLON)
		fieldType := p.parseTypeSpec()
		fields = append(fields, ast.FieldDecl{Name: fieldName.Literal, Type: fieldType})
		p.skipNewlines()
	}

	p.expect(lexer.DEDENT)
	p.expect(lexer.ENDTYPE)
	return &ast.TypeDefStatement{Name: name.Literal, Fields: fields, Position: pos}
}
