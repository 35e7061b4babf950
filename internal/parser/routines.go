package parser

import (
	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/lexer"
)

// parseParameterList parses the `(name : type, BYREF name : type, ...)`
// formal parameter list shared by PROCEDURE and FUNCTION declarations.
func (p *Parser) parseParameterList() []ast.Parameter {
	p.expect(lexer.LPAREN)
	var params []ast.Parameter
	if !p.at(lexer.RPAREN) {
		params = append(params, p.parseParameter())
		for p.at(lexer.COMMA) {
			p.advance()
			params = append(params, p.parseParameter())
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseParameter() ast.Parameter {
	byRef := false
	if p.at(lexer.BYREF) {
		p.advance()
		byRef = true
	}
	name := p.expect(lexer.NAME)
	p.expect(lexer.COLON)
	typ := p.parseTypeSpec()
	return ast.Parameter{Name: name.Literal, Type: typ, ByRef: byRef}
}

func (p *Parser) parseProcedureStatement() ast.Statement {
	pos := p.advance().Pos
	name := p.expect(lexer.NAME)
	params := p.parseParameterList()
	p.skipNewlines()
	body := p.parseBlock()
	p.expect(lexer.ENDPROCEDURE)
	return &ast.ProcedureStatement{Name: name.Literal, Parameters: params, Body: body, Position: pos}
}

func (p *Parser) parseFunctionStatement() ast.Statement {
	pos := p.advance().Pos
	name := p.expect(lexer.NAME)
	params := p.parseParameterList()
	p.expect(lexer.RETURNS)
	returnType := p.parseTypeSpec()
	p.skipNewlines()
	body := p.parseBlock()
	p.expect(lexer.ENDFUNCTION)
	return &ast.FunctionStatement{Name: name.Literal, Parameters: params, ReturnType: returnType, Body: body, Position: pos}
}
