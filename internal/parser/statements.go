package parser

import (
	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/lexer"
)

// parseStatement selects a production from the current token: a NAME
// always starts an assignment (the grammar has no bare expression
// statement), every other statement kind is keyword-led.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.DECLARE:
		return p.parseDeclareStatement()
	case lexer.CONSTANT:
		return p.parseConstantStatement()
	case lexer.TYPE:
		return p.parseTypeDefStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.CASE:
		return p.parseCaseStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.REPEAT:
		return p.parseRepeatStatement()
	case lexer.PROCEDURE:
		return p.parseProcedureStatement()
	case lexer.FUNCTION:
		return p.parseFunctionStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.CALL:
		return p.parseCallStatement()
	case lexer.INPUT:
		return p.parseInputStatement()
	case lexer.OUTPUT, lexer.PRINT:
		return p.parseOutputStatement()
	case lexer.OPENFILE:
		return p.parseFileOpenStatement()
	case lexer.READFILE:
		return p.parseFileReadStatement()
	case lexer.WRITEFILE:
		return p.parseFileWriteStatement()
	case lexer.CLOSEFILE:
		return p.parseFileCloseStatement()
	case lexer.NAME:
		return p.parseAssignStatement()
	default:
		p.errorf("unexpected token %s %q at start of statement", p.cur().Type, p.cur().Literal)
		p.advance()
		return nil
	}
}

func (p *Parser) parseAssignStatement() ast.Statement {
	pos := p.cur().Pos
	target := p.parseAssignable()
	p.expect(lexer.ASSIGN)
	value := p.parseExpression()
	return &ast.AssignStatement{Target: target, Value: value, Position: pos}
}

func (p *Parser) parseInputStatement() ast.Statement {
	pos := p.advance().Pos
	target := p.parseAssignable()
	return &ast.InputStatement{Target: target, Position: pos}
}

func (p *Parser) parseOutputStatement() ast.Statement {
	pos := p.advance().Pos
	values := []ast.Expression{p.parseExpression()}
	for p.at(lexer.COMMA) {
		p.advance()
		values = append(values, p.parseExpression())
	}
	return &ast.OutputStatement{Values: values, Position: pos}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	pos := p.advance().Pos
	value := p.parseExpression()
	return &ast.ReturnStatement{Value: value, Position: pos}
}

func (p *Parser) parseCallStatement() ast.Statement {
	pos := p.advance().Pos
	nameTok := p.expect(lexer.NAME)
	var call *ast.CallExpression
	if p.at(lexer.LPAREN) {
		call = p.parseCallExpression(nameTok)
	} else {
		call = &ast.CallExpression{Name: nameTok.Literal, Position: nameTok.Pos}
	}
	return &ast.CallStatement{Call: call, Position: pos}
}

func (p *Parser) parseIfStatement() ast.Statement {
	pos := p.advance().Pos
	cond := p.parseExpression()
	p.expect(lexer.THEN)
	p.skipNewlines()
	thenBlock := p.parseBlock()

	var elseBlock []ast.Statement
	p.skipNewlines()
	if p.at(lexer.ELSE) {
		p.advance()
		p.skipNewlines()
		elseBlock = p.parseBlock()
		p.skipNewlines()
	}
	p.expect(lexer.ENDIF)
	return &ast.IfStatement{Condition: cond, Then: thenBlock, Else: elseBlock, Position: pos}
}

// parseCaseStatement parses `CASE OF subject` followed by an indented run
// of `value[,value...] : stmt` or `lo ... hi : stmt` branches and an
// optional trailing `OTHERWISE : stmt`, ending in ENDCASE.
func (p *Parser) parseCaseStatement() ast.Statement {
	pos := p.advance().Pos
	p.expect(lexer.OF)
	subject := p.parseExpression()
	p.skipNewlines()
	p.expect(lexer.INDENT)
	p.skipNewlines()

	var branches []ast.CaseBranch
	var otherwise []ast.Statement

	for !p.at(lexer.DEDENT) && !p.at(lexer.EOF) && len(p.errors) == 0 {
		if p.at(lexer.OTHERWISE) {
			p.advance()
			p.expect(lexer.COLON)
			stmt := p.parseStatement()
			if stmt != nil {
				otherwise = append(otherwise, stmt)
			}
			p.skipNewlines()
			continue
		}

		values := []ast.Expression{p.parseCaseValue()}
		for p.at(lexer.COMMA) {
			p.advance()
			values = append(values, p.parseCaseValue())
		}
		p.expect(lexer.COLON)
		stmt := p.parseStatement()
		var body []ast.Statement
		if stmt != nil {
			body = append(body, stmt)
		}
		branches = append(branches, ast.CaseBranch{Values: values, Body: body})
		p.skipNewlines()
	}

	p.expect(lexer.DEDENT)
	p.expect(lexer.ENDCASE)
	return &ast.CaseStatement{Subject: subject, Branches: branches, Otherwise: otherwise, Position: pos}
}

// parseCaseValue parses one CASE arm key, which may be a `lo ... hi` range.
func (p *Parser) parseCaseValue() ast.Expression {
	lo := p.parseExpression()
	if p.at(lexer.RANGE) {
		pos := p.advance().Pos
		hi := p.parseExpression()
		return &ast.CaseRange{Low: lo, High: hi, Position: pos}
	}
	return lo
}

func (p *Parser) parseForStatement() ast.Statement {
	pos := p.advance().Pos
	varTok := p.expect(lexer.NAME)
	p.expect(lexer.ASSIGN)
	start := p.parseExpression()
	p.expect(lexer.TO)
	end := p.parseExpression()

	var step ast.Expression
	if p.at(lexer.STEP) {
		p.advance()
		step = p.parseExpression()
	}

	p.skipNewlines()
	body := p.parseBlock()
	p.expect(lexer.NEXT)
	// The variable token after NEXT is optional and, per spec, never
	// checked for a match even when present.
	if p.at(lexer.NAME) {
		p.advance()
	}

	return &ast.ForStatement{Variable: varTok.Literal, Start: start, End: end, Step: step, Body: body, Position: pos}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	pos := p.advance().Pos
	cond := p.parseExpression()
	p.skipNewlines()
	body := p.parseBlock()
	p.expect(lexer.ENDWHILE)
	return &ast.WhileStatement{Condition: cond, Body: body, Position: pos}
}

func (p *Parser) parseRepeatStatement() ast.Statement {
	pos := p.advance().Pos
	p.skipNewlines()
	body := p.parseBlock()
	p.expect(lexer.UNTIL)
	cond := p.parseExpression()
	return &ast.RepeatStatement{Body: body, Condition: cond, Position: pos}
}

func (p *Parser) parseFileOpenStatement() ast.Statement {
	pos := p.advance().Pos
	name := p.parseExpression()
	p.expect(lexer.FOR)
	mode := p.parseFileMode()
	return &ast.FileOpenStatement{FileName: name, Mode: mode, Position: pos}
}

func (p *Parser) parseFileMode() string {
	switch p.cur().Type {
	case lexer.READ:
		p.advance()
		return "READ"
	case lexer.WRITE:
		p.advance()
		return "WRITE"
	case lexer.APPEND:
		p.advance()
		return "APPEND"
	default:
		p.errorf("expected READ, WRITE, or APPEND, got %s %q", p.cur().Type, p.cur().Literal)
		p.advance()
		return "READ"
	}
}

func (p *Parser) parseFileReadStatement() ast.Statement {
	pos := p.advance().Pos
	name := p.parseExpression()
	p.expect(lexer.COMMA)
	target := p.parseAssignable()
	return &ast.FileReadStatement{FileName: name, Target: target, Position: pos}
}

func (p *Parser) parseFileWriteStatement() ast.Statement {
	pos := p.advance().Pos
	name := p.parseExpression()
	p.expect(lexer.COMMA)
	value := p.parseExpression()
	return &ast.FileWriteStatement{FileName: name, Value: value, Position: pos}
}

func (p *Parser) parseFileCloseStatement() ast.Statement {
	pos := p.advance().Pos
	name := p.parseExpression()
	return &ast.FileCloseStatement{FileName: name, Position: pos}
}
