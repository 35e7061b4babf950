package parser

import (
	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/lexer"
)

// parseExpression is the entry point for the full precedence ladder:
// OR < AND < NOT (unary) < comparison < concat & < additive <
// multiplicative < exponent ^ (right-assoc) < unary sign < primary.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.at(lexer.OR) {
		pos := p.advance().Pos
		right := p.parseAnd()
		left = &ast.BinaryExpression{Operator: ast.OpOr, Left: left, Right: right, Position: pos}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	for p.at(lexer.AND) {
		pos := p.advance().Pos
		right := p.parseNot()
		left = &ast.BinaryExpression{Operator: ast.OpAnd, Left: left, Right: right, Position: pos}
	}
	return left
}

func (p *Parser) parseNot() ast.Expression {
	if p.at(lexer.NOT) {
		pos := p.advance().Pos
		operand := p.parseNot()
		return &ast.UnaryExpression{Operator: ast.OpNot, Operand: operand, Position: pos}
	}
	return p.parseComparison()
}

var comparisonOps = map[lexer.TokenType]ast.BinaryOperator{
	lexer.EQ: ast.OpEq, lexer.NE: ast.OpNe,
	lexer.LT: ast.OpLt, lexer.GT: ast.OpGt,
	lexer.LE: ast.OpLe, lexer.GE: ast.OpGe,
}

// parseComparison implements the chained-comparison grammar question left
// open by spec §9.4: `a < b < c` is accepted and evaluated strictly
// left-to-right, each comparison producing a BOOLEAN that is then itself
// compared against the next operand rather than being special-cased into
// a conjunction. This is deliberately undefined/discouraged, not a
// feature.
func (p *Parser) parseComparison() ast.Expression {
	left := p.parseConcat()
	for {
		op, ok := comparisonOps[p.cur().Type]
		if !ok {
			return left
		}
		pos := p.advance().Pos
		right := p.parseConcat()
		left = &ast.BinaryExpression{Operator: op, Left: left, Right: right, Position: pos}
	}
}

func (p *Parser) parseConcat() ast.Expression {
	left := p.parseAdditive()
	for p.at(lexer.AMPERSAND) {
		pos := p.advance().Pos
		right := p.parseAdditive()
		left = &ast.BinaryExpression{Operator: ast.OpConcat, Left: left, Right: right, Position: pos}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		op := ast.OpAdd
		if p.cur().Type == lexer.MINUS {
			op = ast.OpSub
		}
		pos := p.advance().Pos
		right := p.parseMultiplicative()
		left = &ast.BinaryExpression{Operator: op, Left: left, Right: right, Position: pos}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseExponent()
	for p.at(lexer.STAR) || p.at(lexer.SLASH) {
		op := ast.OpMul
		if p.cur().Type == lexer.SLASH {
			op = ast.OpDiv
		}
		pos := p.advance().Pos
		right := p.parseExponent()
		left = &ast.BinaryExpression{Operator: op, Left: left, Right: right, Position: pos}
	}
	return left
}

// parseExponent is right-associative: `2 ^ 3 ^ 2` parses as `2 ^ (3 ^ 2)`.
func (p *Parser) parseExponent() ast.Expression {
	left := p.parseUnary()
	if p.at(lexer.CARET) {
		pos := p.advance().Pos
		right := p.parseExponent()
		return &ast.BinaryExpression{Operator: ast.OpPow, Left: left, Right: right, Position: pos}
	}
	return left
}

// parseUnary also accepts a leading `+`, matching the original
// interpreter's parse_unary/evaluate_unary_op: unary plus is parsed and
// discarded rather than producing its own AST node, since it never
// changes the operand's value.
func (p *Parser) parseUnary() ast.Expression {
	if p.at(lexer.MINUS) {
		pos := p.advance().Pos
		operand := p.parseUnary()
		return &ast.UnaryExpression{Operator: ast.OpNeg, Operand: operand, Position: pos}
	}
	if p.at(lexer.PLUS) {
		p.advance()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

// parsePrimary handles literals, parenthesized expressions, and a name
// optionally followed by `(args)` (call), `[e]`/`[e,e]` (array access), or
// `.field` (record access) — these postfixes may chain, e.g. `a[1].b[2]`.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()

	switch tok.Type {
	case lexer.INTEGER_LIT:
		p.advance()
		return &ast.IntegerLiteral{Value: lexer.ParseIntLiteral(tok.Literal), Position: tok.Pos}
	case lexer.REAL_LIT:
		p.advance()
		return &ast.RealLiteral{Value: lexer.ParseRealLiteral(tok.Literal), Position: tok.Pos}
	case lexer.STRING_LIT:
		p.advance()
		return &ast.StringLiteral{Value: tok.Literal, Position: tok.Pos}
	case lexer.CHAR_LIT:
		p.advance()
		return &ast.CharLiteral{Value: []rune(tok.Literal)[0], Position: tok.Pos}
	case lexer.TRUE:
		p.advance()
		return &ast.BooleanLiteral{Value: true, Position: tok.Pos}
	case lexer.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Value: false, Position: tok.Pos}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN)
		return expr
	case lexer.NAME:
		return p.parsePostfix(tok)
	default:
		p.errorf("unexpected token %s %q in expression", tok.Type, tok.Literal)
		p.advance()
		return &ast.IntegerLiteral{Value: 0, Position: tok.Pos}
	}
}

// parsePostfix parses a NAME and any chain of call/index/field suffixes
// following it.
func (p *Parser) parsePostfix(nameTok lexer.Token) ast.Expression {
	p.advance()

	if p.at(lexer.LPAREN) {
		return p.parseCallExpression(nameTok)
	}

	var expr ast.Expression = &ast.Identifier{Name: nameTok.Literal, Position: nameTok.Pos}

	for {
		switch {
		case p.at(lexer.LBRACKET):
			pos := p.advance().Pos
			indices := []ast.Expression{p.parseExpression()}
			for p.at(lexer.COMMA) {
				p.advance()
				indices = append(indices, p.parseExpression())
			}
			p.expect(lexer.RBRACKET)
			expr = &ast.IndexExpression{Base: expr, Indices: indices, Position: pos}
		case p.at(lexer.DOT):
			pos := p.advance().Pos
			field := p.expect(lexer.NAME)
			expr = &ast.FieldAccessExpression{Base: expr, Field: field.Literal, Position: pos}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallExpression(nameTok lexer.Token) *ast.CallExpression {
	p.expect(lexer.LPAREN)
	var args []ast.Expression
	if !p.at(lexer.RPAREN) {
		args = append(args, p.parseExpression())
		for p.at(lexer.COMMA) {
			p.advance()
			args = append(args, p.parseExpression())
		}
	}
	p.expect(lexer.RPAREN)
	return &ast.CallExpression{Name: nameTok.Literal, Arguments: args, Position: nameTok.Pos}
}

// parseAssignable parses an access expression used as an assignment
// target, INPUT target, or READFILE target: a name optionally followed by
// index/field suffixes, but never a call.
func (p *Parser) parseAssignable() ast.Assignable {
	tok := p.cur()
	if tok.Type != lexer.NAME {
		p.errorf("expected a variable, array element, or field access, got %s %q", tok.Type, tok.Literal)
		p.advance()
		return &ast.Identifier{Name: tok.Literal, Position: tok.Pos}
	}
	expr := p.parsePostfix(tok)
	if a, ok := expr.(ast.Assignable); ok {
		return a
	}
	p.errorf("expected a variable, array element, or field access")
	return &ast.Identifier{Name: tok.Literal, Position: tok.Pos}
}
