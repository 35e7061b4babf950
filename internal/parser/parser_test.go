package parser

import (
	"testing"

	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	prog, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return prog
}

func TestParseDeclareStatement(t *testing.T) {
	prog := parseSource(t, "DECLARE x : INTEGER\n")
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.DeclareStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.DeclareStatement", prog.Statements[0])
	}
	if decl.Name != "x" {
		t.Errorf("Name = %q, want %q", decl.Name, "x")
	}
	simple, ok := decl.Type.(*ast.SimpleType)
	if !ok || simple.Name != "INTEGER" {
		t.Errorf("Type = %#v, want SimpleType INTEGER", decl.Type)
	}
}

func TestParseArrayDeclaration(t *testing.T) {
	prog := parseSource(t, "DECLARE grid : ARRAY[1:3, 1:3] OF INTEGER\n")
	decl := prog.Statements[0].(*ast.DeclareStatement)
	arr, ok := decl.Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("Type is %T, want *ast.ArrayType", decl.Type)
	}
	if len(arr.Dimensions) != 2 {
		t.Fatalf("got %d dimensions, want 2", len(arr.Dimensions))
	}
	elem, ok := arr.Element.(*ast.SimpleType)
	if !ok || elem.Name != "INTEGER" {
		t.Errorf("Element = %#v, want SimpleType INTEGER", arr.Element)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	// 2 + 3 * 4 ^ 2 should parse with ^ tightest, then *, then +.
	prog := parseSource(t, "x <- 2 + 3 * 4 ^ 2\n")
	assign := prog.Statements[0].(*ast.AssignStatement)
	add, ok := assign.Value.(*ast.BinaryExpression)
	if !ok || add.Operator != ast.OpAdd {
		t.Fatalf("top-level operator = %#v, want OpAdd", assign.Value)
	}
	mul, ok := add.Right.(*ast.BinaryExpression)
	if !ok || mul.Operator != ast.OpMul {
		t.Fatalf("right operand = %#v, want OpMul", add.Right)
	}
	pow, ok := mul.Right.(*ast.BinaryExpression)
	if !ok || pow.Operator != ast.OpPow {
		t.Fatalf("innermost operand = %#v, want OpPow", mul.Right)
	}
}

func TestParseExponentRightAssociative(t *testing.T) {
	// 2 ^ 3 ^ 2 parses as 2 ^ (3 ^ 2).
	prog := parseSource(t, "x <- 2 ^ 3 ^ 2\n")
	assign := prog.Statements[0].(*ast.AssignStatement)
	outer := assign.Value.(*ast.BinaryExpression)
	if outer.Operator != ast.OpPow {
		t.Fatalf("outer operator = %v, want OpPow", outer.Operator)
	}
	left, ok := outer.Left.(*ast.IntegerLiteral)
	if !ok || left.Value != 2 {
		t.Fatalf("left operand = %#v, want IntegerLiteral 2", outer.Left)
	}
	inner, ok := outer.Right.(*ast.BinaryExpression)
	if !ok || inner.Operator != ast.OpPow {
		t.Fatalf("right operand = %#v, want nested OpPow", outer.Right)
	}
}

func TestParseUnaryPlusIsDiscardedNoOp(t *testing.T) {
	// `+5` parses as the literal itself, not a wrapped unary node, matching
	// the original implementation's pass-through evaluation of unary plus.
	prog := parseSource(t, "x <- +5\n")
	assign := prog.Statements[0].(*ast.AssignStatement)
	lit, ok := assign.Value.(*ast.IntegerLiteral)
	if !ok || lit.Value != 5 {
		t.Fatalf("value = %#v, want IntegerLiteral 5", assign.Value)
	}
}

func TestParseUnaryMinusStillNegates(t *testing.T) {
	prog := parseSource(t, "x <- -5\n")
	assign := prog.Statements[0].(*ast.AssignStatement)
	neg, ok := assign.Value.(*ast.UnaryExpression)
	if !ok || neg.Operator != ast.OpNeg {
		t.Fatalf("value = %#v, want UnaryExpression OpNeg", assign.Value)
	}
}

func TestParseUnaryPlusBeforeVariableReference(t *testing.T) {
	prog := parseSource(t, "OUTPUT +y\n")
	out := prog.Statements[0].(*ast.OutputStatement)
	ident, ok := out.Values[0].(*ast.Identifier)
	if !ok || ident.Name != "y" {
		t.Fatalf("value = %#v, want Identifier y", out.Values[0])
	}
}

func TestParseIfStatement(t *testing.T) {
	src := "IF x > 0 THEN\n    y <- 1\nELSE\n    y <- 2\nENDIF\n"
	prog := parseSource(t, src)
	ifs := prog.Statements[0].(*ast.IfStatement)
	if len(ifs.Then) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("got %d then / %d else statements, want 1 / 1", len(ifs.Then), len(ifs.Else))
	}
	cond, ok := ifs.Condition.(*ast.BinaryExpression)
	if !ok || cond.Operator != ast.OpGt {
		t.Errorf("condition = %#v, want OpGt", ifs.Condition)
	}
}

func TestParseForStatementDefaultStep(t *testing.T) {
	src := "FOR i <- 1 TO 10\n    OUTPUT i\nNEXT i\n"
	prog := parseSource(t, src)
	forStmt := prog.Statements[0].(*ast.ForStatement)
	if forStmt.Variable != "i" {
		t.Errorf("Variable = %q, want %q", forStmt.Variable, "i")
	}
	if forStmt.Step != nil {
		t.Errorf("Step = %#v, want nil", forStmt.Step)
	}
}

func TestParseForStatementExplicitStep(t *testing.T) {
	src := "FOR i <- 10 TO 1 STEP -1\n    OUTPUT i\nNEXT i\n"
	prog := parseSource(t, src)
	forStmt := prog.Statements[0].(*ast.ForStatement)
	if forStmt.Step == nil {
		t.Fatal("Step = nil, want a UnaryExpression")
	}
	if _, ok := forStmt.Step.(*ast.UnaryExpression); !ok {
		t.Errorf("Step = %#v, want *ast.UnaryExpression", forStmt.Step)
	}
}

func TestParseCaseStatementWithRangeAndOtherwise(t *testing.T) {
	src := "CASE OF grade\n    1 ... 3 : OUTPUT \"low\"\n    4 : OUTPUT \"mid\"\n    OTHERWISE : OUTPUT \"high\"\nENDCASE\n"
	prog := parseSource(t, src)
	caseStmt := prog.Statements[0].(*ast.CaseStatement)
	if len(caseStmt.Branches) != 2 {
		t.Fatalf("got %d branches, want 2", len(caseStmt.Branches))
	}
	if _, ok := caseStmt.Branches[0].Values[0].(*ast.CaseRange); !ok {
		t.Errorf("first branch value = %#v, want *ast.CaseRange", caseStmt.Branches[0].Values[0])
	}
	if caseStmt.Otherwise == nil {
		t.Error("Otherwise = nil, want a populated OTHERWISE branch")
	}
}

func TestParseProcedureWithByRefParameter(t *testing.T) {
	src := "PROCEDURE Swap(BYREF a : INTEGER, BYREF b : INTEGER)\n    DECLARE t : INTEGER\nENDPROCEDURE\n"
	prog := parseSource(t, src)
	proc := prog.Statements[0].(*ast.ProcedureStatement)
	if len(proc.Parameters) != 2 {
		t.Fatalf("got %d parameters, want 2", len(proc.Parameters))
	}
	for _, p := range proc.Parameters {
		if !p.ByRef {
			t.Errorf("parameter %s ByRef = false, want true", p.Name)
		}
	}
}

func TestParseFunctionWithReturn(t *testing.T) {
	src := "FUNCTION Square(n : INTEGER) RETURNS INTEGER\n    RETURN n * n\nENDFUNCTION\n"
	prog := parseSource(t, src)
	fn := prog.Statements[0].(*ast.FunctionStatement)
	retType, ok := fn.ReturnType.(*ast.SimpleType)
	if !ok || retType.Name != "INTEGER" {
		t.Errorf("ReturnType = %#v, want SimpleType INTEGER", fn.ReturnType)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*ast.ReturnStatement); !ok {
		t.Errorf("body[0] = %T, want *ast.ReturnStatement", fn.Body[0])
	}
}

func TestParseIndexAndFieldChaining(t *testing.T) {
	prog := parseSource(t, "x <- a[1].b[2]\n")
	assign := prog.Statements[0].(*ast.AssignStatement)
	outerIndex, ok := assign.Value.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("Value = %T, want *ast.IndexExpression", assign.Value)
	}
	field, ok := outerIndex.Base.(*ast.FieldAccessExpression)
	if !ok || field.Field != "b" {
		t.Fatalf("Base = %#v, want FieldAccessExpression{Field: \"b\"}", outerIndex.Base)
	}
	innerIndex, ok := field.Base.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("field.Base = %T, want *ast.IndexExpression", field.Base)
	}
	if _, ok := innerIndex.Base.(*ast.Identifier); !ok {
		t.Errorf("innermost base = %T, want *ast.Identifier", innerIndex.Base)
	}
}

func TestParseCallExpressionArguments(t *testing.T) {
	prog := parseSource(t, "x <- Add(1, 2, 3)\n")
	assign := prog.Statements[0].(*ast.AssignStatement)
	call, ok := assign.Value.(*ast.CallExpression)
	if !ok {
		t.Fatalf("Value = %T, want *ast.CallExpression", assign.Value)
	}
	if call.Name != "Add" || len(call.Arguments) != 3 {
		t.Errorf("call = %#v, want Add with 3 arguments", call)
	}
}

func TestParseTypeDefStatement(t *testing.T) {
	src := "TYPE Point\n    x : INTEGER\n    y : INTEGER\nENDTYPE\n"
	prog := parseSource(t, src)
	typeDef := prog.Statements[0].(*ast.TypeDefStatement)
	if typeDef.Name != "Point" {
		t.Errorf("Name = %q, want %q", typeDef.Name, "Point")
	}
	if len(typeDef.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(typeDef.Fields))
	}
}

func TestParseFileStatements(t *testing.T) {
	src := "OPENFILE \"data.txt\" FOR READ\nREADFILE \"data.txt\", line\nCLOSEFILE \"data.txt\"\n"
	prog := parseSource(t, src)
	if len(prog.Statements) != 3 {
		t.Fatalf("got %d statements, want 3", len(prog.Statements))
	}
	open, ok := prog.Statements[0].(*ast.FileOpenStatement)
	if !ok || open.Mode != "READ" {
		t.Errorf("statement[0] = %#v, want FileOpenStatement{Mode: READ}", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ast.FileReadStatement); !ok {
		t.Errorf("statement[1] = %T, want *ast.FileReadStatement", prog.Statements[1])
	}
	if _, ok := prog.Statements[2].(*ast.FileCloseStatement); !ok {
		t.Errorf("statement[2] = %T, want *ast.FileCloseStatement", prog.Statements[2])
	}
}

func TestParseSyntaxErrorReturnsFirstError(t *testing.T) {
	tokens, err := lexer.New("x <- \n").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	_, perr := Parse(tokens)
	if perr == nil {
		t.Fatal("Parse() error = nil, want a SyntaxError")
	}
	if _, ok := perr.(*SyntaxError); !ok {
		t.Errorf("Parse() error type = %T, want *SyntaxError", perr)
	}
}
