package evaluator

import (
	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/runtime"
)

// evalExpression dispatches on the concrete AST expression type, the
// evaluator's single point of variant dispatch for values.
func (it *Interpreter) evalExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.Integer(e.Value), nil
	case *ast.RealLiteral:
		return runtime.Real(e.Value), nil
	case *ast.StringLiteral:
		return runtime.String(e.Value), nil
	case *ast.CharLiteral:
		return runtime.Char(e.Value), nil
	case *ast.BooleanLiteral:
		return runtime.Boolean(e.Value), nil

	case *ast.Identifier:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, runtime.NewUndeclaredVariable(e.Position.Line, e.Position.Column, e.Name)
		}
		return v, nil

	case *ast.IndexExpression, *ast.FieldAccessExpression:
		p, err := it.resolvePlace(expr.(ast.Assignable), env)
		if err != nil {
			return nil, err
		}
		return p.get()

	case *ast.BinaryExpression:
		left, err := it.evalExpression(e.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := it.evalExpression(e.Right, env)
		if err != nil {
			return nil, err
		}
		return it.evalBinary(e.Operator, left, right, e.Position.Line, e.Position.Column)

	case *ast.UnaryExpression:
		operand, err := it.evalExpression(e.Operand, env)
		if err != nil {
			return nil, err
		}
		return it.evalUnary(e.Operator, operand, e.Position.Line, e.Position.Column)

	case *ast.CallExpression:
		return it.callForValue(e, env)

	default:
		return nil, runtime.NewUndeclaredVariable(expr.Pos().Line, expr.Pos().Column, "?")
	}
}
