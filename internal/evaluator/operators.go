package evaluator

import (
	"math"
	"strings"

	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/runtime"
)

func asFloat(v runtime.Value) (float64, bool) {
	switch n := v.(type) {
	case runtime.Integer:
		return float64(n), true
	case runtime.Real:
		return float64(n), true
	default:
		return 0, false
	}
}

func isNumericKind(k runtime.Kind) bool {
	return k == runtime.KindInteger || k == runtime.KindReal
}

// evalBinary implements the full operator-semantics table of §4.3.
func (it *Interpreter) evalBinary(op ast.BinaryOperator, left, right runtime.Value, line, col int) (runtime.Value, error) {
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul:
		return it.evalArith(op, left, right, line, col)
	case ast.OpDiv:
		return it.evalDivide(left, right, line, col)
	case ast.OpPow:
		return it.evalPower(left, right, line, col)
	case ast.OpConcat:
		return runtime.String(left.String() + right.String()), nil
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return it.evalComparison(op, left, right)
	case ast.OpAnd:
		return it.evalBooleanOp(op, left, right, line, col)
	case ast.OpOr:
		return it.evalBooleanOp(op, left, right, line, col)
	default:
		return nil, runtime.NewTypeMismatch(line, col, "", left.Kind(), right.Kind())
	}
}

func (it *Interpreter) evalArith(op ast.BinaryOperator, left, right runtime.Value, line, col int) (runtime.Value, error) {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, runtime.NewTypeMismatch(line, col, "", runtime.KindInteger, badKind(left, right))
	}

	real := left.Kind() == runtime.KindReal || right.Kind() == runtime.KindReal

	var result float64
	switch op {
	case ast.OpAdd:
		result = lf + rf
	case ast.OpSub:
		result = lf - rf
	case ast.OpMul:
		result = lf * rf
	}

	if real {
		return runtime.Real(result), nil
	}
	return runtime.Integer(int64(result)), nil
}

func (it *Interpreter) evalDivide(left, right runtime.Value, line, col int) (runtime.Value, error) {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, runtime.NewTypeMismatch(line, col, "", runtime.KindInteger, badKind(left, right))
	}
	if rf == 0 {
		return nil, runtime.NewZeroDivision(line, col, "/")
	}
	return runtime.Real(lf / rf), nil
}

func (it *Interpreter) evalPower(left, right runtime.Value, line, col int) (runtime.Value, error) {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, runtime.NewTypeMismatch(line, col, "", runtime.KindInteger, badKind(left, right))
	}
	result := math.Pow(lf, rf)
	bothInt := left.Kind() == runtime.KindInteger && right.Kind() == runtime.KindInteger
	if bothInt && result == float64(int64(result)) {
		return runtime.Integer(int64(result)), nil
	}
	return runtime.Real(result), nil
}

func (it *Interpreter) evalComparison(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	var cmp int
	if isNumericKind(left.Kind()) && isNumericKind(right.Kind()) {
		lf, _ := asFloat(left)
		rf, _ := asFloat(right)
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(left.String(), right.String())
	}

	switch op {
	case ast.OpEq:
		return runtime.Boolean(cmp == 0), nil
	case ast.OpNe:
		return runtime.Boolean(cmp != 0), nil
	case ast.OpLt:
		return runtime.Boolean(cmp < 0), nil
	case ast.OpGt:
		return runtime.Boolean(cmp > 0), nil
	case ast.OpLe:
		return runtime.Boolean(cmp <= 0), nil
	case ast.OpGe:
		return runtime.Boolean(cmp >= 0), nil
	default:
		return runtime.Boolean(false), nil
	}
}

func (it *Interpreter) evalBooleanOp(op ast.BinaryOperator, left, right runtime.Value, line, col int) (runtime.Value, error) {
	lb, lok := left.(runtime.Boolean)
	rb, rok := right.(runtime.Boolean)
	if !lok || !rok {
		return nil, runtime.NewTypeMismatch(line, col, "", runtime.KindBoolean, badKind(left, right))
	}
	if op == ast.OpAnd {
		return runtime.Boolean(bool(lb) && bool(rb)), nil
	}
	return runtime.Boolean(bool(lb) || bool(rb)), nil
}

func (it *Interpreter) evalUnary(op ast.UnaryOperator, operand runtime.Value, line, col int) (runtime.Value, error) {
	switch op {
	case ast.OpNeg:
		switch v := operand.(type) {
		case runtime.Integer:
			return -v, nil
		case runtime.Real:
			return -v, nil
		default:
			return nil, runtime.NewTypeMismatch(line, col, "", runtime.KindInteger, operand.Kind())
		}
	case ast.OpNot:
		b, ok := operand.(runtime.Boolean)
		if !ok {
			return nil, runtime.NewTypeMismatch(line, col, "", runtime.KindBoolean, operand.Kind())
		}
		return !b, nil
	default:
		return nil, runtime.NewTypeMismatch(line, col, "", runtime.KindInteger, operand.Kind())
	}
}

func badKind(left, right runtime.Value) runtime.Kind {
	if !isNumericKind(left.Kind()) {
		return left.Kind()
	}
	return right.Kind()
}
