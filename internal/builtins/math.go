package builtins

import (
	"math"
	"math/rand"

	"github.com/aclevel/pseudocode/internal/runtime"
)

func registerMath(r *Registry) {
	r.Register("ABS", CategoryMath, 1, biABS)
	r.Register("SQRT", CategoryMath, 1, biSQRT)
	r.Register("POWER", CategoryMath, 2, biPOWER)
	r.Register("ROUND", CategoryMath, 1, biROUND)
	r.Register("MOD", CategoryMath, 2, biMOD)
	r.Register("DIV", CategoryMath, 2, biDIV)
	r.Register("INT", CategoryMath, 1, biINT)
	r.Register("RAND", CategoryMath, 1, biRAND)
	r.Register("RANDOM", CategoryMath, 0, biRANDOM)
	r.Register("RANDOMINT", CategoryMath, 2, biRANDOMINT)
}

func biABS(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.Integer:
		if v < 0 {
			return -v, nil
		}
		return v, nil
	case runtime.Real:
		return runtime.Real(math.Abs(float64(v))), nil
	default:
		return nil, runtime.NewBuiltinError(line, col, "ABS", "expected a numeric argument")
	}
}

func biSQRT(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	x, err := argFloat(args, 0, "SQRT", line, col)
	if err != nil {
		return nil, err
	}
	if x < 0 {
		return nil, runtime.NewBuiltinError(line, col, "SQRT", "argument must not be negative")
	}
	return runtime.Real(math.Sqrt(x)), nil
}

func biPOWER(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	base, err := argFloat(args, 0, "POWER", line, col)
	if err != nil {
		return nil, err
	}
	exp, err := argFloat(args, 1, "POWER", line, col)
	if err != nil {
		return nil, err
	}
	result := math.Pow(base, exp)
	bothInt := args[0].Kind() == runtime.KindInteger && args[1].Kind() == runtime.KindInteger
	if bothInt && result == math.Trunc(result) {
		return runtime.Integer(int64(result)), nil
	}
	return runtime.Real(result), nil
}

// biROUND rounds half away from zero, matching the reference
// implementation's plain rounding rather than banker's rounding.
func biROUND(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	x, err := argFloat(args, 0, "ROUND", line, col)
	if err != nil {
		return nil, err
	}
	if x >= 0 {
		return runtime.Integer(int64(math.Floor(x + 0.5))), nil
	}
	return runtime.Integer(int64(math.Ceil(x - 0.5))), nil
}

func biMOD(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	a, err := argInt(args, 0, "MOD", line, col)
	if err != nil {
		return nil, err
	}
	b, err := argInt(args, 1, "MOD", line, col)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, runtime.NewZeroDivision(line, col, "MOD")
	}
	return runtime.Integer(a % b), nil
}

func biDIV(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	a, err := argInt(args, 0, "DIV", line, col)
	if err != nil {
		return nil, err
	}
	b, err := argInt(args, 1, "DIV", line, col)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, runtime.NewZeroDivision(line, col, "DIV")
	}
	return runtime.Integer(a / b), nil
}

// biINT truncates toward zero. It accepts a numeric argument directly or
// a STRING, parsed the same way STR_TO_NUM parses one.
func biINT(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.Integer:
		return v, nil
	case runtime.Real:
		return runtime.Integer(int64(v)), nil
	case runtime.String:
		n, err := parseNumber(string(v))
		if err != nil {
			return nil, runtime.NewBuiltinError(line, col, "INT", "argument is not numeric")
		}
		return runtime.Integer(int64(toFloat(n))), nil
	default:
		return nil, runtime.NewBuiltinError(line, col, "INT", "expected a numeric or STRING argument")
	}
}

func biRAND(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	u, err := argFloat(args, 0, "RAND", line, col)
	if err != nil {
		return nil, err
	}
	if u <= 0 {
		return nil, runtime.NewBuiltinError(line, col, "RAND", "upper bound must be positive")
	}
	return runtime.Real(rand.Float64() * u), nil
}

func biRANDOM(_ Context, _ []runtime.Value, _, _ int) (runtime.Value, error) {
	return runtime.Real(rand.Float64()), nil
}

func biRANDOMINT(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	lo, err := argInt(args, 0, "RANDOMINT", line, col)
	if err != nil {
		return nil, err
	}
	hi, err := argInt(args, 1, "RANDOMINT", line, col)
	if err != nil {
		return nil, err
	}
	if hi < lo {
		return nil, runtime.NewBuiltinError(line, col, "RANDOMINT", "upper bound must not be less than lower bound")
	}
	return runtime.Integer(lo + rand.Int63n(hi-lo+1)), nil
}
