package builtins

import (
	"github.com/aclevel/pseudocode/internal/runtime"
)

func argString(args []runtime.Value, i int, name string, line, col int) (string, error) {
	switch v := args[i].(type) {
	case runtime.String:
		return string(v), nil
	case runtime.Char:
		return string(rune(v)), nil
	default:
		return "", runtime.NewBuiltinError(line, col, name, "expected a STRING or CHAR argument")
	}
}

func argInt(args []runtime.Value, i int, name string, line, col int) (int64, error) {
	switch v := args[i].(type) {
	case runtime.Integer:
		return int64(v), nil
	case runtime.Real:
		return int64(v), nil
	default:
		return 0, runtime.NewBuiltinError(line, col, name, "expected a numeric argument")
	}
}

func argFloat(args []runtime.Value, i int, name string, line, col int) (float64, error) {
	switch v := args[i].(type) {
	case runtime.Integer:
		return float64(v), nil
	case runtime.Real:
		return float64(v), nil
	default:
		return 0, runtime.NewBuiltinError(line, col, name, "expected a numeric argument")
	}
}

func argDate(args []runtime.Value, i int, name string, line, col int) (runtime.Date, error) {
	d, ok := args[i].(runtime.Date)
	if !ok {
		return runtime.Date{}, runtime.NewBuiltinError(line, col, name, "expected a DATE argument")
	}
	return d, nil
}

// isNumeric reports whether v is INTEGER or REAL.
func isNumeric(v runtime.Value) bool {
	return v.Kind() == runtime.KindInteger || v.Kind() == runtime.KindReal
}
