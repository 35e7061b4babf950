package builtins

import (
	"strconv"
	"strings"

	"github.com/aclevel/pseudocode/internal/runtime"
)

func registerConversion(r *Registry) {
	r.Register("NUM_TO_STR", CategoryConversion, 1, biNumToStr)
	r.Register("STR_TO_NUM", CategoryConversion, 1, biStrToNum)
	r.Register("IS_NUM", CategoryConversion, 1, biIsNum)
}

func biNumToStr(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	if !isNumeric(args[0]) {
		return nil, runtime.NewBuiltinError(line, col, "NUM_TO_STR", "expected a numeric argument")
	}
	return runtime.String(args[0].String()), nil
}

// biStrToNum parses s as INTEGER if it has no decimal point, else REAL, as
// spec's table requires. Round-tripping through NUM_TO_STR must recover
// the original value and kind, so the split on "." mirrors how the
// canonical REAL/INTEGER forms are produced in the first place.
func biStrToNum(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	s, err := argString(args, 0, "STR_TO_NUM", line, col)
	if err != nil {
		return nil, err
	}
	return parseNumber(strings.TrimSpace(s))
}

func biIsNum(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	s, err := argString(args, 0, "IS_NUM", line, col)
	if err != nil {
		return nil, err
	}
	_, parseErr := parseNumber(strings.TrimSpace(s))
	return runtime.Boolean(parseErr == nil), nil
}

// parseNumber is the shared STR_TO_NUM/IS_NUM/INT parsing rule: an
// INTEGER if s contains no '.', else a REAL.
func parseNumber(s string) (runtime.Value, error) {
	if s == "" {
		return nil, runtime.NewValueConversion(0, 0, s, runtime.KindInteger)
	}
	if !strings.Contains(s, ".") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, runtime.NewValueConversion(0, 0, s, runtime.KindInteger)
		}
		return runtime.Integer(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, runtime.NewValueConversion(0, 0, s, runtime.KindReal)
	}
	return runtime.Real(f), nil
}

func toFloat(v runtime.Value) float64 {
	switch n := v.(type) {
	case runtime.Integer:
		return float64(n)
	case runtime.Real:
		return float64(n)
	default:
		return 0
	}
}
