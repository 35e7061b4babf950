package builtins

import (
	"time"

	"github.com/aclevel/pseudocode/internal/runtime"
)

func registerDateTime(r *Registry) {
	r.Register("TODAY", CategoryDateTime, 0, biTODAY)
	r.Register("DAY", CategoryDateTime, 1, biDAY)
	r.Register("MONTH", CategoryDateTime, 1, biMONTH)
	r.Register("YEAR", CategoryDateTime, 1, biYEAR)
	r.Register("DAYINDEX", CategoryDateTime, 1, biDAYINDEX)
	r.Register("SETDATE", CategoryDateTime, 3, biSETDATE)
	r.Register("DATEDIFF", CategoryDateTime, 2, biDATEDIFF)
}

func biTODAY(_ Context, _ []runtime.Value, _, _ int) (runtime.Value, error) {
	now := time.Now()
	return runtime.Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}, nil
}

func biDAY(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	d, err := argDate(args, 0, "DAY", line, col)
	if err != nil {
		return nil, err
	}
	return runtime.Integer(d.Day), nil
}

func biMONTH(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	d, err := argDate(args, 0, "MONTH", line, col)
	if err != nil {
		return nil, err
	}
	return runtime.Integer(d.Month), nil
}

func biYEAR(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	d, err := argDate(args, 0, "YEAR", line, col)
	if err != nil {
		return nil, err
	}
	return runtime.Integer(d.Year), nil
}

// biDAYINDEX returns the day of the week as Sun=1 .. Sat=7.
func biDAYINDEX(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	d, err := argDate(args, 0, "DAYINDEX", line, col)
	if err != nil {
		return nil, err
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return runtime.Integer(int(t.Weekday()) + 1), nil
}

func biSETDATE(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	d, err := argInt(args, 0, "SETDATE", line, col)
	if err != nil {
		return nil, err
	}
	m, err := argInt(args, 1, "SETDATE", line, col)
	if err != nil {
		return nil, err
	}
	y, err := argInt(args, 2, "SETDATE", line, col)
	if err != nil {
		return nil, err
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return nil, runtime.NewBuiltinError(line, col, "SETDATE", "day/month out of range")
	}
	return runtime.Date{Year: int(y), Month: int(m), Day: int(d)}, nil
}

func biDATEDIFF(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	a, err := argDate(args, 0, "DATEDIFF", line, col)
	if err != nil {
		return nil, err
	}
	b, err := argDate(args, 1, "DATEDIFF", line, col)
	if err != nil {
		return nil, err
	}
	return runtime.Integer(a.Ordinal() - b.Ordinal()), nil
}
