package builtins

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aclevel/pseudocode/internal/runtime"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

func registerStrings(r *Registry) {
	r.Register("ASC", CategoryString, 1, biASC)
	r.Register("CHR", CategoryString, 1, biCHR)
	r.Register("LENGTH", CategoryString, 1, biLENGTH)
	r.Register("LEFT", CategoryString, 2, biLEFT)
	r.Register("RIGHT", CategoryString, 2, biRIGHT)
	r.Register("MID", CategoryString, 3, biMID)
	r.Register("TO_UPPER", CategoryString, 1, biToUpper)
	r.Register("UCASE", CategoryString, 1, biToUpper)
	r.Register("TO_LOWER", CategoryString, 1, biToLower)
	r.Register("LCASE", CategoryString, 1, biToLower)
}

func biASC(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	s, err := argString(args, 0, "ASC", line, col)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, runtime.NewBuiltinError(line, col, "ASC", "argument must not be empty")
	}
	return runtime.Integer(runes[0]), nil
}

func biCHR(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	n, err := argInt(args, 0, "CHR", line, col)
	if err != nil {
		return nil, err
	}
	return runtime.Char(rune(n)), nil
}

func biLENGTH(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	s, err := argString(args, 0, "LENGTH", line, col)
	if err != nil {
		return nil, err
	}
	return runtime.Integer(len([]rune(s))), nil
}

func biLEFT(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	s, err := argString(args, 0, "LEFT", line, col)
	if err != nil {
		return nil, err
	}
	n, err := argInt(args, 1, "LEFT", line, col)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if n < 0 || int(n) > len(runes) {
		return nil, runtime.NewBuiltinError(line, col, "LEFT", "length out of range")
	}
	return runtime.String(string(runes[:n])), nil
}

func biRIGHT(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	s, err := argString(args, 0, "RIGHT", line, col)
	if err != nil {
		return nil, err
	}
	n, err := argInt(args, 1, "RIGHT", line, col)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if n < 0 || int(n) > len(runes) {
		return nil, runtime.NewBuiltinError(line, col, "RIGHT", "length out of range")
	}
	return runtime.String(string(runes[len(runes)-int(n):])), nil
}

func biMID(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	s, err := argString(args, 0, "MID", line, col)
	if err != nil {
		return nil, err
	}
	start, err := argInt(args, 1, "MID", line, col)
	if err != nil {
		return nil, err
	}
	length, err := argInt(args, 2, "MID", line, col)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if start < 1 || length < 0 || int(start-1+length) > len(runes) {
		return nil, runtime.NewBuiltinError(line, col, "MID", "start/length out of range")
	}
	return runtime.String(string(runes[start-1 : start-1+length])), nil
}

func biToUpper(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	s, err := argString(args, 0, "TO_UPPER", line, col)
	if err != nil {
		return nil, err
	}
	return runtime.String(upperCaser.String(s)), nil
}

func biToLower(_ Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	s, err := argString(args, 0, "TO_LOWER", line, col)
	if err != nil {
		return nil, err
	}
	return runtime.String(lowerCaser.String(s)), nil
}
