package builtins

import "github.com/aclevel/pseudocode/internal/runtime"

func registerIO(r *Registry) {
	r.Register("EOF", CategoryIO, 1, biEOF)
}

func biEOF(ctx Context, args []runtime.Value, line, col int) (runtime.Value, error) {
	id, err := argString(args, 0, "EOF", line, col)
	if err != nil {
		return nil, err
	}
	atEOF, ferr := ctx.FileEOF(id)
	if ferr != nil {
		return nil, ferr
	}
	return runtime.Boolean(atEOF), nil
}
