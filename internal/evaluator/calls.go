package evaluator

import (
	"fmt"

	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/builtins"
	"github.com/aclevel/pseudocode/internal/runtime"
)

// returnSignal is a structured early-exit carried through the normal
// error-return channel, distinct from a real failure: it unwinds
// exec/eval calls up to the routine-call boundary that is waiting for it,
// the way spec's design notes describe RETURN as control flow rather than
// as an exception shared with genuine errors.
type returnSignal struct {
	Value runtime.Value
}

func (r *returnSignal) Error() string { return "return outside function call" }

// FileEOF implements builtins.Context, letting EOF() query the file
// table without the builtins package depending on this one.
func (it *Interpreter) FileEOF(id string) (bool, error) {
	return it.Files.EOF(id)
}

// callForValue resolves a call used in a value context: built-ins first,
// then user-defined functions, per spec's call-name resolution order.
func (it *Interpreter) callForValue(call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	line, col := call.Position.Line, call.Position.Column

	if fn, ok := it.builtins.Lookup(call.Name); ok {
		args, err := it.evalArgs(call.Arguments, env)
		if err != nil {
			return nil, err
		}
		v, err := fn(it, args, line, col)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	routine, ok := env.LookupFunction(call.Name)
	if !ok {
		if _, isProc := env.LookupProcedure(call.Name); isProc {
			return nil, runtime.NewUnknownRoutine(line, col, call.Name)
		}
		return nil, runtime.NewUnknownRoutine(line, col, call.Name)
	}

	return it.invokeFunction(routine, call, env)
}

// callForEffect resolves a CALL statement: built-ins first (a built-in
// used for effect, though none in §4.7 are procedures, stays consistent
// with the resolution order), then user-defined procedures.
func (it *Interpreter) callForEffect(call *ast.CallExpression, env *runtime.Environment) error {
	line, col := call.Position.Line, call.Position.Column

	if fn, ok := it.builtins.Lookup(call.Name); ok {
		args, err := it.evalArgs(call.Arguments, env)
		if err != nil {
			return err
		}
		_, err = fn(it, args, line, col)
		return err
	}

	routine, ok := env.LookupProcedure(call.Name)
	if !ok {
		return runtime.NewUnknownRoutine(line, col, call.Name)
	}

	_, err := it.invokeProcedure(routine, call, env)
	return err
}

func (it *Interpreter) evalArgs(exprs []ast.Expression, env *runtime.Environment) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(exprs))
	for _, e := range exprs {
		v, err := it.evalExpression(e, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func (it *Interpreter) invokeProcedure(routine *runtime.Routine, call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	return it.invokeRoutine(routine, call, env)
}

func (it *Interpreter) invokeFunction(routine *runtime.Routine, call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	return it.invokeRoutine(routine, call, env)
}

// invokeRoutine implements the shared binding/call/return-signal/by-ref
// write-back machinery for both procedures and functions.
//
// Per the preserved dynamic-scope-on-call quirk (spec §9 open question
// 1), the routine body runs in a child of the *caller's current scope*
// (env, the scope active at the call site), not a child of the scope the
// routine was defined in. This leaks caller-local names into the callee
// and is intentional, not an oversight.
func (it *Interpreter) invokeRoutine(routine *runtime.Routine, call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	line, col := call.Position.Line, call.Position.Column

	if len(call.Arguments) != len(routine.Parameters) {
		return nil, runtime.NewArgArityMismatch(line, col, routine.Name, len(routine.Parameters), len(call.Arguments))
	}

	if it.Options.MaxDepth > 0 && it.depth >= it.Options.MaxDepth {
		return nil, runtime.NewBuiltinError(line, col, "CALL", fmt.Sprintf("recursion depth exceeded %d calling %s", it.Options.MaxDepth, routine.Name))
	}
	it.depth++
	defer func() { it.depth-- }()

	callScope := env.NewEnclosed()

	type backref struct {
		place place
		name  string
	}
	var writebacks []backref

	for i, param := range routine.Parameters {
		argExpr := call.Arguments[i]

		if param.ByRef {
			a, ok := argExpr.(ast.Assignable)
			if !ok {
				return nil, runtime.NewByRefRequiresVariable(line, col, param.Name)
			}
			p, err := it.resolvePlace(a, env)
			if err != nil {
				return nil, err
			}
			v, err := p.get()
			if err != nil {
				return nil, err
			}
			coerced, ok := coerceArgument(param.Kind, v)
			if !ok {
				return nil, runtime.NewTypeMismatch(line, col, param.Name, param.Kind, v.Kind())
			}
			callScope.DeclareVariable(param.Name, coerced)
			writebacks = append(writebacks, backref{place: p, name: param.Name})
			continue
		}

		v, err := it.evalExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		coerced, ok := coerceArgument(param.Kind, v)
		if !ok {
			return nil, runtime.NewTypeMismatch(line, col, param.Name, param.Kind, v.Kind())
		}
		callScope.DeclareVariable(param.Name, runtime.CloneValue(coerced))
	}

	body := routine.Body.([]ast.Statement)
	err := it.execStatements(body, callScope)

	var result runtime.Value
	if rs, ok := err.(*returnSignal); ok {
		if routine.Kind == runtime.RoutineProcedure {
			return nil, runtime.NewTypeMismatch(line, col, routine.Name, runtime.KindInteger, rs.Value.Kind())
		}
		result = rs.Value
		err = nil
	} else if err != nil {
		return nil, err
	} else if routine.Kind == runtime.RoutineFunction {
		return nil, runtime.NewMissingReturn(line, col, routine.Name)
	}

	for _, wb := range writebacks {
		finalVal, _ := callScope.Get(wb.name)
		if werr := wb.place.set(finalVal); werr != nil {
			return nil, werr
		}
	}

	return result, nil
}

// coerceArgument binds an argument value to a parameter's declared Kind.
// ParamSpec.Kind is a bare enum with no element-kind/type-name detail for
// ARRAY/RECORD parameters, so there is no zero value runtime.ZeroValue can
// build for runtime.Coerce to compare shapes against the way it can for
// scalar kinds; matching the argument's own Kind against the declared one
// is the check available at this level.
func coerceArgument(declared runtime.Kind, v runtime.Value) (runtime.Value, bool) {
	if declared == runtime.KindArray || declared == runtime.KindRecord {
		if v == nil || v.Kind() != declared {
			return nil, false
		}
		return v, true
	}
	return runtime.Coerce(runtime.ZeroValue(declared), v)
}

// builtinsContext adapts *Interpreter to builtins.Context; defined for
// clarity at the call boundary even though *Interpreter already satisfies
// the interface structurally via FileEOF.
var _ builtins.Context = (*Interpreter)(nil)
