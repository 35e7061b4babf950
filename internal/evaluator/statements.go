package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/runtime"
)

// execStatement dispatches on the concrete AST statement type.
func (it *Interpreter) execStatement(stmt ast.Statement, env *runtime.Environment) error {
	if it.trace != nil {
		fmt.Fprintf(it.trace, "%T at %d:%d\n", stmt, stmt.Pos().Line, stmt.Pos().Column)
	}

	switch s := stmt.(type) {
	case *ast.DeclareStatement:
		return it.execDeclare(s, env)
	case *ast.ConstantStatement:
		return it.execConstant(s, env)
	case *ast.TypeDefStatement:
		return it.registerTypeDef(s, env)
	case *ast.AssignStatement:
		return it.execAssign(s, env)
	case *ast.InputStatement:
		return it.execInput(s, env)
	case *ast.OutputStatement:
		return it.execOutput(s, env)
	case *ast.ReturnStatement:
		v, err := it.evalExpression(s.Value, env)
		if err != nil {
			return err
		}
		return &returnSignal{Value: v}
	case *ast.CallStatement:
		return it.callForEffect(s.Call, env)
	case *ast.IfStatement:
		return it.execIf(s, env)
	case *ast.CaseStatement:
		return it.execCase(s, env)
	case *ast.ForStatement:
		return it.execFor(s, env)
	case *ast.WhileStatement:
		return it.execWhile(s, env)
	case *ast.RepeatStatement:
		return it.execRepeat(s, env)
	case *ast.ProcedureStatement:
		return it.execProcedureDef(s, env)
	case *ast.FunctionStatement:
		return it.execFunctionDef(s, env)
	case *ast.FileOpenStatement:
		return it.execFileOpen(s, env)
	case *ast.FileReadStatement:
		return it.execFileRead(s, env)
	case *ast.FileWriteStatement:
		return it.execFileWrite(s, env)
	case *ast.FileCloseStatement:
		return it.execFileClose(s, env)
	default:
		return runtime.NewUndeclaredVariable(stmt.Pos().Line, stmt.Pos().Column, "?")
	}
}

func (it *Interpreter) execDeclare(s *ast.DeclareStatement, env *runtime.Environment) error {
	// Reuses ConstantReassignmentError for a plain re-DECLAREd variable too,
	// not just a re-declared constant: both are "this name is already bound
	// in this scope", and the taxonomy has no separate "redeclaration" error.
	if env.HasLocal(s.Name) {
		return runtime.NewConstantReassignment(s.Position.Line, s.Position.Column, s.Name)
	}
	zero, err := it.zeroValue(s.Type, env)
	if err != nil {
		return err
	}
	env.DeclareVariable(s.Name, zero)
	return nil
}

func (it *Interpreter) execConstant(s *ast.ConstantStatement, env *runtime.Environment) error {
	if env.HasLocal(s.Name) {
		return runtime.NewConstantReassignment(s.Position.Line, s.Position.Column, s.Name)
	}
	v, err := it.evalExpression(s.Value, env)
	if err != nil {
		return err
	}
	env.DeclareConstant(s.Name, v)
	return nil
}

func (it *Interpreter) execAssign(s *ast.AssignStatement, env *runtime.Environment) error {
	v, err := it.evalExpression(s.Value, env)
	if err != nil {
		return err
	}
	p, err := it.resolvePlace(s.Target, env)
	if err != nil {
		return err
	}
	return p.set(v)
}

// execInput reads one line from stdin, infers its kind per §4.5, then
// assigns it through the target place under the usual coercion rules.
func (it *Interpreter) execInput(s *ast.InputStatement, env *runtime.Environment) error {
	line, err := it.stdin.ReadString('\n')
	if err != nil && line == "" {
		line = ""
	}
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimSpace(line)

	v := inferInputValue(line)

	p, err := it.resolvePlace(s.Target, env)
	if err != nil {
		return err
	}
	return p.set(v)
}

func inferInputValue(text string) runtime.Value {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return runtime.Integer(n)
	}
	if strings.Contains(text, ".") {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return runtime.Real(f)
		}
	}
	switch strings.ToUpper(text) {
	case "TRUE":
		return runtime.Boolean(true)
	case "FALSE":
		return runtime.Boolean(false)
	}
	return runtime.String(text)
}

// execOutput evaluates each item, renders its canonical string form, and
// writes them joined by a single space plus a trailing newline.
func (it *Interpreter) execOutput(s *ast.OutputStatement, env *runtime.Environment) error {
	parts := make([]string, 0, len(s.Values))
	for _, expr := range s.Values {
		v, err := it.evalExpression(expr, env)
		if err != nil {
			return err
		}
		parts = append(parts, v.String())
	}
	_, err := fmt.Fprintln(it.stdout, strings.Join(parts, " "))
	if err != nil {
		return runtime.NewIOError(s.Position.Line, s.Position.Column, "OUTPUT", err)
	}
	return nil
}

func (it *Interpreter) execIf(s *ast.IfStatement, env *runtime.Environment) error {
	cond, err := it.evalBoolean(s.Condition, env)
	if err != nil {
		return err
	}
	if cond {
		return it.execStatements(s.Then, env)
	}
	if s.Else != nil {
		return it.execStatements(s.Else, env)
	}
	return nil
}

func (it *Interpreter) evalBoolean(expr ast.Expression, env *runtime.Environment) (bool, error) {
	v, err := it.evalExpression(expr, env)
	if err != nil {
		return false, err
	}
	b, ok := v.(runtime.Boolean)
	if !ok {
		return false, runtime.NewTypeMismatch(expr.Pos().Line, expr.Pos().Column, "", runtime.KindBoolean, v.Kind())
	}
	return bool(b), nil
}

// execCase matches subject against each branch's values/ranges in order,
// falling back to OTHERWISE, then does nothing if no arm matches and
// there is no OTHERWISE.
func (it *Interpreter) execCase(s *ast.CaseStatement, env *runtime.Environment) error {
	subject, err := it.evalExpression(s.Subject, env)
	if err != nil {
		return err
	}

	for _, branch := range s.Branches {
		matched, err := it.caseBranchMatches(branch, subject, env)
		if err != nil {
			return err
		}
		if matched {
			return it.execStatements(branch.Body, env)
		}
	}

	if s.Otherwise != nil {
		return it.execStatements(s.Otherwise, env)
	}
	return nil
}

func (it *Interpreter) caseBranchMatches(branch ast.CaseBranch, subject runtime.Value, env *runtime.Environment) (bool, error) {
	for _, valueExpr := range branch.Values {
		if rng, ok := valueExpr.(*ast.CaseRange); ok {
			lo, err := it.evalExpression(rng.Low, env)
			if err != nil {
				return false, err
			}
			hi, err := it.evalExpression(rng.High, env)
			if err != nil {
				return false, err
			}
			loCmp, err := it.evalComparison(ast.OpLe, lo, subject)
			if err != nil {
				return false, err
			}
			hiCmp, err := it.evalComparison(ast.OpLe, subject, hi)
			if err != nil {
				return false, err
			}
			if bool(loCmp.(runtime.Boolean)) && bool(hiCmp.(runtime.Boolean)) {
				return true, nil
			}
			continue
		}

		v, err := it.evalExpression(valueExpr, env)
		if err != nil {
			return false, err
		}
		eq, err := it.evalComparison(ast.OpEq, subject, v)
		if err != nil {
			return false, err
		}
		if bool(eq.(runtime.Boolean)) {
			return true, nil
		}
	}
	return false, nil
}

// execFor implements the FOR/NEXT loop, including the preserved
// step-0 rejection from spec §9 open question 3 (not explicitly rejected
// by the original source, but required here).
func (it *Interpreter) execFor(s *ast.ForStatement, env *runtime.Environment) error {
	startV, err := it.evalExpression(s.Start, env)
	if err != nil {
		return err
	}
	endV, err := it.evalExpression(s.End, env)
	if err != nil {
		return err
	}
	start, ok := startV.(runtime.Integer)
	if !ok {
		return runtime.NewTypeMismatch(s.Position.Line, s.Position.Column, "FOR start", runtime.KindInteger, startV.Kind())
	}
	end, ok := endV.(runtime.Integer)
	if !ok {
		return runtime.NewTypeMismatch(s.Position.Line, s.Position.Column, "FOR end", runtime.KindInteger, endV.Kind())
	}

	step := runtime.Integer(1)
	if s.Step != nil {
		stepV, err := it.evalExpression(s.Step, env)
		if err != nil {
			return err
		}
		step, ok = stepV.(runtime.Integer)
		if !ok {
			return runtime.NewTypeMismatch(s.Position.Line, s.Position.Column, "FOR step", runtime.KindInteger, stepV.Kind())
		}
	}
	if step == 0 {
		return runtime.NewBuiltinError(s.Position.Line, s.Position.Column, "FOR", "step must not be zero")
	}

	for i := start; (step > 0 && i <= end) || (step < 0 && i >= end); i += step {
		env.DeclareVariable(s.Variable, i)
		if err := it.execStatements(s.Body, env); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) execWhile(s *ast.WhileStatement, env *runtime.Environment) error {
	for {
		cond, err := it.evalBoolean(s.Condition, env)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err := it.execStatements(s.Body, env); err != nil {
			return err
		}
	}
}

func (it *Interpreter) execRepeat(s *ast.RepeatStatement, env *runtime.Environment) error {
	for {
		if err := it.execStatements(s.Body, env); err != nil {
			return err
		}
		cond, err := it.evalBoolean(s.Condition, env)
		if err != nil {
			return err
		}
		if cond {
			return nil
		}
	}
}

func (it *Interpreter) execProcedureDef(s *ast.ProcedureStatement, env *runtime.Environment) error {
	params, err := it.resolveParams(s.Parameters, env)
	if err != nil {
		return err
	}
	env.DeclareProcedure(&runtime.Routine{
		Name:       s.Name,
		Kind:       runtime.RoutineProcedure,
		Parameters: params,
		Body:       s.Body,
		Defined:    env,
	})
	return nil
}

func (it *Interpreter) execFunctionDef(s *ast.FunctionStatement, env *runtime.Environment) error {
	params, err := it.resolveParams(s.Parameters, env)
	if err != nil {
		return err
	}
	retKind, err := it.kindOf(s.ReturnType, env)
	if err != nil {
		return err
	}
	env.DeclareFunction(&runtime.Routine{
		Name:       s.Name,
		Kind:       runtime.RoutineFunction,
		Parameters: params,
		ReturnKind: retKind,
		Body:       s.Body,
		Defined:    env,
	})
	return nil
}

func (it *Interpreter) resolveParams(params []ast.Parameter, env *runtime.Environment) ([]runtime.ParamSpec, error) {
	out := make([]runtime.ParamSpec, 0, len(params))
	for _, p := range params {
		k, err := it.kindOf(p.Type, env)
		if err != nil {
			return nil, err
		}
		out = append(out, runtime.ParamSpec{Name: p.Name, Kind: k, ByRef: p.ByRef})
	}
	return out, nil
}

func (it *Interpreter) execFileOpen(s *ast.FileOpenStatement, env *runtime.Environment) error {
	id, err := it.evalFileID(s.FileName, env)
	if err != nil {
		return err
	}
	mode := fileModeFromString(s.Mode)
	return it.Files.Open(id, id, mode)
}

func (it *Interpreter) execFileRead(s *ast.FileReadStatement, env *runtime.Environment) error {
	id, err := it.evalFileID(s.FileName, env)
	if err != nil {
		return err
	}
	line, err := it.Files.Read(id)
	if err != nil {
		return err
	}
	p, err := it.resolvePlace(s.Target, env)
	if err != nil {
		return err
	}
	return p.set(runtime.String(line))
}

func (it *Interpreter) execFileWrite(s *ast.FileWriteStatement, env *runtime.Environment) error {
	id, err := it.evalFileID(s.FileName, env)
	if err != nil {
		return err
	}
	v, err := it.evalExpression(s.Value, env)
	if err != nil {
		return err
	}
	return it.Files.Write(id, v.String())
}

func (it *Interpreter) execFileClose(s *ast.FileCloseStatement, env *runtime.Environment) error {
	id, err := it.evalFileID(s.FileName, env)
	if err != nil {
		return err
	}
	return it.Files.Close(id)
}

// evalFileID evaluates a file-id expression (usually a bare identifier or
// string literal naming the file) down to its string form.
func (it *Interpreter) evalFileID(expr ast.Expression, env *runtime.Environment) (string, error) {
	v, err := it.evalExpression(expr, env)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func fileModeFromString(mode string) runtime.FileMode {
	switch mode {
	case "WRITE":
		return runtime.FileWrite
	case "APPEND":
		return runtime.FileAppend
	default:
		return runtime.FileRead
	}
}
