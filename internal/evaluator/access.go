package evaluator

import (
	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/runtime"
)

// place is a resolved, writable storage location — a variable, an array
// element, or a record field — sufficient to read or assign into without
// re-evaluating the access expression that produced it. This is the
// concrete form of the "place" spec's glossary and by-reference design
// note both describe.
type place interface {
	get() (runtime.Value, error)
	set(runtime.Value) error
}

// variablePlace resolves directly against an Environment's variable/
// constant chain.
type variablePlace struct {
	env    *runtime.Environment
	name   string
	line   int
	col    int
	strict bool
}

func (p *variablePlace) get() (runtime.Value, error) {
	v, ok := p.env.Get(p.name)
	if !ok {
		return nil, runtime.NewUndeclaredVariable(p.line, p.col, p.name)
	}
	return v, nil
}

func (p *variablePlace) set(v runtime.Value) error {
	if p.env.IsConstant(p.name) {
		return runtime.NewConstantReassignment(p.line, p.col, p.name)
	}

	current, ok := p.env.Get(p.name)
	if !ok {
		if p.strict {
			return runtime.NewUndeclaredVariable(p.line, p.col, p.name)
		}
		// Lax mode: an unresolved assignment implicitly declares the
		// variable in the current scope, inferring kind from the value.
		p.env.DeclareVariable(p.name, runtime.CloneValue(v))
		return nil
	}

	coerced, ok := runtime.Coerce(current, v)
	if !ok {
		return runtime.NewTypeMismatch(p.line, p.col, p.name, current.Kind(), v.Kind())
	}
	p.env.Set(p.name, coerced)
	return nil
}

// indexPlace resolves one array element through a base place, which may
// itself be a variable, another index, or a field access (for an array
// of records, or a record field that is itself an array).
type indexPlace struct {
	base    place
	indices []int
	line    int
	col     int
}

func (p *indexPlace) get() (runtime.Value, error) {
	arr, err := p.arrayValue()
	if err != nil {
		return nil, err
	}
	offset, ok := arr.Offset(p.indices)
	if !ok {
		return nil, p.outOfBounds(arr)
	}
	return arr.Cells[offset], nil
}

func (p *indexPlace) set(v runtime.Value) error {
	arr, err := p.arrayValue()
	if err != nil {
		return err
	}
	offset, ok := arr.Offset(p.indices)
	if !ok {
		return p.outOfBounds(arr)
	}
	coerced, ok := runtime.Coerce(runtime.ZeroValue(arr.Element), v)
	if !ok {
		return runtime.NewTypeMismatch(p.line, p.col, "", arr.Element, v.Kind())
	}
	arr.Cells[offset] = coerced
	return p.base.set(arr)
}

func (p *indexPlace) arrayValue() (runtime.Array, error) {
	base, err := p.base.get()
	if err != nil {
		return runtime.Array{}, err
	}
	arr, ok := base.(runtime.Array)
	if !ok {
		return runtime.Array{}, runtime.NewTypeMismatch(p.line, p.col, "", runtime.KindArray, base.Kind())
	}
	return arr, nil
}

func (p *indexPlace) outOfBounds(arr runtime.Array) error {
	for i, dim := range arr.Dimensions {
		if i >= len(p.indices) {
			break
		}
		if p.indices[i] < dim.Lower || p.indices[i] > dim.Upper {
			return runtime.NewIndexOutOfBounds(p.line, p.col, p.indices[i], dim.Lower, dim.Upper)
		}
	}
	return runtime.NewIndexOutOfBounds(p.line, p.col, 0, 0, 0)
}

// fieldPlace resolves one record field through a base place.
type fieldPlace struct {
	base  place
	field string
	line  int
	col   int
}

func (p *fieldPlace) get() (runtime.Value, error) {
	rec, err := p.recordValue()
	if err != nil {
		return nil, err
	}
	v, ok := rec.Fields[p.field]
	if !ok {
		return nil, runtime.NewUnknownField(p.line, p.col, p.field, rec.TypeName)
	}
	return v, nil
}

func (p *fieldPlace) set(v runtime.Value) error {
	rec, err := p.recordValue()
	if err != nil {
		return err
	}
	current, ok := rec.Fields[p.field]
	if !ok {
		return runtime.NewUnknownField(p.line, p.col, p.field, rec.TypeName)
	}
	coerced, ok := runtime.Coerce(current, v)
	if !ok {
		return runtime.NewTypeMismatch(p.line, p.col, p.field, current.Kind(), v.Kind())
	}
	rec.Fields[p.field] = coerced
	return p.base.set(rec)
}

func (p *fieldPlace) recordValue() (runtime.Record, error) {
	base, err := p.base.get()
	if err != nil {
		return runtime.Record{}, err
	}
	rec, ok := base.(runtime.Record)
	if !ok {
		return runtime.Record{}, runtime.NewTypeMismatch(p.line, p.col, "", runtime.KindRecord, base.Kind())
	}
	return rec, nil
}

// resolvePlace turns an Assignable AST node into a place, evaluating any
// index expressions along the way.
func (it *Interpreter) resolvePlace(a ast.Assignable, env *runtime.Environment) (place, error) {
	switch node := a.(type) {
	case *ast.Identifier:
		return &variablePlace{env: env, name: node.Name, line: node.Position.Line, col: node.Position.Column, strict: it.Options.Strict}, nil

	case *ast.IndexExpression:
		basePlace, err := it.resolveBasePlace(node.Base, env)
		if err != nil {
			return nil, err
		}
		indices := make([]int, 0, len(node.Indices))
		for _, idxExpr := range node.Indices {
			v, err := it.evalExpression(idxExpr, env)
			if err != nil {
				return nil, err
			}
			n, ok := v.(runtime.Integer)
			if !ok {
				return nil, runtime.NewTypeMismatch(node.Position.Line, node.Position.Column, "", runtime.KindInteger, v.Kind())
			}
			indices = append(indices, int(n))
		}
		return &indexPlace{base: basePlace, indices: indices, line: node.Position.Line, col: node.Position.Column}, nil

	case *ast.FieldAccessExpression:
		basePlace, err := it.resolveBasePlace(node.Base, env)
		if err != nil {
			return nil, err
		}
		return &fieldPlace{base: basePlace, field: node.Field, line: node.Position.Line, col: node.Position.Column}, nil

	default:
		return nil, runtime.NewUndeclaredVariable(a.Pos().Line, a.Pos().Column, "?")
	}
}

// resolveBasePlace resolves the base of an index/field access, which is
// itself always an Assignable (identifier, index, or field chain).
func (it *Interpreter) resolveBasePlace(expr ast.Expression, env *runtime.Environment) (place, error) {
	a, ok := expr.(ast.Assignable)
	if !ok {
		return nil, runtime.NewUndeclaredVariable(expr.Pos().Line, expr.Pos().Column, "?")
	}
	return it.resolvePlace(a, env)
}
