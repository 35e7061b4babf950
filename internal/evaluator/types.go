package evaluator

import (
	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/runtime"
)

// kindOf resolves a TypeSpec's runtime Kind without constructing a value,
// used for parameter/return type bookkeeping.
func (it *Interpreter) kindOf(t ast.TypeSpec, env *runtime.Environment) (runtime.Kind, error) {
	switch spec := t.(type) {
	case *ast.SimpleType:
		return simpleKind(spec.Name), nil
	case *ast.ArrayType:
		return runtime.KindArray, nil
	case *ast.CustomType:
		if _, ok := env.LookupType(spec.Name); !ok {
			return 0, runtime.NewUnknownType(spec.Position.Line, spec.Position.Column, spec.Name)
		}
		return runtime.KindRecord, nil
	default:
		return 0, runtime.NewUnknownType(t.Pos().Line, t.Pos().Column, "?")
	}
}

func simpleKind(name string) runtime.Kind {
	switch name {
	case "INTEGER":
		return runtime.KindInteger
	case "REAL":
		return runtime.KindReal
	case "STRING":
		return runtime.KindString
	case "CHAR":
		return runtime.KindChar
	case "BOOLEAN":
		return runtime.KindBoolean
	case "DATE":
		return runtime.KindDate
	default:
		return runtime.KindInteger
	}
}

// zeroValue constructs a TypeSpec's default-initialized value: literal
// zero/empty for primitives, a zero-filled array for ARRAY types (bounds
// evaluated against env), or a zero-filled record for a CustomType.
func (it *Interpreter) zeroValue(t ast.TypeSpec, env *runtime.Environment) (runtime.Value, error) {
	switch spec := t.(type) {
	case *ast.SimpleType:
		return runtime.ZeroValue(simpleKind(spec.Name)), nil

	case *ast.ArrayType:
		return it.zeroArray(spec, env)

	case *ast.CustomType:
		def, ok := env.LookupType(spec.Name)
		if !ok {
			return nil, runtime.NewUnknownType(spec.Position.Line, spec.Position.Column, spec.Name)
		}
		return it.zeroRecord(def, env)

	default:
		return nil, runtime.NewUnknownType(t.Pos().Line, t.Pos().Column, "?")
	}
}

func (it *Interpreter) zeroArray(spec *ast.ArrayType, env *runtime.Environment) (runtime.Value, error) {
	dims := make([]runtime.Dimension, 0, len(spec.Dimensions))
	total := 1
	for _, d := range spec.Dimensions {
		lowVal, err := it.evalExpression(d.Lower, env)
		if err != nil {
			return nil, err
		}
		highVal, err := it.evalExpression(d.Upper, env)
		if err != nil {
			return nil, err
		}
		lo, ok1 := lowVal.(runtime.Integer)
		hi, ok2 := highVal.(runtime.Integer)
		if !ok1 || !ok2 {
			return nil, runtime.NewTypeMismatch(spec.Position.Line, spec.Position.Column, "array bound", runtime.KindInteger, lowVal.Kind())
		}
		dim := runtime.Dimension{Lower: int(lo), Upper: int(hi)}
		dims = append(dims, dim)
		total *= dim.Len()
	}

	elementKind, err := it.kindOf(spec.Element, env)
	if err != nil {
		return nil, err
	}

	cells := make([]runtime.Value, total)
	for i := range cells {
		cell, err := it.zeroValue(spec.Element, env)
		if err != nil {
			return nil, err
		}
		cells[i] = cell
	}

	return runtime.Array{Dimensions: dims, Element: elementKind, Cells: cells}, nil
}

// zeroRecord builds a default-initialized record for def. A field itself
// typed ARRAY or RECORD is zero-built recursively from the declaration's
// original field TypeSpec (it.typeFields), since def.FieldKinds only
// carries the bare runtime.Kind and can't reconstruct a nested record's
// field set or an array's dimension bounds on its own.
func (it *Interpreter) zeroRecord(def *runtime.TypeDef, env *runtime.Environment) (runtime.Record, error) {
	fields := make(map[string]runtime.Value, len(def.FieldOrder))
	fieldSpecs := it.typeFields[def.Name]
	for i, name := range def.FieldOrder {
		v, err := it.zeroValue(fieldSpecs[i].Type, env)
		if err != nil {
			return runtime.Record{}, err
		}
		fields[name] = v
	}
	return runtime.Record{
		TypeName:   def.Name,
		FieldOrder: def.FieldOrder,
		FieldTypes: def.FieldKinds,
		Fields:     fields,
	}, nil
}

// registerTypeDef builds a runtime.TypeDef from a TYPE declaration and
// registers it in env. Record field types are resolved eagerly, so
// forward references to another not-yet-declared record type fail here
// rather than being deferred.
func (it *Interpreter) registerTypeDef(stmt *ast.TypeDefStatement, env *runtime.Environment) error {
	order := make([]string, 0, len(stmt.Fields))
	kinds := make(map[string]runtime.Kind, len(stmt.Fields))
	for _, f := range stmt.Fields {
		k, err := it.kindOf(f.Type, env)
		if err != nil {
			return err
		}
		order = append(order, f.Name)
		kinds[f.Name] = k
	}
	env.DeclareType(&runtime.TypeDef{Name: stmt.Name, FieldOrder: order, FieldKinds: kinds})
	it.typeFields[stmt.Name] = stmt.Fields
	return nil
}
