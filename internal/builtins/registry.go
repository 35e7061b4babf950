// Package builtins implements the pseudocode standard library: pure
// functions over runtime values, organized into one file per category
// behind a case-insensitive Registry, plus EOF which queries the
// interpreter's file table through the Context interface.
package builtins

import (
	"fmt"

	"github.com/aclevel/pseudocode/internal/runtime"
	"github.com/aclevel/pseudocode/pkg/ident"
)

// Category groups built-ins for documentation and introspection (see
// GetByCategory).
type Category int

const (
	CategoryString Category = iota
	CategoryMath
	CategoryConversion
	CategoryDateTime
	CategoryIO
)

func (c Category) String() string {
	switch c {
	case CategoryString:
		return "string"
	case CategoryMath:
		return "math"
	case CategoryConversion:
		return "conversion"
	case CategoryDateTime:
		return "datetime"
	case CategoryIO:
		return "io"
	default:
		return "unknown"
	}
}

// Context is the evaluator-side capability a built-in needs beyond its
// arguments: querying file state for EOF. Defined here rather than taking
// a dependency on the evaluator package, so the evaluator's *Interpreter
// satisfies this interface structurally.
type Context interface {
	FileEOF(id string) (bool, error)
}

// Func is a built-in function's implementation. line/col identify the
// call site for error reporting.
type Func func(ctx Context, args []runtime.Value, line, col int) (runtime.Value, error)

type entry struct {
	fn       Func
	category Category
}

// Registry is a case-insensitive table of built-in functions, populated
// once at construction with the full standard library.
type Registry struct {
	funcs *ident.Map[entry]
}

// NewRegistry builds a Registry with every built-in in §4.7 registered.
func NewRegistry() *Registry {
	r := &Registry{funcs: ident.NewMap[entry]()}
	registerStrings(r)
	registerMath(r)
	registerConversion(r)
	registerDateTime(r)
	registerIO(r)
	return r
}

// Register binds name to fn under category, wrapping it with an arity
// check: every built-in in §4.7 takes a fixed number of arguments, so a
// call with the wrong count is rejected with a BuiltinError before fn
// ever sees args, rather than indexing off the end of the slice. A later
// Register call with the same name (in any casing) overwrites the earlier
// one.
func (r *Registry) Register(name string, category Category, arity int, fn Func) {
	checked := func(ctx Context, args []runtime.Value, line, col int) (runtime.Value, error) {
		if len(args) != arity {
			return nil, runtime.NewBuiltinError(line, col, name,
				fmt.Sprintf("expects %d argument(s), got %d", arity, len(args)))
		}
		return fn(ctx, args, line, col)
	}
	r.funcs.Set(name, entry{fn: checked, category: category})
}

// Lookup returns name's implementation, case-insensitively.
func (r *Registry) Lookup(name string) (Func, bool) {
	e, ok := r.funcs.Get(name)
	if !ok {
		return nil, false
	}
	return e.fn, true
}

// Has reports whether name is a registered built-in.
func (r *Registry) Has(name string) bool {
	return r.funcs.Has(name)
}

// GetByCategory returns the names of every built-in registered under
// category, in unspecified order.
func (r *Registry) GetByCategory(category Category) []string {
	var names []string
	r.funcs.Range(func(key string, e entry) bool {
		if e.category == category {
			names = append(names, key)
		}
		return true
	})
	return names
}
