package runtime

import "github.com/aclevel/pseudocode/pkg/ident"

// TypeDef is the runtime representation of a declared record type: its
// field order (for deterministic iteration) and each field's kind.
type TypeDef struct {
	Name       string
	FieldOrder []string
	FieldKinds map[string]Kind
}

// RoutineKind distinguishes a procedure from a function at the binding
// site, mostly so call-name resolution can report the right error.
type RoutineKind int

const (
	RoutineProcedure RoutineKind = iota
	RoutineFunction
)

// ParamSpec is a routine's formal parameter, independent of the AST so the
// evaluator can bind arguments without re-walking parser nodes.
type ParamSpec struct {
	Name  string
	Kind  Kind
	ByRef bool
}

// Environment is a lexical scope: four case-insensitive tables
// (variables, constants, types, routines) plus a parent pointer. A scope
// owns its own bindings; children only borrow a reference to their
// parent, so lifetimes strictly nest and no cycle is possible.
type Environment struct {
	variables  *ident.Map[Value]
	constants  *ident.Map[Value]
	types      *ident.Map[*TypeDef]
	procedures *ident.Map[*Routine]
	functions  *ident.Map[*Routine]
	outer      *Environment
}

// Routine is a user-defined procedure or function binding. Body is typed
// as `any` here to avoid an import cycle with the ast package; the
// evaluator asserts it back to []ast.Statement.
type Routine struct {
	Name       string
	Kind       RoutineKind
	Parameters []ParamSpec
	ReturnKind Kind // meaningful only when Kind == RoutineFunction
	Body       any
	Defined    *Environment
}

// NewEnvironment creates a root-level environment with no outer scope.
func NewEnvironment() *Environment {
	return &Environment{
		variables:  ident.NewMap[Value](),
		constants:  ident.NewMap[Value](),
		types:      ident.NewMap[*TypeDef](),
		procedures: ident.NewMap[*Routine](),
		functions:  ident.NewMap[*Routine](),
	}
}

// NewEnclosed creates a child scope of e. Routine bodies are evaluated in
// a child of the *current* scope at the call site (see DESIGN.md on the
// preserved dynamic-scope-on-call quirk), not a child of the routine's
// defining scope, so callers pass whatever Environment is "current" when
// invoking this, not Routine.Defined.
func (e *Environment) NewEnclosed() *Environment {
	return &Environment{
		variables:  ident.NewMap[Value](),
		constants:  ident.NewMap[Value](),
		types:      ident.NewMap[*TypeDef](),
		procedures: ident.NewMap[*Routine](),
		functions:  ident.NewMap[*Routine](),
		outer:      e,
	}
}

// DeclareVariable binds name as a variable in the current scope only. The
// caller is responsible for rejecting redeclaration within the same
// scope before calling this (see HasLocal).
func (e *Environment) DeclareVariable(name string, value Value) {
	e.variables.Set(name, value)
}

// DeclareConstant binds name as an immutable constant in the current
// scope.
func (e *Environment) DeclareConstant(name string, value Value) {
	e.constants.Set(name, value)
}

// DeclareType registers a record type definition in the current scope.
func (e *Environment) DeclareType(def *TypeDef) {
	e.types.Set(def.Name, def)
}

// DeclareProcedure registers a procedure definition in the current scope.
func (e *Environment) DeclareProcedure(r *Routine) {
	e.procedures.Set(r.Name, r)
}

// DeclareFunction registers a function definition in the current scope.
func (e *Environment) DeclareFunction(r *Routine) {
	e.functions.Set(r.Name, r)
}

// HasLocal reports whether name is already bound (as variable or
// constant) in this scope only, the check DECLARE uses to reject
// redeclaration.
func (e *Environment) HasLocal(name string) bool {
	return e.variables.Has(name) || e.constants.Has(name)
}

// Get resolves name along the scope chain, constants taking priority over
// variables within each scope as spec.md's lookup order requires. The
// second result is false if name is bound nowhere in the chain.
func (e *Environment) Get(name string) (Value, bool) {
	if v, ok := e.constants.Get(name); ok {
		return v, true
	}
	if v, ok := e.variables.Get(name); ok {
		return v, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// IsConstant reports whether name resolves to a constant binding anywhere
// along the chain.
func (e *Environment) IsConstant(name string) bool {
	if e.constants.Has(name) {
		return true
	}
	if e.variables.Has(name) {
		return false
	}
	if e.outer != nil {
		return e.outer.IsConstant(name)
	}
	return false
}

// Set resolves name along the scope chain and writes through at its
// defining scope, honoring the "variable" vs. "constant" distinction
// (constants are rejected by the caller via IsConstant before Set is
// invoked). Returns false if name is bound nowhere in the chain.
func (e *Environment) Set(name string, value Value) bool {
	if e.variables.Has(name) {
		e.variables.Set(name, value)
		return true
	}
	if e.outer != nil {
		return e.outer.Set(name, value)
	}
	return false
}

// LookupType resolves a custom type name along the scope chain.
func (e *Environment) LookupType(name string) (*TypeDef, bool) {
	if t, ok := e.types.Get(name); ok {
		return t, true
	}
	if e.outer != nil {
		return e.outer.LookupType(name)
	}
	return nil, false
}

// LookupProcedure resolves a procedure name along the scope chain.
func (e *Environment) LookupProcedure(name string) (*Routine, bool) {
	if r, ok := e.procedures.Get(name); ok {
		return r, true
	}
	if e.outer != nil {
		return e.outer.LookupProcedure(name)
	}
	return nil, false
}

// LookupFunction resolves a function name along the scope chain.
func (e *Environment) LookupFunction(name string) (*Routine, bool) {
	if r, ok := e.functions.Get(name); ok {
		return r, true
	}
	if e.outer != nil {
		return e.outer.LookupFunction(name)
	}
	return nil, false
}
