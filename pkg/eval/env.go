package eval

import (
	"sort"

	"github.com/Lantharos/flick/pkg/eval/vals"
)

// Binding is a named slot in an Env.
type Binding struct {
	Value   vals.Value
	Mutable bool
}

// Env is a lexical scope. It maps names to bindings and also holds the
// groups and blueprints declared in it. Lookups walk outward through parent
// scopes.
type Env struct {
	parent     *Env
	vars       map[string]*Binding
	names      []string
	groups     map[string]*GroupDef
	blueprints map[string]*BlueprintDef
}

// NewEnv creates an empty scope whose parent is the given Env, which may be
// nil.
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, vars: make(map[string]*Binding)}
}

// Parent returns the enclosing scope, or nil.
func (e *Env) Parent() *Env { return e.parent }

// Define creates a binding in this scope. Redeclaring a mutable binding in
// the same scope replaces it; redeclaring an immutable one is an
// *ImmutableReassignmentError.
func (e *Env) Define(name string, v vals.Value, mutable bool) error {
	if old, ok := e.vars[name]; ok {
		if !old.Mutable {
			return &ImmutableReassignmentError{name}
		}
		old.Value, old.Mutable = v, mutable
		return nil
	}
	e.vars[name] = &Binding{v, mutable}
	e.names = append(e.names, name)
	return nil
}

// SetBuiltin defines or replaces an immutable binding without checking for
// redeclaration. It is used to install builtins.
func (e *Env) SetBuiltin(name string, v vals.Value) {
	if _, ok := e.vars[name]; !ok {
		e.names = append(e.names, name)
	}
	e.vars[name] = &Binding{v, false}
}

// Lookup finds the binding of a name in this scope or an enclosing one.
func (e *Env) Lookup(name string) (*Binding, bool) {
	for s := e; s != nil; s = s.parent {
		if b, ok := s.vars[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// LookupLocal finds the binding of a name in this scope only.
func (e *Env) LookupLocal(name string) (*Binding, bool) {
	b, ok := e.vars[name]
	return b, ok
}

// Get returns the value of a name, or an *UndefinedVariableError.
func (e *Env) Get(name string) (vals.Value, error) {
	if b, ok := e.Lookup(name); ok {
		return b.Value, nil
	}
	return nil, e.undefined(name)
}

// Assign updates the nearest binding of a name.
func (e *Env) Assign(name string, v vals.Value) error {
	b, ok := e.Lookup(name)
	if !ok {
		return e.undefined(name)
	}
	if !b.Mutable {
		return &ImmutableReassignmentError{name}
	}
	b.Value = v
	return nil
}

// LocalNames returns the names bound in this scope in declaration order.
func (e *Env) LocalNames() []string {
	return append([]string(nil), e.names...)
}

// Names returns all names visible from this scope, sorted.
func (e *Env) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for s := e; s != nil; s = s.parent {
		for _, name := range s.names {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (e *Env) undefined(name string) error {
	return &UndefinedVariableError{name, closestName(name, e.Names())}
}

// DefineGroup registers a group in this scope.
func (e *Env) DefineGroup(g *GroupDef) {
	if e.groups == nil {
		e.groups = make(map[string]*GroupDef)
	}
	e.groups[g.Name] = g
}

// LookupGroup finds a group in this scope or an enclosing one.
func (e *Env) LookupGroup(name string) (*GroupDef, bool) {
	for s := e; s != nil; s = s.parent {
		if g, ok := s.groups[name]; ok {
			return g, true
		}
	}
	return nil, false
}

// DefineBlueprint registers a blueprint in this scope.
func (e *Env) DefineBlueprint(b *BlueprintDef) {
	if e.blueprints == nil {
		e.blueprints = make(map[string]*BlueprintDef)
	}
	e.blueprints[b.Name] = b
}

// LookupBlueprint finds a blueprint in this scope or an enclosing one.
func (e *Env) LookupBlueprint(name string) (*BlueprintDef, bool) {
	for s := e; s != nil; s = s.parent {
		if b, ok := s.blueprints[name]; ok {
			return b, true
		}
	}
	return nil, false
}
