// Package vals contains the runtime values of Flick and the operations on
// them that do not need an evaluator: truthiness, display forms, numeric
// coercion and equality.
package vals

// Kind identifies the variant of a Value.
type Kind int

// Value kinds.
const (
	NullKind Kind = iota
	BoolKind
	NumKind
	StrKind
	ListKind
	ObjectKind
	InstanceKind
	ModuleKind
	FuncKind
)

var kindNames = [...]string{
	NullKind:     "null",
	BoolKind:     "bool",
	NumKind:      "number",
	StrKind:      "string",
	ListKind:     "list",
	ObjectKind:   "object",
	InstanceKind: "instance",
	ModuleKind:   "module",
	FuncKind:     "task",
}

func (k Kind) String() string { return kindNames[k] }

// Value is a Flick runtime value. The set of variants is closed: Null, Bool,
// Num, Str, *List and *Object are defined here; group instances, modules and
// callables are defined by the evaluator and report InstanceKind, ModuleKind
// and FuncKind.
type Value interface {
	Kind() Kind
}

// Null is the null value.
type Null struct{}

// Bool is a boolean, written yes or no.
type Bool bool

// Num is a number. All numbers are float64.
type Num float64

// Str is a string.
type Str string

func (Null) Kind() Kind { return NullKind }
func (Bool) Kind() Kind { return BoolKind }
func (Num) Kind() Kind  { return NumKind }
func (Str) Kind() Kind  { return StrKind }

// Callable is implemented by values that can be applied to arguments. The
// call itself needs an evaluator, so this interface only allows a value to be
// recognized as callable.
type Callable interface {
	Value
	// CallableName returns a name used in error messages.
	CallableName() string
}

// IsCallable reports whether v can be called.
func IsCallable(v Value) bool {
	_, ok := v.(Callable)
	return ok
}
