package eval

import (
	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/parse"
)

// Callable is a value that can be applied to arguments.
type Callable interface {
	vals.Callable
	// Call calls the value. Missing arguments are null and extra ones are
	// ignored.
	Call(fm *Frame, args []vals.Value) (vals.Value, error)
}

// Task is a closure created by a task declaration or a group method.
type Task struct {
	Name   string
	Params []string
	Body   []parse.Stmt
	// Env is the scope the task closes over. For methods bound to an
	// instance, it is the instance's field scope.
	Env *Env

	src parse.Source
	ev  *Evaler
}

func (fm *Frame) newTask(d *parse.TaskDecl, env *Env) *Task {
	return &Task{d.Name, d.Params, d.Body, env, fm.src, fm.Evaler}
}

func (*Task) Kind() vals.Kind { return vals.FuncKind }

// CallableName returns the name of the task.
func (t *Task) CallableName() string { return t.Name }

// Display returns "<task name>".
func (t *Task) Display() string { return "<task " + t.Name + ">" }

// bind returns a copy of the task closing over env.
func (t *Task) bind(env *Env) *Task {
	bound := *t
	bound.Env = env
	return &bound
}

// MaxCallDepth is the number of nested task calls after which a call fails
// with a CallDepthError.
const MaxCallDepth = 10000

// Call runs the task body in a new scope whose parent is the closure scope.
// A give ends the call with its value; a respond ends it with null.
func (t *Task) Call(fm *Frame, args []vals.Value) (vals.Value, error) {
	if fm.depth >= MaxCallDepth {
		return nil, &CallDepthError{MaxCallDepth}
	}
	env := NewEnv(t.Env)
	for i, param := range t.Params {
		var v vals.Value = vals.Null{}
		if i < len(args) {
			v = args[i]
		}
		env.Define(param, v, true)
	}
	callee := fm.fork(env)
	callee.src = t.src
	callee.depth = fm.depth + 1
	if t.ev != nil {
		callee.Evaler = t.ev
	}
	out, err := callee.execBlock(t.Body)
	if err != nil {
		return nil, err
	}
	if out.Kind == Return && out.Value != nil {
		return out.Value, nil
	}
	return vals.Null{}, nil
}

// GoFn is a callable implemented in Go. Builtins and plugin functions are
// GoFns.
type GoFn struct {
	name string
	impl func(fm *Frame, args []vals.Value) (vals.Value, error)
}

// NewGoFn wraps a Go function. The function gets the calling frame and the
// positional arguments as passed; Arg and the typed helpers below read them.
func NewGoFn(name string, impl func(fm *Frame, args []vals.Value) (vals.Value, error)) *GoFn {
	return &GoFn{name, impl}
}

func (*GoFn) Kind() vals.Kind { return vals.FuncKind }

// CallableName returns the name of the builtin.
func (f *GoFn) CallableName() string { return f.name }

// Display returns "<builtin name>".
func (f *GoFn) Display() string { return "<builtin " + f.name + ">" }

// Call calls the Go function.
func (f *GoFn) Call(fm *Frame, args []vals.Value) (vals.Value, error) {
	v, err := f.impl(fm, args)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return vals.Null{}, nil
	}
	return v, nil
}

// Arg returns the i-th argument, or null if it is missing.
func Arg(args []vals.Value, i int) vals.Value {
	if i < len(args) && args[i] != nil {
		return args[i]
	}
	return vals.Null{}
}

// StrArg returns the display form of the i-th argument.
func StrArg(args []vals.Value, i int) string {
	return vals.ToString(Arg(args, i))
}

// NumArg returns the i-th argument as a number.
func NumArg(fn string, args []vals.Value, i int) (float64, error) {
	v := Arg(args, i)
	if !vals.IsNumeric(v) {
		return 0, ArgErrorf(fn, "argument %d must be a number, got %s", i+1, vals.Repr(v))
	}
	return vals.ToNum(v), nil
}

// IntArg returns the i-th argument as an int.
func IntArg(fn string, args []vals.Value, i int) (int, error) {
	f, err := NumArg(fn, args, i)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// ListArg returns the i-th argument, which must be a list.
func ListArg(fn string, args []vals.Value, i int) (*vals.List, error) {
	v := Arg(args, i)
	l, ok := v.(*vals.List)
	if !ok {
		return nil, ArgErrorf(fn, "argument %d must be a list, got %s", i+1, v.Kind())
	}
	return l, nil
}

// GoFns is a table of Go functions that are installed together, like the
// builtins of a plugin.
type GoFns map[string]func(fm *Frame, args []vals.Value) (vals.Value, error)

// AddTo installs the functions into env as immutable bindings.
func (fns GoFns) AddTo(env *Env) {
	for name, impl := range fns {
		env.SetBuiltin(name, NewGoFn(name, impl))
	}
}
