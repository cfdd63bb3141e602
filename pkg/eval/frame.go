package eval

import (
	"fmt"
	"io"

	"github.com/Lantharos/flick/pkg/diag"
	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/parse"
)

// Frame is the context in which Flick code runs: a session, a scope, the
// source the code comes from and the chain of call sites leading here.
type Frame struct {
	Evaler *Evaler

	env       *Env
	src       parse.Source
	traceback *StackTrace
	// Number of task calls in progress below this frame.
	depth int
}

// Env returns the current scope.
func (fm *Frame) Env() *Env { return fm.env }

// Stdout returns the output of print.
func (fm *Frame) Stdout() io.Writer { return fm.Evaler.stdout }

// fork returns a frame running in a different scope.
func (fm *Frame) fork(env *Env) *Frame {
	newFm := *fm
	newFm.env = env
	return &newFm
}

// Suspend runs f with the scheduler baton released, letting other requests
// run Flick code meanwhile. Blocking builtins do their blocking work in f;
// f must not touch Flick values or scopes.
func (fm *Frame) Suspend(f func()) {
	fm.Evaler.baton.Unlock()
	defer fm.Evaler.baton.Lock()
	f()
}

// ExecBlock runs statements in the given scope, stopping at the first
// Outcome that is not Normal.
func (fm *Frame) ExecBlock(env *Env, stmts []parse.Stmt) (Outcome, error) {
	return fm.fork(env).execBlock(stmts)
}

// Eval evaluates an expression in the current scope.
func (fm *Frame) Eval(expr parse.Expr) (vals.Value, error) {
	v, err := fm.eval(expr)
	return v, fm.errorp(expr, err)
}

// EvalOperand evaluates an expression like the operand of print: a bare
// name or member naming a callable is called with no arguments.
func (fm *Frame) EvalOperand(expr parse.Expr) (vals.Value, error) {
	v, err := fm.evalAutoCall(expr)
	return v, fm.errorp(expr, err)
}

// Call calls a callable value.
func (fm *Frame) Call(fn vals.Value, args []vals.Value) (vals.Value, error) {
	c, ok := fn.(Callable)
	if !ok {
		return nil, &NotCallableError{Kind: fn.Kind()}
	}
	return c.Call(fm, args)
}

// callAt calls fn with a traceback that records the call site.
func (fm *Frame) callAt(site diag.Ranger, fn Callable, args []vals.Value) (vals.Value, error) {
	caller := *fm
	caller.traceback = fm.addTraceback(site)
	return fn.Call(&caller, args)
}

func (fm *Frame) addTraceback(r diag.Ranger) *StackTrace {
	return &StackTrace{
		Head: diag.NewContext(fm.src.Name, fm.src.Code, r),
		Next: fm.traceback,
	}
}

// Returns an Exception with specified range and cause. Errors that already
// are Exceptions are returned as is, so the innermost position wins.
func (fm *Frame) errorp(r diag.Ranger, e error) error {
	switch e := e.(type) {
	case nil:
		return nil
	case *Exception:
		return e
	default:
		return &Exception{e, fm.addTraceback(r)}
	}
}

// Returns an Exception with specified range and error text.
func (fm *Frame) errorpf(r diag.Ranger, format string, args ...any) error {
	return fm.errorp(r, fmt.Errorf(format, args...))
}
