package eval

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/parse"
)

func (fm *Frame) eval(expr parse.Expr) (vals.Value, error) {
	switch e := expr.(type) {
	case *parse.NumberLit:
		return vals.Num(e.Value), nil
	case *parse.StringLit:
		return vals.Str(e.Value), nil
	case *parse.BoolLit:
		return vals.Bool(e.Value), nil
	case *parse.NullLit:
		return vals.Null{}, nil
	case *parse.Ident:
		v, err := fm.env.Get(e.Name)
		return v, fm.errorp(e, err)
	case *parse.ListLit:
		elems := make([]vals.Value, len(e.Elems))
		for i, elem := range e.Elems {
			v, err := fm.eval(elem)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return vals.NewList(elems...), nil
	case *parse.ObjectLit:
		obj := vals.NewObject()
		for i, key := range e.Keys {
			v, err := fm.eval(e.Values[i])
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil
	case *parse.BinaryExpr:
		return fm.evalBinary(e)
	case *parse.UnaryExpr:
		x, err := fm.eval(e.X)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case "-":
			return vals.Num(-vals.ToNum(x)), nil
		case "not", "!":
			return vals.Bool(!vals.Truthy(x)), nil
		}
		return nil, fmt.Errorf("unknown unary operator %s", e.Op)
	case *parse.TernaryExpr:
		cond, err := fm.eval(e.Cond)
		if err != nil {
			return nil, err
		}
		if vals.Truthy(cond) {
			return fm.eval(e.Then)
		}
		return fm.eval(e.Else)
	case *parse.MemberExpr:
		obj, err := fm.eval(e.X)
		if err != nil {
			return nil, err
		}
		return getMember(obj, e.Name)
	case *parse.IndexExpr:
		obj, err := fm.eval(e.X)
		if err != nil {
			return nil, err
		}
		idx, err := fm.eval(e.Index)
		if err != nil {
			return nil, err
		}
		return getIndex(obj, idx)
	case *parse.CallExpr:
		return fm.evalCall(e)
	case *parse.AskExpr:
		return fm.evalAsk(e)
	}
	return nil, fmt.Errorf("unsupported expression %T", expr)
}

// evalAutoCall evaluates an operand of an expression statement, print or
// respond. When the operand is a bare name or member access that yields a
// callable, the callable is called with no arguments.
func (fm *Frame) evalAutoCall(expr parse.Expr) (vals.Value, error) {
	v, err := fm.eval(expr)
	if err != nil {
		return nil, err
	}
	switch expr.(type) {
	case *parse.Ident, *parse.MemberExpr:
		if c, ok := v.(Callable); ok {
			return fm.callAt(expr, c, nil)
		}
	}
	return v, nil
}

func (fm *Frame) evalBinary(e *parse.BinaryExpr) (vals.Value, error) {
	l, err := fm.eval(e.L)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "and":
		if !vals.Truthy(l) {
			return l, nil
		}
		return fm.eval(e.R)
	case "or":
		if vals.Truthy(l) {
			return l, nil
		}
		return fm.eval(e.R)
	}
	r, err := fm.eval(e.R)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "+":
		return vals.Add(l, r), nil
	case "-", "*", "/", "%":
		return vals.Arith(e.Op, l, r)
	default:
		return vals.Compare(e.Op, l, r)
	}
}

func (fm *Frame) evalCall(e *parse.CallExpr) (vals.Value, error) {
	callee, err := fm.eval(e.Callee)
	if err != nil {
		return nil, err
	}
	c, ok := callee.(Callable)
	if !ok {
		return nil, &NotCallableError{describe(e.Callee), callee.Kind()}
	}
	args := make([]vals.Value, len(e.Args))
	for i, arg := range e.Args {
		v, err := fm.eval(arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fm.callAt(e, c, args)
}

// describe renders a callee expression for error messages.
func describe(expr parse.Expr) string {
	switch e := expr.(type) {
	case *parse.Ident:
		return e.Name
	case *parse.MemberExpr:
		if x := describe(e.X); x != "" {
			return x + "." + e.Name
		}
	}
	return ""
}

func (fm *Frame) evalAsk(e *parse.AskExpr) (vals.Value, error) {
	if e.Prompt != nil {
		prompt, err := fm.eval(e.Prompt)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(fm.Evaler.stdout, vals.ToString(prompt)); err != nil {
			return nil, err
		}
	}
	var line string
	var err error
	fm.Suspend(func() { line, err = fm.Evaler.stdin.ReadString('\n') })
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return vals.Str(strings.TrimRight(line, "\r\n")), nil
}

func getMember(obj vals.Value, name string) (vals.Value, error) {
	switch obj := obj.(type) {
	case *vals.Object:
		if v, ok := obj.Get(name); ok {
			return v, nil
		}
		return vals.Null{}, nil
	case *vals.List:
		if name == "length" {
			return vals.Num(obj.Len()), nil
		}
	case vals.Str:
		if name == "length" {
			return vals.Num(utf8.RuneCountInString(string(obj))), nil
		}
	case *Instance:
		if v, ok := obj.Get(name); ok {
			return v, nil
		}
		return nil, &UndefinedVariableError{
			obj.Group.Name + "." + name, closestName(name, obj.MemberNames())}
	case *Module:
		if b, ok := obj.Env.LookupLocal(name); ok {
			return b.Value, nil
		}
		return nil, &UndefinedVariableError{
			obj.Name + "." + name, closestName(name, obj.Env.LocalNames())}
	}
	return nil, fmt.Errorf("a %s has no member %s", obj.Kind(), name)
}

func getIndex(obj, idx vals.Value) (vals.Value, error) {
	switch obj := obj.(type) {
	case *vals.List:
		i, ok := vals.ToInt(idx)
		if !ok {
			return nil, fmt.Errorf("list index must be a number, got %s", vals.Repr(idx))
		}
		return obj.Index(i), nil
	case vals.Str:
		i, ok := vals.ToInt(idx)
		if !ok {
			return nil, fmt.Errorf("string index must be a number, got %s", vals.Repr(idx))
		}
		runes := []rune(string(obj))
		if i < 0 || i >= len(runes) {
			return vals.Null{}, nil
		}
		return vals.Str(string(runes[i])), nil
	case *vals.Object:
		if v, ok := obj.Get(vals.ToString(idx)); ok {
			return v, nil
		}
		return vals.Null{}, nil
	case *Instance:
		if v, ok := obj.Get(vals.ToString(idx)); ok {
			return v, nil
		}
		return vals.Null{}, nil
	case *Module:
		return getMember(obj, vals.ToString(idx))
	}
	return nil, fmt.Errorf("cannot index into a %s", obj.Kind())
}
