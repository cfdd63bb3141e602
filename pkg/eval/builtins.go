package eval

import (
	"strings"
	"unicode/utf8"

	"github.com/Lantharos/flick/pkg/eval/vals"
)

// Core builtins, present in every scope.

var builtinFns = GoFns{
	"len":      builtinLen,
	"str":      builtinStr,
	"num":      builtinNum,
	"type":     builtinType,
	"keys":     builtinKeys,
	"push":     builtinPush,
	"pop":      builtinPop,
	"join":     builtinJoin,
	"split":    builtinSplit,
	"upper":    builtinUpper,
	"lower":    builtinLower,
	"contains": builtinContains,
	"range":    builtinRange,
}

// builtinEnv returns a root scope holding the core builtins. Every session
// of a run shares it as the parent of its global scope.
func builtinEnv() *Env {
	env := NewEnv(nil)
	builtinFns.AddTo(env)
	return env
}

func builtinLen(_ *Frame, args []vals.Value) (vals.Value, error) {
	switch v := Arg(args, 0).(type) {
	case *vals.List:
		return vals.Num(v.Len()), nil
	case *vals.Object:
		return vals.Num(v.Len()), nil
	case vals.Str:
		return vals.Num(utf8.RuneCountInString(string(v))), nil
	case *Instance:
		return vals.Num(len(v.FieldNames())), nil
	default:
		return nil, ArgErrorf("len", "a %s has no length", v.Kind())
	}
}

func builtinStr(_ *Frame, args []vals.Value) (vals.Value, error) {
	return vals.Str(StrArg(args, 0)), nil
}

func builtinNum(_ *Frame, args []vals.Value) (vals.Value, error) {
	return vals.Num(vals.ToNum(Arg(args, 0))), nil
}

func builtinType(_ *Frame, args []vals.Value) (vals.Value, error) {
	return vals.Str(Arg(args, 0).Kind().String()), nil
}

func builtinKeys(_ *Frame, args []vals.Value) (vals.Value, error) {
	var keys []string
	switch v := Arg(args, 0).(type) {
	case *vals.Object:
		keys = v.Keys()
	case *Instance:
		keys = v.FieldNames()
	case *Module:
		keys = v.Env.LocalNames()
	default:
		return nil, ArgErrorf("keys", "a %s has no keys", v.Kind())
	}
	l := vals.NewList()
	for _, k := range keys {
		l.Elems = append(l.Elems, vals.Str(k))
	}
	return l, nil
}

func builtinPush(_ *Frame, args []vals.Value) (vals.Value, error) {
	l, err := ListArg("push", args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) > 1 {
		l.Elems = append(l.Elems, args[1:]...)
	}
	return l, nil
}

func builtinPop(_ *Frame, args []vals.Value) (vals.Value, error) {
	l, err := ListArg("pop", args, 0)
	if err != nil {
		return nil, err
	}
	if len(l.Elems) == 0 {
		return vals.Null{}, nil
	}
	last := l.Elems[len(l.Elems)-1]
	l.Elems = l.Elems[:len(l.Elems)-1]
	return last, nil
}

func builtinJoin(_ *Frame, args []vals.Value) (vals.Value, error) {
	l, err := ListArg("join", args, 0)
	if err != nil {
		return nil, err
	}
	sep := ","
	if len(args) > 1 {
		sep = StrArg(args, 1)
	}
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = vals.ToString(e)
	}
	return vals.Str(strings.Join(parts, sep)), nil
}

func builtinSplit(_ *Frame, args []vals.Value) (vals.Value, error) {
	s := StrArg(args, 0)
	var parts []string
	if len(args) > 1 {
		parts = strings.Split(s, StrArg(args, 1))
	} else {
		parts = strings.Fields(s)
	}
	l := vals.NewList()
	for _, p := range parts {
		l.Elems = append(l.Elems, vals.Str(p))
	}
	return l, nil
}

func builtinUpper(_ *Frame, args []vals.Value) (vals.Value, error) {
	return vals.Str(strings.ToUpper(StrArg(args, 0))), nil
}

func builtinLower(_ *Frame, args []vals.Value) (vals.Value, error) {
	return vals.Str(strings.ToLower(StrArg(args, 0))), nil
}

func builtinContains(_ *Frame, args []vals.Value) (vals.Value, error) {
	needle := Arg(args, 1)
	switch v := Arg(args, 0).(type) {
	case *vals.List:
		for _, e := range v.Elems {
			if vals.Equal(e, needle) {
				return vals.Bool(true), nil
			}
		}
		return vals.Bool(false), nil
	case *vals.Object:
		_, ok := v.Get(vals.ToString(needle))
		return vals.Bool(ok), nil
	case vals.Str:
		return vals.Bool(strings.Contains(string(v), vals.ToString(needle))), nil
	default:
		return nil, ArgErrorf("contains", "cannot search in a %s", v.Kind())
	}
}

// range n gives [0, ..., n-1]; range a b gives [a, ..., b-1].
func builtinRange(_ *Frame, args []vals.Value) (vals.Value, error) {
	from, to := 0, 0
	var err error
	if len(args) > 1 {
		if from, err = IntArg("range", args, 0); err != nil {
			return nil, err
		}
		if to, err = IntArg("range", args, 1); err != nil {
			return nil, err
		}
	} else if to, err = IntArg("range", args, 0); err != nil {
		return nil, err
	}
	l := vals.NewList()
	for i := from; i < to; i++ {
		l.Elems = append(l.Elems, vals.Num(i))
	}
	return l, nil
}
