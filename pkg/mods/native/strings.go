package native

import (
	"strings"
	"unicode/utf8"

	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/eval/vals"
)

// Strings is the strings package.
var Strings = pkg(eval.GoFns{
	"upper":      strFn(strings.ToUpper),
	"lower":      strFn(strings.ToLower),
	"trim":       strFn(strings.TrimSpace),
	"startsWith": strPred(strings.HasPrefix),
	"endsWith":   strPred(strings.HasSuffix),
	"includes":   strPred(strings.Contains),
	"replace":    replace,
	"repeat":     repeat,
	"indexOf":    indexOf,
	"chars":      chars,
}, nil)

func strFn(f func(string) string) func(*eval.Frame, []vals.Value) (vals.Value, error) {
	return func(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
		return vals.Str(f(eval.StrArg(args, 0))), nil
	}
}

func strPred(f func(s, sub string) bool) func(*eval.Frame, []vals.Value) (vals.Value, error) {
	return func(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
		return vals.Bool(f(eval.StrArg(args, 0), eval.StrArg(args, 1))), nil
	}
}

// Replaces all occurrences.
func replace(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
	return vals.Str(strings.ReplaceAll(
		eval.StrArg(args, 0), eval.StrArg(args, 1), eval.StrArg(args, 2))), nil
}

func repeat(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
	n, err := eval.IntArg("repeat", args, 1)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, eval.ArgErrorf("repeat", "count must not be negative")
	}
	return vals.Str(strings.Repeat(eval.StrArg(args, 0), n)), nil
}

// Returns the index in characters of the first occurrence, or -1.
func indexOf(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
	s, sub := eval.StrArg(args, 0), eval.StrArg(args, 1)
	i := strings.Index(s, sub)
	if i < 0 {
		return vals.Num(-1), nil
	}
	return vals.Num(utf8.RuneCountInString(s[:i])), nil
}

func chars(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
	l := vals.NewList()
	for _, r := range eval.StrArg(args, 0) {
		l.Elems = append(l.Elems, vals.Str(string(r)))
	}
	return l, nil
}
