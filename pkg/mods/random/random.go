// Package random implements the random plugin.
package random

import (
	"math"
	"math/rand"

	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/eval/vals"
)

// Plugin is the random plugin.
var Plugin eval.Plugin = plugin{}

type plugin struct{}

func (plugin) Name() string { return "random" }

func (plugin) RegisterBuiltins(env *eval.Env, _ vals.Value) error {
	fns.AddTo(env)
	return nil
}

var fns = eval.GoFns{
	"random":  random,
	"randint": randint,
	"shuffle": shuffle,
	"choice":  choice,
}

// Overridden in tests.
var (
	float64n = rand.Float64
	intn     = rand.Intn
	int63n   = rand.Int63n
)

func random(_ *eval.Frame, _ []vals.Value) (vals.Value, error) {
	return vals.Num(float64n()), nil
}

// Returns an integer in [a, b]. The bounds may be given in either order.
func randint(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
	a, err := eval.NumArg("randint", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := eval.NumArg("randint", args, 1)
	if err != nil {
		return nil, err
	}
	for _, x := range []float64{a, b} {
		if !(math.Abs(x) <= maxExactInt) {
			return nil, eval.ArgErrorf("randint", "bound %s out of range [-2^53, 2^53]",
				vals.FormatNum(x))
		}
	}
	lo, hi := int64(math.Ceil(math.Min(a, b))), int64(math.Floor(math.Max(a, b)))
	if lo > hi {
		return nil, eval.ArgErrorf("randint", "no integer between %s and %s",
			vals.FormatNum(a), vals.FormatNum(b))
	}
	return vals.Num(lo + int63n(hi-lo+1)), nil
}

// Every integer of at most this magnitude is exact as a number.
const maxExactInt = 1 << 53

// Returns a shuffled copy of a list.
func shuffle(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
	l, err := eval.ListArg("shuffle", args, 0)
	if err != nil {
		return nil, err
	}
	elems := append([]vals.Value(nil), l.Elems...)
	for i := len(elems) - 1; i > 0; i-- {
		j := intn(i + 1)
		elems[i], elems[j] = elems[j], elems[i]
	}
	return vals.NewList(elems...), nil
}

// Returns a random element of a list, or null for an empty list.
func choice(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
	l, err := eval.ListArg("choice", args, 0)
	if err != nil {
		return nil, err
	}
	if len(l.Elems) == 0 {
		return vals.Null{}, nil
	}
	return l.Elems[intn(len(l.Elems))], nil
}
