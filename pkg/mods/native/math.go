package native

import (
	"math"

	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/eval/vals"
)

// Math is the math package.
var Math = pkg(eval.GoFns{
	"abs":   numFn("abs", math.Abs),
	"floor": numFn("floor", math.Floor),
	"ceil":  numFn("ceil", math.Ceil),
	"round": numFn("round", round),
	"sqrt":  numFn("sqrt", math.Sqrt),
	"pow":   pow,
	"min":   extreme("min", math.Min),
	"max":   extreme("max", math.Max),
}, map[string]vals.Value{
	"pi": vals.Num(math.Pi),
	"e":  vals.Num(math.E),
})

// Rounds half up, so that round(-2.5) is -2.
func round(f float64) float64 { return math.Floor(f + 0.5) }

func numFn(name string, f func(float64) float64) func(*eval.Frame, []vals.Value) (vals.Value, error) {
	return func(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
		x, err := eval.NumArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return vals.Num(f(x)), nil
	}
}

func pow(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
	x, err := eval.NumArg("pow", args, 0)
	if err != nil {
		return nil, err
	}
	y, err := eval.NumArg("pow", args, 1)
	if err != nil {
		return nil, err
	}
	return vals.Num(math.Pow(x, y)), nil
}

// Folds the arguments, or the elements of a single list argument.
func extreme(name string, f func(a, b float64) float64) func(*eval.Frame, []vals.Value) (vals.Value, error) {
	return func(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
		if l, ok := eval.Arg(args, 0).(*vals.List); ok && len(args) == 1 {
			args = l.Elems
		}
		if len(args) == 0 {
			return nil, eval.ArgErrorf(name, "needs at least one number")
		}
		acc, err := eval.NumArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(args); i++ {
			x, err := eval.NumArg(name, args, i)
			if err != nil {
				return nil, err
			}
			acc = f(acc, x)
		}
		return vals.Num(acc), nil
	}
}
