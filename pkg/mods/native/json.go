package native

import (
	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/eval/vals"
)

// JSON is the json package.
var JSON = pkg(eval.GoFns{
	"parse": func(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
		return vals.FromJSON(eval.StrArg(args, 0))
	},
	"stringify": func(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
		text, err := vals.ToJSON(eval.Arg(args, 0))
		if err != nil {
			return nil, err
		}
		return vals.Str(text), nil
	},
}, nil)
