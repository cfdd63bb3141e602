package native

import (
	"os"
	"runtime"

	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/eval/vals"
)

// OS is the os package.
var OS = pkg(eval.GoFns{
	// Returns the value of an environment variable, or null if it is unset.
	"env": func(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
		if v, ok := os.LookupEnv(eval.StrArg(args, 0)); ok {
			return vals.Str(v), nil
		}
		return vals.Null{}, nil
	},
	"cwd": func(_ *eval.Frame, _ []vals.Value) (vals.Value, error) {
		dir, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		return vals.Str(dir), nil
	},
	"hostname": func(_ *eval.Frame, _ []vals.Value) (vals.Value, error) {
		name, err := os.Hostname()
		if err != nil {
			return nil, err
		}
		return vals.Str(name), nil
	},
}, map[string]vals.Value{
	"platform": vals.Str(runtime.GOOS),
	"arch":     vals.Str(runtime.GOARCH),
})
