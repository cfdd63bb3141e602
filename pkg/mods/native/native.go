// Package native provides the packages that programs import by name, as in
// import {upper} from "strings".
package native

import (
	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/eval/vals"
)

// Packages returns all native packages, keyed by name.
func Packages() map[string]eval.NativePackage {
	return map[string]eval.NativePackage{
		"strings": Strings,
		"math":    Math,
		"json":    JSON,
		"os":      OS,
	}
}

func pkg(fns eval.GoFns, consts map[string]vals.Value) eval.NativePackage {
	p := make(eval.NativePackage, len(fns)+len(consts))
	for name, impl := range fns {
		p[name] = eval.NewGoFn(name, impl)
	}
	for name, v := range consts {
		p[name] = v
	}
	return p
}
