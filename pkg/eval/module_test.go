package eval_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lantharos/flick/pkg/eval"
	. "github.com/Lantharos/flick/pkg/eval/evaltest"
	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/testutil"
)

var libFiles = testutil.Dir{
	"Lib.fk": strings.Join([]string{
		`print "loading lib"`,
		"free count = 0",
		"task double with n => give n * 2 end",
	}, "\n"),
	"a.fk":   `use B "./b.fk"`,
	"b.fk":   `use A "./a.fk"`,
	"bad.fk": "free = 1",
	"lib": testutil.Dir{
		"Helper.fk": strings.Join([]string{
			`use Util "./Util.fk"`,
			"task twice with n => give Util.inc(Util.inc(n)) end",
		}, "\n"),
		"Util.fk": "task inc with n => give n + 1 end",
	},
}

func TestUse(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(libFiles)

	Test(t,
		That("use Lib", "print Lib/double(4)").Prints("loading lib\n", "8\n"),
		That("use Lib", "print Lib.count").Prints("loading lib\n", "0\n"),
		That("use Lib", "print Lib").Prints("loading lib\n", "<module Lib>\n"),
		// Both uses resolve to the same file: it runs once and the two names
		// share its scope.
		That(
			`use A "Lib.fk"`,
			`use B "./Lib.fk"`,
			"A.count = 5",
			"print B.count").Prints("loading lib\n", "5\n"),
		That(`use Helper "lib/Helper.fk"`, "print Helper.twice(1)").Prints("3\n"),
		That("use Lib", "print Lib.cuont").
			Prints("loading lib\n").
			Throws(ErrorWithType(&eval.UndefinedVariableError{})),
		That("use Nope").Throws(ErrorWithType(&eval.ModuleLoadError{})),
		That(`use A "./a.fk"`).Throws(ErrorContaining("import cycle")),
		That(`use Bad "./bad.fk"`).Throws(ErrorWithType(&eval.ModuleLoadError{})),
	)
}

func TestImport(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(libFiles)

	natives := map[string]eval.NativePackage{
		"strings": {
			"shout": eval.NewGoFn("shout", func(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
				return vals.Str(strings.ToUpper(eval.StrArg(args, 0)) + "!"), nil
			}),
		},
	}
	TestWithConfig(t, func() eval.Config { return eval.Config{Natives: natives} },
		That(`import {double, count} from "./Lib.fk"`, "print double(3) + count").
			Prints("loading lib\n", "6\n"),
		That(`import {double} from "./Lib"`, "print double(1)").
			Prints("loading lib\n", "2\n"),
		// Imported names are immutable.
		That(`import {count} from "./Lib.fk"`, "count = 1").
			Prints("loading lib\n").
			Throws(ErrorWithType(&eval.ImmutableReassignmentError{})),
		That(`import {triple} from "./Lib.fk"`).
			Prints("loading lib\n").
			Throws(ErrorContaining(`no exported name "triple"`)),
		That(`import {shout} from "strings"`, `print shout "hey"`).Prints("HEY!\n"),
		That(`import {shout} from "nope"`).Throws(ErrorWithType(&eval.ModuleLoadError{})),
	)
}

func TestEvalFile(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"app": testutil.Dir{
			"main.fk": "use Lib\nprint Lib.double(21)\n",
			"Lib.fk":  "task double with n => give n * 2 end\n",
		},
		"self.fk": `use Self "./self.fk"`,
	})

	var out bytes.Buffer
	ev := eval.NewEvaler(eval.Config{Stdout: &out})
	require.NoError(t, ev.EvalFile("app/main.fk"))
	assert.Equal(t, "42\n", out.String())
	assert.Len(t, ev.Modules(), 1)

	err := eval.NewEvaler(eval.Config{Stdout: &out}).EvalFile("self.fk")
	var loadErr *eval.ModuleLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "import cycle")

	err = eval.NewEvaler(eval.Config{}).EvalFile("missing.fk")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestException(t *testing.T) {
	var out bytes.Buffer
	ev := eval.NewEvaler(eval.Config{Stdout: &out})
	err := ev.Eval(parseSource("free a = 1\nprint a + b\n"))

	var exc *eval.Exception
	require.ErrorAs(t, err, &exc)
	var undef *eval.UndefinedVariableError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "b", undef.Name)
	assert.Equal(t, `[test]:2:11: undefined variable "b" (did you mean "a"?)`, err.Error())

	shown := exc.Show("")
	assert.Contains(t, shown, "Exception: ")
	assert.Contains(t, shown, "[test]:2:11")
	assert.Same(t, undef, eval.Reason(err))
}
