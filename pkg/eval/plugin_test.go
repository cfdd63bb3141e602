package eval_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lantharos/flick/pkg/eval"
	. "github.com/Lantharos/flick/pkg/eval/evaltest"
	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/parse"
)

func parseSource(code string) parse.Source {
	return parse.Source{Name: "[test]", Code: code}
}

// respondPlugin executes respond by evaluating the content, and route as a
// no-op.
type respondPlugin struct{}

func (respondPlugin) Name() string       { return "web" }
func (respondPlugin) Keywords() []string { return []string{"route", "respond"} }

func (respondPlugin) Execute(fm *eval.Frame, node parse.PluginNode) (eval.Outcome, error) {
	if r, ok := node.(*parse.RespondStmt); ok {
		v, err := fm.EvalOperand(r.Content)
		if err != nil {
			return eval.Outcome{}, err
		}
		return eval.RespondOutcome(&eval.Response{Content: v, Status: 200}), nil
	}
	return eval.Outcome{}, nil
}

// hookPlugin records the hooks called on it.
type hookPlugin struct {
	name string
	log  *[]string
}

func (p hookPlugin) Name() string { return p.name }

func (p hookPlugin) OnDeclare(fm *eval.Frame, arg vals.Value) error {
	*p.log = append(*p.log, "declare "+p.name+"@"+vals.Repr(arg))
	fm.Evaler.SetState(p.name, arg)
	return nil
}

func (p hookPlugin) RegisterBuiltins(env *eval.Env, arg vals.Value) error {
	env.SetBuiltin(p.name+"Arg", arg)
	return nil
}

func (p hookPlugin) OnFileComplete(ev *eval.Evaler) error {
	*p.log = append(*p.log, fmt.Sprintf("complete %s module=%v", p.name, ev.IsModule()))
	return nil
}

func TestRespondOutcome(t *testing.T) {
	TestWithConfig(t, func() eval.Config {
		return eval.Config{Registry: eval.NewRegistry(respondPlugin{})}
	},
		// A respond ends a task with null.
		That(
			"declare web",
			"task f =>",
			"  respond 1",
			`  print "after"`,
			"end",
			"print f()").Prints("null\n"),
		// It passes through branches.
		That(
			"declare web",
			"task f =>",
			"  assume yes =>",
			"    respond 1",
			"  end",
			`  print "after"`,
			"end",
			"f()").DoesNothing(),
		// Loops drop it and run their whole body.
		That(
			"declare web",
			"each x in [1, 2] =>",
			"  print x",
			"  respond x",
			"  print 0",
			"end",
			`print "done"`).Prints("1\n", "0\n", "2\n", "0\n", "done\n"),
		That(
			"declare web",
			"free hits = 0",
			"march i from 1 to 3 =>",
			"  assume yes =>",
			"    respond i",
			"  end",
			"  hits = hits + 1",
			"end",
			"print hits").Prints("3\n"),
		// A give still ends the loop.
		That(
			"declare web",
			"task f =>",
			"  each x in [1, 2, 3] =>",
			"    respond x",
			"    give x * 10",
			"  end",
			"end",
			"print f()").Prints("10\n"),
		// The top level ignores it too.
		That("declare web", "respond 1", "print 2").Prints("2\n"),
		That("respond 1").DoesNotParse(),
	)
}

func TestPluginHooks(t *testing.T) {
	var log []string
	registry := eval.NewRegistry(hookPlugin{"a", &log}, hookPlugin{"b", &log})
	ev := eval.NewEvaler(eval.Config{Registry: registry, Stdout: io.Discard})

	err := ev.Eval(parseSource("declare b@2\ndeclare a\nprint aArg == null and bArg == 2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"declare b@2",
		"declare a@null",
		"complete b module=false",
		"complete a module=false",
	}, log)
	assert.Equal(t, []eval.Declaration{{Name: "b", Arg: vals.Num(2)}, {Name: "a", Arg: vals.Null{}}}, ev.Declared())
	assert.Equal(t, vals.Num(2), ev.State("b"))
	assert.True(t, ev.IsDeclared("a"))
	assert.False(t, ev.IsDeclared("web"))
	assert.Equal(t, []string{"a", "b"}, registry.Names())

	err = eval.NewEvaler(eval.Config{Registry: registry}).Eval(parseSource("declare c"))
	assert.Equal(t, &eval.UnknownPluginError{Name: "c"}, eval.Reason(err))
}

func TestRegistryGates(t *testing.T) {
	registry := eval.NewRegistry(respondPlugin{}, hookPlugin{name: "a"})
	assert.Equal(t, map[string]string{"route": "web", "respond": "web"}, registry.Gates())
	p, ok := registry.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "a", p.Name())
}
