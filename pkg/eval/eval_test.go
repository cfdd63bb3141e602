package eval_test

import (
	"testing"

	"github.com/Lantharos/flick/pkg/eval"
	. "github.com/Lantharos/flick/pkg/eval/evaltest"
	"github.com/Lantharos/flick/pkg/eval/vals"
)

func TestScoping(t *testing.T) {
	Test(t,
		That("free x = 1", "task f => print x end", "f").Prints("1\n"),
		// Shadowing in a child scope leaves the outer binding alone.
		That(
			"lock x = 1",
			"task f =>",
			"  free x = 2",
			"  print x",
			"end",
			"f",
			"print x").Prints("2\n", "1\n"),
		// Branches and loop iterations get their own scopes.
		That(
			"assume yes =>",
			"  free inner = 1",
			"end",
			"print inner").Throws(ErrorWithType(&eval.UndefinedVariableError{})),
		That(
			"free total = 0",
			"each n in [1, 2, 3] =>",
			"  total = total + n",
			"end",
			"print total").Prints("6\n"),
		// Closures see later updates of captured bindings.
		That(
			"task makeCounter =>",
			"  free n = 0",
			"  task inc =>",
			"    n = n + 1",
			"    give n",
			"  end",
			"  give inc",
			"end",
			"free c = makeCounter()",
			"c()",
			"print c()").Prints("2\n"),
		That("free x = 1").Then("print x").Prints("1\n"),
	)
}

func TestImmutability(t *testing.T) {
	Test(t,
		That("lock x = 1", "x = 2").
			Throws(&eval.ImmutableReassignmentError{Name: "x"}, "x = 2"),
		That("lock x = 1", "lock x = 2").
			Throws(ErrorWithType(&eval.ImmutableReassignmentError{})),
		That("free x = 1", "free x = 2", "print x").Prints("2\n"),
		That("free x = 1", "x = 3", "print x").Prints("3\n"),
		// Tasks are immutable bindings.
		That("task f => end", "f = 1").
			Throws(ErrorWithType(&eval.ImmutableReassignmentError{})),
		That("y = 1").Throws(ErrorWithType(&eval.UndefinedVariableError{})),
		That("free count = 1", "print cont").
			Throws(&eval.UndefinedVariableError{Name: "cont", Suggestion: "count"}),
	)
}

func TestOperators(t *testing.T) {
	Test(t,
		That("print 1 + 2").Prints("3\n"),
		That(`print "1" + 2`).Prints("3\n"),
		That(`print "a" + 1`).Prints("a1\n"),
		That(`print "nan" + 1`).Prints("nan1\n"),
		That(`print "inf" + "1"`).Prints("inf1\n"),
		That(`print "nan" == "nan"`).Prints("yes\n"),
		That(`print "Hello, " + "World"`).Prints("Hello, World\n"),
		That(`print 1 + 2 * 3`).Prints("7\n"),
		That(`print (1 + 2) * 3`).Prints("9\n"),
		That(`print 7 % 4`).Prints("3\n"),
		That(`print 10 / 4`).Prints("2.5\n"),
		That(`print "a" * 2`).Prints("NaN\n"),
		That(`print -3 + 1`).Prints("-2\n"),
		That(`print 2 < 3`).Prints("yes\n"),
		That(`print "2" == 2`).Prints("yes\n"),
		That(`print "a" != "b"`).Prints("yes\n"),
		That(`print null == null`).Prints("yes\n"),
		That(`print [1] == [1]`).Prints("no\n"),
		That(`print 1 > 2 ? "a" : "b"`).Prints("b\n"),
		That(`print null or "x"`).Prints("x\n"),
		That(`print 0 and 5`).Prints("5\n"),
		That(`print no and undefinedName`).Prints("no\n"),
		That(`print not yes`).Prints("no\n"),
		That(`print !null`).Prints("yes\n"),
	)
}

func TestTruthiness(t *testing.T) {
	truthy := func(expr string) Case {
		return That(
			"assume "+expr+" =>",
			`  print "t"`,
			"otherwise =>",
			`  print "f"`,
			"end")
	}
	Test(t,
		truthy("0").Prints("t\n"),
		truthy(`"0"`).Prints("t\n"),
		truthy("[0]").Prints("t\n"),
		truthy("{a: 1}").Prints("t\n"),
		truthy(`""`).Prints("f\n"),
		truthy("null").Prints("f\n"),
		truthy("no").Prints("f\n"),
		truthy("[]").Prints("f\n"),
		truthy("{}").Prints("f\n"),
	)
}

func TestNonLocalReturn(t *testing.T) {
	Test(t,
		That(
			"task f =>",
			"  give 1",
			`  print "unreachable"`,
			"end",
			"print f()").Prints("1\n"),
		// give passes through branches and loops.
		That(
			"task find with xs =>",
			"  each x in xs =>",
			"    assume x > 2 =>",
			"      give x",
			"    end",
			"  end",
			"  give null",
			"end",
			"print find([1, 2, 3, 4])").Prints("3\n"),
		That(
			"task firstEven =>",
			"  march i from 1 to 10 =>",
			"    select i % 2 =>",
			"      when 0 =>",
			"        give i",
			"    end",
			"  end",
			"end",
			"print firstEven()").Prints("2\n"),
		// A task without give returns null.
		That("task f => free x = 1 end", "print f()").Prints("null\n"),
		// give at the top level ends the program.
		That("print 1", "give", "print 2").Prints("1\n"),
	)
}

func TestTasks(t *testing.T) {
	Test(t,
		That("task add with a, b => give a + b end", "print add(1, 2)").Prints("3\n"),
		That("task add with a, b => give a + b end", "print add 1 2").Prints("3\n"),
		// Missing arguments are null, extra ones ignored.
		That("task f with a, b => print b end", "f(1)").Prints("null\n"),
		That("task f with a => print a end", "f(1, 2, 3)").Prints("1\n"),
		// Bare names of callables are called in expression statements and
		// print.
		That(`task hello => print "hi" end`, "hello").Prints("hi\n"),
		That(`task two => give 2 end`, "print two").Prints("2\n"),
		That("free x = 1", "x(2)").
			Throws(&eval.NotCallableError{What: "x", Kind: vals.NumKind}),
		// Errors carry the call chain.
		That("task f =>", "  print y", "end", "f()").
			Throws(ErrorWithType(&eval.UndefinedVariableError{}), "y", "f()"),
		That(`print len([1, 2]) + len("abc")`).Prints("5\n"),
		// Unbounded recursion fails instead of exhausting the Go stack.
		That("task loop with n => give loop(n + 1) end", "loop(0)").
			Throws(&eval.CallDepthError{Limit: eval.MaxCallDepth}),
		That(
			"task down with n =>",
			"  assume n == 0 => give 0 end",
			"  give down(n - 1)",
			"end",
			"print down(5000)").Prints("0\n"),
	)
}

func TestControlFlow(t *testing.T) {
	Test(t,
		That(
			"free n = 5",
			"assume n > 10 =>",
			`  print "big"`,
			"maybe n > 3 =>",
			`  print "medium"`,
			"otherwise =>",
			`  print "small"`,
			"end").Prints("medium\n"),
		That("march i from 1 to 3 => print i end").Prints("1\n", "2\n", "3\n"),
		That("march i from 3 to 1 => print i end").Prints("3\n", "2\n", "1\n"),
		That(`march i from "a" to 3 => print i end`).Throws(ErrorContaining("march bound")),
		That("each k in {a: 1, b: 2} => print k end").Prints("a\n", "b\n"),
		That(`each c in "hé" => print c end`).Prints("h\n", "é\n"),
		That("each x in 5 => end").Throws(ErrorContaining("cannot iterate")),
		That(
			`select "b" =>`,
			`  when "a" => print 1`,
			`  when "b" => print 2`,
			`  otherwise => print 3`,
			"end").Prints("2\n"),
		That(
			"select 9 =>",
			`  when 1 => print 1`,
			`  otherwise => print "other"`,
			"end").Prints("other\n"),
	)
}

func TestContainers(t *testing.T) {
	Test(t,
		That("free l = [1, 2]", "l[2] = 3", "print l").Prints("[1, 2, 3]\n"),
		That("free l = [1, 2]", "print l[5]").Prints("null\n"),
		That("free l = [1, 2]", "print l.length").Prints("2\n"),
		That(`free o = {a: 1, "b c": 2}`, "o.d = 4", `o["e"] = 5`, "print o").
			Prints(`{a: 1, b c: 2, d: 4, e: 5}` + "\n"),
		That("free o = {a: 1}", "print o.missing").Prints("null\n"),
		That(`print "abc"[1]`).Prints("b\n"),
		That(`print "abc".length`).Prints("3\n"),
		That("free l = [1]", "push l 2", "print pop(l) + l[0]").Prints("3\n"),
		That(`print join(["a", "b"], "-")`).Prints("a-b\n"),
		That(`print split("a,b", ",")`).Prints(`["a", "b"]` + "\n"),
		That(`print upper("a") + lower("B")`).Prints("Ab\n"),
		That(`print contains([1, 2], 2)`).Prints("yes\n"),
		That(`print contains("team", "ea")`).Prints("yes\n"),
		That(`print keys({x: 1, y: 2})`).Prints(`["x", "y"]` + "\n"),
		That(`print range(3)`).Prints("[0, 1, 2]\n"),
		That(`print range(1, 3)`).Prints("[1, 2]\n"),
		That(`print type(1) + type("") + type(null)`).Prints("numberstringnull\n"),
		That(`print str(12) + "x"`).Prints("12x\n"),
		// Numeric strings still add numerically.
		That(`print str(1) + str(2)`).Prints("3\n"),
		That(`print num("4") + 1`).Prints("5\n"),
		That(`len(5)`).Throws(ErrorWithType(&eval.ArgError{})),
	)
}

func TestGroups(t *testing.T) {
	player := []string{
		"group Player {",
		"  free name",
		"  free hp = 100",
		"  lock kind = \"player\"",
		`  task greet => print "Hi " + name end`,
		"  task hit with n =>",
		"    hp = hp - n",
		"  end",
		"  task me => give self end",
		"}",
		`free p = Player("Steve")`,
	}
	with := func(lines ...string) Case {
		return That(append(append([]string(nil), player...), lines...)...)
	}
	Test(t,
		with("p.greet").Prints("Hi Steve\n"),
		with("print p.hp").Prints("100\n"),
		with("p.hit(10)", "print p.hp").Prints("90\n"),
		with("print p").Prints(`Player {name: "Steve", hp: 100, kind: "player"}` + "\n"),
		with("print p.me() == p").Prints("yes\n"),
		with(`p.kind = "npc"`).Throws(ErrorWithType(&eval.ImmutableReassignmentError{})),
		with("p.hp = 1", "print p.hp").Prints("1\n"),
		with("print p.nmae").Throws(ErrorWithType(&eval.UndefinedVariableError{})),
		// Instances do not share fields.
		with(`free q = Player("Alex")`, "q.hit(50)", "print p.hp + q.hp").Prints("150\n"),
		// Missing constructor arguments leave fields null.
		with("free r = Player()", "print r.name").Prints("null\n"),
		with("print type(p)").Prints("instance\n"),
	)
}

func TestBlueprints(t *testing.T) {
	Test(t,
		// do blocks apply to instances created earlier.
		That(
			"blueprint Greeter { task hello }",
			"group Dog { free name }",
			`free d = Dog("Rex")`,
			"do Greeter for Dog {",
			`  task hello => print name + " says hi" end`,
			"}",
			"d.hello").Prints("Rex says hi\n"),
		// Signatures are not checked.
		That(
			"blueprint Shape { task area with scale }",
			"group Box { free w }",
			"do Shape for Box {",
			"  task perimeter => give 4 * w end",
			"}",
			"print Box(2).perimeter()").Prints("8\n"),
		That("blueprint B { }", "do B for Nope { }").
			Throws(&eval.UnknownGroupError{Name: "Nope"}),
		That("group G { }", "do X for G { }").
			Throws(&eval.UnknownBlueprintError{Name: "X"}),
	)
}

func TestAsk(t *testing.T) {
	Test(t,
		That(`free name = ask "Name? "`, `print "Hi " + name`).
			WithStdin("Ada\n").Prints("Name? Hi Ada\n"),
		That("print ask").WithStdin("").Prints("\n"),
		That("print ask", "print ask").WithStdin("a\r\nb").Prints("a\n", "b\n"),
	)
}

func TestParseErrors(t *testing.T) {
	Test(t,
		That("print (").DoesNotParse(),
		That("free x = 1", "declare web").DoesNotParse(),
		That("free x = $").DoesNotParse(),
	)
}
