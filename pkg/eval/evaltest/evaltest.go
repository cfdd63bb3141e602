// Package evaltest provides a framework for testing Flick code.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it.
//
// Example:
//
//	Test(t,
//	    That("print 1 + 2").Prints("3\n"),
//	    That("print x").Throws(ErrorWithType(&eval.UndefinedVariableError{})))
//
// If the Evaler needs plugins or native packages, use TestWithConfig.
package evaltest

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/parse"
)

// Case is a test case that can be used in Test.
type Case struct {
	codes  []string
	stdin  string
	setup  func(ev *eval.Evaler)
	verify func(t *testing.T)
	want   result
}

type result struct {
	Out []byte

	ParseError error
	Exception  error
}

// That returns a new Case with the specified source code. Multiple arguments
// are joined with newlines. To specify multiple pieces of code that are
// executed separately in the same Evaler, use the Then method.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "print 1" prints "1" reads:
//
//	That("print 1").Prints("1\n")
func That(lines ...string) Case {
	return Case{codes: []string{strings.Join(lines, "\n")}}
}

// Then returns a new Case that executes the given code in addition. Multiple
// arguments are joined with newlines.
func (c Case) Then(lines ...string) Case {
	c.codes = append(c.codes, strings.Join(lines, "\n"))
	return c
}

// WithStdin returns a new Case whose programs read the given text from their
// standard input.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// WithSetup returns a new Case with the given setup function executed on the
// Evaler before the code is executed.
func (c Case) WithSetup(f func(*eval.Evaler)) Case {
	c.setup = f
	return c
}

// DoesNothing returns c unchanged. It is useful to mark tests that don't have
// any side effects, for example:
//
//	That("free x = 1").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// Passes returns an altered Case that runs an additional verification
// function.
func (c Case) Passes(f func(t *testing.T)) Case {
	c.verify = f
	return c
}

// Prints returns an altered Case that requires the source code to write the
// specified output when evaluated.
func (c Case) Prints(lines ...string) Case {
	c.want.Out = []byte(strings.Join(lines, ""))
	return c
}

// Throws returns an altered Case that requires the source code to throw an
// exception with the given reason. The reason supports special matcher values
// constructed by functions like ErrorWithType.
//
// If at least one stacktrace string is given, the exception must also have a
// stacktrace matching the given source fragments, frame by frame (innermost
// frame first). If no stacktrace string is given, the stack trace of the
// exception is not checked.
func (c Case) Throws(reason error, stacks ...string) Case {
	c.want.Exception = exc{reason, stacks}
	return c
}

// DoesNotParse returns an altered Case that requires the source code to fail
// lexing or parsing.
func (c Case) DoesNotParse() Case {
	c.want.ParseError = AnyParseError
	return c
}

// Test runs test cases. For each test case, a new Evaler is created with an
// empty Config.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithConfig(t, func() eval.Config { return eval.Config{} }, tests...)
}

// TestWithConfig runs test cases. For each test case, a new Evaler is
// created from the Config returned by newConfig, with its standard streams
// replaced.
func TestWithConfig(t *testing.T, newConfig func() eval.Config, tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(strings.Join(tc.codes, "\n"), func(t *testing.T) {
			t.Helper()
			var out strings.Builder
			cfg := newConfig()
			cfg.Stdin = strings.NewReader(tc.stdin)
			cfg.Stdout = &out
			cfg.Stderr = &out
			ev := eval.NewEvaler(cfg)
			if tc.setup != nil {
				tc.setup(ev)
			}

			r := evalAndCollect(ev, tc.codes)
			r.Out = []byte(out.String())

			if tc.verify != nil {
				tc.verify(t)
			}
			if diff := cmp.Diff(string(tc.want.Out), string(r.Out)); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
			if !matchErr(tc.want.ParseError, r.ParseError) {
				t.Errorf("got parse error %v, want %v", r.ParseError, tc.want.ParseError)
			}
			if !matchErr(tc.want.Exception, r.Exception) {
				t.Errorf("unexpected exception")
				var e *eval.Exception
				if errors.As(r.Exception, &e) {
					// For an *eval.Exception report the type of the underlying error.
					t.Logf("got: %T: %v", e.Reason, e)
					t.Logf("stack trace: %#v", getStackTexts(e.StackTrace))
				} else {
					t.Logf("got: %T: %v", r.Exception, r.Exception)
				}
				t.Errorf("want: %v", tc.want.Exception)
			}
		})
	}
}

func evalAndCollect(ev *eval.Evaler, texts []string) result {
	var r result
	for _, text := range texts {
		err := ev.Eval(parse.Source{Name: "[test]", Code: text})
		if isParseError(err) {
			// NOTE: If multiple code pieces fail to parse, only the last
			// error is saved.
			r.ParseError = err
		} else if err != nil {
			r.Exception = err
		}
	}
	return r
}

// Only errors returned by parsing the code itself count. A parse error of a
// module loaded by use is wrapped in an exception and stays an exception.
func isParseError(err error) bool {
	switch err.(type) {
	case *parse.LexError, *parse.ParseError:
		return true
	}
	return false
}

func matchErr(want, got error) bool {
	if want == nil {
		return got == nil
	}
	if matcher, ok := want.(errorMatcher); ok {
		return matcher.matchError(got)
	}
	return reflect.DeepEqual(want, got)
}
