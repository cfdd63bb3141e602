// Package progtest contains utilities for testing the Flick command line.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/Lantharos/flick/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin *os.File

	want result
}

type result struct {
	exit   int
	stdout output
	stderr output
}

type output struct {
	content  string
	partial  bool
	anything bool
}

func (o output) String() string {
	switch {
	case o.anything:
		return "anything"
	case o.partial:
		return "text containing " + o.content
	default:
		return o.content
	}
}

func (o output) matches(s string) bool {
	switch {
	case o.anything:
		return true
	case o.partial:
		return strings.Contains(s, o.content)
	default:
		return s == o.content
	}
}

// ThatFlick returns a new Case with the specified CLI arguments. The new
// Case expects no output and exits with 0.
func ThatFlick(args ...string) Case {
	return Case{args: append([]string{"flick"}, args...)}
}

// WithStdin returns an altered Case that reads its standard input from f.
func (c Case) WithStdin(f *os.File) Case {
	c.stdin = f
	return c
}

// DoesNothing returns c itself. It's useful to mark tests that otherwise don't
// have any expectations, for example:
//
//	ThatFlick("run", "empty.fk").DoesNothing()
func (c Case) DoesNothing() Case { return c }

// ExitsWith returns an altered Case that requires the program to exit with
// the specified code. Its output is not checked unless other methods say so.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	if code != 0 {
		c.want.stdout.anything = true
		c.want.stderr.anything = true
	}
	return c
}

// WritesStdout returns an altered Case that requires the program to write
// exactly the specified text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program
// to write output to stdout that contains the specified text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program to write
// exactly the specified text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program
// to write output to stderr that contains the specified text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against prog.Run.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(tc.args, tc.stdin)
			if r.exit != tc.want.exit {
				t.Errorf("got exit %v, want %v", r.exit, tc.want.exit)
			}
			if !tc.want.stdout.matches(r.stdout) {
				t.Errorf("got stdout %q, want %s", r.stdout, tc.want.stdout)
			}
			if !tc.want.stderr.matches(r.stderr) {
				t.Errorf("got stderr %q, want %s", r.stderr, tc.want.stderr)
			}
		})
	}
}

// Run runs prog.Run with the given arguments and standard input, which may
// be nil for an empty input, and returns its exit code and output.
func Run(args []string, stdin *os.File) (exit int, stdout, stderr string) {
	r := run(args, stdin)
	return r.exit, r.stdout, r.stderr
}

type runResult struct {
	exit           int
	stdout, stderr string
}

func run(args []string, stdin *os.File) runResult {
	if stdin == nil {
		r, w := mustPipe()
		w.Close()
		defer r.Close()
		stdin = r
	}
	r1, w1 := mustPipe()
	r2, w2 := mustPipe()
	stdoutCh, stderrCh := collect(r1), collect(r2)

	exit := prog.Run([3]*os.File{stdin, w1, w2}, args)
	w1.Close()
	w2.Close()
	return runResult{exit, <-stdoutCh, <-stderrCh}
}

func mustPipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	return r, w
}

// Reads r until EOF in the background, so that the program never blocks on
// a full pipe.
func collect(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		r.Close()
		ch <- string(b)
	}()
	return ch
}
