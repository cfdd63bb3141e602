package diag

import (
	"errors"
	"strings"
	"testing"
)

type showerError struct{}

func (showerError) Error() string { return "error" }

func (showerError) Show(_ string) string { return "show" }

var showErrorTests = []struct {
	name    string
	color   bool
	err     error
	wantBuf string
}{
	{"A Shower error", true, showerError{}, "show\n"},
	{"A errors.New error", true, errors.New("ERROR"), "\033[31;1mERROR\033[m\n"},
	{"Without color", false, errors.New("ERROR"), "ERROR\n"},
}

func TestShowError(t *testing.T) {
	defer SetColor(true)
	for _, test := range showErrorTests {
		t.Run(test.name, func(t *testing.T) {
			SetColor(test.color)
			sb := &strings.Builder{}
			ShowError(sb, test.err)
			if sb.String() != test.wantBuf {
				t.Errorf("Wrote %q, want %q", sb.String(), test.wantBuf)
			}
		})
	}
}

func TestError(t *testing.T) {
	defer SetColor(true)
	SetColor(false)
	err := &Error{
		Type:    "parse error",
		Message: "unexpected token",
		Context: *NewContext("main.fk", "print )", Ranging{6, 7}),
	}
	if got, want := err.Error(), "parse error: main.fk:1:7: unexpected token"; got != want {
		t.Errorf("Error() -> %q, want %q", got, want)
	}
	if got, want := err.Show(""), "Parse error: unexpected token\n  main.fk:1:7: print )"; got != want {
		t.Errorf("Show() -> %q, want %q", got, want)
	}
}
