package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Shower wraps the Show function.
type Shower interface {
	// Show takes an indentation string and shows.
	Show(indent string) string
}

var (
	errorBegin = "\033[31;1m"
	errorEnd   = "\033[m"
)

// SetColor turns ANSI styling of shown errors on or off.
func SetColor(on bool) {
	if on {
		errorBegin, errorEnd = "\033[31;1m", "\033[m"
		culpritLineBegin, culpritLineEnd = "\033[1;4m", "\033[m"
	} else {
		errorBegin, errorEnd = "", ""
		culpritLineBegin, culpritLineEnd = "", ""
	}
}

// IsTerminal reports whether w is a file connected to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ShowError shows an error. It uses the Show method if the error implements
// Shower, and uses Complain to print the error message otherwise.
func ShowError(w io.Writer, err error) {
	if shower, ok := err.(Shower); ok {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		Complain(w, err.Error())
	}
}

// Complain prints a message to w in bold and red, adding a trailing newline.
func Complain(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s%s%s\n", errorBegin, msg, errorEnd)
}
