package eval

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Lantharos/flick/pkg/diag"
)

// Exception is a runtime error together with the place it was raised. It is
// returned by the Evaler when Flick code fails.
type Exception struct {
	Reason     error
	StackTrace *StackTrace
}

// StackTrace represents a stack trace as a linked list of diag.Context. The
// head is the innermost statement; each following node is the call site of
// the task that contains the previous one.
type StackTrace struct {
	Head *diag.Context
	Next *StackTrace
}

// Deep recursion produces long traces; Show elides frames past this many.
const maxShownFrames = 20

func (tb *StackTrace) len() int {
	n := 0
	for ; tb != nil; tb = tb.Next {
		n++
	}
	return n
}

// Reason returns the Reason field if err is an *Exception. Otherwise it
// returns err itself.
func Reason(err error) error {
	var exc *Exception
	if errors.As(err, &exc) {
		return exc.Reason
	}
	return err
}

// Error returns the message of the cause, prefixed with the position of the
// innermost statement.
func (exc *Exception) Error() string {
	if exc.StackTrace == nil {
		return exc.Reason.Error()
	}
	return exc.StackTrace.Head.Describe() + ": " + exc.Reason.Error()
}

// Unwrap returns the reason, so that errors.As can match the error kinds of
// this package through an Exception.
func (exc *Exception) Unwrap() error { return exc.Reason }

// Show shows the exception.
func (exc *Exception) Show(indent string) string {
	buf := new(bytes.Buffer)
	var shower diag.Shower
	if errors.As(exc.Reason, &shower) {
		// Lex and parse errors of modules carry their own context.
		buf.WriteString(shower.Show(indent))
	} else {
		buf.WriteString("Exception: ")
		buf.WriteString(exc.Reason.Error())
	}
	if exc.StackTrace != nil {
		buf.WriteString("\n")
		if exc.StackTrace.Next == nil {
			buf.WriteString(indent + "  " + exc.StackTrace.Head.ShowCompact())
		} else {
			buf.WriteString(indent + "Traceback:")
			shown := 0
			for tb := exc.StackTrace; tb != nil; tb = tb.Next {
				if shown == maxShownFrames {
					fmt.Fprintf(buf, "\n%s  ... %d more", indent, tb.len())
					break
				}
				buf.WriteString("\n" + indent + "  ")
				buf.WriteString(tb.Head.Show(indent + "    "))
				shown++
			}
		}
	}
	return buf.String()
}
