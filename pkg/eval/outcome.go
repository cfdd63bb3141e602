package eval

import "github.com/Lantharos/flick/pkg/eval/vals"

// OutcomeKind tells how a statement finished.
type OutcomeKind int

const (
	// Normal means execution continues with the next statement.
	Normal OutcomeKind = iota
	// Return means a give statement ran; the enclosing task call ends.
	Return
	// Respond means a respond statement ran; the enclosing request handler
	// ends.
	Respond
)

func (k OutcomeKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Return:
		return "return"
	case Respond:
		return "respond"
	}
	return "unknown"
}

// Outcome is the result of executing a statement. Non-local control transfer
// is expressed with Outcomes rather than panics: blocks stop at the first
// non-normal Outcome and hand it to their caller.
type Outcome struct {
	Kind OutcomeKind
	// Value is the given value of a Return.
	Value vals.Value
	// Response is the payload of a Respond.
	Response *Response
}

// Response is the payload of a respond statement. The content is kept as a
// Flick value; the web plugin decides how to encode it.
type Response struct {
	Content     vals.Value
	Status      int
	ContentType string
}

var normal = Outcome{}

// ReturnOutcome builds a Return carrying v.
func ReturnOutcome(v vals.Value) Outcome { return Outcome{Kind: Return, Value: v} }

// RespondOutcome builds a Respond carrying r.
func RespondOutcome(r *Response) Outcome { return Outcome{Kind: Respond, Response: r} }
