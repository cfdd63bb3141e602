package parse

import (
	"fmt"

	"github.com/Lantharos/flick/pkg/diag"
)

// LexError is returned by Lex for a character that cannot start a token or
// an unterminated string literal.
type LexError struct{ Err *diag.Error }

// ParseError is returned by Parse for an unexpected token, a misplaced
// header statement or a gated keyword whose plugin was not declared.
type ParseError struct{ Err *diag.Error }

func (e *LexError) Error() string               { return e.Err.Error() }
func (e *LexError) Unwrap() error               { return e.Err }
func (e *LexError) Range() diag.Ranging         { return e.Err.Range() }
func (e *LexError) Show(indent string) string   { return e.Err.Show(indent) }
func (e *ParseError) Error() string             { return e.Err.Error() }
func (e *ParseError) Unwrap() error             { return e.Err }
func (e *ParseError) Range() diag.Ranging       { return e.Err.Range() }
func (e *ParseError) Show(indent string) string { return e.Err.Show(indent) }

func newLexError(src Source, r diag.Ranging, format string, args ...any) *LexError {
	return &LexError{newError("lex error", src, r, format, args...)}
}

func newParseError(src Source, r diag.Ranging, format string, args ...any) *ParseError {
	return &ParseError{newError("parse error", src, r, format, args...)}
}

func newError(typ string, src Source, r diag.Ranging, format string, args ...any) *diag.Error {
	return &diag.Error{
		Type:    typ,
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(src.Name, src.Code, r),
	}
}
