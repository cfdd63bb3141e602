package parse

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Lantharos/flick/pkg/diag"
)

// Source describes a piece of source code.
type Source struct {
	Name string
	Code string
}

type lexer struct {
	src  Source
	pos  int
	line int
	col  int

	tokens []Token
}

// Lex converts source text into tokens. The result always ends with an EOF
// token. Newlines are kept as Newline tokens.
func Lex(src Source) ([]Token, error) {
	lx := &lexer{src: src, line: 1, col: 1}
	for {
		done, err := lx.lexOne()
		if err != nil {
			return nil, err
		}
		if done {
			return lx.tokens, nil
		}
	}
}

func (lx *lexer) peekByte(off int) byte {
	if lx.pos+off >= len(lx.src.Code) {
		return 0
	}
	return lx.src.Code[lx.pos+off]
}

// advance moves past n bytes, keeping line and col up to date.
func (lx *lexer) advance(n int) {
	for n > 0 {
		r, size := utf8.DecodeRuneInString(lx.src.Code[lx.pos:])
		lx.pos += size
		n -= size
		if r == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}
	}
}

func (lx *lexer) emit(kind TokenKind, text string, pos, line, col int) {
	lx.tokens = append(lx.tokens, Token{
		Kind: kind, Text: text, Line: line, Col: col, Pos: pos, End: lx.pos})
}

func (lx *lexer) lexOne() (bool, error) {
	code := lx.src.Code
	// Skip inline whitespace and comments.
	for lx.pos < len(code) {
		c := code[lx.pos]
		if c == ' ' || c == '\t' || c == '\r' {
			lx.advance(1)
		} else if c == '#' {
			for lx.pos < len(code) && code[lx.pos] != '\n' {
				lx.advance(1)
			}
		} else {
			break
		}
	}

	pos, line, col := lx.pos, lx.line, lx.col
	if lx.pos >= len(code) {
		lx.emit(EOF, "", pos, line, col)
		return true, nil
	}

	c := code[lx.pos]
	switch {
	case c == '\n':
		lx.advance(1)
		lx.emit(Newline, "\n", pos, line, col)
	case c == '"' || c == '\'':
		text, err := lx.lexString(c)
		if err != nil {
			return false, err
		}
		lx.emit(String, text, pos, line, col)
	case isDigit(c):
		seenDot := false
		for lx.pos < len(code) {
			d := code[lx.pos]
			if isDigit(d) {
				lx.advance(1)
			} else if d == '.' && !seenDot && isDigit(lx.peekByte(1)) {
				seenDot = true
				lx.advance(1)
			} else {
				break
			}
		}
		lx.emit(Number, code[pos:lx.pos], pos, line, col)
	default:
		r, _ := utf8.DecodeRuneInString(code[lx.pos:])
		if isIdentStart(r) {
			for lx.pos < len(code) {
				r, size := utf8.DecodeRuneInString(code[lx.pos:])
				if !isIdentPart(r) {
					break
				}
				lx.advance(size)
			}
			word := code[pos:lx.pos]
			if IsKeyword(word) {
				lx.emit(Keyword, word, pos, line, col)
			} else {
				lx.emit(Identifier, word, pos, line, col)
			}
			return false, nil
		}
		if lx.pos+2 <= len(code) {
			if kind, ok := twoCharOps[code[lx.pos:lx.pos+2]]; ok {
				lx.advance(2)
				lx.emit(kind, code[pos:lx.pos], pos, line, col)
				return false, nil
			}
		}
		if kind, ok := oneCharOps[c]; ok {
			lx.advance(1)
			lx.emit(kind, code[pos:lx.pos], pos, line, col)
			return false, nil
		}
		_, size := utf8.DecodeRuneInString(code[lx.pos:])
		return false, newLexError(lx.src, diag.Ranging{From: pos, To: pos + size},
			"unexpected character %q at line %d, column %d", r, line, col)
	}
	return false, nil
}

// lexString consumes a quoted string literal, returning its unescaped
// content.
func (lx *lexer) lexString(quote byte) (string, error) {
	code := lx.src.Code
	start := lx.pos
	lx.advance(1)
	var sb strings.Builder
	for {
		if lx.pos >= len(code) {
			return "", newLexError(lx.src, diag.Ranging{From: start, To: lx.pos},
				"unterminated string starting at line %d", lineOf(code, start))
		}
		c := code[lx.pos]
		switch {
		case c == quote:
			lx.advance(1)
			return sb.String(), nil
		case c == '\\':
			next := lx.peekByte(1)
			switch next {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			case '\\', '"', '\'':
				sb.WriteByte(next)
			case 0:
				lx.advance(1)
				continue
			default:
				// Unknown escapes are kept verbatim.
				r, size := utf8.DecodeRuneInString(code[lx.pos+1:])
				sb.WriteByte('\\')
				sb.WriteRune(r)
				lx.advance(1 + size)
				continue
			}
			lx.advance(2)
		default:
			_, size := utf8.DecodeRuneInString(code[lx.pos:])
			sb.WriteString(code[lx.pos : lx.pos+size])
			lx.advance(size)
		}
	}
}

func lineOf(code string, pos int) int {
	return strings.Count(code[:pos], "\n") + 1
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
