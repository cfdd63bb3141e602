// Package parse implements the Flick tokenizer and parser.
//
// Source text is first split into tokens by Lex, then Parse builds a
// *Program by recursive descent. Newline tokens are dropped before parsing,
// since the grammar is terminated by keywords and delimiters; tokens keep
// their line numbers so that bare call arguments can be confined to one line.
package parse

// Config keeps configuration options when parsing.
type Config struct {
	// Gates maps keywords to the plugin that must be declared earlier in the
	// same file before the keyword may be used. If nil, DefaultGates is used.
	Gates map[string]string
}

// DefaultGates are the keyword gates of the built-in plugins.
var DefaultGates = map[string]string{
	"route":   "web",
	"respond": "web",
}

// Parse parses the given source. The returned error is a *LexError or a
// *ParseError.
func Parse(src Source, cfg Config) (*Program, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	gates := cfg.Gates
	if gates == nil {
		gates = DefaultGates
	}
	p := &parser{
		src:      src,
		toks:     dropNewlines(toks),
		gates:    gates,
		declared: make(map[string]bool),
	}
	return p.parseProgram()
}

func dropNewlines(toks []Token) []Token {
	filtered := toks[:0:0]
	for _, t := range toks {
		if t.Kind != Newline {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
