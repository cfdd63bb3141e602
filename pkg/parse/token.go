package parse

import "fmt"

// TokenKind is the kind of a Token.
type TokenKind int

// Token kinds.
const (
	EOF TokenKind = iota
	Newline

	Identifier
	Number
	String
	Keyword

	// Two-character operators.
	Define    // :=
	Eq        // ==
	NotEq     // !=
	LessEq    // <=
	GreaterEq // >=
	FatArrow  // =>
	Arrow     // ->

	// Single-character operators and delimiters.
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	Less
	Greater
	Bang
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Dot
	Colon
	Question
	At
)

var kindNames = [...]string{
	EOF:        "end of input",
	Newline:    "newline",
	Identifier: "identifier",
	Number:     "number",
	String:     "string",
	Keyword:    "keyword",
	Define:     "':='",
	Eq:         "'=='",
	NotEq:      "'!='",
	LessEq:     "'<='",
	GreaterEq:  "'>='",
	FatArrow:   "'=>'",
	Arrow:      "'->'",
	Plus:       "'+'",
	Minus:      "'-'",
	Star:       "'*'",
	Slash:      "'/'",
	Percent:    "'%'",
	Assign:     "'='",
	Less:       "'<'",
	Greater:    "'>'",
	Bang:       "'!'",
	LParen:     "'('",
	RParen:     "')'",
	LBracket:   "'['",
	RBracket:   "']'",
	LBrace:     "'{'",
	RBrace:     "'}'",
	Comma:      "','",
	Dot:        "'.'",
	Colon:      "':'",
	Question:   "'?'",
	At:         "'@'",
}

func (k TokenKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

var twoCharOps = map[string]TokenKind{
	":=": Define,
	"==": Eq,
	"!=": NotEq,
	"<=": LessEq,
	">=": GreaterEq,
	"=>": FatArrow,
	"->": Arrow,
}

var oneCharOps = map[byte]TokenKind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'%': Percent,
	'=': Assign,
	'<': Less,
	'>': Greater,
	'!': Bang,
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	'{': LBrace,
	'}': RBrace,
	',': Comma,
	'.': Dot,
	':': Colon,
	'?': Question,
	'@': At,
}

// Keywords is the fixed keyword table of the language. Editor integrations
// read it as reference data.
var Keywords = []string{
	"declare", "use", "import", "from",
	"group", "blueprint", "do", "for", "task", "with",
	"free", "lock", "print",
	"assume", "maybe", "otherwise",
	"each", "in", "march", "to",
	"select", "when", "give", "end",
	"and", "or", "not",
	"yes", "no", "null", "ask",
	"route", "respond",
}

var keywordSet = func() map[string]bool {
	m := make(map[string]bool, len(Keywords))
	for _, kw := range Keywords {
		m[kw] = true
	}
	return m
}()

// IsKeyword reports whether s is a keyword.
func IsKeyword(s string) bool { return keywordSet[s] }

// Token is a lexical token. Pos and End are byte offsets into the source;
// Line and Col are 1-based, with Col counting runes.
type Token struct {
	Kind TokenKind
	Text string
	Line int
	Col  int
	Pos  int
	End  int
}

// Is reports whether the token is the given keyword.
func (t Token) Is(kw string) bool {
	return t.Kind == Keyword && t.Text == kw
}

func (t Token) String() string {
	switch t.Kind {
	case EOF, Newline:
		return t.Kind.String()
	case Identifier, Keyword:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case String:
		return fmt.Sprintf("string %q", t.Text)
	case Number:
		return "number " + t.Text
	default:
		return t.Kind.String()
	}
}
