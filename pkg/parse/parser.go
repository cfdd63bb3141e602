package parse

import (
	"strconv"
	"strings"

	"github.com/Lantharos/flick/pkg/diag"
)

// parser maintains the mutable state of parsing one file.
type parser struct {
	src  Source
	toks []Token
	i    int

	// Keyword -> plugin that must be declared before the keyword is used.
	gates map[string]string
	// Plugins declared so far in this file.
	declared map[string]bool
}

type spanner interface{ span(from, to int) }

// Sections of a file. Header statements must appear in this order.
const (
	sectionDeclare = iota
	sectionImport
	sectionUse
	sectionBody
)

// HTTP methods accepted in route statements.
var httpMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) peekAt(off int) Token {
	if p.i+off >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+off]
}

// prev returns the last consumed token.
func (p *parser) prev() Token {
	if p.i == 0 {
		return Token{}
	}
	return p.toks[p.i-1]
}

func (p *parser) next() Token {
	t := p.toks[p.i]
	if t.Kind != EOF {
		p.i++
	}
	return t
}

func (p *parser) errorAt(t Token, format string, args ...any) *ParseError {
	end := t.End
	if end == t.Pos && end < len(p.src.Code) {
		end++
	}
	return newParseError(p.src, diag.Ranging{From: t.Pos, To: end}, format, args...)
}

func (p *parser) unexpected(want string) *ParseError {
	t := p.peek()
	return p.errorAt(t, "expected %s, got %s at line %d, column %d",
		want, t, t.Line, t.Col)
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	if p.peek().Kind != kind {
		return Token{}, p.unexpected(kind.String())
	}
	return p.next(), nil
}

func (p *parser) expectKeyword(kw string) error {
	if !p.peek().Is(kw) {
		return p.unexpected("'" + kw + "'")
	}
	p.next()
	return nil
}

func (p *parser) expectIdent() (string, error) {
	t, err := p.expect(Identifier)
	return t.Text, err
}

// finish sets the range of n to start from the given position and end at the
// last consumed token.
func (p *parser) finish(n spanner, from int) {
	n.span(from, p.prev().End)
}

func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{Source: p.src}
	section := sectionDeclare
	for p.peek().Kind != EOF {
		t := p.peek()
		var stmt Stmt
		var err error
		switch {
		case t.Is("declare"):
			if section > sectionDeclare {
				return nil, p.errorAt(t, "declare must come before import, use and other statements")
			}
			stmt, err = p.parseDeclare()
		case t.Is("import"):
			if section > sectionImport {
				return nil, p.errorAt(t, "import must come before use and other statements")
			}
			section = sectionImport
			stmt, err = p.parseImport()
		case t.Is("use"):
			if section > sectionUse {
				return nil, p.errorAt(t, "use must come before other statements")
			}
			section = sectionUse
			stmt, err = p.parseUse()
		default:
			section = sectionBody
			stmt, err = p.parseStmt()
		}
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	prog.span(0, len(p.src.Code))
	return prog, nil
}

func (p *parser) parseDeclare() (Stmt, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	d := &DeclareStmt{Name: name}
	if p.peek().Kind == At {
		p.next()
		if t := p.peek(); t.Kind == Identifier {
			// declare web@module: a bare word is taken literally.
			p.next()
			lit := &StringLit{Value: t.Text}
			lit.span(t.Pos, t.End)
			d.Arg = lit
		} else {
			d.Arg, err = p.parsePrimary()
			if err != nil {
				return nil, err
			}
		}
	}
	p.declared[name] = true
	p.finish(d, start.Pos)
	return d, nil
}

func (p *parser) parseImport() (Stmt, error) {
	start := p.next()
	if _, err := p.expect(LBrace); err != nil {
		return nil, err
	}
	im := &ImportStmt{}
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		im.Names = append(im.Names, name)
		if p.peek().Kind != Comma {
			break
		}
		p.next()
	}
	if _, err := p.expect(RBrace); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("from"); err != nil {
		return nil, err
	}
	from, err := p.expect(String)
	if err != nil {
		return nil, err
	}
	im.From = from.Text
	p.finish(im, start.Pos)
	return im, nil
}

func (p *parser) parseUse() (Stmt, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	u := &UseStmt{Name: name}
	if p.peek().Kind == String {
		u.Path = p.next().Text
	}
	p.finish(u, start.Pos)
	return u, nil
}

func (p *parser) checkGate(t Token) error {
	plugin, ok := p.gates[t.Text]
	if !ok || p.declared[plugin] {
		return nil
	}
	return p.errorAt(t, "'%s' requires 'declare %s' earlier in this file", t.Text, plugin)
}

func (p *parser) parseStmt() (Stmt, error) {
	t := p.peek()
	if t.Kind == Keyword {
		switch t.Text {
		case "declare", "import", "use":
			return nil, p.errorAt(t, "%s is only allowed at the top of a file", t.Text)
		case "free", "lock":
			return p.parseVarDecl()
		case "group":
			return p.parseGroup()
		case "blueprint":
			return p.parseBlueprint()
		case "do":
			return p.parseDo()
		case "task":
			return p.parseTask()
		case "print":
			p.next()
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			s := &PrintStmt{Value: v}
			p.finish(s, t.Pos)
			return s, nil
		case "assume":
			return p.parseAssume()
		case "each":
			return p.parseEach()
		case "march":
			return p.parseMarch()
		case "select":
			return p.parseSelect()
		case "give":
			return p.parseGive()
		case "route":
			if err := p.checkGate(t); err != nil {
				return nil, err
			}
			p.next()
			return p.parseRoute(t.Pos)
		case "respond":
			if err := p.checkGate(t); err != nil {
				return nil, err
			}
			return p.parseRespond()
		}
	}
	// Shorthand route: GET "/path" => ... end.
	if t.Kind == Identifier && httpMethods[t.Text] &&
		p.peekAt(1).Kind == String && p.peekAt(2).Kind == FatArrow {
		if err := p.checkGate(Token{Kind: Keyword, Text: "route", Pos: t.Pos, End: t.End}); err != nil {
			return nil, err
		}
		return p.parseRoute(t.Pos)
	}
	return p.parseAssignOrExpr()
}

func (p *parser) parseVarDecl() (*VarDecl, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	d := &VarDecl{Name: name, Mutable: start.Text == "free"}
	if k := p.peek().Kind; k == Assign || k == Define {
		p.next()
		d.Value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	p.finish(d, start.Pos)
	return d, nil
}

func (p *parser) parseParams() ([]string, error) {
	if !p.peek().Is("with") {
		return nil, nil
	}
	p.next()
	var params []string
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		params = append(params, name)
		if p.peek().Kind != Comma {
			return params, nil
		}
		p.next()
	}
}

func (p *parser) parseTask() (*TaskDecl, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(FatArrow); err != nil {
		return nil, err
	}
	body, err := p.parseBlock("end")
	if err != nil {
		return nil, err
	}
	p.next()
	td := &TaskDecl{Name: name, Params: params, Body: body}
	p.finish(td, start.Pos)
	return td, nil
}

func (p *parser) parseGroup() (Stmt, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBrace); err != nil {
		return nil, err
	}
	g := &GroupDecl{Name: name}
	for p.peek().Kind != RBrace {
		switch t := p.peek(); {
		case t.Is("free"), t.Is("lock"):
			f, err := p.parseVarDecl()
			if err != nil {
				return nil, err
			}
			g.Fields = append(g.Fields, f)
		case t.Is("task"):
			m, err := p.parseTask()
			if err != nil {
				return nil, err
			}
			g.Methods = append(g.Methods, m)
		default:
			return nil, p.unexpected("field, task or '}' in group " + name)
		}
	}
	p.next()
	p.finish(g, start.Pos)
	return g, nil
}

func (p *parser) parseBlueprint() (Stmt, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBrace); err != nil {
		return nil, err
	}
	b := &BlueprintDecl{Name: name}
	for p.peek().Kind != RBrace {
		t := p.peek()
		if err := p.expectKeyword("task"); err != nil {
			return nil, p.unexpected("task signature or '}' in blueprint " + name)
		}
		sigName, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		sig := &TaskSig{Name: sigName, Params: params}
		p.finish(sig, t.Pos)
		b.Sigs = append(b.Sigs, sig)
	}
	p.next()
	p.finish(b, start.Pos)
	return b, nil
}

func (p *parser) parseDo() (Stmt, error) {
	start := p.next()
	bp, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("for"); err != nil {
		return nil, err
	}
	group, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBrace); err != nil {
		return nil, err
	}
	d := &DoBlock{Blueprint: bp, Group: group}
	for p.peek().Kind != RBrace {
		if !p.peek().Is("task") {
			return nil, p.unexpected("task or '}' in do block")
		}
		m, err := p.parseTask()
		if err != nil {
			return nil, err
		}
		d.Methods = append(d.Methods, m)
	}
	p.next()
	p.finish(d, start.Pos)
	return d, nil
}

// parseBlock parses statements until one of the given keywords, which is
// left unconsumed.
func (p *parser) parseBlock(terminators ...string) ([]Stmt, error) {
	var stmts []Stmt
	for {
		t := p.peek()
		if t.Kind == EOF {
			return nil, p.unexpected("'" + strings.Join(terminators, "' or '") + "'")
		}
		if t.Kind == Keyword {
			for _, term := range terminators {
				if t.Text == term {
					return stmts, nil
				}
			}
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
}

func (p *parser) parseCondBranch(start Token, terminators ...string) (*CondBranch, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(FatArrow); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(terminators...)
	if err != nil {
		return nil, err
	}
	b := &CondBranch{Cond: cond, Body: body}
	p.finish(b, start.Pos)
	return b, nil
}

func (p *parser) parseOtherwise() ([]Stmt, error) {
	p.next()
	if _, err := p.expect(FatArrow); err != nil {
		return nil, err
	}
	body, err := p.parseBlock("end")
	if err != nil {
		return nil, err
	}
	if body == nil {
		body = []Stmt{}
	}
	return body, nil
}

func (p *parser) parseAssume() (Stmt, error) {
	start := p.next()
	a := &AssumeStmt{}
	branchStart := start
	for {
		b, err := p.parseCondBranch(branchStart, "maybe", "otherwise", "end")
		if err != nil {
			return nil, err
		}
		a.Branches = append(a.Branches, b)
		if !p.peek().Is("maybe") {
			break
		}
		branchStart = p.next()
	}
	if p.peek().Is("otherwise") {
		body, err := p.parseOtherwise()
		if err != nil {
			return nil, err
		}
		a.Otherwise = body
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	p.finish(a, start.Pos)
	return a, nil
}

func (p *parser) parseEach() (Stmt, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseArrowBody()
	if err != nil {
		return nil, err
	}
	e := &EachStmt{Var: name, Iterable: iter, Body: body}
	p.finish(e, start.Pos)
	return e, nil
}

func (p *parser) parseMarch() (Stmt, error) {
	start := p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("from"); err != nil {
		return nil, err
	}
	from, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("to"); err != nil {
		return nil, err
	}
	to, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseArrowBody()
	if err != nil {
		return nil, err
	}
	m := &MarchStmt{Var: name, From: from, To: to, Body: body}
	p.finish(m, start.Pos)
	return m, nil
}

// parseArrowBody parses "=> stmts end".
func (p *parser) parseArrowBody() ([]Stmt, error) {
	if _, err := p.expect(FatArrow); err != nil {
		return nil, err
	}
	body, err := p.parseBlock("end")
	if err != nil {
		return nil, err
	}
	p.next()
	return body, nil
}

func (p *parser) parseSelect() (Stmt, error) {
	start := p.next()
	subject, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(FatArrow); err != nil {
		return nil, err
	}
	s := &SelectStmt{Subject: subject}
	for p.peek().Is("when") {
		whenTok := p.next()
		b, err := p.parseCondBranch(whenTok, "when", "otherwise", "end")
		if err != nil {
			return nil, err
		}
		s.Cases = append(s.Cases, b)
	}
	if p.peek().Is("otherwise") {
		body, err := p.parseOtherwise()
		if err != nil {
			return nil, err
		}
		s.Otherwise = body
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	p.finish(s, start.Pos)
	return s, nil
}

func (p *parser) parseGive() (Stmt, error) {
	start := p.next()
	g := &GiveStmt{}
	if t := p.peek(); t.Line == start.Line && startsExpr(t) {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		g.Value = v
	}
	p.finish(g, start.Pos)
	return g, nil
}

func (p *parser) parseRoute(from int) (Stmt, error) {
	r := &RouteStmt{Method: "GET"}
	if t := p.peek(); t.Kind == Identifier {
		if !httpMethods[t.Text] {
			return nil, p.unexpected("HTTP method or path")
		}
		r.Method = p.next().Text
	}
	path, err := p.expect(String)
	if err != nil {
		return nil, err
	}
	r.Path = path.Text
	if p.peek().Kind == Arrow {
		p.next()
		r.Forward, err = p.expectIdent()
		if err != nil {
			return nil, err
		}
		p.finish(r, from)
		return r, nil
	}
	r.Body, err = p.parseArrowBody()
	if err != nil {
		return nil, err
	}
	p.finish(r, from)
	return r, nil
}

func (p *parser) parseRespond() (Stmt, error) {
	start := p.next()
	content, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	r := &RespondStmt{Content: content}
	if p.peek().Kind == Comma {
		p.next()
		if r.Status, err = p.parseExpr(); err != nil {
			return nil, err
		}
		if p.peek().Kind == Comma {
			p.next()
			if r.ContentType, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}
	}
	p.finish(r, start.Pos)
	return r, nil
}

func (p *parser) parseAssignOrExpr() (Stmt, error) {
	start := p.peek()
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind == Assign {
		eq := p.next()
		switch x.(type) {
		case *Ident, *MemberExpr, *IndexExpr:
		default:
			return nil, p.errorAt(eq, "cannot assign to this expression")
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		a := &AssignStmt{Target: x, Value: v}
		p.finish(a, start.Pos)
		return a, nil
	}
	s := &ExprStmt{X: x}
	p.finish(s, start.Pos)
	return s, nil
}

// Expressions.

func (p *parser) parseExpr() (Expr, error) { return p.parseTernary() }

func (p *parser) parseTernary() (Expr, error) {
	start := p.peek()
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != Question {
		return cond, nil
	}
	p.next()
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Colon); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	t := &TernaryExpr{Cond: cond, Then: then, Else: els}
	p.finish(t, start.Pos)
	return t, nil
}

// binaryLevel parses a left-associative chain of operators at one
// precedence level.
func (p *parser) binaryLevel(operand func() (Expr, error), isOp func(Token) bool) (Expr, error) {
	start := p.peek()
	l, err := operand()
	if err != nil {
		return nil, err
	}
	for isOp(p.peek()) {
		op := p.next()
		r, err := operand()
		if err != nil {
			return nil, err
		}
		b := &BinaryExpr{Op: op.Text, L: l, R: r}
		p.finish(b, start.Pos)
		l = b
	}
	return l, nil
}

func (p *parser) parseOr() (Expr, error) {
	return p.binaryLevel(p.parseAnd, func(t Token) bool { return t.Is("or") })
}

func (p *parser) parseAnd() (Expr, error) {
	return p.binaryLevel(p.parseComparison, func(t Token) bool { return t.Is("and") })
}

func (p *parser) parseComparison() (Expr, error) {
	return p.binaryLevel(p.parseAdditive, func(t Token) bool {
		switch t.Kind {
		case Eq, NotEq, Less, Greater, LessEq, GreaterEq:
			return true
		}
		return false
	})
}

func (p *parser) parseAdditive() (Expr, error) {
	return p.binaryLevel(p.parseMultiplicative, func(t Token) bool {
		return t.Kind == Plus || t.Kind == Minus
	})
}

func (p *parser) parseMultiplicative() (Expr, error) {
	return p.binaryLevel(p.parseUnary, func(t Token) bool {
		return t.Kind == Star || t.Kind == Slash || t.Kind == Percent
	})
}

func (p *parser) parseUnary() (Expr, error) {
	t := p.peek()
	if t.Kind == Minus || t.Kind == Bang || t.Is("not") {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := t.Text
		if op == "!" {
			op = "not"
		}
		u := &UnaryExpr{Op: op, X: x}
		p.finish(u, t.Pos)
		return u, nil
	}
	return p.parsePostfix(true)
}

// adjacent reports whether the next token starts right where the previous
// one ended.
func (p *parser) adjacent() bool {
	return p.i > 0 && p.prev().End == p.peek().Pos
}

func (p *parser) parsePostfix(allowBare bool) (Expr, error) {
	start := p.peek()
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch {
		case t.Kind == Dot && p.peekAt(1).Kind == Identifier:
			p.next()
			name := p.next().Text
			m := &MemberExpr{X: x, Name: name}
			p.finish(m, start.Pos)
			x = m
			continue
		case t.Kind == Slash && p.adjacent() &&
			p.peekAt(1).Kind == Identifier && p.peekAt(1).Pos == t.End:
			p.next()
			name := p.next().Text
			m := &MemberExpr{X: x, Name: name}
			p.finish(m, start.Pos)
			x = m
			continue
		case t.Kind == LBracket && p.adjacent():
			p.next()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RBracket); err != nil {
				return nil, err
			}
			ix := &IndexExpr{X: x, Index: idx}
			p.finish(ix, start.Pos)
			x = ix
			continue
		case t.Kind == LParen && p.adjacent():
			p.next()
			args, err := p.parseList(RParen)
			if err != nil {
				return nil, err
			}
			c := &CallExpr{Callee: x, Args: args}
			p.finish(c, start.Pos)
			x = c
			continue
		}
		break
	}
	if allowBare && isCallee(x) {
		var args []Expr
		line := p.prev().Line
		for p.startsBareArg(line) {
			arg, err := p.parsePostfix(false)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		if len(args) > 0 {
			c := &CallExpr{Callee: x, Args: args, Bare: true}
			p.finish(c, start.Pos)
			x = c
		}
	}
	return x, nil
}

func isCallee(x Expr) bool {
	switch x.(type) {
	case *Ident, *MemberExpr:
		return true
	}
	return false
}

// startsBareArg decides whether the next token starts a whitespace-separated
// argument. This is a best-effort heuristic: it stops at a token on a later
// line, at keywords, structural tokens and operators, and at an identifier
// that looks like the start of a new statement.
func (p *parser) startsBareArg(line int) bool {
	t := p.peek()
	if t.Line != line {
		return false
	}
	switch t.Kind {
	case Number, String, LBracket, LBrace, LParen:
		return true
	case Keyword:
		switch t.Text {
		case "yes", "no", "null", "ask":
			return true
		}
		return false
	case Identifier:
		switch p.peekAt(1).Kind {
		case Assign, Define, Slash, Dot:
			return false
		}
		return true
	}
	return false
}

// parseList parses comma-separated expressions up to the closing token, which
// is consumed. A trailing comma is allowed.
func (p *parser) parseList(closing TokenKind) ([]Expr, error) {
	var elems []Expr
	for p.peek().Kind != closing {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.peek().Kind != Comma {
			break
		}
		p.next()
	}
	if _, err := p.expect(closing); err != nil {
		return nil, err
	}
	return elems, nil
}

func startsExpr(t Token) bool {
	switch t.Kind {
	case Number, String, Identifier, LParen, LBracket, LBrace, Minus, Bang:
		return true
	case Keyword:
		switch t.Text {
		case "yes", "no", "null", "ask", "not":
			return true
		}
	}
	return false
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.peek()
	switch t.Kind {
	case Number:
		p.next()
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, p.errorAt(t, "bad number %s", t.Text)
		}
		n := &NumberLit{Value: f}
		n.span(t.Pos, t.End)
		return n, nil
	case String:
		p.next()
		s := &StringLit{Value: t.Text}
		s.span(t.Pos, t.End)
		return s, nil
	case Identifier:
		p.next()
		id := &Ident{Name: t.Text}
		id.span(t.Pos, t.End)
		return id, nil
	case LParen:
		p.next()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RParen); err != nil {
			return nil, err
		}
		return x, nil
	case LBracket:
		p.next()
		elems, err := p.parseList(RBracket)
		if err != nil {
			return nil, err
		}
		l := &ListLit{Elems: elems}
		p.finish(l, t.Pos)
		return l, nil
	case LBrace:
		return p.parseObject()
	case Keyword:
		switch t.Text {
		case "yes", "no":
			p.next()
			b := &BoolLit{Value: t.Text == "yes"}
			b.span(t.Pos, t.End)
			return b, nil
		case "null":
			p.next()
			n := &NullLit{}
			n.span(t.Pos, t.End)
			return n, nil
		case "ask":
			p.next()
			a := &AskExpr{}
			if next := p.peek(); next.Line == t.Line && startsExpr(next) {
				prompt, err := p.parsePostfix(false)
				if err != nil {
					return nil, err
				}
				a.Prompt = prompt
			}
			p.finish(a, t.Pos)
			return a, nil
		}
	}
	return nil, p.unexpected("expression")
}

func (p *parser) parseObject() (Expr, error) {
	start := p.next()
	o := &ObjectLit{}
	for p.peek().Kind != RBrace {
		k := p.peek()
		switch k.Kind {
		case Identifier, String, Number, Keyword:
			p.next()
		default:
			return nil, p.unexpected("object key")
		}
		if _, err := p.expect(Colon); err != nil {
			return nil, err
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		o.Keys = append(o.Keys, k.Text)
		o.Values = append(o.Values, v)
		if p.peek().Kind != Comma {
			break
		}
		p.next()
	}
	if _, err := p.expect(RBrace); err != nil {
		return nil, err
	}
	p.finish(o, start.Pos)
	return o, nil
}
