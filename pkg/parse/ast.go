package parse

import "github.com/Lantharos/flick/pkg/diag"

// Node is implemented by all AST nodes. Every node knows the byte range of
// source text it was parsed from.
type Node interface {
	diag.Ranger
	node()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// PluginNode is implemented by statements that only a plugin knows how to
// execute.
type PluginNode interface {
	Stmt
	// Plugin returns the name of the plugin that executes the statement.
	Plugin() string
}

type base struct{ diag.Ranging }

func (base) node() {}

func (b *base) span(from, to int) { b.From, b.To = from, to }

type stmtBase struct{ base }

func (stmtBase) stmtNode() {}

type exprBase struct{ base }

func (exprBase) exprNode() {}

// Program is the root of a parsed file.
type Program struct {
	base
	Source Source
	Body   []Stmt
}

// Statements.
type (
	// DeclareStmt activates a plugin: declare web@8080.
	DeclareStmt struct {
		stmtBase
		Name string
		Arg  Expr // nil when absent
	}

	// ImportStmt binds names exported by a module or native package:
	// import {a, b} from "./lib.fk".
	ImportStmt struct {
		stmtBase
		Names []string
		From  string
	}

	// UseStmt loads a module and binds it under its name: use Helpers.
	UseStmt struct {
		stmtBase
		Name string
		Path string // empty unless written explicitly
	}

	// VarDecl declares a binding: free x = 1, lock y = 2.
	VarDecl struct {
		stmtBase
		Name    string
		Mutable bool
		Value   Expr // nil when absent
	}

	// TaskDecl declares a task.
	TaskDecl struct {
		stmtBase
		Name   string
		Params []string
		Body   []Stmt
	}

	// GroupDecl declares a group with fields and methods.
	GroupDecl struct {
		stmtBase
		Name    string
		Fields  []*VarDecl
		Methods []*TaskDecl
	}

	// TaskSig is a method signature inside a blueprint.
	TaskSig struct {
		base
		Name   string
		Params []string
	}

	// BlueprintDecl declares a structural interface.
	BlueprintDecl struct {
		stmtBase
		Name string
		Sigs []*TaskSig
	}

	// DoBlock attaches methods implementing a blueprint to a group:
	// do Drawable for Player { ... }.
	DoBlock struct {
		stmtBase
		Blueprint string
		Group     string
		Methods   []*TaskDecl
	}

	// PrintStmt writes the display form of a value and a newline.
	PrintStmt struct {
		stmtBase
		Value Expr
	}

	// CondBranch is a condition and the body it guards. It is used by
	// assume/maybe and select/when.
	CondBranch struct {
		base
		Cond Expr
		Body []Stmt
	}

	// AssumeStmt is the conditional statement.
	AssumeStmt struct {
		stmtBase
		Branches  []*CondBranch
		Otherwise []Stmt // nil when there is no otherwise branch
	}

	// EachStmt iterates over a list, the keys of an object or the characters
	// of a string.
	EachStmt struct {
		stmtBase
		Var      string
		Iterable Expr
		Body     []Stmt
	}

	// MarchStmt iterates over an inclusive numeric range.
	MarchStmt struct {
		stmtBase
		Var  string
		From Expr
		To   Expr
		Body []Stmt
	}

	// SelectStmt runs the first when-branch whose value equals the subject.
	SelectStmt struct {
		stmtBase
		Subject   Expr
		Cases     []*CondBranch
		Otherwise []Stmt
	}

	// GiveStmt returns from the enclosing task.
	GiveStmt struct {
		stmtBase
		Value Expr // nil when absent
	}

	// AssignStmt assigns to a name, a member or an index.
	AssignStmt struct {
		stmtBase
		Target Expr
		Value  Expr
	}

	// ExprStmt evaluates an expression for its effects.
	ExprStmt struct {
		stmtBase
		X Expr
	}

	// RouteStmt maps a method and path to a handler body, or forwards a path
	// prefix to a module.
	RouteStmt struct {
		stmtBase
		Method  string
		Path    string
		Body    []Stmt
		Forward string // name of the target module for forwarding routes
	}

	// RespondStmt ends a request handler with a response.
	RespondStmt struct {
		stmtBase
		Content     Expr
		Status      Expr // nil when absent
		ContentType Expr // nil when absent
	}
)

// IsForward reports whether the route forwards to a module.
func (r *RouteStmt) IsForward() bool { return r.Forward != "" }

// Plugin returns "web".
func (*RouteStmt) Plugin() string { return "web" }

// Plugin returns "web".
func (*RespondStmt) Plugin() string { return "web" }

// Expressions.
type (
	NumberLit struct {
		exprBase
		Value float64
	}

	StringLit struct {
		exprBase
		Value string
	}

	BoolLit struct {
		exprBase
		Value bool
	}

	NullLit struct{ exprBase }

	Ident struct {
		exprBase
		Name string
	}

	// ListLit is [a, b, c].
	ListLit struct {
		exprBase
		Elems []Expr
	}

	// ObjectLit is {key: value, "other key": value}.
	ObjectLit struct {
		exprBase
		Keys   []string
		Values []Expr
	}

	BinaryExpr struct {
		exprBase
		Op   string
		L, R Expr
	}

	UnaryExpr struct {
		exprBase
		Op string
		X  Expr
	}

	// TernaryExpr is cond ? then : else.
	TernaryExpr struct {
		exprBase
		Cond, Then, Else Expr
	}

	// MemberExpr is x.name or x/name.
	MemberExpr struct {
		exprBase
		X    Expr
		Name string
	}

	// IndexExpr is x[index].
	IndexExpr struct {
		exprBase
		X     Expr
		Index Expr
	}

	// CallExpr applies a callee to arguments, written either as f(a, b) or
	// as bare arguments f a b.
	CallExpr struct {
		exprBase
		Callee Expr
		Args   []Expr
		Bare   bool
	}

	// AskExpr prompts for a line of input.
	AskExpr struct {
		exprBase
		Prompt Expr // nil when absent
	}
)

// Walk traverses the statements of a tree depth-first, calling f for every
// statement, including those nested in task bodies, group methods, branches,
// loops and route handlers. If f returns false, the children of that
// statement are skipped.
func Walk(stmts []Stmt, f func(Stmt) bool) {
	for _, s := range stmts {
		if !f(s) {
			continue
		}
		switch s := s.(type) {
		case *TaskDecl:
			Walk(s.Body, f)
		case *GroupDecl:
			for _, m := range s.Methods {
				Walk([]Stmt{m}, f)
			}
		case *DoBlock:
			for _, m := range s.Methods {
				Walk([]Stmt{m}, f)
			}
		case *AssumeStmt:
			for _, b := range s.Branches {
				Walk(b.Body, f)
			}
			Walk(s.Otherwise, f)
		case *SelectStmt:
			for _, b := range s.Cases {
				Walk(b.Body, f)
			}
			Walk(s.Otherwise, f)
		case *EachStmt:
			Walk(s.Body, f)
		case *MarchStmt:
			Walk(s.Body, f)
		case *RouteStmt:
			Walk(s.Body, f)
		}
	}
}
