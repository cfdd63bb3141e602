package eval

import (
	"fmt"
	"math"

	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/parse"
)

func (fm *Frame) execBlock(stmts []parse.Stmt) (Outcome, error) {
	for _, stmt := range stmts {
		out, err := fm.exec(stmt)
		if err != nil || out.Kind != Normal {
			return out, err
		}
	}
	return normal, nil
}

// Runs stmts in a new child scope.
func (fm *Frame) execScoped(stmts []parse.Stmt) (Outcome, error) {
	return fm.fork(NewEnv(fm.env)).execBlock(stmts)
}

func (fm *Frame) exec(stmt parse.Stmt) (Outcome, error) {
	out, err := fm.execInner(stmt)
	return out, fm.errorp(stmt, err)
}

func (fm *Frame) execInner(stmt parse.Stmt) (Outcome, error) {
	switch s := stmt.(type) {
	case *parse.DeclareStmt:
		return normal, fm.declare(s)
	case *parse.ImportStmt:
		return normal, fm.Evaler.importNames(fm, s)
	case *parse.UseStmt:
		return normal, fm.Evaler.use(fm, s)
	case *parse.VarDecl:
		var v vals.Value = vals.Null{}
		if s.Value != nil {
			var err error
			if v, err = fm.Eval(s.Value); err != nil {
				return normal, err
			}
		}
		return normal, fm.env.Define(s.Name, v, s.Mutable)
	case *parse.TaskDecl:
		return normal, fm.env.Define(s.Name, fm.newTask(s, fm.env), false)
	case *parse.GroupDecl:
		g := newGroupDef(fm, s)
		fm.env.DefineGroup(g)
		return normal, fm.env.Define(s.Name, &Constructor{g}, false)
	case *parse.BlueprintDecl:
		fm.env.DefineBlueprint(newBlueprintDef(s))
		return normal, nil
	case *parse.DoBlock:
		return normal, fm.implement(s)
	case *parse.PrintStmt:
		v, err := fm.EvalOperand(s.Value)
		if err != nil {
			return normal, err
		}
		_, err = fmt.Fprintln(fm.Evaler.stdout, vals.ToString(v))
		return normal, err
	case *parse.AssumeStmt:
		for _, b := range s.Branches {
			cond, err := fm.Eval(b.Cond)
			if err != nil {
				return normal, err
			}
			if vals.Truthy(cond) {
				return fm.execScoped(b.Body)
			}
		}
		if s.Otherwise != nil {
			return fm.execScoped(s.Otherwise)
		}
		return normal, nil
	case *parse.SelectStmt:
		subject, err := fm.Eval(s.Subject)
		if err != nil {
			return normal, err
		}
		for _, c := range s.Cases {
			v, err := fm.Eval(c.Cond)
			if err != nil {
				return normal, err
			}
			if vals.Equal(subject, v) {
				return fm.execScoped(c.Body)
			}
		}
		if s.Otherwise != nil {
			return fm.execScoped(s.Otherwise)
		}
		return normal, nil
	case *parse.EachStmt:
		return fm.execEach(s)
	case *parse.MarchStmt:
		return fm.execMarch(s)
	case *parse.GiveStmt:
		if s.Value == nil {
			return ReturnOutcome(vals.Null{}), nil
		}
		v, err := fm.Eval(s.Value)
		if err != nil {
			return normal, err
		}
		return ReturnOutcome(v), nil
	case *parse.AssignStmt:
		return normal, fm.assign(s)
	case *parse.ExprStmt:
		_, err := fm.EvalOperand(s.X)
		return normal, err
	case parse.PluginNode:
		return fm.execPlugin(s)
	}
	return normal, fmt.Errorf("unsupported statement %T", stmt)
}

func (fm *Frame) declare(s *parse.DeclareStmt) error {
	p, ok := fm.Evaler.registry.Lookup(s.Name)
	if !ok {
		return &UnknownPluginError{s.Name}
	}
	var arg vals.Value = vals.Null{}
	if s.Arg != nil {
		var err error
		if arg, err = fm.Eval(s.Arg); err != nil {
			return err
		}
	}
	logger.Printf("declare %s@%s", s.Name, vals.Repr(arg))
	fm.Evaler.declared = append(fm.Evaler.declared, Declaration{s.Name, arg})
	if d, ok := p.(Declarer); ok {
		if err := d.OnDeclare(fm, arg); err != nil {
			return err
		}
	}
	if r, ok := p.(BuiltinRegistrar); ok {
		if err := r.RegisterBuiltins(fm.env, arg); err != nil {
			return err
		}
	}
	return nil
}

func (fm *Frame) execPlugin(node parse.PluginNode) (Outcome, error) {
	p, ok := fm.Evaler.registry.Lookup(node.Plugin())
	if !ok {
		return normal, &UnknownPluginError{node.Plugin()}
	}
	ex, ok := p.(Executor)
	if !ok {
		return normal, fmt.Errorf("plugin %s cannot execute %T", node.Plugin(), node)
	}
	return ex.Execute(fm, node)
}

// Loops run every iteration in a new scope. A give ends the loop and is
// passed up; a respond is dropped and the body goes on with its next
// statement.
func (fm *Frame) loopBody(name string, v vals.Value, body []parse.Stmt) (Outcome, bool, error) {
	env := NewEnv(fm.env)
	env.Define(name, v, true)
	child := fm.fork(env)
	for _, stmt := range body {
		out, err := child.exec(stmt)
		if err != nil {
			return normal, true, err
		}
		if out.Kind == Return {
			return out, true, nil
		}
	}
	return normal, false, nil
}

func (fm *Frame) execEach(s *parse.EachStmt) (Outcome, error) {
	iterable, err := fm.Eval(s.Iterable)
	if err != nil {
		return normal, err
	}
	var items []vals.Value
	switch it := iterable.(type) {
	case *vals.List:
		items = append(items, it.Elems...)
	case *vals.Object:
		for _, k := range it.Keys() {
			items = append(items, vals.Str(k))
		}
	case *Instance:
		for _, k := range it.FieldNames() {
			items = append(items, vals.Str(k))
		}
	case vals.Str:
		for _, r := range string(it) {
			items = append(items, vals.Str(string(r)))
		}
	default:
		return normal, fm.errorpf(s.Iterable, "cannot iterate over a %s", iterable.Kind())
	}
	for _, item := range items {
		out, stop, err := fm.loopBody(s.Var, item, s.Body)
		if stop {
			return out, err
		}
	}
	return normal, nil
}

func (fm *Frame) execMarch(s *parse.MarchStmt) (Outcome, error) {
	from, err := fm.marchBound(s.From)
	if err != nil {
		return normal, err
	}
	to, err := fm.marchBound(s.To)
	if err != nil {
		return normal, err
	}
	step := 1.0
	if from > to {
		step = -1
	}
	for i := from; (step > 0 && i <= to) || (step < 0 && i >= to); i += step {
		out, stop, err := fm.loopBody(s.Var, vals.Num(i), s.Body)
		if stop {
			return out, err
		}
	}
	return normal, nil
}

func (fm *Frame) marchBound(expr parse.Expr) (float64, error) {
	v, err := fm.Eval(expr)
	if err != nil {
		return 0, err
	}
	f := vals.ToNum(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fm.errorpf(expr, "march bound must be a finite number, got %s", vals.Repr(v))
	}
	return f, nil
}

func (fm *Frame) assign(s *parse.AssignStmt) error {
	switch target := s.Target.(type) {
	case *parse.Ident:
		v, err := fm.Eval(s.Value)
		if err != nil {
			return err
		}
		return fm.env.Assign(target.Name, v)
	case *parse.MemberExpr:
		obj, err := fm.Eval(target.X)
		if err != nil {
			return err
		}
		v, err := fm.Eval(s.Value)
		if err != nil {
			return err
		}
		return setMember(obj, target.Name, v)
	case *parse.IndexExpr:
		obj, err := fm.Eval(target.X)
		if err != nil {
			return err
		}
		idx, err := fm.Eval(target.Index)
		if err != nil {
			return err
		}
		v, err := fm.Eval(s.Value)
		if err != nil {
			return err
		}
		return setIndex(obj, idx, v)
	}
	return fmt.Errorf("cannot assign to %T", s.Target)
}

func setMember(obj vals.Value, name string, v vals.Value) error {
	switch obj := obj.(type) {
	case *vals.Object:
		obj.Set(name, v)
		return nil
	case *Instance:
		return obj.SetField(name, v)
	case *Module:
		return obj.Env.Assign(name, v)
	}
	return fmt.Errorf("cannot set member %s of a %s", name, obj.Kind())
}

func setIndex(obj, idx, v vals.Value) error {
	switch obj := obj.(type) {
	case *vals.List:
		i, ok := vals.ToInt(idx)
		if !ok || i < 0 || i > len(obj.Elems) {
			return fmt.Errorf("list index %s out of range", vals.Repr(idx))
		}
		if i == len(obj.Elems) {
			obj.Elems = append(obj.Elems, v)
		} else {
			obj.Elems[i] = v
		}
		return nil
	case *vals.Object, *Instance, *Module:
		return setMember(obj, vals.ToString(idx), v)
	}
	return fmt.Errorf("cannot index into a %s", obj.Kind())
}
