package eval

import (
	"sort"
	"strings"

	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/parse"
)

// GroupDef is a declared group.
type GroupDef struct {
	Name   string
	Fields []*parse.VarDecl
	// Methods is the merged method table: methods declared in the group
	// followed by those attached with do blocks. Method Envs are unset until
	// bound to an instance.
	Methods map[string]*Task
	// Impls records, per blueprint, the methods a do block attached.
	Impls map[string]map[string]*Task
	// Env is the scope the group was declared in.
	Env *Env

	src parse.Source
	ev  *Evaler
}

func newGroupDef(fm *Frame, d *parse.GroupDecl) *GroupDef {
	g := &GroupDef{
		Name:    d.Name,
		Fields:  d.Fields,
		Methods: make(map[string]*Task),
		Impls:   make(map[string]map[string]*Task),
		Env:     fm.env,
		src:     fm.src,
		ev:      fm.Evaler,
	}
	for _, m := range d.Methods {
		g.Methods[m.Name] = fm.newTask(m, nil)
	}
	return g
}

// BlueprintDef is a declared blueprint. Its signatures are recorded but
// never checked against the groups that implement it.
type BlueprintDef struct {
	Name       string
	Signatures map[string][]string
}

func newBlueprintDef(d *parse.BlueprintDecl) *BlueprintDef {
	b := &BlueprintDef{d.Name, make(map[string][]string)}
	for _, sig := range d.Sigs {
		b.Signatures[sig.Name] = sig.Params
	}
	return b
}

// implement runs a do block.
func (fm *Frame) implement(d *parse.DoBlock) error {
	if _, ok := fm.env.LookupBlueprint(d.Blueprint); !ok {
		return &UnknownBlueprintError{d.Blueprint}
	}
	g, ok := fm.env.LookupGroup(d.Group)
	if !ok {
		return &UnknownGroupError{d.Group}
	}
	impl := g.Impls[d.Blueprint]
	if impl == nil {
		impl = make(map[string]*Task)
		g.Impls[d.Blueprint] = impl
	}
	for _, m := range d.Methods {
		t := fm.newTask(m, nil)
		impl[m.Name] = t
		g.Methods[m.Name] = t
	}
	return nil
}

// Constructor creates instances of a group. It is bound under the group's
// name.
type Constructor struct {
	Group *GroupDef
}

func (*Constructor) Kind() vals.Kind { return vals.FuncKind }

// CallableName returns the group name.
func (c *Constructor) CallableName() string { return c.Group.Name }

// Display returns "<group name>".
func (c *Constructor) Display() string { return "<group " + c.Group.Name + ">" }

// Call creates an instance. Fields are initialized in declaration order in
// the new field scope: a field with an initializer evaluates it, a field
// without one takes the next constructor argument, or null.
func (c *Constructor) Call(fm *Frame, args []vals.Value) (vals.Value, error) {
	g := c.Group
	fields := NewEnv(g.Env)
	inst := &Instance{g, fields}
	fields.Define("self", inst, false)

	initFm := fm.fork(fields)
	initFm.src = g.src
	initFm.Evaler = g.ev
	next := 0
	for _, f := range g.Fields {
		var v vals.Value = vals.Null{}
		switch {
		case f.Value != nil:
			var err error
			if v, err = initFm.Eval(f.Value); err != nil {
				return nil, err
			}
		case next < len(args):
			v = args[next]
			next++
		}
		if err := fields.Define(f.Name, v, f.Mutable); err != nil {
			return nil, initFm.errorp(f, err)
		}
	}
	return inst, nil
}

// Instance is an instance of a group.
type Instance struct {
	Group  *GroupDef
	fields *Env
}

func (*Instance) Kind() vals.Kind { return vals.InstanceKind }

// Get returns a field, or a method bound to the instance. Methods are
// looked up when accessed, so do blocks that run after the instance was
// created still apply.
func (inst *Instance) Get(name string) (vals.Value, bool) {
	if b, ok := inst.fields.LookupLocal(name); ok {
		return b.Value, true
	}
	if m, ok := inst.Group.Methods[name]; ok {
		return m.bind(inst.fields), true
	}
	return nil, false
}

// SetField assigns a field. Assigning a lock field fails; assigning a name
// that is not a field adds a mutable field.
func (inst *Instance) SetField(name string, v vals.Value) error {
	if b, ok := inst.fields.LookupLocal(name); ok {
		if !b.Mutable {
			return &ImmutableReassignmentError{inst.Group.Name + "." + name}
		}
		b.Value = v
		return nil
	}
	return inst.fields.Define(name, v, true)
}

// FieldNames returns the field names in declaration order.
func (inst *Instance) FieldNames() []string {
	var names []string
	for _, name := range inst.fields.LocalNames() {
		if name != "self" {
			names = append(names, name)
		}
	}
	return names
}

// MemberNames returns the names of fields and methods, sorted.
func (inst *Instance) MemberNames() []string {
	names := inst.FieldNames()
	for name := range inst.Group.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields returns the fields as an object. It is used when an instance is
// encoded as JSON.
func (inst *Instance) Fields() *vals.Object {
	obj := vals.NewObject()
	for _, name := range inst.FieldNames() {
		b, _ := inst.fields.LookupLocal(name)
		obj.Set(name, b.Value)
	}
	return obj
}

// Display returns the group name followed by the fields, like
// Player {name: "Steve", hp: 100}.
func (inst *Instance) Display() string {
	var sb strings.Builder
	sb.WriteString(inst.Group.Name)
	sb.WriteString(" {")
	for i, name := range inst.FieldNames() {
		if i > 0 {
			sb.WriteString(", ")
		}
		b, _ := inst.fields.LookupLocal(name)
		sb.WriteString(name)
		sb.WriteString(": ")
		if b.Value == vals.Value(inst) {
			sb.WriteString("<self>")
		} else {
			sb.WriteString(vals.Repr(b.Value))
		}
	}
	sb.WriteString("}")
	return sb.String()
}
