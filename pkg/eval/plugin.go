package eval

import (
	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/parse"
)

// Plugin is a named capability that a program activates with a declare
// statement. Besides Name, a plugin implements any of the optional hook
// interfaces below; the Evaler calls the hooks a plugin has.
type Plugin interface {
	Name() string
}

// Declarer is implemented by plugins that act when declared. The argument
// is the value after '@', or null.
type Declarer interface {
	OnDeclare(fm *Frame, arg vals.Value) error
}

// BuiltinRegistrar is implemented by plugins that install builtins into the
// scope of the declare statement.
type BuiltinRegistrar interface {
	RegisterBuiltins(env *Env, arg vals.Value) error
}

// Executor is implemented by plugins that execute statements of their own,
// such as route and respond.
type Executor interface {
	Execute(fm *Frame, node parse.PluginNode) (Outcome, error)
}

// Completer is implemented by plugins that act after the top-level program
// has run. Completion hooks run in declaration order and only for the file
// passed to the Evaler, never for modules.
type Completer interface {
	OnFileComplete(ev *Evaler) error
}

// KeywordGater is implemented by plugins that own keywords. A gated keyword
// may only appear after the plugin is declared in the same file.
type KeywordGater interface {
	Keywords() []string
}

// Closer is implemented by plugins that hold resources for the whole run,
// such as open databases. Evaler.Close calls it once.
type Closer interface {
	Close() error
}

// Declaration records one declare statement.
type Declaration struct {
	Name string
	Arg  vals.Value
}

// Registry maps plugin names to plugins. A Registry is made for one run and
// shared by every module loaded in it.
type Registry struct {
	plugins map[string]Plugin
	order   []string
}

// NewRegistry creates a Registry with the given plugins.
func NewRegistry(plugins ...Plugin) *Registry {
	r := &Registry{plugins: make(map[string]Plugin)}
	for _, p := range plugins {
		r.Register(p)
	}
	return r
}

// Register adds a plugin, replacing any plugin of the same name.
func (r *Registry) Register(p Plugin) {
	if _, ok := r.plugins[p.Name()]; !ok {
		r.order = append(r.order, p.Name())
	}
	r.plugins[p.Name()] = p
}

// Lookup finds a plugin by name.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	p, ok := r.plugins[name]
	return p, ok
}

// Names returns the names of all plugins in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Gates returns the keyword gate table of the registered plugins, for use as
// parse.Config.Gates.
func (r *Registry) Gates() map[string]string {
	gates := make(map[string]string)
	for _, name := range r.order {
		if g, ok := r.plugins[name].(KeywordGater); ok {
			for _, kw := range g.Keywords() {
				gates[kw] = name
			}
		}
	}
	return gates
}
