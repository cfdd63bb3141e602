package eval

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/parse"
)

// Module is a loaded Flick file, bound by use or providing names to import.
type Module struct {
	// Name is the name the module was first bound under.
	Name string
	// Path is the absolute path of the file.
	Path string
	// Env is the module's global scope.
	Env *Env
	// Routes are the route statements of the module, nested ones included.
	Routes []*parse.RouteStmt
	// Program is the parsed file.
	Program *parse.Program
	// Evaler is the session that ran the module.
	Evaler *Evaler
}

func (*Module) Kind() vals.Kind { return vals.ModuleKind }

// Display returns "<module Name>".
func (m *Module) Display() string { return "<module " + m.Name + ">" }

// moduleCache holds the modules loaded in a run, keyed by absolute path. It
// is only accessed with the baton held.
type moduleCache struct {
	modules map[string]*Module
	loading map[string]bool
}

func newModuleCache() *moduleCache {
	return &moduleCache{make(map[string]*Module), make(map[string]bool)}
}

// CollectRoutes returns every route statement in a program, including those
// nested in blocks, in source order.
func CollectRoutes(prog *parse.Program) []*parse.RouteStmt {
	var routes []*parse.RouteStmt
	parse.Walk(prog.Body, func(s parse.Stmt) bool {
		if r, ok := s.(*parse.RouteStmt); ok {
			routes = append(routes, r)
		}
		return true
	})
	return routes
}

func (ev *Evaler) resolve(path string) string {
	if filepath.Ext(path) == "" {
		path += ".fk"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(ev.dir, path)
	}
	return filepath.Clean(path)
}

// LoadModule loads the Flick file at path, resolved against the session's
// directory, or returns it from the module cache. The module's top-level
// statements run once per run, in a child session that shares the plugin
// registry and the cache. Completion hooks do not run for modules.
func (ev *Evaler) LoadModule(name, path string) (*Module, error) {
	abs := ev.resolve(path)
	if m, ok := ev.modules.modules[abs]; ok {
		logger.Printf("module %s served from cache", abs)
		return m, nil
	}
	if ev.modules.loading[abs] {
		return nil, &ModuleLoadError{abs, errors.New("import cycle")}
	}
	ev.modules.loading[abs] = true
	defer delete(ev.modules.loading, abs)

	code, err := os.ReadFile(abs)
	if err != nil {
		return nil, &ModuleLoadError{abs, err}
	}
	logger.Printf("loading module %s from %s", name, abs)
	child := ev.child(filepath.Dir(abs))
	prog, err := child.Parse(parse.Source{Name: abs, Code: string(code)})
	if err != nil {
		return nil, &ModuleLoadError{abs, err}
	}
	if err := child.run(prog); err != nil {
		return nil, &ModuleLoadError{abs, err}
	}
	m := &Module{
		Name:    name,
		Path:    abs,
		Env:     child.Global,
		Routes:  CollectRoutes(prog),
		Program: prog,
		Evaler:  child,
	}
	ev.modules.modules[abs] = m
	return m, nil
}

func (ev *Evaler) use(fm *Frame, s *parse.UseStmt) error {
	path := s.Path
	if path == "" {
		path = s.Name + ".fk"
	}
	m, err := ev.LoadModule(s.Name, path)
	if err != nil {
		return err
	}
	return fm.env.Define(s.Name, m, false)
}

// isFileSpec reports whether an import names a Flick file rather than a
// native package.
func isFileSpec(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") ||
		filepath.IsAbs(spec) || strings.HasSuffix(spec, ".fk")
}

func (ev *Evaler) importNames(fm *Frame, s *parse.ImportStmt) error {
	var lookup func(string) (vals.Value, bool)
	if isFileSpec(s.From) {
		name := strings.TrimSuffix(filepath.Base(s.From), ".fk")
		m, err := ev.LoadModule(name, s.From)
		if err != nil {
			return err
		}
		lookup = func(n string) (vals.Value, bool) {
			if b, ok := m.Env.LookupLocal(n); ok {
				return b.Value, true
			}
			return nil, false
		}
	} else {
		pkg, ok := ev.natives[s.From]
		if !ok {
			return &ModuleLoadError{s.From, errors.New("no such native package")}
		}
		lookup = func(n string) (vals.Value, bool) {
			v, ok := pkg[n]
			return v, ok
		}
	}
	for _, n := range s.Names {
		v, ok := lookup(n)
		if !ok {
			return &ModuleLoadError{s.From, fmt.Errorf("no exported name %q", n)}
		}
		if err := fm.env.Define(n, v, false); err != nil {
			return err
		}
	}
	return nil
}
