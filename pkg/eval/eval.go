// Package eval implements the Flick evaluator.
//
// An Evaler is one interpretation session: it owns the global scope of a
// file, the plugins that file declared, and shares with the sessions of the
// modules it loads the plugin registry, the module cache, the standard
// streams and the scheduler baton. Statements execute to an Outcome, which
// carries give and respond out of nested blocks without panics.
package eval

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/logutil"
	"github.com/Lantharos/flick/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

// NativePackage is a set of Go-implemented values that programs import by
// name, as in import {upper} from "strings".
type NativePackage map[string]vals.Value

// Config keeps the options of NewEvaler.
type Config struct {
	// Registry holds the plugins programs may declare. If nil, no plugins
	// are available.
	Registry *Registry
	// Natives maps package names to native packages.
	Natives map[string]NativePackage
	// Standard streams. Nil readers and writers default to the process's.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// shared is the part of an Evaler that the sessions of loaded modules share
// with the session that loaded them.
type shared struct {
	registry *Registry
	natives  map[string]NativePackage
	modules  *moduleCache
	// The scheduler baton. It is held while Flick code runs and released at
	// suspension points.
	baton    sync.Mutex
	builtins *Env
	stdin    *bufio.Reader
	stdout   io.Writer
	stderr   io.Writer
	services serviceSet
}

// Evaler is an interpretation session.
type Evaler struct {
	*shared
	// Global is the top-level scope of the file run by this session.
	Global   *Env
	dir      string
	program  *parse.Program
	declared []Declaration
	state    map[string]any
	isModule bool
}

// NewEvaler creates a top-level Evaler.
func NewEvaler(cfg Config) *Evaler {
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	stdin, stdout, stderr := cfg.Stdin, cfg.Stdout, cfg.Stderr
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	sh := &shared{
		registry: registry,
		natives:  cfg.Natives,
		modules:  newModuleCache(),
		builtins: builtinEnv(),
		stdin:    bufio.NewReader(stdin),
		stdout:   stdout,
		stderr:   stderr,
	}
	dir, _ := os.Getwd()
	return &Evaler{shared: sh, Global: NewEnv(sh.builtins), dir: dir, state: make(map[string]any)}
}

// child creates the session of a module in the given directory.
func (ev *Evaler) child(dir string) *Evaler {
	return &Evaler{
		shared:   ev.shared,
		Global:   NewEnv(ev.builtins),
		dir:      dir,
		state:    make(map[string]any),
		isModule: true,
	}
}

// Registry returns the plugin registry.
func (ev *Evaler) Registry() *Registry { return ev.registry }

// Stdout returns the output of print.
func (ev *Evaler) Stdout() io.Writer { return ev.stdout }

// Stderr returns the error output.
func (ev *Evaler) Stderr() io.Writer { return ev.stderr }

// Dir returns the directory that relative module paths are resolved against.
func (ev *Evaler) Dir() string { return ev.dir }

// Program returns the program last run by this session, or nil.
func (ev *Evaler) Program() *parse.Program { return ev.program }

// IsModule reports whether this session runs a module loaded by use or
// import.
func (ev *Evaler) IsModule() bool { return ev.isModule }

// Declared returns the declare statements executed so far, in order.
func (ev *Evaler) Declared() []Declaration {
	return append([]Declaration(nil), ev.declared...)
}

// IsDeclared reports whether the named plugin was declared in this session.
func (ev *Evaler) IsDeclared(name string) bool {
	for _, d := range ev.declared {
		if d.Name == name {
			return true
		}
	}
	return false
}

// State returns the state a plugin stored in this session with SetState.
func (ev *Evaler) State(plugin string) any { return ev.state[plugin] }

// SetState stores per-session plugin state. Plugins are shared by all
// sessions of a run, so anything that depends on a declaration belongs here.
func (ev *Evaler) SetState(plugin string, v any) { ev.state[plugin] = v }

// Modules returns the loaded modules, keyed by absolute path.
func (ev *Evaler) Modules() map[string]*Module {
	m := make(map[string]*Module, len(ev.modules.modules))
	for k, v := range ev.modules.modules {
		m[k] = v
	}
	return m
}

// NewFrame returns a frame that runs code of this session's program in the
// given scope.
func (ev *Evaler) NewFrame(env *Env) *Frame {
	var src parse.Source
	if ev.program != nil {
		src = ev.program.Source
	}
	return &Frame{Evaler: ev, env: env, src: src}
}

// RunLocked runs f while holding the scheduler baton. It is used by code
// that enters Flick from another goroutine, like an HTTP request.
func (ev *Evaler) RunLocked(f func()) {
	ev.baton.Lock()
	defer ev.baton.Unlock()
	f()
}

// Parse parses source with the keyword gates of the registered plugins.
func (ev *Evaler) Parse(src parse.Source) (*parse.Program, error) {
	return parse.Parse(src, parse.Config{Gates: ev.registry.Gates()})
}

// EvalFile reads, parses and runs a file. Modules it uses are resolved
// relative to its directory.
func (ev *Evaler) EvalFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	code, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	ev.dir = filepath.Dir(abs)
	ev.modules.loading[abs] = true
	defer delete(ev.modules.loading, abs)
	return ev.Eval(parse.Source{Name: path, Code: string(code)})
}

// Eval parses and runs source as the top-level program, then runs the
// completion hooks of the declared plugins. Lex and parse errors are
// returned before anything runs; runtime errors are *Exception values.
func (ev *Evaler) Eval(src parse.Source) error {
	prog, err := ev.Parse(src)
	if err != nil {
		return err
	}
	ev.baton.Lock()
	defer ev.baton.Unlock()
	if err := ev.run(prog); err != nil {
		return err
	}
	return ev.complete()
}

// run executes a parsed program in the global scope. The caller holds the
// baton.
func (ev *Evaler) run(prog *parse.Program) error {
	ev.program = prog
	fm := ev.NewFrame(ev.Global)
	for _, stmt := range prog.Body {
		out, err := fm.exec(stmt)
		if err != nil {
			return err
		}
		if out.Kind == Return {
			// A top-level give ends the program.
			return nil
		}
		// A Respond outside of a request handler has nowhere to go.
	}
	return nil
}

func (ev *Evaler) complete() error {
	for _, d := range ev.declared {
		p, _ := ev.registry.Lookup(d.Name)
		if c, ok := p.(Completer); ok {
			logger.Printf("running completion hook of %s", d.Name)
			if err := c.OnFileComplete(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Wait blocks until every service started by plugins has stopped, or until
// ctx is done, in which case the services are shut down. It returns
// immediately when there are no services.
func (ev *Evaler) Wait(ctx context.Context) error {
	return ev.services.wait(ctx)
}

// AddService registers a long-lived service, like an HTTP listener, that
// keeps the run alive after the program finishes.
func (ev *Evaler) AddService(s Service) { ev.services.add(s) }

// Close releases the resources held by the plugins of the run. It should be
// called after Wait returns.
func (ev *Evaler) Close() error {
	var errs []error
	for _, name := range ev.registry.Names() {
		p, _ := ev.registry.Lookup(name)
		if c, ok := p.(Closer); ok {
			logger.Printf("closing plugin %s", name)
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
