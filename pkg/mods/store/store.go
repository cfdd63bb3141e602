// Package store implements the store plugin, a persistent key/value store
// whose values are kept as JSON in a bbolt database.
package store

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/logutil"
	"github.com/Lantharos/flick/pkg/store"
	"github.com/Lantharos/flick/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// DefaultPath is the database used when store is declared without an
// argument and no other default is configured.
const DefaultPath = "flick.db"

// Plugin is the store plugin. Databases are opened on first declaration and
// shared by every session that declares the same path.
type Plugin struct {
	defaultPath string

	mu     sync.Mutex
	stores map[string]storedefs.Store
}

// New creates a store plugin. An empty defaultPath means DefaultPath.
func New(defaultPath string) *Plugin {
	if defaultPath == "" {
		defaultPath = DefaultPath
	}
	return &Plugin{defaultPath: defaultPath, stores: make(map[string]storedefs.Store)}
}

func (*Plugin) Name() string { return "store" }

// OnDeclare opens the database named by the argument and installs the store
// builtins bound to it.
func (p *Plugin) OnDeclare(fm *eval.Frame, arg vals.Value) error {
	path := p.defaultPath
	if _, ok := arg.(vals.Null); !ok {
		path = vals.ToString(arg)
	}
	var s storedefs.Store
	var err error
	fm.Suspend(func() { s, err = p.open(path) })
	if err != nil {
		return err
	}
	fns(s).AddTo(fm.Env())
	return nil
}

func (p *Plugin) open(path string) (storedefs.Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.stores[abs]; ok {
		return s, nil
	}
	logger.Printf("opening %s", abs)
	s, err := store.NewStore(abs)
	if err != nil {
		return nil, err
	}
	p.stores[abs] = s
	return s, nil
}

// Close closes every database opened by the plugin.
func (p *Plugin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	for path, s := range p.stores {
		logger.Printf("closing %s", path)
		errs = append(errs, s.Close())
		delete(p.stores, path)
	}
	return errors.Join(errs...)
}

func fns(s storedefs.Store) eval.GoFns {
	return eval.GoFns{
		"storeGet": func(fm *eval.Frame, args []vals.Value) (vals.Value, error) {
			key := eval.StrArg(args, 0)
			var text string
			var err error
			fm.Suspend(func() { text, err = s.Get(key) })
			if errors.Is(err, storedefs.ErrNoKey) {
				return vals.Null{}, nil
			} else if err != nil {
				return nil, err
			}
			return vals.FromJSON(text)
		},
		"storePut": func(fm *eval.Frame, args []vals.Value) (vals.Value, error) {
			key := eval.StrArg(args, 0)
			text, err := vals.ToJSON(eval.Arg(args, 1))
			if err != nil {
				return nil, err
			}
			fm.Suspend(func() { err = s.Put(key, text) })
			return nil, err
		},
		"storeDelete": func(fm *eval.Frame, args []vals.Value) (vals.Value, error) {
			key := eval.StrArg(args, 0)
			var err error
			fm.Suspend(func() { err = s.Delete(key) })
			return nil, err
		},
		"storeKeys": func(fm *eval.Frame, _ []vals.Value) (vals.Value, error) {
			var keys []string
			var err error
			fm.Suspend(func() { keys, err = s.Keys() })
			if err != nil {
				return nil, err
			}
			return vals.FromGo(keys), nil
		},
	}
}
