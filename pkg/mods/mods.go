// Package mods collects the built-in plugins and native packages.
package mods

import (
	"time"

	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/mods/clock"
	"github.com/Lantharos/flick/pkg/mods/file"
	"github.com/Lantharos/flick/pkg/mods/native"
	"github.com/Lantharos/flick/pkg/mods/random"
	"github.com/Lantharos/flick/pkg/mods/store"
	"github.com/Lantharos/flick/pkg/mods/web"
)

// Config keeps the options of the configurable plugins.
type Config struct {
	// WebAddr is the address the web plugin listens on when declared
	// without an argument.
	WebAddr string
	// WebReadTimeout bounds the time spent reading an HTTP request.
	WebReadTimeout time.Duration
	// StorePath is the database the store plugin opens when declared
	// without an argument.
	StorePath string
}

// AddTo registers all built-in plugins with the registry.
func AddTo(r *eval.Registry, cfg Config) {
	r.Register(file.Plugin)
	r.Register(clock.Plugin)
	r.Register(random.Plugin)
	r.Register(web.New(web.Config{DefaultAddr: cfg.WebAddr, ReadTimeout: cfg.WebReadTimeout}))
	r.Register(store.New(cfg.StorePath))
}

// EvalConfig returns an eval.Config with all built-in plugins and native
// packages. The standard streams are left for the caller to fill in.
func EvalConfig(cfg Config) eval.Config {
	r := eval.NewRegistry()
	AddTo(r, cfg)
	return eval.Config{Registry: r, Natives: native.Packages()}
}
