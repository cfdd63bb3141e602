// Package web implements the web plugin: route and respond statements and an
// HTTP server that dispatches requests to route handlers.
//
// A program declares the plugin with a port, a "host:port" address or the
// word module:
//
//	declare web@8080
//	declare web@"127.0.0.1:8080"
//	declare web@module
//
// After the top-level program has run, the routes of the whole program are
// collected and, unless the file is a module, a listener is started. Modules
// declare web@module so that their routes can be reached by forwarding:
//
//	use Api
//	route "/api" -> Api
package web

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/logutil"
	"github.com/Lantharos/flick/pkg/parse"
)

var logger = logutil.GetLogger("[web] ")

// DefaultAddr is the address listened on when web is declared without an
// argument and no other default is configured.
const DefaultAddr = ":3000"

// Config keeps the options of New.
type Config struct {
	// DefaultAddr is used when web is declared without an argument. If
	// empty, DefaultAddr is used.
	DefaultAddr string
	// ReadTimeout bounds the time spent reading a request. Zero means no
	// timeout.
	ReadTimeout time.Duration
}

// Plugin is the web plugin.
type Plugin struct {
	cfg Config
}

// New creates a web plugin.
func New(cfg Config) *Plugin {
	if cfg.DefaultAddr == "" {
		cfg.DefaultAddr = DefaultAddr
	}
	return &Plugin{cfg}
}

func (*Plugin) Name() string { return "web" }

// Keywords returns the keywords that require declare web.
func (*Plugin) Keywords() []string { return []string{"route", "respond"} }

// state is the per-session state of the plugin.
type state struct {
	addr       string
	moduleMode bool
	handler    *Handler
	server     *server
}

func getState(ev *eval.Evaler) *state {
	st, _ := ev.State("web").(*state)
	return st
}

// OnDeclare records the listening address, or module mode.
func (p *Plugin) OnDeclare(fm *eval.Frame, arg vals.Value) error {
	st := getState(fm.Evaler)
	if st == nil {
		st = &state{}
		fm.Evaler.SetState("web", st)
	}
	if s, ok := arg.(vals.Str); ok && s == "module" {
		st.moduleMode = true
		return nil
	}
	addr, err := parseAddr(arg, p.cfg.DefaultAddr)
	if err != nil {
		return err
	}
	st.addr = addr
	return nil
}

// ErrBadAddr is wrapped by errors about the argument of declare web.
var ErrBadAddr = errors.New("bad web address")

func parseAddr(arg vals.Value, defaultAddr string) (string, error) {
	switch arg := arg.(type) {
	case vals.Null:
		return defaultAddr, nil
	case vals.Num:
		f := float64(arg)
		if f != math.Trunc(f) || f < 0 || f > 65535 {
			return "", fmt.Errorf("%w: port %s out of range", ErrBadAddr, vals.Repr(arg))
		}
		return ":" + strconv.Itoa(int(f)), nil
	case vals.Str:
		s := string(arg)
		if port, err := strconv.Atoi(s); err == nil {
			return parseAddr(vals.Num(port), defaultAddr)
		}
		if !strings.Contains(s, ":") {
			return "", fmt.Errorf("%w: %q is not host:port", ErrBadAddr, s)
		}
		return s, nil
	}
	return "", fmt.Errorf("%w: %s", ErrBadAddr, vals.Repr(arg))
}

// Execute runs route and respond statements. A route statement does nothing
// when executed; routes are collected from the program once it has run.
func (p *Plugin) Execute(fm *eval.Frame, node parse.PluginNode) (eval.Outcome, error) {
	switch node := node.(type) {
	case *parse.RouteStmt:
		return eval.Outcome{}, nil
	case *parse.RespondStmt:
		return respond(fm, node)
	}
	return eval.Outcome{}, fmt.Errorf("web: unsupported statement %T", node)
}

func respond(fm *eval.Frame, node *parse.RespondStmt) (eval.Outcome, error) {
	content, err := fm.EvalOperand(node.Content)
	if err != nil {
		return eval.Outcome{}, err
	}
	r := &eval.Response{Content: content, Status: 200}
	if node.Status != nil {
		v, err := fm.Eval(node.Status)
		if err != nil {
			return eval.Outcome{}, err
		}
		status, ok := vals.ToInt(v)
		if !ok || status < 100 || status > 999 {
			return eval.Outcome{}, fmt.Errorf("bad status code %s", vals.Repr(v))
		}
		r.Status = status
	}
	if node.ContentType != nil {
		v, err := fm.Eval(node.ContentType)
		if err != nil {
			return eval.Outcome{}, err
		}
		r.ContentType = vals.ToString(v)
	}
	return eval.RespondOutcome(r), nil
}

// OnFileComplete collects the routes of the program and starts listening,
// unless the file was declared a module. If the session is already
// listening, the routes are replaced.
func (p *Plugin) OnFileComplete(ev *eval.Evaler) error {
	st := getState(ev)
	if st == nil || ev.IsModule() || st.moduleMode {
		return nil
	}
	if st.handler != nil {
		st.handler.setRoutes(eval.CollectRoutes(ev.Program()))
		return nil
	}
	st.handler = NewHandler(ev)
	srv, err := startServer(st.addr, st.handler, p.cfg.ReadTimeout)
	if err != nil {
		return err
	}
	st.server = srv
	logger.Printf("listening on %s", srv.Addr())
	fmt.Fprintf(ev.Stderr(), "listening on %s\n", srv.Addr())
	ev.AddService(srv)
	return nil
}
