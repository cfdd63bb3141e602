package web

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/eval/vals"
	"github.com/Lantharos/flick/pkg/parse"
)

// routeTable maps "METHOD:path" to local routes and keeps forwarding routes
// in source order.
type routeTable struct {
	routes   map[string]*parse.RouteStmt
	forwards []*parse.RouteStmt
}

func newRouteTable(routes []*parse.RouteStmt) *routeTable {
	t := &routeTable{routes: make(map[string]*parse.RouteStmt)}
	for _, r := range routes {
		if r.IsForward() {
			t.forwards = append(t.forwards, r)
		} else {
			// A later route for the same method and path wins.
			t.routes[routeKey(r.Method, r.Path)] = r
		}
	}
	return t
}

func routeKey(method, path string) string { return method + ":" + path }

// match finds the route for an exact method and path, falling back to the
// GET route of the path.
func (t *routeTable) match(method, path string) *parse.RouteStmt {
	if r, ok := t.routes[routeKey(method, path)]; ok {
		return r
	}
	return t.routes[routeKey("GET", path)]
}

// forward finds the first forwarding route whose prefix is a prefix of path
// and returns it together with the rest of the path.
func (t *routeTable) forward(path string) (*parse.RouteStmt, string) {
	for _, r := range t.forwards {
		if strings.HasPrefix(path, r.Path) {
			rest := strings.TrimPrefix(path, r.Path)
			if rest == "" {
				rest = "/"
			}
			return r, rest
		}
	}
	return nil, ""
}

// Handler dispatches HTTP requests to the route handlers of a session.
type Handler struct {
	ev *eval.Evaler
	// Guarded by the baton of ev.
	table   *routeTable
	modules map[*eval.Module]*routeTable
}

// NewHandler returns a Handler for the routes of the program last run by ev.
// Route handlers run with the baton held.
func NewHandler(ev *eval.Evaler) *Handler {
	h := &Handler{ev: ev}
	h.setRoutes(eval.CollectRoutes(ev.Program()))
	return h
}

func (h *Handler) setRoutes(routes []*parse.RouteStmt) {
	h.table = newRouteTable(routes)
	h.modules = make(map[*eval.Module]*routeTable)
}

// target is a matched route and where its handler runs.
type target struct {
	route *parse.RouteStmt
	ev    *eval.Evaler
	env   *eval.Env
}

func (h *Handler) resolve(method, path string) (*target, error) {
	if r := h.table.match(method, path); r != nil {
		return &target{r, h.ev, h.ev.Global}, nil
	}
	fwd, rest := h.table.forward(path)
	if fwd == nil {
		return nil, nil
	}
	b, ok := h.ev.Global.Lookup(fwd.Forward)
	if !ok {
		return nil, fmt.Errorf("forwarding target %s is not defined", fwd.Forward)
	}
	m, ok := b.Value.(*eval.Module)
	if !ok {
		return nil, fmt.Errorf("forwarding target %s is a %s, not a module", fwd.Forward, b.Value.Kind())
	}
	mt, ok := h.modules[m]
	if !ok {
		mt = newRouteTable(m.Routes)
		h.modules[m] = mt
	}
	if r := mt.match(method, rest); r != nil {
		return &target{r, m.Evaler, m.Env}, nil
	}
	return nil, nil
}

// reply is an encoded response.
type reply struct {
	status      int
	contentType string
	body        string
}

const textPlain = "text/plain; charset=utf-8"

var (
	notFound = reply{http.StatusNotFound, textPlain, "Not Found"}
	okReply  = reply{http.StatusOK, textPlain, "OK"}
)

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var rep reply
	h.ev.RunLocked(func() { rep = h.dispatch(r, string(body)) })
	logger.Printf("%s %s -> %d", r.Method, r.URL.Path, rep.status)

	w.Header().Set("Content-Type", rep.contentType)
	w.WriteHeader(rep.status)
	io.WriteString(w, rep.body)
}

// dispatch runs the handler of the matching route. The caller holds the
// baton.
func (h *Handler) dispatch(r *http.Request, body string) reply {
	t, err := h.resolve(r.Method, r.URL.Path)
	if err != nil {
		return errorReply(err)
	}
	if t == nil {
		return notFound
	}

	env := eval.NewEnv(t.env)
	req := requestObject(r, body)
	env.Define("req", req, true)
	for _, name := range []string{"body", "query", "headers"} {
		v, _ := req.Get(name)
		env.Define(name, v, true)
	}

	out, err := t.ev.NewFrame(env).ExecBlock(env, t.route.Body)
	if err != nil {
		return errorReply(err)
	}
	if out.Kind != eval.Respond {
		return okReply
	}
	rep, err := encode(out.Response)
	if err != nil {
		return errorReply(err)
	}
	return rep
}

func errorReply(err error) reply {
	logger.Printf("handler error: %v", err)
	return reply{http.StatusInternalServerError, textPlain, eval.Reason(err).Error()}
}

// encode turns the payload of a respond statement into a reply. Lists,
// objects and instances are encoded as JSON.
func encode(resp *eval.Response) (reply, error) {
	rep := reply{resp.Status, resp.ContentType, ""}
	switch c := resp.Content.(type) {
	case *vals.List, *vals.Object, *eval.Instance:
		text, err := vals.ToJSON(c)
		if err != nil {
			return reply{}, err
		}
		rep.body = text
		if rep.contentType == "" {
			rep.contentType = "application/json"
		}
	default:
		rep.body = vals.ToString(c)
	}
	if rep.contentType == "" {
		rep.contentType = textPlain
	}
	return rep, nil
}

// requestObject builds the req value: {method, path, query, headers, body}.
func requestObject(r *http.Request, body string) *vals.Object {
	query := vals.NewObject()
	q := r.URL.Query()
	for _, k := range sortedKeys(q) {
		query.Set(k, vals.Str(q.Get(k)))
	}
	headers := vals.NewObject()
	lower := make(map[string][]string, len(r.Header))
	for k, v := range r.Header {
		lower[strings.ToLower(k)] = v
	}
	for _, k := range sortedKeys(lower) {
		headers.Set(k, vals.Str(lower[k][0]))
	}
	return vals.ObjectOf(
		"method", vals.Str(r.Method),
		"path", vals.Str(r.URL.Path),
		"query", query,
		"headers", headers,
		"body", parseBody(r.Header.Get("Content-Type"), body))
}

// parseBody decodes JSON bodies, keeping the raw text if it is not valid
// JSON. Other bodies are kept as text.
func parseBody(contentType, body string) vals.Value {
	if body != "" && strings.Contains(contentType, "application/json") {
		v, err := vals.FromJSON(body)
		if err == nil {
			return v
		}
		logger.Printf("cannot parse JSON body: %v", err)
	}
	return vals.Str(body)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
