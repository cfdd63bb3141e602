package web_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lantharos/flick/pkg/eval"
	. "github.com/Lantharos/flick/pkg/eval/evaltest"
	"github.com/Lantharos/flick/pkg/mods/web"
	"github.com/Lantharos/flick/pkg/parse"
	"github.com/Lantharos/flick/pkg/testutil"
)

func newConfig() eval.Config {
	return eval.Config{Registry: eval.NewRegistry(web.New(web.Config{}))}
}

func TestStatements(t *testing.T) {
	TestWithConfig(t, newConfig,
		// A respond outside of a handler is ignored.
		That("declare web@module", `respond "x"`, `print "after"`).Prints("after\n"),
		// Routes do nothing when executed.
		That("declare web@module", `route "/" => print "handled" end`).DoesNothing(),

		That(`declare web@"nope"`).Throws(ErrorContaining("bad web address")),
		That(`declare web@70000`).Throws(ErrorContaining("out of range")),
		That(`route "/" => respond "x" end`).DoesNotParse(),
	)
}

var serverFiles = testutil.Dir{
	"main.fk": `declare web@module
use Api

free count = 0

route GET "/" =>
  respond "home"
end
route POST "/items" =>
  respond {got: body.name, method: req.method}, 201
end
route "/hello" => respond "hi " + query.name end
route "/count" =>
  count = count + 1
  respond count
end
route "/headers" => respond headers["x-test"] end
route "/fail" => print undefinedThing end
route "/empty" => free x = 1 end
route "/html" => respond "<b>x</b>", 200, "text/html" end
route "/bad-status" => respond "x", "teapot" end
route "/loop" =>
  free hits = 0
  each i in [1, 2] =>
    respond "early"
    hits = hits + 1
  end
  respond "after " + hits
end

task spin with n => give spin(n + 1) end
route "/spin" => respond spin(0) end

assume yes =>
  route "/nested" => respond "nested" end
end

route "/api" -> Api
`,
	"Api.fk": `declare web@module
route GET "/users" => respond ["a", "b"] end
route "/" => respond "api root" end
`,
}

type response struct {
	status      int
	contentType string
	body        string
}

func TestHandler(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(serverFiles)

	ev := eval.NewEvaler(newConfig())
	require.NoError(t, ev.EvalFile("main.fk"))
	h := web.NewHandler(ev)

	do := func(method, target, contentType, body string, header ...string) response {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		for i := 0; i+1 < len(header); i += 2 {
			req.Header.Set(header[i], header[i+1])
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return response{rec.Code, rec.Header().Get("Content-Type"), rec.Body.String()}
	}
	const text = "text/plain; charset=utf-8"

	tests := []struct {
		name   string
		method string
		target string
		ctype  string
		body   string
		header []string
		want   response
	}{
		{name: "exact", method: "GET", target: "/",
			want: response{200, text, "home"}},
		{name: "GET fallback", method: "DELETE", target: "/",
			want: response{200, text, "home"}},
		{name: "JSON body", method: "POST", target: "/items",
			ctype: "application/json", body: `{"name": "x"}`,
			want: response{201, "application/json", `{"got":"x","method":"POST"}`}},
		{name: "query", method: "GET", target: "/hello?name=bob&name=alice",
			want: response{200, text, "hi bob"}},
		{name: "headers", method: "GET", target: "/headers", header: []string{"X-Test", "v"},
			want: response{200, text, "v"}},
		{name: "default response", method: "GET", target: "/empty",
			want: response{200, text, "OK"}},
		{name: "content type", method: "GET", target: "/html",
			want: response{200, "text/html", "<b>x</b>"}},
		{name: "nested route", method: "GET", target: "/nested",
			want: response{200, text, "nested"}},
		{name: "forwarded", method: "GET", target: "/api/users",
			want: response{200, "application/json", `["a","b"]`}},
		{name: "forwarded root", method: "GET", target: "/api",
			want: response{200, text, "api root"}},
		{name: "forwarded miss", method: "GET", target: "/api/nope",
			want: response{404, text, "Not Found"}},
		{name: "no route", method: "GET", target: "/nope",
			want: response{404, text, "Not Found"}},
		{name: "bad status", method: "GET", target: "/bad-status",
			want: response{500, text, `bad status code "teapot"`}},
		{name: "respond in loop", method: "GET", target: "/loop",
			want: response{200, text, "after 2"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := do(tc.method, tc.target, tc.ctype, tc.body, tc.header...)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("handler error", func(t *testing.T) {
		got := do("GET", "/fail", "", "")
		assert.Equal(t, 500, got.status)
		assert.Contains(t, got.body, `undefined variable "undefinedThing"`)
	})

	t.Run("unbounded recursion", func(t *testing.T) {
		got := do("GET", "/spin", "", "")
		assert.Equal(t, 500, got.status)
		assert.Contains(t, got.body, "maximum call depth")
		assert.Equal(t, "home", do("GET", "/", "", "").body)
	})

	t.Run("state is shared between requests", func(t *testing.T) {
		assert.Equal(t, "1", do("GET", "/count", "", "").body)
		assert.Equal(t, "2", do("GET", "/count", "", "").body)
	})

	t.Run("invalid JSON is kept as text", func(t *testing.T) {
		got := do("POST", "/items", "application/json", "{oops")
		assert.Equal(t, 500, got.status)
		assert.Contains(t, got.body, "has no member name")
	})
}

func TestListen(t *testing.T) {
	ev := eval.NewEvaler(eval.Config{
		Registry: eval.NewRegistry(web.New(web.Config{})),
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	})
	err := ev.Eval(parse.Source{Name: "[test]", Code: `declare web@"127.0.0.1:0"
route "/" => respond "up" end`})
	require.NoError(t, err)

	addr := web.Addr(ev)
	require.NotNil(t, addr)
	resp, err := http.Get("http://" + addr.String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "up", string(body))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, ev.Wait(ctx))
}

func TestModuleModeDoesNotListen(t *testing.T) {
	ev := eval.NewEvaler(newConfig())
	require.NoError(t, ev.Eval(parse.Source{Name: "[test]", Code: "declare web@module"}))
	assert.Nil(t, web.Addr(ev))
	assert.NoError(t, ev.Wait(context.Background()))
}
