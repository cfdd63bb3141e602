package prog_test

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lantharos/flick/pkg/buildinfo"
	"github.com/Lantharos/flick/pkg/logutil"
	"github.com/Lantharos/flick/pkg/prog"
	. "github.com/Lantharos/flick/pkg/prog/progtest"
	"github.com/Lantharos/flick/pkg/testutil"
)

var programs = testutil.Dir{
	"hello.fk":  `print "hello"` + "\n",
	"empty.fk":  "",
	"error.fk":  "free a = 1\nprint nope\n",
	"parse.fk":  "print (\n",
	"module.fk": "use Missing\n",
	"store.fk":  "declare store\nstorePut \"a\" 1\n",
	"give.fk":   "print 1\ngive\nprint 2\n",
}

func TestCommandLine(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(programs)

	Test(t,
		ThatFlick().WritesStdoutContaining("Usage:"),
		ThatFlick("--help").WritesStdoutContaining("flick [command]"),
		ThatFlick("run", "--help").WritesStdoutContaining("flick run <file>"),

		ThatFlick("version").WritesStdoutContaining("Version: "+buildinfo.Value.Version),
		ThatFlick("version", "--json").WritesStdoutContaining(`"version":`),

		ThatFlick("run").ExitsWith(2).WritesStderrContaining("run takes 1 argument, got 0"),
		ThatFlick("run", "a.fk", "b.fk").ExitsWith(2),
		ThatFlick("--bad-flag").ExitsWith(2).WritesStderrContaining("unknown flag: --bad-flag"),
		ThatFlick("frobnicate").ExitsWith(2).WritesStderrContaining("unknown command"),
	)
}

func TestRun(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(programs)

	Test(t,
		ThatFlick("run", "hello.fk").WritesStdout("hello\n"),
		ThatFlick("run", "empty.fk").DoesNothing(),
		ThatFlick("--no-color", "run", "give.fk").WritesStdout("1\n"),

		ThatFlick("run", "missing.fk").ExitsWith(1).
			WritesStderrContaining("no such file or directory"),
		ThatFlick("run", "error.fk").ExitsWith(1).
			WritesStderrContaining(`undefined variable "nope"`),
		// Lex and parse errors are shown with their source context.
		ThatFlick("run", "parse.fk").ExitsWith(1).
			WritesStderrContaining("Parse error: "),
		ThatFlick("run", "module.fk").ExitsWith(1).
			WritesStderrContaining("cannot load module"),
	)
}

func TestConfig(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(programs)
	testutil.ApplyDir(testutil.Dir{
		"flick.yaml": "store:\n  path: custom.db\n",
		"env.yaml":   "store:\n  path: env.db\nweb:\n  read_timeout: 5s\n",
		"bad.yaml":   "web:\n  bogus: 1\n",
	})

	Test(t,
		ThatFlick("--config", "flick.yaml", "run", "store.fk").DoesNothing(),
		ThatFlick("--config", "bad.yaml", "run", "hello.fk").ExitsWith(2).
			WritesStderrContaining("field bogus not found"),
		ThatFlick("--config", "nope.yaml", "run", "hello.fk").ExitsWith(2),
	)
	assert.FileExists(t, "custom.db")

	t.Setenv(prog.ConfigEnvVar, "env.yaml")
	Test(t, ThatFlick("run", "store.fk").DoesNothing())
	assert.FileExists(t, "env.db")
}

func TestLoadConfig(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"full.yaml": "web:\n  default_addr: \":8080\"\n  read_timeout: 2s\n" +
			"store:\n  path: data.db\nlog: flick.log\n",
		"empty.yaml": "",
	})
	t.Setenv(prog.ConfigEnvVar, "")

	cfg, err := prog.LoadConfig("full.yaml")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Web.DefaultAddr)
	assert.Equal(t, "2s", cfg.Web.ReadTimeout.String())
	assert.Equal(t, "data.db", cfg.Store.Path)
	assert.Equal(t, "flick.log", cfg.Log)

	cfg, err = prog.LoadConfig("empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, &prog.Config{}, cfg)

	cfg, err = prog.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, &prog.Config{}, cfg)
}

func TestLogFlag(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(programs)
	t.Cleanup(func() { logutil.SetOutput(io.Discard) })

	Test(t, ThatFlick("--log", "debug.log", "run", "hello.fk").WritesStdout("hello\n"))

	data, err := os.ReadFile("debug.log")
	require.NoError(t, err)
	// Log lines are "[prog] <date> <time> message".
	assert.Regexp(t, `(?m)^\[prog\] \S+ \S+ running hello\.fk$`, string(data))
}
