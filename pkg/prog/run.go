package prog

import (
	"context"
	"os"
	"os/signal"

	"github.com/Lantharos/flick/pkg/diag"
	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/logutil"
	"github.com/Lantharos/flick/pkg/mods"
)

var logger = logutil.GetLogger("[prog] ")

// Runs a file, then waits for the services it started until they stop or a
// shutdown signal arrives: SIGINT or SIGTERM on Unix, an interrupt elsewhere.
func runFile(fds [3]*os.File, f *Flags, path string) error {
	cfg, err := LoadConfig(f.Config)
	if err != nil {
		return BadUsage(err.Error())
	}
	logPath := cfg.Log
	if f.Log != "" {
		logPath = f.Log
	}
	if logPath != "" {
		if err := logutil.SetOutputFile(logPath); err != nil {
			warn(fds[2], "cannot open log file: %v", err)
		}
	}
	diag.SetColor(!f.NoColor && diag.IsTerminal(fds[2]))

	evCfg := mods.EvalConfig(mods.Config{
		WebAddr:        cfg.Web.DefaultAddr,
		WebReadTimeout: cfg.Web.ReadTimeout,
		StorePath:      cfg.Store.Path,
	})
	evCfg.Stdin, evCfg.Stdout, evCfg.Stderr = fds[0], fds[1], fds[2]
	ev := eval.NewEvaler(evCfg)
	defer func() {
		if err := ev.Close(); err != nil {
			warn(fds[2], "%v", err)
		}
	}()

	logger.Printf("running %s", path)
	if err := ev.EvalFile(path); err != nil {
		diag.ShowError(fds[2], err)
		return Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()
	if err := ev.Wait(ctx); err != nil {
		diag.ShowError(fds[2], err)
		return Exit(1)
	}
	return nil
}
