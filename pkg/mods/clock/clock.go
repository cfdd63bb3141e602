// Package clock implements the time plugin.
package clock

import (
	"strings"
	"time"

	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/eval/vals"
)

// Plugin is the time plugin.
var Plugin eval.Plugin = plugin{}

type plugin struct{}

func (plugin) Name() string { return "time" }

func (plugin) RegisterBuiltins(env *eval.Env, _ vals.Value) error {
	fns.AddTo(env)
	return nil
}

var fns = eval.GoFns{
	"now":        now,
	"timestamp":  timestamp,
	"sleep":      sleep,
	"formatTime": formatTime,
}

// Overridden in tests.
var timeNow = time.Now

func now(_ *eval.Frame, _ []vals.Value) (vals.Value, error) {
	return vals.Str(timeNow().Format(time.RFC3339)), nil
}

func timestamp(_ *eval.Frame, _ []vals.Value) (vals.Value, error) {
	return vals.Num(timeNow().UnixMilli()), nil
}

func sleep(fm *eval.Frame, args []vals.Value) (vals.Value, error) {
	ms, err := eval.NumArg("sleep", args, 0)
	if err != nil {
		return nil, err
	}
	if ms > 0 {
		fm.Suspend(func() { time.Sleep(time.Duration(ms * float64(time.Millisecond))) })
	}
	return nil, nil
}

// Placeholders accepted in formatTime layouts, with their Go equivalents.
var layoutReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
	"SSS", "000",
)

// Formats a millisecond timestamp in local time. Without a layout the result
// is RFC 3339.
func formatTime(_ *eval.Frame, args []vals.Value) (vals.Value, error) {
	ms, err := eval.NumArg("formatTime", args, 0)
	if err != nil {
		return nil, err
	}
	t := time.UnixMilli(int64(ms)).In(timeNow().Location())
	layout := time.RFC3339
	if _, ok := eval.Arg(args, 1).(vals.Null); !ok {
		layout = layoutReplacer.Replace(eval.StrArg(args, 1))
	}
	return vals.Str(t.Format(layout)), nil
}
