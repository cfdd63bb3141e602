package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Lantharos/flick/pkg/eval"
	. "github.com/Lantharos/flick/pkg/eval/evaltest"
)

var fakeNow = time.Date(2024, 3, 9, 14, 5, 7, 250e6, time.UTC)

func newConfig() eval.Config {
	return eval.Config{Registry: eval.NewRegistry(Plugin)}
}

func TestTime(t *testing.T) {
	timeNow = func() time.Time { return fakeNow }
	t.Cleanup(func() { timeNow = time.Now })

	TestWithConfig(t, newConfig,
		That("declare time", "print now").Prints("2024-03-09T14:05:07Z\n"),
		That("declare time", "print timestamp").Prints("1709993107250\n"),
		That("declare time", "print formatTime(timestamp())").
			Prints("2024-03-09T14:05:07Z\n"),
		That("declare time", `print formatTime(0, "YYYY-MM-DD HH:mm:ss.SSS")`).
			Prints("1970-01-01 00:00:00.000\n"),
		That("declare time", `print formatTime("x")`).
			Throws(ErrorWithType(&eval.ArgError{})),
	)
}

func TestSleep(t *testing.T) {
	start := time.Now()
	TestWithConfig(t, newConfig,
		That("declare time", "sleep 20", `print "woke"`).Prints("woke\n"),
		That("declare time", "sleep(-5)").DoesNothing(),
	)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
