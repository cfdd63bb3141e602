// Package logutil provides logging utilities.
//
// Every package that logs gets its own *log.Logger from GetLogger. All such
// loggers share one output, which discards everything until SetOutput or
// SetOutputFile is called, so logging is free in normal runs and switched
// on with the --log flag.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out     = io.Discard
	loggers []*log.Logger
	mu      sync.Mutex
)

// GetLogger gets a logger with the given prefix.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags|log.Lmicroseconds)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile,
// it is closed.
func SetOutput(newout io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if f, ok := out.(*os.File); ok {
		f.Close()
	}
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file, which is opened for appending. If the name is empty,
// logs are discarded.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	return nil
}
