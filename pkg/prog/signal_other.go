//go:build !unix

package prog

import "os"

var shutdownSignals = []os.Signal{os.Interrupt}
