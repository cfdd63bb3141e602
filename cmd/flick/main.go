// Flick runs programs written in the Flick scripting language. A program can
// declare plugins for files, time, randomness, a persistent store and an HTTP
// server, and load other files as modules.
package main

import (
	"os"

	"github.com/Lantharos/flick/pkg/prog"
)

func main() {
	os.Exit(prog.Run([3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args))
}
