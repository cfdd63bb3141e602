// Package prog provides the entry point to Flick: the command line, the
// configuration file and the run subcommand.
package prog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lantharos/flick/pkg/buildinfo"
)

// Flags keeps command-line flags.
type Flags struct {
	Log, Config string
	NoColor     bool
}

// Run parses command-line flags and runs the requested subcommand. It returns
// the exit status of the program.
func Run(fds [3]*os.File, args []string) int {
	f := &Flags{}
	root := newRootCommand(fds, f)
	root.SetArgs(args[1:])
	err := root.Execute()
	if err == nil {
		return 0
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.exit
	}
	// Everything else is a complaint from cobra about the command line.
	fmt.Fprintln(fds[2], err)
	fmt.Fprint(fds[2], root.UsageString())
	return 2
}

func newRootCommand(fds [3]*os.File, f *Flags) *cobra.Command {
	root := &cobra.Command{
		Use:           "flick",
		Short:         "Run Flick programs",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetIn(fds[0])
	root.SetOut(fds[1])
	root.SetErr(fds[2])
	root.PersistentFlags().StringVar(&f.Log, "log", "", "a file to write debug log to")
	root.PersistentFlags().StringVar(&f.Config, "config", "",
		"a YAML configuration file (default $FLICK_CONFIG)")
	root.PersistentFlags().BoolVar(&f.NoColor, "no-color", false, "disable colored error output")

	root.AddCommand(&cobra.Command{
		Use:   "run <file>",
		Short: "Run a Flick program",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return BadUsage(fmt.Sprintf("run takes 1 argument, got %d", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(fds, f, args[0])
		},
	})

	var asJSON bool
	version := &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(fds[1], buildinfo.Value.Show(asJSON))
		},
	}
	version.Flags().BoolVar(&asJSON, "json", false, "show build information in JSON")
	root.AddCommand(version)
	return root
}

// BadUsage returns an error that causes Run to print the message and the
// usage information and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns an error that causes Run to exit with the given code without
// printing anything. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "Warning: "+format+"\n", args...)
}
