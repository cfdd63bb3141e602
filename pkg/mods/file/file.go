// Package file implements the files plugin, which exposes reading and
// writing of local files.
package file

import (
	"errors"
	"io/fs"
	"os"

	"github.com/Lantharos/flick/pkg/eval"
	"github.com/Lantharos/flick/pkg/eval/vals"
)

// Plugin is the files plugin.
var Plugin eval.Plugin = plugin{}

type plugin struct{}

func (plugin) Name() string { return "files" }

func (plugin) RegisterBuiltins(env *eval.Env, _ vals.Value) error {
	fns.AddTo(env)
	return nil
}

var fns = eval.GoFns{
	"readFile":   readFile,
	"writeFile":  writeFile,
	"appendFile": appendFile,
	"fileExists": fileExists,
	"listDir":    listDir,
	"deleteFile": deleteFile,
}

// ErrEmptyPath is returned when a function is given an empty path.
var ErrEmptyPath = errors.New("path must not be empty")

func pathArg(args []vals.Value) (string, error) {
	path := eval.StrArg(args, 0)
	if path == "" {
		return "", ErrEmptyPath
	}
	return path, nil
}

func readFile(fm *eval.Frame, args []vals.Value) (vals.Value, error) {
	path, err := pathArg(args)
	if err != nil {
		return nil, err
	}
	var data []byte
	fm.Suspend(func() { data, err = os.ReadFile(path) })
	if err != nil {
		return nil, err
	}
	return vals.Str(data), nil
}

func writeFile(fm *eval.Frame, args []vals.Value) (vals.Value, error) {
	path, err := pathArg(args)
	if err != nil {
		return nil, err
	}
	content := eval.StrArg(args, 1)
	fm.Suspend(func() { err = os.WriteFile(path, []byte(content), 0644) })
	return nil, err
}

func appendFile(fm *eval.Frame, args []vals.Value) (vals.Value, error) {
	path, err := pathArg(args)
	if err != nil {
		return nil, err
	}
	content := eval.StrArg(args, 1)
	fm.Suspend(func() {
		var f *os.File
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return
		}
		_, err = f.WriteString(content)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	})
	return nil, err
}

func fileExists(fm *eval.Frame, args []vals.Value) (vals.Value, error) {
	path := eval.StrArg(args, 0)
	var err error
	fm.Suspend(func() { _, err = os.Stat(path) })
	if err == nil {
		return vals.Bool(true), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return vals.Bool(false), nil
	}
	return nil, err
}

// Lists the names of the entries of a directory, sorted.
func listDir(fm *eval.Frame, args []vals.Value) (vals.Value, error) {
	path := eval.StrArg(args, 0)
	if path == "" {
		path = "."
	}
	var entries []fs.DirEntry
	var err error
	fm.Suspend(func() { entries, err = os.ReadDir(path) })
	if err != nil {
		return nil, err
	}
	l := vals.NewList()
	for _, e := range entries {
		l.Elems = append(l.Elems, vals.Str(e.Name()))
	}
	return l, nil
}

func deleteFile(fm *eval.Frame, args []vals.Value) (vals.Value, error) {
	path, err := pathArg(args)
	if err != nil {
		return nil, err
	}
	fm.Suspend(func() { err = os.Remove(path) })
	return nil, err
}
