package testutil

import (
	"os"
	"path/filepath"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It is different from testing.TB.TempDir in that it
// resolves symlinks in the path of the directory.
//
// It panics if the test directory cannot be created or symlinks cannot be
// resolved. It is only suitable for use in tests.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "flicktest")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			println("failed to remove temp dir", dir)
		}
	})
	return dir
}

// InTempDir is like TempDir, but also changes into the directory, and changes
// back to the original working directory when a test finishes. It returns
// the temporary directory.
func InTempDir(c Cleanuper) string {
	return InDir(c, TempDir(c))
}

// InDir changes into a directory, and changes back to the original working
// directory when a test finishes. It returns the directory for convenience.
func InDir(c Cleanuper, dir string) string {
	oldWd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	mustChdir(dir)
	c.Cleanup(func() { mustChdir(oldWd) })
	return dir
}

func mustChdir(dir string) {
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}

// Dir describes the layout of a directory. The keys of the map represent
// filenames. Each value is either a string (for the content of a regular file
// with permission 0644), a File, or a Dir.
type Dir map[string]any

// File describes a file to create.
type File struct {
	Perm    os.FileMode
	Content string
}

// ApplyDir creates the given filesystem layout in the current directory.
func ApplyDir(dir Dir) {
	ApplyDirIn(dir, "")
}

// ApplyDirIn creates the given filesystem layout in a directory.
func ApplyDirIn(dir Dir, root string) {
	for name, file := range dir {
		path := filepath.Join(root, name)
		switch file := file.(type) {
		case string:
			must(os.WriteFile(path, []byte(file), 0644))
		case File:
			must(os.WriteFile(path, []byte(file.Content), file.Perm))
		case Dir:
			must(os.MkdirAll(path, 0755))
			ApplyDirIn(file, path)
		default:
			panic("file is neither string, File or Dir")
		}
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
