package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTempDir_DirIsValid(t *testing.T) {
	dir := TempDir(t)

	stat, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("TempDir returns %q which cannot be stated", dir)
	}
	if !stat.IsDir() {
		t.Errorf("TempDir returns %q which is not a dir", dir)
	}
}

func TestTempDir_CleanupRemovesDirRecursively(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)

	if err := os.WriteFile(filepath.Join(dir, "a"), []byte("test"), 0600); err != nil {
		panic(err)
	}

	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("Dir %q still exists after cleanup", dir)
	}
}

func TestInTempDir_CleanupChangesBackToOldWd(t *testing.T) {
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	c := &cleanuper{}
	dir := InTempDir(c)
	if wd, _ := os.Getwd(); wd != dir {
		t.Errorf("working directory is %q, want %q", wd, dir)
	}
	c.runCleanups()
	if after, _ := os.Getwd(); after != before {
		t.Errorf("working directory is %q after cleanup, want %q", after, before)
	}
}

func TestApplyDir(t *testing.T) {
	InTempDir(t)

	ApplyDir(Dir{
		"main.fk": "use Lib\n",
		"lib": Dir{
			"Lib.fk": "free x = 1\n",
		},
		"run.sh": File{0755, "#!/bin/sh\n"},
	})

	testFileContent(t, "main.fk", "use Lib\n")
	testFileContent(t, filepath.Join("lib", "Lib.fk"), "free x = 1\n")
	testFileContent(t, "run.sh", "#!/bin/sh\n")
	if stat, err := os.Stat("run.sh"); err == nil && stat.Mode().Perm()&0100 == 0 {
		t.Errorf("run.sh is not executable")
	}
}

func testFileContent(t *testing.T, name, want string) {
	t.Helper()
	content, err := os.ReadFile(name)
	if err != nil {
		t.Errorf("cannot read %s: %v", name, err)
		return
	}
	if diff := cmp.Diff(want, string(content)); diff != "" {
		t.Errorf("content of %s (-want +got):\n%s", name, diff)
	}
}

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}
