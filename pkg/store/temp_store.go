package store

import (
	"path/filepath"

	"github.com/Lantharos/flick/pkg/store/storedefs"
	"github.com/Lantharos/flick/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file. The Store and
// the file are cleaned up when the test finishes.
func MustTempStore(c testutil.Cleanuper) storedefs.Store {
	dir := testutil.TempDir(c)
	s, err := NewStore(filepath.Join(dir, "db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { s.Close() })
	return s
}
