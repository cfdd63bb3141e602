package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lantharos/flick/pkg/store/storedefs"
	"github.com/Lantharos/flick/pkg/testutil"
)

func TestKV(t *testing.T) {
	s := MustTempStore(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, storedefs.ErrNoKey)

	require.NoError(t, s.Put("b", "2"))
	require.NoError(t, s.Put("a", "1"))
	v, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("never-existed"))
	keys, err = s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestKV_Persists(t *testing.T) {
	dbname := filepath.Join(testutil.TempDir(t), "db")

	s, err := NewStore(dbname)
	require.NoError(t, err)
	require.NoError(t, s.Put("greeting", `"hi"`))
	require.NoError(t, s.Close())

	s, err = NewStore(dbname)
	require.NoError(t, err)
	defer s.Close()
	v, err := s.Get("greeting")
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, v)
}
