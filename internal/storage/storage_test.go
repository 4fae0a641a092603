package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get("token")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("token", "abc"))
	v, err := s.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Remove("token"))
	require.NoError(t, s.Remove("token"))
	_, err = s.Get("token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("token", "abc"))
	require.NoError(t, s.Set("user", `{"email":"ana@gmail.com"}`))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	v, err := reopened.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	v, err = reopened.Get("user")
	require.NoError(t, err)
	assert.Equal(t, `{"email":"ana@gmail.com"}`, v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreRemoveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	a, err := NewFileStore(path)
	require.NoError(t, err)
	b, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, a.Set("token", "abc"))
	require.NoError(t, b.Reload())
	v, err := b.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, a.Remove("token"))
	require.NoError(t, b.Reload())
	_, err = b.Get("token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestFileStoreEmptyPath(t *testing.T) {
	_, err := NewFileStore("  ")
	assert.Error(t, err)
}
