package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "nested", "flags.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New("  ")
	require.Error(t, err)
}

func TestGetMissingReturnsDefault(t *testing.T) {
	s := newTestStore(t)

	v, err := s.GetInt("missing", 7)
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestSetOverwritesValue(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetInt("debugmenu-flag-tick", 1))
	require.NoError(t, s.SetInt("debugmenu-flag-tick", 2))

	v, err := s.GetInt("debugmenu-flag-tick", 0)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestKeysFiltersByPrefix(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetInt("debugmenu-flag-b", 1))
	require.NoError(t, s.SetInt("debugmenu-flag-a", 0))
	require.NoError(t, s.SetInt("other", 3))

	keys, err := s.Keys("debugmenu-flag-")
	require.NoError(t, err)
	require.Equal(t, []string{"debugmenu-flag-a", "debugmenu-flag-b"}, keys)

	all, err := s.Keys("")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestDeleteAndClear(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetInt("a", 1))
	require.NoError(t, s.SetInt("b", 2))
	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("a"))

	keys, err := s.Keys("")
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, keys)

	require.NoError(t, s.Clear())
	keys, err = s.Keys("")
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.db")
	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.SetInt("persist", 42))
	require.NoError(t, s.Close())

	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()
	v, err := s.GetInt("persist", 0)
	require.NoError(t, err)
	require.Equal(t, 42, v)
}
