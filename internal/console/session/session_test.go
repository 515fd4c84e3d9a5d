package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_FileNotExist(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, s.Load())
	require.Empty(t, s.Token())
	require.False(t, s.IsAuthenticated())
}

func TestSetToken_PersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s := New(path)
	require.NoError(t, s.SetToken("bearer-token"))
	require.True(t, s.IsAuthenticated())

	reloaded := New(path)
	require.NoError(t, reloaded.Load())
	require.Equal(t, "bearer-token", reloaded.Token())
}

func TestClear_RemovesFileAndToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := New(path)
	require.NoError(t, s.SetToken("bearer-token"))
	require.NoError(t, s.Clear())

	require.Empty(t, s.Token())
	require.False(t, s.IsAuthenticated())
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Clearing an already-clean store is fine.
	require.NoError(t, s.Clear())
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	s := New(path)
	require.Error(t, s.Load())
}
