package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	require.NoError(t, WriteFileAtomic(testFile, []byte("hello world"), 0o644))

	data, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	info, err := os.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	// No temp files remain
	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "test.txt", entries[0].Name())
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	t.Parallel()

	testFile := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, WriteFileAtomic(testFile, []byte("initial"), 0o644))
	require.NoError(t, WriteFileAtomic(testFile, []byte("updated content"), 0o644))

	data, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "updated content", string(data))
}

func TestWriteFileAtomicInvalidDir(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic("/nonexistent/dir/test.txt", []byte("data"), 0o644)
	assert.Error(t, err)
}

func TestWriteFileAtomicCleansUpOnFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(target, 0o755))

	err := WriteFileAtomic(target, []byte("data"), 0o644)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must be removed")
	assert.Equal(t, "taken", entries[0].Name())
}

// storeContract runs the behaviour every Store must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()

	_, err := s.Get(KeyGameState)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(KeyGameState, []byte(`{"a":1}`)))
	require.NoError(t, s.Put(KeySessionSnapshot, []byte(`{"b":2}`)))

	got, err := s.Get(KeyGameState)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	require.NoError(t, s.Put(KeyGameState, []byte(`{"a":2}`)))
	got, err = s.Get(KeyGameState)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(got))

	require.NoError(t, s.Delete(KeyGameState, KeySessionSnapshot, KeyLobbyState))
	_, err = s.Get(KeyGameState)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(KeySessionSnapshot)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := NewFileStore(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	storeContract(t, s)
}

func TestFileStoreLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, s.Put(KeyLobbyState, []byte("{}")))
	_, err = os.Stat(filepath.Join(dir, "pitango.lobbyState.v1.json"))
	assert.NoError(t, err)
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	for _, key := range []string{"", "..", "../escape", `a\b`} {
		assert.Error(t, s.Put(key, []byte("x")), "key %q", key)
		_, err := s.Get(key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	storeContract(t, s)
	assert.Empty(t, s.Keys())
}

func TestMemoryStoreCopies(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Put(KeyGameState, buf))
	buf[0] = 'x'

	got, err := s.Get(KeyGameState)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[0] = 'y'
	again, _ := s.Get(KeyGameState)
	assert.Equal(t, "abc", string(again))
	assert.Equal(t, []string{KeyGameState}, s.Keys())
}
