package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	return store
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store, err := New(dir, nil)
	require.NoError(t, err)

	info, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestUniqueNameDiffersWithinSameSecond(t *testing.T) {
	store := newTestStore(t)

	first := store.UniqueName("report.pdf")
	second := store.UniqueName("report.pdf")

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, "_report.pdf"))
	assert.True(t, strings.HasSuffix(second, "_report.pdf"))
}

func TestUniqueNameStripsDirectories(t *testing.T) {
	store := newTestStore(t)

	name := store.UniqueName("../../etc/passwd")
	assert.True(t, strings.HasSuffix(name, "_passwd"))
	assert.NotContains(t, name, "/")
}

func TestSaveExistsRemove(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save([]byte("hello world"), "note.txt")
	require.NoError(t, err)
	assert.True(t, store.Exists(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	require.NoError(t, store.Remove(path))
	assert.False(t, store.Exists(path))
}

func TestSaveSameNameTwiceKeepsBothFiles(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save([]byte("one"), "dup.txt")
	require.NoError(t, err)
	second, err := store.Save([]byte("two"), "dup.txt")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, store.Exists(first))
	assert.True(t, store.Exists(second))
}
