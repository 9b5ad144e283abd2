package storage

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveAndOpen(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save("report.pdf", strings.NewReader("content"))
	require.NoError(t, err)

	rc, err := store.Open(path)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestLocalStoreRejectsDuplicateFilename(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("a.pdf", strings.NewReader("one"))
	require.NoError(t, err)

	_, err = store.Save("a.pdf", strings.NewReader("two"))
	assert.Error(t, err, "同名文件不允许覆盖")
}

func TestLocalStoreStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	path, err := store.Save("../../etc/evil.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "evil.txt"), path)
}

func TestLocalStoreRemoveIsIdempotent(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save("a.pdf", strings.NewReader("one"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(path))
	assert.NoError(t, store.Remove(path), "重复删除不报错")

	_, err = store.Open(path)
	assert.Error(t, err)
}
