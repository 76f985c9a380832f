package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/arthur-debert/pubtree/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fs types.FS, root string) {
	t.Helper()

	testFile := filepath.Join(root, "test.txt")
	testContent := []byte("hello world")

	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	stamp := time.Date(2020, 5, 17, 10, 30, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes(testFile, stamp, stamp))
	info, err = fs.Stat(testFile)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "mtime %v, want %v", info.ModTime(), stamp)

	require.NoError(t, fs.Chmod(testFile, 0600))
	info, err = fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	subDir := filepath.Join(root, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))

	entries, err := fs.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // sub/ and test.txt

	_, err = fs.ReadFile(subDir)
	assert.Error(t, err)

	require.NoError(t, fs.Remove(testFile))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestNewOS(t *testing.T) {
	exerciseFS(t, NewOS(), t.TempDir())
}

func TestNewAferoFS(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/site", 0755))
	exerciseFS(t, NewAferoFS(mem), "/site")
}

func TestNewEmbedded(t *testing.T) {
	fsys := fstest.MapFS{
		"example/config.yml":       {Data: []byte("title: Home\n")},
		"example/pages/index.html": {Data: []byte("{{ title }}")},
	}

	fs := NewEmbedded(fsys)

	content, err := fs.ReadFile("example/config.yml")
	require.NoError(t, err)
	assert.Equal(t, "title: Home\n", string(content))

	entries, err := fs.ReadDir("example")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "config.yml", entries[0].Name())
	assert.True(t, entries[1].IsDir())

	assert.Error(t, fs.WriteFile("example/new.txt", []byte("x"), 0644), "embedded trees are read-only")
}
