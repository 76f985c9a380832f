package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/arthur-debert/pubtree/pkg/filesystem"
	"github.com/arthur-debert/pubtree/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// WriteTree writes files relative to root. Keys are slash-separated paths,
// values are file contents. Parent directories are created as needed.
func WriteTree(t *testing.T, fsys types.FS, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
	}
}

// SetModTime sets both access and modification time of path.
func SetModTime(t *testing.T, fsys types.FS, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, fsys.Chtimes(path, mtime, mtime))
}

// ReadString returns the content of path.
func ReadString(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether path exists.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// FileState is what Snapshot records for one entry.
type FileState struct {
	Dir     bool
	Content string
	ModTime time.Time
	Mode    fs.FileMode
}

// Snapshot records every entry under root keyed by slash-separated path
// relative to root. A missing root gives an empty snapshot.
func Snapshot(t *testing.T, fsys types.FS, root string) map[string]FileState {
	t.Helper()
	out := make(map[string]FileState)
	if !Exists(fsys, root) {
		return out
	}
	var walk func(dir string)
	walk = func(dir string) {
		entries, err := fsys.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			rel, err := filepath.Rel(root, path)
			require.NoError(t, err)
			info, err := fsys.Stat(path)
			require.NoError(t, err)
			state := FileState{Dir: info.IsDir(), ModTime: info.ModTime(), Mode: info.Mode().Perm()}
			if info.IsDir() {
				out[filepath.ToSlash(rel)] = state
				walk(path)
				continue
			}
			data, err := fsys.ReadFile(path)
			require.NoError(t, err)
			state.Content = string(data)
			out[filepath.ToSlash(rel)] = state
		}
	}
	walk(root)
	return out
}

// Paths returns the sorted keys of a snapshot.
func Paths(snapshot map[string]FileState) []string {
	paths := make([]string, 0, len(snapshot))
	for p := range snapshot {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
