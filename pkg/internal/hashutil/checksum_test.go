package hashutil

import (
	"testing"

	"github.com/arthur-debert/pubtree/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileChecksum(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/data", map[string]string{
		"a.txt": "Hello, World!\n",
		"b.txt": "Hello, World!\n",
		"c.txt": "Goodbye\n",
	})

	checksum, err := FileChecksum(fsys, "/data/a.txt")
	require.NoError(t, err)
	assert.Contains(t, checksum, "sha256:")
	assert.Len(t, checksum, 71) // "sha256:" + 64 hex chars
	assert.Equal(t, Checksum([]byte("Hello, World!\n")), checksum)

	same, err := SameContent(fsys, "/data/a.txt", fsys, "/data/b.txt")
	require.NoError(t, err)
	assert.True(t, same)

	same, err = SameContent(fsys, "/data/a.txt", fsys, "/data/c.txt")
	require.NoError(t, err)
	assert.False(t, same)

	_, err = FileChecksum(fsys, "/data/missing.txt")
	assert.Error(t, err)
}
