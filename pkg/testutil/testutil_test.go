package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	fsys := NewTestFS()
	WriteTree(t, fsys, "/src", map[string]string{
		"a.txt":       "A",
		"sub/b.txt":   "B",
		"sub/c/d.txt": "D",
	})
	stamp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	SetModTime(t, fsys, "/src/a.txt", stamp)

	snap := Snapshot(t, fsys, "/src")
	assert.Equal(t, []string{"a.txt", "sub", "sub/b.txt", "sub/c", "sub/c/d.txt"}, Paths(snap))
	assert.Equal(t, "D", snap["sub/c/d.txt"].Content)
	assert.True(t, snap["sub"].Dir)
	assert.True(t, snap["a.txt"].ModTime.Equal(stamp))

	assert.Empty(t, Snapshot(t, fsys, "/missing"))
	assert.Equal(t, "B", ReadString(t, fsys, "/src/sub/b.txt"))
}
