package types

import (
	"io/fs"
	"time"
)

// FS is the filesystem interface required for publishing. Source trees are
// only read through it; destination trees are read and written through it.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Metadata operations
	Chtimes(name string, atime, mtime time.Time) error
	Chmod(name string, mode fs.FileMode) error

	// Other operations
	Remove(name string) error
}
