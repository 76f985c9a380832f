// Package tree models source and destination trees as a variant of
// directories and leaves read through a types.FS.
//
// Traversal code works on Entry values rather than on raw directory walks,
// which lets the sync engine run against in-memory trees in tests.
package tree

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/types"
)

// Entry is either a *Dir or a *Leaf.
type Entry interface {
	// Path is the full path of the entry on its filesystem.
	Path() string
	// Name is the last path element.
	Name() string
	// Info is the metadata captured when the entry was scanned.
	Info() fs.FileInfo

	isEntry()
}

// Dir is a directory entry. Children are sorted by name.
type Dir struct {
	path     string
	info     fs.FileInfo
	Children []Entry
}

// Leaf is a file entry. Content is not read until requested.
type Leaf struct {
	path string
	info fs.FileInfo
}

func (d *Dir) Path() string      { return d.path }
func (d *Dir) Name() string      { return filepath.Base(d.path) }
func (d *Dir) Info() fs.FileInfo { return d.info }
func (*Dir) isEntry()            {}

func (l *Leaf) Path() string      { return l.path }
func (l *Leaf) Name() string      { return filepath.Base(l.path) }
func (l *Leaf) Info() fs.FileInfo { return l.info }
func (*Leaf) isEntry()            {}

// ModTime returns the modification time recorded at scan time.
func (l *Leaf) ModTime() time.Time { return l.info.ModTime() }

// Mode returns the permission bits recorded at scan time.
func (l *Leaf) Mode() fs.FileMode { return l.info.Mode().Perm() }

// Read returns the current content of the leaf.
func (l *Leaf) Read(fsys types.FS) ([]byte, error) {
	return fsys.ReadFile(l.path)
}

// NewLeaf returns a leaf for path with the given metadata.
func NewLeaf(path string, info fs.FileInfo) *Leaf {
	return &Leaf{path: path, info: info}
}

// Scan reads the entry at root. Directories are read recursively; entries
// whose name matches skip are left out at every level, including their
// whole subtree. A nil skip keeps everything.
func Scan(fsys types.FS, root string, skip Matcher) (Entry, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "source %s does not exist", root).
				WithDetail("path", root)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", root).
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return NewLeaf(root, info), nil
	}
	return scanDir(fsys, root, info, skip)
}

func scanDir(fsys types.FS, path string, info fs.FileInfo, skip Matcher) (*Dir, error) {
	dir := &Dir{path: path, info: info}

	entries, err := fsys.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", path).
			WithDetail("path", path)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if skip != nil && skip.Match(entry.Name()) {
			continue
		}
		childPath := filepath.Join(path, entry.Name())
		childInfo, err := fsys.Stat(childPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", childPath).
				WithDetail("path", childPath)
		}
		if childInfo.IsDir() {
			child, err := scanDir(fsys, childPath, childInfo, skip)
			if err != nil {
				return nil, err
			}
			dir.Children = append(dir.Children, child)
			continue
		}
		dir.Children = append(dir.Children, NewLeaf(childPath, childInfo))
	}
	return dir, nil
}

// Walk visits entries depth-first in child order. visit is called for a
// directory before its children and after is called once they are done.
// Either callback may be nil.
func Walk(e Entry, visit func(Entry) error, after func(*Dir) error) error {
	if visit != nil {
		if err := visit(e); err != nil {
			return err
		}
	}
	dir, ok := e.(*Dir)
	if !ok {
		return nil
	}
	for _, child := range dir.Children {
		if err := Walk(child, visit, after); err != nil {
			return err
		}
	}
	if after != nil {
		return after(dir)
	}
	return nil
}

// Leaves returns every leaf under e in traversal order.
func Leaves(e Entry) []*Leaf {
	var out []*Leaf
	_ = Walk(e, func(entry Entry) error {
		if leaf, ok := entry.(*Leaf); ok {
			out = append(out, leaf)
		}
		return nil
	}, nil)
	return out
}
