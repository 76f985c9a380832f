// Package filesystem provides filesystem implementations for pubtree.
//
// This package contains implementations of the types.FS interface:
// the OS filesystem used in production, an afero adapter used for
// in-memory tests, and a read-only view over embedded trees.
package filesystem
