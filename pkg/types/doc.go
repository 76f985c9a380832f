// Package types defines the interfaces shared across pubtree packages.
//
// The FS interface is the only way the publisher touches the disk: the
// source tree scanner, the renderer's template loader and the sync engine
// all go through it, so every pass can run against an in-memory filesystem
// in tests.
package types
