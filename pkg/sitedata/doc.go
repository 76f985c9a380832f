// Package sitedata holds the site configuration tree.
//
// The configuration is a YAML document whose root is a mapping. It is loaded
// once per run into a Tree, an ordered recursive value of scalars, sequences
// and mappings. Trees keep the key order of the source document and are not
// modified after loading: variable resolution and key injection build new
// trees.
//
// Text gives the canonical text of any node, which is what a placeholder is
// replaced with during resolution:
//
//	strings     verbatim
//	numbers     base 10, shortest exact decimal for floats
//	booleans    true / false
//	null        null
//	dates       2006-01-02, or 2006-01-02 15:04:05 when a clock is present
//	collections single-line YAML flow text, e.g. [a, b] or {k: v}
//
// Booleans and null keep their YAML spelling on purpose, so a reference to
// a flag expands to true and never to True, and null never becomes None.
package sitedata
