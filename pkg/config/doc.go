// Package config handles the settings of pubtree itself, as opposed to the
// site configuration it publishes.
//
// Settings are layered, later sources winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. <input>/.pubtree.toml or <input>/.pubtree.yaml
//  3. PUBTREE_* environment variables, with "__" between section and key
//  4. overrides from command-line flags
package config
