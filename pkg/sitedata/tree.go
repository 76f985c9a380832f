package sitedata

import (
	"fmt"
	"time"
)

// Kind identifies the shape of a Tree node.
type Kind int

const (
	// KindScalar is a leaf value: string, number, bool, date or null.
	KindScalar Kind = iota
	// KindSequence is an ordered list of nodes.
	KindSequence
	// KindMapping is an ordered set of string keys, each with a node.
	KindMapping
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Tree is the site configuration: a recursively typed value that keeps the
// order of sequences and of mapping keys as they appeared in the source.
//
// Trees are treated as immutable once built. Operations that change content,
// such as variable resolution, build new trees.
type Tree struct {
	kind   Kind
	scalar interface{}
	items  []*Tree
	keys   []string
	fields map[string]*Tree
}

// Scalar returns a scalar node. Accepted values are string, int, int64,
// float64, bool, time.Time and nil.
func Scalar(v interface{}) *Tree {
	return &Tree{kind: KindScalar, scalar: v}
}

// Sequence returns a sequence node holding items in order.
func Sequence(items ...*Tree) *Tree {
	return &Tree{kind: KindSequence, items: items}
}

// NewMapping returns an empty mapping node.
func NewMapping() *Tree {
	return &Tree{kind: KindMapping, fields: make(map[string]*Tree)}
}

// Set stores value under key. A new key is appended to the key order; an
// existing key keeps its position and has its value replaced.
func (t *Tree) Set(key string, value *Tree) *Tree {
	if t.kind != KindMapping {
		panic(fmt.Sprintf("sitedata: Set on %s node", t.kind))
	}
	if _, exists := t.fields[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.fields[key] = value
	return t
}

// Kind returns the node kind.
func (t *Tree) Kind() Kind {
	return t.kind
}

// Value returns the scalar value, or nil for sequences and mappings.
func (t *Tree) Value() interface{} {
	return t.scalar
}

// Items returns the children of a sequence.
func (t *Tree) Items() []*Tree {
	return t.items
}

// Keys returns the keys of a mapping in order.
func (t *Tree) Keys() []string {
	return t.keys
}

// Get looks up a key in a mapping. Keys are matched exactly.
func (t *Tree) Get(key string) (*Tree, bool) {
	if t == nil || t.kind != KindMapping {
		return nil, false
	}
	v, ok := t.fields[key]
	return v, ok
}

// Len returns the number of items or keys; scalars have length zero.
func (t *Tree) Len() int {
	switch t.kind {
	case KindSequence:
		return len(t.items)
	case KindMapping:
		return len(t.keys)
	default:
		return 0
	}
}

// Strings returns the string items of a sequence stored under key. Non-string
// items are converted to their canonical text. ok is false when the key is
// missing or does not hold a sequence.
func (t *Tree) Strings(key string) (values []string, ok bool) {
	node, found := t.Get(key)
	if !found || node.kind != KindSequence {
		return nil, false
	}
	for _, item := range node.items {
		values = append(values, item.Text())
	}
	return values, true
}

// Interface converts the tree to plain Go values: map[string]interface{},
// []interface{} and scalars. This is the form handed to the renderer.
func (t *Tree) Interface() interface{} {
	switch t.kind {
	case KindSequence:
		out := make([]interface{}, len(t.items))
		for i, item := range t.items {
			out[i] = item.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]interface{}, len(t.keys))
		for _, k := range t.keys {
			out[k] = t.fields[k].Interface()
		}
		return out
	default:
		return t.scalar
	}
}

// Equal reports whether two trees have the same shape, key order and values.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindSequence:
		if len(t.items) != len(other.items) {
			return false
		}
		for i := range t.items {
			if !t.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(t.keys) != len(other.keys) {
			return false
		}
		for i, k := range t.keys {
			if other.keys[i] != k || !t.fields[k].Equal(other.fields[k]) {
				return false
			}
		}
		return true
	default:
		if a, ok := t.scalar.(time.Time); ok {
			b, ok := other.scalar.(time.Time)
			return ok && a.Equal(b)
		}
		return t.scalar == other.scalar
	}
}
