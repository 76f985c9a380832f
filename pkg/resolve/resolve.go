// Package resolve expands {{name}} placeholders inside the site
// configuration.
//
// Every placeholder is looked up in the root mapping as it was before any
// substitution took place, and substituted text is never scanned again. A
// value that itself contains a placeholder is therefore copied literally:
// given {a: "{{b}}", b: "{{c}}", c: "X"}, a resolves to "{{c}}". Resolution
// always terminates and needs no cycle detection.
package resolve

import (
	"fmt"
	"regexp"

	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/arthur-debert/pubtree/pkg/sitedata"
)

// placeholder matches {{identifier}} non-greedily. The identifier is used
// verbatim as a lookup key.
var placeholder = regexp.MustCompile(`\{\{(.*?)\}\}`)

// Scope is the lookup context of a resolution: a snapshot of the
// unresolved root mapping.
type Scope struct {
	root *sitedata.Tree
}

// NewScope returns a Scope over root. root must be a mapping.
func NewScope(root *sitedata.Tree) (Scope, error) {
	if root == nil || root.Kind() != sitedata.KindMapping {
		return Scope{}, errors.New(errors.ErrConfigInvalid, "configuration root must be a mapping")
	}
	return Scope{root: root}, nil
}

// Lookup returns the value stored under key in the root mapping. Keys are
// case-sensitive and are not trimmed.
func (s Scope) Lookup(key string) (*sitedata.Tree, bool) {
	return s.root.Get(key)
}

// Resolve returns a copy of root with every placeholder in its string
// scalars replaced by the canonical text of the referenced root value. The
// input tree is not modified.
func Resolve(root *sitedata.Tree) (*sitedata.Tree, error) {
	scope, err := NewScope(root)
	if err != nil {
		return nil, err
	}
	return scope.Resolve(root)
}

// Resolve rebuilds node depth-first, substituting placeholders against the
// scope. The first undefined placeholder aborts the whole resolution.
func (s Scope) Resolve(node *sitedata.Tree) (*sitedata.Tree, error) {
	return s.resolve(node, "")
}

func (s Scope) resolve(node *sitedata.Tree, path string) (*sitedata.Tree, error) {
	switch node.Kind() {
	case sitedata.KindMapping:
		out := sitedata.NewMapping()
		for _, key := range node.Keys() {
			child, _ := node.Get(key)
			resolved, err := s.resolve(child, joinPath(path, key))
			if err != nil {
				return nil, err
			}
			out.Set(key, resolved)
		}
		return out, nil

	case sitedata.KindSequence:
		items := make([]*sitedata.Tree, 0, node.Len())
		for i, item := range node.Items() {
			resolved, err := s.resolve(item, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			items = append(items, resolved)
		}
		return sitedata.Sequence(items...), nil

	default:
		text, ok := node.Value().(string)
		if !ok {
			return node, nil
		}
		expanded, changed, err := s.Expand(text)
		if err != nil {
			if pubErr, ok := err.(*errors.PubtreeError); ok && path != "" {
				pubErr.WithDetail("path", path)
			}
			return nil, err
		}
		if !changed {
			return node, nil
		}
		logger := logging.GetLogger("resolve")
		logger.Trace().
			Str("path", path).
			Str("from", text).
			Str("to", expanded).
			Msg("substituted placeholders")
		return sitedata.Scalar(expanded), nil
	}
}

// Expand substitutes every placeholder in text in one left-to-right pass.
// All distinct identifiers are checked before any substitution so an
// undefined one fails without producing partial output. changed reports
// whether text contained any placeholder.
func (s Scope) Expand(text string) (expanded string, changed bool, err error) {
	matches := placeholder.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return text, false, nil
	}

	values := make(map[string]string, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, seen := values[name]; seen {
			continue
		}
		value, ok := s.Lookup(name)
		if !ok {
			return "", false, errors.Newf(errors.ErrUndefinedVariable, "undefined variable %s", m[0]).
				WithDetail("variable", name)
		}
		values[name] = value.Text()
	}

	expanded = placeholder.ReplaceAllStringFunc(text, func(occurrence string) string {
		name := occurrence[2 : len(occurrence)-2]
		return values[name]
	})
	return expanded, true, nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
