package sitedata

import (
	"time"

	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/arthur-debert/pubtree/pkg/types"
	"gopkg.in/yaml.v3"
)

// Load reads and parses the site configuration at path.
func Load(fs types.FS, path string) (*Tree, error) {
	logger := logging.GetLogger("sitedata")
	logger.Info().Str("path", path).Msg("opening config file")

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "could not open config file %s", path).
			WithDetail("path", path)
	}

	tree, err := Parse(data)
	if err != nil {
		if pubErr, ok := err.(*errors.PubtreeError); ok {
			return nil, pubErr.WithDetail("path", path)
		}
		return nil, err
	}
	return tree, nil
}

// Parse converts a YAML document into a Tree. The document root must be a
// mapping. Aliases are followed, merge keys are applied and timestamps
// become time.Time scalars.
func Parse(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "configuration is not a valid YAML document")
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrConfigInvalid, "configuration root must be a mapping")
	}

	return fromNode(root)
}

func fromNode(n *yaml.Node) (*Tree, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]*Tree, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return Sequence(items...), nil
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
				if err := merge(m, v); err != nil {
					return nil, err
				}
				continue
			}
			if k.Kind != yaml.ScalarNode {
				return nil, errors.Newf(errors.ErrConfigInvalid, "line %d: mapping keys must be scalars", k.Line)
			}
			child, err := fromNode(v)
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, child)
		}
		return m, nil
	case yaml.ScalarNode:
		v, err := decodeScalar(n)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "line %d: invalid value %q", n.Line, n.Value)
		}
		return Scalar(v), nil
	default:
		return nil, errors.Newf(errors.ErrConfigInvalid, "line %d: unsupported YAML node", n.Line)
	}
}

// merge applies a `<<` merge key: keys already present win.
func merge(m *Tree, src *yaml.Node) error {
	if src.Kind == yaml.AliasNode {
		src = src.Alias
	}
	var sources []*yaml.Node
	switch src.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{src}
	case yaml.SequenceNode:
		sources = src.Content
	default:
		return errors.Newf(errors.ErrConfigInvalid, "line %d: merge value must be a mapping", src.Line)
	}

	for _, s := range sources {
		merged, err := fromNode(s)
		if err != nil {
			return err
		}
		if merged.Kind() != KindMapping {
			return errors.Newf(errors.ErrConfigInvalid, "line %d: merge value must be a mapping", s.Line)
		}
		for _, k := range merged.Keys() {
			if _, exists := m.Get(k); exists {
				continue
			}
			v, _ := merged.Get(k)
			m.Set(k, v)
		}
	}
	return nil
}

func decodeScalar(n *yaml.Node) (interface{}, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!timestamp":
		// decoding into interface{} would leave timestamps as strings
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, err
		}
		return t, nil
	default:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// With returns a copy of the mapping with key set to value. The receiver is
// left untouched.
func (t *Tree) With(key string, value *Tree) *Tree {
	out := NewMapping()
	for _, k := range t.keys {
		out.Set(k, t.fields[k])
	}
	out.Set(key, value)
	return out
}
