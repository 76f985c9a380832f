package sitedata

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Text returns the canonical text form of the node, the form used when a
// value is substituted into a string. Sequences and mappings render as
// single-line YAML flow text.
func (t *Tree) Text() string {
	if t.kind == KindScalar {
		return scalarText(t.scalar)
	}
	out, err := yaml.Marshal(t.node(true))
	if err != nil {
		return fmt.Sprint(t.Interface())
	}
	return strings.TrimSpace(string(out))
}

func scalarText(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		switch {
		case math.IsNaN(x):
			return ".nan"
		case math.IsInf(x, 1):
			return ".inf"
		case math.IsInf(x, -1):
			return "-.inf"
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return dateText(x)
	default:
		return fmt.Sprint(x)
	}
}

// dateText prints plain dates without a clock and everything else with
// second precision, adding the offset for non-UTC times.
func dateText(t time.Time) string {
	if t.Location() == time.UTC {
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(dateLayout)
		}
		return t.Format(dateTimeLayout)
	}
	return t.Format(dateTimeLayout + "-07:00")
}

// ToYAML renders the tree as a block-style YAML document, keeping key order.
func (t *Tree) ToYAML() ([]byte, error) {
	return yaml.Marshal(t.node(false))
}

func (t *Tree) node(flow bool) *yaml.Node {
	switch t.kind {
	case KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if flow {
			n.Style = yaml.FlowStyle
		}
		for _, item := range t.items {
			n.Content = append(n.Content, item.node(flow))
		}
		return n
	case KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if flow {
			n.Style = yaml.FlowStyle
		}
		for _, k := range t.keys {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				t.fields[k].node(flow))
		}
		return n
	default:
		n := &yaml.Node{}
		if err := n.Encode(t.scalar); err != nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: scalarText(t.scalar)}
		}
		return n
	}
}
