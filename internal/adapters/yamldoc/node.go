// Package yamldoc turns YAML doctrine documents into domain doctrines.
//
// Decoding happens in two steps. Decode converts the yaml.v3 tree into a
// small Node variant (null, scalar, sequence, mapping) with aliases already
// expanded into independent copies. The Parse functions then walk that tree
// top-down and fail with a domain.ParseError on the first structural mismatch.
package yamldoc

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/xup/internal/domain"
)

// Kind identifies the variant held by a Node.
type Kind int

// Node kinds.
const (
	KindNull Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

// String returns the YAML name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "null"
	}
}

const strTag = "!!str"

// Node is one element of a decoded document. A nil *Node behaves as null.
type Node struct {
	kind    Kind
	tag     string
	value   string
	items   []*Node
	mapping *Mapping
	line    int
}

// Kind returns the node variant.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

// Line returns the 1-based source line, 0 when unknown.
func (n *Node) Line() int {
	if n == nil {
		return 0
	}
	return n.line
}

// AsSequence returns the elements of a sequence node.
func (n *Node) AsSequence() ([]*Node, bool) {
	if n.Kind() != KindSequence {
		return nil, false
	}
	return n.items, true
}

// AsMapping returns the entries of a mapping node.
func (n *Node) AsMapping() (*Mapping, bool) {
	if n.Kind() != KindMapping {
		return nil, false
	}
	return n.mapping, true
}

// AsText returns the value of a scalar that YAML resolves to a string.
// Numbers, booleans and nulls are not text unless quoted.
func (n *Node) AsText() (string, bool) {
	if n.Kind() != KindScalar || n.tag != strTag {
		return "", false
	}
	return n.value, true
}

type mappingEntry struct {
	key   *Node
	value *Node
}

// Mapping is an ordered set of key/value entries. Keys are matched by text.
type Mapping struct {
	entries []mappingEntry
}

// Len returns the number of entries left in the mapping.
func (m *Mapping) Len() int {
	return len(m.entries)
}

// Keys returns the text keys left in the mapping, in document order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if k, ok := e.key.AsText(); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Take removes key from the mapping and returns its value. When a key
// repeats, the last value wins and every occurrence is removed.
func (m *Mapping) Take(key string) (*Node, bool) {
	var (
		value *Node
		found bool
	)

	kept := m.entries[:0]
	for _, e := range m.entries {
		if k, ok := e.key.AsText(); ok && k == key {
			value, found = e.value, true
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept

	return value, found
}

// MaxAliasExpansion bounds the nodes a document may produce by expanding
// aliases. A few nested anchors can otherwise expand to millions of nodes.
const MaxAliasExpansion = 10_000

// ErrExcessiveAliasing is returned when alias expansion exceeds MaxAliasExpansion.
var ErrExcessiveAliasing = errors.New("document contains excessive aliasing")

// FromYAML converts a yaml.v3 node into a Node. Alias nodes are expanded so
// that every use of an anchor yields its own copy.
func FromYAML(y *yaml.Node) (*Node, error) {
	c := &converter{budget: MaxAliasExpansion}

	n := c.convert(y, false)
	if c.budget < 0 {
		return nil, fmt.Errorf("%w: %w (more than %d nodes)", domain.ErrInvalidDocument, ErrExcessiveAliasing, MaxAliasExpansion)
	}

	return n, nil
}

// converter tracks how many more nodes alias expansion may create.
type converter struct {
	budget int
}

func (c *converter) convert(y *yaml.Node, aliased bool) *Node {
	if c.budget < 0 {
		return &Node{kind: KindNull}
	}
	if y == nil {
		return &Node{kind: KindNull}
	}
	if aliased {
		c.budget--
	}

	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return &Node{kind: KindNull, line: y.Line}
		}
		return c.convert(y.Content[0], aliased)

	case yaml.AliasNode:
		return c.convert(y.Alias, true)

	case yaml.SequenceNode:
		items := make([]*Node, 0, len(y.Content))
		for _, item := range y.Content {
			items = append(items, c.convert(item, aliased))
		}
		return &Node{kind: KindSequence, items: items, line: y.Line}

	case yaml.MappingNode:
		m := &Mapping{entries: make([]mappingEntry, 0, len(y.Content)/2)}
		for i := 0; i+1 < len(y.Content); i += 2 {
			m.entries = append(m.entries, mappingEntry{
				key:   c.convert(y.Content[i], aliased),
				value: c.convert(y.Content[i+1], aliased),
			})
		}
		return &Node{kind: KindMapping, mapping: m, line: y.Line}

	case yaml.ScalarNode:
		tag := y.ShortTag()
		if tag == "!!null" {
			return &Node{kind: KindNull, line: y.Line}
		}
		return &Node{kind: KindScalar, tag: tag, value: y.Value, line: y.Line}

	default:
		return &Node{kind: KindNull, line: y.Line}
	}
}
