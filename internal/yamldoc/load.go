package yamldoc

import (
	"fmt"
	"io"

	goyamlast "github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// Document owns a loaded YAML tree: its root Node and the anchor table
// gathered from it. The document must remain live and unmodified while
// any Node derived from it is in use (spec.md §3 "Lifecycles").
type Document struct {
	root    *Node
	anchors map[string]*Node
}

// Root returns the document's root node.
func (d *Document) Root() *Node {
	return d.root
}

type pendingAlias struct {
	node *Node
	name string
}

// Load parses r as a single YAML document and wraps it for path
// evaluation.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("yamldoc: read document: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses a single YAML document from data.
func LoadBytes(data []byte) (*Document, error) {
	f, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("yamldoc: parse document: %w", err)
	}
	if len(f.Docs) == 0 {
		return nil, fmt.Errorf("yamldoc: document is empty")
	}

	doc := &Document{anchors: make(map[string]*Node)}
	var pending []pendingAlias

	root := doc.build(nil, f.Docs[0].Body, &pending)
	doc.root = root

	for _, p := range pending {
		target, ok := doc.anchors[p.name]
		if !ok {
			continue // unknown anchor: no match, not an error (spec.md §4.D)
		}
		p.node.alias = target
	}

	return doc, nil
}

// build recursively wraps raw into the Node tree, registering anchors and
// queuing alias placeholders for resolution once every anchor is known.
func (d *Document) build(parent *Node, raw goyamlast.Node, pending *[]pendingAlias) *Node {
	if raw == nil {
		return nil
	}

	switch r := raw.(type) {
	case *goyamlast.AnchorNode:
		wrapped := d.build(parent, r.Value, pending)
		if name := anchorName(r.Name); name != "" {
			d.anchors[name] = wrapped
		}
		return wrapped

	case *goyamlast.AliasNode:
		n := &Node{doc: d, parent: parent}
		*pending = append(*pending, pendingAlias{node: n, name: anchorName(r.Value)})
		return n

	case *goyamlast.MappingNode:
		n := &Node{doc: d, parent: parent, kind: Mapping, raw: raw}
		n.entries = make([]mapEntry, 0, len(r.Values))
		for _, pair := range r.Values {
			if pair == nil {
				continue
			}
			value := d.build(n, pair.Value, pending)
			n.entries = append(n.entries, mapEntry{key: pair.Key, value: value})
		}
		return n

	case *goyamlast.MappingValueNode:
		// A bare top-level "key: value" pair, not inside a MappingNode.
		// Treat it as a single-entry mapping.
		n := &Node{doc: d, parent: parent, kind: Mapping, raw: raw}
		value := d.build(n, r.Value, pending)
		n.entries = []mapEntry{{key: r.Key, value: value}}
		return n

	case *goyamlast.SequenceNode:
		n := &Node{doc: d, parent: parent, kind: Sequence, raw: raw}
		n.items = make([]*Node, 0, len(r.Values))
		for _, item := range r.Values {
			n.items = append(n.items, d.build(n, item, pending))
		}
		return n

	default:
		return &Node{doc: d, parent: parent, kind: Scalar, raw: raw}
	}
}

// anchorName extracts the textual name from an anchor/alias's name node.
func anchorName(n goyamlast.Node) string {
	if n == nil {
		return ""
	}
	return unquote(n.String())
}
