// Package yamldoc wraps github.com/goccy/go-yaml's ast tree with the
// traversal primitives the path-expression evaluator needs: parent
// pointers, anchor lookup by name, sequence/mapping children, and
// structural key equality. It never modifies the document, and it is the
// only place in this module that talks to the YAML parser directly.
package yamldoc

import (
	"strings"

	goyamlast "github.com/goccy/go-yaml/ast"
)

// Kind is the shape of a Node, mirroring the YAML node kinds the
// evaluator distinguishes between.
type Kind uint8

const (
	Scalar Kind = iota
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Node is a position in a loaded YAML document. Node identity (pointer
// equality) is stable: the same document position always yields the same
// *Node, which is what lets the result set dedup by identity.
type Node struct {
	raw    goyamlast.Node
	parent *Node
	doc    *Document

	// alias is set for a node that occurred as a YAML alias (*name); the
	// node behaves exactly like its alias target for everything except
	// Parent, which stays the occurrence point, not the anchor's.
	alias *Node

	kind Kind

	// populated for Mapping nodes, document order preserved.
	entries []mapEntry
	// populated for Sequence nodes.
	items []*Node
}

type mapEntry struct {
	key   goyamlast.Node
	value *Node
}

func (n *Node) resolved() *Node {
	if n.alias != nil {
		return n.alias.resolved()
	}
	return n
}

// Kind reports whether the node is a scalar, sequence, or mapping.
func (n *Node) Kind() Kind {
	return n.resolved().kind
}

// ScalarText returns the node's textual value with surrounding quotes
// stripped. It returns "" for a non-scalar node.
func (n *Node) ScalarText() string {
	r := n.resolved()
	if r.kind != Scalar || r.raw == nil {
		return ""
	}
	return unquote(r.raw.String())
}

// String renders the node's underlying YAML text, for debugging and CLI
// output of whole collection matches.
func (n *Node) String() string {
	r := n.resolved()
	if r.raw != nil {
		return r.raw.String()
	}
	if r.kind == Sequence || r.kind == Mapping {
		var b strings.Builder
		for i, c := range r.Children() {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(c.String())
		}
		return b.String()
	}
	return ""
}

// Parent returns the enclosing node, or nil at the document root.
func (n *Node) Parent() *Node {
	return n.parent
}

// DocumentRoot returns the root node of the document this node belongs to.
func (n *Node) DocumentRoot() *Node {
	return n.doc.root
}

// Anchor looks up an anchor by name in the owning document. It returns
// nil if no such anchor exists; this is not an error (spec.md §4.D).
func (n *Node) Anchor(name string) *Node {
	return n.doc.anchors[name]
}

// SequenceLen returns the number of items, or 0 if this is not a sequence.
func (n *Node) SequenceLen() int {
	r := n.resolved()
	if r.kind != Sequence {
		return 0
	}
	return len(r.items)
}

// SequenceItem returns the i-th item (0-based), or nil if out of range or
// this is not a sequence.
func (n *Node) SequenceItem(i int) *Node {
	r := n.resolved()
	if r.kind != Sequence || i < 0 || i >= len(r.items) {
		return nil
	}
	return r.items[i]
}

// MappingValueBySimpleKey looks up the value whose key is the plain
// scalar key. It returns nil if this is not a mapping or no entry matches.
func (n *Node) MappingValueBySimpleKey(key []byte) *Node {
	r := n.resolved()
	if r.kind != Mapping {
		return nil
	}
	want := string(key)
	for _, e := range r.entries {
		if text, ok := plainScalarText(e.key); ok && text == want {
			return e.value
		}
	}
	return nil
}

// MappingValueByKey looks up the value whose key structurally equals the
// parsed fragment (a flow scalar, sequence, or mapping key).
func (n *Node) MappingValueByKey(fragment goyamlast.Node) *Node {
	r := n.resolved()
	if r.kind != Mapping {
		return nil
	}
	for _, e := range r.entries {
		if nodeEqual(e.key, fragment) {
			return e.value
		}
	}
	return nil
}

// Children returns every immediate child: sequence items in order, or
// mapping values in entry order. A scalar has no children.
func (n *Node) Children() []*Node {
	r := n.resolved()
	switch r.kind {
	case Sequence:
		out := make([]*Node, len(r.items))
		copy(out, r.items)
		return out
	case Mapping:
		out := make([]*Node, len(r.entries))
		for i, e := range r.entries {
			out[i] = e.value
		}
		return out
	default:
		return nil
	}
}

// plainScalarText returns the scalar's textual value with surrounding
// quotes stripped, for comparison against a simple (unquoted) key.
func plainScalarText(raw goyamlast.Node) (string, bool) {
	switch raw.Type() {
	case goyamlast.StringType, goyamlast.IntegerType, goyamlast.FloatType, goyamlast.BoolType:
		return unquote(raw.String()), true
	default:
		return "", false
	}
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// nodeEqual compares two key fragments structurally. Exact type equality
// is required; beyond that, nodes are compared by their canonical textual
// rendering, which is sufficient for the quoted-string and flow {}/[] key
// forms this module supports.
func nodeEqual(a, b goyamlast.Node) bool {
	if a.Type() != b.Type() {
		return false
	}
	return strings.TrimSpace(a.String()) == strings.TrimSpace(b.String())
}
