// Package results holds the evaluator's output type: an ordered,
// identity-deduplicated set of matched document nodes (spec.md §3
// component E).
package results

import "github.com/goyamlpath/ypath/internal/yamldoc"

// NodeSet collects the nodes a path expression matched, preserving first-
// seen order and dropping anything already present by pointer identity.
// The zero value is ready to use.
type NodeSet struct {
	order []*yamldoc.Node
	seen  map[*yamldoc.Node]struct{}
}

// New returns an empty NodeSet with room for capacity matches before it
// needs to grow.
func New(capacity int) *NodeSet {
	return &NodeSet{
		order: make([]*yamldoc.Node, 0, capacity),
		seen:  make(map[*yamldoc.Node]struct{}, capacity),
	}
}

// Add appends n if it is not already present, by pointer identity. It
// reports whether n was newly added.
func (s *NodeSet) Add(n *yamldoc.Node) bool {
	if n == nil {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[*yamldoc.Node]struct{})
	}
	if _, ok := s.seen[n]; ok {
		return false
	}
	s.seen[n] = struct{}{}
	s.order = append(s.order, n)
	return true
}

// AddAll appends every node in other not already present in s, preserving
// other's order.
func (s *NodeSet) AddAll(other *NodeSet) {
	for _, n := range other.order {
		s.Add(n)
	}
}

// Nodes returns the matched nodes in first-seen order. The slice is owned
// by the NodeSet; callers must not mutate it.
func (s *NodeSet) Nodes() []*yamldoc.Node {
	return s.order
}

// Len reports the number of distinct matches.
func (s *NodeSet) Len() int {
	return len(s.order)
}

// Reset clears the set for reuse without reallocating its backing storage.
func (s *NodeSet) Reset() {
	s.order = s.order[:0]
	for k := range s.seen {
		delete(s.seen, k)
	}
}
