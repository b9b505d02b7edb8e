// Package eval walks a compiled expression tree against a loaded document
// node and accumulates an ordered, deduplicated set of matches
// (spec.md §4.D).
package eval

import (
	"github.com/goyamlpath/ypath/internal/results"
	"github.com/goyamlpath/ypath/internal/stack"
	"github.com/goyamlpath/ypath/internal/yamldoc"
	"github.com/goyamlpath/ypath/internal/ypath/ast"
)

// Eval applies expr to node and returns every node it matched, in
// first-occurrence order with duplicates removed by identity. Given a nil
// node it returns the empty set.
func Eval(expr *ast.Expr, node *yamldoc.Node) *results.NodeSet {
	out := results.New(0)
	evalInto(expr, node, out)
	return out
}

func evalInto(expr *ast.Expr, node *yamldoc.Node, out *results.NodeSet) {
	if node == nil {
		return
	}
	switch expr.Kind {
	case ast.EveryChild:
		evalEveryChild(node, out)
	case ast.EveryChildRecursive:
		evalEveryChildRecursive(node, out)
	case ast.EveryLeaf:
		evalEveryLeaf(node, out)
	case ast.SeqSlice:
		evalSeqSlice(expr, node, out)
	case ast.Chain:
		evalChain(expr, node, out)
	case ast.Multi:
		evalMulti(expr, node, out)
	default:
		if result := evalSingle(expr, node); result != nil {
			out.Add(result)
		}
	}
}

// evalSingle implements every single-result operator: it maps one input
// node to zero or one output node.
func evalSingle(expr *ast.Expr, node *yamldoc.Node) *yamldoc.Node {
	switch expr.Kind {
	case ast.Root:
		return node.DocumentRoot()
	case ast.This:
		return node
	case ast.Parent:
		return node.Parent()
	case ast.Alias:
		return node.Anchor(string(expr.Name))
	case ast.SimpleMapKey:
		if node.Kind() != yamldoc.Mapping {
			return nil
		}
		return node.MappingValueBySimpleKey(expr.Name)
	case ast.MapKey:
		if node.Kind() != yamldoc.Mapping {
			return nil
		}
		return node.MappingValueByKey(expr.KeyDoc)
	case ast.SeqIndex:
		// Negative indices never match (spec.md §9 design note: no
		// wrap-around, preserved deliberately as an open question).
		if expr.Index < 0 || node.Kind() != yamldoc.Sequence {
			return nil
		}
		return node.SequenceItem(expr.Index)
	case ast.AssertScalar:
		if node.Kind() == yamldoc.Scalar {
			return node
		}
		return nil
	case ast.AssertCollection:
		if node.Kind() != yamldoc.Scalar {
			return node
		}
		return nil
	case ast.AssertSequence:
		if node.Kind() == yamldoc.Sequence {
			return node
		}
		return nil
	case ast.AssertMapping:
		if node.Kind() == yamldoc.Mapping {
			return node
		}
		return nil
	default:
		return nil
	}
}

func evalEveryChild(node *yamldoc.Node, out *results.NodeSet) {
	if node.Kind() == yamldoc.Scalar {
		out.Add(node)
		return
	}
	for _, c := range node.Children() {
		out.Add(c)
	}
}

// evalEveryChildRecursive walks node pre-order with an explicit work stack
// rather than climbing or recursing through parent pointers (spec.md §9
// "Cyclic ownership"): push a node's children in reverse so the leftmost
// is popped next, which reproduces depth-first pre-order.
func evalEveryChildRecursive(node *yamldoc.Node, out *results.NodeSet) {
	work := stack.New[*yamldoc.Node]()
	work.Push(node)
	for {
		n, ok := work.Pop()
		if !ok {
			break
		}
		out.Add(n)
		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			work.Push(children[i])
		}
	}
}

// evalEveryLeaf is the same traversal as evalEveryChildRecursive, emitting
// only scalar nodes.
func evalEveryLeaf(node *yamldoc.Node, out *results.NodeSet) {
	work := stack.New[*yamldoc.Node]()
	work.Push(node)
	for {
		n, ok := work.Pop()
		if !ok {
			break
		}
		if n.Kind() == yamldoc.Scalar {
			out.Add(n)
		}
		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			work.Push(children[i])
		}
	}
}

// evalSeqSlice implements the clamp rule from spec.md §9's Open Question
// resolution: e' = min(len, e) when e is finite, else len; nothing matches
// when s >= e' or s >= len.
func evalSeqSlice(expr *ast.Expr, node *yamldoc.Node, out *results.NodeSet) {
	if node.Kind() != yamldoc.Sequence {
		return
	}
	length := node.SequenceLen()
	end := length
	if expr.SliceEnd != ast.SliceOpenEnd && expr.SliceEnd < end {
		end = expr.SliceEnd
	}
	start := expr.SliceStart
	if start >= end || start >= length {
		return
	}
	for i := start; i < end; i++ {
		out.Add(node.SequenceItem(i))
	}
}

// evalChain applies each stage to every node the previous stage produced,
// accumulating the frontier into a fresh set between stages.
func evalChain(expr *ast.Expr, node *yamldoc.Node, out *results.NodeSet) {
	frontier := results.New(1)
	frontier.Add(node)
	for _, stage := range expr.Children {
		next := results.New(0)
		for _, n := range frontier.Nodes() {
			evalInto(stage, n, next)
		}
		frontier = next
	}
	out.AddAll(frontier)
}

// evalMulti evaluates every child against the same input node and unions
// the results, deduplicated by identity in children order.
func evalMulti(expr *ast.Expr, node *yamldoc.Node, out *results.NodeSet) {
	for _, child := range expr.Children {
		evalInto(child, node, out)
	}
}
