// Package ypath is the public facade over the path-expression engine:
// compile once, evaluate many times against one or more loaded documents
// (spec.md §6 Surface API).
package ypath

import (
	"fmt"

	"github.com/goyamlpath/ypath/internal/diagnostics"
	"github.com/goyamlpath/ypath/internal/results"
	"github.com/goyamlpath/ypath/internal/yamldoc"
	"github.com/goyamlpath/ypath/internal/ypath/ast"
	"github.com/goyamlpath/ypath/internal/ypath/eval"
	"github.com/goyamlpath/ypath/internal/ypath/parser"
)

// Expr is a compiled path expression, safe to share read-only across
// goroutines for concurrent Eval calls (spec.md §5).
type Expr = ast.Expr

// NodeSet is the ordered, deduplicated result of an Eval call.
type NodeSet = results.NodeSet

// Document is a loaded YAML document to evaluate expressions against.
type Document = yamldoc.Document

// Node is a position within a Document.
type Node = yamldoc.Node

// Compile parses path into an expression tree.
func Compile(path string) (*Expr, error) {
	return parser.Parse(path)
}

// CompileWithDiagnostics is Compile, additionally reporting lexical and
// syntactic diagnostics to sink as compilation proceeds.
func CompileWithDiagnostics(path string, sink diagnostics.Sink) (*Expr, error) {
	return parser.New(path).WithSink(sink).Parse()
}

// MustCompile is Compile, panicking on error. Intended for tests and
// expressions known at compile time, not for paths read from input.
func MustCompile(path string) *Expr {
	expr, err := Compile(path)
	if err != nil {
		panic(fmt.Sprintf("ypath: MustCompile(%q): %v", path, err))
	}
	return expr
}

// LoadDocument parses a single YAML document from data.
func LoadDocument(data []byte) (*Document, error) {
	return yamldoc.LoadBytes(data)
}

// Eval applies expr to node, returning every matched node in
// first-occurrence order, deduplicated by identity.
func Eval(expr *Expr, node *Node) *NodeSet {
	return eval.Eval(expr, node)
}

// EvalPath compiles path and evaluates it against node in one call.
func EvalPath(path string, node *Node) (*NodeSet, error) {
	expr, err := Compile(path)
	if err != nil {
		return nil, err
	}
	return Eval(expr, node), nil
}
