// Package ast defines the path-expression tree the parser builds and the
// evaluator walks: spec.md §3's Expr/ExprKind data model.
package ast

import (
	goyamlast "github.com/goccy/go-yaml/ast"
)

// Kind tags an Expr node. The 17 variants are closed; adding one is a
// breaking change (spec.md §9).
type Kind uint8

const (
	Root Kind = iota
	This
	Parent
	EveryChild
	EveryChildRecursive
	EveryLeaf
	AssertCollection
	AssertScalar
	AssertSequence
	AssertMapping
	SimpleMapKey
	MapKey
	Alias
	SeqIndex
	SeqSlice
	Multi
	Chain
)

func (k Kind) String() string {
	switch k {
	case Root:
		return "Root"
	case This:
		return "This"
	case Parent:
		return "Parent"
	case EveryChild:
		return "EveryChild"
	case EveryChildRecursive:
		return "EveryChildRecursive"
	case EveryLeaf:
		return "EveryLeaf"
	case AssertCollection:
		return "AssertCollection"
	case AssertScalar:
		return "AssertScalar"
	case AssertSequence:
		return "AssertSequence"
	case AssertMapping:
		return "AssertMapping"
	case SimpleMapKey:
		return "SimpleMapKey"
	case MapKey:
		return "MapKey"
	case Alias:
		return "Alias"
	case SeqIndex:
		return "SeqIndex"
	case SeqSlice:
		return "SeqSlice"
	case Multi:
		return "Multi"
	case Chain:
		return "Chain"
	default:
		return "Unknown"
	}
}

// SliceOpenEnd is the "∞" sentinel for SeqSlice's end bound ("to end").
const SliceOpenEnd = -1

// Span is a byte-offset range into the original path expression text.
type Span struct {
	Start int
	End   int
}

// Expr is a node in the immutable-after-build expression tree. Only
// fields relevant to Kind are meaningful; see the per-kind comments on
// the fields below.
type Expr struct {
	Kind     Kind
	Span     Span
	Children []*Expr

	Name       []byte         // SimpleMapKey, Alias
	KeyDoc     goyamlast.Node // MapKey: parsed flow-key fragment, owned by this Expr
	Index      int            // SeqIndex
	SliceStart int            // SeqSlice
	SliceEnd   int            // SeqSlice; SliceOpenEnd means "to end"
}

// Leaf constructors. Operands never have children (spec.md §3 invariant).

func NewRoot(span Span) *Expr    { return &Expr{Kind: Root, Span: span} }
func NewThis(span Span) *Expr    { return &Expr{Kind: This, Span: span} }
func NewParent(span Span) *Expr  { return &Expr{Kind: Parent, Span: span} }
func NewEveryChild(span Span) *Expr          { return &Expr{Kind: EveryChild, Span: span} }
func NewEveryChildRecursive(span Span) *Expr { return &Expr{Kind: EveryChildRecursive, Span: span} }
func NewEveryLeaf(span Span) *Expr           { return &Expr{Kind: EveryLeaf, Span: span} }

func NewAssertCollection(span Span) *Expr { return &Expr{Kind: AssertCollection, Span: span} }
func NewAssertScalar(span Span) *Expr     { return &Expr{Kind: AssertScalar, Span: span} }
func NewAssertSequence(span Span) *Expr   { return &Expr{Kind: AssertSequence, Span: span} }
func NewAssertMapping(span Span) *Expr    { return &Expr{Kind: AssertMapping, Span: span} }

func NewSimpleMapKey(span Span, name []byte) *Expr {
	return &Expr{Kind: SimpleMapKey, Span: span, Name: name}
}

func NewMapKey(span Span, keyDoc goyamlast.Node) *Expr {
	return &Expr{Kind: MapKey, Span: span, KeyDoc: keyDoc}
}

func NewAlias(span Span, name []byte) *Expr {
	return &Expr{Kind: Alias, Span: span, Name: name}
}

func NewSeqIndex(span Span, i int) *Expr {
	return &Expr{Kind: SeqIndex, Span: span, Index: i}
}

func NewSeqSlice(span Span, start, end int) *Expr {
	return &Expr{Kind: SeqSlice, Span: span, SliceStart: start, SliceEnd: end}
}

// IsOperand reports whether k is a leaf operand kind (never has children
// except via explicit composition into Chain/Multi by the parser).
func (k Kind) IsOperand() bool {
	return k != Multi && k != Chain
}

// IsMapKey reports whether k is one of the two map-key-lookup kinds, the
// only operands the sibling (":") operator accepts.
func (k Kind) IsMapKey() bool {
	return k == SimpleMapKey || k == MapKey
}

// Union returns the smallest span covering both a and b.
func Union(a, b Span) Span {
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return Span{Start: start, End: end}
}
