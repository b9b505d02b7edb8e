package lexer

import goyamlast "github.com/goccy/go-yaml/ast"

// Type identifies a lexical token kind (spec.md §4.B).
type Type uint8

const (
	StreamStart Type = iota
	StreamEnd
	Slash
	Root
	This
	Parent
	EveryChild
	EveryChildR
	Alias
	ScalarFilter
	CollectionFilter
	SeqFilter
	MapFilter
	Sibling
	Comma
	MapKeySimple
	MapKeyFlow
	SeqIndex
	SeqSlice
)

func (t Type) String() string {
	names := map[Type]string{
		StreamStart:      "STREAM_START",
		StreamEnd:        "STREAM_END",
		Slash:            "SLASH",
		Root:             "ROOT",
		This:             "THIS",
		Parent:           "PARENT",
		EveryChild:       "EVERY_CHILD",
		EveryChildR:      "EVERY_CHILD_R",
		Alias:            "ALIAS",
		ScalarFilter:     "SCALAR_FILTER",
		CollectionFilter: "COLLECTION_FILTER",
		SeqFilter:        "SEQ_FILTER",
		MapFilter:        "MAP_FILTER",
		Sibling:          "SIBLING",
		Comma:            "COMMA",
		MapKeySimple:     "MAP_KEY",
		MapKeyFlow:       "MAP_KEY_FLOW",
		SeqIndex:         "SEQ_INDEX",
		SeqSlice:         "SEQ_SLICE",
	}
	if n, ok := names[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// Span is a byte-offset range into the original path expression text.
type Span struct {
	Start int
	End   int
}

// Token is one lexical unit with its source span and, for payload-
// carrying kinds, its decoded value.
type Token struct {
	Type Type
	Span Span

	// MapKeySimple and Alias payload.
	Name []byte
	// MapKeyFlow payload.
	KeyDoc goyamlast.Node
	// SeqIndex payload.
	Int int
	// SeqSlice payload; SliceOpenEnd marks "to end".
	SliceStart int
	SliceEnd   int
}

// SliceOpenEnd is the SeqSlice end sentinel, matching ast.SliceOpenEnd.
const SliceOpenEnd = -1

// IsOperand reports whether t introduces a leaf operand in the parser.
func (t Type) IsOperand() bool {
	switch t {
	case Root, This, Parent, EveryChild, EveryChildR, Alias, MapKeySimple, MapKeyFlow, SeqIndex, SeqSlice:
		return true
	default:
		return false
	}
}

// IsFilter reports whether t is one of the four suffix filter operators.
func (t Type) IsFilter() bool {
	switch t {
	case ScalarFilter, CollectionFilter, SeqFilter, MapFilter:
		return true
	default:
		return false
	}
}
