package parser

import (
	"errors"
	"testing"

	"github.com/goyamlpath/ypath/internal/ypath/ast"
)

func TestParseLeaves(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		kind ast.Kind
	}{
		{"^", ast.Root},
		{".", ast.This},
		{"..", ast.Parent},
		{"*", ast.EveryChild},
		{"**", ast.EveryChildRecursive},
		{"[]", ast.AssertSequence},
		{"{}", ast.AssertMapping},
		{"$", ast.AssertScalar},
		{"%", ast.AssertCollection},
		{"*anchor", ast.Alias},
		{"foo", ast.SimpleMapKey},
		{"0", ast.SeqIndex},
		{"-1", ast.SeqIndex},
		{"0:3", ast.SeqSlice},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.path)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.path, err)
			}
			if got.Kind != tt.kind {
				t.Fatalf("Parse(%q).Kind = %s, want %s", tt.path, got.Kind, tt.kind)
			}
		})
	}
}

func TestParseLeadingSlashSynthesizesRoot(t *testing.T) {
	t.Parallel()

	got, err := Parse("/foo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.Chain {
		t.Fatalf("Kind = %s, want Chain", got.Kind)
	}
	if len(got.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(got.Children))
	}
	if got.Children[0].Kind != ast.Root {
		t.Fatalf("Children[0].Kind = %s, want Root", got.Children[0].Kind)
	}
	if got.Children[1].Kind != ast.SimpleMapKey {
		t.Fatalf("Children[1].Kind = %s, want SimpleMapKey", got.Children[1].Kind)
	}
}

func TestParseTrailingSlashSynthesizesAssertCollection(t *testing.T) {
	t.Parallel()

	got, err := Parse("foo/")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.Chain || len(got.Children) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got.Children[0].Kind != ast.SimpleMapKey {
		t.Fatalf("Children[0].Kind = %s, want SimpleMapKey", got.Children[0].Kind)
	}
	if got.Children[1].Kind != ast.AssertCollection {
		t.Fatalf("Children[1].Kind = %s, want AssertCollection", got.Children[1].Kind)
	}
}

func TestParseBareSlashAssertsRootCollection(t *testing.T) {
	t.Parallel()

	got, err := Parse("/")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.Chain || len(got.Children) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got.Children[0].Kind != ast.Root {
		t.Fatalf("Children[0].Kind = %s, want Root", got.Children[0].Kind)
	}
	if got.Children[1].Kind != ast.AssertCollection {
		t.Fatalf("Children[1].Kind = %s, want AssertCollection", got.Children[1].Kind)
	}
}

func TestParseChainFlattens(t *testing.T) {
	t.Parallel()

	got, err := Parse("foo/bar/baz")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.Chain {
		t.Fatalf("Kind = %s, want Chain", got.Kind)
	}
	if len(got.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(got.Children))
	}
	for i, want := range []ast.Kind{ast.SimpleMapKey, ast.SimpleMapKey, ast.SimpleMapKey} {
		if got.Children[i].Kind != want {
			t.Fatalf("Children[%d].Kind = %s, want %s", i, got.Children[i].Kind, want)
		}
	}
}

func TestParseCommaFlattensIntoMulti(t *testing.T) {
	t.Parallel()

	got, err := Parse("a,b,c")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.Multi {
		t.Fatalf("Kind = %s, want Multi", got.Kind)
	}
	if len(got.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(got.Children))
	}
	for _, child := range got.Children {
		if child.Kind == ast.Multi {
			t.Fatalf("nested Multi found in %+v", got)
		}
	}
}

func TestParseSiblingProducesParentChain(t *testing.T) {
	t.Parallel()

	got, err := Parse(":foo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.Chain || len(got.Children) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got.Children[0].Kind != ast.Parent {
		t.Fatalf("Children[0].Kind = %s, want Parent", got.Children[0].Kind)
	}
	if got.Children[1].Kind != ast.SimpleMapKey {
		t.Fatalf("Children[1].Kind = %s, want SimpleMapKey", got.Children[1].Kind)
	}
}

func TestParseSiblingRejectsNonMapKeyOperand(t *testing.T) {
	t.Parallel()

	_, err := Parse(":0")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestParseFilterAppendsToChain(t *testing.T) {
	t.Parallel()

	got, err := Parse("foo/bar$")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.Chain {
		t.Fatalf("Kind = %s, want Chain", got.Kind)
	}
	if len(got.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(got.Children))
	}
	if got.Children[2].Kind != ast.AssertScalar {
		t.Fatalf("last child Kind = %s, want AssertScalar", got.Children[2].Kind)
	}
}

func TestParseFilterOnBareLeafMakesTwoElementChain(t *testing.T) {
	t.Parallel()

	got, err := Parse("foo%")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.Chain || len(got.Children) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got.Children[1].Kind != ast.AssertCollection {
		t.Fatalf("Children[1].Kind = %s, want AssertCollection", got.Children[1].Kind)
	}
}

func TestParseOpenEndedSlice(t *testing.T) {
	t.Parallel()

	got, err := Parse("2:")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.SeqSlice {
		t.Fatalf("Kind = %s, want SeqSlice", got.Kind)
	}
	if got.SliceStart != 2 || got.SliceEnd != ast.SliceOpenEnd {
		t.Fatalf("got start=%d end=%d", got.SliceStart, got.SliceEnd)
	}
}

func TestParseSliceAtOrPastEndIsAcceptedAtCompileTime(t *testing.T) {
	t.Parallel()

	// Open Question resolution: only a negative start is rejected here;
	// a start >= a finite end is left to the evaluator to resolve to an
	// empty match rather than a compile error.
	got, err := Parse("5:3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.SliceStart != 5 || got.SliceEnd != 3 {
		t.Fatalf("got start=%d end=%d", got.SliceStart, got.SliceEnd)
	}
}

func TestParseMixedOperatorPrecedence(t *testing.T) {
	t.Parallel()

	// Sibling binds tighter than comma, which binds tighter than slash
	// does not apply within one path segment, but comma over two sibling
	// expressions must flatten into one Multi of two Chains.
	got, err := Parse(":a,:b")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.Multi || len(got.Children) != 2 {
		t.Fatalf("got %+v", got)
	}
	for _, child := range got.Children {
		if child.Kind != ast.Chain {
			t.Fatalf("child.Kind = %s, want Chain", child.Kind)
		}
	}
}

func TestParseRecursiveDescentFilter(t *testing.T) {
	t.Parallel()

	got, err := Parse("/**/name")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.Chain {
		t.Fatalf("Kind = %s, want Chain", got.Kind)
	}
	want := []ast.Kind{ast.Root, ast.EveryChildRecursive, ast.SimpleMapKey}
	if len(got.Children) != len(want) {
		t.Fatalf("len(Children) = %d, want %d", len(got.Children), len(want))
	}
	for i, k := range want {
		if got.Children[i].Kind != k {
			t.Fatalf("Children[%d].Kind = %s, want %s", i, got.Children[i].Kind, k)
		}
	}
}

func TestParseFlowMapKey(t *testing.T) {
	t.Parallel()

	got, err := Parse(`["a-b"]`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind != ast.MapKey {
		t.Fatalf("Kind = %s, want MapKey", got.Kind)
	}
	if got.KeyDoc == nil {
		t.Fatal("KeyDoc is nil")
	}
}

func TestParseNegativeNumberLexesAsIndexNotSlice(t *testing.T) {
	t.Parallel()

	// A leading '-' makes the lexer emit SEQ_INDEX rather than SEQ_SLICE
	// (slices require a non-negative start immediately before ':'), so
	// "-1:3" is SEQ_INDEX(-1) SIBLING SEQ_INDEX(3), and the sibling
	// operator then rejects its non-map-key operand.
	_, err := Parse("-1:3")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestParseErrorWrapsSentinel(t *testing.T) {
	t.Parallel()

	_, err := Parse(",")
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("err = %v, want ErrSyntax", err)
	}
}
