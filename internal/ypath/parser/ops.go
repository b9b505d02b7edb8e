package parser

import (
	"fmt"

	"github.com/goyamlpath/ypath/internal/stack"
	"github.com/goyamlpath/ypath/internal/ypath/ast"
	"github.com/goyamlpath/ypath/internal/ypath/lexer"
)

// precedence returns an operator's binding strength (spec.md §4.C): higher
// binds tighter. Operand tokens have no entry and are never looked up here.
func precedence(t lexer.Type) int {
	switch t {
	case lexer.Sibling:
		return 20
	case lexer.Comma:
		return 15
	case lexer.Slash:
		return 10
	case lexer.ScalarFilter, lexer.CollectionFilter, lexer.SeqFilter, lexer.MapFilter:
		return 5
	default:
		return 0
	}
}

// evaluate pops the operands an operator token needs off operands and
// pushes back the single Expr it reduces to.
func evaluate(tok lexer.Token, operands *stack.Stack[*ast.Expr]) (*ast.Expr, error) {
	switch {
	case tok.Type == lexer.Slash:
		return evalSlash(tok, operands)
	case tok.Type == lexer.Comma:
		return evalComma(tok, operands)
	case tok.Type == lexer.Sibling:
		return evalSibling(tok, operands)
	case tok.Type.IsFilter():
		return evalFilter(tok, operands)
	default:
		return nil, fmt.Errorf("%w: %s is not an operator", ErrUnsupported, tok.Type)
	}
}

// evalSlash implements the SLASH pop-and-evaluate rule. SLASH pops one
// operand unconditionally; whether a second is available, and the slash's
// span relative to the one it found, decides which of the four forms
// applies:
//
//   - neither operand pushed yet (bare "/", the whole path): both
//     syntheses apply at once, Chain[Root, AssertCollection] — the root,
//     asserted to be a collection.
//   - one operand, slash precedes it ("/foo"): synthesize Root as the
//     missing left side.
//   - one operand, slash follows it ("foo/", a trailing slash): synthesize
//     AssertCollection as the missing right side.
//   - both present: a normal binary step of the chain.
func evalSlash(tok lexer.Token, operands *stack.Stack[*ast.Expr]) (*ast.Expr, error) {
	right, ok := operands.Pop()
	if !ok {
		root := ast.NewRoot(ast.Span{Start: tok.Span.Start, End: tok.Span.Start})
		assertColl := ast.NewAssertCollection(ast.Span{Start: tok.Span.End, End: tok.Span.End})
		return chain(root, assertColl), nil
	}

	left, ok := operands.Pop()
	if !ok {
		if tok.Span.Start < right.Span.Start {
			root := ast.NewRoot(ast.Span{Start: tok.Span.Start, End: tok.Span.Start})
			return chain(root, right), nil
		}
		assertColl := ast.NewAssertCollection(ast.Span{Start: tok.Span.End, End: tok.Span.End})
		return chain(right, assertColl), nil
	}

	return chain(left, right), nil
}

// evalComma implements the COMMA pop-and-evaluate rule: a plain binary
// combine into Multi, flattening any Multi operand it finds.
func evalComma(tok lexer.Token, operands *stack.Stack[*ast.Expr]) (*ast.Expr, error) {
	right, rightOK := operands.Pop()
	left, leftOK := operands.Pop()
	if !rightOK || !leftOK {
		return nil, fmt.Errorf("%w: comma at %d is missing an operand", ErrSyntax, tok.Span.Start)
	}
	return multi(left, right), nil
}

// evalSibling implements the SIBLING ":" prefix rule: its one operand must
// be a map-key lookup, and the result is Chain[Parent, operand].
func evalSibling(tok lexer.Token, operands *stack.Stack[*ast.Expr]) (*ast.Expr, error) {
	operand, ok := operands.Pop()
	if !ok {
		return nil, fmt.Errorf("%w: sibling at %d is missing its operand", ErrSyntax, tok.Span.Start)
	}
	if !operand.Kind.IsMapKey() {
		return nil, fmt.Errorf("%w: sibling operator requires a map-key operand, got %s", ErrUnsupported, operand.Kind)
	}
	parent := ast.NewParent(ast.Span{Start: tok.Span.Start, End: tok.Span.Start})
	return chain(parent, operand), nil
}

// evalFilter implements the suffix "*_FILTER" rule: its one operand gains
// an AssertXxx leaf appended to its chain (or becomes a new two-element
// chain if it was a plain leaf). A bare filter with nothing pushed yet
// (e.g. the whole path is just "[]") stands for the assertion alone,
// much as a bare SLASH is synthesized into Chain[Root, AssertCollection]
// instead of failing.
func evalFilter(tok lexer.Token, operands *stack.Stack[*ast.Expr]) (*ast.Expr, error) {
	assertion := assertForFilter(tok)
	operand, ok := operands.Pop()
	if !ok {
		return assertion, nil
	}
	return chain(operand, assertion), nil
}

func assertForFilter(tok lexer.Token) *ast.Expr {
	span := ast.Span{Start: tok.Span.Start, End: tok.Span.End}
	switch tok.Type {
	case lexer.ScalarFilter:
		return ast.NewAssertScalar(span)
	case lexer.SeqFilter:
		return ast.NewAssertSequence(span)
	case lexer.MapFilter:
		return ast.NewAssertMapping(span)
	default: // lexer.CollectionFilter
		return ast.NewAssertCollection(span)
	}
}

// chain composes left and right into a Chain, flattening either side that
// is already a Chain rather than nesting (spec.md §3 invariant: Chain
// never contains a Chain child).
func chain(left, right *ast.Expr) *ast.Expr {
	children := make([]*ast.Expr, 0, 2)
	if left.Kind == ast.Chain {
		children = append(children, left.Children...)
	} else {
		children = append(children, left)
	}
	if right.Kind == ast.Chain {
		children = append(children, right.Children...)
	} else {
		children = append(children, right)
	}
	return &ast.Expr{Kind: ast.Chain, Span: ast.Union(left.Span, right.Span), Children: children}
}

// multi composes left and right into a Multi, flattening either side that
// is already a Multi (spec.md §3 invariant: Multi never contains a Multi
// child).
func multi(left, right *ast.Expr) *ast.Expr {
	children := make([]*ast.Expr, 0, 2)
	if left.Kind == ast.Multi {
		children = append(children, left.Children...)
	} else {
		children = append(children, left)
	}
	if right.Kind == ast.Multi {
		children = append(children, right.Children...)
	} else {
		children = append(children, right)
	}
	return &ast.Expr{Kind: ast.Multi, Span: ast.Union(left.Span, right.Span), Children: children}
}
