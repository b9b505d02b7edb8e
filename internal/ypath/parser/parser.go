// Package parser implements the two-stack shunting-yard driver that turns
// a lexer.Token stream into an *ast.Expr tree (spec.md §4.C).
package parser

import (
	"errors"
	"fmt"

	"github.com/goyamlpath/ypath/internal/diagnostics"
	"github.com/goyamlpath/ypath/internal/stack"
	"github.com/goyamlpath/ypath/internal/ypath/ast"
	"github.com/goyamlpath/ypath/internal/ypath/lexer"
)

// Parser drives a Lexer through the shunting-yard algorithm.
type Parser struct {
	lex  *lexer.Lexer
	sink diagnostics.Sink
}

// New creates a Parser over path.
func New(path string) *Parser {
	return &Parser{lex: lexer.New(path)}
}

// WithSink attaches a diagnostics sink shared by the lexer and parser.
func (p *Parser) WithSink(sink diagnostics.Sink) *Parser {
	p.sink = sink
	p.lex = p.lex.WithSink(sink)
	return p
}

// Parse compiles path into an expression tree in one call.
func Parse(path string) (*ast.Expr, error) {
	return New(path).Parse()
}

// Parse runs the driver to completion and returns the single resulting
// expression tree, or an error identifying the first problem found.
func (p *Parser) Parse() (*ast.Expr, error) {
	start, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	if start.Type != lexer.StreamStart {
		return nil, fmt.Errorf("%w: expected start of stream", ErrSyntax)
	}

	operators := stack.New[lexer.Token]()
	operands := stack.New[*ast.Expr]()

	for {
		tok, err := p.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.StreamEnd {
			break
		}

		if tok.Type.IsOperand() {
			leaf, err := leafFor(tok)
			if err != nil {
				return nil, err
			}
			operands.Push(leaf)
			continue
		}

		prec := precedence(tok.Type)
		for {
			top, ok := operators.Peek()
			if !ok || precedence(top.Type) < prec {
				break
			}
			operators.Pop()
			result, err := evaluate(top, operands)
			if err != nil {
				return nil, p.report(err, top)
			}
			operands.Push(result)
		}
		operators.Push(tok)
	}

	for {
		top, ok := operators.Pop()
		if !ok {
			break
		}
		result, err := evaluate(top, operands)
		if err != nil {
			return nil, p.report(err, top)
		}
		operands.Push(result)
	}

	if operands.Size() != 1 {
		return nil, fmt.Errorf("%w: expression reduces to %d results, want 1", ErrSyntax, operands.Size())
	}
	result, _ := operands.Pop()
	return result, nil
}

func (p *Parser) report(err error, tok lexer.Token) error {
	if p.sink != nil {
		code := diagnostics.CodePathUnsupported
		if errors.Is(err, ErrSyntax) {
			code = diagnostics.CodePathSyntax
		}
		p.sink.Report(diagnostics.Diagnostic{
			Code:     code,
			Stage:    diagnostics.StageParser,
			Severity: diagnostics.SeverityError,
			Span:     diagnostics.Span{Start: tok.Span.Start, End: tok.Span.End},
			Message:  err.Error(),
		})
	}
	return err
}

// leafFor converts one operand token into its leaf Expr.
func leafFor(tok lexer.Token) (*ast.Expr, error) {
	span := ast.Span{Start: tok.Span.Start, End: tok.Span.End}
	switch tok.Type {
	case lexer.Root:
		return ast.NewRoot(span), nil
	case lexer.This:
		return ast.NewThis(span), nil
	case lexer.Parent:
		return ast.NewParent(span), nil
	case lexer.EveryChild:
		return ast.NewEveryChild(span), nil
	case lexer.EveryChildR:
		return ast.NewEveryChildRecursive(span), nil
	case lexer.Alias:
		return ast.NewAlias(span, tok.Name), nil
	case lexer.MapKeySimple:
		return ast.NewSimpleMapKey(span, tok.Name), nil
	case lexer.MapKeyFlow:
		return ast.NewMapKey(span, tok.KeyDoc), nil
	case lexer.SeqIndex:
		return ast.NewSeqIndex(span, tok.Int), nil
	case lexer.SeqSlice:
		// Open Question resolution (spec.md §9 EXPANSION): the only
		// compile-time rejection is a negative start. A start at or
		// past a finite end is accepted and simply matches nothing.
		if tok.SliceStart < 0 {
			return nil, fmt.Errorf("%w: slice start %d must be >= 0", ErrUnsupported, tok.SliceStart)
		}
		end := ast.SliceOpenEnd
		if tok.SliceEnd != lexer.SliceOpenEnd {
			end = tok.SliceEnd
		}
		return ast.NewSeqSlice(span, tok.SliceStart, end), nil
	default:
		return nil, fmt.Errorf("%w: %s is not an operand", ErrUnsupported, tok.Type)
	}
}
