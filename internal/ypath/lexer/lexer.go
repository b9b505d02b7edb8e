package lexer

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/goyamlpath/ypath/internal/diagnostics"
	"github.com/goyamlpath/ypath/internal/yamldoc"
)

// Lexer converts a path expression's code-point stream into a sequence
// of typed tokens (spec.md §4.B). STREAM_START is emitted once before
// any real token; STREAM_END is emitted at end-of-input and is
// idempotent thereafter.
type Lexer struct {
	r       *reader
	sink    diagnostics.Sink
	started bool
	ended   bool
}

// New creates a Lexer over path. Diagnostics are discarded unless a sink
// is attached with WithSink.
func New(path string) *Lexer {
	return &Lexer{r: newReader([]byte(path))}
}

// WithSink attaches a diagnostics sink for lexical errors.
func (l *Lexer) WithSink(sink diagnostics.Sink) *Lexer {
	l.sink = sink
	return l
}

// Next returns the next token, or an error if the input does not begin a
// valid token at the current position.
func (l *Lexer) Next() (Token, error) {
	if !l.started {
		l.started = true
		return Token{Type: StreamStart, Span: Span{Start: l.r.pos, End: l.r.pos}}, nil
	}
	if l.ended {
		return Token{Type: StreamEnd, Span: Span{Start: l.r.pos, End: l.r.pos}}, nil
	}

	before := l.r.pos
	tok, err := l.lexOne()
	if err != nil {
		return Token{}, err
	}
	if tok.Type == StreamEnd {
		l.ended = true
		return tok, nil
	}
	if l.r.pos == before {
		return Token{}, l.errf(ErrSyntax, Span{before, before}, "out of tokens")
	}
	return tok, nil
}

func (l *Lexer) lexOne() (Token, error) {
	r := l.r
	if r.atEOF() {
		return Token{Type: StreamEnd, Span: Span{r.pos, r.pos}}, nil
	}

	c := r.peek()
	start := r.mark()

	switch {
	case c == '/':
		r.advance(1)
		return Token{Type: Slash, Span: r.span(start)}, nil
	case c == '^':
		r.advance(1)
		return Token{Type: Root, Span: r.span(start)}, nil
	case c == '.':
		if r.peekAt(1) == '.' {
			r.advance(2)
			return Token{Type: Parent, Span: r.span(start)}, nil
		}
		r.advance(1)
		return Token{Type: This, Span: r.span(start)}, nil
	case c == '*':
		return l.lexStar(start)
	case c == '$':
		r.advance(1)
		return Token{Type: ScalarFilter, Span: r.span(start)}, nil
	case c == '%':
		r.advance(1)
		return Token{Type: CollectionFilter, Span: r.span(start)}, nil
	case c == '[':
		if r.peekAt(1) == ']' {
			r.advance(2)
			return Token{Type: SeqFilter, Span: r.span(start)}, nil
		}
		return l.lexFlowKey(start)
	case c == '{':
		if r.peekAt(1) == '}' {
			r.advance(2)
			return Token{Type: MapFilter, Span: r.span(start)}, nil
		}
		return l.lexFlowKey(start)
	case c == '"' || c == '\'':
		return l.lexFlowKey(start)
	case c == ':':
		r.advance(1)
		return Token{Type: Sibling, Span: r.span(start)}, nil
	case c == ',':
		r.advance(1)
		return Token{Type: Comma, Span: r.span(start)}, nil
	case c == '-' || isDigit(c):
		return l.lexNumber(start)
	case isFirstAlpha(c):
		return l.lexIdentifier(start)
	default:
		return Token{}, l.errf(ErrSyntax, r.span(start), fmt.Sprintf("unexpected character %q", c))
	}
}

func (l *Lexer) lexStar(start mark) (Token, error) {
	r := l.r
	r.advance(1) // consume '*'
	next := r.peek()
	if next == '*' {
		r.advance(1)
		return Token{Type: EveryChildR, Span: r.span(start)}, nil
	}
	if isFirstAlpha(next) {
		nameStart := r.pos
		r.advance(1)
		for isAlnum(r.peek()) {
			r.advance(1)
		}
		name := append([]byte(nil), r.data[nameStart:r.pos]...)
		return Token{Type: Alias, Span: r.span(start), Name: name}, nil
	}
	return Token{Type: EveryChild, Span: r.span(start)}, nil
}

func (l *Lexer) lexIdentifier(start mark) (Token, error) {
	r := l.r
	nameStart := r.pos
	r.advance(1)
	for isAlnum(r.peek()) {
		r.advance(1)
	}
	name := append([]byte(nil), r.data[nameStart:r.pos]...)
	return Token{Type: MapKeySimple, Span: r.span(start), Name: name}, nil
}

func (l *Lexer) lexNumber(start mark) (Token, error) {
	r := l.r
	negative := false
	if r.peek() == '-' {
		negative = true
		r.advance(1)
	}

	digitsStart := r.pos
	for isDigit(r.peek()) {
		r.advance(1)
	}
	if r.pos == digitsStart {
		return Token{}, l.errf(ErrSyntax, r.span(start), "expected digits")
	}
	firstDigits := string(r.data[digitsStart:r.pos])
	if err := l.checkLeadingZero(firstDigits, start); err != nil {
		return Token{}, err
	}

	if !negative && r.peek() == ':' {
		startVal, err := parseInt32(firstDigits)
		if err != nil {
			return Token{}, l.errf(ErrOverflow, r.span(start), "slice start overflow")
		}
		r.advance(1) // ':'

		endVal := SliceOpenEnd
		if isDigit(r.peek()) {
			endDigitsStart := r.pos
			for isDigit(r.peek()) {
				r.advance(1)
			}
			endDigits := string(r.data[endDigitsStart:r.pos])
			if err := l.checkLeadingZero(endDigits, start); err != nil {
				return Token{}, err
			}
			v, err := parseInt32(endDigits)
			if err != nil {
				return Token{}, l.errf(ErrOverflow, r.span(start), "slice end overflow")
			}
			endVal = v
		}
		return Token{Type: SeqSlice, Span: r.span(start), SliceStart: startVal, SliceEnd: endVal}, nil
	}

	literal := firstDigits
	if negative {
		literal = "-" + literal
	}
	v, err := parseInt32(literal)
	if err != nil {
		return Token{}, l.errf(ErrOverflow, r.span(start), "index overflow")
	}
	return Token{Type: SeqIndex, Span: r.span(start), Int: v}, nil
}

func (l *Lexer) checkLeadingZero(digits string, start mark) error {
	if len(digits) > 1 && digits[0] == '0' {
		return l.errf(ErrSyntax, l.r.span(start), fmt.Sprintf("leading zero in numeric literal %q", digits))
	}
	return nil
}

func (l *Lexer) lexFlowKey(start mark) (Token, error) {
	r := l.r
	end, ok := yamldoc.ScanFlowFragment(r.remaining())
	if !ok {
		return Token{}, l.errf(ErrTruncated, r.span(start), "unterminated flow key")
	}
	raw := append([]byte(nil), r.remaining()[:end]...)
	doc, err := yamldoc.ParseFlowFragment(raw)
	if err != nil {
		return Token{}, l.errf(ErrSyntax, r.span(start), err.Error())
	}
	r.advanceBytes(end)
	return Token{Type: MapKeyFlow, Span: r.span(start), KeyDoc: doc}, nil
}

func (l *Lexer) errf(sentinel error, span Span, msg string) error {
	if l.sink != nil {
		code := diagnostics.CodePathSyntax
		switch sentinel {
		case ErrOverflow:
			code = diagnostics.CodeOverflow
		case ErrTruncated:
			code = diagnostics.CodeTruncated
		}
		l.sink.Report(diagnostics.Diagnostic{
			Code:     code,
			Stage:    diagnostics.StageLexer,
			Severity: diagnostics.SeverityError,
			Span:     diagnostics.Span{Start: span.Start, End: span.End},
			Message:  msg,
		})
	}
	return fmt.Errorf("%w: %s (at %d:%d)", sentinel, msg, span.Start, span.End)
}

func parseInt32(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isFirstAlpha(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isAlnum(r rune) bool      { return isFirstAlpha(r) || isDigit(r) }
