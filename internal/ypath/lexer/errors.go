package lexer

import "errors"

// Sentinel errors, matching the teacher's ErrParser / jsonpath.ErrSyntax
// convention: wrap one of these so callers can errors.Is them.
var (
	ErrSyntax    = errors.New("lexer: syntax error")
	ErrOverflow  = errors.New("lexer: numeric literal overflow")
	ErrTruncated = errors.New("lexer: truncated input")
)
