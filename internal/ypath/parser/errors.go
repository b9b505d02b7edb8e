package parser

import "errors"

// Sentinel errors, matching the teacher's ErrParser convention: wrap one
// of these so callers can errors.Is them.
var (
	ErrSyntax      = errors.New("parser: syntax error")
	ErrUnsupported = errors.New("parser: unsupported operator combination")
)
