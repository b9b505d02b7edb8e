package yamldoc

import (
	"fmt"

	goyamlast "github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// ScanFlowFragment finds the end (exclusive, byte offset relative to the
// start of data) of one complete YAML flow construct beginning at data[0]:
// a single- or double-quoted scalar, or a balanced {...} / [...] flow
// collection. It does not parse the fragment; it only finds its extent by
// quote-aware bracket matching.
func ScanFlowFragment(data []byte) (end int, ok bool) {
	if len(data) == 0 {
		return 0, false
	}

	switch data[0] {
	case '"', '\'':
		return scanQuoted(data)
	case '{':
		return scanBalanced(data, '{', '}')
	case '[':
		return scanBalanced(data, '[', ']')
	default:
		return 0, false
	}
}

func scanQuoted(data []byte) (int, bool) {
	quote := data[0]
	for i := 1; i < len(data); i++ {
		if data[i] == '\\' && quote == '"' && i+1 < len(data) {
			i++
			continue
		}
		if data[i] == quote {
			return i + 1, true
		}
	}
	return 0, false // unterminated: caller reports Truncated
}

func scanBalanced(data []byte, open, close byte) (int, bool) {
	depth := 0
	inSingle, inDouble := false, false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if c == '\\' && inDouble && i+1 < len(data) {
			i++
			continue
		}
		if c == '\'' && !inDouble {
			inSingle = !inSingle
			continue
		}
		if c == '"' && !inSingle {
			inDouble = !inDouble
			continue
		}
		if inSingle || inDouble {
			continue
		}

		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false // unterminated: caller reports Truncated
}

// ParseFlowFragment parses a standalone flow-only YAML value (quoted
// string, or flow sequence/mapping) used as a MapKey payload. It runs a
// fresh goccy/go-yaml parser.ParseBytes over the fragment, per spec.md
// §1's "YAML parser itself ... used as a black box to load complex
// mapping keys".
func ParseFlowFragment(data []byte) (goyamlast.Node, error) {
	f, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("yamldoc: parse flow key %q: %w", data, err)
	}
	if len(f.Docs) == 0 || f.Docs[0].Body == nil {
		return nil, fmt.Errorf("yamldoc: empty flow key")
	}
	return f.Docs[0].Body, nil
}
