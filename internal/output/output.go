// Package output defines how the CLI prints a path expression's matches,
// adapted from the teacher's internal/formatter.
package output

import "github.com/goyamlpath/ypath/internal/results"

// Formatter writes a path expression's matches against one document.
// Implementations decide the output device.
type Formatter interface {
	Format(path string, matches *results.NodeSet) error
}
