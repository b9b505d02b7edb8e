// Package stdout implements output.Formatter by printing matches to an
// io.Writer, one line of context followed by one match at a time,
// mirroring the teacher's formatter/stdout package.
package stdout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	goyaml "github.com/goccy/go-yaml"

	"github.com/goyamlpath/ypath/internal/output"
	"github.com/goyamlpath/ypath/internal/results"
)

// Formatter writes matches as their rendered YAML text, or as JSON when
// created with NewJSON.
type Formatter struct {
	writer io.Writer
	json   bool
}

// New creates a Formatter that writes to stdout.
func New() output.Formatter {
	return &Formatter{writer: os.Stdout}
}

// NewWithWriter creates a Formatter over an arbitrary writer, useful for
// tests or redirecting output.
func NewWithWriter(writer io.Writer) output.Formatter {
	return &Formatter{writer: writer}
}

// NewJSON creates a Formatter that writes each match as its canonical
// JSON-decoded value instead of raw YAML text.
func NewJSON(writer io.Writer) output.Formatter {
	return &Formatter{writer: writer, json: true}
}

// Format prints the path, the match count, then each match in order.
func (f *Formatter) Format(path string, matches *results.NodeSet) error {
	if _, err := fmt.Fprintf(f.writer, "%s: %d match(es)\n", path, matches.Len()); err != nil {
		return err
	}

	for _, n := range matches.Nodes() {
		line, err := f.renderLine(n)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}

	return nil
}

func (f *Formatter) renderLine(n interface{ String() string }) (string, error) {
	if !f.json {
		return n.String(), nil
	}

	var decoded any
	if err := goyaml.Unmarshal([]byte(n.String()), &decoded); err != nil {
		return "", fmt.Errorf("stdout: decode match for json output: %w", err)
	}
	encoded, err := json.Marshal(decoded)
	if err != nil {
		return "", fmt.Errorf("stdout: encode match as json: %w", err)
	}
	return string(encoded), nil
}
