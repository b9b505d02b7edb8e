package stdout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goyamlpath/ypath/internal/results"
	"github.com/goyamlpath/ypath/internal/yamldoc"
)

func TestFormatPrintsCountAndMatches(t *testing.T) {
	t.Parallel()

	doc, err := yamldoc.LoadBytes([]byte("a: 1\nb: 2\n"))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	a := doc.Root().MappingValueBySimpleKey([]byte("a"))
	b := doc.Root().MappingValueBySimpleKey([]byte("b"))

	set := results.New(0)
	set.Add(a)
	set.Add(b)

	var buf bytes.Buffer
	f := NewWithWriter(&buf)
	if err := f.Format("/a,b", set); err != nil {
		t.Fatalf("Format: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "2 match(es)") {
		t.Fatalf("output missing match count: %q", out)
	}
	if !strings.Contains(out, "1") || !strings.Contains(out, "2") {
		t.Fatalf("output missing matches: %q", out)
	}
}

func TestFormatJSONEncodesEachMatch(t *testing.T) {
	t.Parallel()

	doc, err := yamldoc.LoadBytes([]byte("a: {x: 1, y: 2}\n"))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	a := doc.Root().MappingValueBySimpleKey([]byte("a"))

	set := results.New(0)
	set.Add(a)

	var buf bytes.Buffer
	f := NewJSON(&buf)
	if err := f.Format("/a", set); err != nil {
		t.Fatalf("Format: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"x":1`) || !strings.Contains(out, `"y":2`) {
		t.Fatalf("output missing json-encoded match: %q", out)
	}
}

func TestFormatEmptySetPrintsZeroMatches(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := NewWithWriter(&buf)
	if err := f.Format("/missing", results.New(0)); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(buf.String(), "0 match(es)") {
		t.Fatalf("output missing zero count: %q", buf.String())
	}
}
