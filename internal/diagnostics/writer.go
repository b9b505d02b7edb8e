package diagnostics

import (
	"fmt"
	"io"
	"sync"
)

// WriterSink formats one line per diagnostic to an io.Writer. It is used
// by the CLI's --debug flag, the same way the teacher codebase's stdout
// formatter writes one line per result.
type WriterSink struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// NewWriterSink creates a WriterSink writing to w. prefix, if non-empty,
// is printed before every line (the CLI uses it to carry a run ID).
func NewWriterSink(w io.Writer, prefix string) *WriterSink {
	return &WriterSink{w: w, prefix: prefix}
}

func (s *WriterSink) Report(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prefix != "" {
		fmt.Fprintf(s.w, "[%s] %s\n", s.prefix, d.String())
		return
	}
	fmt.Fprintln(s.w, d.String())
}
