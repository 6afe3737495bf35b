package output

import (
	"fmt"
	"io"
	"sync"

	"weathercheck/internal/report"
)

// EmitSink writes additional structured outputs.
//
// Formats:
//   - json: aggregates outcomes and writes a single JSON array on Close
//   - ndjson: streams Event values (one JSON object per line)
type EmitSink struct {
	writer   io.Writer
	format   string // "json" | "ndjson"
	mu       sync.Mutex
	outcomes []report.Outcome
	stream   ndjsonStream
}

func NewEmitSink(w io.Writer, format string) (*EmitSink, error) {
	if w == nil {
		return nil, fmt.Errorf("emit sink writer must not be nil")
	}
	if format != "json" && format != "ndjson" {
		return nil, fmt.Errorf("unsupported emit format: %s", format)
	}
	return &EmitSink{writer: w, format: format}, nil
}

func (s *EmitSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		o, ok := v.(report.Outcome)
		if !ok {
			return nil
		}
		s.outcomes = append(s.outcomes, o)
		return nil
	case "ndjson":
		return s.stream.write(s.writer, v)
	default:
		return fmt.Errorf("unsupported emit format: %s", s.format)
	}
}

func (s *EmitSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		return writeJSONArray(s.writer, s.outcomes)
	}
	return nil
}
