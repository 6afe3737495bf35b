package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"weathercheck/internal/report"
)

// ConsoleSink is the human-facing sink.
//
// Formats:
//   - table: renders the summary table once, when the final report arrives
//   - json: aggregates outcomes and writes a single JSON array on Close
//   - ndjson: streams Event values (one JSON object per line)
type ConsoleSink struct {
	writer   io.Writer
	format   string
	color    bool
	mu       sync.Mutex
	outcomes []report.Outcome
	stream   ndjsonStream
}

func NewConsoleSink(w io.Writer, format string, colorize bool) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "table"
	}
	return &ConsoleSink{
		writer: w,
		format: format,
		color:  colorize,
	}
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "table":
		rep, ok := v.(*report.Report)
		if !ok {
			return nil
		}
		return RenderTable(s.writer, rep, TableOptions{Color: s.color})
	case "json":
		o, ok := v.(report.Outcome)
		if !ok {
			// Ignore lifecycle events in JSON console mode.
			return nil
		}
		s.outcomes = append(s.outcomes, o)
		return nil
	case "ndjson":
		return s.stream.write(s.writer, v)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		return writeJSONArray(s.writer, s.outcomes)
	case "table", "ndjson":
		return nil
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

// ndjsonStream encodes lifecycle events and outcomes, one per line, and
// ignores anything else. Outcomes are stamped with the current run ID.
type ndjsonStream struct {
	runID string
}

func (n *ndjsonStream) write(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	switch t := v.(type) {
	case Event:
		if t.Type == EventRunStarted {
			n.runID = t.RunID
		}
		if err := encoder.Encode(t); err != nil {
			return err
		}
	case report.Outcome:
		if err := encoder.Encode(eventFromOutcome(n.runID, t)); err != nil {
			return err
		}
	default:
		return nil
	}
	return flushIfPossible(w)
}

func writeJSONArray(w io.Writer, outcomes []report.Outcome) error {
	if outcomes == nil {
		outcomes = []report.Outcome{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(outcomes); err != nil {
		return err
	}
	return flushIfPossible(w)
}
