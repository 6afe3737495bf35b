package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"weathercheck/internal/report"
	"weathercheck/internal/rules"
)

func TestConsoleSink_Table_RendersOnlyOnReport(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "table", false)

	rep := sampleReport()
	for _, o := range rep.Outcomes() {
		if err := s.Write(o); err != nil {
			t.Fatalf("Write outcome error: %v", err)
		}
	}
	if err := s.Write(Event{Type: EventRunStarted}); err != nil {
		t.Fatalf("Write event error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output before the report, got %q", buf.String())
	}

	if err := s.Write(rep); err != nil {
		t.Fatalf("Write report error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, "Test Results Summary:"); got != 1 {
		t.Fatalf("want table rendered once, got %d", got)
	}
	if !strings.Contains(out, "min_latitude") {
		t.Fatalf("expected rows in table, got %q", out)
	}
}

func TestConsoleSink_JSON_AggregatesOutcomes(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "json", false)

	rep := sampleReport()
	for _, o := range rep.Outcomes() {
		_ = s.Write(o)
	}
	_ = s.Write(rep)
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	var got []report.Outcome
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if len(got) != 4 {
		t.Fatalf("want 4 outcomes, got %d", len(got))
	}
	if got[1].Status != rules.StatusFail || got[1].Detail == "" {
		t.Fatalf("unexpected outcome: %#v", got[1])
	}
}

func TestConsoleSink_JSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "json", false)
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("want [], got %q", buf.String())
	}
}

func TestConsoleSink_UnsupportedFormat(t *testing.T) {
	s := NewConsoleSink(&bytes.Buffer{}, "xml", false)
	if err := s.Write(Event{Type: EventRunStarted}); err == nil {
		t.Fatalf("want error for unsupported format")
	}
}
