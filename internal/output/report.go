package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"weathercheck/internal/report"
	"weathercheck/internal/rules"
)

// ReportSink writes a Markdown report on Close.
type ReportSink struct {
	path         string
	file         *os.File
	mu           sync.Mutex
	rep          *report.Report
	runID        string
	baseURL      string
	command      string
	exitCode     int
	haveExitCode bool
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return &ReportSink{path: path, file: f}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case *report.Report:
		s.rep = t
	case Event:
		switch t.Type {
		case EventRunStarted:
			s.runID = t.RunID
			s.baseURL = t.BaseURL
			s.command = t.Command
		case EventRunFinished:
			if t.ExitCode != nil {
				s.exitCode = *t.ExitCode
				s.haveExitCode = true
			}
		}
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.file.WriteString(s.render())
	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (s *ReportSink) render() string {
	outcomes := s.rep.Outcomes()
	counts := s.rep.Counts()

	var b strings.Builder
	b.WriteString("# Weather API Contract Report\n\n")

	if s.runID != "" {
		fmt.Fprintf(&b, "- Run: `%s`\n", s.runID)
	}
	if s.baseURL != "" {
		fmt.Fprintf(&b, "- Endpoint: `%s`\n", s.baseURL)
	}
	if s.haveExitCode {
		fmt.Fprintf(&b, "- Exit code: %d\n", s.exitCode)
	}
	b.WriteString("\n")

	b.WriteString("## Summary\n\n")
	b.WriteString("| Result | Rules |\n")
	b.WriteString("| --- | ---: |\n")
	fmt.Fprintf(&b, "| PASS | %d |\n", counts.Pass)
	fmt.Fprintf(&b, "| FAIL | %d |\n", counts.Fail)
	fmt.Fprintf(&b, "| ERROR | %d |\n", counts.Error)
	fmt.Fprintf(&b, "| SKIP | %d |\n", counts.Skip)
	fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", counts.Total())

	b.WriteString("## Outcomes\n\n")
	if len(outcomes) == 0 {
		b.WriteString("No rules were executed.\n\n")
	} else {
		b.WriteString("| Test Name | Result | Expected Message |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, o := range outcomes {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(o.Name), o.Status, escapeCell(o.Expectation))
		}
		b.WriteString("\n")
	}

	var problems []report.Outcome
	var notes []string
	for _, o := range outcomes {
		if o.Status != rules.StatusPass {
			problems = append(problems, o)
		}
		for _, n := range o.Notes {
			notes = append(notes, fmt.Sprintf("%s: %s", o.Name, n))
		}
	}

	if len(problems) > 0 {
		b.WriteString("## Findings\n\n")
		for _, o := range problems {
			fmt.Fprintf(&b, "### %s (%s)\n\n", o.Name, o.Status)
			if o.Detail != "" {
				fmt.Fprintf(&b, "%s\n\n", o.Detail)
			}
			if len(o.Evidence) > 0 {
				keys := make([]string, 0, len(o.Evidence))
				for k := range o.Evidence {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(&b, "- %s: `%s`\n", k, o.Evidence[k])
				}
				b.WriteString("\n")
			}
		}
	}

	if len(notes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, n := range notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
		b.WriteString("\n")
	}

	if s.command != "" {
		b.WriteString("## Reproduce\n\n")
		fmt.Fprintf(&b, "```sh\n%s\n```\n", s.command)
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
