package output

import "weathercheck/internal/report"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line):
// - run.started
// - rule.result
// - run.finished
//
// Every line carries the run_id announced by run.started.
//
// JSON mode remains an aggregate of report.Outcome values.
type Event struct {
	Type  string `json:"type"`
	RunID string `json:"run_id,omitempty"`
	*report.Outcome
	Rules    int            `json:"rules,omitempty"`
	BaseURL  string         `json:"base_url,omitempty"`
	Command  string         `json:"command,omitempty"`
	Counts   *report.Counts `json:"counts,omitempty"`
	ExitCode *int           `json:"exit_code,omitempty"`
}

const (
	EventRunStarted  = "run.started"
	EventRuleResult  = "rule.result"
	EventRunFinished = "run.finished"
)

func eventFromOutcome(runID string, o report.Outcome) Event {
	return Event{Type: EventRuleResult, RunID: runID, Outcome: &o}
}

// FinishedEvent closes a run. The exit code is always present, including 0.
func FinishedEvent(runID string, counts report.Counts, exitCode int) Event {
	return Event{Type: EventRunFinished, RunID: runID, Counts: &counts, ExitCode: &exitCode}
}
