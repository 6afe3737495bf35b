package rules

type Status string

const (
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusError Status = "ERROR"
	StatusSkip  Status = "SKIP"
)

// Result is what evaluating a rule produced. PASS and FAIL come from
// Evaluate; ERROR and SKIP are assigned by the runner when a rule could not
// be evaluated.
type Result struct {
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
	// Evidence contains simple key-value string pairs supporting the result.
	Evidence map[string]string `json:"evidence,omitempty"`
	// Notes are non-fatal observations (e.g. loosely matched values).
	Notes []string `json:"notes,omitempty"`
}
