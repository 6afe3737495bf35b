package report

import (
	"maps"
	"slices"

	"weathercheck/internal/rules"
)

// Outcome is the terminal state of one rule execution. It is never modified
// after the Collector records it.
type Outcome struct {
	Name        string            `json:"name"`
	Status      rules.Status      `json:"status"`
	Expectation string            `json:"expectation"`
	Detail      string            `json:"detail,omitempty"`
	Evidence    map[string]string `json:"evidence,omitempty"`
	Notes       []string          `json:"notes,omitempty"`
}

// clone copies the evidence map and notes so the result shares no state
// with o.
func (o Outcome) clone() Outcome {
	o.Evidence = maps.Clone(o.Evidence)
	o.Notes = slices.Clone(o.Notes)
	return o
}

type Counts struct {
	Pass  int `json:"pass"`
	Fail  int `json:"fail"`
	Error int `json:"error"`
	Skip  int `json:"skip"`
}

func (c Counts) Total() int {
	return c.Pass + c.Fail + c.Error + c.Skip
}
