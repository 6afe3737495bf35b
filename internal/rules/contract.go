package rules

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Contract is a declarative Rule: a request, the status the service must
// answer with, and ordered assertions over the decoded body.
type Contract struct {
	Name           string
	Summary        string
	Details        string
	Params         Params
	ExpectedStatus int
	Assertions     []Assertion
	Message        string
}

func (c *Contract) ID() string          { return c.Name }
func (c *Contract) Title() string       { return c.Summary }
func (c *Contract) Description() string { return c.Details }
func (c *Contract) Request() Params     { return c.Params }
func (c *Contract) Expectation() string { return c.Message }

// Evaluate checks the status code first, then each assertion in order, and
// stops at the first violation.
func (c *Contract) Evaluate(env Envelope) Result {
	if env.StatusCode != c.ExpectedStatus {
		return FailResultWithEvidence(
			fmt.Sprintf("expected status %d, got %d", c.ExpectedStatus, env.StatusCode),
			map[string]string{
				"expected_status": strconv.Itoa(c.ExpectedStatus),
				"actual_status":   strconv.Itoa(env.StatusCode),
			},
		)
	}
	if len(c.Assertions) == 0 {
		return PassResult()
	}
	if !env.HasBody() {
		return FailResult("response body is not a JSON document")
	}

	var notes []string
	for _, a := range c.Assertions {
		v := gjson.GetBytes(env.Body, a.Path)
		if !v.Exists() {
			return FailResultWithEvidence(
				fmt.Sprintf("field %q is missing", a.Path),
				map[string]string{"field": a.Path},
			)
		}
		if err := a.Check.Verify(v); err != nil {
			return FailResultWithEvidence(
				fmt.Sprintf("field %q %s: %v", a.Path, a.Check, err),
				map[string]string{"field": a.Path, "actual": v.Raw},
			)
		}
		if n, ok := a.Check.(noter); ok {
			if note := n.Note(a.Path, v); note != "" {
				notes = append(notes, note)
			}
		}
	}

	res := PassResult()
	res.Notes = notes
	return res
}
