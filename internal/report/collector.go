package report

import "weathercheck/internal/rules"

// Report is the ordered list of outcomes for one run, in execution order.
type Report struct {
	outcomes []Outcome
}

// Outcomes returns a deep copy of the recorded outcomes.
func (r *Report) Outcomes() []Outcome {
	if r == nil {
		return nil
	}
	out := make([]Outcome, len(r.outcomes))
	for i, o := range r.outcomes {
		out[i] = o.clone()
	}
	return out
}

func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.outcomes)
}

func (r *Report) Counts() Counts {
	var c Counts
	if r == nil {
		return c
	}
	for _, o := range r.outcomes {
		switch o.Status {
		case rules.StatusPass:
			c.Pass++
		case rules.StatusFail:
			c.Fail++
		case rules.StatusError:
			c.Error++
		case rules.StatusSkip:
			c.Skip++
		}
	}
	return c
}

// OK reports whether every recorded outcome passed.
func (r *Report) OK() bool {
	c := r.Counts()
	return c.Fail == 0 && c.Error == 0 && c.Skip == 0
}

// Collector appends outcomes to a single Report. Recording the same rule
// twice is a caller error and is not guarded against.
type Collector struct {
	report *Report
}

func NewCollector() *Collector {
	return &Collector{report: &Report{}}
}

func (c *Collector) Report() *Report {
	return c.report
}

func (c *Collector) RecordPass(r rules.Rule) Outcome {
	return c.record(r, rules.PassResult())
}

func (c *Collector) RecordFail(r rules.Rule, detail string) Outcome {
	return c.record(r, rules.FailResult(detail))
}

func (c *Collector) RecordError(r rules.Rule, detail string) Outcome {
	return c.record(r, rules.ErrorResult(detail))
}

func (c *Collector) RecordSkip(r rules.Rule, reason string) Outcome {
	return c.record(r, rules.SkipResult(reason))
}

// RecordResult records an evaluated result, keeping its evidence and notes.
func (c *Collector) RecordResult(r rules.Rule, res rules.Result) Outcome {
	return c.record(r, res)
}

func (c *Collector) record(r rules.Rule, res rules.Result) Outcome {
	o := Outcome{
		Name:        r.ID(),
		Status:      res.Status,
		Expectation: r.Expectation(),
		Detail:      res.Detail,
		Evidence:    res.Evidence,
		Notes:       res.Notes,
	}.clone()
	c.report.outcomes = append(c.report.outcomes, o)
	return o.clone()
}
