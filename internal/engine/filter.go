package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// Filters decide which rules run. Rules that are filtered out are still
// reported, as SKIP.
type Filters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func NewFilters(run, skip []string) (Filters, error) {
	var f Filters
	for _, p := range run {
		if err := f.MustMatch.Set(p); err != nil {
			return Filters{}, fmt.Errorf("--run %q: %w", p, err)
		}
	}
	for _, p := range skip {
		if err := f.MustNotMatch.Set(p); err != nil {
			return Filters{}, fmt.Errorf("--skip %q: %w", p, err)
		}
	}
	return f, nil
}

func (f Filters) Allows(ruleID string) bool {
	return (!f.MustMatch.IsDefined() || f.MustMatch.AnyMatch(ruleID)) &&
		!f.MustNotMatch.AnyMatch(ruleID)
}

func (f Filters) IsDefined() bool {
	return f.MustMatch.IsDefined() || f.MustNotMatch.IsDefined()
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r *RegexList) Type() string {
	return "regex"
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
