package rules

import (
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Check is a predicate over a single JSON value that is known to exist.
type Check interface {
	Verify(v gjson.Result) error
	String() string
}

// noter is implemented by checks that can report a non-fatal observation
// about a value that satisfied them.
type noter interface {
	Note(path string, v gjson.Result) string
}

// Assertion pairs a gjson field path with the check applied to it.
type Assertion struct {
	Path  string
	Check Check
}

func That(path string, check Check) Assertion {
	return Assertion{Path: path, Check: check}
}

type presentCheck struct{}

// Present only requires the field to exist.
func Present() Check { return presentCheck{} }

func (presentCheck) Verify(gjson.Result) error { return nil }
func (presentCheck) String() string            { return "is present" }

type equalsCheck struct {
	want ldvalue.Value
}

// Equals compares the field to want by string representation, so "401" and
// 401 are considered equal. A type mismatch is reported as a note.
func Equals(want ldvalue.Value) Check {
	return equalsCheck{want: want}
}

func (c equalsCheck) Verify(v gjson.Result) error {
	got := ldvalue.Parse([]byte(v.Raw))
	if looseString(got) != looseString(c.want) {
		return fmt.Errorf("got %s, want %s", got.JSONString(), c.want.JSONString())
	}
	return nil
}

func (c equalsCheck) String() string {
	return "equals " + c.want.JSONString()
}

func (c equalsCheck) Note(path string, v gjson.Result) string {
	got := ldvalue.Parse([]byte(v.Raw))
	if got.Type() == c.want.Type() {
		return ""
	}
	return fmt.Sprintf("%s matched loosely: response has %s %s, rule declares %s %s",
		path, got.Type(), got.JSONString(), c.want.Type(), c.want.JSONString())
}

func looseString(v ldvalue.Value) string {
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}

type numberCheck struct{}

// IsNumber requires a JSON number.
func IsNumber() Check { return numberCheck{} }

func (numberCheck) Verify(v gjson.Result) error {
	if v.Type != gjson.Number {
		return fmt.Errorf("got %s, want a number", describe(v))
	}
	return nil
}

func (numberCheck) String() string { return "is a number" }

type atLeastCheck struct {
	min float64
}

// AtLeast requires a JSON number greater than or equal to min.
func AtLeast(min float64) Check {
	return atLeastCheck{min: min}
}

func (c atLeastCheck) Verify(v gjson.Result) error {
	if v.Type != gjson.Number {
		return fmt.Errorf("got %s, want a number >= %g", describe(v), c.min)
	}
	if v.Num < c.min {
		return fmt.Errorf("got %g, want >= %g", v.Num, c.min)
	}
	return nil
}

func (c atLeastCheck) String() string {
	return fmt.Sprintf("is >= %g", c.min)
}

func describe(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return fmt.Sprintf("string %q", v.Str)
	case gjson.Number:
		return "number " + v.Raw
	case gjson.True, gjson.False:
		return "boolean " + v.Raw
	case gjson.Null:
		return "null"
	default:
		if v.IsArray() {
			return "array"
		}
		return "object"
	}
}
