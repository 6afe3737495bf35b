package rules

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type credential struct{}

// APIKey is a parameter value placeholder resolved to the configured API key
// when the request is built.
var APIKey any = credential{}

// Param is a single query parameter. Values are scalars or APIKey.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered parameter set.
type Params []Param

func P(key string, value any) Param {
	return Param{Key: key, Value: value}
}

// RequiresAPIKey reports whether any parameter refers to the API key.
func (p Params) RequiresAPIKey() bool {
	for _, param := range p {
		if _, ok := param.Value.(credential); ok {
			return true
		}
	}
	return false
}

// Query resolves the parameters into url.Values, substituting apiKey for the
// APIKey placeholder.
func (p Params) Query(apiKey string) url.Values {
	q := url.Values{}
	for _, param := range p {
		q.Add(param.Key, formatScalar(param.Value, apiKey))
	}
	return q
}

// Redacted renders the parameters in declaration order with the credential
// masked.
func (p Params) Redacted() string {
	parts := make([]string, 0, len(p))
	for _, param := range p {
		v := formatScalar(param.Value, "<api-key>")
		parts = append(parts, param.Key+"="+v)
	}
	return strings.Join(parts, "&")
}

func formatScalar(v any, apiKey string) string {
	switch t := v.(type) {
	case credential:
		return apiKey
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
