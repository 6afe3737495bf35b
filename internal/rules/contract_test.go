package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func zoccaContract() *Contract {
	return &Contract{
		Name: "valid_coordinates",
		Params: Params{
			P("lat", 44.34), P("lon", 10.99), P("appid", APIKey), P("units", "imperial"),
		},
		ExpectedStatus: 200,
		Assertions: []Assertion{
			That("coord", Present()),
			That("main", Present()),
			That("weather", Present()),
			That("name", Equals(ldvalue.String("Zocca"))),
			That("sys.country", Equals(ldvalue.String("IT"))),
			That("main.temp", IsNumber()),
		},
		Message: "Valid coordinates should return 200 status code and correct data.",
	}
}

const zoccaBody = `{"coord":{"lon":10.99,"lat":44.34},"main":{"temp":59.0},"weather":[{"id":501}],"name":"Zocca","sys":{"country":"IT"}}`

func TestContract_Metadata(t *testing.T) {
	c := zoccaContract()
	var r Rule = c
	assert.Equal(t, "valid_coordinates", r.ID())
	assert.Equal(t, "Valid coordinates should return 200 status code and correct data.", r.Expectation())
	assert.True(t, r.Request().RequiresAPIKey())
}

func TestContract_Evaluate(t *testing.T) {
	tests := []struct {
		name       string
		contract   *Contract
		env        Envelope
		wantStatus Status
		wantDetail string
	}{
		{
			name:       "valid coordinates pass",
			contract:   zoccaContract(),
			env:        Envelope{StatusCode: 200, Body: []byte(zoccaBody)},
			wantStatus: StatusPass,
		},
		{
			name:       "missing main fails naming the field",
			contract:   zoccaContract(),
			env:        Envelope{StatusCode: 200, Body: []byte(`{"coord":{},"weather":[],"name":"Zocca","sys":{"country":"IT"}}`)},
			wantStatus: StatusFail,
			wantDetail: `field "main" is missing`,
		},
		{
			name:       "wrong city fails",
			contract:   zoccaContract(),
			env:        Envelope{StatusCode: 200, Body: []byte(`{"coord":{},"main":{"temp":1},"weather":[],"name":"Modena","sys":{"country":"IT"}}`)},
			wantStatus: StatusFail,
			wantDetail: `field "name" equals "Zocca": got "Modena", want "Zocca"`,
		},
		{
			name:       "status mismatch fails before body checks",
			contract:   zoccaContract(),
			env:        Envelope{StatusCode: 401, Body: []byte(`{"cod":401}`)},
			wantStatus: StatusFail,
			wantDetail: "expected status 200, got 401",
		},
		{
			name: "invalid coordinates with string cod pass",
			contract: &Contract{
				Name:           "invalid_coordinates",
				ExpectedStatus: 400,
				Assertions: []Assertion{
					That("message", Present()),
					That("cod", Equals(ldvalue.String("400"))),
				},
			},
			env:        Envelope{StatusCode: 400, Body: []byte(`{"cod":"400","message":"wrong latitude"}`)},
			wantStatus: StatusPass,
		},
		{
			name: "missing api key with numeric cod passes",
			contract: &Contract{
				Name:           "missing_api_key",
				ExpectedStatus: 401,
				Assertions: []Assertion{
					That("message", Present()),
					That("cod", Equals(ldvalue.Int(401))),
				},
			},
			env:        Envelope{StatusCode: 401, Body: []byte(`{"cod":401,"message":"Invalid API key"}`)},
			wantStatus: StatusPass,
		},
		{
			name:       "no body with assertions fails",
			contract:   zoccaContract(),
			env:        Envelope{StatusCode: 200},
			wantStatus: StatusFail,
			wantDetail: "response body is not a JSON document",
		},
		{
			name:       "status only contract ignores body",
			contract:   &Contract{Name: "status_only", ExpectedStatus: 204},
			env:        Envelope{StatusCode: 204},
			wantStatus: StatusPass,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.contract.Evaluate(tt.env)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantDetail, res.Detail)
		})
	}
}

func TestContract_Evaluate_Evidence(t *testing.T) {
	res := zoccaContract().Evaluate(Envelope{StatusCode: 500})
	assert.Equal(t, map[string]string{"expected_status": "200", "actual_status": "500"}, res.Evidence)

	res = zoccaContract().Evaluate(Envelope{StatusCode: 200, Body: []byte(`{"coord":{},"main":{"temp":"hot"},"weather":[],"name":"Zocca","sys":{"country":"IT"}}`)})
	assert.Equal(t, StatusFail, res.Status)
	assert.Equal(t, map[string]string{"field": "main.temp", "actual": `"hot"`}, res.Evidence)
}

func TestContract_Evaluate_LooseMatchNote(t *testing.T) {
	c := &Contract{
		Name:           "missing_api_key",
		ExpectedStatus: 401,
		Assertions:     []Assertion{That("cod", Equals(ldvalue.Int(401)))},
	}
	res := c.Evaluate(Envelope{StatusCode: 401, Body: []byte(`{"cod":"401"}`)})
	assert.Equal(t, StatusPass, res.Status)
	if assert.Len(t, res.Notes, 1) {
		assert.Equal(t, `cod matched loosely: response has string "401", rule declares number 401`, res.Notes[0])
	}
}

func TestResultHelpers(t *testing.T) {
	assert.Equal(t, Result{Status: StatusPass}, PassResult())
	assert.Equal(t, Result{Status: StatusError, Detail: "boom"}, ErrorResult("boom"))
	assert.Equal(t, Result{Status: StatusSkip, Detail: "excluded"}, SkipResult("excluded"))
	assert.Equal(t, StatusFail, FailResultWithEvidence("x", map[string]string{"a": "b"}).Status)
}
