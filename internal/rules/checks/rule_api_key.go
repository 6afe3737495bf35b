package checks

import (
	"weathercheck/internal/rules"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func MissingAPIKey() *rules.Contract {
	return &rules.Contract{
		Name:    "missing_api_key",
		Summary: "Requests without an API key are unauthorized",
		Details: "Omits appid entirely and expects a 401 with an error message and cod 401.",
		Params: rules.Params{
			rules.P("lat", 44.34),
			rules.P("lon", 10.99),
			rules.P("units", units),
		},
		ExpectedStatus: 401,
		Assertions: []rules.Assertion{
			rules.That("message", rules.Present()),
			rules.That("cod", rules.Equals(ldvalue.Int(401))),
		},
		Message: "Missing API key should return 401 status code and error message.",
	}
}

func InvalidAPIKey() *rules.Contract {
	return &rules.Contract{
		Name:    "invalid_api_key",
		Summary: "Requests with an unknown API key are unauthorized",
		Details: "Sends appid=invalid_api_key and expects a 401 with an error message and cod 401.",
		Params: rules.Params{
			rules.P("lat", 44.34),
			rules.P("lon", 10.99),
			rules.P("appid", "invalid_api_key"),
			rules.P("units", units),
		},
		ExpectedStatus: 401,
		Assertions: []rules.Assertion{
			rules.That("message", rules.Present()),
			rules.That("cod", rules.Equals(ldvalue.Int(401))),
		},
		Message: "Invalid API key should return 401 status code and error message.",
	}
}
