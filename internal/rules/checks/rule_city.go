package checks

import (
	"weathercheck/internal/rules"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// CityQuery is the request used by CityByName and by the connectivity
// preflight.
func CityQuery() rules.Params {
	return rules.Params{
		rules.P("q", "London"),
		rules.P("appid", rules.APIKey),
		rules.P("units", units),
	}
}

func CityByName() *rules.Contract {
	return &rules.Contract{
		Name:           "city_by_name",
		Summary:        "Querying by city name returns current weather",
		Details:        "Requests q=London and checks the response names the city and carries coordinates, measurements and conditions.",
		Params:         CityQuery(),
		ExpectedStatus: 200,
		Assertions: []rules.Assertion{
			rules.That("coord", rules.Present()),
			rules.That("main", rules.Present()),
			rules.That("weather", rules.Present()),
			rules.That("name", rules.Equals(ldvalue.String("London"))),
		},
		Message: "Querying by city name should return 200 status code and weather for that city.",
	}
}
