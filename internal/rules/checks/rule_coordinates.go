package checks

import (
	"weathercheck/internal/rules"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func ValidCoordinates() *rules.Contract {
	return &rules.Contract{
		Name:    "valid_coordinates",
		Summary: "Valid coordinates return current weather",
		Details: "Requests Zocca, IT by coordinates and checks the response echoes the location with a measurement block and a condition list.",
		Params: rules.Params{
			rules.P("lat", 44.34),
			rules.P("lon", 10.99),
			rules.P("appid", rules.APIKey),
			rules.P("units", units),
		},
		ExpectedStatus: 200,
		Assertions: []rules.Assertion{
			rules.That("coord", rules.Present()),
			rules.That("main", rules.Present()),
			rules.That("weather", rules.Present()),
			rules.That("name", rules.Equals(ldvalue.String("Zocca"))),
			rules.That("sys.country", rules.Equals(ldvalue.String("IT"))),
			rules.That("main.temp", rules.IsNumber()),
		},
		Message: "Valid coordinates should return 200 status code and correct data.",
	}
}

func InvalidCoordinates() *rules.Contract {
	return &rules.Contract{
		Name:    "invalid_coordinates",
		Summary: "Out-of-range coordinates are rejected",
		Details: "Requests lat=-999, lon=-999 and expects a 400 with an error message and cod \"400\".",
		Params: rules.Params{
			rules.P("lat", -999),
			rules.P("lon", -999),
			rules.P("appid", rules.APIKey),
			rules.P("units", units),
		},
		ExpectedStatus: 400,
		Assertions: []rules.Assertion{
			rules.That("message", rules.Present()),
			// The service answers with cod as a string here.
			rules.That("cod", rules.Equals(ldvalue.String("400"))),
		},
		Message: "Invalid coordinates should return 400 status code and error message.",
	}
}
