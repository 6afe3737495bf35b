package checks

import "weathercheck/internal/rules"

func equatorParams() rules.Params {
	return rules.Params{
		rules.P("lat", 0),
		rules.P("lon", 0),
		rules.P("appid", rules.APIKey),
		rules.P("units", units),
	}
}

func TemperatureExtremes() *rules.Contract {
	return &rules.Contract{
		Name:           "temperature_extremes",
		Summary:        "Reported temperature is physically possible",
		Details:        "Requests lat=0, lon=0 and checks main.temp is not below absolute zero (-459.67 F).",
		Params:         equatorParams(),
		ExpectedStatus: 200,
		Assertions: []rules.Assertion{
			rules.That("main.temp", rules.AtLeast(absoluteZeroF)),
		},
		Message: "Temperature should not be below absolute zero.",
	}
}

func WindSpeedBoundaries() *rules.Contract {
	return &rules.Contract{
		Name:           "wind_speed_boundaries",
		Summary:        "Reported wind speed is not negative",
		Details:        "Requests lat=0, lon=0 and checks wind.speed >= 0.",
		Params:         equatorParams(),
		ExpectedStatus: 200,
		Assertions: []rules.Assertion{
			rules.That("wind.speed", rules.AtLeast(0)),
		},
		Message: "Wind speed should not be negative.",
	}
}
