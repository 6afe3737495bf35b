package checks

import (
	"fmt"

	"weathercheck/internal/rules"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// boundary builds a rule that requests a coordinate extreme and expects the
// service to echo it back unchanged.
func boundary(name, axis string, lat, lon float64, message string) *rules.Contract {
	echoed := lat
	if axis == "lon" {
		echoed = lon
	}
	return &rules.Contract{
		Name:    name,
		Summary: fmt.Sprintf("Coordinate boundary %s=%g is accepted", axis, echoed),
		Details: fmt.Sprintf("Requests lat=%g, lon=%g and checks coord.%s is echoed as %g.", lat, lon, axis, echoed),
		Params: rules.Params{
			rules.P("lat", lat),
			rules.P("lon", lon),
			rules.P("appid", rules.APIKey),
			rules.P("units", units),
		},
		ExpectedStatus: 200,
		Assertions: []rules.Assertion{
			rules.That("coord", rules.Present()),
			rules.That("coord."+axis, rules.Equals(ldvalue.Float64(echoed))),
		},
		Message: message,
	}
}

func MaxLatitude() *rules.Contract {
	return boundary("max_latitude", "lat", 90, 0, "Maximum latitude should return valid weather data.")
}

func MinLatitude() *rules.Contract {
	return boundary("min_latitude", "lat", -90, 0, "Minimum latitude should return valid weather data.")
}

func MaxLongitude() *rules.Contract {
	return boundary("max_longitude", "lon", 0, 180, "Maximum longitude should return valid weather data.")
}

func MinLongitude() *rules.Contract {
	return boundary("min_longitude", "lon", 0, -180, "Minimum longitude should return valid weather data.")
}
