package output

import (
	"weathercheck/internal/report"
	"weathercheck/internal/rules"
)

func contract(name, message string) *rules.Contract {
	return &rules.Contract{Name: name, Message: message}
}

// sampleReport has one outcome of every status.
func sampleReport() *report.Report {
	c := report.NewCollector()
	c.RecordPass(contract("valid_coordinates", "Valid coordinates should return 200 status code and correct data."))
	c.RecordFail(contract("min_latitude", "Minimum latitude should return valid weather data."), `field "coord" is missing`)
	c.RecordError(contract("wind_speed_boundaries", "Wind speed should not be negative."), "GET http://x: connection refused")
	c.RecordSkip(contract("city_by_name", ""), "excluded by filter parameters")
	return c.Report()
}
