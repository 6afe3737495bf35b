package checks

import "weathercheck/internal/rules"

// absoluteZeroF is absolute zero in degrees Fahrenheit; every rule requests
// imperial units.
const absoluteZeroF = -459.67

const units = "imperial"

// Catalog returns the contract rules in declaration order.
func Catalog() []rules.Rule {
	return []rules.Rule{
		ValidCoordinates(),
		InvalidCoordinates(),
		MissingAPIKey(),
		InvalidAPIKey(),
		MaxLatitude(),
		MinLatitude(),
		MaxLongitude(),
		MinLongitude(),
		TemperatureExtremes(),
		WindSpeedBoundaries(),
		CityByName(),
	}
}

func init() {
	for _, r := range Catalog() {
		rules.Register(r)
	}
}
