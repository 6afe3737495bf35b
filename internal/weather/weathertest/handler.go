// Package weathertest provides an in-process stand-in for the OpenWeatherMap
// current-weather endpoint, for use with httptest.
package weathertest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

// APIKey is the only key the handler accepts.
const APIKey = "test-key"

const unauthorizedBody = `{"cod":401,"message":"Invalid API key. Please see https://openweathermap.org/faq#error401 for more info."}`

var jsonHeaders = http.Header{"Content-Type": {"application/json; charset=utf-8"}}

// NewHandler answers like the real endpoint for the requests the contract
// rules send: coordinates or a city name, an appid, and imperial units.
func NewHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, body := route(r)
		httphelpers.HandlerWithResponse(status, jsonHeaders, []byte(body)).ServeHTTP(w, r)
	})
}

func route(r *http.Request) (int, string) {
	q := r.URL.Query()
	if q.Get("appid") != APIKey {
		return http.StatusUnauthorized, unauthorizedBody
	}

	if city := q.Get("q"); city != "" {
		if !strings.EqualFold(city, "London") {
			return http.StatusNotFound, `{"cod":"404","message":"city not found"}`
		}
		return http.StatusOK, weatherBody(51.5085, -0.1257, "London", "GB")
	}

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	switch {
	case latErr != nil || lat < -90 || lat > 90:
		return http.StatusBadRequest, `{"cod":"400","message":"wrong latitude"}`
	case lonErr != nil || lon < -180 || lon > 180:
		return http.StatusBadRequest, `{"cod":"400","message":"wrong longitude"}`
	}

	if lat == 44.34 && lon == 10.99 {
		return http.StatusOK, weatherBody(lat, lon, "Zocca", "IT")
	}
	return http.StatusOK, weatherBody(lat, lon, "", "")
}

func weatherBody(lat, lon float64, name, country string) string {
	return fmt.Sprintf(`{"coord":{"lon":%s,"lat":%s},`+
		`"weather":[{"id":501,"main":"Rain","description":"moderate rain","icon":"10d"}],`+
		`"main":{"temp":59.0,"feels_like":58.2,"pressure":1015,"humidity":64},`+
		`"wind":{"speed":1.5,"deg":350},`+
		`"sys":{"country":%q},"name":%q,"cod":200}`,
		formatCoord(lon), formatCoord(lat), country, name)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
