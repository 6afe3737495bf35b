package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Query(t *testing.T) {
	p := Params{P("lat", 44.34), P("lon", -999), P("appid", APIKey), P("units", "imperial")}

	q := p.Query("secret")
	assert.Equal(t, "44.34", q.Get("lat"))
	assert.Equal(t, "-999", q.Get("lon"))
	assert.Equal(t, "secret", q.Get("appid"))
	assert.Equal(t, "imperial", q.Get("units"))
}

func TestParams_FloatsHaveNoTrailingZeros(t *testing.T) {
	q := Params{P("lat", 90.0), P("lon", -180.0), P("x", 0.5)}.Query("")
	assert.Equal(t, "90", q.Get("lat"))
	assert.Equal(t, "-180", q.Get("lon"))
	assert.Equal(t, "0.5", q.Get("x"))
}

func TestParams_RequiresAPIKey(t *testing.T) {
	assert.True(t, Params{P("appid", APIKey)}.RequiresAPIKey())
	assert.False(t, Params{P("appid", "invalid_api_key")}.RequiresAPIKey())
	assert.False(t, Params(nil).RequiresAPIKey())
}

func TestParams_Redacted(t *testing.T) {
	p := Params{P("units", "imperial"), P("appid", APIKey), P("lat", 0)}
	assert.Equal(t, "units=imperial&appid=<api-key>&lat=0", p.Redacted())
	assert.Equal(t, "", Params(nil).Redacted())
}
