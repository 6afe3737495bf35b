package weather

import (
	"errors"
	"os"
	"strings"
)

const (
	EnvAPIKey  = "OPENWEATHERMAP_API_KEY"
	EnvBaseURL = "OPENWEATHERMAP_URL"
)

type APIKeySource string

const (
	APIKeySourceExplicit APIKeySource = "explicit"
	APIKeySourceEnv      APIKeySource = "env:" + EnvAPIKey
)

// ResolveAPIKey resolves the OpenWeatherMap API key.
//
// Precedence:
//  1. provided (if non-empty)
//  2. OPENWEATHERMAP_API_KEY env var
//
// An empty key with a nil error means no key is configured. It never prints
// the key.
func ResolveAPIKey(provided string) (key string, source APIKeySource, err error) {
	if k := strings.TrimSpace(provided); k != "" {
		return validateKey(k, APIKeySourceExplicit)
	}
	if env := strings.TrimSpace(os.Getenv(EnvAPIKey)); env != "" {
		return validateKey(env, APIKeySourceEnv)
	}
	return "", "", nil
}

func validateKey(k string, source APIKeySource) (string, APIKeySource, error) {
	if strings.ContainsAny(k, " \t\n\r") {
		return "", "", errors.New("invalid API key: contains whitespace")
	}
	return k, source, nil
}
