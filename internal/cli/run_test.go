package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"weathercheck/internal/config"
	"weathercheck/internal/weather"
	"weathercheck/internal/weather/weathertest"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runInProcess points the run at srvURL with a fresh config and returns the
// exit code and both streams.
func runInProcess(t *testing.T, srvURL string, mutate func(*config.Config)) (int, string, string) {
	t.Helper()
	t.Setenv(weather.EnvBaseURL, srvURL)

	c := config.New()
	c.Output.Color = "never"
	if mutate != nil {
		mutate(c)
	}
	var stdout, stderr bytes.Buffer
	code := runContractTests(context.Background(), runCmd, c, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func withGlobal(t *testing.T, dst *string, v string) {
	t.Helper()
	old := *dst
	*dst = v
	t.Cleanup(func() { *dst = old })
}

func TestRunContractTests_AllPass(t *testing.T) {
	srv := httptest.NewServer(weathertest.NewHandler())
	defer srv.Close()
	t.Setenv(weather.EnvAPIKey, weathertest.APIKey)

	code, stdout, stderr := runInProcess(t, srv.URL, nil)
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Test Results Summary:")
	assert.Equal(t, 11, strings.Count(stdout, "PASS"))
	assert.Contains(t, stderr, "run started")
	assert.NotContains(t, stdout, "run started", "diagnostics must not reach stdout")
}

func TestRunContractTests_MissingAPIKey(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(weathertest.NewHandler())
	srv := httptest.NewServer(handler)
	defer srv.Close()
	t.Setenv(weather.EnvAPIKey, "")
	withGlobal(t, &envFile, filepath.Join(t.TempDir(), "none.env"))

	code, stdout, stderr := runInProcess(t, srv.URL, nil)
	assert.Equal(t, 3, code)
	assert.Empty(t, stdout)
	assert.Equal(t, 1, strings.Count(stderr, "API key is required"))
	assert.Len(t, requests, 0)
}

func TestRunContractTests_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(weathertest.NewHandler())
	base := srv.URL
	srv.Close()
	t.Setenv(weather.EnvAPIKey, weathertest.APIKey)

	code, stdout, _ := runInProcess(t, base, nil)
	assert.Equal(t, 2, code)
	assert.Equal(t, 11, strings.Count(stdout, "ERROR"))
	assert.NotContains(t, stdout, weathertest.APIKey)
}

func TestRunContractTests_InvalidConfig(t *testing.T) {
	t.Setenv(weather.EnvAPIKey, weathertest.APIKey)

	code, _, stderr := runInProcess(t, "http://localhost", func(c *config.Config) {
		c.Output.ConsoleFormat = "xml"
	})
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "unsupported --console-format")

	code, _, stderr = runInProcess(t, "http://localhost", func(c *config.Config) {
		c.Rules.Selector = "no_such_rule"
	})
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "rule not found: no_such_rule")
}

func TestRunContractTests_ConfigFile(t *testing.T) {
	srv := httptest.NewServer(weathertest.NewHandler())
	defer srv.Close()
	t.Setenv(weather.EnvAPIKey, weathertest.APIKey)

	path := filepath.Join(t.TempDir(), "weathercheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [city_by_name]\nconsole_format: json\n"), 0o600))
	withGlobal(t, &configPath, path)

	code, stdout, stderr := runInProcess(t, srv.URL, nil)
	require.Equal(t, 0, code, stderr)

	var outcomes []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &outcomes), stdout)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "city_by_name", outcomes[0]["name"])
	assert.Equal(t, "PASS", outcomes[0]["status"])
}

func TestRunContractTests_DotEnvSuppliesAPIKey(t *testing.T) {
	srv := httptest.NewServer(weathertest.NewHandler())
	defer srv.Close()

	t.Setenv(weather.EnvAPIKey, "")
	require.NoError(t, os.Unsetenv(weather.EnvAPIKey))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(weather.EnvAPIKey+"="+weathertest.APIKey+"\n"), 0o600))
	withGlobal(t, &envFile, path)

	code, _, stderr := runInProcess(t, srv.URL, func(c *config.Config) {
		c.Rules.Selector = "valid_coordinates"
	})
	assert.Equal(t, 0, code, stderr)
}
