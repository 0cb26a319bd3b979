package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	// Without a config file everything falls back to defaults.
	config := NewConfigFromFile("nonexistent.yaml")
	require.NotNil(t, config)

	assert.Equal(t, "skybrief", config.AppName)
	assert.Equal(t, "1.0.0", config.AppVersion)
	assert.Equal(t, "development", config.AppEnv)
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, 20, config.HTTPTimeoutSeconds)

	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", config.OpenMeteo.BaseURL)
	assert.Equal(t, []string{"gfs_seamless", "icon_seamless"}, config.OpenMeteo.WindModels)
	assert.Equal(t, "https://nominatim.openstreetmap.org/reverse", config.Nominatim.BaseURL)
	assert.Equal(t, "ru", config.Nominatim.Language)
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	os.Setenv("APP_NAME", "test-app")
	os.Setenv("APP_ENV", "production")
	os.Setenv("PORT", "9090")
	os.Setenv("OPEN_METEO_BASE_URL", "http://localhost:9999/v1/forecast")

	defer func() {
		os.Unsetenv("APP_NAME")
		os.Unsetenv("APP_ENV")
		os.Unsetenv("PORT")
		os.Unsetenv("OPEN_METEO_BASE_URL")
	}()

	config := NewConfigFromFile("nonexistent.yaml")
	require.NotNil(t, config)

	assert.Equal(t, "test-app", config.AppName)
	assert.Equal(t, "production", config.AppEnv)
	assert.Equal(t, "9090", config.Port)
	assert.Equal(t, "http://localhost:9999/v1/forecast", config.OpenMeteo.BaseURL)
}

func TestConfigFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yamlContent := `
open_meteo:
  base_url: http://yaml-host/v1/forecast
  wind_models:
    - ecmwf_ifs04
    - gfs_seamless
nominatim:
  language: en
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

	config := NewConfigFromFile(path)
	require.NotNil(t, config)

	assert.Equal(t, "http://yaml-host/v1/forecast", config.OpenMeteo.BaseURL)
	assert.Equal(t, []string{"ecmwf_ifs04", "gfs_seamless"}, config.OpenMeteo.WindModels)
	assert.Equal(t, "en", config.Nominatim.Language)
	// Defaults still fill what the file omits.
	assert.Equal(t, "https://nominatim.openstreetmap.org/reverse", config.Nominatim.BaseURL)
}
