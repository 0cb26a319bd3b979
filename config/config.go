package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	AppName            string `envconfig:"APP_NAME" default:"skybrief"`
	AppVersion         string `envconfig:"APP_VERSION" default:"1.0.0"`
	AppEnv             string `envconfig:"APP_ENV" default:"development"`
	Port               string `envconfig:"PORT" default:"8080"`
	SentryDSN          string `envconfig:"SENTRY_DSN"`
	UserAgent          string `envconfig:"USER_AGENT" default:"skybrief/1.0 (contact: ops@skybrief.app)"`
	HTTPTimeoutSeconds int    `envconfig:"HTTP_TIMEOUT_SECONDS" default:"20"`

	OpenMeteo OpenMeteoConfig `yaml:"open_meteo"`
	Nominatim NominatimConfig `yaml:"nominatim"`
}

type OpenMeteoConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"OPEN_METEO_BASE_URL"`
	// WindModels holds exactly the two upper-air models whose speeds are
	// averaged into the consensus profile.
	WindModels []string `yaml:"wind_models" envconfig:"OPEN_METEO_WIND_MODELS"`
}

type NominatimConfig struct {
	BaseURL  string `yaml:"base_url" envconfig:"NOMINATIM_BASE_URL"`
	Language string `yaml:"language" envconfig:"NOMINATIM_LANGUAGE"`
}

func NewConfig() *Config {
	return NewConfigFromFile(DefaultPath)
}

func NewConfigFromFile(path string) *Config {
	var cnf Config

	// Read from YAML file first
	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			panic(fmt.Sprintf("failed to parse YAML config: %v", path))
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", &cnf); err != nil {
		panic(fmt.Errorf("error environment variable parsing: %w", err))
	}

	cnf.applyDefaults()

	return &cnf
}

func (c *Config) applyDefaults() {
	if c.OpenMeteo.BaseURL == "" {
		c.OpenMeteo.BaseURL = "https://api.open-meteo.com/v1/forecast"
	}
	if len(c.OpenMeteo.WindModels) == 0 {
		c.OpenMeteo.WindModels = []string{"gfs_seamless", "icon_seamless"}
	}
	if c.Nominatim.BaseURL == "" {
		c.Nominatim.BaseURL = "https://nominatim.openstreetmap.org/reverse"
	}
	if c.Nominatim.Language == "" {
		c.Nominatim.Language = "ru"
	}
}
