package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppName    string         `envconfig:"APP_NAME" default:"weatherapp"`
	AppVersion string         `envconfig:"APP_VERSION" default:"1.0.0"`
	AppZone    string         `envconfig:"APP_ZONE" default:"local"`
	Port       string         `envconfig:"PORT" default:"8080"`
	Database   DatabaseConfig `yaml:"database"`
	Sentry     SentryConfig   `yaml:"sentry"`
}

type DatabaseConfig struct {
	Path          string `yaml:"path" envconfig:"DATABASE_PATH"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms" envconfig:"DATABASE_BUSY_TIMEOUT_MS"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"SENTRY_DSN"`
	Debug bool   `yaml:"debug" envconfig:"SENTRY_DEBUG"`
}

func NewConfig() *Config {
	var cnf Config

	// Read from YAML file first
	if yamlData, err := os.ReadFile("config/config.yaml"); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			panic(fmt.Sprintf("Warning: failed to parse YAML config: %v\n", err))
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", &cnf); err != nil {
		panic(fmt.Errorf("error environment variable parsing: %w", err))
	}

	if cnf.Database.Path == "" {
		cnf.Database.Path = "data/weather.db"
	}
	if cnf.Database.BusyTimeoutMS == 0 {
		cnf.Database.BusyTimeoutMS = 5000
	}

	return &cnf
}

// DSN is the driver connection string for the sqlite store.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", d.Path, d.BusyTimeoutMS)
}
