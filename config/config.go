// Package config loads ofpactgen settings from the environment and the
// optional vendor/version tables file.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "OFPACTGEN"

// Config holds generator settings.
type Config struct {
	// TablesFile is a TOML file extending the built-in vendor and version
	// tables. Empty selects the built-in tables.
	TablesFile string `envconfig:"TABLES"`

	// Logging
	LogLevel     string `envconfig:"LOG_LEVEL" default:"warn"`
	LogNoColor   bool   `envconfig:"LOG_NOCOLOR" default:"false"`
	LogTimestamp bool   `envconfig:"LOG_TIMESTAMP" default:"false"`
}

// Load reads configuration from OFPACTGEN_* environment variables.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}
