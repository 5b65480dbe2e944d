package config

import (
	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration. Command-line flags override
// the values loaded here.
type Config struct {
	// Logging
	LogEnabled bool   `env:"LOG_ENABLED" envDefault:"false"`
	LogLevel   string `env:"LOG_LEVEL"   envDefault:"debug"`
	LogFormat  string `env:"LOG_FORMAT"  envDefault:"console"`

	// Diagnostics
	PrintDB     bool   `env:"PRINT_DB"     envDefault:"false"`
	Reconcile   bool   `env:"RECONCILE"    envDefault:"false"`
	MetricsFile string `env:"METRICS_FILE" envDefault:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
