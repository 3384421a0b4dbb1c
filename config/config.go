// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server's runtime settings.
type Config struct {
	Addr         string `env:"ADDR" envDefault:":8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"domination.db"`
	PrettyLog    bool   `env:"PRETTY_LOG" envDefault:"false"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
