// Package config carries the environment-backed defaults of the CLI. Flags
// always override what the environment provides.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the CLI defaults. All variables share the SCHEMAFORGE_ prefix.
type Config struct {
	// Engine is the default target engine for generation.
	Engine string `env:"ENGINE" envDefault:"mysql"`
	// Format is the default validation report format (text, json).
	Format string `env:"FORMAT" envDefault:"text"`
	// Output is the default output path; empty means stdout.
	Output string `env:"OUTPUT"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "SCHEMAFORGE_"}); err != nil {
		return Config{}, fmt.Errorf("loading config from environment: %w", err)
	}
	return cfg, nil
}
