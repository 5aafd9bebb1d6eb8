package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration, populated from the environment.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `env:"SHARETAB_ADDR" envDefault:":8080"`

	// DBPath is the filesystem path of the SQLite database.
	DBPath string `env:"SHARETAB_DB_PATH" envDefault:"data/sharetab.db"`

	// JWTSecret signs session tokens. Required.
	JWTSecret string `env:"SHARETAB_JWT_SECRET,notEmpty"`

	// TokenTTL is how long issued session tokens remain valid.
	TokenTTL time.Duration `env:"SHARETAB_TOKEN_TTL" envDefault:"24h"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
