package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseURL    string   `envconfig:"DATABASE_URL" default:"postgres://localhost:5432/journal?sslmode=disable"`
	JWTSecret      string   `envconfig:"JWT_SECRET" required:"true"`
	Port           string   `envconfig:"PORT" default:"8080"`
	Environment    string   `envconfig:"ENV" default:"development"` // production, development, etc.
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the process environment. It fails when
// JWT_SECRET is unset, since no token can be issued or verified without it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET must not be blank")
	}
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.AllowedOrigins = parseOrigins(cfg.AllowedOrigins)
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return &cfg, nil
}

func parseOrigins(in []string) []string {
	var out []string
	for _, part := range in {
		part = strings.TrimSpace(part)
		if part != "" && !containsOrigin(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.ToLower(o)
	for _, v := range list {
		if strings.ToLower(v) == o {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
