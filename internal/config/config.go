package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Log     LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"SERVER_PORT" default:"3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
}

// BackendConfig holds deals-backend configuration.
// WARNING: the default base URL points at a local emulator.
// In production, always set BACKEND_BASE_URL and BACKEND_AUTH_TOKEN
// via environment variables.
type BackendConfig struct {
	BaseURL   string `envconfig:"BACKEND_BASE_URL" default:"http://localhost:5001/api"`
	AuthToken string `envconfig:"BACKEND_AUTH_TOKEN" default:""`
	TimeoutMS int    `envconfig:"BACKEND_TIMEOUT_MS" default:"10000"`
}

// Timeout returns the backend request timeout as a duration.
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load parses environment variables into the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
