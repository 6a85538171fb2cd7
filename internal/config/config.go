// Package config loads application configuration from an optional YAML file
// and environment variables, over code defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Log     LogConfig     `koanf:"log"`
	Store   StoreConfig   `koanf:"store"`
	Latency LatencyConfig `koanf:"latency"`
	CORS    CORSConfig    `koanf:"cors"`
	Contact ContactConfig `koanf:"contact"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              string        `koanf:"port"`
	MetricsPort       string        `koanf:"metrics_port"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// StoreConfig selects and configures the key-value store backend.
type StoreConfig struct {
	// Driver is "sqlite" or "memory".
	Driver string `koanf:"driver"`
	// Path is the sqlite database file. Ignored by the memory driver.
	Path string `koanf:"path"`
}

// LatencyConfig configures the simulated network delay.
type LatencyConfig struct {
	// Delay is applied to every service operation. Zero disables it.
	Delay time.Duration `koanf:"delay"`
}

// CORSConfig contains CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// ContactConfig contains contact form settings.
type ContactConfig struct {
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              "8080",
			MetricsPort:       "9090",
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "interndesk.db",
		},
		Latency: LatencyConfig{
			// The mock backend this service replaces resolved every call
			// after 500ms.
			Delay: 500 * time.Millisecond,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Contact: ContactConfig{
			RateLimit: 1,
			RateBurst: 5,
		},
	}
}

// envPrefix is the prefix for environment overrides. Nested keys use a
// double underscore, e.g. INTERNDESK_SERVER__PORT=8081.
const envPrefix = "INTERNDESK_"

// Load reads configuration from the YAML file at path (if it exists) and
// from INTERNDESK_* environment variables, over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %q: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Store.Driver == "sqlite" && c.Store.Path == "" {
		return fmt.Errorf("store.path is required for the sqlite driver")
	}

	return nil
}
