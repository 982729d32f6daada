// Package config loads server and dispatcher settings from a YAML file.
package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library representation.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Redis configures the optional Redis document source.
type Redis struct {
	// Addr is the host:port of the Redis server; empty selects the
	// in-memory source instead.
	Addr   string   `yaml:"addr"`
	Prefix string   `yaml:"prefix"`
	TTL    Duration `yaml:"ttl"`
}

// Config is the root configuration of a sluice-backed server.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen"`

	// DefaultStatus is the status of the action applied when a producer
	// completes empty.
	DefaultStatus int `yaml:"default_status"`

	// DispatchTimeout bounds every dispatched producer; zero disables it.
	DispatchTimeout Duration `yaml:"dispatch_timeout"`

	Redis Redis `yaml:"redis"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:          ":8080",
		DefaultStatus:   http.StatusNotFound,
		DispatchTimeout: Duration(10 * time.Second),
		Redis: Redis{
			Prefix: "sluice:",
		},
	}
}

// Load reads path over the defaults. A missing file is an error; call
// Default directly when configuration is optional.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Listen == "" {
		return nil, fmt.Errorf("config %s: listen must not be empty", path)
	}
	return cfg, nil
}
