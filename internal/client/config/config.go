// Package config handles configuration for the CLI client, including
// defaults, environment overlay (with optional .env file), and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the pixeldrop CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the pixeldrop API server.
//   - RequestTimeout: per-call timeout for the JSON API.
//   - TransferTimeout: timeout for one direct-to-storage PUT. Bounded on
//     purpose: an unbounded hang stalls the whole sequential batch.
type Config struct {
	ServerBaseURL   string
	RequestTimeout  time.Duration
	TransferTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.TransferTimeout = 5 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment and command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
