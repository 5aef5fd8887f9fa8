package config

import "time"

// Config holds runtime settings for the todokeeper terminal client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the HTTP API.
//   - SessionDBPath: SQLite file keeping the session between runs.
//   - RequestTimeout: deadline for a single API call.
type Config struct {
	ServerEndpointAddr string
	SessionDBPath      string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:3000"
	c.SessionDBPath = "todokeeper.db"
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
