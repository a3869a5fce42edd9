// Package config assembles the runtime settings of the BookTrade CLI from
// layered sources: built-in defaults, a .env / environment overlay, an
// optional JSON file and finally command-line flags. Later layers win.
package config

import "time"

// Config holds runtime settings for the BookTrade CLI.
//
// Units: RequestTimeout and OnlineCheckInterval are time.Durations.
type Config struct {
	// ServerEndpointAddr is the base URL of the backend API,
	// e.g. "http://127.0.0.1:8000".
	ServerEndpointAddr string
	// RequestTimeout bounds every single HTTP request.
	RequestTimeout time.Duration
	// OnlineCheckInterval is how often the client probes backend
	// reachability to switch between online and offline mode.
	OnlineCheckInterval time.Duration
	// DatabasePath is the SQLite file holding the session token and the
	// listing cache.
	DatabasePath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "booktrade.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a .env file when present), JSON (if a config
// file was given) and command-line flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
