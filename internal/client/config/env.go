package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envConfig is a DTO for the environment overlay. Zero values mean "not set"
// and leave the current Config value untouched.
type envConfig struct {
	ServerEndpointAddr  string        `env:"BOOKTRADE_SERVER_ADDR"`
	RequestTimeout      time.Duration `env:"BOOKTRADE_REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"BOOKTRADE_ONLINE_CHECK_INTERVAL"`
	DatabasePath        string        `env:"BOOKTRADE_DATABASE_PATH"`
}

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first when present; a missing file
// is not an error. Real environment variables win over .env entries.
func parseEnv(cfg *Config) error {
	_ = godotenv.Load()

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return err
	}

	if ec.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = ec.ServerEndpointAddr
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.OnlineCheckInterval > 0 {
		cfg.OnlineCheckInterval = ec.OnlineCheckInterval
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	return nil
}
