package config

import (
	"errors"
	"time"
)

const DefaultServerAddr = "127.0.0.1:50051"

// Config is what the CLI needs to reach the server.
type Config struct {
	ServerEndpointAddr string
	// RequestTimeout bounds each RPC; zero leaves calls unbounded.
	RequestTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	*c = Config{ServerEndpointAddr: DefaultServerAddr, RequestTimeout: 10 * time.Second}
}

func (c *Config) Validate() error {
	if c.ServerEndpointAddr == "" {
		return errors.New("server address must not be empty")
	}
	if c.RequestTimeout < 0 {
		return errors.New("request timeout must not be negative")
	}
	return nil
}

// LoadConfig layers defaults, the optional JSON file and flags, in that
// order, and panics on input it cannot parse.
func LoadConfig() *Config {
	cfg := new(Config)
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
