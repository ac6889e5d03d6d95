package cli

import (
	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `env:"PCCTL_SERVER" envDefault:"http://localhost:8080"`
	RequestID string `env:"PCCTL_REQUEST_ID"`
	Output    string `env:"PCCTL_OUTPUT" envDefault:"text"`
	Verbose   bool   `env:"PCCTL_VERBOSE"`
}

// DefaultConfig returns a Config populated from the environment
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return &Config{ServerURL: "http://localhost:8080", Output: "text"}
	}
	return cfg
}
