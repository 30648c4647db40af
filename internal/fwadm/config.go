package fwadm

import (
	"fmt"

	"github.com/alephnull/rfw/internal/config"
	"github.com/alephnull/rfw/pkg/iptables"
)

type Config struct {
	// IptablesPath is the iptables binary invoked for every operation.
	IptablesPath string           `mapstructure:"iptables_path" json:"iptables_path" yaml:"iptables_path"`
	Log          config.LogConfig `mapstructure:"log" json:"log" yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		IptablesPath: iptables.DefaultPath,
		Log:          config.DefaultLogConfig(),
	}
}

func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	if err := config.Load("rfw", configFile, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.IptablesPath == "" {
		return fmt.Errorf("iptables path is required")
	}
	return nil
}

func (c *Config) GetLog() *config.LogConfig {
	return &c.Log
}
