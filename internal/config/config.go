package config

import (
	"fmt"

	"github.com/alephnull/rfw/pkg/logger"
)

// Config is implemented by every loadable app configuration.
type Config interface {
	Validate() error
	GetLog() *LogConfig
}

type LogConfig struct {
	Level  logger.Level  `mapstructure:"level" json:"level" yaml:"level"`
	Format logger.Format `mapstructure:"format" json:"format" yaml:"format"`
}

func (c *LogConfig) ToLoggerConfig() *logger.Config {
	return &logger.Config{
		Level:  c.Level,
		Format: c.Format,
	}
}

func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  logger.LevelInfo,
		Format: logger.FormatText,
	}
}

// Load reads an optional config file plus environment overrides into cfg and
// validates it. An empty configFile means env and defaults only.
func Load(appName string, configFile string, cfg Config) error {
	loader := NewLoader(appName)

	if err := loader.LoadFile(configFile); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := loader.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
