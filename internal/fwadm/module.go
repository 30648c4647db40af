package fwadm

import (
	"go.uber.org/fx"

	"github.com/alephnull/rfw/pkg/iptables"
	"github.com/alephnull/rfw/pkg/logger"
)

var Module = fx.Module("fwadm",
	fx.Provide(
		ProvideConfig,
		NewGate,
		NewAdmin,
	),
)

type ProvidedConfig struct {
	fx.Out

	Config       *Config
	LoggerConfig *logger.Config
}

func ProvideConfig(configFile string) (ProvidedConfig, error) {
	var cfg *Config
	var err error

	if configFile == "" {
		cfg = DefaultConfig()
	} else {
		cfg, err = LoadConfig(configFile)
		if err != nil {
			return ProvidedConfig{}, err
		}
	}

	return ProvidedConfig{
		Config:       cfg,
		LoggerConfig: cfg.Log.ToLoggerConfig(),
	}, nil
}

func NewGate(cfg *Config, log logger.Logger) *iptables.Gate {
	return iptables.NewGate(cfg.IptablesPath, log)
}
