package logger

import (
	"context"

	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Config *Config `optional:"true"`
}

func NewLogger(lc fx.Lifecycle, p Params) (Logger, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	log, err := NewSlogLogger(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return log.Sync()
		},
	})

	return log, nil
}

var Module = fx.Provide(NewLogger)
