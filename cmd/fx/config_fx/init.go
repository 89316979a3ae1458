package config_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"tabi/internal/config"
	"tabi/internal/infra"
	"tabi/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(
		config.Load,
		provideLogger,
		provideNormalizer,
	),
)

// EventLogger routes fx lifecycle events through zap. One-shot commands use fx.NopLogger instead.
var EventLogger = fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: logger.Named("fx")}
})

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	logger, err := infra.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}

// Sheet dates are read on the device's wall clock.
func provideNormalizer(cfg *config.Config) *utils.DateNormalizer {
	return utils.NewDateNormalizer(cfg.TripYear, time.Local)
}
