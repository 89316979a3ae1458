package tools_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabi/internal/config"
	"tabi/internal/services"
	mem "tabi/pkg/memcache"
)

var Module = fx.Provide(
	provideToolsService,
	provideWeatherService,
)

func provideToolsService(cfg *config.Config) services.ToolsServiceInterface {
	return services.NewToolsService(cfg.ExchangeRate)
}

func provideWeatherService(cfg *config.Config, cache *mem.Store, logger *zap.Logger) services.WeatherServiceInterface {
	return services.NewWeatherService(services.WeatherConfig{
		Latitude:  cfg.WeatherLatitude,
		Longitude: cfg.WeatherLongitude,
		CacheTTL:  cfg.WeatherCacheTTL,
	}, cache, logger.Named("weather"))
}
