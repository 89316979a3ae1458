package home_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabi/internal/config"
	"tabi/internal/repositories"
	"tabi/internal/services"
)

var Module = fx.Provide(provideMorningService)

func provideMorningService(
	cfg *config.Config,
	itinerary services.ItineraryServiceInterface,
	preferences repositories.PreferenceRepository,
	logger *zap.Logger,
) services.MorningServiceInterface {
	return services.NewMorningService(services.MorningConfig{
		TripStart:       cfg.TripStart,
		DefaultPrepTime: cfg.DefaultPrepTime,
	}, itinerary, preferences, logger)
}
