package tripdata_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabi/internal/config"
	"tabi/internal/services"
	"tabi/pkg/utils"
)

var Module = fx.Provide(provideTripDataService)

func provideTripDataService(cfg *config.Config, normalizer *utils.DateNormalizer, logger *zap.Logger) services.TripDataServiceInterface {
	return services.NewTripDataService(services.TripDataConfig{
		ItineraryURL: cfg.ItinerarySheetURL,
		PackingURL:   cfg.PackingSheetURL,
		Timeout:      cfg.FetchTimeout,
	}, normalizer, logger.Named("tripdata"))
}
