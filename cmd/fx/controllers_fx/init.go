package controllers_fx

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabi/internal/api/controllers"
	"tabi/internal/services"
	"tabi/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(provideHomeController),
	fx.Provide(controllers.NewPackingController),
	fx.Provide(controllers.NewGuideController),
	fx.Provide(controllers.NewToolsController))

// Status is planned on the same wall clock the itinerary timestamps use.
func provideHomeController(morning services.MorningServiceInterface, normalizer *utils.DateNormalizer, logger *zap.Logger) *controllers.HomeController {
	hc := controllers.NewHomeController(morning, logger)
	hc.Now = func() time.Time { return time.Now().In(normalizer.Location) }
	return hc
}
