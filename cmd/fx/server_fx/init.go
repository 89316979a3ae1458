package server_fx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabi/internal/api/controllers"
	"tabi/internal/config"
	"tabi/internal/services"
	"tabi/pkg/middleware"
	"tabi/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(ProvideRouter),
	fx.Invoke(StartServer),
)

type RouterParams struct {
	fx.In

	Config    *config.Config
	Logger    *zap.Logger
	Itinerary *controllers.ItineraryController
	Home      *controllers.HomeController
	Packing   *controllers.PackingController
	Guide     *controllers.GuideController
	Tools     *controllers.ToolsController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if !p.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if p.Config.IsDevelopment() {
		r.Use(gin.Logger())
	}
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(p.Config.CORSOrigins))

	RegisterRoutes(r, p, middleware.NewRateLimiter(p.Config.GuideRequestsPerMinute))
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams, guideLimiter *middleware.RateLimiter) {
	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})

	itineraryGroup := r.Group("/itinerary")
	itineraryGroup.GET("", p.Itinerary.ListItineraryHandler)
	itineraryGroup.GET("/days", p.Itinerary.ListDaysHandler)
	itineraryGroup.GET("/day", p.Itinerary.GetDayHandler)
	itineraryGroup.PUT("/overrides", p.Itinerary.ImportDayHandler)
	itineraryGroup.DELETE("/overrides", p.Itinerary.ResetOverridesHandler)
	itineraryGroup.POST("/destinations", p.Itinerary.ResolveDestinationsHandler)

	r.POST("/trip/reload", p.Itinerary.ReloadTripDataHandler)

	r.GET("/home/status", p.Home.StatusHandler)
	r.GET("/ws/status", p.Home.StatusSocketHandler)

	prefGroup := r.Group("/preferences")
	prefGroup.GET("/prep-time", p.Home.GetPrepTimeHandler)
	prefGroup.PUT("/prep-time", p.Home.SetPrepTimeHandler)
	prefGroup.POST("/prep-time/adjust", p.Home.AdjustPrepTimeHandler)

	packingGroup := r.Group("/packing")
	packingGroup.GET("", p.Packing.ChecklistHandler)
	packingGroup.POST("/toggle", p.Packing.ToggleHandler)
	packingGroup.DELETE("/checked", p.Packing.ResetHandler)

	r.POST("/guide", guideLimiter.Limit(), p.Guide.AskHandler)

	toolsGroup := r.Group("/tools")
	toolsGroup.GET("/weather", p.Tools.WeatherHandler)
	toolsGroup.GET("/currency", p.Tools.CurrencyHandler)
	toolsGroup.GET("/phrases", p.Tools.PhrasesHandler)
}

// StartServer loads the trip data in the background and serves the API.
func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, tripData services.TripDataServiceInterface, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	loadCtx, cancelLoad := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}

			go func() {
				data := tripData.Reload(loadCtx)
				logger.Info("trip data loaded",
					zap.Int("itinerary", len(data.Itinerary)),
					zap.Int("packing", len(data.Packing)))
			}()

			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			cancelLoad()
			return srv.Shutdown(ctx)
		},
	})
}
