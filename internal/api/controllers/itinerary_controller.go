package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"tabi/internal/models/request_models"
	"tabi/internal/services"
	"tabi/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	tripDataService  services.TripDataServiceInterface
}

func NewItineraryController(
	itineraryService services.ItineraryServiceInterface,
	tripDataService services.TripDataServiceInterface,
) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		tripDataService:  tripDataService,
	}
}

func (ic *ItineraryController) ListItineraryHandler(c *gin.Context) {
	utils.RespondSuccess(c, ic.itineraryService.Itinerary(c.Request.Context()), "Fetched itinerary successfully")
}

func (ic *ItineraryController) ListDaysHandler(c *gin.Context) {
	utils.RespondSuccess(c, ic.itineraryService.Days(c.Request.Context()), "Fetched days successfully")
}

func (ic *ItineraryController) GetDayHandler(c *gin.Context) {
	day, err := ic.itineraryService.Day(c.Request.Context(), strings.TrimSpace(c.Query("date")))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, day, "Fetched day successfully")
}

// ImportDayHandler takes the pasted JSON array as the raw request body.
func (ic *ItineraryController) ImportDayHandler(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	entries, err := ic.itineraryService.ImportDay(c.Request.Context(), strings.TrimSpace(c.Query("date")), string(raw))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, entries, "Itinerary updated")
}

// ResetOverridesHandler drops one day's override, or all of them without ?date.
func (ic *ItineraryController) ResetOverridesHandler(c *gin.Context) {
	ctx := c.Request.Context()
	date, hasDate := c.GetQuery("date")
	if !hasDate {
		if err := ic.itineraryService.ResetAll(ctx); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		utils.RespondSuccess(c, nil, "All overrides removed")
		return
	}

	if err := ic.itineraryService.ResetDay(ctx, strings.TrimSpace(date)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Override removed")
}

func (ic *ItineraryController) ResolveDestinationsHandler(c *gin.Context) {
	var req request_models.DestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	utils.RespondSuccess(c, ic.itineraryService.Destinations(req.Activity, req.Link), "Resolved destinations")
}

func (ic *ItineraryController) ReloadTripDataHandler(c *gin.Context) {
	data := ic.tripDataService.Reload(c.Request.Context())
	utils.RespondSuccess(c, gin.H{
		"itinerary": len(data.Itinerary),
		"packing":   len(data.Packing),
	}, "Trip data reloaded")
}
