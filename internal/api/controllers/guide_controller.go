package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tabi/internal/models/request_models"
	"tabi/internal/models/response_models"
	"tabi/internal/services"
	"tabi/pkg/utils"
)

type GuideController struct {
	guideService     services.GuideServiceInterface
	itineraryService services.ItineraryServiceInterface
}

func NewGuideController(guideService services.GuideServiceInterface, itineraryService services.ItineraryServiceInterface) *GuideController {
	return &GuideController{
		guideService:     guideService,
		itineraryService: itineraryService,
	}
}

func (gc *GuideController) AskHandler(c *gin.Context) {
	var req request_models.GuidePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	ctx := c.Request.Context()
	answer, err := gc.guideService.Suggest(ctx, req.Prompt, gc.itineraryService.Entries(ctx))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.GuideResponse{Answer: answer}, "Guide answered")
}
