package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tabi/internal/models/request_models"
	"tabi/internal/services"
	"tabi/pkg/utils"
)

type PackingController struct {
	packingService services.PackingServiceInterface
}

func NewPackingController(packingService services.PackingServiceInterface) *PackingController {
	return &PackingController{packingService: packingService}
}

func (pc *PackingController) ChecklistHandler(c *gin.Context) {
	utils.RespondSuccess(c, pc.packingService.Checklist(c.Request.Context()), "Fetched packing list successfully")
}

func (pc *PackingController) ToggleHandler(c *gin.Context) {
	var req request_models.TogglePackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	checked, err := pc.packingService.Toggle(c.Request.Context(), req.Category, req.Item)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"checked": checked}, "Packing item updated")
}

func (pc *PackingController) ResetHandler(c *gin.Context) {
	if err := pc.packingService.Reset(c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "All checks cleared")
}
