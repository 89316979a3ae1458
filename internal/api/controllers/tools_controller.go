package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"tabi/internal/services"
	"tabi/pkg/utils"
)

type ToolsController struct {
	toolsService   services.ToolsServiceInterface
	weatherService services.WeatherServiceInterface
	logger         *zap.Logger
}

func NewToolsController(
	toolsService services.ToolsServiceInterface,
	weatherService services.WeatherServiceInterface,
	logger *zap.Logger,
) *ToolsController {
	return &ToolsController{
		toolsService:   toolsService,
		weatherService: weatherService,
		logger:         logger,
	}
}

// WeatherHandler never fails the request; no data means the widget shows "--".
func (tc *ToolsController) WeatherHandler(c *gin.Context) {
	weather, err := tc.weatherService.Current(c.Request.Context())
	if err != nil {
		tc.logger.Warn("fetching weather", zap.Error(err))
		utils.RespondSuccess(c, nil, "Weather unavailable")
		return
	}
	utils.RespondSuccess(c, weather, "Fetched weather successfully")
}

func (tc *ToolsController) CurrencyHandler(c *gin.Context) {
	if raw, ok := c.GetQuery("twd"); ok {
		twd, err := strconv.ParseFloat(raw, 64)
		if err != nil || twd < 0 {
			utils.RespondError(c, http.StatusBadRequest, "Invalid twd amount")
			return
		}
		utils.RespondSuccess(c, tc.toolsService.ConvertTWD(twd), "Converted")
		return
	}

	jpy, err := strconv.ParseFloat(c.DefaultQuery("jpy", "1000"), 64)
	if err != nil || jpy < 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid jpy amount")
		return
	}
	utils.RespondSuccess(c, tc.toolsService.ConvertJPY(jpy), "Converted")
}

func (tc *ToolsController) PhrasesHandler(c *gin.Context) {
	phrases, err := tc.toolsService.Phrases(c.DefaultQuery("category", "all"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, phrases, "Fetched phrases successfully")
}
