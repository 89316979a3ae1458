package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"tabi/internal/models/request_models"
	"tabi/internal/models/response_models"
	"tabi/internal/services"
	"tabi/pkg/utils"
)

const statusWriteWait = 5 * time.Second

var statusUpgrader = websocket.Upgrader{
	// the display layer is served from its own origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

type HomeController struct {
	morningService services.MorningServiceInterface
	logger         *zap.Logger

	Now  func() time.Time
	Tick time.Duration
}

func NewHomeController(morningService services.MorningServiceInterface, logger *zap.Logger) *HomeController {
	return &HomeController{
		morningService: morningService,
		logger:         logger,
		Now:            time.Now,
		Tick:           time.Second,
	}
}

// StatusHandler accepts an optional RFC3339 ?now= for previewing another moment.
func (hc *HomeController) StatusHandler(c *gin.Context) {
	now := hc.Now()
	if raw := c.Query("now"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "now must be an RFC3339 timestamp")
			return
		}
		now = parsed.In(now.Location())
	}
	utils.RespondSuccess(c, hc.morningService.Status(c.Request.Context(), now), "Fetched status successfully")
}

func (hc *HomeController) GetPrepTimeHandler(c *gin.Context) {
	minutes := hc.morningService.PrepTime(c.Request.Context())
	utils.RespondSuccess(c, response_models.PrepTimeResponse{Minutes: minutes}, "Fetched prep time")
}

func (hc *HomeController) SetPrepTimeHandler(c *gin.Context) {
	var req request_models.PrepTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Minutes == nil {
		utils.RespondError(c, http.StatusBadRequest, "minutes is required")
		return
	}

	minutes, err := hc.morningService.SetPrepTime(c.Request.Context(), *req.Minutes)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.PrepTimeResponse{Minutes: minutes}, "Prep time updated")
}

func (hc *HomeController) AdjustPrepTimeHandler(c *gin.Context) {
	var req request_models.AdjustPrepTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	minutes, err := hc.morningService.AdjustPrepTime(c.Request.Context(), req.Delta)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.PrepTimeResponse{Minutes: minutes}, "Prep time updated")
}

// StatusSocketHandler pushes the home status once per tick until the client goes away.
func (hc *HomeController) StatusSocketHandler(c *gin.Context) {
	conn, err := statusUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hc.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func() error {
		_ = conn.SetWriteDeadline(time.Now().Add(statusWriteWait))
		return conn.WriteJSON(hc.morningService.Status(ctx, hc.Now()))
	}
	if err := send(); err != nil {
		return
	}

	ticker := time.NewTicker(hc.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := send(); err != nil {
				hc.logger.Debug("status socket closed", zap.Error(err))
				return
			}
		}
	}
}
