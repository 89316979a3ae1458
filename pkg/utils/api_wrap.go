package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinel errors onto the response envelope.
// Import rejections carry their own user-facing message.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrImportMalformed):
		RespondError(c, http.StatusBadRequest, ErrImportMalformed.Error())
	case errors.Is(err, ErrImportNotArray):
		RespondError(c, http.StatusBadRequest, ErrImportNotArray.Error())
	case errors.Is(err, ErrMissingDate):
		RespondError(c, http.StatusBadRequest, "Date is required")
	case errors.Is(err, ErrDayNotFound):
		RespondError(c, http.StatusNotFound, "No itinerary for this day")
	case errors.Is(err, ErrEmptyPrompt):
		RespondError(c, http.StatusBadRequest, "Prompt cannot be empty")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrStoreFailure):
		zap.L().Error("store error", zap.Error(err), zap.String("trace_id", traceID(c)))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unknown error", zap.Error(err), zap.String("trace_id", traceID(c)))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
