package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
	"github.com/ayanna-kiyanna/institute-service/internal/services"
	"github.com/ayanna-kiyanna/institute-service/internal/utils"
	"github.com/ayanna-kiyanna/institute-service/internal/validator"
)

type ErrorResponse = models.ErrorResponse

// BaseHandler carries the shared handler utilities.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs a handler entry with the request-scoped logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

// LogError logs a handler failure with the request-scoped logger.
func (h *BaseHandler) LogError(c *gin.Context, msg string, err error, args ...any) {
	args = append([]any{"error", err}, args...)
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// handleServiceError translates service errors to HTTP responses. Recovery
// errors keep their message intact so the client can surface it directly.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var recoveryErr *services.RecoveryError

	switch {
	case errors.As(err, &recoveryErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: recoveryErr.Message,
		})
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Message: validationErrs.Error(),
			Details: validationErrs,
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: err.Error(),
		})
	case services.IsPermissionError(err):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: err.Error(),
		})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "resource not found",
		})
	default:
		h.LogError(c, "unhandled service error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "internal server error",
		})
	}
}
