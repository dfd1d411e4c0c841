package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/services"
	"github.com/ayanna-kiyanna/institute-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService     services.AuthService
	recoveryService services.RecoveryService
}

func NewAuthHandler(authService services.AuthService, recoveryService services.RecoveryService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:     NewBaseHandler(logger),
		authService:     authService,
		recoveryService: recoveryService,
	}
}

// Login authenticates with email and password and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in")

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Register creates a new account with the default role.
func (h *AuthHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering account")

	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Me returns the identity behind the bearer token. Dashboards call this on
// load to decide whether the session may proceed.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	profile, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ForgotPassword starts the password-recovery flow by emailing a code.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	h.LogRequest(c, "Requesting password reset")

	var req services.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	msg, err := h.recoveryService.RequestReset(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: msg})
}

// VerifyOTP checks the emailed code against the pending reset session.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	h.LogRequest(c, "Verifying reset code")

	var req services.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	msg, err := h.recoveryService.VerifyCode(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: msg})
}

// ResetPassword finishes the recovery flow with a verified code.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	h.LogRequest(c, "Resetting password")

	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	msg, err := h.recoveryService.ResetPassword(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: msg})
}
