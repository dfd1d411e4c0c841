package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ayanna-kiyanna/institute-service/internal/config"
	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
	"github.com/ayanna-kiyanna/institute-service/internal/services"
	"github.com/ayanna-kiyanna/institute-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	noticeHandler  *NoticeHandler
	studentHandler *StudentHandler
	authMiddleware *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	jwtConfig config.JWTConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), serviceManager.Recovery(), logger),
		noticeHandler:  NewNoticeHandler(serviceManager.Notice(), logger),
		studentHandler: NewStudentHandler(serviceManager.Student(), logger),
		authMiddleware: NewJWTAuthMiddleware(jwtConfig, userRepo),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Auth routes. Login, registration and the three recovery steps are
		// the only endpoints reachable without a token.
		auth := v1.Group("/auth")
		{
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/forgot-password", hm.authHandler.ForgotPassword)
			auth.POST("/verify-otp", hm.authHandler.VerifyOTP)
			auth.POST("/reset-password", hm.authHandler.ResetPassword)

			auth.GET("/me", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Me)
		}

		// Notice routes
		notices := v1.Group("/notices")
		notices.Use(hm.authMiddleware.AuthMiddleware())
		{
			notices.GET("", hm.noticeHandler.ListNotices)
			notices.GET("/:id", hm.noticeHandler.GetNotice)

			// Publishing and managing notices - Moderators and Admins only
			notices.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleModerator, models.RoleAdmin), hm.noticeHandler.CreateNotice)
			notices.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleModerator, models.RoleAdmin), hm.noticeHandler.UpdateNotice)
			notices.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleModerator, models.RoleAdmin), hm.noticeHandler.DeleteNotice)
		}

		// Student directory - Moderators and Admins only
		students := v1.Group("/students")
		students.Use(hm.authMiddleware.AuthMiddleware())
		students.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleModerator, models.RoleAdmin))
		{
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/search", hm.studentHandler.SearchStudents)
			students.GET("/export", hm.studentHandler.ExportStudents)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "institute-service",
		})
	})
}
