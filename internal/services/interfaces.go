package services

import (
	"context"

	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
	"github.com/ayanna-kiyanna/institute-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type LoginRequest = validator.LoginRequest
type RegisterRequest = validator.RegisterRequest
type ForgotPasswordRequest = validator.ForgotPasswordRequest
type VerifyOTPRequest = validator.VerifyOTPRequest
type ResetPasswordRequest = validator.ResetPasswordRequest
type NoticeCreateRequest = validator.NoticeCreateRequest
type NoticeUpdateRequest = validator.NoticeUpdateRequest

type NoticeListResponse struct {
	Notices []*models.Notice `json:"notices"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Size    int              `json:"size"`
}

type UserListResponse struct {
	Users []*models.User `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

// NotificationRequest describes a notification to dispatch to users.
type NotificationRequest struct {
	Type     models.NotificationType     `json:"type" validate:"required"`
	Title    string                      `json:"title" validate:"required,max=200"`
	Message  string                      `json:"message" validate:"required,max=2000"`
	Priority models.NotificationPriority `json:"priority"`
	Email    string                      `json:"email,omitempty"`
}

// ===== SERVICE INTERFACES =====

// AuthService owns login and identity resolution.
type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req *RegisterRequest) (*models.LoginResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error)
}

// RecoveryService drives the server side of the three-step password-reset
// flow. Each method returns the user-facing message for its step.
type RecoveryService interface {
	RequestReset(ctx context.Context, req *ForgotPasswordRequest) (string, error)
	VerifyCode(ctx context.Context, req *VerifyOTPRequest) (string, error)
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) (string, error)
}

// NoticeService owns institute announcements.
type NoticeService interface {
	Create(ctx context.Context, req *NoticeCreateRequest, creatorID string) (*models.Notice, error)
	GetByID(ctx context.Context, id uint) (*models.Notice, error)
	Update(ctx context.Context, id uint, req *NoticeUpdateRequest, userID string, userRole models.UserRole) (*models.Notice, error)
	Delete(ctx context.Context, id uint, userID string, userRole models.UserRole) error
	List(ctx context.Context, filters repositories.NoticeFilters) (*NoticeListResponse, error)
}

// StudentService owns the student directory.
type StudentService interface {
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
	Search(ctx context.Context, query string, filters repositories.UserFilters) (*UserListResponse, error)
	ExportRoster(ctx context.Context) ([]byte, error)
}

// NotificationEventService publishes notification events for the external
// mail/notification workers.
type NotificationEventService interface {
	SendNotification(ctx context.Context, req *NotificationRequest) error
}

// ServiceManager provides access to all services
type ServiceManager interface {
	Auth() AuthService
	Recovery() RecoveryService
	Notice() NoticeService
	Student() StudentService
	Notification() NotificationEventService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
