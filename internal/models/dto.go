package models

import "time"

// ===== NOTIFICATION TYPES =====

type NotificationType string

const (
	NotificationPasswordResetOTP NotificationType = "password_reset_otp"
	NotificationPasswordChanged  NotificationType = "password_changed"
	NotificationNoticePublished  NotificationType = "notice_published"
)

type NotificationPriority string

const (
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

// ===== AUTH RESPONSES =====

// ProfileResponse is the identity endpoint payload: the resolved role plus
// the profile fields the dashboards render.
type ProfileResponse struct {
	ID            string   `json:"id"`
	FullName      string   `json:"full_name"`
	Email         string   `json:"email"`
	Role          UserRole `json:"role"`
	AvatarURL     *string  `json:"avatar_url,omitempty"`
	EmailVerified bool     `json:"email_verified"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// MessageResponse is the {message} body the recovery endpoints reply with on
// every successful step.
type MessageResponse struct {
	Message string `json:"message"`
}
