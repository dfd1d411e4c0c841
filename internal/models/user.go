package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
	RoleStudent   UserRole = "student"
	RoleUser      UserRole = "user"
)

// ParseRole maps a stored role string onto the closed role set. Unknown values
// degrade to RoleUser, never to a privileged role.
func ParseRole(role string) UserRole {
	switch UserRole(role) {
	case RoleAdmin, RoleModerator, RoleStudent:
		return UserRole(role)
	default:
		return RoleUser
	}
}

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	FullName string   `json:"full_name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role     UserRole `json:"role" gorm:"not null;size:20;default:user"`

	PasswordHash string `json:"-" gorm:"not null;size:255"`

	// Profile info
	AvatarURL *string `json:"avatar_url" gorm:"size:500"`

	// Status
	EmailVerified bool `json:"email_verified" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
