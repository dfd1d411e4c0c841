package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NoticeAudience string

const (
	AudienceAll      NoticeAudience = "all"
	AudienceStudents NoticeAudience = "students"
	AudienceStaff    NoticeAudience = "staff"
)

// Notice is an institute announcement shown on the student and admin
// dashboards.
type Notice struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	Title    string         `json:"title" gorm:"not null;size:200"`
	Body     string         `json:"body" gorm:"not null;type:text"`
	Audience NoticeAudience `json:"audience" gorm:"not null;size:20;default:all"`
	Pinned   bool           `json:"pinned" gorm:"default:false"`

	// Attachment descriptors (secure URL + public identifier pairs) returned
	// by the external media upload service.
	Attachments datatypes.JSON `json:"attachments,omitempty"`

	CreatedByID string `json:"created_by_id" gorm:"not null;size:255;index"`
	CreatedBy   *User  `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Notice) TableName() string {
	return "notices"
}
