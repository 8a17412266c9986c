package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Message  string    `gorm:"size:250;not null" json:"message"`
	Category string    `gorm:"size:20;default:'info'" json:"category"` // info | success | warning | danger
	IsRead   bool      `gorm:"default:false" json:"is_read"`
	Link     *string   `gorm:"size:250" json:"link,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`

	User User `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
