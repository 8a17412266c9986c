package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Media struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:20;not null" json:"type"` // video | image | document | external

	FilePath      string `gorm:"type:text" json:"file_path"`
	ExternalURL   string `gorm:"type:text" json:"external_url"`
	ThumbnailPath string `gorm:"type:text" json:"thumbnail_path"`

	UserID     uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	Creator    User       `gorm:"foreignKey:UserID" json:"creator,omitempty"`
	SchoolID   *uuid.UUID `gorm:"type:uuid" json:"school_id,omitempty"`
	ActivityID *uuid.UUID `gorm:"type:uuid" json:"activity_id,omitempty"`

	IsApproved bool       `gorm:"default:false" json:"is_approved"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	Featured   bool       `gorm:"default:false" json:"featured"`
	ViewCount  int        `gorm:"default:0" json:"view_count"`
	Tags       string     `gorm:"size:255" json:"tags"` // comma separated

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Ratings  []MediaRating  `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE;" json:"ratings,omitempty"`
	Comments []MediaComment `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE;" json:"comments,omitempty"`
}

func (m *Media) TagList() []string {
	if m.Tags == "" {
		return nil
	}
	parts := strings.Split(m.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ClampRating forces a star value into the allowed 1..5 range.
func ClampRating(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

type MediaRating struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MediaID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_media_user_rating" json:"media_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_media_user_rating" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Media Media `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type MediaComment struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MediaID    uuid.UUID `gorm:"type:uuid;not null;index" json:"media_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsApproved bool      `gorm:"default:false" json:"is_approved"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Media Media `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type MediaCollection struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	SchoolID    *uuid.UUID `gorm:"type:uuid" json:"school_id,omitempty"`
	IsPublic    bool       `gorm:"default:true" json:"is_public"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Creator User                  `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Items   []MediaCollectionItem `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE;" json:"items,omitempty"`
}

type MediaCollectionItem struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CollectionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_collection_media" json:"collection_id"`
	MediaID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_collection_media" json:"media_id"`
	Order        int       `gorm:"column:display_order;default:0" json:"order"`
	AddedAt      time.Time `gorm:"autoCreateTime" json:"added_at"`

	Collection MediaCollection `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Media      Media           `gorm:"foreignKey:MediaID" json:"media,omitempty"`
}
