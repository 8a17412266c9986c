package models

import (
	"time"

	"github.com/google/uuid"
)

type Article struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Slug          string    `gorm:"size:250;uniqueIndex;not null" json:"slug"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Summary       string    `gorm:"size:300" json:"summary"`
	FeaturedImage string    `gorm:"type:text" json:"featured_image"`
	Category      string    `gorm:"size:50;not null" json:"category"` // constitution | geography | economy | history | diplomacy

	AuthorID uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	IsPublished bool       `gorm:"default:false" json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ViewCount   int        `gorm:"default:0" json:"view_count"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Comments []ArticleComment `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE;" json:"comments,omitempty"`
	Quizzes  []Quiz           `gorm:"foreignKey:ArticleID" json:"quizzes,omitempty"`
}

type ArticleComment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ArticleID  uuid.UUID `gorm:"type:uuid;not null;index" json:"article_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsApproved bool      `gorm:"default:false" json:"is_approved"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Article Article `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
