package models

import (
	"time"

	"github.com/google/uuid"
)

type School struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Location     string    `gorm:"size:200;not null" json:"location"` // city / governorate
	Address      string    `gorm:"size:200;not null" json:"address"`
	StudentCount int       `gorm:"default:0" json:"student_count"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Logo         string    `gorm:"type:text" json:"logo"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Volunteers []Volunteer `gorm:"foreignKey:SchoolID" json:"volunteers,omitempty"`
	Activities []Activity  `gorm:"foreignKey:SchoolID" json:"activities,omitempty"`
	Reports    []Report    `gorm:"foreignKey:SchoolID" json:"reports,omitempty"`
}

type ActivityStatus string

const (
	ActivityPlanned   ActivityStatus = "planned"
	ActivityOngoing   ActivityStatus = "ongoing"
	ActivityCompleted ActivityStatus = "completed"
	ActivityCancelled ActivityStatus = "cancelled"
)

// ValidActivityStatus reports whether s is one of the four allowed states.
func ValidActivityStatus(s ActivityStatus) bool {
	switch s {
	case ActivityPlanned, ActivityOngoing, ActivityCompleted, ActivityCancelled:
		return true
	}
	return false
}

type Activity struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title             string         `gorm:"size:200;not null" json:"title"`
	Description       string         `gorm:"type:text;not null" json:"description"`
	Date              time.Time      `gorm:"not null" json:"date"`
	Location          string         `gorm:"size:200" json:"location"` // spot within the school
	ParticipantsCount int            `gorm:"default:0" json:"participants_count"`
	Status            ActivityStatus `gorm:"type:varchar(20);default:'planned'" json:"status"`

	SchoolID uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	School   School    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	MediaItems []Media `gorm:"foreignKey:ActivityID" json:"media_items,omitempty"`
}
