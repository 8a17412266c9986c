package models

import (
	"time"

	"github.com/google/uuid"
)

type Volunteer struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Phone       string    `gorm:"size:20" json:"phone"`
	Skills      string    `gorm:"size:50;not null" json:"skills"` // primary skill category
	OtherSkills string    `gorm:"size:200" json:"other_skills"`
	Grade       string    `gorm:"size:20;not null" json:"grade"`

	SchoolID uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	School   School    `gorm:"foreignKey:SchoolID" json:"school,omitempty"`

	IsActive          bool      `gorm:"default:true" json:"is_active"`
	EmailConfirmed    bool      `gorm:"default:false" json:"email_confirmed"`
	ConfirmationToken *string   `gorm:"size:100" json:"-"`
	RegisteredAt      time.Time `gorm:"autoCreateTime" json:"registered_at"`

	Contributions []Contribution `gorm:"foreignKey:VolunteerID" json:"contributions,omitempty"`
}

type ContributionType string

const (
	ContributionMedia    ContributionType = "media"
	ContributionArticle  ContributionType = "article"
	ContributionReport   ContributionType = "report"
	ContributionActivity ContributionType = "activity"
)

// Contribution is a typed pointer to something a volunteer produced. The
// referenced item may be deleted independently; readers tolerate the gap.
type Contribution struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VolunteerID uuid.UUID        `gorm:"type:uuid;not null;index" json:"volunteer_id"`
	Type        ContributionType `gorm:"type:varchar(20);not null" json:"type"`
	ItemID      uuid.UUID        `gorm:"type:uuid;not null" json:"item_id"`
	Notes       string           `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`

	Volunteer Volunteer `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
