package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleVisitor     UserRole = "visitor"
	RoleVolunteer   UserRole = "volunteer"
	RoleCoordinator UserRole = "school_coordinator"
	RoleAdmin       UserRole = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"type:text;not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'visitor'" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	ProfileImage string    `gorm:"type:text" json:"profile_image"`

	// Coordinators are scoped to exactly one school.
	SchoolID *uuid.UUID `gorm:"type:uuid" json:"school_id,omitempty"`
	School   *School    `gorm:"foreignKey:SchoolID" json:"school,omitempty"`

	// Volunteers who also hold an account.
	VolunteerID *uuid.UUID `gorm:"type:uuid" json:"volunteer_id,omitempty"`
	Volunteer   *Volunteer `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`

	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Notifications []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsCoordinator() bool {
	return u.Role == RoleCoordinator
}

// CoordinatorOf reports whether the user is the coordinator of the given school.
func (u *User) CoordinatorOf(schoolID uuid.UUID) bool {
	return u.Role == RoleCoordinator && u.SchoolID != nil && *u.SchoolID == schoolID
}
