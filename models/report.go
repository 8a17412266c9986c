package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportSubmitted ReportStatus = "submitted"
	ReportReviewed  ReportStatus = "reviewed"
	ReportApproved  ReportStatus = "approved"
	ReportRejected  ReportStatus = "rejected"
)

type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:50;not null" json:"type"` // activity | event | progress | issue

	SchoolID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"school_id"`
	School      School     `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	SubmittedBy uuid.UUID  `gorm:"type:uuid;not null" json:"submitted_by"`
	Submitter   User       `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
	ActivityID  *uuid.UUID `gorm:"type:uuid" json:"activity_id,omitempty"`

	Status     ReportStatus `gorm:"type:varchar(20);default:'submitted'" json:"status"`
	ReviewedBy *uuid.UUID   `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time   `json:"reviewed_at,omitempty"`
	Feedback   string       `gorm:"type:text" json:"feedback"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Attachments []ReportAttachment `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE;" json:"attachments,omitempty"`
	Metrics     []ReportMetric     `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE;" json:"metrics,omitempty"`
}

type ReportAttachment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReportID    uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	FilePath    string    `gorm:"type:text;not null" json:"file_path"`
	FileType    string    `gorm:"size:20;not null" json:"file_type"` // image | document | video
	Description string    `gorm:"size:255" json:"description"`

	// Filled for PDF attachments so reports are keyword searchable.
	ExtractedText string    `gorm:"type:text" json:"extracted_text,omitempty"`
	UploadedAt    time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	Report Report `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

type ReportMetric struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	Name     string    `gorm:"size:100;not null" json:"name"`  // e.g. student_attendance
	Value    string    `gorm:"size:100;not null" json:"value"` // string keeps mixed formats
	Unit     string    `gorm:"size:20" json:"unit"`

	Report Report `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

type PerformanceReport struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Period      string     `gorm:"size:50;not null" json:"period"` // monthly | quarterly | yearly
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     time.Time  `gorm:"not null" json:"end_date"`
	SchoolID    *uuid.UUID `gorm:"type:uuid" json:"school_id,omitempty"`
	GeneratedBy uuid.UUID  `gorm:"type:uuid;not null" json:"generated_by"`
	PDFPath     string     `gorm:"type:text" json:"pdf_path"`
	IsPublic    bool       `gorm:"default:false" json:"is_public"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Generator User            `gorm:"foreignKey:GeneratedBy" json:"generator,omitempty"`
	Sections  []ReportSection `gorm:"foreignKey:PerformanceReportID;constraint:OnDelete:CASCADE;" json:"sections,omitempty"`
}

type ReportSection struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PerformanceReportID uuid.UUID `gorm:"type:uuid;not null;index" json:"performance_report_id"`
	Title               string    `gorm:"size:200;not null" json:"title"`
	Content             string    `gorm:"type:text;not null" json:"content"`
	Order               int       `gorm:"column:display_order;default:0" json:"order"`

	PerformanceReport PerformanceReport `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
