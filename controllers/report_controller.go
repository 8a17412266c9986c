package controllers

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowyourcountry/community-backend/models"
	"github.com/knowyourcountry/community-backend/services"
	"github.com/knowyourcountry/community-backend/utils"
)

var reportTypes = map[string]bool{
	"activity": true,
	"event":    true,
	"progress": true,
	"issue":    true,
}

type ReportInput struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Type        string `form:"type" binding:"required"`
	SchoolID    string `form:"school_id" binding:"required"`
	ActivityID  string `form:"activity_id"`
}

// CreateReport takes a multipart form so attachments ride along. PDF
// attachments get their text extracted for keyword search; extraction
// failures are logged and skipped, never fatal.
func CreateReport(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input ReportInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !reportTypes[input.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report type"})
		return
	}

	schoolID, err := uuid.Parse(input.SchoolID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid school_id"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && !user.CoordinatorOf(schoolID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only submit reports for your own school"})
		return
	}

	var school models.School
	if err := db.First(&school, "id = ?", schoolID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
		return
	}

	report := models.Report{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		SchoolID:    school.ID,
		SubmittedBy: user.ID,
		Status:      models.ReportSubmitted,
	}
	if input.ActivityID != "" {
		activityID, err := uuid.Parse(input.ActivityID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity_id"})
			return
		}
		report.ActivityID = &activityID
	}

	if err := db.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create report"})
		return
	}

	form, err := c.MultipartForm()
	if err == nil {
		for _, fileHeader := range form.File["attachments"] {
			url, err := utils.UploadFileToSupabase(fileHeader, uuid.New().String())
			if err != nil {
				log.Println("attachment upload failed:", err)
				continue
			}

			text, err := services.ExtractAttachmentText(fileHeader)
			if err != nil {
				log.Println("attachment text extraction failed:", err)
				text = ""
			}

			attachment := models.ReportAttachment{
				ReportID:      report.ID,
				FilePath:      url,
				FileType:      attachmentFileType(fileHeader.Filename),
				ExtractedText: text,
			}
			if err := db.Create(&attachment).Error; err != nil {
				log.Println("saving attachment failed:", err)
			}
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "report submitted", "report": report})
}

func attachmentFileType(filename string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "jpg", "jpeg", "png", "gif", "webp":
		return "image"
	case "mp4", "mov", "avi", "webm":
		return "video"
	default:
		return "document"
	}
}

type MetricInput struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
	Unit  string `json:"unit"`
}

func AddReportMetric(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	reportID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var report models.Report
	if err := db.First(&report, "id = ?", reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && user.ID != report.SubmittedBy {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own reports"})
		return
	}

	var input MetricInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metric := models.ReportMetric{
		ReportID: report.ID,
		Name:     input.Name,
		Value:    input.Value,
		Unit:     input.Unit,
	}
	if err := db.Create(&metric).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot add metric"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "metric added", "metric": metric})
}

// GetReports lists reports visible to the caller: admins see everything,
// coordinators their school, everyone else their own submissions.
func GetReports(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	user, ok := currentUser(c, db)
	if !ok {
		return
	}

	query := db.Model(&models.Report{})
	switch {
	case user.IsAdmin():
	case user.IsCoordinator() && user.SchoolID != nil:
		query = query.Where("school_id = ?", *user.SchoolID)
	default:
		query = query.Where("submitted_by = ?", user.ID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if reportType := c.Query("type"); reportType != "" {
		query = query.Where("type = ?", reportType)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR id IN (?)",
			like, like,
			db.Model(&models.ReportAttachment{}).Select("report_id").Where("extracted_text ILIKE ?", like),
		)
	}

	var reports []models.Report
	err := query.
		Preload("School", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports, "total": len(reports)})
}

func GetReportDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	reportID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var report models.Report
	err := db.
		Preload("School").
		Preload("Submitter", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Attachments").
		Preload("Metrics").
		First(&report, "id = ?", reportID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && user.ID != report.SubmittedBy && !user.CoordinatorOf(report.SchoolID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

type ReviewInput struct {
	Status   models.ReportStatus `json:"status" binding:"required"`
	Feedback string              `json:"feedback"`
}

// ReviewReport is the admin decision point. The submitter gets a
// notification either way.
func ReviewReport(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	reportID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var report models.Report
	if err := db.First(&report, "id = ?", reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch input.Status {
	case models.ReportReviewed, models.ReportApproved, models.ReportRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be reviewed, approved or rejected"})
		return
	}

	reviewerID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	now := time.Now()
	err = db.Model(&report).Updates(map[string]interface{}{
		"status":      input.Status,
		"feedback":    input.Feedback,
		"reviewed_by": reviewerID,
		"reviewed_at": &now,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update report"})
		return
	}

	category := "info"
	if input.Status == models.ReportApproved {
		category = "success"
	} else if input.Status == models.ReportRejected {
		category = "warning"
	}
	message := "Your report \"" + report.Title + "\" has been " + string(input.Status)
	if err := notifyUser(db, report.SubmittedBy, message, category, "/reports/"+report.ID.String()); err != nil {
		log.Println("report review notification failed:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "report reviewed", "status": input.Status})
}

// ===== Performance reports =====

type PerformanceReportInput struct {
	Title     string     `json:"title" binding:"required"`
	Period    string     `json:"period" binding:"required"`
	StartDate time.Time  `json:"start_date" binding:"required"`
	EndDate   time.Time  `json:"end_date" binding:"required"`
	SchoolID  *uuid.UUID `json:"school_id"`
	IsPublic  bool       `json:"is_public"`
	Sections  []struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	} `json:"sections"`
}

// CreatePerformanceReport stores the report with its sections and renders
// the PDF. A failed render keeps the report and reports a warning instead of
// rolling back.
func CreatePerformanceReport(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input PerformanceReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.EndDate.Before(input.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must come after start_date"})
		return
	}

	var schoolName string
	if input.SchoolID != nil {
		var school models.School
		if err := db.First(&school, "id = ?", *input.SchoolID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "school not found"})
			return
		}
		schoolName = school.Name
	}

	report := models.PerformanceReport{
		Title:       input.Title,
		Period:      input.Period,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		SchoolID:    input.SchoolID,
		GeneratedBy: userID,
		IsPublic:    input.IsPublic,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		for i, s := range input.Sections {
			section := models.ReportSection{
				PerformanceReportID: report.ID,
				Title:               s.Title,
				Content:             s.Content,
				Order:               i + 1,
			}
			if err := tx.Create(&section).Error; err != nil {
				return err
			}
			report.Sections = append(report.Sections, section)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create performance report"})
		return
	}

	response := gin.H{"message": "performance report created", "report": report}

	pdfBytes, err := services.RenderPerformanceReportPDF(&report, schoolName)
	if err != nil {
		log.Println("performance report PDF render failed:", err)
		response["warning"] = "report saved but PDF generation failed"
	} else {
		url, err := utils.UploadBytesToSupabase(pdfBytes, "reports", report.ID.String()+".pdf", "application/pdf")
		if err != nil {
			log.Println("performance report PDF upload failed:", err)
			response["warning"] = "report saved but PDF upload failed"
		} else {
			db.Model(&report).Update("pdf_path", url)
			report.PDFPath = url
		}
	}

	c.JSON(http.StatusCreated, response)
}

func GetPerformanceReports(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	user, ok := currentUser(c, db)
	if !ok {
		return
	}

	query := db.Model(&models.PerformanceReport{})
	if !user.IsAdmin() {
		query = query.Where("is_public = ? OR generated_by = ?", true, user.ID)
	}

	var reports []models.PerformanceReport
	err := query.Order("created_at DESC").Find(&reports).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load performance reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports, "total": len(reports)})
}

func GetPerformanceReportDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	reportID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var report models.PerformanceReport
	err := db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&report, "id = ?", reportID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "performance report not found"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !report.IsPublic && !user.IsAdmin() && user.ID != report.GeneratedBy {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

type SectionInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// AddReportSection appends a section after the current last one. The PDF is
// not re-rendered automatically; regenerate explicitly when done editing.
func AddReportSection(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	reportID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var report models.PerformanceReport
	if err := db.Preload("Sections").First(&report, "id = ?", reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "performance report not found"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && user.ID != report.GeneratedBy {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own reports"})
		return
	}

	var input SectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section := models.ReportSection{
		PerformanceReportID: report.ID,
		Title:               input.Title,
		Content:             input.Content,
		Order:               services.NextSectionOrder(report.Sections),
	}
	if err := db.Create(&section).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot add section"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "section added", "section": section})
}

// RegeneratePerformanceReportPDF re-renders and re-uploads the PDF after
// section edits.
func RegeneratePerformanceReportPDF(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	reportID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var report models.PerformanceReport
	err := db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&report, "id = ?", reportID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "performance report not found"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && user.ID != report.GeneratedBy {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only regenerate your own reports"})
		return
	}

	var schoolName string
	if report.SchoolID != nil {
		var school models.School
		if err := db.First(&school, "id = ?", *report.SchoolID).Error; err == nil {
			schoolName = school.Name
		}
	}

	pdfBytes, err := services.RenderPerformanceReportPDF(&report, schoolName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF generation failed"})
		return
	}

	url, err := utils.UploadBytesToSupabase(pdfBytes, "reports", report.ID.String()+".pdf", "application/pdf")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF upload failed"})
		return
	}

	if err := db.Model(&report).Update("pdf_path", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save PDF path"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "PDF regenerated", "pdf_path": url})
}
