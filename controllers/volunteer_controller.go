package controllers

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowyourcountry/community-backend/models"
	"github.com/knowyourcountry/community-backend/services"
	"github.com/knowyourcountry/community-backend/utils"
)

type VolunteerInput struct {
	Name        string    `json:"name" binding:"required"`
	Email       string    `json:"email" binding:"required,email"`
	Phone       string    `json:"phone"`
	Skills      string    `json:"skills" binding:"required"`
	OtherSkills string    `json:"other_skills"`
	Grade       string    `json:"grade" binding:"required"`
	SchoolID    uuid.UUID `json:"school_id" binding:"required"`
}

// RegisterVolunteer is the public signup endpoint. The thank-you email with
// the confirmation link goes out off the request goroutine.
func RegisterVolunteer(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input VolunteerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var school models.School
	if err := db.First(&school, "id = ? AND is_active = ?", input.SchoolID, true).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "school not found"})
		return
	}

	var existing models.Volunteer
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "this email is already registered"})
		return
	}

	token := uuid.New().String()
	volunteer := models.Volunteer{
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		Skills:            input.Skills,
		OtherSkills:       input.OtherSkills,
		Grade:             input.Grade,
		SchoolID:          school.ID,
		ConfirmationToken: &token,
	}
	if err := db.Create(&volunteer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot register volunteer"})
		return
	}

	confirmURL := os.Getenv("FRONTEND_URL") + "/volunteers/confirm?token=" + token
	go func() {
		if err := utils.SendVolunteerThankYou(volunteer.Email, volunteer.Name, confirmURL); err != nil {
			log.Println("volunteer thank-you email failed:", err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"message":   "registration received, please check your email",
		"volunteer": volunteer,
	})
}

// ConfirmVolunteerEmail consumes the token mailed at registration.
func ConfirmVolunteerEmail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	var volunteer models.Volunteer
	if err := db.First(&volunteer, "confirmation_token = ?", token).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid confirmation token"})
		return
	}

	err := db.Model(&volunteer).Updates(map[string]interface{}{
		"email_confirmed":    true,
		"confirmation_token": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot confirm email"})
		return
	}

	// Tell the school's coordinators a volunteer just confirmed.
	var coordinators []models.User
	db.Select("id").Where("school_id = ? AND role = ?", volunteer.SchoolID, models.RoleCoordinator).Find(&coordinators)
	for _, coordinator := range coordinators {
		message := volunteer.Name + " confirmed their volunteer registration"
		if err := notifyUser(db, coordinator.ID, message, "success", "/volunteers/"+volunteer.ID.String()); err != nil {
			log.Println("volunteer confirmation notification failed:", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "email confirmed, thank you"})
}

// volunteerScope narrows queries to the caller's school unless they are an
// admin. Returns false after writing the response when the caller may not
// see any volunteers at all.
func volunteerScope(c *gin.Context, db *gorm.DB) (*gorm.DB, bool) {
	user, ok := currentUser(c, db)
	if !ok {
		return nil, false
	}
	if user.IsAdmin() {
		return db.Model(&models.Volunteer{}), true
	}
	if user.IsCoordinator() && user.SchoolID != nil {
		return db.Model(&models.Volunteer{}).Where("school_id = ?", *user.SchoolID), true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	return nil, false
}

func GetVolunteers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	scope, ok := volunteerScope(c, db)
	if !ok {
		return
	}

	if skill := c.Query("skill"); skill != "" {
		scope = scope.Where("skills = ?", skill)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		scope = scope.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	var volunteers []models.Volunteer
	err := scope.Preload("School").Order("registered_at DESC").Find(&volunteers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load volunteers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"volunteers": volunteers, "total": len(volunteers)})
}

func GetVolunteerDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	volunteerID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var volunteer models.Volunteer
	err := db.
		Preload("School").
		Preload("Contributions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&volunteer, "id = ?", volunteerID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "volunteer not found"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && !user.CoordinatorOf(volunteer.SchoolID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only view your own school's volunteers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"volunteer": volunteer})
}

type VolunteerUpdateInput struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Skills      string `json:"skills"`
	OtherSkills string `json:"other_skills"`
	Grade       string `json:"grade"`
}

func UpdateVolunteer(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	volunteerID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var volunteer models.Volunteer
	if err := db.First(&volunteer, "id = ?", volunteerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "volunteer not found"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && !user.CoordinatorOf(volunteer.SchoolID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own school's volunteers"})
		return
	}

	var input VolunteerUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != "" {
		volunteer.Name = input.Name
	}
	if input.Phone != "" {
		volunteer.Phone = input.Phone
	}
	if input.Skills != "" {
		volunteer.Skills = input.Skills
	}
	if input.OtherSkills != "" {
		volunteer.OtherSkills = input.OtherSkills
	}
	if input.Grade != "" {
		volunteer.Grade = input.Grade
	}

	if err := db.Save(&volunteer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update volunteer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "volunteer updated", "volunteer": volunteer})
}

// ToggleVolunteerStatus flips a volunteer between active and inactive.
func ToggleVolunteerStatus(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	volunteerID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var volunteer models.Volunteer
	if err := db.First(&volunteer, "id = ?", volunteerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "volunteer not found"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && !user.CoordinatorOf(volunteer.SchoolID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only manage your own school's volunteers"})
		return
	}

	if err := db.Model(&volunteer).Update("is_active", !volunteer.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated", "is_active": !volunteer.IsActive})
}

type ContributionInput struct {
	Type   models.ContributionType `json:"type" binding:"required"`
	ItemID uuid.UUID               `json:"item_id" binding:"required"`
	Notes  string                  `json:"notes"`
}

func AddContribution(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	volunteerID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var volunteer models.Volunteer
	if err := db.First(&volunteer, "id = ?", volunteerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "volunteer not found"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && !user.CoordinatorOf(volunteer.SchoolID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only record contributions for your own school"})
		return
	}

	var input ContributionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch input.Type {
	case models.ContributionMedia, models.ContributionArticle, models.ContributionReport, models.ContributionActivity:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contribution type"})
		return
	}

	contribution := models.Contribution{
		VolunteerID: volunteer.ID,
		Type:        input.Type,
		ItemID:      input.ItemID,
		Notes:       input.Notes,
	}
	if err := db.Create(&contribution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot record contribution"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "contribution recorded", "contribution": contribution})
}

// ExportVolunteers streams the roster as csv or xlsx, scoped the same way as
// the list endpoint.
func ExportVolunteers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	scope, ok := volunteerScope(c, db)
	if !ok {
		return
	}

	var volunteers []models.Volunteer
	err := scope.Preload("School").Order("registered_at DESC").Find(&volunteers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load volunteers"})
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		body, err := services.VolunteersXLSX(volunteers)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot build workbook"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="volunteers.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", body)
	case "csv":
		body, err := services.VolunteersCSV(volunteers)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot build csv"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="volunteers.csv"`)
		c.Data(http.StatusOK, "text/csv", body)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
	}
}
