package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowyourcountry/community-backend/models"
	"github.com/knowyourcountry/community-backend/utils"
)

// currentUser loads the authenticated user resolved by AuthMiddleware.
func currentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, false
	}
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return nil, false
	}
	return &user, true
}

func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func GetSchools(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var schools []models.School
	if err := db.Where("is_active = ?", true).Order("name ASC").Find(&schools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load schools"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"schools": schools, "total": len(schools)})
}

func GetSchoolDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	schoolID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var school models.School
	err := db.
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC").Limit(5)
		}).
		First(&school, "id = ?", schoolID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
		return
	}

	var volunteerCount, reportCount int64
	db.Model(&models.Volunteer{}).Where("school_id = ?", school.ID).Count(&volunteerCount)
	db.Model(&models.Report{}).Where("school_id = ?", school.ID).Count(&reportCount)

	c.JSON(http.StatusOK, gin.H{
		"school":          school,
		"volunteer_count": volunteerCount,
		"report_count":    reportCount,
	})
}

type SchoolInput struct {
	Name         string `form:"name" json:"name" binding:"required"`
	Location     string `form:"location" json:"location" binding:"required"`
	Address      string `form:"address" json:"address" binding:"required"`
	Email        string `form:"email" json:"email" binding:"required,email"`
	Phone        string `form:"phone" json:"phone"`
	StudentCount int    `form:"student_count" json:"student_count"`
}

func CreateSchool(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input SchoolInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	school := models.School{
		Name:         input.Name,
		Location:     input.Location,
		Address:      input.Address,
		Email:        input.Email,
		Phone:        input.Phone,
		StudentCount: input.StudentCount,
	}

	if fileHeader, err := c.FormFile("logo"); err == nil {
		url, err := utils.UploadImageToSupabase(fileHeader, uuid.New().String())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upload logo"})
			return
		}
		school.Logo = url
	}

	if err := db.Create(&school).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create school"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "school created", "school": school})
}

func UpdateSchool(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	schoolID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && !user.CoordinatorOf(schoolID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own school"})
		return
	}

	var school models.School
	if err := db.First(&school, "id = ?", schoolID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
		return
	}

	var input SchoolInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	school.Name = input.Name
	school.Location = input.Location
	school.Address = input.Address
	school.Email = input.Email
	if input.Phone != "" {
		school.Phone = input.Phone
	}
	if input.StudentCount > 0 {
		school.StudentCount = input.StudentCount
	}

	if fileHeader, err := c.FormFile("logo"); err == nil {
		url, err := utils.UploadImageToSupabase(fileHeader, uuid.New().String())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upload logo"})
			return
		}
		if school.Logo != "" {
			if err := utils.DeleteFileFromSupabase(school.Logo); err != nil {
				log.Println("deleting old logo failed:", err)
			}
		}
		school.Logo = url
	}

	if err := db.Save(&school).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update school"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "school updated", "school": school})
}

func GetSchoolCoordinators(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	schoolID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var coordinators []models.User
	err := db.
		Select("id", "name", "email", "role", "school_id", "last_login").
		Where("school_id = ? AND role = ?", schoolID, models.RoleCoordinator).
		Find(&coordinators).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load coordinators"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coordinators": coordinators, "total": len(coordinators)})
}

// ===== Activities =====

type ActivityInput struct {
	Title             string    `json:"title" binding:"required"`
	Description       string    `json:"description" binding:"required"`
	Date              time.Time `json:"date" binding:"required"`
	Location          string    `json:"location"`
	ParticipantsCount int       `json:"participants_count"`
}

func GetSchoolActivities(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	schoolID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var activities []models.Activity
	err := db.Where("school_id = ?", schoolID).Order("date DESC").Find(&activities).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities, "total": len(activities)})
}

func CreateActivity(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	schoolID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && !user.CoordinatorOf(schoolID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only add activities to your own school"})
		return
	}

	var school models.School
	if err := db.First(&school, "id = ?", schoolID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
		return
	}

	var input ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity := models.Activity{
		Title:             input.Title,
		Description:       input.Description,
		Date:              input.Date,
		Location:          input.Location,
		ParticipantsCount: input.ParticipantsCount,
		SchoolID:          school.ID,
		Status:            models.ActivityPlanned,
	}
	if err := db.Create(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create activity"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "activity created", "activity": activity})
}

func GetActivityDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	activityID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var activity models.Activity
	err := db.
		Preload("MediaItems", "is_approved = ?", true).
		First(&activity, "id = ?", activityID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func UpdateActivity(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	activityID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var activity models.Activity
	if err := db.First(&activity, "id = ?", activityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && !user.CoordinatorOf(activity.SchoolID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own school's activities"})
		return
	}

	var input ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity.Title = input.Title
	activity.Description = input.Description
	activity.Date = input.Date
	activity.Location = input.Location
	activity.ParticipantsCount = input.ParticipantsCount

	if err := db.Save(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "activity updated", "activity": activity})
}

type ActivityStatusInput struct {
	Status models.ActivityStatus `json:"status" binding:"required"`
}

func UpdateActivityStatus(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	activityID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var activity models.Activity
	if err := db.First(&activity, "id = ?", activityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		return
	}

	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	if !user.IsAdmin() && !user.CoordinatorOf(activity.SchoolID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own school's activities"})
		return
	}

	var input ActivityStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidActivityStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity status"})
		return
	}

	if err := db.Model(&activity).Update("status", input.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated", "status": input.Status})
}
