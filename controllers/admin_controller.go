package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowyourcountry/community-backend/models"
	"github.com/knowyourcountry/community-backend/services"
	"github.com/knowyourcountry/community-backend/ws"
)

// GetDashboardStats aggregates the headline numbers for the admin home page.
func GetDashboardStats(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var (
		userCount       int64
		schoolCount     int64
		volunteerCount  int64
		articleCount    int64
		quizCount       int64
		attemptCount    int64
		mediaCount      int64
		pendingMedia    int64
		pendingReports  int64
		pendingComments int64
	)

	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.School{}).Where("is_active = ?", true).Count(&schoolCount)
	db.Model(&models.Volunteer{}).Where("is_active = ?", true).Count(&volunteerCount)
	db.Model(&models.Article{}).Where("is_published = ?", true).Count(&articleCount)
	db.Model(&models.Quiz{}).Where("is_published = ?", true).Count(&quizCount)
	db.Model(&models.QuizAttempt{}).Where("is_completed = ?", true).Count(&attemptCount)
	db.Model(&models.Media{}).Count(&mediaCount)
	db.Model(&models.Media{}).Where("is_approved = ?", false).Count(&pendingMedia)
	db.Model(&models.Report{}).Where("status = ?", models.ReportSubmitted).Count(&pendingReports)
	db.Model(&models.ArticleComment{}).Where("is_approved = ?", false).Count(&pendingComments)

	var avgScore float64
	db.Model(&models.QuizAttempt{}).
		Where("is_completed = ? AND max_score > 0", true).
		Select("AVG(score * 100.0 / max_score)").
		Scan(&avgScore)

	c.JSON(http.StatusOK, gin.H{
		"users":            userCount,
		"schools":          schoolCount,
		"volunteers":       volunteerCount,
		"articles":         articleCount,
		"quizzes":          quizCount,
		"quiz_attempts":    attemptCount,
		"avg_quiz_score":   avgScore,
		"media":            mediaCount,
		"pending_media":    pendingMedia,
		"pending_reports":  pendingReports,
		"pending_comments": pendingComments,
	})
}

func GetUsers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	err := query.
		Select("id", "name", "email", "role", "is_active", "school_id", "last_login", "created_at").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

func GetUserDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var user models.User
	err := db.
		Preload("School", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Volunteer").
		First(&user, "id = ?", userID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	user.Password = ""

	var attemptCount, articleCount, mediaCount int64
	db.Model(&models.QuizAttempt{}).Where("user_id = ?", user.ID).Count(&attemptCount)
	db.Model(&models.Article{}).Where("author_id = ?", user.ID).Count(&articleCount)
	db.Model(&models.Media{}).Where("user_id = ?", user.ID).Count(&mediaCount)

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"quiz_attempts": attemptCount,
		"articles":      articleCount,
		"media":         mediaCount,
	})
}

type UserRoleInput struct {
	Role     models.UserRole `json:"role" binding:"required"`
	SchoolID *uuid.UUID      `json:"school_id"`
}

// UpdateUserRole promotes or demotes a user. Coordinators must be attached
// to a school; any other role drops the school link.
func UpdateUserRole(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var input UserRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Role {
	case models.RoleVisitor, models.RoleVolunteer, models.RoleCoordinator, models.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	updates := map[string]interface{}{"role": input.Role}
	if input.Role == models.RoleCoordinator {
		if input.SchoolID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "coordinators need a school_id"})
			return
		}
		var school models.School
		if err := db.First(&school, "id = ?", *input.SchoolID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "school not found"})
			return
		}
		updates["school_id"] = *input.SchoolID
	} else {
		updates["school_id"] = nil
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update role"})
		return
	}

	message := "Your account role is now " + string(input.Role)
	if err := notifyUser(db, user.ID, message, "info", ""); err != nil {
		log.Println("role change notification failed:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "role updated", "role": input.Role})
}

// ToggleUserActive locks or unlocks an account. Admins cannot lock
// themselves out.
func ToggleUserActive(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if userID.String() == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot deactivate your own account"})
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := db.Model(&user).Update("is_active", !user.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated", "is_active": !user.IsActive})
}

// DeleteUser removes an account permanently. Content the user created
// (articles, media, attempts) stays behind with its author reference.
func DeleteUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if userID.String() == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot delete your own account"})
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := db.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// GetPendingMedia lists the moderation queue, oldest first.
func GetPendingMedia(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var items []models.Media
	err := db.
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load pending media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": items, "total": len(items)})
}

// ApproveMedia publishes a media item and tells the uploader.
func ApproveMedia(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	mediaID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var media models.Media
	if err := db.First(&media, "id = ?", mediaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	adminID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	now := time.Now()
	err = db.Model(&media).Updates(map[string]interface{}{
		"is_approved": true,
		"approved_by": adminID,
		"approved_at": &now,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot approve media"})
		return
	}

	message := "Your upload \"" + media.Title + "\" has been approved"
	if err := notifyUser(db, media.UserID, message, "success", "/media/"+media.ID.String()); err != nil {
		log.Println("media approval notification failed:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "media approved"})
}

// RejectMedia removes a pending item and tells the uploader.
func RejectMedia(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	mediaID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var media models.Media
	if err := db.First(&media, "id = ?", mediaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	if err := db.Delete(&media).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot reject media"})
		return
	}

	message := "Your upload \"" + media.Title + "\" was not approved"
	if err := notifyUser(db, media.UserID, message, "warning", ""); err != nil {
		log.Println("media rejection notification failed:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "media rejected"})
}

func ToggleMediaFeatured(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	mediaID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var media models.Media
	if err := db.First(&media, "id = ? AND is_approved = ?", mediaID, true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	if err := db.Model(&media).Update("featured", !media.Featured).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "media updated", "featured": !media.Featured})
}

// GetPendingComments merges the article and media comment queues.
func GetPendingComments(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var articleComments []models.ArticleComment
	db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	}).Where("is_approved = ?", false).Order("created_at ASC").Find(&articleComments)

	var mediaComments []models.MediaComment
	db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	}).Where("is_approved = ?", false).Order("created_at ASC").Find(&mediaComments)

	c.JSON(http.StatusOK, gin.H{
		"article_comments": articleComments,
		"media_comments":   mediaComments,
	})
}

// ModerateComment approves or deletes one comment. kind distinguishes the
// two comment tables.
func ModerateComment(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	commentID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	kind := c.Param("kind")
	approve := c.Query("action") != "reject"

	switch kind {
	case "article":
		var comment models.ArticleComment
		if err := db.First(&comment, "id = ?", commentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		if approve {
			db.Model(&comment).Update("is_approved", true)
		} else {
			db.Delete(&comment)
		}
	case "media":
		var comment models.MediaComment
		if err := db.First(&comment, "id = ?", commentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		if approve {
			db.Model(&comment).Update("is_approved", true)
		} else {
			db.Delete(&comment)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be article or media"})
		return
	}

	if approve {
		c.JSON(http.StatusOK, gin.H{"message": "comment approved"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
	}
}

type AnnouncementInput struct {
	Message  string `json:"message" binding:"required"`
	Category string `json:"category"`

	// Optional targeting: one user, one role, or (neither) everyone.
	UserID *uuid.UUID      `json:"user_id"`
	Role   models.UserRole `json:"role"`
}

// BroadcastAnnouncement delivers an admin message. A targeted announcement
// (user or role) persists notification rows and pushes to those users; an
// untargeted one goes out on the public announcement channel, anonymous
// listeners included.
func BroadcastAnnouncement(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := input.Category
	if category == "" {
		category = "info"
	}

	switch {
	case input.UserID != nil:
		var user models.User
		if err := db.First(&user, "id = ?", *input.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err := notifyUser(db, user.ID, input.Message, category, ""); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot deliver announcement"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "announcement sent", "recipients": 1})

	case input.Role != "":
		var users []models.User
		if err := db.Select("id").Where("role = ? AND is_active = ?", input.Role, true).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load recipients"})
			return
		}
		for _, u := range users {
			if err := notifyUser(db, u.ID, input.Message, category, ""); err != nil {
				log.Println("announcement delivery failed for", u.ID, ":", err)
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "announcement sent", "recipients": len(users)})

	default:
		ws.PushAnnouncement(input.Message, category)
		c.JSON(http.StatusOK, gin.H{"message": "announcement sent"})
	}
}

// ExportSchools streams the school directory as csv or xlsx.
func ExportSchools(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var schools []models.School
	if err := db.Order("name ASC").Find(&schools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load schools"})
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		body, err := services.SchoolsXLSX(schools)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot build workbook"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="schools.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", body)
	case "csv":
		body, err := services.SchoolsCSV(schools)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot build csv"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="schools.csv"`)
		c.Data(http.StatusOK, "text/csv", body)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
	}
}
