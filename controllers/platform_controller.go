package controllers

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/knowyourcountry/community-backend/models"
	"github.com/knowyourcountry/community-backend/utils"
)

func HealthCheck(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}

// Search runs a keyword query across published articles, approved media and
// published quizzes.
func Search(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}
	like := "%" + q + "%"

	var articles []models.Article
	db.Select("id", "title", "slug", "summary", "category", "published_at").
		Where("is_published = ? AND (title ILIKE ? OR content ILIKE ? OR summary ILIKE ?)", true, like, like, like).
		Limit(20).
		Find(&articles)

	var media []models.Media
	db.Select("id", "title", "description", "type", "thumbnail_path").
		Where("is_approved = ? AND (title ILIKE ? OR description ILIKE ? OR tags ILIKE ?)", true, like, like, like).
		Limit(20).
		Find(&media)

	var quizzes []models.Quiz
	db.Select("id", "title", "description", "category").
		Where("is_published = ? AND (title ILIKE ? OR description ILIKE ?)", true, like, like).
		Limit(20).
		Find(&quizzes)

	c.JSON(http.StatusOK, gin.H{
		"query":    q,
		"articles": articles,
		"media":    media,
		"quizzes":  quizzes,
	})
}

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ContactForm forwards a visitor's message to the site mailbox. The send is
// best-effort; the visitor always gets a friendly answer.
func ContactForm(c *gin.Context) {
	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	to := os.Getenv("CONTACT_EMAIL")
	if to == "" {
		to = os.Getenv("SMTP_EMAIL")
	}

	body := "<p><b>From:</b> " + input.Name + " (" + input.Email + ")</p>" +
		"<p>" + input.Message + "</p>"

	go func() {
		if err := utils.SendEmail(to, "[Contact] "+input.Subject, body); err != nil {
			log.Println("contact form email failed:", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "thank you, we received your message"})
}
