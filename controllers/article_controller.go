package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowyourcountry/community-backend/models"
	"github.com/knowyourcountry/community-backend/utils"
)

func GetArticles(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Article{}).Where("is_published = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 10

	var total int64
	query.Count(&total)

	var articles []models.Article
	err := query.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("published_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&articles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// GetArticleBySlug serves the public reading view and bumps the view counter.
// Unpublished articles stay visible to their author and admins only.
func GetArticleBySlug(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var article models.Article
	err := db.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "profile_image")
		}).
		Preload("Comments", "is_approved = ?", true).
		Preload("Comments.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "profile_image")
		}).
		Preload("Quizzes", "is_published = ?", true).
		First(&article, "slug = ?", c.Param("slug")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	if !article.IsPublished {
		userID := c.GetString("user_id")
		role := c.GetString("role")
		if role != string(models.RoleAdmin) && userID != article.AuthorID.String() {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
	} else {
		db.Model(&article).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	}

	var related []models.Article
	db.Select("id", "title", "slug", "summary", "featured_image", "published_at").
		Where("category = ? AND is_published = ? AND id <> ?", article.Category, true, article.ID).
		Order("published_at DESC").
		Limit(3).
		Find(&related)

	c.JSON(http.StatusOK, gin.H{"article": article, "related": related})
}

type ArticleInput struct {
	Title    string `form:"title" json:"title" binding:"required"`
	Content  string `form:"content" json:"content" binding:"required"`
	Summary  string `form:"summary" json:"summary"`
	Category string `form:"category" json:"category" binding:"required"`
}

func CreateArticle(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var input ArticleInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	articleSlug := utils.UniqueSlug(input.Title, func(candidate string) bool {
		var count int64
		db.Model(&models.Article{}).Where("slug = ?", candidate).Count(&count)
		return count > 0
	})

	article := models.Article{
		Title:    input.Title,
		Slug:     articleSlug,
		Content:  input.Content,
		Summary:  input.Summary,
		Category: input.Category,
		AuthorID: authorID,
	}

	if fileHeader, err := c.FormFile("featured_image"); err == nil {
		url, err := utils.UploadImageToSupabase(fileHeader, uuid.New().String())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upload image"})
			return
		}
		article.FeaturedImage = url
	}

	if err := db.Create(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create article"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "article created", "article": article})
}

func UpdateArticle(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	articleID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var article models.Article
	if err := db.First(&article, "id = ?", articleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	userID := c.GetString("user_id")
	role := c.GetString("role")
	if role != string(models.RoleAdmin) && userID != article.AuthorID.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own articles"})
		return
	}

	var input ArticleInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The slug is stable after creation so shared links keep working.
	article.Title = input.Title
	article.Content = input.Content
	article.Summary = input.Summary
	article.Category = input.Category

	if fileHeader, err := c.FormFile("featured_image"); err == nil {
		url, err := utils.UploadImageToSupabase(fileHeader, uuid.New().String())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upload image"})
			return
		}
		if article.FeaturedImage != "" {
			if err := utils.DeleteFileFromSupabase(article.FeaturedImage); err != nil {
				log.Println("deleting old featured image failed:", err)
			}
		}
		article.FeaturedImage = url
	}

	if err := db.Save(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "article updated", "article": article})
}

// PublishArticle flips publication state. First publish stamps published_at;
// re-publishing later keeps the original date.
func PublishArticle(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	articleID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var article models.Article
	if err := db.First(&article, "id = ?", articleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	updates := map[string]interface{}{"is_published": !article.IsPublished}
	if !article.IsPublished && article.PublishedAt == nil {
		now := time.Now()
		updates["published_at"] = &now
	}

	if err := db.Model(&article).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "publication state updated", "is_published": !article.IsPublished})
}

func DeleteArticle(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	articleID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var article models.Article
	if err := db.First(&article, "id = ?", articleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	userID := c.GetString("user_id")
	role := c.GetString("role")
	if role != string(models.RoleAdmin) && userID != article.AuthorID.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own articles"})
		return
	}

	if err := db.Delete(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}

type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

// AddArticleComment queues a comment for moderation; it shows up publicly
// once an admin approves it.
func AddArticleComment(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	articleID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var article models.Article
	if err := db.First(&article, "id = ? AND is_published = ?", articleID, true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.ArticleComment{
		ArticleID: article.ID,
		UserID:    userID,
		Content:   input.Content,
		// Admin comments skip the moderation queue.
		IsApproved: c.GetString("role") == string(models.RoleAdmin),
	}
	if err := db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot add comment"})
		return
	}

	message := "comment submitted for review"
	if comment.IsApproved {
		message = "comment published"
	}
	c.JSON(http.StatusCreated, gin.H{"message": message, "comment": comment})
}
