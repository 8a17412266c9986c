package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowyourcountry/community-backend/models"
	"github.com/knowyourcountry/community-backend/utils"
)

var mediaTypes = map[string]bool{
	"video":    true,
	"image":    true,
	"document": true,
	"external": true,
}

// GetMediaList is the public gallery: approved items only, filterable by
// type, school and tag.
func GetMediaList(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Media{}).Where("is_approved = ?", true)
	if mediaType := c.Query("type"); mediaType != "" {
		query = query.Where("type = ?", mediaType)
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		query = query.Where("school_id = ?", schoolID)
	}
	if tag := c.Query("tag"); tag != "" {
		query = query.Where("tags ILIKE ?", "%"+tag+"%")
	}
	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 12

	var total int64
	query.Count(&total)

	var items []models.Media
	err := query.
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"media":    items,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func GetMediaDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	mediaID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var media models.Media
	err := db.
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "profile_image")
		}).
		Preload("Comments", "is_approved = ?", true).
		Preload("Comments.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		First(&media, "id = ?", mediaID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	if !media.IsApproved {
		userID := c.GetString("user_id")
		role := c.GetString("role")
		if role != string(models.RoleAdmin) && userID != media.UserID.String() {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
			return
		}
	} else {
		db.Model(&media).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	}

	var avgRating float64
	var ratingCount int64
	db.Model(&models.MediaRating{}).Where("media_id = ?", media.ID).Count(&ratingCount)
	if ratingCount > 0 {
		db.Model(&models.MediaRating{}).
			Where("media_id = ?", media.ID).
			Select("AVG(rating)").
			Scan(&avgRating)
	}

	c.JSON(http.StatusOK, gin.H{
		"media":        media,
		"tags":         media.TagList(),
		"avg_rating":   avgRating,
		"rating_count": ratingCount,
	})
}

type MediaInput struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Type        string `form:"type" binding:"required"`
	ExternalURL string `form:"external_url"`
	Tags        string `form:"tags"`
	SchoolID    string `form:"school_id"`
	ActivityID  string `form:"activity_id"`
}

// UploadMedia accepts a file or an external link. Everything lands in the
// moderation queue; admins approve before the public sees it.
func UploadMedia(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input MediaInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !mediaTypes[input.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media type"})
		return
	}

	media := models.Media{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		ExternalURL: input.ExternalURL,
		Tags:        input.Tags,
		UserID:      userID,
	}

	if input.SchoolID != "" {
		schoolID, err := uuid.Parse(input.SchoolID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid school_id"})
			return
		}
		media.SchoolID = &schoolID
	}
	if input.ActivityID != "" {
		activityID, err := uuid.Parse(input.ActivityID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity_id"})
			return
		}
		media.ActivityID = &activityID
	}

	if input.Type == "external" {
		if input.ExternalURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "external media needs a url"})
			return
		}
	} else {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}
		var url string
		if input.Type == "image" {
			url, err = utils.UploadImageToSupabase(fileHeader, uuid.New().String())
		} else {
			url, err = utils.UploadFileToSupabase(fileHeader, uuid.New().String())
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upload file"})
			return
		}
		media.FilePath = url
	}

	if thumb, err := c.FormFile("thumbnail"); err == nil {
		url, err := utils.UploadImageToSupabase(thumb, uuid.New().String())
		if err == nil {
			media.ThumbnailPath = url
		}
	}
	// Images are their own thumbnail when none was supplied.
	if media.ThumbnailPath == "" && input.Type == "image" {
		media.ThumbnailPath = media.FilePath
	}

	// Admin uploads skip the moderation queue.
	if c.GetString("role") == string(models.RoleAdmin) {
		now := time.Now()
		media.IsApproved = true
		media.ApprovedBy = &userID
		media.ApprovedAt = &now
	}

	if err := db.Create(&media).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save media"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "media submitted for review", "media": media})
}

type RatingInput struct {
	Rating int `json:"rating" binding:"required"`
}

// RateMedia upserts the caller's star rating. Out-of-range values clamp to
// 1..5 instead of erroring.
func RateMedia(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	mediaID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var media models.Media
	if err := db.First(&media, "id = ? AND is_approved = ?", mediaID, true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	var input RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rating := models.ClampRating(input.Rating)

	var existing models.MediaRating
	err = db.Where("media_id = ? AND user_id = ?", media.ID, userID).First(&existing).Error
	if err == nil {
		if err := db.Model(&existing).Update("rating", rating).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update rating"})
			return
		}
	} else {
		newRating := models.MediaRating{MediaID: media.ID, UserID: userID, Rating: rating}
		if err := db.Create(&newRating).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save rating"})
			return
		}
	}

	var avg float64
	db.Model(&models.MediaRating{}).Where("media_id = ?", media.ID).Select("AVG(rating)").Scan(&avg)

	c.JSON(http.StatusOK, gin.H{"message": "rating saved", "rating": rating, "avg_rating": avg})
}

// AddMediaComment queues a comment for moderation, same flow as article
// comments.
func AddMediaComment(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	mediaID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var media models.Media
	if err := db.First(&media, "id = ? AND is_approved = ?", mediaID, true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.MediaComment{
		MediaID:    media.ID,
		UserID:     userID,
		Content:    input.Content,
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

// ===== Collections =====

type CollectionInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	SchoolID    *uuid.UUID `json:"school_id"`
	IsPublic    *bool      `json:"is_public"`
}

func GetCollections(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var collections []models.MediaCollection
	err := db.
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Where("is_public = ?", true).
		Order("created_at DESC").
		Find(&collections).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load collections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"collections": collections, "total": len(collections)})
}

func GetCollectionDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	collectionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var collection models.MediaCollection
	err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Items.Media", "is_approved = ?", true).
		First(&collection, "id = ?", collectionID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "collection not found"})
		return
	}

	if !collection.IsPublic {
		userID := c.GetString("user_id")
		role := c.GetString("role")
		if role != string(models.RoleAdmin) && userID != collection.CreatedBy.String() {
			c.JSON(http.StatusNotFound, gin.H{"error": "collection not found"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"collection": collection})
}

func CreateCollection(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input CollectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := models.MediaCollection{
		Title:       input.Title,
		Description: input.Description,
		SchoolID:    input.SchoolID,
		CreatedBy:   userID,
		IsPublic:    true,
	}
	if input.IsPublic != nil {
		collection.IsPublic = *input.IsPublic
	}
	if err := db.Create(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create collection"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "collection created", "collection": collection})
}

type CollectionItemInput struct {
	MediaID uuid.UUID `json:"media_id" binding:"required"`
	Order   int       `json:"order"`
}

// AddToCollection inserts an approved media item; re-adding the same item is
// rejected by the unique index and surfaces as a conflict.
func AddToCollection(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	collectionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var collection models.MediaCollection
	if err := db.First(&collection, "id = ?", collectionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "collection not found"})
		return
	}

	userID := c.GetString("user_id")
	role := c.GetString("role")
	if role != string(models.RoleAdmin) && userID != collection.CreatedBy.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own collections"})
		return
	}

	var input CollectionItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var media models.Media
	if err := db.First(&media, "id = ? AND is_approved = ?", input.MediaID, true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	item := models.MediaCollectionItem{
		CollectionID: collection.ID,
		MediaID:      media.ID,
		Order:        input.Order,
	}
	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "media is already in this collection"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "media added to collection", "item": item})
}
