package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowyourcountry/community-backend/models"
	"github.com/knowyourcountry/community-backend/ws"
)

// notifyUser persists a notification row and pushes it to the user's open
// websocket connections. A failed insert is returned; the push is fire and
// forget.
func notifyUser(db *gorm.DB, userID uuid.UUID, message, category, link string) error {
	n := models.Notification{
		UserID:   userID,
		Message:  message,
		Category: category,
	}
	if link != "" {
		n.Link = &link
	}
	if err := db.Create(&n).Error; err != nil {
		return err
	}
	ws.PushNotification(userID.String(), message, category, link)
	return nil
}

func GetNotifications(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var notifications []models.Notification
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load notifications"})
		return
	}

	var unread int64
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        unread,
	})
}

func MarkNotificationRead(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	notifID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	var notification models.Notification
	if err := db.First(&notification, "id = ? AND user_id = ?", notifID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}

	now := time.Now()
	if err := db.Model(&notification).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": &now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

func MarkAllNotificationsRead(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	now := time.Now()
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}
