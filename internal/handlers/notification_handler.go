package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/httpresp"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) List(c *gin.Context) {
	q := h.db.Where("user_id = ?", currentUserID(c))
	if c.Query("unread") == "true" {
		q = q.Where("read_at IS NULL")
	}

	var list []models.Notification
	if err := q.Order("created_at DESC").Limit(100).Find(&list).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Could not list notifications.")
		return
	}

	httpresp.List(c, list)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Notification id must be numeric.")
		return
	}

	now := timezone.Now()
	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", uint(id), currentUserID(c)).
		Updates(map[string]any{
			"read_at": &now,
			"status":  models.NotificationRead,
		})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_notification", "Could not mark notification read.")
		return
	}

	httpresp.OK(c, gin.H{"read": res.RowsAffected > 0})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	now := timezone.Now()
	res := h.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", currentUserID(c)).
		Updates(map[string]any{
			"read_at": &now,
			"status":  models.NotificationRead,
		})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_notifications", "Could not mark notifications read.")
		return
	}

	httpresp.OK(c, gin.H{"marked": res.RowsAffected})
}
