package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/httpresp"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

type PortfolioHandler struct {
	db *gorm.DB
}

func NewPortfolioHandler(db *gorm.DB) *PortfolioHandler {
	return &PortfolioHandler{db: db}
}

type PortfolioRequest struct {
	StaffID   *uint `json:"staff_id"`
	ServiceID *uint `json:"service_id"`

	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`

	BeforeImageURL string `json:"before_image_url"`
	AfterImageURL  string `json:"after_image_url" binding:"required"`
	ThumbnailURL   string `json:"thumbnail_url"`

	IsVisible *bool `json:"is_visible"`
}

func (h *PortfolioHandler) Create(c *gin.Context) {
	salon, ok := ownedSalonFor(c, h.db)
	if !ok {
		return
	}

	var req PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	entry := models.Portfolio{
		SalonID:        salon.ID,
		StaffID:        req.StaffID,
		ServiceID:      req.ServiceID,
		Title:          req.Title,
		Description:    req.Description,
		Category:       defaultString(req.Category, "haircut"),
		BeforeImageURL: req.BeforeImageURL,
		AfterImageURL:  req.AfterImageURL,
		ThumbnailURL:   req.ThumbnailURL,
		IsVisible:      true,
	}
	if req.IsVisible != nil {
		entry.IsVisible = *req.IsVisible
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_create_portfolio", "Could not create portfolio entry.")
		return
	}

	httpresp.Created(c, entry)
}

func (h *PortfolioHandler) ListForSalon(c *gin.Context) {
	salonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Salon id must be numeric.")
		return
	}

	q := h.db.Where("salon_id = ? AND is_visible = ?", uint(salonID), true)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var entries []models.Portfolio
	if err := q.Order("created_at DESC").Find(&entries).Error; err != nil {
		httperr.Internal(c, "failed_to_list_portfolio", "Could not list portfolio.")
		return
	}

	httpresp.List(c, entries)
}

func (h *PortfolioHandler) Like(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Portfolio id must be numeric.")
		return
	}

	res := h.db.Model(&models.Portfolio{}).
		Where("id = ?", uint(id)).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	if res.Error != nil || res.RowsAffected == 0 {
		httperr.NotFound(c, "portfolio_not_found", "Portfolio entry not found.")
		return
	}

	httpresp.OK(c, gin.H{"liked": true})
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	salon, ok := ownedSalonFor(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Portfolio id must be numeric.")
		return
	}

	res := h.db.
		Where("id = ? AND salon_id = ?", uint(id), salon.ID).
		Delete(&models.Portfolio{})
	if res.Error != nil || res.RowsAffected == 0 {
		httperr.NotFound(c, "portfolio_not_found", "Portfolio entry not found.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}
