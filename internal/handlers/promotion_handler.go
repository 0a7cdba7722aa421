package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/httpresp"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
)

type PromotionHandler struct {
	db *gorm.DB
}

func NewPromotionHandler(db *gorm.DB) *PromotionHandler {
	return &PromotionHandler{db: db}
}

type PromotionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
	Code        string `json:"code" binding:"required"`

	DiscountValue     float64  `json:"discount_value" binding:"required,gt=0"`
	MinPurchaseAmount *float64 `json:"min_purchase_amount"`
	MaxDiscountAmount *float64 `json:"max_discount_amount"`

	UsageLimit       *int `json:"usage_limit"`
	PerCustomerLimit *int `json:"per_customer_limit"`

	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`

	ApplicableServiceIDs []uint `json:"applicable_service_ids"`
	ExcludedServiceIDs   []uint `json:"excluded_service_ids"`

	ImageURL        string `json:"image_url"`
	IsFirstTimeOnly bool   `json:"is_first_time_only"`
	IsVisible       *bool  `json:"is_visible"`
	RequiresCode    bool   `json:"requires_code"`
}

func (h *PromotionHandler) Create(c *gin.Context) {
	salon, ok := ownedSalonFor(c, h.db)
	if !ok {
		return
	}

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, errStart := timezone.ParseDate(req.StartDate)
	end, errEnd := timezone.ParseDate(req.EndDate)
	if errStart != nil || errEnd != nil || !end.After(start) {
		httperr.BadRequest(c, "invalid_date_range", "end_date must be after start_date.")
		return
	}

	promo := models.Promotion{
		SalonID:     salon.ID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),

		DiscountValue:     req.DiscountValue,
		MinPurchaseAmount: req.MinPurchaseAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,

		UsageLimit:       req.UsageLimit,
		PerCustomerLimit: req.PerCustomerLimit,

		StartDate: start,
		EndDate:   end,
		Status:    models.PromotionActive,

		ApplicableServiceIDs: req.ApplicableServiceIDs,
		ExcludedServiceIDs:   req.ExcludedServiceIDs,

		ImageURL:        req.ImageURL,
		IsFirstTimeOnly: req.IsFirstTimeOnly,
		IsVisible:       true,
		RequiresCode:    req.RequiresCode,
	}
	if req.IsVisible != nil {
		promo.IsVisible = *req.IsVisible
	}
	if timezone.Now().Before(start) {
		promo.Status = models.PromotionScheduled
	}

	if err := h.db.Create(&promo).Error; err != nil {
		if isUniqueViolation(err) {
			httperr.Conflict(c, "code_already_exists", "This promotion code is taken.")
			return
		}
		httperr.Internal(c, "failed_to_create_promotion", "Could not create promotion.")
		return
	}

	httpresp.Created(c, promo)
}

func (h *PromotionHandler) ListMine(c *gin.Context) {
	salon, ok := ownedSalonFor(c, h.db)
	if !ok {
		return
	}

	var promos []models.Promotion
	if err := h.db.
		Where("salon_id = ?", salon.ID).
		Order("created_at DESC").
		Find(&promos).Error; err != nil {
		httperr.Internal(c, "failed_to_list_promotions", "Could not list promotions.")
		return
	}

	httpresp.List(c, promos)
}

// ListForSalon shows the public, visible promotions of a salon.
func (h *PromotionHandler) ListForSalon(c *gin.Context) {
	salonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Salon id must be numeric.")
		return
	}

	var promos []models.Promotion
	if err := h.db.
		Where(
			"salon_id = ? AND status = ? AND is_visible = ?",
			uint(salonID), models.PromotionActive, true,
		).
		Order("end_date ASC").
		Find(&promos).Error; err != nil {
		httperr.Internal(c, "failed_to_list_promotions", "Could not list promotions.")
		return
	}

	httpresp.List(c, promos)
}

func (h *PromotionHandler) Deactivate(c *gin.Context) {
	salon, ok := ownedSalonFor(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Promotion id must be numeric.")
		return
	}

	res := h.db.Model(&models.Promotion{}).
		Where("id = ? AND salon_id = ?", uint(id), salon.ID).
		Update("status", models.PromotionInactive)
	if res.Error != nil || res.RowsAffected == 0 {
		httperr.NotFound(c, "promotion_not_found", "Promotion not found.")
		return
	}

	httpresp.OK(c, gin.H{"deactivated": true})
}

// Validate lets the booking flow preview a code before checkout.
func (h *PromotionHandler) Validate(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Query("code")))
	if code == "" {
		httperr.BadRequest(c, "missing_code", "code is required.")
		return
	}

	var promo models.Promotion
	if err := h.db.Where("code = ?", code).First(&promo).Error; err != nil {
		httperr.NotFound(c, "promotion_not_found", "Promotion code not found.")
		return
	}

	now := timezone.Now()
	valid := promo.Status == models.PromotionActive &&
		!now.Before(promo.StartDate) && !now.After(promo.EndDate) &&
		(promo.UsageLimit == nil || promo.UsageCount < *promo.UsageLimit)

	httpresp.OK(c, gin.H{
		"valid":          valid,
		"code":           promo.Code,
		"type":           promo.Type,
		"discount_value": promo.DiscountValue,
		"salon_id":       promo.SalonID,
	})
}
