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

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type CreateReviewRequest struct {
	BookingID uint `json:"booking_id" binding:"required"`

	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`

	Images          []string       `json:"images"`
	DetailedRatings map[string]int `json:"detailed_ratings"`
}

type RespondReviewRequest struct {
	Response string `json:"response" binding:"required"`
}

// Create accepts one review per completed booking, from its customer.
func (h *ReviewHandler) Create(c *gin.Context) {
	customerID := currentUserID(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var booking models.Booking
	if err := h.db.First(&booking, req.BookingID).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}
	if booking.CustomerID != customerID {
		httperr.Forbidden(c, "not_booking_owner", "Only the booking's customer can review it.")
		return
	}
	if booking.Status != models.BookingCompleted {
		httperr.BadRequest(c, "booking_not_completed", "Only completed bookings can be reviewed.")
		return
	}

	var count int64
	h.db.Model(&models.Review{}).Where("booking_id = ?", booking.ID).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "duplicate_review", "This booking already has a review.")
		return
	}

	review := models.Review{
		CustomerID:      customerID,
		SalonID:         booking.SalonID,
		BookingID:       &booking.ID,
		StaffID:         booking.StaffID,
		Rating:          req.Rating,
		Comment:         req.Comment,
		Images:          req.Images,
		DetailedRatings: req.DetailedRatings,
		IsVerified:      true,
		IsVisible:       true,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_create_review", "Could not create review.")
		return
	}

	h.recomputeSalonRating(booking.SalonID)
	if booking.StaffID != nil {
		h.recomputeStaffRating(*booking.StaffID)
	}

	httpresp.Created(c, review)
}

func (h *ReviewHandler) ListForSalon(c *gin.Context) {
	salonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Salon id must be numeric.")
		return
	}

	var reviews []models.Review
	if err := h.db.
		Preload("Customer").
		Where("salon_id = ? AND is_visible = ?", uint(salonID), true).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Review id must be numeric.")
		return
	}

	var review models.Review
	if err := h.db.
		Preload("Customer").
		Where("id = ? AND is_visible = ?", uint(id), true).
		First(&review).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	httpresp.OK(c, review)
}

func (h *ReviewHandler) Respond(c *gin.Context) {
	salon, ok := ownedSalonFor(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Review id must be numeric.")
		return
	}

	var req RespondReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var review models.Review
	if err := h.db.
		Where("id = ? AND salon_id = ?", uint(id), salon.ID).
		First(&review).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	now := timezone.Now()
	review.SalonResponse = req.Response
	review.SalonResponseDate = &now

	if err := h.db.Save(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_update_review", "Could not store response.")
		return
	}

	httpresp.OK(c, review)
}

func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Review id must be numeric.")
		return
	}

	res := h.db.Model(&models.Review{}).
		Where("id = ?", uint(id)).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if res.Error != nil || res.RowsAffected == 0 {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	httpresp.OK(c, gin.H{"marked": true})
}

// --------------------------------------------------
// Rating aggregates
// --------------------------------------------------

func (h *ReviewHandler) recomputeSalonRating(salonID uint) {
	var agg struct {
		Avg   float64
		Count int64
	}
	h.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("salon_id = ? AND is_visible = ?", salonID, true).
		Scan(&agg)

	h.db.Model(&models.Salon{}).
		Where("id = ?", salonID).
		Updates(map[string]any{
			"average_rating": agg.Avg,
			"total_reviews":  agg.Count,
		})
}

func (h *ReviewHandler) recomputeStaffRating(staffID uint) {
	var agg struct {
		Avg   float64
		Count int64
	}
	h.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("staff_id = ? AND is_visible = ?", staffID, true).
		Scan(&agg)

	h.db.Model(&models.Staff{}).
		Where("id = ?", staffID).
		Updates(map[string]any{
			"rating":        agg.Avg,
			"total_reviews": agg.Count,
		})
}
