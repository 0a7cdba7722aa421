package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/httpresp"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Gender      string `json:"gender"`

	Price           float64  `json:"price" binding:"required,gt=0"`
	DiscountedPrice *float64 `json:"discounted_price"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,gt=0"`

	Image       string             `json:"image"`
	AddOns      []string           `json:"add_ons"`
	AddOnPrices map[string]float64 `json:"add_on_prices"`
	IsActive    *bool              `json:"is_active"`
}

// ListForSalon is the public catalog of one salon.
func (h *ServiceHandler) ListForSalon(c *gin.Context) {
	salonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Salon id must be numeric.")
		return
	}

	q := h.db.Where("salon_id = ? AND is_active = ?", uint(salonID), true)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if gender := c.Query("gender"); gender != "" {
		q = q.Where("gender IN ?", []string{gender, "unisex"})
	}

	var services []models.Service
	if err := q.Order("booking_count DESC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	salon, ok := ownedSalonFor(c, h.db)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.DiscountedPrice != nil && *req.DiscountedPrice >= req.Price {
		httperr.BadRequest(c, "invalid_discounted_price", "Discounted price must be below the regular price.")
		return
	}

	service := models.Service{
		SalonID:         salon.ID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        defaultString(req.Category, "haircut"),
		Gender:          defaultString(req.Gender, "unisex"),
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		DurationMinutes: req.DurationMinutes,
		Image:           req.Image,
		AddOns:          req.AddOns,
		AddOnPrices:     req.AddOnPrices,
		IsActive:        true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.DiscountedPrice != nil && *req.DiscountedPrice >= req.Price {
		httperr.BadRequest(c, "invalid_discounted_price", "Discounted price must be below the regular price.")
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Category = defaultString(req.Category, service.Category)
	service.Gender = defaultString(req.Gender, service.Gender)
	service.Price = req.Price
	service.DiscountedPrice = req.DiscountedPrice
	service.DurationMinutes = req.DurationMinutes
	service.Image = req.Image
	service.AddOns = req.AddOns
	service.AddOnPrices = req.AddOnPrices
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Save(service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	httpresp.OK(c, service)
}

// Delete deactivates rather than removes, so past bookings keep their
// service reference.
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	if err := h.db.Model(service).Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not remove service.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

func (h *ServiceHandler) ownedService(c *gin.Context) (*models.Service, bool) {
	salon, ok := ownedSalonFor(c, h.db)
	if !ok {
		return nil, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Service id must be numeric.")
		return nil, false
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND salon_id = ?", uint(id), salon.ID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return nil, false
	}
	return &service, true
}

// ownedSalonFor is the shared owner scope check for catalog handlers.
func ownedSalonFor(c *gin.Context, db *gorm.DB) (*models.Salon, bool) {
	ownerID := currentUserID(c)

	var salon models.Salon
	if err := db.Where("owner_id = ?", ownerID).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "This account does not own a salon.")
		return nil, false
	}
	return &salon, true
}
