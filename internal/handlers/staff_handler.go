package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/httpresp"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

type StaffRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`

	Bio               string   `json:"bio"`
	ProfileImage      string   `json:"profile_image"`
	Specializations   []string `json:"specializations"`
	YearsOfExperience int      `json:"years_of_experience"`
	LanguagesSpoken   []string `json:"languages_spoken"`

	IsActive        *bool `json:"is_active"`
	AcceptsBookings *bool `json:"accepts_bookings"`
}

func (h *StaffHandler) ListForSalon(c *gin.Context) {
	salonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Salon id must be numeric.")
		return
	}

	var staff []models.Staff
	if err := h.db.
		Where("salon_id = ? AND is_active = ?", uint(salonID), true).
		Order("rating DESC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	salon, ok := ownedSalonFor(c, h.db)
	if !ok {
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	staff := models.Staff{
		SalonID:           salon.ID,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Role:              defaultString(req.Role, "stylist"),
		Bio:               req.Bio,
		ProfileImage:      req.ProfileImage,
		Specializations:   req.Specializations,
		YearsOfExperience: req.YearsOfExperience,
		LanguagesSpoken:   req.LanguagesSpoken,
		IsActive:          true,
		AcceptsBookings:   true,
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	if req.AcceptsBookings != nil {
		staff.AcceptsBookings = *req.AcceptsBookings
	}

	if err := h.db.Create(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_create_staff", "Could not add staff member.")
		return
	}

	httpresp.Created(c, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	staff, ok := h.ownedStaff(c)
	if !ok {
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	staff.Name = req.Name
	staff.Email = req.Email
	staff.Phone = req.Phone
	staff.Role = defaultString(req.Role, staff.Role)
	staff.Bio = req.Bio
	staff.ProfileImage = req.ProfileImage
	staff.Specializations = req.Specializations
	staff.YearsOfExperience = req.YearsOfExperience
	staff.LanguagesSpoken = req.LanguagesSpoken
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	if req.AcceptsBookings != nil {
		staff.AcceptsBookings = *req.AcceptsBookings
	}

	if err := h.db.Save(staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Could not update staff member.")
		return
	}

	httpresp.OK(c, staff)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	staff, ok := h.ownedStaff(c)
	if !ok {
		return
	}

	if err := h.db.Model(staff).Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_staff", "Could not remove staff member.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

func (h *StaffHandler) ownedStaff(c *gin.Context) (*models.Staff, bool) {
	salon, ok := ownedSalonFor(c, h.db)
	if !ok {
		return nil, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Staff id must be numeric.")
		return nil, false
	}

	var staff models.Staff
	if err := h.db.
		Where("id = ? AND salon_id = ?", uint(id), salon.ID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return nil, false
	}
	return &staff, true
}
