package handlers

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/audit"
	"github.com/ceylonstyle/salon-backend/internal/domain/geo"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/httpresp"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

// Notifier pushes user-facing notifications off the request path.
type Notifier interface {
	Enqueue(userID uint, notifType, channel, title, message string, data map[string]any)
}

type SalonHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewSalonHandler(db *gorm.DB, dispatcher *audit.Dispatcher, notifier Notifier) *SalonHandler {
	return &SalonHandler{db: db, audit: dispatcher, notifier: notifier}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSalonRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	Description  string `json:"description"`

	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	District   string `json:"district"`
	PostalCode string `json:"postal_code"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	GenderSpecialization string   `json:"gender_specialization"`
	LanguagesSpoken      []string `json:"languages_spoken"`

	BusinessRegistrationNumber string `json:"business_registration_number"`
}

type UpdateSalonRequest struct {
	BusinessName *string `json:"business_name"`
	Description  *string `json:"description"`

	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	District   *string `json:"district"`
	PostalCode *string `json:"postal_code"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	GenderSpecialization *string  `json:"gender_specialization"`
	LanguagesSpoken      []string `json:"languages_spoken"`
	Images               []string `json:"images"`
	CoverImage           *string  `json:"cover_image"`
	LogoImage            *string  `json:"logo_image"`

	AcceptsWalkIns        *bool `json:"accepts_walk_ins"`
	AcceptsOnlineBookings *bool `json:"accepts_online_bookings"`
	IsActive              *bool `json:"is_active"`
}

type VerifySalonRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type SalonHoursRequest struct {
	Hours []struct {
		Weekday   int    `json:"weekday" binding:"min=0,max=6"`
		OpenTime  string `json:"open_time"`
		CloseTime string `json:"close_time"`
		Closed    bool   `json:"closed"`
	} `json:"hours" binding:"required"`
}

// ======================================================
// OWNER
// ======================================================

func (h *SalonHandler) Create(c *gin.Context) {
	ownerID := currentUserID(c)

	var req CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var count int64
	h.db.Model(&models.Salon{}).Where("owner_id = ?", ownerID).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "salon_already_exists", "This account already owns a salon.")
		return
	}

	salon := models.Salon{
		OwnerID:      ownerID,
		BusinessName: req.BusinessName,
		Slug:         h.uniqueSlug(req.BusinessName),
		Description:  req.Description,

		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		City:       req.City,
		District:   req.District,
		PostalCode: req.PostalCode,

		Latitude:  req.Latitude,
		Longitude: req.Longitude,

		GenderSpecialization: defaultString(req.GenderSpecialization, "unisex"),
		LanguagesSpoken:      req.LanguagesSpoken,

		BusinessRegistrationNumber: req.BusinessRegistrationNumber,
		VerificationStatus:         models.VerificationPending,
		SubscriptionTier:           models.SalonTierStarter,
		AcceptsWalkIns:             true,
		AcceptsOnlineBookings:      true,
		IsActive:                   true,
	}

	if err := h.db.Create(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_create_salon", "Could not create salon.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  &salon.ID,
		UserID:   &ownerID,
		Action:   "salon_created",
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	httpresp.Created(c, salon)
}

func (h *SalonHandler) Update(c *gin.Context) {
	salon, ok := h.ownedSalon(c)
	if !ok {
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updates := map[string]any{}
	if req.BusinessName != nil && *req.BusinessName != salon.BusinessName {
		updates["business_name"] = *req.BusinessName
		updates["slug"] = h.uniqueSlug(*req.BusinessName)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.District != nil {
		updates["district"] = *req.District
	}
	if req.PostalCode != nil {
		updates["postal_code"] = *req.PostalCode
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.GenderSpecialization != nil {
		updates["gender_specialization"] = *req.GenderSpecialization
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}
	if req.LogoImage != nil {
		updates["logo_image"] = *req.LogoImage
	}
	if req.AcceptsWalkIns != nil {
		updates["accepts_walk_ins"] = *req.AcceptsWalkIns
	}
	if req.AcceptsOnlineBookings != nil {
		updates["accepts_online_bookings"] = *req.AcceptsOnlineBookings
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := h.db.Model(salon).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_salon", "Could not update salon.")
			return
		}
	}
	if req.LanguagesSpoken != nil {
		h.db.Model(salon).Update("languages_spoken", req.LanguagesSpoken)
	}
	if req.Images != nil {
		h.db.Model(salon).Update("images", req.Images)
	}

	var fresh models.Salon
	h.db.First(&fresh, salon.ID)
	httpresp.OK(c, fresh)
}

// Delete deactivates the salon instead of removing the row so past bookings
// and reviews keep their references. The public catalog filters on is_active.
func (h *SalonHandler) Delete(c *gin.Context) {
	ownerID := currentUserID(c)

	salon, ok := h.ownedSalon(c)
	if !ok {
		return
	}

	err := h.db.Model(salon).Updates(map[string]any{
		"is_active":               false,
		"accepts_online_bookings": false,
	}).Error
	if err != nil {
		httperr.Internal(c, "failed_to_delete_salon", "Could not deactivate salon.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  &salon.ID,
		UserID:   &ownerID,
		Action:   "salon_deactivated",
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

// UpsertHours replaces the salon's weekly opening windows.
func (h *SalonHandler) UpsertHours(c *gin.Context) {
	salon, ok := h.ownedSalon(c)
	if !ok {
		return
	}

	var req SalonHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range req.Hours {
			hours := models.SalonHours{
				SalonID:   salon.ID,
				Weekday:   row.Weekday,
				OpenTime:  row.OpenTime,
				CloseTime: row.CloseTime,
				Closed:    row.Closed,
			}

			res := tx.Model(&models.SalonHours{}).
				Where("salon_id = ? AND weekday = ?", salon.ID, row.Weekday).
				Updates(map[string]any{
					"open_time":  row.OpenTime,
					"close_time": row.CloseTime,
					"closed":     row.Closed,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Create(&hours).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_hours", "Could not update opening hours.")
		return
	}

	var hours []models.SalonHours
	h.db.Where("salon_id = ?", salon.ID).Order("weekday ASC").Find(&hours)
	httpresp.List(c, hours)
}

// ======================================================
// PUBLIC
// ======================================================

func (h *SalonHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Salon id must be numeric.")
		return
	}

	var salon models.Salon
	if err := h.db.
		Preload("Services", "is_active = ?", true).
		Preload("Staff", "is_active = ?", true).
		First(&salon, uint(id)).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	h.db.Model(&salon).UpdateColumn("view_count", gorm.Expr("view_count + 1"))

	httpresp.OK(c, salon)
}

func (h *SalonHandler) GetBySlug(c *gin.Context) {
	var salon models.Salon
	if err := h.db.
		Preload("Services", "is_active = ?", true).
		Preload("Staff", "is_active = ?", true).
		Where("slug = ?", c.Param("slug")).
		First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	h.db.Model(&salon).UpdateColumn("view_count", gorm.Expr("view_count + 1"))

	httpresp.OK(c, salon)
}

// List is the public catalog. Only active, verified salons are listed;
// pending and rejected ones stay hidden until an admin verifies them.
func (h *SalonHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Salon{}).
		Where("is_active = ? AND verification_status = ?", true, models.VerificationVerified)

	if city := c.Query("city"); city != "" {
		q = q.Where("city ILIKE ?", city)
	}
	if district := c.Query("district"); district != "" {
		q = q.Where("district ILIKE ?", district)
	}
	if gender := c.Query("gender"); gender != "" {
		q = q.Where("gender_specialization IN ?", []string{gender, "unisex"})
	}
	if search := c.Query("q"); search != "" {
		q = q.Where("business_name ILIKE ?", "%"+search+"%")
	}
	if minRating := c.Query("min_rating"); minRating != "" {
		if r, err := strconv.ParseFloat(minRating, 64); err == nil {
			q = q.Where("average_rating >= ?", r)
		}
	}

	var salons []models.Salon
	if err := q.Order("average_rating DESC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Could not list salons.")
		return
	}

	httpresp.List(c, salons)
}

type nearbySalon struct {
	models.Salon
	DistanceKm float64 `json:"distance_km"`
}

// Nearby ranks verified salons with coordinates by great-circle distance.
func (h *SalonHandler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		httperr.BadRequest(c, "invalid_coordinates", "lat and lng are required.")
		return
	}

	radiusKm := 10.0
	if r := c.Query("radius_km"); r != "" {
		if parsed, err := strconv.ParseFloat(r, 64); err == nil && parsed > 0 {
			radiusKm = parsed
		}
	}

	var salons []models.Salon
	err := h.db.
		Where(
			"is_active = ? AND verification_status = ? AND latitude IS NOT NULL AND longitude IS NOT NULL",
			true, models.VerificationVerified,
		).
		Find(&salons).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Could not list salons.")
		return
	}

	nearby := []nearbySalon{}
	for _, salon := range salons {
		dist := geo.DistanceKm(lat, lng, *salon.Latitude, *salon.Longitude)
		if dist <= radiusKm {
			nearby = append(nearby, nearbySalon{Salon: salon, DistanceKm: dist})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	httpresp.List(c, nearby)
}

// ======================================================
// ADMIN
// ======================================================

func (h *SalonHandler) Verify(c *gin.Context) {
	adminID := currentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Salon id must be numeric.")
		return
	}

	var req VerifySalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Status != models.VerificationVerified && req.Status != models.VerificationRejected {
		httperr.BadRequest(c, "invalid_status", "Status must be verified or rejected.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, uint(id)).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	updates := map[string]any{
		"verification_status": req.Status,
		"verification_notes":  req.Notes,
	}
	if err := h.db.Model(&salon).Updates(updates).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Could not update verification.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  &salon.ID,
		UserID:   &adminID,
		Action:   "salon_verification_" + req.Status,
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	h.notifier.Enqueue(
		salon.OwnerID,
		models.NotifyVerificationStatus,
		models.ChannelInApp,
		"Verification update",
		fmt.Sprintf("Your salon %s is now %s.", salon.BusinessName, req.Status),
		map[string]any{"salon_id": salon.ID, "status": req.Status},
	)

	httpresp.OK(c, salon)
}

// ======================================================
// HELPERS
// ======================================================

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func (h *SalonHandler) uniqueSlug(name string) string {
	base := slugify(name)
	if base == "" {
		base = "salon"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		h.db.Model(&models.Salon{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// ownedSalon loads the caller's salon or writes the error response.
func (h *SalonHandler) ownedSalon(c *gin.Context) (*models.Salon, bool) {
	ownerID := currentUserID(c)

	var salon models.Salon
	if err := h.db.Where("owner_id = ?", ownerID).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "This account does not own a salon.")
		return nil, false
	}
	return &salon, true
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
