package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/ceylonstyle/salon-backend/internal/domain/booking"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/httpresp"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
	bookinguc "github.com/ceylonstyle/salon-backend/internal/usecase/booking"
)

type BookingHandler struct {
	db *gorm.DB

	create       *bookinguc.CreateBooking
	cancel       *bookinguc.CancelBooking
	reschedule   *bookinguc.RescheduleBooking
	updateStatus *bookinguc.UpdateBookingStatus
	slots        *bookinguc.GetAvailableSlots
	list         *bookinguc.ListBookings
	get          *bookinguc.GetBooking
}

func NewBookingHandler(
	db *gorm.DB,
	create *bookinguc.CreateBooking,
	cancel *bookinguc.CancelBooking,
	reschedule *bookinguc.RescheduleBooking,
	updateStatus *bookinguc.UpdateBookingStatus,
	slots *bookinguc.GetAvailableSlots,
	list *bookinguc.ListBookings,
	get *bookinguc.GetBooking,
) *BookingHandler {
	return &BookingHandler{
		db:           db,
		create:       create,
		cancel:       cancel,
		reschedule:   reschedule,
		updateStatus: updateStatus,
		slots:        slots,
		list:         list,
		get:          get,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	SalonID   uint  `json:"salon_id" binding:"required"`
	ServiceID uint  `json:"service_id" binding:"required"`
	StaffID   *uint `json:"staff_id"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	SelectedAddOns []string `json:"selected_add_ons"`
	PromotionCode  string   `json:"promotion_code"`
	PaymentMethod  string   `json:"payment_method"`
	CustomerNotes  string   `json:"customer_notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type RescheduleBookingRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type UpdateBookingStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	SalonNotes string `json:"salon_notes"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	customerID := currentUserID(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	booking, err := h.create.Execute(c.Request.Context(), bookinguc.CreateBookingInput{
		CustomerID:     customerID,
		SalonID:        req.SalonID,
		ServiceID:      req.ServiceID,
		StaffID:        req.StaffID,
		Date:           req.Date,
		Time:           req.Time,
		SelectedAddOns: req.SelectedAddOns,
		PromotionCode:  req.PromotionCode,
		PaymentMethod:  req.PaymentMethod,
		CustomerNotes:  req.CustomerNotes,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Could not create booking.")
		return
	}

	httpresp.Created(c, booking)
}

func (h *BookingHandler) GetSlots(c *gin.Context) {
	salonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Salon id must be numeric.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id is required.")
		return
	}

	var staffID *uint
	if s := c.Query("staff_id"); s != "" {
		parsed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "staff_id must be numeric.")
			return
		}
		id := uint(parsed)
		staffID = &id
	}

	slots, err := h.slots.Execute(c.Request.Context(), bookinguc.GetAvailableSlotsInput{
		SalonID:   uint(salonID),
		ServiceID: uint(serviceID),
		StaffID:   staffID,
		Date:      c.Query("date"),
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Could not compute availability.")
		return
	}

	httpresp.OK(c, gin.H{"date": c.Query("date"), "slots": slots})
}

// List scopes results to the caller: customers see their bookings, salon
// owners see their salon's.
func (h *BookingHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	role := currentUserRole(c)

	filters := domain.ListFilters{
		Status: c.Query("status"),
	}

	switch role {
	case models.RoleSalonOwner:
		var salon models.Salon
		if err := h.db.Where("owner_id = ?", userID).First(&salon).Error; err != nil {
			httperr.NotFound(c, "salon_not_found", "This account does not own a salon.")
			return
		}
		filters.SalonID = salon.ID
	case models.RoleAdmin:
		if s := c.Query("salon_id"); s != "" {
			if parsed, err := strconv.ParseUint(s, 10, 64); err == nil {
				filters.SalonID = uint(parsed)
			}
		}
	default:
		filters.CustomerID = userID
	}

	if from := c.Query("from"); from != "" {
		if t, err := timezone.ParseDate(from); err == nil {
			filters.FromDate = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := timezone.ParseDate(to); err == nil {
			filters.ToDate = &t
		}
	}

	bookings, err := h.list.Execute(c.Request.Context(), filters)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

// Get accepts either a numeric id or a booking reference code in the path,
// so GET /bookings/BK-... works without a second route.
func (h *BookingHandler) Get(c *gin.Context) {
	in := bookinguc.GetBookingInput{
		UserID: currentUserID(c),
		Role:   currentUserRole(c),
	}

	if id, err := strconv.ParseUint(c.Param("id"), 10, 64); err == nil {
		in.BookingID = uint(id)
	} else {
		in.Reference = c.Param("id")
	}

	booking, err := h.get.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.WriteBusiness(c, err, "Could not load booking.")
		return
	}

	httpresp.OK(c, booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return
	}

	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	booking, err := h.cancel.Execute(c.Request.Context(), bookinguc.CancelBookingInput{
		BookingID: uint(id),
		UserID:    currentUserID(c),
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Could not cancel booking.")
		return
	}

	httpresp.OK(c, booking)
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return
	}

	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	booking, err := h.reschedule.Execute(c.Request.Context(), bookinguc.RescheduleBookingInput{
		BookingID: uint(id),
		UserID:    currentUserID(c),
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Could not reschedule booking.")
		return
	}

	httpresp.OK(c, booking)
}

// UpdateStatus is the salon-side lifecycle endpoint.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID := currentUserID(c)
	role := currentUserRole(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if role != models.RoleAdmin {
		var booking models.Booking
		if err := h.db.First(&booking, uint(id)).Error; err != nil {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		var salon models.Salon
		if err := h.db.
			Where("id = ? AND owner_id = ?", booking.SalonID, userID).
			First(&salon).Error; err != nil {
			httperr.Forbidden(c, "not_salon_owner", "Only the salon can update booking status.")
			return
		}
	}

	booking, err := h.updateStatus.Execute(c.Request.Context(), bookinguc.UpdateBookingStatusInput{
		BookingID:  uint(id),
		ActorID:    userID,
		NewStatus:  req.Status,
		SalonNotes: req.SalonNotes,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Could not update booking status.")
		return
	}

	httpresp.OK(c, booking)
}
