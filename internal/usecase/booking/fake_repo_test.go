package booking_test

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/ceylonstyle/salon-backend/internal/domain/booking"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

// fakeRepo is an in-memory domain.Repository so use cases run without a
// database. The conflict check mirrors the transactional one in the gorm
// repository.
type fakeRepo struct {
	salons     map[uint]*models.Salon
	services   map[uint]*models.Service
	staff      map[uint]*models.Staff
	hours      map[int]*models.SalonHours
	bookings   map[uint]*models.Booking
	promotions map[string]*models.Promotion

	nextID uint

	promotionUsage   map[uint]int
	serviceCompleted map[uint]int
	staffCompleted   map[uint]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salons:     map[uint]*models.Salon{},
		services:   map[uint]*models.Service{},
		staff:      map[uint]*models.Staff{},
		hours:      map[int]*models.SalonHours{},
		bookings:   map[uint]*models.Booking{},
		promotions: map[string]*models.Promotion{},

		promotionUsage:   map[uint]int{},
		serviceCompleted: map[uint]int{},
		staffCompleted:   map[uint]int{},
	}
}

func (r *fakeRepo) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	if s, ok := r.salons[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	if s, ok := r.services[serviceID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetStaff(ctx context.Context, staffID, salonID uint) (*models.Staff, error) {
	if s, ok := r.staff[staffID]; ok && s.SalonID == salonID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetSalonHours(ctx context.Context, salonID uint, weekday int) (*models.SalonHours, error) {
	if h, ok := r.hours[weekday]; ok && h.SalonID == salonID {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func blocksSlot(status string) bool {
	switch status {
	case models.BookingPending, models.BookingConfirmed,
		models.BookingInProgress, models.BookingRescheduled:
		return true
	}
	return false
}

func (r *fakeRepo) ListBookingsForDay(
	ctx context.Context,
	salonID uint,
	date time.Time,
	staffID *uint,
) ([]models.Booking, error) {

	var out []models.Booking
	for _, b := range r.bookings {
		if b.SalonID != salonID || !sameDay(b.AppointmentDate, date) || !blocksSlot(b.Status) {
			continue
		}
		if staffID != nil && (b.StaffID == nil || *b.StaffID != *staffID) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) conflictFor(candidate *models.Booking) error {
	startMin, err := domain.TimeToMinutes(candidate.AppointmentTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}
	slot := domain.Interval{Start: startMin, End: startMin + candidate.DurationMinutes}

	for _, b := range r.bookings {
		if b.ID == candidate.ID ||
			b.SalonID != candidate.SalonID ||
			!sameDay(b.AppointmentDate, candidate.AppointmentDate) ||
			!blocksSlot(b.Status) {
			continue
		}
		if candidate.StaffID != nil && (b.StaffID == nil || *b.StaffID != *candidate.StaffID) {
			continue
		}

		bookedStart, err := domain.TimeToMinutes(b.AppointmentTime)
		if err != nil {
			continue
		}
		booked := domain.Interval{Start: bookedStart, End: bookedStart + b.DurationMinutes}
		if slot.Overlaps(booked) {
			return httperr.ErrBusiness("slot_not_available")
		}
	}
	return nil
}

func (r *fakeRepo) CreateBookingChecked(ctx context.Context, b *models.Booking) error {
	if err := r.conflictFor(b); err != nil {
		return err
	}
	r.nextID++
	b.ID = r.nextID
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) GetBookingByID(ctx context.Context, id uint) (*models.Booking, error) {
	if b, ok := r.bookings[id]; ok {
		clone := *b
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.BookingReference == reference {
			clone := *b
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateBookingChecked(ctx context.Context, b *models.Booking) error {
	if err := r.conflictFor(b); err != nil {
		return err
	}
	return r.UpdateBooking(ctx, b)
}

func (r *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) ListBookings(ctx context.Context, f domain.ListFilters) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if f.CustomerID != 0 && b.CustomerID != f.CustomerID {
			continue
		}
		if f.SalonID != 0 && b.SalonID != f.SalonID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) IncrementServiceBookingCount(ctx context.Context, serviceID uint) error {
	r.serviceCompleted[serviceID]++
	return nil
}

func (r *fakeRepo) IncrementStaffCompletedBookings(ctx context.Context, staffID uint) error {
	r.staffCompleted[staffID]++
	return nil
}

func (r *fakeRepo) GetPromotionByCode(ctx context.Context, code string) (*models.Promotion, error) {
	if p, ok := r.promotions[code]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) IncrementPromotionUsage(ctx context.Context, promotionID uint) error {
	r.promotionUsage[promotionID]++
	return nil
}

func (r *fakeRepo) CountCustomerPromotionUses(
	ctx context.Context,
	customerID uint,
	code string,
) (int64, error) {

	var count int64
	for _, b := range r.bookings {
		if b.CustomerID == customerID && b.PromotionCode == code &&
			b.Status != models.BookingCancelled {
			count++
		}
	}
	return count, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------

type sentNotification struct {
	userID    uint
	notifType string
	channel   string
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Enqueue(
	userID uint,
	notifType, channel, title, message string,
	data map[string]any,
) {
	f.sent = append(f.sent, sentNotification{
		userID:    userID,
		notifType: notifType,
		channel:   channel,
	})
}
