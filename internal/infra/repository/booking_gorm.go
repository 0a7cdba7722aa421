package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/ceylonstyle/salon-backend/internal/domain/booking"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog lookups
// --------------------------------------------------

func (r *BookingGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, serviceID).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *BookingGormRepository) GetStaff(
	ctx context.Context,
	staffID, salonID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", staffID, salonID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *BookingGormRepository) GetSalonHours(
	ctx context.Context,
	salonID uint,
	weekday int,
) (*models.SalonHours, error) {

	var hours models.SalonHours
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND weekday = ?", salonID, weekday).
		First(&hours).Error; err != nil {
		return nil, err
	}
	return &hours, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

// activeStatuses are the statuses that block a time slot.
var blockedStatuses = []string{
	models.BookingPending,
	models.BookingConfirmed,
	models.BookingInProgress,
	models.BookingRescheduled,
}

func dayRange(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	salonID uint,
	date time.Time,
	staffID *uint,
) ([]models.Booking, error) {

	start, end := dayRange(date)

	q := r.db.WithContext(ctx).
		Where(
			"salon_id = ? AND appointment_date >= ? AND appointment_date < ? AND status IN ?",
			salonID, start, end, blockedStatuses,
		)
	if staffID != nil {
		q = q.Where("staff_id = ?", *staffID)
	}

	var bookings []models.Booking
	if err := q.Order("appointment_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func hasConflict(candidate *models.Booking, existing []models.Booking) (bool, error) {
	startMin, err := domain.TimeToMinutes(candidate.AppointmentTime)
	if err != nil {
		return false, err
	}
	slot := domain.Interval{Start: startMin, End: startMin + candidate.DurationMinutes}

	for _, b := range existing {
		if b.ID == candidate.ID {
			continue
		}
		bookedStart, err := domain.TimeToMinutes(b.AppointmentTime)
		if err != nil {
			continue
		}
		booked := domain.Interval{Start: bookedStart, End: bookedStart + b.DurationMinutes}
		if slot.Overlaps(booked) {
			return true, nil
		}
	}
	return false, nil
}

func (r *BookingGormRepository) checkAndRun(
	ctx context.Context,
	b *models.Booking,
	run func(tx *gorm.DB) error,
) error {

	start, end := dayRange(b.AppointmentDate)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"salon_id = ? AND appointment_date >= ? AND appointment_date < ? AND status IN ?",
				b.SalonID, start, end, blockedStatuses,
			)
		if b.StaffID != nil {
			q = q.Where("staff_id = ?", *b.StaffID)
		}

		var existing []models.Booking
		if err := q.Find(&existing).Error; err != nil {
			return err
		}

		conflict, err := hasConflict(b, existing)
		if err != nil {
			return httperr.ErrBusiness("invalid_date_or_time")
		}
		if conflict {
			return httperr.ErrBusiness("slot_not_available")
		}

		return run(tx)
	})
}

func (r *BookingGormRepository) CreateBookingChecked(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.checkAndRun(ctx, b, func(tx *gorm.DB) error {
		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) UpdateBookingChecked(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.checkAndRun(ctx, b, func(tx *gorm.DB) error {
		return tx.Save(b).Error
	})
}

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Salon").
		Preload("Service").
		Preload("Staff").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Salon").
		Preload("Service").
		Preload("Staff").
		Where("booking_reference = ?", reference).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilters,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).Model(&models.Booking{})

	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.SalonID != 0 {
		q = q.Where("salon_id = ?", f.SalonID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.FromDate != nil {
		q = q.Where("appointment_date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("appointment_date <= ?", *f.ToDate)
	}

	var bookings []models.Booking
	err := q.
		Preload("Salon").
		Preload("Service").
		Preload("Staff").
		Order("appointment_date ASC").
		Order("appointment_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Completion side effects
// --------------------------------------------------

func (r *BookingGormRepository) IncrementServiceBookingCount(
	ctx context.Context,
	serviceID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", serviceID).
		UpdateColumn("booking_count", gorm.Expr("booking_count + 1")).Error
}

func (r *BookingGormRepository) IncrementStaffCompletedBookings(
	ctx context.Context,
	staffID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("id = ?", staffID).
		UpdateColumn("completed_bookings", gorm.Expr("completed_bookings + 1")).Error
}

// --------------------------------------------------
// Promotions
// --------------------------------------------------

func (r *BookingGormRepository) GetPromotionByCode(
	ctx context.Context,
	code string,
) (*models.Promotion, error) {

	var promo models.Promotion
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&promo).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *BookingGormRepository) IncrementPromotionUsage(
	ctx context.Context,
	promotionID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Promotion{}).
		Where("id = ?", promotionID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}

func (r *BookingGormRepository) CountCustomerPromotionUses(
	ctx context.Context,
	customerID uint,
	code string,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"customer_id = ? AND promotion_code = ? AND status <> ?",
			customerID, code, models.BookingCancelled,
		).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
