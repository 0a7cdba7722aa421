package booking

import (
	"context"
	"time"

	"github.com/ceylonstyle/salon-backend/internal/models"
)

// ListFilters narrows booking listings; zero values mean "no filter".
type ListFilters struct {
	CustomerID uint
	SalonID    uint
	Status     string
	FromDate   *time.Time
	ToDate     *time.Time
}

type Repository interface {
	// -------- Catalog lookups --------
	GetSalonByID(ctx context.Context, id uint) (*models.Salon, error)

	GetService(ctx context.Context, serviceID uint) (*models.Service, error)

	GetStaff(ctx context.Context, staffID, salonID uint) (*models.Staff, error)

	GetSalonHours(ctx context.Context, salonID uint, weekday int) (*models.SalonHours, error)

	// -------- Bookings --------
	ListBookingsForDay(
		ctx context.Context,
		salonID uint,
		date time.Time,
		staffID *uint,
	) ([]models.Booking, error)

	// CreateBookingChecked re-runs the conflict check and inserts inside one
	// transaction, locking the day's rows so concurrent requests for the
	// same slot cannot both commit.
	CreateBookingChecked(ctx context.Context, b *models.Booking) error

	GetBookingByID(ctx context.Context, id uint) (*models.Booking, error)

	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)

	UpdateBookingChecked(ctx context.Context, b *models.Booking) error

	UpdateBooking(ctx context.Context, b *models.Booking) error

	ListBookings(ctx context.Context, f ListFilters) ([]models.Booking, error)

	// -------- Side effects on completion --------
	IncrementServiceBookingCount(ctx context.Context, serviceID uint) error

	IncrementStaffCompletedBookings(ctx context.Context, staffID uint) error

	// -------- Promotions --------
	GetPromotionByCode(ctx context.Context, code string) (*models.Promotion, error)

	IncrementPromotionUsage(ctx context.Context, promotionID uint) error

	// CountCustomerPromotionUses counts the customer's non-cancelled
	// bookings made with the given code.
	CountCustomerPromotionUses(ctx context.Context, customerID uint, code string) (int64, error)
}
