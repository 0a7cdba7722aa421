package booking

import (
	"context"

	domain "github.com/ceylonstyle/salon-backend/internal/domain/booking"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	f domain.ListFilters,
) ([]models.Booking, error) {
	return uc.repo.ListBookings(ctx, f)
}

// --------------------------------------------------

// GetBookingInput resolves by reference code when one is set, otherwise by
// numeric id.
type GetBookingInput struct {
	BookingID uint
	Reference string
	UserID    uint
	Role      string
}

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	in GetBookingInput,
) (*models.Booking, error) {

	var (
		b   *models.Booking
		err error
	)
	if in.Reference != "" {
		b, err = uc.repo.GetBookingByReference(ctx, in.Reference)
	} else {
		b, err = uc.repo.GetBookingByID(ctx, in.BookingID)
	}
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	if err := uc.authorize(ctx, b, in); err != nil {
		return nil, err
	}

	return b, nil
}

func (uc *GetBooking) authorize(
	ctx context.Context,
	b *models.Booking,
	in GetBookingInput,
) error {

	if in.Role == models.RoleAdmin || b.CustomerID == in.UserID {
		return nil
	}

	if in.Role == models.RoleSalonOwner {
		salon, err := uc.repo.GetSalonByID(ctx, b.SalonID)
		if err == nil && salon.OwnerID == in.UserID {
			return nil
		}
	}

	return httperr.ErrForbidden("not_booking_owner")
}
