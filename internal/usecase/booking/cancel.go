package booking

import (
	"context"
	"fmt"

	"github.com/ceylonstyle/salon-backend/internal/audit"
	domain "github.com/ceylonstyle/salon-backend/internal/domain/booking"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
)

type CancelBookingInput struct {
	BookingID uint
	UserID    uint
	Reason    string
}

type CancelBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify Notifier
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify Notifier,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		audit:  audit,
		notify: notify,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	in CancelBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	if b.CustomerID != in.UserID {
		return nil, httperr.ErrForbidden("not_booking_owner")
	}

	if err := domain.CanCancel(b.Status); err != nil {
		return nil, err
	}

	now := timezone.Now()
	b.Status = models.BookingCancelled
	b.CancellationReason = in.Reason
	b.CancelledAt = &now

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  &b.SalonID,
		UserID:   &in.UserID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.Enqueue(
		b.CustomerID,
		models.NotifyBookingCancelled,
		models.ChannelInApp,
		"Booking cancelled",
		fmt.Sprintf("Your booking %s has been cancelled.", b.BookingReference),
		map[string]any{"booking_id": b.ID},
	)

	return b, nil
}
