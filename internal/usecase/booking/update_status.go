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

type UpdateBookingStatusInput struct {
	BookingID uint
	ActorID   uint

	NewStatus  string
	SalonNotes string
}

type UpdateBookingStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify Notifier
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify Notifier,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:   repo,
		audit:  audit,
		notify: notify,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	in UpdateBookingStatusInput,
) (*models.Booking, error) {

	if !domain.IsValidStatus(in.NewStatus) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	b, err := uc.repo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	if err := domain.CanTransition(b.Status, in.NewStatus); err != nil {
		return nil, err
	}

	now := timezone.Now()
	b.Status = in.NewStatus
	if in.SalonNotes != "" {
		b.SalonNotes = in.SalonNotes
	}

	switch in.NewStatus {
	case models.BookingCompleted:
		b.CompletedAt = &now
	case models.BookingCancelled:
		b.CancelledAt = &now
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	if in.NewStatus == models.BookingCompleted {
		if err := uc.repo.IncrementServiceBookingCount(ctx, b.ServiceID); err != nil {
			return nil, err
		}
		if b.StaffID != nil {
			if err := uc.repo.IncrementStaffCompletedBookings(ctx, *b.StaffID); err != nil {
				return nil, err
			}
		}

		uc.notify.Enqueue(
			b.CustomerID,
			models.NotifyBookingCompleted,
			models.ChannelInApp,
			"Booking completed",
			fmt.Sprintf("Your booking %s is complete. Leave a review!", b.BookingReference),
			map[string]any{"booking_id": b.ID},
		)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  &b.SalonID,
		UserID:   &in.ActorID,
		Action:   "booking_status_" + in.NewStatus,
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
