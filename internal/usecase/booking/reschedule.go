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

type RescheduleBookingInput struct {
	BookingID uint
	UserID    uint

	Date string
	Time string
}

type RescheduleBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify Notifier
}

func NewRescheduleBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify Notifier,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:   repo,
		audit:  audit,
		notify: notify,
	}
}

func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	if b.CustomerID != in.UserID {
		return nil, httperr.ErrForbidden("not_booking_owner")
	}

	if err := domain.CanReschedule(b.Status); err != nil {
		return nil, err
	}

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	startMin, err := domain.TimeToMinutes(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	windowStart, windowEnd, open := workingWindow(ctx, uc.repo, b.SalonID, date)
	if !open {
		return nil, httperr.ErrBusiness("salon_closed")
	}
	if !domain.FitsWindow(startMin, b.DurationMinutes, windowStart, windowEnd) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	b.AppointmentDate = date
	b.AppointmentTime = in.Time
	b.Status = models.BookingRescheduled

	// The conflict check skips the booking's own row, so moving within the
	// same day works.
	if err := uc.repo.UpdateBookingChecked(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  &b.SalonID,
		UserID:   &in.UserID,
		Action:   "booking_rescheduled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.Enqueue(
		b.CustomerID,
		models.NotifyBookingRescheduled,
		models.ChannelInApp,
		"Booking rescheduled",
		fmt.Sprintf(
			"Your booking %s was moved to %s %s.",
			b.BookingReference, in.Date, in.Time,
		),
		map[string]any{"booking_id": b.ID},
	)

	return b, nil
}
