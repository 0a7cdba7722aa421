package booking

import (
	"context"

	domain "github.com/ceylonstyle/salon-backend/internal/domain/booking"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
)

type GetAvailableSlotsInput struct {
	SalonID   uint
	ServiceID uint
	StaffID   *uint
	Date      string
}

type GetAvailableSlots struct {
	repo domain.Repository
}

func NewGetAvailableSlots(repo domain.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in GetAvailableSlotsInput,
) ([]string, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || service.SalonID != in.SalonID {
		return nil, httperr.ErrNotFound("service_not_found")
	}

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	windowStart, windowEnd, open := workingWindow(ctx, uc.repo, in.SalonID, date)
	if !open {
		return []string{}, nil
	}

	bookings, err := uc.repo.ListBookingsForDay(ctx, in.SalonID, date, in.StaffID)
	if err != nil {
		return nil, err
	}

	existing := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		startMin, err := domain.TimeToMinutes(b.AppointmentTime)
		if err != nil {
			continue
		}
		existing = append(existing, domain.Interval{
			Start: startMin,
			End:   startMin + b.DurationMinutes,
		})
	}

	return domain.GenerateSlots(windowStart, windowEnd, service.DurationMinutes, existing), nil
}
