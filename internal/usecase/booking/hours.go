package booking

import (
	"context"
	"time"

	domain "github.com/ceylonstyle/salon-backend/internal/domain/booking"
)

// workingWindow resolves the bookable window for a salon on a given day,
// in minutes since midnight. A missing hours row falls back to the default
// window; a row marked closed returns open=false.
func workingWindow(
	ctx context.Context,
	repo domain.Repository,
	salonID uint,
	date time.Time,
) (start, end int, open bool) {

	openTime := domain.DefaultOpenTime
	closeTime := domain.DefaultCloseTime

	hours, err := repo.GetSalonHours(ctx, salonID, int(date.Weekday()))
	if err == nil {
		if hours.Closed {
			return 0, 0, false
		}
		if hours.OpenTime != "" && hours.CloseTime != "" {
			openTime = hours.OpenTime
			closeTime = hours.CloseTime
		}
	}

	start, errStart := domain.TimeToMinutes(openTime)
	end, errEnd := domain.TimeToMinutes(closeTime)
	if errStart != nil || errEnd != nil || start >= end {
		start, _ = domain.TimeToMinutes(domain.DefaultOpenTime)
		end, _ = domain.TimeToMinutes(domain.DefaultCloseTime)
	}

	return start, end, true
}
