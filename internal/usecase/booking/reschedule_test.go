package booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
	uc "github.com/ceylonstyle/salon-backend/internal/usecase/booking"
)

func TestRescheduleBookingSuccess(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	seedBooking(repo, models.BookingConfirmed)

	b, err := uc.NewRescheduleBooking(repo, nil, notifier).Execute(context.Background(), uc.RescheduleBookingInput{
		BookingID: 1,
		UserID:    7,
		Date:      "2026-09-08",
		Time:      "14:00",
	})

	require.NoError(t, err)
	assert.Equal(t, models.BookingRescheduled, b.Status)
	assert.Equal(t, "14:00", b.AppointmentTime)

	wantDate, _ := timezone.ParseDate("2026-09-08")
	assert.True(t, b.AppointmentDate.Equal(wantDate))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, models.NotifyBookingRescheduled, notifier.sent[0].notifType)
}

func TestRescheduleBookingSameDayOwnSlot(t *testing.T) {
	// Moving within the same day must not conflict with the booking's own
	// previous slot.
	repo := newFakeRepo()
	seedBooking(repo, models.BookingConfirmed)

	b, err := uc.NewRescheduleBooking(repo, nil, &fakeNotifier{}).Execute(context.Background(), uc.RescheduleBookingInput{
		BookingID: 1,
		UserID:    7,
		Date:      testDate,
		Time:      "10:30",
	})

	require.NoError(t, err)
	assert.Equal(t, "10:30", b.AppointmentTime)
}

func TestRescheduleBookingSlotTaken(t *testing.T) {
	repo := newFakeRepo()
	seedBooking(repo, models.BookingConfirmed)

	date, _ := timezone.ParseDate(testDate)
	repo.bookings[2] = &models.Booking{
		ID:              2,
		CustomerID:      8,
		SalonID:         1,
		ServiceID:       1,
		AppointmentDate: date,
		AppointmentTime: "14:00",
		DurationMinutes: 60,
		Status:          models.BookingPending,
	}
	repo.nextID = 2

	_, err := uc.NewRescheduleBooking(repo, nil, &fakeNotifier{}).Execute(context.Background(), uc.RescheduleBookingInput{
		BookingID: 1,
		UserID:    7,
		Date:      testDate,
		Time:      "14:30",
	})

	assert.True(t, httperr.IsBusiness(err, "slot_not_available"))
}

func TestRescheduleBookingInProgress(t *testing.T) {
	repo := newFakeRepo()
	seedBooking(repo, models.BookingInProgress)

	_, err := uc.NewRescheduleBooking(repo, nil, &fakeNotifier{}).Execute(context.Background(), uc.RescheduleBookingInput{
		BookingID: 1,
		UserID:    7,
		Date:      testDate,
		Time:      "14:00",
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestRescheduleBookingNotOwner(t *testing.T) {
	repo := newFakeRepo()
	seedBooking(repo, models.BookingPending)

	_, err := uc.NewRescheduleBooking(repo, nil, &fakeNotifier{}).Execute(context.Background(), uc.RescheduleBookingInput{
		BookingID: 1,
		UserID:    99,
		Date:      testDate,
		Time:      "14:00",
	})

	assert.True(t, httperr.IsBusiness(err, "not_booking_owner"))
}

func TestRescheduleBookingOutsideWindow(t *testing.T) {
	repo := newFakeRepo()
	seedBooking(repo, models.BookingPending)

	_, err := uc.NewRescheduleBooking(repo, nil, &fakeNotifier{}).Execute(context.Background(), uc.RescheduleBookingInput{
		BookingID: 1,
		UserID:    7,
		Date:      testDate,
		Time:      "17:30",
	})

	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}
