package booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
	uc "github.com/ceylonstyle/salon-backend/internal/usecase/booking"
)

func TestUpdateStatusConfirm(t *testing.T) {
	repo := newFakeRepo()
	seedBooking(repo, models.BookingPending)

	b, err := uc.NewUpdateBookingStatus(repo, nil, &fakeNotifier{}).Execute(context.Background(), uc.UpdateBookingStatusInput{
		BookingID: 1,
		ActorID:   10,
		NewStatus: models.BookingConfirmed,
	})

	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Nil(t, b.CompletedAt)
}

func TestUpdateStatusCompleteRunsSideEffects(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	booking := seedBooking(repo, models.BookingConfirmed)
	staffID := uint(3)
	booking.StaffID = &staffID

	b, err := uc.NewUpdateBookingStatus(repo, nil, notifier).Execute(context.Background(), uc.UpdateBookingStatusInput{
		BookingID:  1,
		ActorID:    10,
		NewStatus:  models.BookingCompleted,
		SalonNotes: "regular customer",
	})

	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, b.Status)
	assert.Equal(t, "regular customer", b.SalonNotes)
	require.NotNil(t, b.CompletedAt)

	assert.Equal(t, 1, repo.serviceCompleted[1])
	assert.Equal(t, 1, repo.staffCompleted[3])

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, models.NotifyBookingCompleted, notifier.sent[0].notifType)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	repo := newFakeRepo()
	seedBooking(repo, models.BookingPending)

	_, err := uc.NewUpdateBookingStatus(repo, nil, &fakeNotifier{}).Execute(context.Background(), uc.UpdateBookingStatusInput{
		BookingID: 1,
		ActorID:   10,
		NewStatus: "done",
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestUpdateStatusIllegalTransition(t *testing.T) {
	repo := newFakeRepo()
	seedBooking(repo, models.BookingCompleted)

	_, err := uc.NewUpdateBookingStatus(repo, nil, &fakeNotifier{}).Execute(context.Background(), uc.UpdateBookingStatusInput{
		BookingID: 1,
		ActorID:   10,
		NewStatus: models.BookingCancelled,
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_status_transition"))

	stored, _ := repo.GetBookingByID(context.Background(), 1)
	assert.Equal(t, models.BookingCompleted, stored.Status)
}
