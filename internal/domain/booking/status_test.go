package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ceylonstyle/salon-backend/internal/domain/booking"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{models.BookingPending, models.BookingConfirmed},
		{models.BookingPending, models.BookingCancelled},
		{models.BookingConfirmed, models.BookingInProgress},
		{models.BookingConfirmed, models.BookingCompleted},
		{models.BookingInProgress, models.BookingCompleted},
		{models.BookingRescheduled, models.BookingConfirmed},
		{models.BookingRescheduled, models.BookingNoShow},
	}
	for _, pair := range allowed {
		assert.NoError(t, booking.CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	denied := [][2]string{
		{models.BookingCompleted, models.BookingCancelled},
		{models.BookingCancelled, models.BookingConfirmed},
		{models.BookingNoShow, models.BookingPending},
		{models.BookingInProgress, models.BookingCancelled},
		{models.BookingPending, models.BookingInProgress},
	}
	for _, pair := range denied {
		assert.Error(t, booking.CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, booking.IsTerminal(models.BookingCompleted))
	assert.True(t, booking.IsTerminal(models.BookingCancelled))
	assert.True(t, booking.IsTerminal(models.BookingNoShow))
	assert.False(t, booking.IsTerminal(models.BookingPending))
	assert.False(t, booking.IsTerminal(models.BookingInProgress))
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, booking.CanCancel(models.BookingPending))
	assert.NoError(t, booking.CanCancel(models.BookingInProgress))
	assert.Error(t, booking.CanCancel(models.BookingCompleted))
	assert.Error(t, booking.CanCancel(models.BookingCancelled))
}

func TestCanReschedule(t *testing.T) {
	assert.NoError(t, booking.CanReschedule(models.BookingPending))
	assert.NoError(t, booking.CanReschedule(models.BookingConfirmed))
	assert.Error(t, booking.CanReschedule(models.BookingInProgress))
	assert.Error(t, booking.CanReschedule(models.BookingCompleted))
}
