package booking

import (
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

// transitions is the allowed booking status graph. completed, cancelled and
// no_show are terminal.
var transitions = map[string][]string{
	models.BookingPending: {
		models.BookingConfirmed,
		models.BookingCancelled,
		models.BookingRescheduled,
		models.BookingNoShow,
	},
	models.BookingConfirmed: {
		models.BookingInProgress,
		models.BookingCompleted,
		models.BookingCancelled,
		models.BookingRescheduled,
		models.BookingNoShow,
	},
	models.BookingInProgress: {
		models.BookingCompleted,
	},
	models.BookingRescheduled: {
		models.BookingConfirmed,
		models.BookingInProgress,
		models.BookingCompleted,
		models.BookingCancelled,
		models.BookingNoShow,
	},
}

func IsValidStatus(status string) bool {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingInProgress,
		models.BookingCompleted, models.BookingCancelled, models.BookingNoShow,
		models.BookingRescheduled:
		return true
	}
	return false
}

func IsTerminal(status string) bool {
	return status == models.BookingCompleted ||
		status == models.BookingCancelled ||
		status == models.BookingNoShow
}

func CanTransition(from, to string) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_status_transition")
}

func CanCancel(status string) error {
	if IsTerminal(status) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(status string) error {
	if IsTerminal(status) || status == models.BookingInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
