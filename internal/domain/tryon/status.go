package tryon

import (
	"math/rand"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

// Processing moves strictly pending -> processing -> completed|failed.
var transitions = map[string][]string{
	models.TryOnPending:    {models.TryOnProcessing},
	models.TryOnProcessing: {models.TryOnCompleted, models.TryOnFailed},
}

func CanTransition(from, to string) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_status_transition")
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewShareToken returns an opaque 26-char base36 token.
func NewShareToken() string {
	b := make([]byte, 26)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
