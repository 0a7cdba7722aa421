package booking_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ceylonstyle/salon-backend/internal/domain/booking"
)

var referencePattern = regexp.MustCompile(`^BK-[0-9A-Z]+-[0-9A-Z]{4}$`)

func TestNewReferenceFormat(t *testing.T) {
	ref := booking.NewReference()
	assert.Regexp(t, referencePattern, ref)
}

func TestNewReferenceUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref := booking.NewReference()
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
