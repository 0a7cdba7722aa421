package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonstyle/salon-backend/internal/domain/booking"
)

func TestTimeToMinutes(t *testing.T) {
	min, err := booking.TimeToMinutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, min)

	_, err = booking.TimeToMinutes("24:00")
	assert.Error(t, err)

	_, err = booking.TimeToMinutes("10:60")
	assert.Error(t, err)

	_, err = booking.TimeToMinutes("abc")
	assert.Error(t, err)
}

func TestMinutesToTime(t *testing.T) {
	assert.Equal(t, "09:00", booking.MinutesToTime(540))
	assert.Equal(t, "17:30", booking.MinutesToTime(1050))
}

func TestIntervalOverlaps(t *testing.T) {
	booked := booking.Interval{Start: 600, End: 660} // 10:00-11:00

	cases := []struct {
		name     string
		interval booking.Interval
		want     bool
	}{
		{"starts inside", booking.Interval{Start: 630, End: 690}, true},
		{"ends inside", booking.Interval{Start: 570, End: 630}, true},
		{"contains", booking.Interval{Start: 570, End: 690}, true},
		{"identical", booking.Interval{Start: 600, End: 660}, true},
		{"back to back before", booking.Interval{Start: 540, End: 600}, false},
		{"back to back after", booking.Interval{Start: 660, End: 720}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.interval.Overlaps(booked))
		})
	}
}

func TestGenerateSlotsEmptyDay(t *testing.T) {
	// 09:00-18:00 window, 60 min service, nothing booked.
	slots := booking.GenerateSlots(540, 1080, 60, nil)

	require.Len(t, slots, 17)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:00", slots[len(slots)-1])
}

func TestGenerateSlotsSkipsBooked(t *testing.T) {
	existing := []booking.Interval{{Start: 600, End: 660}} // 10:00-11:00

	slots := booking.GenerateSlots(540, 1080, 60, existing)

	assert.Contains(t, slots, "09:00")
	assert.NotContains(t, slots, "09:30")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")
	assert.Contains(t, slots, "11:00")
}

func TestGenerateSlotsRespectsClosingTime(t *testing.T) {
	// 90 min service cannot start after 16:30.
	slots := booking.GenerateSlots(540, 1080, 90, nil)

	assert.Contains(t, slots, "16:30")
	assert.NotContains(t, slots, "17:00")
}

func TestFitsWindow(t *testing.T) {
	assert.True(t, booking.FitsWindow(540, 60, 540, 1080))
	assert.True(t, booking.FitsWindow(1020, 60, 540, 1080))
	assert.False(t, booking.FitsWindow(1050, 60, 540, 1080))
	assert.False(t, booking.FitsWindow(480, 60, 540, 1080))
}
