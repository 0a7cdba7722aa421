package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// Default window used when a salon has no configured hours for the day.
const (
	DefaultOpenTime    = "09:00"
	DefaultCloseTime   = "18:00"
	SlotGranularityMin = 30
)

// Interval is a booked span in minutes since midnight, half-open [Start, End).
type Interval struct {
	Start int
	End   int
}

func (iv Interval) Overlaps(other Interval) bool {
	return (iv.Start >= other.Start && iv.Start < other.End) ||
		(iv.End > other.Start && iv.End <= other.End) ||
		(iv.Start <= other.Start && iv.End >= other.End)
}

// TimeToMinutes parses "HH:MM" into minutes since midnight.
func TimeToMinutes(hm string) (int, error) {
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hm)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hm)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}

	return hours*60 + minutes, nil
}

func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateSlots walks candidate start times at the slot granularity within
// [windowStart, windowEnd) and keeps every candidate whose service interval
// fits the window and overlaps none of the existing bookings.
func GenerateSlots(windowStart, windowEnd, durationMin int, existing []Interval) []string {
	slots := []string{}

	for cur := windowStart; cur+durationMin <= windowEnd; cur += SlotGranularityMin {
		candidate := Interval{Start: cur, End: cur + durationMin}

		conflict := false
		for _, booked := range existing {
			if candidate.Overlaps(booked) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, MinutesToTime(cur))
		}
	}

	return slots
}

// FitsWindow reports whether a requested start time plus duration stays
// inside the working window.
func FitsWindow(startMin, durationMin, windowStart, windowEnd int) bool {
	return startMin >= windowStart && startMin+durationMin <= windowEnd
}
