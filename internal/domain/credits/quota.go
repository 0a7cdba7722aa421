// Package credits decides whether a customer may start a try-on and what
// the profile counters become afterwards. The decision is a pure function
// of the stored state and "now" so the gate is testable without a database;
// persisting the outcome is the caller's job.
package credits

import (
	"time"

	"github.com/ceylonstyle/salon-backend/internal/models"
)

const (
	FreeWeeklyLimit = 5
	weeklyWindow    = 7 * 24 * time.Hour
)

// State is the quota-relevant slice of a customer profile.
type State struct {
	Tier             string
	TryOnCredits     int
	WeeklyTryOnsUsed int
	WeeklyResetDate  *time.Time
}

// Decision is the state after one consumption attempt.
type Decision struct {
	Allowed          bool
	TryOnCredits     int
	WeeklyTryOnsUsed int
	WeeklyResetDate  *time.Time
}

// Consume applies the lazy weekly reset for the free tier, then charges one
// try-on. Free tier counts against a rolling 7-day window; plus/pro spend
// from the credit balance.
func Consume(s State, now time.Time) Decision {
	d := Decision{
		TryOnCredits:     s.TryOnCredits,
		WeeklyTryOnsUsed: s.WeeklyTryOnsUsed,
		WeeklyResetDate:  s.WeeklyResetDate,
	}

	if s.Tier == models.TierFree {
		if s.WeeklyResetDate == nil || s.WeeklyResetDate.Before(now) {
			reset := now.Add(weeklyWindow)
			d.WeeklyTryOnsUsed = 0
			d.WeeklyResetDate = &reset
		}

		if d.WeeklyTryOnsUsed >= FreeWeeklyLimit {
			return d
		}

		d.WeeklyTryOnsUsed++
		d.Allowed = true
		return d
	}

	if s.TryOnCredits <= 0 {
		return d
	}

	d.TryOnCredits--
	d.Allowed = true
	return d
}
