package credits_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonstyle/salon-backend/internal/domain/credits"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

func TestConsumeFreeTierFirstUse(t *testing.T) {
	now := time.Now()

	d := credits.Consume(credits.State{Tier: models.TierFree}, now)

	require.True(t, d.Allowed)
	assert.Equal(t, 1, d.WeeklyTryOnsUsed)
	require.NotNil(t, d.WeeklyResetDate)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), *d.WeeklyResetDate, time.Second)
}

func TestConsumeFreeTierAtLimit(t *testing.T) {
	now := time.Now()
	reset := now.Add(24 * time.Hour)

	d := credits.Consume(credits.State{
		Tier:             models.TierFree,
		WeeklyTryOnsUsed: credits.FreeWeeklyLimit,
		WeeklyResetDate:  &reset,
	}, now)

	assert.False(t, d.Allowed)
	assert.Equal(t, credits.FreeWeeklyLimit, d.WeeklyTryOnsUsed)
}

func TestConsumeFreeTierLazyReset(t *testing.T) {
	now := time.Now()
	expired := now.Add(-time.Hour)

	d := credits.Consume(credits.State{
		Tier:             models.TierFree,
		WeeklyTryOnsUsed: credits.FreeWeeklyLimit,
		WeeklyResetDate:  &expired,
	}, now)

	require.True(t, d.Allowed)
	assert.Equal(t, 1, d.WeeklyTryOnsUsed)
	require.NotNil(t, d.WeeklyResetDate)
	assert.True(t, d.WeeklyResetDate.After(now))
}

func TestConsumePaidTierDecrements(t *testing.T) {
	d := credits.Consume(credits.State{
		Tier:         models.TierPlus,
		TryOnCredits: 3,
	}, time.Now())

	require.True(t, d.Allowed)
	assert.Equal(t, 2, d.TryOnCredits)
}

func TestConsumePaidTierNoCredits(t *testing.T) {
	d := credits.Consume(credits.State{
		Tier:         models.TierPro,
		TryOnCredits: 0,
	}, time.Now())

	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.TryOnCredits)
}

func TestConsumePaidTierIgnoresWeeklyCounter(t *testing.T) {
	d := credits.Consume(credits.State{
		Tier:             models.TierPlus,
		TryOnCredits:     1,
		WeeklyTryOnsUsed: 99,
	}, time.Now())

	require.True(t, d.Allowed)
	assert.Equal(t, 99, d.WeeklyTryOnsUsed)
}
