package tryon_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
	uc "github.com/ceylonstyle/salon-backend/internal/usecase/tryon"
)

func seedTryOn(r *fakeTryOnRepo, tier string, credits int) {
	r.profiles[7] = &models.CustomerProfile{
		ID:               70,
		UserID:           7,
		SubscriptionTier: tier,
		TryOnCredits:     credits,
	}
	r.hairstyles[1] = &models.Hairstyle{
		ID:       1,
		Name:     "Textured Crop",
		IsActive: true,
	}
}

func createInput() uc.CreateTryOnInput {
	return uc.CreateTryOnInput{
		UserID:           7,
		HairstyleID:      1,
		OriginalImageURL: "https://cdn.example.com/uploads/me.jpg",
	}
}

func TestCreateTryOnFreeTier(t *testing.T) {
	repo := newFakeTryOnRepo()
	queue := &fakeQueue{}
	seedTryOn(repo, models.TierFree, 0)

	session, err := uc.NewCreateTryOn(repo, queue).Execute(context.Background(), createInput())

	require.NoError(t, err)
	assert.Equal(t, models.TryOnPending, session.Status)
	assert.Equal(t, "Textured Crop", session.HairstyleName)
	assert.Equal(t, []uint{session.ID}, queue.enqueued)

	profile := repo.profiles[7]
	assert.Equal(t, 1, profile.WeeklyTryOnsUsed)
	require.NotNil(t, profile.WeeklyResetDate)
}

func TestCreateTryOnQueueFullUpfront(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedTryOn(repo, models.TierFree, 0)

	_, err := uc.NewCreateTryOn(repo, &fakeQueue{full: true}).Execute(context.Background(), createInput())

	assert.True(t, httperr.IsBusiness(err, "queue_full"))
	// Nothing charged, nothing stored.
	assert.Equal(t, 0, repo.applyCalls)
	assert.Empty(t, repo.sessions)
}

func TestCreateTryOnWeeklyLimit(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedTryOn(repo, models.TierFree, 0)
	reset := time.Now().Add(24 * time.Hour)
	repo.profiles[7].WeeklyTryOnsUsed = 5
	repo.profiles[7].WeeklyResetDate = &reset

	_, err := uc.NewCreateTryOn(repo, &fakeQueue{}).Execute(context.Background(), createInput())

	assert.True(t, httperr.IsBusiness(err, "weekly_try_on_limit_reached"))
	assert.Empty(t, repo.sessions)
}

func TestCreateTryOnPremiumRequiresSubscription(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedTryOn(repo, models.TierFree, 0)
	repo.hairstyles[1].IsPremium = true

	_, err := uc.NewCreateTryOn(repo, &fakeQueue{}).Execute(context.Background(), createInput())

	assert.True(t, httperr.IsBusiness(err, "premium_hairstyle_requires_subscription"))
	assert.Equal(t, 0, repo.applyCalls)
}

func TestCreateTryOnPaidTierSpendsCredit(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedTryOn(repo, models.TierPlus, 3)
	repo.hairstyles[1].IsPremium = true

	_, err := uc.NewCreateTryOn(repo, &fakeQueue{}).Execute(context.Background(), createInput())

	require.NoError(t, err)
	assert.Equal(t, 2, repo.profiles[7].TryOnCredits)
}

func TestCreateTryOnInsufficientCredits(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedTryOn(repo, models.TierPro, 0)

	_, err := uc.NewCreateTryOn(repo, &fakeQueue{}).Execute(context.Background(), createInput())

	assert.True(t, httperr.IsBusiness(err, "insufficient_try_on_credits"))
}

func TestCreateTryOnInactiveHairstyle(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedTryOn(repo, models.TierFree, 0)
	repo.hairstyles[1].IsActive = false

	_, err := uc.NewCreateTryOn(repo, &fakeQueue{}).Execute(context.Background(), createInput())

	assert.True(t, httperr.IsBusiness(err, "hairstyle_not_found"))
}

func TestCreateTryOnRetriesLostCreditRace(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedTryOn(repo, models.TierPlus, 3)
	repo.denyApplies = 1

	_, err := uc.NewCreateTryOn(repo, &fakeQueue{}).Execute(context.Background(), createInput())

	require.NoError(t, err)
	assert.Equal(t, 2, repo.applyCalls)
	assert.Equal(t, 2, repo.profiles[7].TryOnCredits)
}

func TestCreateTryOnCreditConflictAfterRetries(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedTryOn(repo, models.TierPlus, 3)
	repo.denyApplies = 3

	_, err := uc.NewCreateTryOn(repo, &fakeQueue{}).Execute(context.Background(), createInput())

	assert.True(t, httperr.IsBusiness(err, "credit_conflict"))
	assert.Empty(t, repo.sessions)
}

func TestCreateTryOnEnqueueRejected(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedTryOn(repo, models.TierFree, 0)

	_, err := uc.NewCreateTryOn(repo, &fakeQueue{reject: true}).Execute(context.Background(), createInput())

	assert.True(t, httperr.IsBusiness(err, "queue_full"))

	// The session is kept for visibility but marked failed.
	require.Len(t, repo.sessions, 1)
	for _, s := range repo.sessions {
		assert.Equal(t, models.TryOnFailed, s.Status)
		assert.Equal(t, "processing queue full", s.ErrorMessage)
	}
}
