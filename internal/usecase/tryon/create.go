package tryon

import (
	"context"

	"github.com/ceylonstyle/salon-backend/internal/domain/credits"
	domain "github.com/ceylonstyle/salon-backend/internal/domain/tryon"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/timezone"
)

// Queue hands completed sessions to the processing workers.
type Queue interface {
	Full() bool
	Enqueue(sessionID uint) bool
}

// creditRetries bounds how often a lost conditional update is retried
// before giving up with a conflict.
const creditRetries = 3

// ======================================================
// INPUT
// ======================================================

type CreateTryOnInput struct {
	UserID           uint
	HairstyleID      uint
	OriginalImageURL string
}

// ======================================================
// USE CASE
// ======================================================

type CreateTryOn struct {
	repo  domain.Repository
	queue Queue
}

func NewCreateTryOn(repo domain.Repository, queue Queue) *CreateTryOn {
	return &CreateTryOn{repo: repo, queue: queue}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateTryOn) Execute(
	ctx context.Context,
	in CreateTryOnInput,
) (*models.TryOnSession, error) {

	// --------------------------------------------------
	// 1. Backpressure before charging anything
	// --------------------------------------------------
	if uc.queue.Full() {
		return nil, httperr.ErrBusiness("queue_full")
	}

	// --------------------------------------------------
	// 2. Hairstyle + premium gate
	// --------------------------------------------------
	hairstyle, err := uc.repo.GetHairstyle(ctx, in.HairstyleID)
	if err != nil || !hairstyle.IsActive {
		return nil, httperr.ErrNotFound("hairstyle_not_found")
	}

	profile, err := uc.repo.GetProfileByUserID(ctx, in.UserID)
	if err != nil {
		return nil, httperr.ErrNotFound("profile_not_found")
	}

	if hairstyle.IsPremium && profile.SubscriptionTier == models.TierFree {
		return nil, httperr.ErrForbidden("premium_hairstyle_requires_subscription")
	}

	// --------------------------------------------------
	// 3. Consume one try-on
	// --------------------------------------------------
	if err := uc.consumeCredit(ctx, profile); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Session + enqueue
	// --------------------------------------------------
	session := &models.TryOnSession{
		UserID:           in.UserID,
		OriginalImageURL: in.OriginalImageURL,
		HairstyleID:      hairstyle.ID,
		HairstyleName:    hairstyle.Name,
		Status:           models.TryOnPending,
	}

	if err := uc.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	if !uc.queue.Enqueue(session.ID) {
		session.Status = models.TryOnFailed
		session.ErrorMessage = "processing queue full"
		_ = uc.repo.UpdateSession(ctx, session)
		return nil, httperr.ErrBusiness("queue_full")
	}

	return session, nil
}

// consumeCredit applies the quota gate with a conditional update. A lost
// race reloads the profile and retries.
func (uc *CreateTryOn) consumeCredit(
	ctx context.Context,
	profile *models.CustomerProfile,
) error {

	for attempt := 0; attempt < creditRetries; attempt++ {
		state := credits.State{
			Tier:             profile.SubscriptionTier,
			TryOnCredits:     profile.TryOnCredits,
			WeeklyTryOnsUsed: profile.WeeklyTryOnsUsed,
			WeeklyResetDate:  profile.WeeklyResetDate,
		}

		decision := credits.Consume(state, timezone.Now())
		if !decision.Allowed {
			if profile.SubscriptionTier == models.TierFree {
				return httperr.ErrBusiness("weekly_try_on_limit_reached")
			}
			return httperr.ErrBusiness("insufficient_try_on_credits")
		}

		applied, err := uc.repo.ApplyCreditDecision(ctx, profile.ID, state, decision)
		if err != nil {
			return err
		}
		if applied {
			return nil
		}

		reloaded, err := uc.repo.GetProfileByUserID(ctx, profile.UserID)
		if err != nil {
			return err
		}
		*profile = *reloaded
	}

	return httperr.ErrConflict("credit_conflict")
}
