package tryon

import (
	"context"

	"github.com/ceylonstyle/salon-backend/internal/domain/credits"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

type HairstyleFilters struct {
	Category  string
	Gender    string
	IsPremium *bool
}

type Repository interface {
	// -------- Profile / credits --------
	GetProfileByUserID(ctx context.Context, userID uint) (*models.CustomerProfile, error)

	// ApplyCreditDecision persists a quota decision with a conditional
	// update guarded by the counters the decision was computed from.
	// Returns false when another request changed them first.
	ApplyCreditDecision(
		ctx context.Context,
		profileID uint,
		from credits.State,
		to credits.Decision,
	) (bool, error)

	// -------- Hairstyles --------
	GetHairstyle(ctx context.Context, id uint) (*models.Hairstyle, error)

	ListHairstyles(ctx context.Context, f HairstyleFilters) ([]models.Hairstyle, error)

	IncrementHairstyleTryOns(ctx context.Context, hairstyleID uint) error

	// -------- Sessions --------
	CreateSession(ctx context.Context, s *models.TryOnSession) error

	GetSession(ctx context.Context, id uint) (*models.TryOnSession, error)

	ListSessionsForUser(ctx context.Context, userID uint) ([]models.TryOnSession, error)

	UpdateSession(ctx context.Context, s *models.TryOnSession) error

	// ClaimShareToken stores token on the session unless one is already
	// set, and returns whichever token ends up on the row.
	ClaimShareToken(ctx context.Context, sessionID uint, token string) (string, error)

	// GetSharedSession resolves a share token and bumps the view counter
	// atomically.
	GetSharedSession(ctx context.Context, token string) (*models.TryOnSession, error)
}
