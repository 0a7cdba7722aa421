package tryon

import (
	"context"

	domain "github.com/ceylonstyle/salon-backend/internal/domain/tryon"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

type ShareTryOnInput struct {
	SessionID uint
	UserID    uint
}

type ShareTryOn struct {
	repo domain.Repository
}

func NewShareTryOn(repo domain.Repository) *ShareTryOn {
	return &ShareTryOn{repo: repo}
}

// Execute returns the session's share token, minting one on first use.
// Sharing the same session twice yields the same token.
func (uc *ShareTryOn) Execute(
	ctx context.Context,
	in ShareTryOnInput,
) (string, error) {

	session, err := uc.repo.GetSession(ctx, in.SessionID)
	if err != nil {
		return "", httperr.ErrNotFound("session_not_found")
	}

	if session.UserID != in.UserID {
		return "", httperr.ErrForbidden("not_session_owner")
	}

	if session.Status != models.TryOnCompleted {
		return "", httperr.ErrBusiness("session_not_completed")
	}

	if session.ShareToken != nil {
		return *session.ShareToken, nil
	}

	return uc.repo.ClaimShareToken(ctx, in.SessionID, domain.NewShareToken())
}

// --------------------------------------------------

type ViewSharedTryOn struct {
	repo domain.Repository
}

func NewViewSharedTryOn(repo domain.Repository) *ViewSharedTryOn {
	return &ViewSharedTryOn{repo: repo}
}

func (uc *ViewSharedTryOn) Execute(
	ctx context.Context,
	token string,
) (*models.TryOnSession, error) {

	session, err := uc.repo.GetSharedSession(ctx, token)
	if err != nil {
		return nil, httperr.ErrNotFound("shared_session_not_found")
	}
	return session, nil
}
