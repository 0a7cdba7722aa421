package tryon

import (
	"context"

	domain "github.com/ceylonstyle/salon-backend/internal/domain/tryon"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

type ListSessions struct {
	repo domain.Repository
}

func NewListSessions(repo domain.Repository) *ListSessions {
	return &ListSessions{repo: repo}
}

func (uc *ListSessions) Execute(
	ctx context.Context,
	userID uint,
) ([]models.TryOnSession, error) {
	return uc.repo.ListSessionsForUser(ctx, userID)
}

// --------------------------------------------------

type GetSessionInput struct {
	SessionID uint
	UserID    uint
}

type GetSession struct {
	repo domain.Repository
}

func NewGetSession(repo domain.Repository) *GetSession {
	return &GetSession{repo: repo}
}

func (uc *GetSession) Execute(
	ctx context.Context,
	in GetSessionInput,
) (*models.TryOnSession, error) {

	session, err := uc.repo.GetSession(ctx, in.SessionID)
	if err != nil {
		return nil, httperr.ErrNotFound("session_not_found")
	}
	if session.UserID != in.UserID {
		return nil, httperr.ErrForbidden("not_session_owner")
	}
	return session, nil
}

// --------------------------------------------------

type SaveSession struct {
	repo domain.Repository
}

func NewSaveSession(repo domain.Repository) *SaveSession {
	return &SaveSession{repo: repo}
}

func (uc *SaveSession) Execute(
	ctx context.Context,
	in GetSessionInput,
) (*models.TryOnSession, error) {

	session, err := uc.repo.GetSession(ctx, in.SessionID)
	if err != nil {
		return nil, httperr.ErrNotFound("session_not_found")
	}
	if session.UserID != in.UserID {
		return nil, httperr.ErrForbidden("not_session_owner")
	}
	if session.Status != models.TryOnCompleted {
		return nil, httperr.ErrBusiness("session_not_completed")
	}

	if !session.IsSaved {
		session.IsSaved = true
		if err := uc.repo.UpdateSession(ctx, session); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// --------------------------------------------------

type ListHairstyles struct {
	repo domain.Repository
}

func NewListHairstyles(repo domain.Repository) *ListHairstyles {
	return &ListHairstyles{repo: repo}
}

func (uc *ListHairstyles) Execute(
	ctx context.Context,
	f domain.HairstyleFilters,
) ([]models.Hairstyle, error) {
	return uc.repo.ListHairstyles(ctx, f)
}
