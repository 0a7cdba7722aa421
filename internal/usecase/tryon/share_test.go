package tryon_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
	uc "github.com/ceylonstyle/salon-backend/internal/usecase/tryon"
)

func seedSession(r *fakeTryOnRepo, status string) *models.TryOnSession {
	s := &models.TryOnSession{
		ID:               1,
		UserID:           7,
		HairstyleID:      1,
		HairstyleName:    "Textured Crop",
		OriginalImageURL: "https://cdn.example.com/uploads/me.jpg",
		ResultImageURL:   "https://cdn.example.com/tryon-results/out.webp",
		Status:           status,
	}
	r.sessions[s.ID] = s
	r.nextID = 1
	return s
}

func TestShareTryOnMintsToken(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedSession(repo, models.TryOnCompleted)
	share := uc.NewShareTryOn(repo)

	token, err := share.Execute(context.Background(), uc.ShareTryOnInput{SessionID: 1, UserID: 7})

	require.NoError(t, err)
	assert.Len(t, token, 26)
	assert.True(t, repo.sessions[1].IsShared)

	// Sharing again returns the same token.
	again, err := share.Execute(context.Background(), uc.ShareTryOnInput{SessionID: 1, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, token, again)
}

func TestShareTryOnNotCompleted(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedSession(repo, models.TryOnProcessing)

	_, err := uc.NewShareTryOn(repo).Execute(context.Background(), uc.ShareTryOnInput{SessionID: 1, UserID: 7})

	assert.True(t, httperr.IsBusiness(err, "session_not_completed"))
}

func TestShareTryOnNotOwner(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedSession(repo, models.TryOnCompleted)

	_, err := uc.NewShareTryOn(repo).Execute(context.Background(), uc.ShareTryOnInput{SessionID: 1, UserID: 9})

	assert.True(t, httperr.IsBusiness(err, "not_session_owner"))
}

func TestViewSharedTryOnBumpsViews(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedSession(repo, models.TryOnCompleted)

	token, err := uc.NewShareTryOn(repo).Execute(context.Background(), uc.ShareTryOnInput{SessionID: 1, UserID: 7})
	require.NoError(t, err)

	view := uc.NewViewSharedTryOn(repo)
	session, err := view.Execute(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 1, session.ViewCount)

	session, err = view.Execute(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 2, session.ViewCount)
}

func TestViewSharedTryOnUnknownToken(t *testing.T) {
	repo := newFakeTryOnRepo()

	_, err := uc.NewViewSharedTryOn(repo).Execute(context.Background(), "nope")

	assert.True(t, httperr.IsBusiness(err, "shared_session_not_found"))
}

func TestSaveSessionIdempotent(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedSession(repo, models.TryOnCompleted)
	save := uc.NewSaveSession(repo)

	s, err := save.Execute(context.Background(), uc.GetSessionInput{SessionID: 1, UserID: 7})
	require.NoError(t, err)
	assert.True(t, s.IsSaved)

	s, err = save.Execute(context.Background(), uc.GetSessionInput{SessionID: 1, UserID: 7})
	require.NoError(t, err)
	assert.True(t, s.IsSaved)
}

func TestSaveSessionNotCompleted(t *testing.T) {
	repo := newFakeTryOnRepo()
	seedSession(repo, models.TryOnPending)

	_, err := uc.NewSaveSession(repo).Execute(context.Background(), uc.GetSessionInput{SessionID: 1, UserID: 7})

	assert.True(t, httperr.IsBusiness(err, "session_not_completed"))
}
