package tryon

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/domain/credits"
	domain "github.com/ceylonstyle/salon-backend/internal/domain/tryon"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

// procRepo stubs just what the processor touches.
type procRepo struct {
	session   *models.TryOnSession
	hairstyle *models.Hairstyle

	updates []string
	bumps   int
}

func (r *procRepo) GetSession(ctx context.Context, id uint) (*models.TryOnSession, error) {
	if r.session == nil || r.session.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *r.session
	return &clone, nil
}

func (r *procRepo) UpdateSession(ctx context.Context, s *models.TryOnSession) error {
	clone := *s
	r.session = &clone
	r.updates = append(r.updates, s.Status)
	return nil
}

func (r *procRepo) GetHairstyle(ctx context.Context, id uint) (*models.Hairstyle, error) {
	if r.hairstyle == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.hairstyle, nil
}

func (r *procRepo) IncrementHairstyleTryOns(ctx context.Context, id uint) error {
	r.bumps++
	return nil
}

func (r *procRepo) GetProfileByUserID(ctx context.Context, userID uint) (*models.CustomerProfile, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *procRepo) ApplyCreditDecision(ctx context.Context, profileID uint, from credits.State, to credits.Decision) (bool, error) {
	return false, nil
}

func (r *procRepo) ListHairstyles(ctx context.Context, f domain.HairstyleFilters) ([]models.Hairstyle, error) {
	return nil, nil
}

func (r *procRepo) CreateSession(ctx context.Context, s *models.TryOnSession) error { return nil }

func (r *procRepo) ListSessionsForUser(ctx context.Context, userID uint) ([]models.TryOnSession, error) {
	return nil, nil
}

func (r *procRepo) ClaimShareToken(ctx context.Context, sessionID uint, token string) (string, error) {
	return token, nil
}

func (r *procRepo) GetSharedSession(ctx context.Context, token string) (*models.TryOnSession, error) {
	return nil, gorm.ErrRecordNotFound
}

type stubGenerator struct {
	url  string
	meta map[string]any
	err  error
}

func (g *stubGenerator) Generate(
	ctx context.Context,
	session *models.TryOnSession,
	hairstyle *models.Hairstyle,
) (string, map[string]any, error) {
	return g.url, g.meta, g.err
}

func pendingSession() *models.TryOnSession {
	return &models.TryOnSession{
		ID:          1,
		UserID:      7,
		HairstyleID: 2,
		Status:      models.TryOnPending,
	}
}

func TestProcessCompletesSession(t *testing.T) {
	repo := &procRepo{
		session:   pendingSession(),
		hairstyle: &models.Hairstyle{ID: 2, Name: "Fade"},
	}
	gen := &stubGenerator{
		url:  "https://cdn.example.com/tryon-results/out.webp",
		meta: map[string]any{"engine": "styleblend-v1"},
	}

	p := NewProcessor(repo, gen, 1, 10)
	p.process(context.Background(), 1)

	require.Equal(t, models.TryOnCompleted, repo.session.Status)
	assert.Equal(t, gen.url, repo.session.ResultImageURL)
	assert.Equal(t, gen.meta, repo.session.GeneratorMetadata)
	assert.Equal(t, []string{models.TryOnProcessing, models.TryOnCompleted}, repo.updates)
	assert.Equal(t, 1, repo.bumps)
}

func TestProcessFailedGeneration(t *testing.T) {
	repo := &procRepo{
		session:   pendingSession(),
		hairstyle: &models.Hairstyle{ID: 2},
	}
	gen := &stubGenerator{err: errors.New("render timeout")}

	p := NewProcessor(repo, gen, 1, 10)
	p.process(context.Background(), 1)

	require.Equal(t, models.TryOnFailed, repo.session.Status)
	assert.Equal(t, "render timeout", repo.session.ErrorMessage)
	assert.Empty(t, repo.session.ResultImageURL)
	assert.Zero(t, repo.bumps)
}

func TestProcessSkipsNonPendingSession(t *testing.T) {
	session := pendingSession()
	session.Status = models.TryOnCompleted
	repo := &procRepo{session: session}

	p := NewProcessor(repo, &stubGenerator{}, 1, 10)
	p.process(context.Background(), 1)

	assert.Empty(t, repo.updates)
}

func TestEnqueueBackpressure(t *testing.T) {
	p := NewProcessor(&procRepo{}, &stubGenerator{}, 1, 1)

	assert.False(t, p.Full())
	assert.True(t, p.Enqueue(1))
	assert.True(t, p.Full())
	assert.False(t, p.Enqueue(2))
}
