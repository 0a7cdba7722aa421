package tryon_test

import (
	"context"

	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/domain/credits"
	domain "github.com/ceylonstyle/salon-backend/internal/domain/tryon"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

// fakeTryOnRepo keeps everything in memory. denyApplies makes the next N
// conditional credit updates report a lost race.
type fakeTryOnRepo struct {
	profiles   map[uint]*models.CustomerProfile // keyed by user id
	hairstyles map[uint]*models.Hairstyle
	sessions   map[uint]*models.TryOnSession

	nextID      uint
	denyApplies int
	applyCalls  int
	tryOnBumps  map[uint]int
}

func newFakeTryOnRepo() *fakeTryOnRepo {
	return &fakeTryOnRepo{
		profiles:   map[uint]*models.CustomerProfile{},
		hairstyles: map[uint]*models.Hairstyle{},
		sessions:   map[uint]*models.TryOnSession{},
		tryOnBumps: map[uint]int{},
	}
}

func (r *fakeTryOnRepo) GetProfileByUserID(ctx context.Context, userID uint) (*models.CustomerProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTryOnRepo) ApplyCreditDecision(
	ctx context.Context,
	profileID uint,
	from credits.State,
	to credits.Decision,
) (bool, error) {

	r.applyCalls++
	if r.denyApplies > 0 {
		r.denyApplies--
		return false, nil
	}

	for _, p := range r.profiles {
		if p.ID == profileID {
			p.TryOnCredits = to.TryOnCredits
			p.WeeklyTryOnsUsed = to.WeeklyTryOnsUsed
			p.WeeklyResetDate = to.WeeklyResetDate
			return true, nil
		}
	}
	return false, gorm.ErrRecordNotFound
}

func (r *fakeTryOnRepo) GetHairstyle(ctx context.Context, id uint) (*models.Hairstyle, error) {
	if h, ok := r.hairstyles[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTryOnRepo) ListHairstyles(ctx context.Context, f domain.HairstyleFilters) ([]models.Hairstyle, error) {
	var out []models.Hairstyle
	for _, h := range r.hairstyles {
		if !h.IsActive {
			continue
		}
		if f.Category != "" && h.Category != f.Category {
			continue
		}
		if f.Gender != "" && h.Gender != f.Gender {
			continue
		}
		if f.IsPremium != nil && h.IsPremium != *f.IsPremium {
			continue
		}
		out = append(out, *h)
	}
	return out, nil
}

func (r *fakeTryOnRepo) IncrementHairstyleTryOns(ctx context.Context, hairstyleID uint) error {
	r.tryOnBumps[hairstyleID]++
	return nil
}

func (r *fakeTryOnRepo) CreateSession(ctx context.Context, s *models.TryOnSession) error {
	r.nextID++
	s.ID = r.nextID
	clone := *s
	r.sessions[s.ID] = &clone
	return nil
}

func (r *fakeTryOnRepo) GetSession(ctx context.Context, id uint) (*models.TryOnSession, error) {
	if s, ok := r.sessions[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTryOnRepo) ListSessionsForUser(ctx context.Context, userID uint) ([]models.TryOnSession, error) {
	var out []models.TryOnSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeTryOnRepo) UpdateSession(ctx context.Context, s *models.TryOnSession) error {
	if _, ok := r.sessions[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *s
	r.sessions[s.ID] = &clone
	return nil
}

func (r *fakeTryOnRepo) ClaimShareToken(ctx context.Context, sessionID uint, token string) (string, error) {
	s, ok := r.sessions[sessionID]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	if s.ShareToken == nil {
		s.ShareToken = &token
		s.IsShared = true
	}
	return *s.ShareToken, nil
}

func (r *fakeTryOnRepo) GetSharedSession(ctx context.Context, token string) (*models.TryOnSession, error) {
	for _, s := range r.sessions {
		if s.ShareToken != nil && *s.ShareToken == token {
			s.ViewCount++
			clone := *s
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ domain.Repository = (*fakeTryOnRepo)(nil)

// --------------------------------------------------

type fakeQueue struct {
	full   bool
	reject bool

	enqueued []uint
}

func (q *fakeQueue) Full() bool { return q.full }

func (q *fakeQueue) Enqueue(sessionID uint) bool {
	if q.reject {
		return false
	}
	q.enqueued = append(q.enqueued, sessionID)
	return true
}
