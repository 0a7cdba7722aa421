package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/domain/credits"
	domain "github.com/ceylonstyle/salon-backend/internal/domain/tryon"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

type TryOnGormRepository struct {
	db *gorm.DB
}

func NewTryOnGormRepository(db *gorm.DB) *TryOnGormRepository {
	return &TryOnGormRepository{db: db}
}

// --------------------------------------------------
// Profile / credits
// --------------------------------------------------

func (r *TryOnGormRepository) GetProfileByUserID(
	ctx context.Context,
	userID uint,
) (*models.CustomerProfile, error) {

	var profile models.CustomerProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ApplyCreditDecision writes the post-consumption counters guarded by the
// counters the decision was computed from. A lost race updates zero rows
// and the caller retries or rejects.
func (r *TryOnGormRepository) ApplyCreditDecision(
	ctx context.Context,
	profileID uint,
	from credits.State,
	to credits.Decision,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.CustomerProfile{}).
		Where(
			"id = ? AND try_on_credits = ? AND weekly_try_ons_used = ?",
			profileID, from.TryOnCredits, from.WeeklyTryOnsUsed,
		).
		Updates(map[string]any{
			"try_on_credits":      to.TryOnCredits,
			"weekly_try_ons_used": to.WeeklyTryOnsUsed,
			"weekly_reset_date":   to.WeeklyResetDate,
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Hairstyles
// --------------------------------------------------

func (r *TryOnGormRepository) GetHairstyle(
	ctx context.Context,
	id uint,
) (*models.Hairstyle, error) {

	var hairstyle models.Hairstyle
	if err := r.db.WithContext(ctx).First(&hairstyle, id).Error; err != nil {
		return nil, err
	}
	return &hairstyle, nil
}

func (r *TryOnGormRepository) ListHairstyles(
	ctx context.Context,
	f domain.HairstyleFilters,
) ([]models.Hairstyle, error) {

	q := r.db.WithContext(ctx).Where("is_active = ?", true)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Gender != "" {
		q = q.Where("gender = ?", f.Gender)
	}
	if f.IsPremium != nil {
		q = q.Where("is_premium = ?", *f.IsPremium)
	}

	var hairstyles []models.Hairstyle
	err := q.
		Order("is_featured DESC").
		Order("try_on_count DESC").
		Order("sort_order ASC").
		Find(&hairstyles).Error
	if err != nil {
		return nil, err
	}
	return hairstyles, nil
}

func (r *TryOnGormRepository) IncrementHairstyleTryOns(
	ctx context.Context,
	hairstyleID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Hairstyle{}).
		Where("id = ?", hairstyleID).
		UpdateColumn("try_on_count", gorm.Expr("try_on_count + 1")).Error
}

// --------------------------------------------------
// Sessions
// --------------------------------------------------

func (r *TryOnGormRepository) CreateSession(
	ctx context.Context,
	s *models.TryOnSession,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *TryOnGormRepository) GetSession(
	ctx context.Context,
	id uint,
) (*models.TryOnSession, error) {

	var session models.TryOnSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *TryOnGormRepository) ListSessionsForUser(
	ctx context.Context,
	userID uint,
) ([]models.TryOnSession, error) {

	var sessions []models.TryOnSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *TryOnGormRepository) UpdateSession(
	ctx context.Context,
	s *models.TryOnSession,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *TryOnGormRepository) ClaimShareToken(
	ctx context.Context,
	sessionID uint,
	token string,
) (string, error) {

	err := r.db.WithContext(ctx).
		Model(&models.TryOnSession{}).
		Where("id = ? AND share_token IS NULL", sessionID).
		Updates(map[string]any{
			"share_token": token,
			"is_shared":   true,
		}).Error
	if err != nil {
		return "", err
	}

	session, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.ShareToken == nil {
		return "", gorm.ErrRecordNotFound
	}
	return *session.ShareToken, nil
}

func (r *TryOnGormRepository) GetSharedSession(
	ctx context.Context,
	token string,
) (*models.TryOnSession, error) {

	var session models.TryOnSession
	if err := r.db.WithContext(ctx).
		Where("share_token = ?", token).
		First(&session).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.TryOnSession{}).
		Where("id = ?", session.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, err
	}
	session.ViewCount++

	return &session, nil
}

// Compile-time check
var _ domain.Repository = (*TryOnGormRepository)(nil)
