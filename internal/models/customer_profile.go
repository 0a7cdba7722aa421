package models

import "time"

const (
	TierFree = "free"
	TierPlus = "plus"
	TierPro  = "pro"
)

type CustomerProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SubscriptionTier string `gorm:"size:10;default:'free'" json:"subscription_tier"`

	TryOnCredits     int        `gorm:"default:0" json:"try_on_credits"`
	WeeklyTryOnsUsed int        `gorm:"default:0" json:"weekly_try_ons_used"`
	WeeklyResetDate  *time.Time `json:"weekly_reset_date"`

	SubscriptionStartDate *time.Time `json:"subscription_start_date"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date"`
	AutoRenew             bool       `gorm:"default:true" json:"auto_renew"`

	Preferences map[string]bool `gorm:"serializer:json" json:"preferences"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
