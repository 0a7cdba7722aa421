package models

import "time"

const (
	NotifyBookingConfirmation = "booking_confirmation"
	NotifyBookingReminder     = "booking_reminder"
	NotifyBookingCancelled    = "booking_cancelled"
	NotifyBookingRescheduled  = "booking_rescheduled"
	NotifyBookingCompleted    = "booking_completed"
	NotifyPromotion           = "promotion"
	NotifySubscriptionExpiring = "subscription_expiring"
	NotifyCreditsLow          = "credits_low"
	NotifyVerificationStatus  = "verification_status"
)

const (
	ChannelInApp    = "in_app"
	ChannelSMS      = "sms"
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelPush     = "push"
)

const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationRead    = "read"
)

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Type    string `gorm:"size:30;not null" json:"type"`
	Channel string `gorm:"size:20;not null" json:"channel"`

	Title   string `gorm:"size:255;not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Data map[string]any `gorm:"serializer:json" json:"data"`

	ScheduledFor *time.Time `json:"scheduled_for"`
	SentAt       *time.Time `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`

	ErrorMessage string `gorm:"type:text" json:"error_message"`
	RetryCount   int    `gorm:"default:0" json:"retry_count"`
	ExternalID   string `gorm:"size:255" json:"external_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
