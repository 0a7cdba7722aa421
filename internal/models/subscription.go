package models

import "time"

const (
	SubscriptionCustomerFree = "customer_free"
	SubscriptionCustomerPlus = "customer_plus"
	SubscriptionCustomerPro  = "customer_pro"
	SubscriptionSalonStarter = "salon_starter"
	SubscriptionSalonGrowth  = "salon_growth"
	SubscriptionSalonPro     = "salon_pro"
)

const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
	SubscriptionSuspended = "suspended"
	SubscriptionTrial     = "trial"
)

type Subscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Type   string `gorm:"size:30;not null" json:"type"`
	Status string `gorm:"size:20;default:'active'" json:"status"`

	Price    float64 `gorm:"not null" json:"price"`
	Currency string  `gorm:"size:10;default:'LKR'" json:"currency"`

	BillingCycle string `gorm:"size:50;not null" json:"billing_cycle"`

	StartDate       time.Time  `gorm:"not null" json:"start_date"`
	EndDate         time.Time  `gorm:"not null" json:"end_date"`
	NextBillingDate *time.Time `json:"next_billing_date"`

	AutoRenew          bool       `gorm:"default:true" json:"auto_renew"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`

	Features map[string]any `gorm:"serializer:json" json:"features"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
