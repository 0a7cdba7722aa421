package models

import "time"

const (
	PromotionPercentage = "percentage_discount"
	PromotionFixed      = "fixed_discount"
	PromotionFirstTime  = "first_time_customer"
	PromotionSeasonal   = "seasonal"
)

const (
	PromotionActive    = "active"
	PromotionInactive  = "inactive"
	PromotionExpired   = "expired"
	PromotionScheduled = "scheduled"
)

type Promotion struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `gorm:"index;not null" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Type        string `gorm:"size:30;not null" json:"type"`

	Code string `gorm:"size:50;uniqueIndex;not null" json:"code"`

	DiscountValue     float64  `gorm:"not null" json:"discount_value"`
	MinPurchaseAmount *float64 `json:"min_purchase_amount"`
	MaxDiscountAmount *float64 `json:"max_discount_amount"`

	UsageLimit       *int `json:"usage_limit"`
	UsageCount       int  `gorm:"default:0" json:"usage_count"`
	PerCustomerLimit *int `json:"per_customer_limit"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	Status string `gorm:"size:20;default:'active'" json:"status"`

	ApplicableServiceIDs []uint `gorm:"serializer:json" json:"applicable_service_ids"`
	ExcludedServiceIDs   []uint `gorm:"serializer:json" json:"excluded_service_ids"`

	ImageURL       string `gorm:"size:500" json:"image_url"`
	IsFirstTimeOnly bool  `gorm:"default:false" json:"is_first_time_only"`
	IsVisible      bool   `gorm:"default:true" json:"is_visible"`
	RequiresCode   bool   `gorm:"default:false" json:"requires_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
