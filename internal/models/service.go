package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `gorm:"index;not null" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:30;default:'haircut'" json:"category"`
	Gender      string `gorm:"size:10;default:'unisex'" json:"gender"`

	Price           float64  `gorm:"not null" json:"price"`
	DiscountedPrice *float64 `json:"discounted_price"`
	DurationMinutes int      `gorm:"not null" json:"duration_minutes"`

	Image        string             `gorm:"size:500" json:"image"`
	AddOns       []string           `gorm:"serializer:json" json:"add_ons"`
	AddOnPrices  map[string]float64 `gorm:"serializer:json" json:"add_on_prices"`
	IsActive     bool               `gorm:"default:true" json:"is_active"`
	IsPopular    bool               `gorm:"default:false" json:"is_popular"`
	BookingCount int                `gorm:"default:0" json:"booking_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
