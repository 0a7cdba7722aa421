package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index;not null" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer,omitempty"`

	SalonID uint  `gorm:"index;not null" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BookingID *uint    `gorm:"index" json:"booking_id"`
	Booking   *Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	StaffID *uint `json:"staff_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	Images          []string       `gorm:"serializer:json" json:"images"`
	DetailedRatings map[string]int `gorm:"serializer:json" json:"detailed_ratings"`

	IsVerified bool `gorm:"default:true" json:"is_verified"`
	IsVisible  bool `gorm:"default:true" json:"is_visible"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`

	SalonResponse     string     `gorm:"type:text" json:"salon_response"`
	SalonResponseDate *time.Time `json:"salon_response_date"`

	HelpfulCount int `gorm:"default:0" json:"helpful_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
