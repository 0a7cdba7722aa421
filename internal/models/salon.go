package models

import "time"

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

const (
	SalonTierStarter = "starter"
	SalonTierGrowth  = "growth"
	SalonTierPro     = "pro"
)

type Salon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"uniqueIndex;not null" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BusinessName string `gorm:"size:255;not null" json:"business_name"`
	Slug         string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description  string `gorm:"type:text" json:"description"`

	Phone      string `gorm:"size:20" json:"phone"`
	Email      string `gorm:"size:255" json:"email"`
	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:100" json:"city"`
	District   string `gorm:"size:100" json:"district"`
	PostalCode string `gorm:"size:20" json:"postal_code"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	GenderSpecialization string   `gorm:"size:10;default:'unisex'" json:"gender_specialization"`
	LanguagesSpoken      []string `gorm:"serializer:json" json:"languages_spoken"`

	Images     []string `gorm:"serializer:json" json:"images"`
	CoverImage string   `gorm:"size:500" json:"cover_image"`
	LogoImage  string   `gorm:"size:500" json:"logo_image"`

	SubscriptionTier      string     `gorm:"size:20;default:'starter'" json:"subscription_tier"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date"`

	VerificationStatus         string `gorm:"size:20;default:'pending'" json:"verification_status"`
	VerificationNotes          string `gorm:"type:text" json:"verification_notes"`
	BusinessRegistrationNumber string `gorm:"size:255" json:"business_registration_number"`

	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"default:0" json:"total_reviews"`

	AcceptsWalkIns        bool `gorm:"default:true" json:"accepts_walk_ins"`
	AcceptsOnlineBookings bool `gorm:"default:true" json:"accepts_online_bookings"`
	IsActive              bool `gorm:"default:true" json:"is_active"`
	ViewCount             int  `gorm:"default:0" json:"view_count"`

	Services []Service `json:"services,omitempty"`
	Staff    []Staff   `json:"staff,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SalonHours holds one weekday's opening window for a salon. A missing or
// closed row means the salon does not take bookings that day and the
// availability engine falls back to the default window.
type SalonHours struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index:idx_salon_weekday,unique" json:"salon_id"`

	Weekday   int    `gorm:"index:idx_salon_weekday,unique" json:"weekday"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	Closed    bool   `gorm:"default:false" json:"closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
