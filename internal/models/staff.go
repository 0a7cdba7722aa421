package models

import "time"

type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `gorm:"index;not null" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`
	Role  string `gorm:"size:30;default:'stylist'" json:"role"`

	Bio               string   `gorm:"type:text" json:"bio"`
	ProfileImage      string   `gorm:"size:500" json:"profile_image"`
	Specializations   []string `gorm:"serializer:json" json:"specializations"`
	YearsOfExperience int      `gorm:"default:0" json:"years_of_experience"`
	LanguagesSpoken   []string `gorm:"serializer:json" json:"languages_spoken"`

	Rating            float64 `gorm:"default:0" json:"rating"`
	TotalReviews      int     `gorm:"default:0" json:"total_reviews"`
	CompletedBookings int     `gorm:"default:0" json:"completed_bookings"`

	IsActive        bool `gorm:"default:true" json:"is_active"`
	AcceptsBookings bool `gorm:"default:true" json:"accepts_bookings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
