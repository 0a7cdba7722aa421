package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleCustomer   = "customer"
	RoleSalonOwner = "salon_owner"
	RoleGuest      = "guest"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name         string `gorm:"size:100;not null" json:"name"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'customer'" json:"role"`

	Phone             string     `gorm:"size:20" json:"phone"`
	Gender            string     `gorm:"size:20" json:"gender"`
	ProfileImage      string     `gorm:"size:500" json:"profile_image"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	Address           string     `gorm:"size:255" json:"address"`
	City              string     `gorm:"size:100" json:"city"`
	PreferredLanguage string     `gorm:"size:10;default:'en'" json:"preferred_language"`

	IsActive        bool `gorm:"default:true" json:"is_active"`
	IsEmailVerified bool `gorm:"default:false" json:"is_email_verified"`
	IsPhoneVerified bool `gorm:"default:false" json:"is_phone_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
