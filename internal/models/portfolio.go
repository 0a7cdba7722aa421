package models

import "time"

type Portfolio struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `gorm:"index;not null" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StaffID   *uint `json:"staff_id"`
	ServiceID *uint `json:"service_id"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:30;default:'haircut'" json:"category"`

	BeforeImageURL string `gorm:"size:500" json:"before_image_url"`
	AfterImageURL  string `gorm:"size:500;not null" json:"after_image_url"`
	ThumbnailURL   string `gorm:"size:500" json:"thumbnail_url"`

	IsVisible bool `gorm:"default:true" json:"is_visible"`
	LikeCount int  `gorm:"default:0" json:"like_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
