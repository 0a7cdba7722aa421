package models

import "time"

type Hairstyle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	ImageURL     string `gorm:"size:500;not null" json:"image_url"`
	ThumbnailURL string `gorm:"size:500" json:"thumbnail_url"`

	Category string   `gorm:"size:30;not null" json:"category"`
	Gender   string   `gorm:"size:10;default:'unisex'" json:"gender"`
	Tags     []string `gorm:"serializer:json" json:"tags"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`
	IsPremium  bool `gorm:"default:false" json:"is_premium"`

	TryOnCount int `gorm:"default:0" json:"try_on_count"`
	SaveCount  int `gorm:"default:0" json:"save_count"`

	StylePack string `gorm:"size:255" json:"style_pack"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
