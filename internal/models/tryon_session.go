package models

import "time"

const (
	TryOnPending    = "pending"
	TryOnProcessing = "processing"
	TryOnCompleted  = "completed"
	TryOnFailed     = "failed"
)

type TryOnSession struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	OriginalImageURL string `gorm:"size:500;not null" json:"original_image_url"`
	ResultImageURL   string `gorm:"size:500" json:"result_image_url"`

	HairstyleID   uint   `gorm:"index" json:"hairstyle_id"`
	HairstyleName string `gorm:"size:255" json:"hairstyle_name"`

	Status       string `gorm:"size:20;default:'pending'" json:"status"`
	ErrorMessage string `gorm:"type:text" json:"error_message"`

	ProcessingTimeMs int64 `gorm:"default:0" json:"processing_time_ms"`

	IsSaved    bool    `gorm:"default:false" json:"is_saved"`
	IsShared   bool    `gorm:"default:false" json:"is_shared"`
	ShareToken *string `gorm:"size:100;uniqueIndex" json:"share_token"`
	ViewCount  int     `gorm:"default:0" json:"view_count"`

	GeneratorMetadata map[string]any `gorm:"serializer:json" json:"generator_metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
