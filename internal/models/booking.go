package models

import "time"

const (
	BookingPending     = "pending"
	BookingConfirmed   = "confirmed"
	BookingInProgress  = "in_progress"
	BookingCompleted   = "completed"
	BookingCancelled   = "cancelled"
	BookingNoShow      = "no_show"
	BookingRescheduled = "rescheduled"
)

const (
	BookingPaymentPending       = "pending"
	BookingPaymentPaid          = "paid"
	BookingPaymentPartiallyPaid = "partially_paid"
	BookingPaymentRefunded      = "refunded"
	BookingPaymentFailed        = "failed"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index;not null" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer,omitempty"`

	SalonID uint  `gorm:"index;not null" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon,omitempty"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	StaffID *uint  `gorm:"index" json:"staff_id"`
	Staff   *Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff,omitempty"`

	AppointmentDate time.Time `gorm:"index;not null" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:5;not null" json:"appointment_time"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	TotalPrice     float64 `gorm:"not null" json:"total_price"`
	DiscountAmount float64 `gorm:"default:0" json:"discount_amount"`
	FinalPrice     float64 `gorm:"not null" json:"final_price"`

	PaymentStatus        string `gorm:"size:20;default:'pending'" json:"payment_status"`
	PaymentMethod        string `gorm:"size:50" json:"payment_method"`
	PaymentTransactionID string `gorm:"size:255" json:"payment_transaction_id"`

	PromotionCode  string   `gorm:"size:50" json:"promotion_code"`
	SelectedAddOns []string `gorm:"serializer:json" json:"selected_add_ons"`

	CustomerNotes string `gorm:"type:text" json:"customer_notes"`
	SalonNotes    string `gorm:"type:text" json:"salon_notes"`

	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CompletedAt        *time.Time `json:"completed_at"`

	BookingReference string `gorm:"size:100;uniqueIndex" json:"booking_reference"`

	IsReminderSent bool       `gorm:"default:false" json:"is_reminder_sent"`
	ReminderSentAt *time.Time `json:"reminder_sent_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
